package handler

import (
	"net/http"

	"rapifarma/internal/apierror"
	"rapifarma/internal/dto"
	"rapifarma/internal/middleware"
	"rapifarma/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CuadresHandler struct{ svc service.CuadreService }

func NewCuadresHandler(svc service.CuadreService) *CuadresHandler {
	return &CuadresHandler{svc: svc}
}

// Crear godoc
// @Summary Registra un cuadre de caja
// @Tags cuadres
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearCuadreRequest true "Datos del cuadre"
// @Success 201 {object} dto.CuadreResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/cuadres [post]
func (h *CuadresHandler) Crear(c *gin.Context) {
	var req dto.CrearCuadreRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Lista cuadres con filtros opcionales
// @Tags cuadres
// @Produce json
// @Security BearerAuth
// @Param farmacia query string false "UUID de la farmacia"
// @Param fechaInicio query string false "YYYY-MM-DD"
// @Param fechaFin query string false "YYYY-MM-DD"
// @Param estado query string false "wait|activa|verified|anulada|denied"
// @Success 200 {array} dto.CuadreResponse
// @Router /v1/cuadres [get]
func (h *CuadresHandler) Listar(c *gin.Context) {
	var req dto.FiltroCuadresRequest
	if !bindQueryAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CuadresHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CambiarEstado godoc
// @Summary Verifica, niega o anula un cuadre
// @Tags cuadres
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del cuadre"
// @Param body body dto.CambiarEstadoCuadreRequest true "Nuevo estado"
// @Success 200 {object} dto.CuadreResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/cuadres/{id}/estado [patch]
func (h *CuadresHandler) CambiarEstado(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.CambiarEstadoCuadreRequest
	if !bindAndValidate(c, &req) {
		return
	}

	claims := middleware.GetClaims(c)
	supervisorID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de usuario inválido"))
		return
	}

	resp, err := h.svc.CambiarEstado(c.Request.Context(), id, supervisorID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Resumen godoc
// @Summary Totales agregados del rango filtrado (tarjetas del dashboard)
// @Tags cuadres
// @Produce json
// @Security BearerAuth
// @Param farmacia query string false "UUID de la farmacia"
// @Param fechaInicio query string false "YYYY-MM-DD"
// @Param fechaFin query string false "YYYY-MM-DD"
// @Param estado query string false "wait|activa|verified|anulada|denied"
// @Success 200 {object} dto.ResumenCuadresResponse
// @Router /v1/cuadres/resumen [get]
func (h *CuadresHandler) Resumen(c *gin.Context) {
	var req dto.FiltroCuadresRequest
	if !bindQueryAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Resumen(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
