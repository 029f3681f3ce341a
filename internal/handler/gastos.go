package handler

import (
	"net/http"

	"rapifarma/internal/apierror"
	"rapifarma/internal/dto"
	"rapifarma/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type GastosHandler struct{ svc service.GastoService }

func NewGastosHandler(svc service.GastoService) *GastosHandler {
	return &GastosHandler{svc: svc}
}

// Crear godoc
// @Summary Registra un gasto de sucursal
// @Tags gastos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearGastoRequest true "Datos del gasto"
// @Success 201 {object} dto.GastoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/gastos [post]
func (h *GastosHandler) Crear(c *gin.Context) {
	var req dto.CrearGastoRequest
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

func (h *GastosHandler) Listar(c *gin.Context) {
	var req dto.FiltroGastosRequest
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

func (h *GastosHandler) Obtener(c *gin.Context) {
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
// @Summary Verifica o niega un gasto pendiente
// @Tags gastos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CambiarEstadoGastoRequest true "Gasto y nuevo estado"
// @Success 200 {object} dto.GastoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/gastos/estado [patch]
func (h *GastosHandler) CambiarEstado(c *gin.Context) {
	var req dto.CambiarEstadoGastoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CambiarEstado(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Total godoc
// @Summary Total en USD de los gastos filtrados
// @Tags gastos
// @Produce json
// @Security BearerAuth
// @Param farmacia query string false "UUID de la farmacia"
// @Param estado query string false "wait|verified|denied"
// @Param fechaInicio query string false "YYYY-MM-DD"
// @Param fechaFin query string false "YYYY-MM-DD"
// @Success 200 {object} dto.TotalGastosResponse
// @Router /v1/gastos/total [get]
func (h *GastosHandler) Total(c *gin.Context) {
	var req dto.FiltroGastosRequest
	if !bindQueryAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Total(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
