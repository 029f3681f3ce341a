package handler

import (
	"net/http"

	"rapifarma/internal/apierror"
	"rapifarma/internal/dto"
	"rapifarma/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FarmaciasHandler struct{ svc service.FarmaciaService }

func NewFarmaciasHandler(svc service.FarmaciaService) *FarmaciasHandler {
	return &FarmaciasHandler{svc: svc}
}

// Mapa godoc
// @Summary Mapa id→nombre de farmacias activas
// @Tags farmacias
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MapaFarmaciasResponse
// @Router /v1/farmacias/mapa [get]
func (h *FarmaciasHandler) Mapa(c *gin.Context) {
	resp, err := h.svc.Mapa(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al cargar farmacias"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FarmaciasHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar farmacias"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FarmaciasHandler) Obtener(c *gin.Context) {
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

// Crear godoc
// @Summary Registra una farmacia
// @Tags farmacias
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearFarmaciaRequest true "Datos de la farmacia"
// @Success 201 {object} dto.FarmaciaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/farmacias [post]
func (h *FarmaciasHandler) Crear(c *gin.Context) {
	var req dto.CrearFarmaciaRequest
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

func (h *FarmaciasHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ActualizarFarmaciaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FarmaciasHandler) Desactivar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Desactivar(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// Sincronizar godoc
// @Summary Importa el catálogo de farmacias desde la API legada
// @Tags farmacias
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SincronizacionResponse
// @Failure 502 {object} apierror.APIError
// @Router /v1/farmacias/sincronizar [post]
func (h *FarmaciasHandler) Sincronizar(c *gin.Context) {
	resp, err := h.svc.SincronizarDesdeLegacy(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, apierror.New("No se pudo sincronizar con la API legada: "+err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Inventarios godoc
// @Summary Existencias de productos según la API legada
// @Tags farmacias
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.InventarioResponse
// @Failure 502 {object} apierror.APIError
// @Router /v1/inventarios [get]
func (h *FarmaciasHandler) Inventarios(c *gin.Context) {
	resp, err := h.svc.Inventarios(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, apierror.New("No se pudo consultar el inventario en la API legada: "+err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Cajeros ──────────────────────────────────────────────────────────────────

type CajerosHandler struct{ svc service.FarmaciaService }

func NewCajerosHandler(svc service.FarmaciaService) *CajerosHandler {
	return &CajerosHandler{svc: svc}
}

func (h *CajerosHandler) Listar(c *gin.Context) {
	var farmaciaID *uuid.UUID
	if raw := c.Query("farmacia"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("farmacia inválida"))
			return
		}
		farmaciaID = &id
	}
	resp, err := h.svc.ListarCajeros(c.Request.Context(), farmaciaID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar cajeros"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CajerosHandler) Crear(c *gin.Context) {
	var req dto.CrearCajeroRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearCajero(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}
