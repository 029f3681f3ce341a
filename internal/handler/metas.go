package handler

import (
	"net/http"

	"rapifarma/internal/apierror"
	"rapifarma/internal/dto"
	"rapifarma/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MetasHandler struct{ svc service.MetaService }

func NewMetasHandler(svc service.MetaService) *MetasHandler {
	return &MetasHandler{svc: svc}
}

// Crear godoc
// @Summary Define una meta de ventas para una farmacia
// @Tags metas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearMetaRequest true "Datos de la meta"
// @Success 201 {object} dto.MetaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/metas [post]
func (h *MetasHandler) Crear(c *gin.Context) {
	var req dto.CrearMetaRequest
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

func (h *MetasHandler) Listar(c *gin.Context) {
	var farmaciaID *uuid.UUID
	if raw := c.Query("farmacia"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("farmacia inválida"))
			return
		}
		farmaciaID = &id
	}
	resp, err := h.svc.Listar(c.Request.Context(), farmaciaID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar metas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MetasHandler) Obtener(c *gin.Context) {
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

func (h *MetasHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ActualizarMetaRequest
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

func (h *MetasHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
