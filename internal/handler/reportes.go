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

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// Solicitar godoc
// @Summary Solicita la exportación asíncrona de cuadres y gastos
// @Tags reportes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.SolicitarReporteRequest true "Rango del reporte"
// @Success 202 {object} dto.ReporteResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/reportes [post]
func (h *ReportesHandler) Solicitar(c *gin.Context) {
	var req dto.SolicitarReporteRequest
	if !bindAndValidate(c, &req) {
		return
	}

	claims := middleware.GetClaims(c)
	solicitadoPor, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de usuario inválido"))
		return
	}

	resp, err := h.svc.Solicitar(c.Request.Context(), solicitadoPor, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusAccepted, resp)
}

func (h *ReportesHandler) Obtener(c *gin.Context) {
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

// Descargar godoc
// @Summary Descarga el archivo generado (xlsx o pdf)
// @Tags reportes
// @Produce octet-stream
// @Security BearerAuth
// @Param id path string true "ID del reporte"
// @Param formato query string false "xlsx|pdf (default xlsx)"
// @Success 200 {file} binary
// @Failure 404 {object} apierror.APIError
// @Router /v1/reportes/{id}/descargar [get]
func (h *ReportesHandler) Descargar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	formato := c.DefaultQuery("formato", "xlsx")

	path, err := h.svc.Archivo(c.Request.Context(), id, formato)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.FileAttachment(path, "reporte_"+id.String()+"."+formato)
}
