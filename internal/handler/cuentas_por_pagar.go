package handler

import (
	"net/http"

	"rapifarma/internal/apierror"
	"rapifarma/internal/dto"
	"rapifarma/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CuentasPorPagarHandler struct{ svc service.CuentaPorPagarService }

func NewCuentasPorPagarHandler(svc service.CuentaPorPagarService) *CuentasPorPagarHandler {
	return &CuentasPorPagarHandler{svc: svc}
}

// Crear godoc
// @Summary Registra una factura de proveedor
// @Tags cuentas-por-pagar
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearCuentaPorPagarRequest true "Datos de la factura"
// @Success 201 {object} dto.CuentaPorPagarResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/cuentas-por-pagar [post]
func (h *CuentasPorPagarHandler) Crear(c *gin.Context) {
	var req dto.CrearCuentaPorPagarRequest
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

func (h *CuentasPorPagarHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar cuentas por pagar"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarRango godoc
// @Summary Lista facturas por rango de fecha de emisión
// @Tags cuentas-por-pagar
// @Produce json
// @Security BearerAuth
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Param farmacia query string false "UUID de la farmacia"
// @Param estatus query string false "activa|pagada|anulada|cancelada"
// @Success 200 {array} dto.CuentaPorPagarResponse
// @Router /v1/cuentas-por-pagar/rango [get]
func (h *CuentasPorPagarHandler) ListarRango(c *gin.Context) {
	var req dto.FiltroRangoCPPRequest
	if !bindQueryAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ListarRango(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CuentasPorPagarHandler) Obtener(c *gin.Context) {
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

func (h *CuentasPorPagarHandler) CambiarEstatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.CambiarEstatusCPPRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CambiarEstatus(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Pagos ────────────────────────────────────────────────────────────────────

type PagosCPPHandler struct{ svc service.CuentaPorPagarService }

func NewPagosCPPHandler(svc service.CuentaPorPagarService) *PagosCPPHandler {
	return &PagosCPPHandler{svc: svc}
}

// Registrar godoc
// @Summary Registra un pago sobre una factura
// @Tags pagos-cpp
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RegistrarPagoCPPRequest true "Datos del pago"
// @Success 201 {object} dto.PagoCPPResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/pagos-cpp [post]
func (h *PagosCPPHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarPagoCPPRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarPago(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PagosCPPHandler) Listar(c *gin.Context) {
	var cuentaID *uuid.UUID
	if raw := c.Query("cuenta"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("cuenta inválida"))
			return
		}
		cuentaID = &id
	}
	resp, err := h.svc.ListarPagos(c.Request.Context(), cuentaID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar pagos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarRango godoc
// @Summary Lista pagos por rango de fechas
// @Tags pagos-cpp
// @Produce json
// @Security BearerAuth
// @Param fechaInicio query string true "YYYY-MM-DD"
// @Param fechaFin query string true "YYYY-MM-DD"
// @Success 200 {array} dto.PagoCPPResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/pagos-cpp/rango-fechas [get]
func (h *PagosCPPHandler) ListarRango(c *gin.Context) {
	var req dto.FiltroRangoPagosRequest
	if !bindQueryAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ListarPagosRango(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CambiarEstado godoc
// @Summary Aprueba o rechaza un pago pendiente
// @Tags pagos-cpp
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del pago"
// @Param body body dto.CambiarEstadoPagoRequest true "Nuevo estado"
// @Success 200 {object} dto.PagoCPPResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/pagos-cpp/{id}/estado [patch]
func (h *PagosCPPHandler) CambiarEstado(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.CambiarEstadoPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CambiarEstadoPago(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
