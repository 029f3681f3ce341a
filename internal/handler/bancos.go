package handler

import (
	"errors"
	"net/http"

	"rapifarma/internal/apierror"
	"rapifarma/internal/dto"
	"rapifarma/internal/finanzas"
	"rapifarma/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BancosHandler struct{ svc service.BancoService }

func NewBancosHandler(svc service.BancoService) *BancosHandler {
	return &BancosHandler{svc: svc}
}

// Crear godoc
// @Summary Registra una cuenta bancaria
// @Tags bancos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearBancoRequest true "Datos de la cuenta"
// @Success 201 {object} dto.BancoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/bancos [post]
func (h *BancosHandler) Crear(c *gin.Context) {
	var req dto.CrearBancoRequest
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

func (h *BancosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar bancos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BancosHandler) Obtener(c *gin.Context) {
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

func (h *BancosHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ActualizarBancoRequest
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

func (h *BancosHandler) Desactivar(c *gin.Context) {
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

// Deposito godoc
// @Summary Registra un depósito en la cuenta
// @Tags bancos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del banco"
// @Param body body dto.RegistrarMovimientoRequest true "Datos del movimiento"
// @Success 201 {object} dto.MovimientoBancoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/bancos/{id}/deposito [post]
func (h *BancosHandler) Deposito(c *gin.Context) {
	h.registrarMovimiento(c, finanzas.MovimientoDeposito)
}

// Transferencia subtracts from the balance; rejected on insufficient funds.
func (h *BancosHandler) Transferencia(c *gin.Context) {
	h.registrarMovimiento(c, finanzas.MovimientoTransferencia)
}

func (h *BancosHandler) Cheque(c *gin.Context) {
	h.registrarMovimiento(c, finanzas.MovimientoCheque)
}

func (h *BancosHandler) Retiro(c *gin.Context) {
	h.registrarMovimiento(c, finanzas.MovimientoRetiro)
}

func (h *BancosHandler) registrarMovimiento(c *gin.Context, tipo string) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.RegistrarMovimientoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarMovimiento(c.Request.Context(), id, tipo, req)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, finanzas.ErrFondosInsuficientes) {
			status = http.StatusConflict
		}
		c.JSON(status, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Movimientos godoc
// @Summary Lista el ledger de movimientos bancarios
// @Tags bancos
// @Produce json
// @Security BearerAuth
// @Param bancoId query string false "UUID del banco"
// @Param farmaciaId query string false "UUID de la farmacia"
// @Success 200 {array} dto.MovimientoBancoResponse
// @Router /v1/bancos/movimientos [get]
func (h *BancosHandler) Movimientos(c *gin.Context) {
	var req dto.FiltroMovimientosRequest
	if !bindQueryAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ListarMovimientos(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Conciliar godoc
// @Summary Compara el disponible contra la proyección del ledger
// @Tags bancos
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del banco"
// @Success 200 {object} dto.ConciliacionBancoResponse
// @Router /v1/bancos/{id}/conciliar [get]
func (h *BancosHandler) Conciliar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Conciliar(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
