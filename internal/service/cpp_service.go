package service

import (
	"context"
	"errors"
	"fmt"

	"rapifarma/internal/dto"
	"rapifarma/internal/finanzas"
	"rapifarma/internal/model"
	"rapifarma/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type CuentaPorPagarService interface {
	Crear(ctx context.Context, req dto.CrearCuentaPorPagarRequest) (*dto.CuentaPorPagarResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.CuentaPorPagarResponse, error)
	Listar(ctx context.Context) ([]dto.CuentaPorPagarResponse, error)
	ListarRango(ctx context.Context, req dto.FiltroRangoCPPRequest) ([]dto.CuentaPorPagarResponse, error)
	CambiarEstatus(ctx context.Context, id uuid.UUID, req dto.CambiarEstatusCPPRequest) (*dto.CuentaPorPagarResponse, error)
	RegistrarPago(ctx context.Context, req dto.RegistrarPagoCPPRequest) (*dto.PagoCPPResponse, error)
	ListarPagos(ctx context.Context, cuentaID *uuid.UUID) ([]dto.PagoCPPResponse, error)
	ListarPagosRango(ctx context.Context, req dto.FiltroRangoPagosRequest) ([]dto.PagoCPPResponse, error)
	CambiarEstadoPago(ctx context.Context, pagoID uuid.UUID, req dto.CambiarEstadoPagoRequest) (*dto.PagoCPPResponse, error)
}

type cppService struct {
	cuentas repository.CuentaPorPagarRepository
	pagos   repository.PagoCPPRepository
}

func NewCuentaPorPagarService(cuentas repository.CuentaPorPagarRepository, pagos repository.PagoCPPRepository) CuentaPorPagarService {
	return &cppService{cuentas: cuentas, pagos: pagos}
}

// ── Cuentas ───────────────────────────────────────────────────────────────────

func (s *cppService) Crear(ctx context.Context, req dto.CrearCuentaPorPagarRequest) (*dto.CuentaPorPagarResponse, error) {
	farmaciaID, err := uuid.Parse(req.FarmaciaID)
	if err != nil {
		return nil, errors.New("farmacia_id inválido")
	}
	emision, err := parseFecha(req.FechaEmision)
	if err != nil {
		return nil, err
	}
	recepcion, err := parseFechaPtr(req.FechaRecepcion)
	if err != nil {
		return nil, err
	}
	vencimiento, err := parseFechaPtr(req.FechaVencimiento)
	if err != nil {
		return nil, err
	}
	if req.Divisa == finanzas.DivisaBs && !req.Tasa.IsPositive() {
		return nil, errors.New("las facturas en Bs requieren una tasa mayor a cero")
	}

	c := &model.CuentaPorPagar{
		FarmaciaID:       farmaciaID,
		Proveedor:        req.Proveedor,
		NumeroFactura:    req.NumeroFactura,
		Monto:            req.Monto,
		Divisa:           req.Divisa,
		Tasa:             req.Tasa,
		FechaEmision:     emision,
		FechaRecepcion:   recepcion,
		FechaVencimiento: vencimiento,
		Estatus:          "activa",
		Observaciones:    req.Observaciones,
	}
	if err := s.cuentas.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := toCuentaResponse(c)
	return &resp, nil
}

func (s *cppService) Obtener(ctx context.Context, id uuid.UUID) (*dto.CuentaPorPagarResponse, error) {
	c, err := s.cuentas.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("cuenta por pagar no encontrada")
	}
	resp := toCuentaResponse(c)
	return &resp, nil
}

func (s *cppService) Listar(ctx context.Context) ([]dto.CuentaPorPagarResponse, error) {
	cuentas, err := s.cuentas.List(ctx)
	if err != nil {
		return nil, err
	}
	return toCuentaResponses(cuentas), nil
}

func (s *cppService) ListarRango(ctx context.Context, req dto.FiltroRangoCPPRequest) ([]dto.CuentaPorPagarResponse, error) {
	filtro := repository.FiltroRangoCPP{Estatus: req.Estatus}
	if req.StartDate != "" {
		t, err := parseFecha(req.StartDate)
		if err != nil {
			return nil, err
		}
		filtro.StartDate = &t
	}
	if req.EndDate != "" {
		t, err := parseFecha(req.EndDate)
		if err != nil {
			return nil, err
		}
		filtro.EndDate = &t
	}
	if req.Farmacia != "" {
		id, err := uuid.Parse(req.Farmacia)
		if err != nil {
			return nil, errors.New("farmacia inválida")
		}
		filtro.FarmaciaID = &id
	}

	cuentas, err := s.cuentas.ListRango(ctx, filtro)
	if err != nil {
		return nil, err
	}
	return toCuentaResponses(cuentas), nil
}

func (s *cppService) CambiarEstatus(ctx context.Context, id uuid.UUID, req dto.CambiarEstatusCPPRequest) (*dto.CuentaPorPagarResponse, error) {
	c, err := s.cuentas.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("cuenta por pagar no encontrada")
	}
	if c.Estatus == "anulada" {
		return nil, errors.New("una cuenta anulada no admite cambios de estatus")
	}
	c.Estatus = req.Estatus
	if err := s.cuentas.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := toCuentaResponse(c)
	return &resp, nil
}

// ── Pagos ─────────────────────────────────────────────────────────────────────

func (s *cppService) RegistrarPago(ctx context.Context, req dto.RegistrarPagoCPPRequest) (*dto.PagoCPPResponse, error) {
	cuentaID, err := uuid.Parse(req.CuentaPorPagarID)
	if err != nil {
		return nil, errors.New("cuenta_por_pagar_id inválido")
	}
	cuenta, err := s.cuentas.FindByID(ctx, cuentaID)
	if err != nil {
		return nil, errors.New("cuenta por pagar no encontrada")
	}
	if cuenta.Estatus != "activa" {
		return nil, fmt.Errorf("no se pueden registrar pagos sobre una cuenta %s", cuenta.Estatus)
	}
	fecha, err := parseFecha(req.Fecha)
	if err != nil {
		return nil, err
	}
	if req.Divisa == finanzas.DivisaBs && !req.Tasa.IsPositive() {
		return nil, errors.New("los pagos en Bs requieren una tasa mayor a cero")
	}

	p := &model.PagoCPP{
		CuentaPorPagarID: cuentaID,
		Monto:            req.Monto,
		Divisa:           req.Divisa,
		Tasa:             req.Tasa,
		MetodoPago:       req.MetodoPago,
		Referencia:       req.Referencia,
		Fecha:            fecha,
		Estado:           "pendiente",
	}
	if err := s.pagos.Create(ctx, p); err != nil {
		return nil, err
	}

	if err := s.actualizarEstatusPorSaldo(ctx, cuentaID); err != nil {
		log.Warn().Err(err).Str("cuenta_id", cuentaID.String()).Msg("cpp: no se pudo actualizar el estatus por saldo")
	}

	resp := toPagoResponse(p)
	return &resp, nil
}

func (s *cppService) ListarPagos(ctx context.Context, cuentaID *uuid.UUID) ([]dto.PagoCPPResponse, error) {
	var pagos []model.PagoCPP
	var err error
	if cuentaID != nil {
		pagos, err = s.pagos.ListByCuenta(ctx, *cuentaID)
	} else {
		pagos, err = s.pagos.ListAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PagoCPPResponse, len(pagos))
	for i := range pagos {
		resp[i] = toPagoResponse(&pagos[i])
	}
	return resp, nil
}

// ListarPagosRango filtra por fecha del pago; el rango es inclusivo en ambos
// extremos, igual que el rango de cuentas.
func (s *cppService) ListarPagosRango(ctx context.Context, req dto.FiltroRangoPagosRequest) ([]dto.PagoCPPResponse, error) {
	inicio, err := parseFecha(req.FechaInicio)
	if err != nil {
		return nil, err
	}
	fin, err := parseFecha(req.FechaFin)
	if err != nil {
		return nil, err
	}
	if fin.Before(inicio) {
		return nil, errors.New("fechaFin no puede ser anterior a fechaInicio")
	}

	pagos, err := s.pagos.ListRango(ctx, inicio, fin)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PagoCPPResponse, len(pagos))
	for i := range pagos {
		resp[i] = toPagoResponse(&pagos[i])
	}
	return resp, nil
}

func (s *cppService) CambiarEstadoPago(ctx context.Context, pagoID uuid.UUID, req dto.CambiarEstadoPagoRequest) (*dto.PagoCPPResponse, error) {
	p, err := s.pagos.FindByID(ctx, pagoID)
	if err != nil {
		return nil, errors.New("pago no encontrado")
	}
	if p.Estado != "pendiente" {
		return nil, fmt.Errorf("el pago ya fue resuelto (estado actual: %s)", p.Estado)
	}
	p.Estado = req.Estado
	if err := s.pagos.Update(ctx, p); err != nil {
		return nil, err
	}

	if err := s.actualizarEstatusPorSaldo(ctx, p.CuentaPorPagarID); err != nil {
		log.Warn().Err(err).Str("cuenta_id", p.CuentaPorPagarID.String()).Msg("cpp: no se pudo actualizar el estatus por saldo")
	}

	resp := toPagoResponse(p)
	return &resp, nil
}

// actualizarEstatusPorSaldo recomputes the outstanding balance after any pago
// mutation and flips the cuenta between activa y pagada. Rejected payments do
// not count; an overpaid account still reads as pagada.
func (s *cppService) actualizarEstatusPorSaldo(ctx context.Context, cuentaID uuid.UUID) error {
	cuenta, err := s.cuentas.FindByID(ctx, cuentaID)
	if err != nil {
		return err
	}
	if cuenta.Estatus == "anulada" || cuenta.Estatus == "cancelada" {
		return nil
	}

	saldo := saldoCuenta(cuenta)
	switch {
	case !saldo.IsPositive() && cuenta.Estatus == "activa":
		cuenta.Estatus = "pagada"
		return s.cuentas.Update(ctx, cuenta)
	case saldo.IsPositive() && cuenta.Estatus == "pagada":
		// Un pago rechazado puede reabrir la cuenta
		cuenta.Estatus = "activa"
		return s.cuentas.Update(ctx, cuenta)
	}
	return nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func saldoCuenta(c *model.CuentaPorPagar) decimal.Decimal {
	aplicados := make([]finanzas.PagoAplicado, len(c.Pagos))
	for i, p := range c.Pagos {
		aplicados[i] = finanzas.PagoAplicado{
			Monto:  p.Monto,
			Divisa: p.Divisa,
			Tasa:   p.Tasa,
			Estado: p.Estado,
		}
	}
	return finanzas.SaldoPendiente(c.Monto, c.Divisa, c.Tasa, aplicados)
}

func toCuentaResponses(cuentas []model.CuentaPorPagar) []dto.CuentaPorPagarResponse {
	resp := make([]dto.CuentaPorPagarResponse, len(cuentas))
	for i := range cuentas {
		resp[i] = toCuentaResponse(&cuentas[i])
	}
	return resp
}

func toCuentaResponse(c *model.CuentaPorPagar) dto.CuentaPorPagarResponse {
	saldo := saldoCuenta(c)
	resp := dto.CuentaPorPagarResponse{
		ID:               c.ID.String(),
		FarmaciaID:       c.FarmaciaID.String(),
		Proveedor:        c.Proveedor,
		NumeroFactura:    c.NumeroFactura,
		Monto:            c.Monto,
		Divisa:           c.Divisa,
		Tasa:             c.Tasa,
		MontoUsd:         finanzas.Normalizar(c.Monto, c.Divisa, c.Tasa).Round(2),
		SaldoPendiente:   saldo.Round(2),
		Sobrepagada:      saldo.IsNegative(),
		FechaEmision:     fechaStr(c.FechaEmision),
		FechaRecepcion:   fechaStrPtr(c.FechaRecepcion),
		FechaVencimiento: fechaStrPtr(c.FechaVencimiento),
		Estatus:          c.Estatus,
		Observaciones:    c.Observaciones,
	}
	if c.Farmacia != nil {
		resp.Farmacia = c.Farmacia.Nombre
	}
	for i := range c.Pagos {
		resp.Pagos = append(resp.Pagos, toPagoResponse(&c.Pagos[i]))
	}
	return resp
}

func toPagoResponse(p *model.PagoCPP) dto.PagoCPPResponse {
	return dto.PagoCPPResponse{
		ID:               p.ID.String(),
		CuentaPorPagarID: p.CuentaPorPagarID.String(),
		Monto:            p.Monto,
		Divisa:           p.Divisa,
		Tasa:             p.Tasa,
		MontoUsd:         finanzas.Normalizar(p.Monto, p.Divisa, p.Tasa).Round(2),
		MetodoPago:       p.MetodoPago,
		Referencia:       p.Referencia,
		Fecha:            fechaStr(p.Fecha),
		Estado:           p.Estado,
	}
}
