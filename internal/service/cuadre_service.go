package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rapifarma/internal/dto"
	"rapifarma/internal/finanzas"
	"rapifarma/internal/model"
	"rapifarma/internal/repository"
	"rapifarma/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// EmailDispatcher is the slice of the async dispatcher the services need.
type EmailDispatcher interface {
	EnqueueEmail(ctx context.Context, payload interface{}) error
}

type CuadreService interface {
	Crear(ctx context.Context, req dto.CrearCuadreRequest) (*dto.CuadreResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.CuadreResponse, error)
	Listar(ctx context.Context, req dto.FiltroCuadresRequest) ([]dto.CuadreResponse, error)
	CambiarEstado(ctx context.Context, id uuid.UUID, supervisorID uuid.UUID, req dto.CambiarEstadoCuadreRequest) (*dto.CuadreResponse, error)
	Resumen(ctx context.Context, req dto.FiltroCuadresRequest) (*dto.ResumenCuadresResponse, error)
}

type cuadreService struct {
	repo        repository.CuadreRepository
	metas       MetaService
	dispatcher  EmailDispatcher
	notifyEmail string
}

func NewCuadreService(repo repository.CuadreRepository, metas MetaService, dispatcher EmailDispatcher, notifyEmail string) CuadreService {
	return &cuadreService{repo: repo, metas: metas, dispatcher: dispatcher, notifyEmail: notifyEmail}
}

// ── Crear ─────────────────────────────────────────────────────────────────────

func (s *cuadreService) Crear(ctx context.Context, req dto.CrearCuadreRequest) (*dto.CuadreResponse, error) {
	farmaciaID, err := uuid.Parse(req.FarmaciaID)
	if err != nil {
		return nil, errors.New("farmacia_id inválido")
	}
	cajeroID, err := uuid.Parse(req.CajeroID)
	if err != nil {
		return nil, errors.New("cajero_id inválido")
	}
	fecha, err := parseFecha(req.Fecha)
	if err != nil {
		return nil, err
	}

	turno := req.Turno
	if turno == "" {
		turno = "dia"
	}

	c := &model.Cuadre{
		FarmaciaID:     farmaciaID,
		CajeroID:       cajeroID,
		Fecha:          fecha,
		Turno:          turno,
		TotalSistemaBs: req.TotalSistemaBs,
		EfectivoBs:     req.EfectivoBs,
		EfectivoUsd:    req.EfectivoUsd,
		PuntoBs:        req.PuntoBs,
		PagoMovilBs:    req.PagoMovilBs,
		ZelleUsd:       req.ZelleUsd,
		Tasa:           req.Tasa,
		Estado:         "wait",
		Observaciones:  req.Observaciones,
	}
	// Diferencia = cobrado real − esperado por el sistema, ambos en USD
	esperadoUsd := finanzas.Normalizar(req.TotalSistemaBs, finanzas.DivisaBs, req.Tasa)
	c.DiferenciaUsd = c.TotalUSD().Sub(esperadoUsd).Round(2)

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := toCuadreResponse(c)
	return &resp, nil
}

// ── Listar / Obtener ──────────────────────────────────────────────────────────

func (s *cuadreService) Obtener(ctx context.Context, id uuid.UUID) (*dto.CuadreResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("cuadre no encontrado")
	}
	resp := toCuadreResponse(c)
	return &resp, nil
}

func (s *cuadreService) Listar(ctx context.Context, req dto.FiltroCuadresRequest) ([]dto.CuadreResponse, error) {
	filtro, err := buildFiltroCuadres(req)
	if err != nil {
		return nil, err
	}
	cuadres, err := s.repo.List(ctx, filtro)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CuadreResponse, len(cuadres))
	for i := range cuadres {
		resp[i] = toCuadreResponse(&cuadres[i])
	}
	return resp, nil
}

// ── CambiarEstado ─────────────────────────────────────────────────────────────
// wait/activa → verified | denied | anulada. Verificar recalcula las metas de
// la farmacia. Se notifica por correo al canal de supervisión cuando el cuadre
// se niega o cuando se verifica con un desvío distinto de cero.

func (s *cuadreService) CambiarEstado(ctx context.Context, id uuid.UUID, supervisorID uuid.UUID, req dto.CambiarEstadoCuadreRequest) (*dto.CuadreResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("cuadre no encontrado")
	}
	if c.Estado == "verified" || c.Estado == "denied" || c.Estado == "anulada" {
		return nil, fmt.Errorf("el cuadre ya fue resuelto (estado actual: %s)", c.Estado)
	}

	now := time.Now()
	c.Estado = req.Estado
	c.VerificadoPor = &supervisorID
	c.VerificadoAt = &now
	if req.Observaciones != nil {
		c.Observaciones = req.Observaciones
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	// Las metas dependen solo de cuadres verificados
	if req.Estado == "verified" {
		if err := s.metas.RecalcularPorFarmacia(ctx, c.FarmaciaID); err != nil {
			log.Warn().Err(err).Str("farmacia_id", c.FarmaciaID.String()).Msg("cuadres: recálculo de metas falló")
		}
	}

	switch {
	case req.Estado == "denied":
		s.notificar(ctx, c, fmt.Sprintf("Cuadre negado — %s %s", s.nombreFarmacia(c), fechaStr(c.Fecha)),
			fmt.Sprintf("El cuadre del %s (turno %s) fue negado.\nDiferencia: $%s",
				fechaStr(c.Fecha), c.Turno, c.DiferenciaUsd.StringFixed(2)))
	case req.Estado == "verified" && !c.DiferenciaUsd.IsZero():
		s.notificar(ctx, c, fmt.Sprintf("Cuadre verificado con desvío — %s %s", s.nombreFarmacia(c), fechaStr(c.Fecha)),
			fmt.Sprintf("El cuadre del %s (turno %s) fue verificado con una diferencia de $%s.",
				fechaStr(c.Fecha), c.Turno, c.DiferenciaUsd.StringFixed(2)))
	}

	resp := toCuadreResponse(c)
	return &resp, nil
}

func (s *cuadreService) nombreFarmacia(c *model.Cuadre) string {
	if c.Farmacia != nil {
		return c.Farmacia.Nombre
	}
	return c.FarmaciaID.String()
}

func (s *cuadreService) notificar(ctx context.Context, c *model.Cuadre, subject, body string) {
	if s.dispatcher == nil || s.notifyEmail == "" {
		return
	}
	job := worker.EmailJobPayload{ToEmail: s.notifyEmail, Subject: subject, Body: body}
	if err := s.dispatcher.EnqueueEmail(ctx, job); err != nil {
		log.Warn().Err(err).Msg("cuadres: no se pudo encolar el correo de notificación")
	}
}

// ── Resumen ───────────────────────────────────────────────────────────────────
// Tarjetas del dashboard: totales agregados del rango filtrado más la
// variación contra el mes calendario anterior.

func (s *cuadreService) Resumen(ctx context.Context, req dto.FiltroCuadresRequest) (*dto.ResumenCuadresResponse, error) {
	filtro, err := buildFiltroCuadres(req)
	if err != nil {
		return nil, err
	}
	cuadres, err := s.repo.List(ctx, filtro)
	if err != nil {
		return nil, err
	}

	totalUsd := decimal.Zero
	for i := range cuadres {
		totalUsd = totalUsd.Add(cuadres[i].TotalUSD())
	}

	diferencias := finanzas.Agregar(cuadres, func(c model.Cuadre) finanzas.Clasificado {
		sobrante, faltante := finanzas.DividirDiferencia(c.DiferenciaUsd)
		if sobrante.IsPositive() {
			return finanzas.Clasificado{Bucket: "sobrante", MontoUSD: sobrante}
		}
		if faltante.IsPositive() {
			return finanzas.Clasificado{Bucket: "faltante", MontoUSD: faltante}
		}
		return finanzas.Clasificado{}
	})

	totalAnterior, err := s.totalMesAnterior(ctx, req)
	if err != nil {
		return nil, err
	}

	return &dto.ResumenCuadresResponse{
		Cantidad:         len(cuadres),
		TotalUsd:         totalUsd.Round(2),
		SobranteUsd:      diferencias["sobrante"].Round(2),
		FaltanteUsd:      diferencias["faltante"].Round(2),
		TotalMesAnterior: totalAnterior.Round(2),
		VariacionPct:     finanzas.Variacion(totalUsd, totalAnterior),
	}, nil
}

// totalMesAnterior suma el mes calendario previo a fechaInicio (o al mes
// actual cuando no hay filtro de fecha), respetando farmacia y estado.
func (s *cuadreService) totalMesAnterior(ctx context.Context, req dto.FiltroCuadresRequest) (decimal.Decimal, error) {
	ref := time.Now()
	if req.FechaInicio != "" {
		if t, err := parseFecha(req.FechaInicio); err == nil {
			ref = t
		}
	}
	inicioMes := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	inicioAnterior := inicioMes.AddDate(0, -1, 0)
	finAnterior := inicioMes.AddDate(0, 0, -1)

	filtro := repository.FiltroCuadres{
		FechaInicio: &inicioAnterior,
		FechaFin:    &finAnterior,
		Estado:      req.Estado,
	}
	if req.Farmacia != "" {
		id, err := uuid.Parse(req.Farmacia)
		if err != nil {
			return decimal.Zero, errors.New("farmacia inválida")
		}
		filtro.FarmaciaID = &id
	}

	cuadres, err := s.repo.List(ctx, filtro)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for i := range cuadres {
		total = total.Add(cuadres[i].TotalUSD())
	}
	return total, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func buildFiltroCuadres(req dto.FiltroCuadresRequest) (repository.FiltroCuadres, error) {
	filtro := repository.FiltroCuadres{Estado: req.Estado}
	if req.Farmacia != "" {
		id, err := uuid.Parse(req.Farmacia)
		if err != nil {
			return filtro, errors.New("farmacia inválida")
		}
		filtro.FarmaciaID = &id
	}
	if req.FechaInicio != "" {
		t, err := parseFecha(req.FechaInicio)
		if err != nil {
			return filtro, err
		}
		filtro.FechaInicio = &t
	}
	if req.FechaFin != "" {
		t, err := parseFecha(req.FechaFin)
		if err != nil {
			return filtro, err
		}
		filtro.FechaFin = &t
	}
	return filtro, nil
}

func toCuadreResponse(c *model.Cuadre) dto.CuadreResponse {
	sobrante, faltante := finanzas.DividirDiferencia(c.DiferenciaUsd)
	resp := dto.CuadreResponse{
		ID:             c.ID.String(),
		FarmaciaID:     c.FarmaciaID.String(),
		CajeroID:       c.CajeroID.String(),
		Fecha:          fechaStr(c.Fecha),
		Turno:          c.Turno,
		TotalSistemaBs: c.TotalSistemaBs,
		EfectivoBs:     c.EfectivoBs,
		EfectivoUsd:    c.EfectivoUsd,
		PuntoBs:        c.PuntoBs,
		PagoMovilBs:    c.PagoMovilBs,
		ZelleUsd:       c.ZelleUsd,
		Tasa:           c.Tasa,
		TotalUsd:       c.TotalUSD().Round(2),
		DiferenciaUsd:  c.DiferenciaUsd,
		SobranteUsd:    sobrante,
		FaltanteUsd:    faltante,
		Estado:         c.Estado,
		Observaciones:  c.Observaciones,
	}
	if c.Farmacia != nil {
		resp.Farmacia = c.Farmacia.Nombre
	}
	if c.Cajero != nil {
		resp.Cajero = c.Cajero.Nombre
	}
	return resp
}
