package service

import (
	"context"
	"errors"
	"time"

	"rapifarma/internal/dto"
	"rapifarma/internal/model"
	"rapifarma/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MetaService interface {
	Crear(ctx context.Context, req dto.CrearMetaRequest) (*dto.MetaResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.MetaResponse, error)
	Listar(ctx context.Context, farmaciaID *uuid.UUID) ([]dto.MetaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarMetaRequest) (*dto.MetaResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	// RecalcularPorFarmacia re-evaluates every meta of the branch against its
	// verified cuadres. Called after a cuadre is verified.
	RecalcularPorFarmacia(ctx context.Context, farmaciaID uuid.UUID) error
}

type metaService struct {
	repo    repository.MetaRepository
	cuadres repository.CuadreRepository
}

func NewMetaService(repo repository.MetaRepository, cuadres repository.CuadreRepository) MetaService {
	return &metaService{repo: repo, cuadres: cuadres}
}

func (s *metaService) Crear(ctx context.Context, req dto.CrearMetaRequest) (*dto.MetaResponse, error) {
	farmaciaID, err := uuid.Parse(req.FarmaciaID)
	if err != nil {
		return nil, errors.New("farmacia_id inválido")
	}
	inicio, err := parseFecha(req.FechaInicio)
	if err != nil {
		return nil, err
	}
	fin, err := parseFecha(req.FechaFin)
	if err != nil {
		return nil, err
	}
	if fin.Before(inicio) {
		return nil, errors.New("fecha_fin no puede ser anterior a fecha_inicio")
	}

	m := &model.Meta{
		FarmaciaID:  farmaciaID,
		Descripcion: req.Descripcion,
		MontoUsd:    req.MontoUsd,
		FechaInicio: inicio,
		FechaFin:    fin,
		Estado:      "por_lograr",
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return s.buildResponse(ctx, m)
}

func (s *metaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.MetaResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("meta no encontrada")
	}
	return s.buildResponse(ctx, m)
}

func (s *metaService) Listar(ctx context.Context, farmaciaID *uuid.UUID) ([]dto.MetaResponse, error) {
	metas, err := s.repo.List(ctx, farmaciaID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MetaResponse, 0, len(metas))
	for i := range metas {
		r, err := s.buildResponse(ctx, &metas[i])
		if err != nil {
			return nil, err
		}
		resp = append(resp, *r)
	}
	return resp, nil
}

func (s *metaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarMetaRequest) (*dto.MetaResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("meta no encontrada")
	}
	if req.Descripcion != nil {
		m.Descripcion = req.Descripcion
	}
	if req.MontoUsd != nil {
		m.MontoUsd = *req.MontoUsd
	}
	if req.FechaInicio != "" {
		t, err := parseFecha(req.FechaInicio)
		if err != nil {
			return nil, err
		}
		m.FechaInicio = t
	}
	if req.FechaFin != "" {
		t, err := parseFecha(req.FechaFin)
		if err != nil {
			return nil, err
		}
		m.FechaFin = t
	}
	if m.FechaFin.Before(m.FechaInicio) {
		return nil, errors.New("fecha_fin no puede ser anterior a fecha_inicio")
	}

	if err := s.recalcular(ctx, m); err != nil {
		return nil, err
	}
	return s.buildResponse(ctx, m)
}

func (s *metaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *metaService) RecalcularPorFarmacia(ctx context.Context, farmaciaID uuid.UUID) error {
	metas, err := s.repo.List(ctx, &farmaciaID)
	if err != nil {
		return err
	}
	for i := range metas {
		if err := s.recalcular(ctx, &metas[i]); err != nil {
			return err
		}
	}
	return nil
}

// recalcular derives the estado from the verified total and persists it.
// logrado once the target is reached; no_logrado only after the window closed.
func (s *metaService) recalcular(ctx context.Context, m *model.Meta) error {
	logrado, err := s.totalVerificado(ctx, m)
	if err != nil {
		return err
	}

	estado := "por_lograr"
	switch {
	case logrado.GreaterThanOrEqual(m.MontoUsd):
		estado = "logrado"
	case time.Now().After(m.FechaFin.AddDate(0, 0, 1)):
		estado = "no_logrado"
	}
	if estado == m.Estado {
		return nil
	}
	m.Estado = estado
	return s.repo.Update(ctx, m)
}

func (s *metaService) totalVerificado(ctx context.Context, m *model.Meta) (decimal.Decimal, error) {
	cuadres, err := s.cuadres.List(ctx, repository.FiltroCuadres{
		FarmaciaID:  &m.FarmaciaID,
		FechaInicio: &m.FechaInicio,
		FechaFin:    &m.FechaFin,
		Estado:      "verified",
	})
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for i := range cuadres {
		total = total.Add(cuadres[i].TotalUSD())
	}
	return total, nil
}

func (s *metaService) buildResponse(ctx context.Context, m *model.Meta) (*dto.MetaResponse, error) {
	logrado, err := s.totalVerificado(ctx, m)
	if err != nil {
		return nil, err
	}

	avance := decimal.Zero
	if m.MontoUsd.IsPositive() {
		avance = logrado.Div(m.MontoUsd).Mul(decimal.NewFromInt(100)).Round(2)
	}

	resp := &dto.MetaResponse{
		ID:          m.ID.String(),
		FarmaciaID:  m.FarmaciaID.String(),
		Descripcion: m.Descripcion,
		MontoUsd:    m.MontoUsd,
		LogradoUsd:  logrado.Round(2),
		AvancePct:   avance,
		FechaInicio: fechaStr(m.FechaInicio),
		FechaFin:    fechaStr(m.FechaFin),
		Estado:      m.Estado,
	}
	if m.Farmacia != nil {
		resp.Farmacia = m.Farmacia.Nombre
	}
	return resp, nil
}
