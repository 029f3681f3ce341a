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
)

type GastoService interface {
	Crear(ctx context.Context, req dto.CrearGastoRequest) (*dto.GastoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.GastoResponse, error)
	Listar(ctx context.Context, req dto.FiltroGastosRequest) ([]dto.GastoResponse, error)
	CambiarEstado(ctx context.Context, req dto.CambiarEstadoGastoRequest) (*dto.GastoResponse, error)
	// Total aggregates the filtered gastos into a single USD figure.
	Total(ctx context.Context, req dto.FiltroGastosRequest) (*dto.TotalGastosResponse, error)
}

type gastoService struct {
	repo repository.GastoRepository
}

func NewGastoService(repo repository.GastoRepository) GastoService {
	return &gastoService{repo: repo}
}

func (s *gastoService) Crear(ctx context.Context, req dto.CrearGastoRequest) (*dto.GastoResponse, error) {
	farmaciaID, err := uuid.Parse(req.FarmaciaID)
	if err != nil {
		return nil, errors.New("farmacia_id inválido")
	}
	fecha, err := parseFecha(req.Fecha)
	if err != nil {
		return nil, err
	}
	if req.Divisa == finanzas.DivisaBs && !req.Tasa.IsPositive() {
		return nil, errors.New("los gastos en Bs requieren una tasa mayor a cero")
	}

	g := &model.Gasto{
		FarmaciaID:  farmaciaID,
		Descripcion: req.Descripcion,
		Categoria:   req.Categoria,
		Monto:       req.Monto,
		Divisa:      req.Divisa,
		Tasa:        req.Tasa,
		Fecha:       fecha,
		Estado:      "wait",
	}
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}
	resp := toGastoResponse(g)
	return &resp, nil
}

func (s *gastoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.GastoResponse, error) {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("gasto no encontrado")
	}
	resp := toGastoResponse(g)
	return &resp, nil
}

func (s *gastoService) Listar(ctx context.Context, req dto.FiltroGastosRequest) ([]dto.GastoResponse, error) {
	filtro, err := buildFiltroGastos(req)
	if err != nil {
		return nil, err
	}
	gastos, err := s.repo.List(ctx, filtro)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.GastoResponse, len(gastos))
	for i := range gastos {
		resp[i] = toGastoResponse(&gastos[i])
	}
	return resp, nil
}

func (s *gastoService) CambiarEstado(ctx context.Context, req dto.CambiarEstadoGastoRequest) (*dto.GastoResponse, error) {
	id, err := uuid.Parse(req.GastoID)
	if err != nil {
		return nil, errors.New("gasto_id inválido")
	}
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("gasto no encontrado")
	}
	if g.Estado != "wait" {
		return nil, fmt.Errorf("el gasto ya fue resuelto (estado actual: %s)", g.Estado)
	}
	g.Estado = req.Estado
	if err := s.repo.Update(ctx, g); err != nil {
		return nil, err
	}
	resp := toGastoResponse(g)
	return &resp, nil
}

func (s *gastoService) Total(ctx context.Context, req dto.FiltroGastosRequest) (*dto.TotalGastosResponse, error) {
	filtro, err := buildFiltroGastos(req)
	if err != nil {
		return nil, err
	}
	gastos, err := s.repo.List(ctx, filtro)
	if err != nil {
		return nil, err
	}

	totales := finanzas.Agregar(gastos, func(g model.Gasto) finanzas.Clasificado {
		return finanzas.Clasificado{
			Bucket:   "total",
			MontoUSD: finanzas.Normalizar(g.Monto, g.Divisa, g.Tasa),
		}
	})

	return &dto.TotalGastosResponse{
		Cantidad: len(gastos),
		TotalUsd: totales["total"].Round(2),
	}, nil
}

func buildFiltroGastos(req dto.FiltroGastosRequest) (repository.FiltroGastos, error) {
	filtro := repository.FiltroGastos{Estado: req.Estado}
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

func toGastoResponse(g *model.Gasto) dto.GastoResponse {
	resp := dto.GastoResponse{
		ID:          g.ID.String(),
		FarmaciaID:  g.FarmaciaID.String(),
		Descripcion: g.Descripcion,
		Categoria:   g.Categoria,
		Monto:       g.Monto,
		Divisa:      g.Divisa,
		Tasa:        g.Tasa,
		MontoUsd:    finanzas.Normalizar(g.Monto, g.Divisa, g.Tasa).Round(2),
		Fecha:       fechaStr(g.Fecha),
		Estado:      g.Estado,
	}
	if g.Farmacia != nil {
		resp.Farmacia = g.Farmacia.Nombre
	}
	return resp
}
