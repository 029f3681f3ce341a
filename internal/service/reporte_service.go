package service

import (
	"context"
	"errors"
	"time"

	"rapifarma/internal/dto"
	"rapifarma/internal/model"
	"rapifarma/internal/repository"
	"rapifarma/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ReporteDispatcher is the slice of the async dispatcher the report flow needs.
type ReporteDispatcher interface {
	EnqueueReporte(ctx context.Context, payload interface{}) error
}

type ReporteService interface {
	// Solicitar persists the request and enqueues the export job; the caller
	// polls Obtener until the estado reaches completado.
	Solicitar(ctx context.Context, solicitadoPor uuid.UUID, req dto.SolicitarReporteRequest) (*dto.ReporteResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ReporteResponse, error)
	// Archivo returns the path of the generated file ("xlsx" | "pdf").
	Archivo(ctx context.Context, id uuid.UUID, formato string) (string, error)
}

type reporteService struct {
	repo       repository.ReporteRepository
	dispatcher ReporteDispatcher
}

func NewReporteService(repo repository.ReporteRepository, dispatcher ReporteDispatcher) ReporteService {
	return &reporteService{repo: repo, dispatcher: dispatcher}
}

func (s *reporteService) Solicitar(ctx context.Context, solicitadoPor uuid.UUID, req dto.SolicitarReporteRequest) (*dto.ReporteResponse, error) {
	farmaciaID, err := parseUUIDPtr(req.FarmaciaID)
	if err != nil {
		return nil, err
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

	rep := &model.Reporte{
		FarmaciaID:    farmaciaID,
		FechaInicio:   inicio,
		FechaFin:      fin,
		SolicitadoPor: solicitadoPor,
		EmailDestino:  req.EmailDestino,
		Estado:        "pendiente",
	}
	if err := s.repo.Create(ctx, rep); err != nil {
		return nil, err
	}

	job := worker.ReporteJobPayload{ReporteID: rep.ID.String()}
	if err := s.dispatcher.EnqueueReporte(ctx, job); err != nil {
		// Sin cola no hay worker que lo tome: se agenda el primer reintento
		// para que el cron lo re-encole (solo considera next_retry_at no nulo).
		next := time.Now().Add(time.Minute)
		rep.NextRetryAt = &next
		log.Error().Err(err).Str("reporte_id", rep.ID.String()).Msg("reportes: no se pudo encolar el job, reintento agendado")
		if uerr := s.repo.Update(ctx, rep); uerr != nil {
			log.Error().Err(uerr).Str("reporte_id", rep.ID.String()).Msg("reportes: no se pudo agendar el reintento")
		}
	}

	resp := toReporteResponse(rep)
	return &resp, nil
}

func (s *reporteService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ReporteResponse, error) {
	rep, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("reporte no encontrado")
	}
	resp := toReporteResponse(rep)
	return &resp, nil
}

func (s *reporteService) Archivo(ctx context.Context, id uuid.UUID, formato string) (string, error) {
	rep, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", errors.New("reporte no encontrado")
	}
	if rep.Estado != "completado" {
		return "", errors.New("el reporte aún no está listo")
	}
	switch formato {
	case "xlsx":
		if rep.ArchivoXlsx == nil {
			return "", errors.New("el reporte no tiene archivo xlsx")
		}
		return *rep.ArchivoXlsx, nil
	case "pdf":
		if rep.ArchivoPdf == nil {
			return "", errors.New("el reporte no tiene archivo pdf")
		}
		return *rep.ArchivoPdf, nil
	default:
		return "", errors.New("formato inválido: use xlsx o pdf")
	}
}

func toReporteResponse(r *model.Reporte) dto.ReporteResponse {
	return dto.ReporteResponse{
		ID:          r.ID.String(),
		FarmaciaID:  uuidStrPtr(r.FarmaciaID),
		FechaInicio: fechaStr(r.FechaInicio),
		FechaFin:    fechaStr(r.FechaFin),
		Estado:      r.Estado,
		ArchivoXlsx: r.ArchivoXlsx,
		ArchivoPdf:  r.ArchivoPdf,
		LastError:   r.LastError,
	}
}
