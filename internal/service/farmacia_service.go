package service

import (
	"context"
	"errors"

	"rapifarma/internal/dto"
	"rapifarma/internal/infra"
	"rapifarma/internal/model"
	"rapifarma/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type FarmaciaService interface {
	Crear(ctx context.Context, req dto.CrearFarmaciaRequest) (*dto.FarmaciaResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.FarmaciaResponse, error)
	Listar(ctx context.Context) ([]dto.FarmaciaResponse, error)
	// Mapa returns the id→nombre map the dashboard selectors consume.
	Mapa(ctx context.Context) (*dto.MapaFarmaciasResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarFarmaciaRequest) (*dto.FarmaciaResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	// SincronizarDesdeLegacy imports the branch catalog from the legacy API,
	// creating missing branches and refreshing renamed ones.
	SincronizarDesdeLegacy(ctx context.Context) (*dto.SincronizacionResponse, error)
	ListarCajeros(ctx context.Context, farmaciaID *uuid.UUID) ([]dto.CajeroResponse, error)
	CrearCajero(ctx context.Context, req dto.CrearCajeroRequest) (*dto.CajeroResponse, error)
	// Inventarios consulta las existencias en la API legada; el stock sigue
	// siendo propiedad del POS y aquí no se persiste.
	Inventarios(ctx context.Context) ([]dto.InventarioResponse, error)
}

type farmaciaService struct {
	repo   repository.FarmaciaRepository
	legacy *infra.LegacyClient
	cb     *infra.CircuitBreaker
}

func NewFarmaciaService(repo repository.FarmaciaRepository, legacy *infra.LegacyClient, cb *infra.CircuitBreaker) FarmaciaService {
	return &farmaciaService{repo: repo, legacy: legacy, cb: cb}
}

func (s *farmaciaService) Crear(ctx context.Context, req dto.CrearFarmaciaRequest) (*dto.FarmaciaResponse, error) {
	if existing, err := s.repo.FindByCodigoLegado(ctx, req.CodigoLegado); err == nil && existing != nil {
		return nil, errors.New("ya existe una farmacia con ese código")
	}
	f := &model.Farmacia{
		CodigoLegado: req.CodigoLegado,
		Nombre:       req.Nombre,
		Direccion:    req.Direccion,
		Activa:       true,
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	resp := toFarmaciaResponse(f)
	return &resp, nil
}

func (s *farmaciaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.FarmaciaResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("farmacia no encontrada")
	}
	resp := toFarmaciaResponse(f)
	return &resp, nil
}

func (s *farmaciaService) Listar(ctx context.Context) ([]dto.FarmaciaResponse, error) {
	farmacias, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.FarmaciaResponse, len(farmacias))
	for i := range farmacias {
		resp[i] = toFarmaciaResponse(&farmacias[i])
	}
	return resp, nil
}

func (s *farmaciaService) Mapa(ctx context.Context) (*dto.MapaFarmaciasResponse, error) {
	farmacias, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	mapa := make(map[string]string, len(farmacias))
	for i := range farmacias {
		mapa[farmacias[i].ID.String()] = farmacias[i].Nombre
	}
	return &dto.MapaFarmaciasResponse{Farmacias: mapa}, nil
}

func (s *farmaciaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarFarmaciaRequest) (*dto.FarmaciaResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("farmacia no encontrada")
	}
	if req.Nombre != "" {
		f.Nombre = req.Nombre
	}
	if req.Direccion != nil {
		f.Direccion = req.Direccion
	}
	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	resp := toFarmaciaResponse(f)
	return &resp, nil
}

func (s *farmaciaService) Desactivar(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *farmaciaService) SincronizarDesdeLegacy(ctx context.Context) (*dto.SincronizacionResponse, error) {
	var catalogo map[string]string
	cbErr := s.cb.Execute(func() error {
		m, err := s.legacy.FetchFarmacias(ctx)
		if err != nil {
			return err
		}
		catalogo = m
		return nil
	})
	if cbErr != nil {
		return nil, cbErr
	}

	resumen := &dto.SincronizacionResponse{}
	for codigo, nombre := range catalogo {
		existing, err := s.repo.FindByCodigoLegado(ctx, codigo)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			f := &model.Farmacia{CodigoLegado: codigo, Nombre: nombre, Activa: true}
			if err := s.repo.Create(ctx, f); err != nil {
				log.Error().Err(err).Str("codigo", codigo).Msg("sincronizacion: no se pudo crear farmacia")
				continue
			}
			resumen.Importadas++
		case err != nil:
			return nil, err
		case existing.Nombre != nombre:
			existing.Nombre = nombre
			if err := s.repo.Update(ctx, existing); err != nil {
				log.Error().Err(err).Str("codigo", codigo).Msg("sincronizacion: no se pudo actualizar farmacia")
				continue
			}
			resumen.Actualizadas++
		}
	}
	log.Info().
		Int("importadas", resumen.Importadas).
		Int("actualizadas", resumen.Actualizadas).
		Msg("sincronizacion de farmacias completada")
	return resumen, nil
}

func (s *farmaciaService) Inventarios(ctx context.Context) ([]dto.InventarioResponse, error) {
	var filas []infra.InventarioLegado
	cbErr := s.cb.Execute(func() error {
		f, err := s.legacy.FetchInventarios(ctx)
		if err != nil {
			return err
		}
		filas = f
		return nil
	})
	if cbErr != nil {
		return nil, cbErr
	}

	resp := make([]dto.InventarioResponse, len(filas))
	for i, f := range filas {
		resp[i] = dto.InventarioResponse{
			Codigo:     f.Codigo,
			Nombre:     f.Nombre,
			Existencia: f.Existencia,
			Farmacia:   f.Farmacia,
		}
	}
	return resp, nil
}

func (s *farmaciaService) ListarCajeros(ctx context.Context, farmaciaID *uuid.UUID) ([]dto.CajeroResponse, error) {
	cajeros, err := s.repo.ListCajeros(ctx, farmaciaID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CajeroResponse, len(cajeros))
	for i, c := range cajeros {
		resp[i] = dto.CajeroResponse{
			ID:         c.ID.String(),
			FarmaciaID: c.FarmaciaID.String(),
			Nombre:     c.Nombre,
			Activo:     c.Activo,
		}
	}
	return resp, nil
}

func (s *farmaciaService) CrearCajero(ctx context.Context, req dto.CrearCajeroRequest) (*dto.CajeroResponse, error) {
	farmaciaID, err := uuid.Parse(req.FarmaciaID)
	if err != nil {
		return nil, errors.New("farmacia_id inválido")
	}
	if _, err := s.repo.FindByID(ctx, farmaciaID); err != nil {
		return nil, errors.New("farmacia no encontrada")
	}
	c := &model.Cajero{FarmaciaID: farmaciaID, Nombre: req.Nombre, Activo: true}
	if err := s.repo.CreateCajero(ctx, c); err != nil {
		return nil, err
	}
	return &dto.CajeroResponse{
		ID:         c.ID.String(),
		FarmaciaID: c.FarmaciaID.String(),
		Nombre:     c.Nombre,
		Activo:     c.Activo,
	}, nil
}

func toFarmaciaResponse(f *model.Farmacia) dto.FarmaciaResponse {
	return dto.FarmaciaResponse{
		ID:           f.ID.String(),
		CodigoLegado: f.CodigoLegado,
		Nombre:       f.Nombre,
		Direccion:    f.Direccion,
		Activa:       f.Activa,
	}
}
