package service

import (
	"context"
	"testing"
	"time"

	"rapifarma/internal/dto"
	"rapifarma/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCuadreVerificado(t *testing.T, repo *fakeCuadreRepo, farmaciaID uuid.UUID, fecha time.Time, usd string) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &model.Cuadre{
		FarmaciaID:  farmaciaID,
		CajeroID:    uuid.New(),
		Fecha:       fecha,
		EfectivoUsd: dec(usd),
		Tasa:        dec("36"),
		Estado:      "verified",
	}))
}

func TestMetaSoloSumaCuadresVerificados(t *testing.T) {
	cuadreRepo := newFakeCuadreRepo()
	metaRepo := newFakeMetaRepo()
	svc := NewMetaService(metaRepo, cuadreRepo)
	ctx := context.Background()
	farmaciaID := uuid.New()

	seedCuadreVerificado(t, cuadreRepo, farmaciaID, time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC), "60")
	// Un cuadre en wait no cuenta para la meta
	require.NoError(t, cuadreRepo.Create(ctx, &model.Cuadre{
		FarmaciaID:  farmaciaID,
		CajeroID:    uuid.New(),
		Fecha:       time.Date(2026, 8, 6, 0, 0, 0, 0, time.UTC),
		EfectivoUsd: dec("500"),
		Tasa:        dec("36"),
		Estado:      "wait",
	}))

	resp, err := svc.Crear(ctx, dto.CrearMetaRequest{
		FarmaciaID:  farmaciaID.String(),
		MontoUsd:    dec("120"),
		FechaInicio: "2026-08-01",
		FechaFin:    "2026-08-31",
	})
	require.NoError(t, err)

	assert.True(t, resp.LogradoUsd.Equal(dec("60")), "logrado: %s", resp.LogradoUsd)
	assert.True(t, resp.AvancePct.Equal(dec("50")), "avance: %s", resp.AvancePct)
	assert.Equal(t, "por_lograr", resp.Estado)
}

func TestRecalcularMarcaLogrado(t *testing.T) {
	cuadreRepo := newFakeCuadreRepo()
	metaRepo := newFakeMetaRepo()
	svc := NewMetaService(metaRepo, cuadreRepo)
	ctx := context.Background()
	farmaciaID := uuid.New()

	meta := &model.Meta{
		FarmaciaID:  farmaciaID,
		MontoUsd:    dec("100"),
		FechaInicio: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		FechaFin:    time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		Estado:      "por_lograr",
	}
	require.NoError(t, metaRepo.Create(ctx, meta))

	seedCuadreVerificado(t, cuadreRepo, farmaciaID, time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC), "70")
	seedCuadreVerificado(t, cuadreRepo, farmaciaID, time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC), "40")

	require.NoError(t, svc.RecalcularPorFarmacia(ctx, farmaciaID))
	assert.Equal(t, "logrado", metaRepo.metas[meta.ID].Estado)
}

func TestMetaVencidaSinAlcanzarQuedaNoLograda(t *testing.T) {
	cuadreRepo := newFakeCuadreRepo()
	metaRepo := newFakeMetaRepo()
	svc := NewMetaService(metaRepo, cuadreRepo)
	ctx := context.Background()
	farmaciaID := uuid.New()

	// Ventana ya cerrada
	meta := &model.Meta{
		FarmaciaID:  farmaciaID,
		MontoUsd:    dec("1000"),
		FechaInicio: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		FechaFin:    time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		Estado:      "por_lograr",
	}
	require.NoError(t, metaRepo.Create(ctx, meta))
	seedCuadreVerificado(t, cuadreRepo, farmaciaID, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), "200")

	require.NoError(t, svc.RecalcularPorFarmacia(ctx, farmaciaID))
	assert.Equal(t, "no_logrado", metaRepo.metas[meta.ID].Estado)
}

func TestCrearMetaRangoInvalido(t *testing.T) {
	svc := NewMetaService(newFakeMetaRepo(), newFakeCuadreRepo())

	_, err := svc.Crear(context.Background(), dto.CrearMetaRequest{
		FarmaciaID:  uuid.NewString(),
		MontoUsd:    dec("100"),
		FechaInicio: "2026-08-31",
		FechaFin:    "2026-08-01",
	})
	require.Error(t, err)
}
