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

func TestCrearGastoEnBsRequiereTasa(t *testing.T) {
	svc := NewGastoService(newFakeGastoRepo())

	_, err := svc.Crear(context.Background(), dto.CrearGastoRequest{
		FarmaciaID:  uuid.NewString(),
		Descripcion: "Hielo para la nevera",
		Monto:       dec("100"),
		Divisa:      "Bs",
		Tasa:        dec("0"),
		Fecha:       "2026-08-10",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tasa")
}

func TestTotalGastosMezclaDivisas(t *testing.T) {
	repo := newFakeGastoRepo()
	svc := NewGastoService(repo)
	ctx := context.Background()
	farmaciaID := uuid.New()

	// 50 USD + 100 Bs a tasa 50 (= 2 USD) → 52.00
	require.NoError(t, repo.Create(ctx, &model.Gasto{
		FarmaciaID:  farmaciaID,
		Descripcion: "Papelería",
		Monto:       dec("50"),
		Divisa:      "USD",
		Fecha:       time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC),
		Estado:      "verified",
	}))
	require.NoError(t, repo.Create(ctx, &model.Gasto{
		FarmaciaID:  farmaciaID,
		Descripcion: "Transporte",
		Monto:       dec("100"),
		Divisa:      "Bs",
		Tasa:        dec("50"),
		Fecha:       time.Date(2026, 8, 6, 0, 0, 0, 0, time.UTC),
		Estado:      "verified",
	}))

	resp, err := svc.Total(ctx, dto.FiltroGastosRequest{Farmacia: farmaciaID.String()})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Cantidad)
	assert.True(t, resp.TotalUsd.Equal(dec("52")), "total: %s", resp.TotalUsd)
}

func TestCambiarEstadoGastoSoloDesdeWait(t *testing.T) {
	repo := newFakeGastoRepo()
	svc := NewGastoService(repo)
	ctx := context.Background()

	g := &model.Gasto{
		FarmaciaID:  uuid.New(),
		Descripcion: "Mantenimiento aire",
		Monto:       dec("80"),
		Divisa:      "USD",
		Fecha:       time.Date(2026, 8, 7, 0, 0, 0, 0, time.UTC),
		Estado:      "wait",
	}
	require.NoError(t, repo.Create(ctx, g))

	resp, err := svc.CambiarEstado(ctx, dto.CambiarEstadoGastoRequest{GastoID: g.ID.String(), Estado: "verified"})
	require.NoError(t, err)
	assert.Equal(t, "verified", resp.Estado)

	// Segundo intento: ya no está en wait
	_, err = svc.CambiarEstado(ctx, dto.CambiarEstadoGastoRequest{GastoID: g.ID.String(), Estado: "denied"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ya fue resuelto")
}

func TestListarGastosPorEstado(t *testing.T) {
	repo := newFakeGastoRepo()
	svc := NewGastoService(repo)
	ctx := context.Background()
	farmaciaID := uuid.New()

	for _, estado := range []string{"wait", "verified", "denied"} {
		require.NoError(t, repo.Create(ctx, &model.Gasto{
			FarmaciaID:  farmaciaID,
			Descripcion: "Gasto " + estado,
			Monto:       dec("10"),
			Divisa:      "USD",
			Fecha:       time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			Estado:      estado,
		}))
	}

	resp, err := svc.Listar(ctx, dto.FiltroGastosRequest{Farmacia: farmaciaID.String(), Estado: "denied"})
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "denied", resp[0].Estado)
}
