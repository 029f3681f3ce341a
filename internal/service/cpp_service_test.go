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

func newCPPEnv() (*cppStore, CuentaPorPagarService) {
	store := newCPPStore()
	svc := NewCuentaPorPagarService(&fakeCPPRepo{s: store}, &fakePagoCPPRepo{s: store})
	return store, svc
}

func crearCuenta(t *testing.T, svc CuentaPorPagarService, monto, divisa, tasa string) *dto.CuentaPorPagarResponse {
	t.Helper()
	resp, err := svc.Crear(context.Background(), dto.CrearCuentaPorPagarRequest{
		FarmaciaID:    uuid.NewString(),
		Proveedor:     "Droguería Nena",
		NumeroFactura: "F-00125",
		Monto:         dec(monto),
		Divisa:        divisa,
		Tasa:          dec(tasa),
		FechaEmision:  "2026-08-01",
	})
	require.NoError(t, err)
	return resp
}

func TestPagoCompletoMarcaCuentaPagada(t *testing.T) {
	_, svc := newCPPEnv()
	ctx := context.Background()
	cuenta := crearCuenta(t, svc, "100", "USD", "0")

	pago, err := svc.RegistrarPago(ctx, dto.RegistrarPagoCPPRequest{
		CuentaPorPagarID: cuenta.ID,
		Monto:            dec("100"),
		Divisa:           "USD",
		Fecha:            "2026-08-10",
	})
	require.NoError(t, err)
	assert.Equal(t, "pendiente", pago.Estado)

	// El pago pendiente ya cubre el monto: saldo 0 → pagada
	actual, err := svc.Obtener(ctx, uuid.MustParse(cuenta.ID))
	require.NoError(t, err)
	assert.Equal(t, "pagada", actual.Estatus)
	assert.True(t, actual.SaldoPendiente.IsZero())
	assert.False(t, actual.Sobrepagada)
}

func TestPagoRechazadoReabreLaCuenta(t *testing.T) {
	_, svc := newCPPEnv()
	ctx := context.Background()
	cuenta := crearCuenta(t, svc, "100", "USD", "0")

	pago, err := svc.RegistrarPago(ctx, dto.RegistrarPagoCPPRequest{
		CuentaPorPagarID: cuenta.ID,
		Monto:            dec("100"),
		Divisa:           "USD",
		Fecha:            "2026-08-10",
	})
	require.NoError(t, err)

	_, err = svc.CambiarEstadoPago(ctx, uuid.MustParse(pago.ID), dto.CambiarEstadoPagoRequest{Estado: "rechazado"})
	require.NoError(t, err)

	actual, err := svc.Obtener(ctx, uuid.MustParse(cuenta.ID))
	require.NoError(t, err)
	assert.Equal(t, "activa", actual.Estatus)
	assert.True(t, actual.SaldoPendiente.Equal(dec("100")))
}

func TestSobrepagoQuedaRepresentado(t *testing.T) {
	_, svc := newCPPEnv()
	ctx := context.Background()
	cuenta := crearCuenta(t, svc, "100", "USD", "0")

	_, err := svc.RegistrarPago(ctx, dto.RegistrarPagoCPPRequest{
		CuentaPorPagarID: cuenta.ID,
		Monto:            dec("120"),
		Divisa:           "USD",
		Fecha:            "2026-08-10",
	})
	require.NoError(t, err)

	actual, err := svc.Obtener(ctx, uuid.MustParse(cuenta.ID))
	require.NoError(t, err)
	assert.Equal(t, "pagada", actual.Estatus)
	assert.True(t, actual.SaldoPendiente.Equal(dec("-20")), "saldo: %s", actual.SaldoPendiente)
	assert.True(t, actual.Sobrepagada)
}

func TestPagoEnBsSeNormalizaConSuTasa(t *testing.T) {
	_, svc := newCPPEnv()
	ctx := context.Background()
	cuenta := crearCuenta(t, svc, "100", "USD", "0")

	// 1800 Bs a tasa 36 = 50 USD
	_, err := svc.RegistrarPago(ctx, dto.RegistrarPagoCPPRequest{
		CuentaPorPagarID: cuenta.ID,
		Monto:            dec("1800"),
		Divisa:           "Bs",
		Tasa:             dec("36"),
		Fecha:            "2026-08-10",
	})
	require.NoError(t, err)

	actual, err := svc.Obtener(ctx, uuid.MustParse(cuenta.ID))
	require.NoError(t, err)
	assert.Equal(t, "activa", actual.Estatus)
	assert.True(t, actual.SaldoPendiente.Equal(dec("50")), "saldo: %s", actual.SaldoPendiente)
}

func TestRegistrarPagoRechazadoSobreCuentaNoActiva(t *testing.T) {
	store, svc := newCPPEnv()
	ctx := context.Background()
	cuenta := crearCuenta(t, svc, "100", "USD", "0")

	store.cuentas[uuid.MustParse(cuenta.ID)].Estatus = "anulada"

	_, err := svc.RegistrarPago(ctx, dto.RegistrarPagoCPPRequest{
		CuentaPorPagarID: cuenta.ID,
		Monto:            dec("10"),
		Divisa:           "USD",
		Fecha:            "2026-08-10",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anulada")
}

func TestCuentaAnuladaNoAdmiteCambios(t *testing.T) {
	store, svc := newCPPEnv()
	ctx := context.Background()
	cuenta := crearCuenta(t, svc, "100", "USD", "0")
	store.cuentas[uuid.MustParse(cuenta.ID)].Estatus = "anulada"

	_, err := svc.CambiarEstatus(ctx, uuid.MustParse(cuenta.ID), dto.CambiarEstatusCPPRequest{Estatus: "activa"})
	require.Error(t, err)
}

func TestCambiarEstadoPagoSoloDesdePendiente(t *testing.T) {
	_, svc := newCPPEnv()
	ctx := context.Background()
	cuenta := crearCuenta(t, svc, "100", "USD", "0")

	pago, err := svc.RegistrarPago(ctx, dto.RegistrarPagoCPPRequest{
		CuentaPorPagarID: cuenta.ID,
		Monto:            dec("40"),
		Divisa:           "USD",
		Fecha:            "2026-08-10",
	})
	require.NoError(t, err)

	_, err = svc.CambiarEstadoPago(ctx, uuid.MustParse(pago.ID), dto.CambiarEstadoPagoRequest{Estado: "aprobado"})
	require.NoError(t, err)

	_, err = svc.CambiarEstadoPago(ctx, uuid.MustParse(pago.ID), dto.CambiarEstadoPagoRequest{Estado: "rechazado"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ya fue resuelto")
}

func TestListarRangoPorFechaEmision(t *testing.T) {
	store, svc := newCPPEnv()
	ctx := context.Background()
	farmaciaID := uuid.New()

	for dia, estatus := range map[int]string{5: "activa", 20: "pagada"} {
		cuenta := &model.CuentaPorPagar{
			FarmaciaID:    farmaciaID,
			Proveedor:     "Proveedor X",
			NumeroFactura: "F-1",
			Monto:         dec("10"),
			Divisa:        "USD",
			FechaEmision:  time.Date(2026, 8, dia, 0, 0, 0, 0, time.UTC),
			Estatus:       estatus,
		}
		require.NoError(t, (&fakeCPPRepo{s: store}).Create(ctx, cuenta))
	}

	resp, err := svc.ListarRango(ctx, dto.FiltroRangoCPPRequest{
		StartDate: "2026-08-01",
		EndDate:   "2026-08-10",
		Farmacia:  farmaciaID.String(),
	})
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "activa", resp[0].Estatus)
}

func TestListarPagosPorRangoDeFechas(t *testing.T) {
	store, svc := newCPPEnv()
	ctx := context.Background()
	cuenta := crearCuenta(t, svc, "1000", "USD", "0")

	for _, fecha := range []string{"2026-08-01", "2026-08-31", "2026-09-05"} {
		_, err := svc.RegistrarPago(ctx, dto.RegistrarPagoCPPRequest{
			CuentaPorPagarID: cuenta.ID,
			Monto:            dec("50"),
			Divisa:           "USD",
			Fecha:            fecha,
		})
		require.NoError(t, err)
	}
	require.Len(t, store.pagos, 3)

	// Ambos extremos del rango cuentan
	resp, err := svc.ListarPagosRango(ctx, dto.FiltroRangoPagosRequest{
		FechaInicio: "2026-08-01",
		FechaFin:    "2026-08-31",
	})
	require.NoError(t, err)
	assert.Len(t, resp, 2)

	_, err = svc.ListarPagosRango(ctx, dto.FiltroRangoPagosRequest{
		FechaInicio: "2026-09-30",
		FechaFin:    "2026-09-01",
	})
	require.Error(t, err)
}
