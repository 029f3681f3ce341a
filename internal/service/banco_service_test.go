package service

import (
	"context"
	"errors"
	"testing"

	"rapifarma/internal/dto"
	"rapifarma/internal/finanzas"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func crearBanco(t *testing.T, svc BancoService, divisa, disponible string) *dto.BancoResponse {
	t.Helper()
	resp, err := svc.Crear(context.Background(), dto.CrearBancoRequest{
		Nombre:     "Banco de Venezuela",
		Divisa:     divisa,
		Disponible: dec(disponible),
	})
	require.NoError(t, err)
	return resp
}

func TestDepositoAumentaDisponible(t *testing.T) {
	repo := newFakeBancoRepo()
	svc := NewBancoService(repo)
	ctx := context.Background()
	banco := crearBanco(t, svc, "USD", "100")

	mov, err := svc.RegistrarMovimiento(ctx, uuid.MustParse(banco.ID), finanzas.MovimientoDeposito, dto.RegistrarMovimientoRequest{
		Monto:       dec("50"),
		Descripcion: "Depósito de cierre",
		Fecha:       "2026-08-10",
	})
	require.NoError(t, err)
	assert.Equal(t, "deposito", mov.Tipo)

	actual, err := svc.Obtener(ctx, uuid.MustParse(banco.ID))
	require.NoError(t, err)
	assert.True(t, actual.Disponible.Equal(dec("150")), "disponible: %s", actual.Disponible)
}

func TestEgresoSinFondosSeRechaza(t *testing.T) {
	repo := newFakeBancoRepo()
	svc := NewBancoService(repo)
	ctx := context.Background()
	banco := crearBanco(t, svc, "USD", "30")

	_, err := svc.RegistrarMovimiento(ctx, uuid.MustParse(banco.ID), finanzas.MovimientoRetiro, dto.RegistrarMovimientoRequest{
		Monto:       dec("31"),
		Descripcion: "Retiro de caja chica",
		Fecha:       "2026-08-10",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, finanzas.ErrFondosInsuficientes))

	// Ni el disponible ni el ledger cambian
	actual, err := svc.Obtener(ctx, uuid.MustParse(banco.ID))
	require.NoError(t, err)
	assert.True(t, actual.Disponible.Equal(dec("30")))
	assert.Empty(t, repo.movimientos)
}

func TestEgresoExactoDejaDisponibleEnCero(t *testing.T) {
	repo := newFakeBancoRepo()
	svc := NewBancoService(repo)
	ctx := context.Background()
	banco := crearBanco(t, svc, "USD", "30")

	_, err := svc.RegistrarMovimiento(ctx, uuid.MustParse(banco.ID), finanzas.MovimientoTransferencia, dto.RegistrarMovimientoRequest{
		Monto:       dec("30"),
		Descripcion: "Transferencia a proveedor",
		Fecha:       "2026-08-10",
	})
	require.NoError(t, err)

	actual, err := svc.Obtener(ctx, uuid.MustParse(banco.ID))
	require.NoError(t, err)
	assert.True(t, actual.Disponible.IsZero())
}

func TestMovimientoEnBsSeConvierteConTasaPromedio(t *testing.T) {
	repo := newFakeBancoRepo()
	svc := NewBancoService(repo)
	ctx := context.Background()
	banco := crearBanco(t, svc, "USD", "0")

	montoEnBs := dec("3600")
	tasa := dec("36")
	mov, err := svc.RegistrarMovimiento(ctx, uuid.MustParse(banco.ID), finanzas.MovimientoDeposito, dto.RegistrarMovimientoRequest{
		Monto:        dec("1"), // lo reemplaza la conversión Bs→USD
		MontoEnBs:    &montoEnBs,
		TasaPromedio: &tasa,
		Descripcion:  "Punto de venta en Bs",
		Fecha:        "2026-08-10",
	})
	require.NoError(t, err)

	assert.True(t, mov.Monto.Equal(dec("100")), "monto: %s", mov.Monto)
	require.NotNil(t, mov.TasaAplicada)
	assert.True(t, mov.TasaAplicada.Equal(tasa))
}

func TestMovimientoSobreCuentaInactiva(t *testing.T) {
	repo := newFakeBancoRepo()
	svc := NewBancoService(repo)
	ctx := context.Background()
	banco := crearBanco(t, svc, "USD", "100")
	require.NoError(t, svc.Desactivar(ctx, uuid.MustParse(banco.ID)))

	_, err := svc.RegistrarMovimiento(ctx, uuid.MustParse(banco.ID), finanzas.MovimientoDeposito, dto.RegistrarMovimientoRequest{
		Monto:       dec("10"),
		Descripcion: "Depósito tardío",
		Fecha:       "2026-08-10",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inactiva")
}

func TestConciliarProyectaDesdeElSaldoInicial(t *testing.T) {
	repo := newFakeBancoRepo()
	svc := NewBancoService(repo)
	ctx := context.Background()
	banco := crearBanco(t, svc, "USD", "100")
	id := uuid.MustParse(banco.ID)

	_, err := svc.RegistrarMovimiento(ctx, id, finanzas.MovimientoDeposito, dto.RegistrarMovimientoRequest{
		Monto: dec("50"), Descripcion: "Depósito", Fecha: "2026-08-10",
	})
	require.NoError(t, err)
	_, err = svc.RegistrarMovimiento(ctx, id, finanzas.MovimientoCheque, dto.RegistrarMovimientoRequest{
		Monto: dec("30"), Descripcion: "Cheque a proveedor", Fecha: "2026-08-11",
	})
	require.NoError(t, err)

	resp, err := svc.Conciliar(ctx, id)
	require.NoError(t, err)
	assert.True(t, resp.Proyectado.Equal(dec("120")), "proyectado: %s", resp.Proyectado)
	assert.True(t, resp.Disponible.Equal(dec("120")))
	assert.True(t, resp.Cuadrado)
}

func TestConciliarDetectaDescuadre(t *testing.T) {
	repo := newFakeBancoRepo()
	svc := NewBancoService(repo)
	ctx := context.Background()
	banco := crearBanco(t, svc, "USD", "100")
	id := uuid.MustParse(banco.ID)

	// Ajuste manual fuera del ledger: la conciliación debe detectarlo
	repo.bancos[id].Disponible = dec("95")

	resp, err := svc.Conciliar(ctx, id)
	require.NoError(t, err)
	assert.True(t, resp.Proyectado.Equal(dec("100")))
	assert.False(t, resp.Cuadrado)
}
