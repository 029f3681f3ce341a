package finanzas

import (
	"errors"

	"github.com/shopspring/decimal"
)

// EstadoPagoRechazado excluye un pago del saldo de su cuenta por pagar.
const EstadoPagoRechazado = "rechazado"

// PagoAplicado es la vista mínima de un pago que necesita el cálculo de
// saldo: monto con su divisa/tasa y el estado del pago.
type PagoAplicado struct {
	Monto  decimal.Decimal
	Divisa string
	Tasa   decimal.Decimal
	Estado string
}

// SaldoPendiente devuelve el monto restante en USD de una cuenta por pagar:
// total normalizado de la cuenta menos la suma normalizada de sus pagos no
// rechazados. Puede ser negativo — un sobrepago debe ser detectable por el
// llamador, no recortado a cero.
func SaldoPendiente(monto decimal.Decimal, divisa string, tasa decimal.Decimal, pagos []PagoAplicado) decimal.Decimal {
	saldo := Normalizar(monto, divisa, tasa)
	for _, p := range pagos {
		if p.Estado == EstadoPagoRechazado {
			continue
		}
		saldo = saldo.Sub(Normalizar(p.Monto, p.Divisa, p.Tasa))
	}
	return saldo
}

// Tipos de movimiento bancario. Solo el depósito incrementa el disponible;
// transferencias, cheques y retiros lo reducen.
const (
	MovimientoDeposito      = "deposito"
	MovimientoTransferencia = "transferencia"
	MovimientoCheque        = "cheque"
	MovimientoRetiro        = "retiro"
)

// MovimientoAplicado es la vista mínima de un asiento del libro bancario.
// Los montos ya vienen en la divisa de la cuenta: la conversión de
// transferencias en Bs ocurre al registrar, no al proyectar.
type MovimientoAplicado struct {
	Tipo  string
	Monto decimal.Decimal
}

// ProyectarSaldo hace el fold cronológico del libro de movimientos sobre el
// saldo de apertura de la cuenta.
func ProyectarSaldo(inicial decimal.Decimal, movimientos []MovimientoAplicado) decimal.Decimal {
	saldo := inicial
	for _, m := range movimientos {
		if m.Tipo == MovimientoDeposito {
			saldo = saldo.Add(m.Monto)
		} else {
			saldo = saldo.Sub(m.Monto)
		}
	}
	return saldo
}

// ErrFondosInsuficientes se devuelve cuando un egreso excede el disponible.
var ErrFondosInsuficientes = errors.New("fondos insuficientes: el monto excede el disponible de la cuenta")

// ValidarEgreso rechaza un egreso (transferencia, cheque o retiro) cuyo
// monto supere el disponible actual. El disponible nunca queda negativo.
func ValidarEgreso(disponible, monto decimal.Decimal) error {
	if monto.GreaterThan(disponible) {
		return ErrFondosInsuficientes
	}
	return nil
}
