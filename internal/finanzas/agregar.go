package finanzas

import "github.com/shopspring/decimal"

// Clasificado es el resultado de clasificar un registro para agregación:
// a qué bucket pertenece y cuánto aporta ya normalizado a USD.
type Clasificado struct {
	Bucket   string
	MontoUSD decimal.Decimal
}

// Agregar suma montos normalizados por bucket. El discriminante lo aporta el
// llamador (sobrante/faltante por signo, activa/pagada por estado, etc.).
// Un Bucket vacío excluye el registro del total.
func Agregar[T any](registros []T, clasificar func(T) Clasificado) map[string]decimal.Decimal {
	totales := make(map[string]decimal.Decimal)
	for _, r := range registros {
		c := clasificar(r)
		if c.Bucket == "" {
			continue
		}
		totales[c.Bucket] = totales[c.Bucket].Add(c.MontoUSD)
	}
	return totales
}

// DividirDiferencia reparte una diferencia de cuadre entre sobrante y
// faltante con comparación estricta: una diferencia de cero no aporta a
// ninguno de los dos buckets.
func DividirDiferencia(diferenciaUSD decimal.Decimal) (sobrante, faltante decimal.Decimal) {
	switch {
	case diferenciaUSD.IsPositive():
		return diferenciaUSD, decimal.Zero
	case diferenciaUSD.IsNegative():
		return decimal.Zero, diferenciaUSD.Abs()
	default:
		return decimal.Zero, decimal.Zero
	}
}

// Variacion calcula el cambio porcentual mes-contra-mes, redondeado a dos
// decimales. Con base cero o negativa devuelve 0 — nunca divide por cero.
func Variacion(actual, anterior decimal.Decimal) decimal.Decimal {
	if !anterior.IsPositive() {
		return decimal.Zero
	}
	return actual.Sub(anterior).Div(anterior).Mul(decimal.NewFromInt(100)).Round(2)
}
