// Package finanzas concentra la aritmética financiera del back-office:
// normalización de divisas (Bs→USD por tasa), filtros de rango y estado,
// agregación por buckets y proyección de saldos bancarios.
//
// Todas las funciones son puras y totales: una entrada faltante o inválida
// degrada a cero/false en lugar de provocar un panic. Los totales en USD
// simplemente excluyen los montos que no se pueden normalizar.
package finanzas

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Divisas aceptadas por el dashboard. La vocal del legado varía
// ("Bs", "bs", "BS"), por eso la comparación es case-insensitive.
const (
	DivisaUSD = "USD"
	DivisaBs  = "Bs"
)

// Normalizar convierte un monto etiquetado con su divisa a USD.
// USD pasa sin cambios. Bs se divide por la tasa (bolívares por dólar)
// cuando ésta es positiva; sin tasa válida el monto queda en cero para
// no contaminar los totales con NaN ni divisiones por cero.
func Normalizar(monto decimal.Decimal, divisa string, tasa decimal.Decimal) decimal.Decimal {
	if !strings.EqualFold(divisa, DivisaBs) {
		return monto
	}
	if tasa.IsPositive() {
		return monto.Div(tasa)
	}
	return decimal.Zero
}
