package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearCuentaPorPagarRequest struct {
	FarmaciaID       string          `json:"farmacia_id"       validate:"required,uuid"`
	Proveedor        string          `json:"proveedor"         validate:"required,min=2"`
	NumeroFactura    string          `json:"numero_factura"    validate:"required,min=1"`
	Monto            decimal.Decimal `json:"monto"             validate:"required,gt=0"`
	Divisa           string          `json:"divisa"            validate:"required,oneof=USD Bs"`
	Tasa             decimal.Decimal `json:"tasa"              validate:"min=0"`
	FechaEmision     string          `json:"fecha_emision"     validate:"required,datetime=2006-01-02"`
	FechaRecepcion   *string         `json:"fecha_recepcion"   validate:"omitempty,datetime=2006-01-02"`
	FechaVencimiento *string         `json:"fecha_vencimiento" validate:"omitempty,datetime=2006-01-02"`
	Observaciones    *string         `json:"observaciones"`
}

type CambiarEstatusCPPRequest struct {
	Estatus string `json:"estatus" validate:"required,oneof=activa pagada anulada cancelada"`
}

// FiltroRangoCPPRequest maps GET /cuentas-por-pagar/rango query params.
type FiltroRangoCPPRequest struct {
	StartDate string `form:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"endDate"   validate:"omitempty,datetime=2006-01-02"`
	Farmacia  string `form:"farmacia"  validate:"omitempty,uuid"`
	Estatus   string `form:"estatus"   validate:"omitempty,oneof=activa pagada anulada cancelada"`
}

type RegistrarPagoCPPRequest struct {
	CuentaPorPagarID string          `json:"cuenta_por_pagar_id" validate:"required,uuid"`
	Monto            decimal.Decimal `json:"monto"               validate:"required,gt=0"`
	Divisa           string          `json:"divisa"              validate:"required,oneof=USD Bs"`
	Tasa             decimal.Decimal `json:"tasa"                validate:"min=0"`
	MetodoPago       *string         `json:"metodo_pago"`
	Referencia       *string         `json:"referencia"`
	Fecha            string          `json:"fecha"               validate:"required,datetime=2006-01-02"`
}

type CambiarEstadoPagoRequest struct {
	Estado string `json:"estado" validate:"required,oneof=aprobado rechazado"`
}

// FiltroRangoPagosRequest maps GET /pagos-cpp/rango-fechas query params.
// Ambos extremos son obligatorios e inclusivos.
type FiltroRangoPagosRequest struct {
	FechaInicio string `form:"fechaInicio" validate:"required,datetime=2006-01-02"`
	FechaFin    string `form:"fechaFin"    validate:"required,datetime=2006-01-02"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PagoCPPResponse struct {
	ID               string          `json:"id"`
	CuentaPorPagarID string          `json:"cuenta_por_pagar_id"`
	Monto            decimal.Decimal `json:"monto"`
	Divisa           string          `json:"divisa"`
	Tasa             decimal.Decimal `json:"tasa"`
	MontoUsd         decimal.Decimal `json:"monto_usd"`
	MetodoPago       *string         `json:"metodo_pago"`
	Referencia       *string         `json:"referencia"`
	Fecha            string          `json:"fecha"`
	Estado           string          `json:"estado"`
}

type CuentaPorPagarResponse struct {
	ID               string            `json:"id"`
	FarmaciaID       string            `json:"farmacia_id"`
	Farmacia         string            `json:"farmacia,omitempty"`
	Proveedor        string            `json:"proveedor"`
	NumeroFactura    string            `json:"numero_factura"`
	Monto            decimal.Decimal   `json:"monto"`
	Divisa           string            `json:"divisa"`
	Tasa             decimal.Decimal   `json:"tasa"`
	MontoUsd         decimal.Decimal   `json:"monto_usd"`
	SaldoPendiente   decimal.Decimal   `json:"saldo_pendiente"`
	Sobrepagada      bool              `json:"sobrepagada"`
	FechaEmision     string            `json:"fecha_emision"`
	FechaRecepcion   *string           `json:"fecha_recepcion"`
	FechaVencimiento *string           `json:"fecha_vencimiento"`
	Estatus          string            `json:"estatus"`
	Observaciones    *string           `json:"observaciones"`
	Pagos            []PagoCPPResponse `json:"pagos,omitempty"`
}
