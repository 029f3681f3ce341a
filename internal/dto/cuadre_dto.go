package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearCuadreRequest struct {
	FarmaciaID     string          `json:"farmacia_id"      validate:"required,uuid"`
	CajeroID       string          `json:"cajero_id"        validate:"required,uuid"`
	Fecha          string          `json:"fecha"            validate:"required,datetime=2006-01-02"`
	Turno          string          `json:"turno"            validate:"omitempty,oneof=dia tarde noche"`
	TotalSistemaBs decimal.Decimal `json:"total_sistema_bs" validate:"min=0"`
	EfectivoBs     decimal.Decimal `json:"efectivo_bs"      validate:"min=0"`
	EfectivoUsd    decimal.Decimal `json:"efectivo_usd"     validate:"min=0"`
	PuntoBs        decimal.Decimal `json:"punto_bs"         validate:"min=0"`
	PagoMovilBs    decimal.Decimal `json:"pago_movil_bs"    validate:"min=0"`
	ZelleUsd       decimal.Decimal `json:"zelle_usd"        validate:"min=0"`
	Tasa           decimal.Decimal `json:"tasa"             validate:"required,gt=0"`
	Observaciones  *string         `json:"observaciones"`
}

type CambiarEstadoCuadreRequest struct {
	Estado        string  `json:"estado" validate:"required,oneof=verified denied anulada"`
	Observaciones *string `json:"observaciones"`
}

// FiltroCuadresRequest maps the list query params.
type FiltroCuadresRequest struct {
	Farmacia    string `form:"farmacia"     validate:"omitempty,uuid"`
	FechaInicio string `form:"fechaInicio"  validate:"omitempty,datetime=2006-01-02"`
	FechaFin    string `form:"fechaFin"     validate:"omitempty,datetime=2006-01-02"`
	Estado      string `form:"estado"       validate:"omitempty,oneof=wait activa verified anulada denied"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CuadreResponse struct {
	ID             string          `json:"id"`
	FarmaciaID     string          `json:"farmacia_id"`
	Farmacia       string          `json:"farmacia,omitempty"`
	CajeroID       string          `json:"cajero_id"`
	Cajero         string          `json:"cajero,omitempty"`
	Fecha          string          `json:"fecha"`
	Turno          string          `json:"turno"`
	TotalSistemaBs decimal.Decimal `json:"total_sistema_bs"`
	EfectivoBs     decimal.Decimal `json:"efectivo_bs"`
	EfectivoUsd    decimal.Decimal `json:"efectivo_usd"`
	PuntoBs        decimal.Decimal `json:"punto_bs"`
	PagoMovilBs    decimal.Decimal `json:"pago_movil_bs"`
	ZelleUsd       decimal.Decimal `json:"zelle_usd"`
	Tasa           decimal.Decimal `json:"tasa"`
	TotalUsd       decimal.Decimal `json:"total_usd"`
	DiferenciaUsd  decimal.Decimal `json:"diferencia_usd"`
	SobranteUsd    decimal.Decimal `json:"sobrante_usd"`
	FaltanteUsd    decimal.Decimal `json:"faltante_usd"`
	Estado         string          `json:"estado"`
	Observaciones  *string         `json:"observaciones"`
}

// ResumenCuadresResponse is the dashboard card payload: aggregated USD totals
// for the filtered window plus the month-over-month variation.
type ResumenCuadresResponse struct {
	Cantidad         int             `json:"cantidad"`
	TotalUsd         decimal.Decimal `json:"total_usd"`
	SobranteUsd      decimal.Decimal `json:"sobrante_usd"`
	FaltanteUsd      decimal.Decimal `json:"faltante_usd"`
	TotalMesAnterior decimal.Decimal `json:"total_mes_anterior"`
	VariacionPct     decimal.Decimal `json:"variacion_pct"`
}
