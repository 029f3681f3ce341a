package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearGastoRequest struct {
	FarmaciaID  string          `json:"farmacia_id" validate:"required,uuid"`
	Descripcion string          `json:"descripcion" validate:"required,min=3"`
	Categoria   *string         `json:"categoria"`
	Monto       decimal.Decimal `json:"monto"       validate:"required,gt=0"`
	Divisa      string          `json:"divisa"      validate:"required,oneof=USD Bs"`
	Tasa        decimal.Decimal `json:"tasa"        validate:"min=0"`
	Fecha       string          `json:"fecha"       validate:"required,datetime=2006-01-02"`
}

// CambiarEstadoGastoRequest serves PATCH /gastos/estado.
type CambiarEstadoGastoRequest struct {
	GastoID string `json:"gasto_id" validate:"required,uuid"`
	Estado  string `json:"estado"   validate:"required,oneof=verified denied"`
}

// FiltroGastosRequest maps the gastos list query params.
type FiltroGastosRequest struct {
	Farmacia    string `form:"farmacia"    validate:"omitempty,uuid"`
	Estado      string `form:"estado"      validate:"omitempty,oneof=wait verified denied"`
	FechaInicio string `form:"fechaInicio" validate:"omitempty,datetime=2006-01-02"`
	FechaFin    string `form:"fechaFin"    validate:"omitempty,datetime=2006-01-02"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type GastoResponse struct {
	ID          string          `json:"id"`
	FarmaciaID  string          `json:"farmacia_id"`
	Farmacia    string          `json:"farmacia,omitempty"`
	Descripcion string          `json:"descripcion"`
	Categoria   *string         `json:"categoria"`
	Monto       decimal.Decimal `json:"monto"`
	Divisa      string          `json:"divisa"`
	Tasa        decimal.Decimal `json:"tasa"`
	MontoUsd    decimal.Decimal `json:"monto_usd"`
	Fecha       string          `json:"fecha"`
	Estado      string          `json:"estado"`
}

type TotalGastosResponse struct {
	Cantidad int             `json:"cantidad"`
	TotalUsd decimal.Decimal `json:"total_usd"`
}
