package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearMetaRequest struct {
	FarmaciaID  string          `json:"farmacia_id"  validate:"required,uuid"`
	Descripcion *string         `json:"descripcion"`
	MontoUsd    decimal.Decimal `json:"monto_usd"    validate:"required,gt=0"`
	FechaInicio string          `json:"fecha_inicio" validate:"required,datetime=2006-01-02"`
	FechaFin    string          `json:"fecha_fin"    validate:"required,datetime=2006-01-02"`
}

type ActualizarMetaRequest struct {
	Descripcion *string          `json:"descripcion"`
	MontoUsd    *decimal.Decimal `json:"monto_usd"    validate:"omitempty,gt=0"`
	FechaInicio string           `json:"fecha_inicio" validate:"omitempty,datetime=2006-01-02"`
	FechaFin    string           `json:"fecha_fin"    validate:"omitempty,datetime=2006-01-02"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MetaResponse struct {
	ID          string          `json:"id"`
	FarmaciaID  string          `json:"farmacia_id"`
	Farmacia    string          `json:"farmacia,omitempty"`
	Descripcion *string         `json:"descripcion"`
	MontoUsd    decimal.Decimal `json:"monto_usd"`
	// LogradoUsd: total verificado acumulado dentro del rango
	LogradoUsd  decimal.Decimal `json:"logrado_usd"`
	AvancePct   decimal.Decimal `json:"avance_pct"`
	FechaInicio string          `json:"fecha_inicio"`
	FechaFin    string          `json:"fecha_fin"`
	Estado      string          `json:"estado"`
}
