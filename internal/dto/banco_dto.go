package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearBancoRequest struct {
	FarmaciaID   *string         `json:"farmacia_id"   validate:"omitempty,uuid"`
	Nombre       string          `json:"nombre"        validate:"required,min=2,max=120"`
	NumeroCuenta *string         `json:"numero_cuenta" validate:"omitempty,max=30"`
	Divisa       string          `json:"divisa"        validate:"required,oneof=USD Bs"`
	Disponible   decimal.Decimal `json:"disponible"    validate:"min=0"`
}

type ActualizarBancoRequest struct {
	Nombre       string  `json:"nombre"        validate:"omitempty,min=2,max=120"`
	NumeroCuenta *string `json:"numero_cuenta" validate:"omitempty,max=30"`
}

// RegistrarMovimientoRequest serves POST /bancos/{id}/deposito|transferencia|cheque|retiro.
// Monto viene en la divisa de la cuenta; TasaPromedio solo aplica cuando el
// monto original estaba en Bs y la cuenta es USD (conversión al registrar).
type RegistrarMovimientoRequest struct {
	Monto        decimal.Decimal  `json:"monto"         validate:"required,gt=0"`
	MontoEnBs    *decimal.Decimal `json:"monto_en_bs"   validate:"omitempty,gt=0"`
	TasaPromedio *decimal.Decimal `json:"tasa_promedio" validate:"omitempty,gt=0"`
	Descripcion  string           `json:"descripcion"   validate:"required,min=3"`
	Referencia   *string          `json:"referencia"`
	Fecha        string           `json:"fecha"         validate:"required,datetime=2006-01-02"`
}

// FiltroMovimientosRequest maps GET /bancos/movimientos query params.
type FiltroMovimientosRequest struct {
	BancoID    string `form:"bancoId"    validate:"omitempty,uuid"`
	FarmaciaID string `form:"farmaciaId" validate:"omitempty,uuid"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type BancoResponse struct {
	ID           string          `json:"id"`
	FarmaciaID   *string         `json:"farmacia_id"`
	Nombre       string          `json:"nombre"`
	NumeroCuenta *string         `json:"numero_cuenta"`
	Divisa       string          `json:"divisa"`
	Disponible   decimal.Decimal `json:"disponible"`
	Activo       bool            `json:"activo"`
}

// ConciliacionBancoResponse compara el disponible almacenado contra el saldo
// proyectado desde el ledger (saldo inicial + movimientos).
type ConciliacionBancoResponse struct {
	BancoID    string          `json:"banco_id"`
	Disponible decimal.Decimal `json:"disponible"`
	Proyectado decimal.Decimal `json:"proyectado"`
	Cuadrado   bool            `json:"cuadrado"`
}

type MovimientoBancoResponse struct {
	ID           string           `json:"id"`
	BancoID      string           `json:"banco_id"`
	FarmaciaID   *string          `json:"farmacia_id"`
	Tipo         string           `json:"tipo"`
	Monto        decimal.Decimal  `json:"monto"`
	TasaAplicada *decimal.Decimal `json:"tasa_aplicada"`
	Descripcion  string           `json:"descripcion"`
	Referencia   *string          `json:"referencia"`
	Fecha        string           `json:"fecha"`
}
