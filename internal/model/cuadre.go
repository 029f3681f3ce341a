package model

import (
	"time"

	"rapifarma/internal/finanzas"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cuadre is one cashier/shift/day/branch cash-register reconciliation.
// Estado: "wait" | "activa" | "verified" | "anulada" | "denied"
// Cuadres are never deleted — only their estado transitions (soft states).
type Cuadre struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FarmaciaID uuid.UUID `gorm:"type:uuid;index;not null"`
	CajeroID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Fecha      time.Time `gorm:"type:date;index;not null"`
	Turno      string    `gorm:"type:varchar(20);not null;default:'dia'"`

	// TotalSistemaBs is what the register software expected for the shift
	TotalSistemaBs decimal.Decimal `gorm:"type:decimal(14,2);not null"`

	// Collected amounts broken down by tender type
	EfectivoBs  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	EfectivoUsd decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PuntoBs     decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	PagoMovilBs decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	ZelleUsd    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	// Tasa: bolívares por dólar del día del cierre
	Tasa decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	// DiferenciaUsd: sobrante (>0) o faltante (<0) ya normalizado a USD
	DiferenciaUsd decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	Estado        string  `gorm:"type:varchar(20);not null;default:'wait';index"`
	Observaciones *string
	// VerificadoPor: supervisor que aprobó o rechazó el cuadre
	VerificadoPor *uuid.UUID `gorm:"type:uuid"`
	VerificadoAt  *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Farmacia *Farmacia `gorm:"foreignKey:FarmaciaID"`
	Cajero   *Cajero   `gorm:"foreignKey:CajeroID"`
}

// TotalUSD normaliza todos los métodos de cobro del cuadre a un único monto
// en USD usando la tasa del propio cierre.
func (c *Cuadre) TotalUSD() decimal.Decimal {
	total := finanzas.Normalizar(c.EfectivoBs, finanzas.DivisaBs, c.Tasa)
	total = total.Add(finanzas.Normalizar(c.PuntoBs, finanzas.DivisaBs, c.Tasa))
	total = total.Add(finanzas.Normalizar(c.PagoMovilBs, finanzas.DivisaBs, c.Tasa))
	total = total.Add(c.EfectivoUsd)
	return total.Add(c.ZelleUsd)
}
