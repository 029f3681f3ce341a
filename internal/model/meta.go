package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Meta is a sales target for a branch over a date range.
// Estado: "por_lograr" | "logrado" | "no_logrado"
// Recomputed from verified cuadres inside the range (see MetaService).
type Meta struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FarmaciaID  uuid.UUID `gorm:"type:uuid;index;not null"`
	Descripcion *string
	MontoUsd    decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	FechaInicio time.Time       `gorm:"type:date;not null"`
	FechaFin    time.Time       `gorm:"type:date;not null"`
	Estado      string          `gorm:"type:varchar(20);not null;default:'por_lograr'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Farmacia *Farmacia `gorm:"foreignKey:FarmaciaID"`
}
