package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CuentaPorPagar is a supplier invoice owed by a branch.
// Estatus: "activa" | "pagada" | "anulada" | "cancelada"
// Mutated only by recording payments (PagoCPP) or estatus transitions.
type CuentaPorPagar struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FarmaciaID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Proveedor     string    `gorm:"not null"`
	NumeroFactura string    `gorm:"index;not null"`
	Monto         decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Divisa        string          `gorm:"type:varchar(3);not null"`
	Tasa          decimal.Decimal `gorm:"type:decimal(14,4);not null;default:0"`

	FechaEmision     time.Time  `gorm:"type:date;not null"`
	FechaRecepcion   *time.Time `gorm:"type:date"`
	FechaVencimiento *time.Time `gorm:"type:date;index"`

	Estatus       string `gorm:"type:varchar(20);not null;default:'activa';index"`
	Observaciones *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Farmacia *Farmacia `gorm:"foreignKey:FarmaciaID"`
	Pagos    []PagoCPP `gorm:"foreignKey:CuentaPorPagarID"`
}

// PagoCPP is a partial or full payment applied to one CuentaPorPagar.
// Estado: "pendiente" | "aprobado" | "rechazado"
type PagoCPP struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CuentaPorPagarID uuid.UUID `gorm:"type:uuid;index;not null"`
	Monto            decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Divisa           string          `gorm:"type:varchar(3);not null"`
	Tasa             decimal.Decimal `gorm:"type:decimal(14,4);not null;default:0"`
	MetodoPago       *string         `gorm:"type:varchar(30)"`
	Referencia       *string
	Fecha            time.Time `gorm:"type:date;not null"`
	Estado           string    `gorm:"type:varchar(20);not null;default:'pendiente';index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
