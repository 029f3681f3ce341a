package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Gasto is a branch-level expense pending supervisor review.
// Estado: "wait" | "verified" | "denied"
type Gasto struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FarmaciaID  uuid.UUID       `gorm:"type:uuid;index;not null"`
	Descripcion string          `gorm:"not null"`
	Categoria   *string         `gorm:"type:varchar(50)"`
	Monto       decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	// Divisa: "USD" | "Bs"; Tasa solo aplica a montos en Bs
	Divisa    string          `gorm:"type:varchar(3);not null"`
	Tasa      decimal.Decimal `gorm:"type:decimal(14,4);not null;default:0"`
	Fecha     time.Time       `gorm:"type:date;index;not null"`
	Estado    string          `gorm:"type:varchar(20);not null;default:'wait';index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Farmacia *Farmacia `gorm:"foreignKey:FarmaciaID"`
}
