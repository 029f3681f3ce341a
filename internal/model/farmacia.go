package model

import (
	"time"

	"github.com/google/uuid"
)

// Farmacia is a branch of the pharmacy chain. The catalog is editable here
// and can also be imported from the legacy API (see infra.LegacyClient).
type Farmacia struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// CodigoLegado is the branch key used by the legacy dashboard
	CodigoLegado string `gorm:"uniqueIndex;not null"`
	Nombre       string `gorm:"index;not null"`
	Direccion    *string
	Activa       bool `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Cajero is an auxiliary lookup: a cashier assigned to a branch.
type Cajero struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FarmaciaID uuid.UUID `gorm:"type:uuid;index;not null"`
	Nombre     string    `gorm:"not null"`
	Activo     bool      `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Farmacia *Farmacia `gorm:"foreignKey:FarmaciaID"`
}
