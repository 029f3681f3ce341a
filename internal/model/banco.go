package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Banco holds a running balance in its own currency. Disponible is mutated
// exclusively through MovimientoBanco records, inside a DB transaction, and
// never goes negative (egresos are validated against it first).
type Banco struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FarmaciaID   *uuid.UUID `gorm:"type:uuid;index"`
	Nombre       string     `gorm:"not null"`
	NumeroCuenta *string    `gorm:"type:varchar(30)"`
	Divisa       string     `gorm:"type:varchar(3);not null"`
	// SaldoInicial queda fijo al crear la cuenta; Disponible evoluciona con el ledger
	SaldoInicial decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Disponible   decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Activo       bool            `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Farmacia *Farmacia `gorm:"foreignKey:FarmaciaID"`
}

// MovimientoBanco is an append-only ledger entry tied to one Banco.
// Tipo: "deposito" | "transferencia" | "cheque" | "retiro"
// Entries are NEVER modified or deleted — corrections create inverse entries.
// Monto is already in the account's currency; Bs-denominated transfers are
// converted with TasaAplicada at write time, not at projection time.
type MovimientoBanco struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BancoID    uuid.UUID  `gorm:"type:uuid;index;not null"`
	FarmaciaID *uuid.UUID `gorm:"type:uuid;index"`
	Tipo       string     `gorm:"type:varchar(20);not null"`
	Monto      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	// TasaAplicada: tasa promedio usada cuando el monto original venía en Bs
	TasaAplicada *decimal.Decimal `gorm:"type:decimal(14,4)"`
	Descripcion  string           `gorm:"not null"`
	Referencia   *string
	Fecha        time.Time `gorm:"type:date;index;not null"`
	CreatedAt    time.Time

	Banco *Banco `gorm:"foreignKey:BancoID"`
}
