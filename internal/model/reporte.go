package model

import (
	"time"

	"github.com/google/uuid"
)

// Reporte is an async export request (cuadres + gastos joined into an .xlsx
// plus a summary PDF). The worker pool processes it off a Redis queue.
// Estado: "pendiente" | "procesando" | "completado" | "error"
type Reporte struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FarmaciaID    *uuid.UUID `gorm:"type:uuid;index"`
	FechaInicio   time.Time  `gorm:"type:date;not null"`
	FechaFin      time.Time  `gorm:"type:date;not null"`
	SolicitadoPor uuid.UUID  `gorm:"type:uuid;not null"`
	EmailDestino  *string

	Estado string `gorm:"type:varchar(20);not null;default:'pendiente';index"`
	// Paths relative to REPORT_STORAGE_PATH
	ArchivoXlsx *string `gorm:"column:archivo_xlsx"`
	ArchivoPdf  *string `gorm:"column:archivo_pdf"`

	// Retry fields — used by retry_cron to re-attempt failed exports
	RetryCount  int        `gorm:"not null;default:0"`
	NextRetryAt *time.Time `gorm:"column:next_retry_at"`
	LastError   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
