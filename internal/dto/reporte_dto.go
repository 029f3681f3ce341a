package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type SolicitarReporteRequest struct {
	FarmaciaID   *string `json:"farmacia_id"   validate:"omitempty,uuid"`
	FechaInicio  string  `json:"fecha_inicio"  validate:"required,datetime=2006-01-02"`
	FechaFin     string  `json:"fecha_fin"     validate:"required,datetime=2006-01-02"`
	EmailDestino *string `json:"email_destino" validate:"omitempty,email"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ReporteResponse struct {
	ID          string  `json:"id"`
	FarmaciaID  *string `json:"farmacia_id"`
	FechaInicio string  `json:"fecha_inicio"`
	FechaFin    string  `json:"fecha_fin"`
	Estado      string  `json:"estado"`
	ArchivoXlsx *string `json:"archivo_xlsx"`
	ArchivoPdf  *string `json:"archivo_pdf"`
	LastError   *string `json:"last_error,omitempty"`
}
