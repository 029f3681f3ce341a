package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearFarmaciaRequest struct {
	CodigoLegado string  `json:"codigo_legado" validate:"required,min=1,max=30"`
	Nombre       string  `json:"nombre"        validate:"required,min=2,max=120"`
	Direccion    *string `json:"direccion"`
}

type ActualizarFarmaciaRequest struct {
	Nombre    string  `json:"nombre"    validate:"omitempty,min=2,max=120"`
	Direccion *string `json:"direccion"`
}

type CrearCajeroRequest struct {
	FarmaciaID string `json:"farmacia_id" validate:"required,uuid"`
	Nombre     string `json:"nombre"      validate:"required,min=2,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type FarmaciaResponse struct {
	ID           string  `json:"id"`
	CodigoLegado string  `json:"codigo_legado"`
	Nombre       string  `json:"nombre"`
	Direccion    *string `json:"direccion"`
	Activa       bool    `json:"activa"`
}

// MapaFarmaciasResponse is the id→nombre map the dashboard consumes.
type MapaFarmaciasResponse struct {
	Farmacias map[string]string `json:"farmacias"`
}

// SincronizacionResponse summarizes a legacy catalog import.
type SincronizacionResponse struct {
	Importadas   int `json:"importadas"`
	Actualizadas int `json:"actualizadas"`
}

type CajeroResponse struct {
	ID         string `json:"id"`
	FarmaciaID string `json:"farmacia_id"`
	Nombre     string `json:"nombre"`
	Activo     bool   `json:"activo"`
}

// InventarioResponse es una fila de existencias leída de la API legada; el
// inventario sigue siendo propiedad del POS y aquí solo se consulta.
type InventarioResponse struct {
	Codigo     string `json:"codigo"`
	Nombre     string `json:"nombre"`
	Existencia int    `json:"existencia"`
	Farmacia   string `json:"farmacia"`
}
