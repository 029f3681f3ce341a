package finanzas

import "time"

// EnRango indica si una fecha ISO (YYYY-MM-DD) cae dentro de la ventana
// inclusiva [desde, hasta]. La comparación es lexicográfica — válida porque
// las fechas ISO vienen con cero a la izquierda. Un límite vacío deja ese
// lado abierto; una fecha vacía o malformada queda excluida.
func EnRango(fecha, desde, hasta string) bool {
	if len(fecha) < 10 {
		return false
	}
	dia := fecha[:10]
	if _, err := time.Parse("2006-01-02", dia); err != nil {
		return false
	}
	if desde != "" && dia < desde {
		return false
	}
	if hasta != "" && dia > hasta {
		return false
	}
	return true
}

// CoincideEstado compara el estado de un registro contra la lista de estados
// aceptados. Match exacto; estado vacío o desconocido queda excluido.
func CoincideEstado(estado string, permitidos ...string) bool {
	if estado == "" {
		return false
	}
	for _, p := range permitidos {
		if estado == p {
			return true
		}
	}
	return false
}
