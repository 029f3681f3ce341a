package infra

// pdf.go — Summary PDF for an export using go-pdf/fpdf.
// A5 landscape sheet with the window, per-branch count and the aggregated
// USD totals (total, sobrante, faltante, gastos) the dashboard cards show.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// ResumenReporte carries the aggregated figures printed on the summary sheet.
type ResumenReporte struct {
	FechaInicio   string
	FechaFin      string
	Farmacia      string // "Todas" cuando el reporte no filtra por sucursal
	Cuadres       int
	TotalUsd      decimal.Decimal
	SobranteUsd   decimal.Decimal
	FaltanteUsd   decimal.Decimal
	Gastos        int
	GastosUsd     decimal.Decimal
}

// GenerateReportePDF writes the summary sheet and returns its absolute path.
func GenerateReportePDF(reporteID string, resumen ResumenReporte, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, fmt.Sprintf("reporte_%s.pdf", reporteID))

	pdf := fpdf.New("L", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 15)
	pdf.CellFormat(contentW, 8, "RapiFarma", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Resumen de cuadres y gastos", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Periodo: %s a %s", resumen.FechaInicio, resumen.FechaFin), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, "Farmacia: "+resumen.Farmacia, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(3)

	// ── Totales ──────────────────────────────────────────────────────────────
	col1 := contentW * 0.6
	col2 := contentW * 0.4

	fila := func(label, valor string, bold bool) {
		estilo := ""
		if bold {
			estilo = "B"
		}
		pdf.SetFont("Helvetica", estilo, 10)
		pdf.CellFormat(col1, 6, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, valor, "", 1, "R", false, 0, "")
	}

	fila("Cuadres en el periodo:", fmt.Sprintf("%d", resumen.Cuadres), false)
	fila("Total cobrado (USD):", "$"+resumen.TotalUsd.StringFixed(2), true)
	fila("Sobrante (USD):", "$"+resumen.SobranteUsd.StringFixed(2), false)
	fila("Faltante (USD):", "$"+resumen.FaltanteUsd.StringFixed(2), false)
	pdf.Ln(2)
	fila("Gastos verificados:", fmt.Sprintf("%d", resumen.Gastos), false)
	fila("Total gastos (USD):", "$"+resumen.GastosUsd.StringFixed(2), true)

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
