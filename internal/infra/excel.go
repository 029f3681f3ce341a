package infra

// excel.go — Export .xlsx generation using xuri/excelize.
// One workbook with two sheets: Cuadres and Gastos, plus a totals row each.
// Amounts are written already normalized to USD alongside the raw values so
// the spreadsheet matches the dashboard cards.

import (
	"fmt"
	"os"
	"path/filepath"

	"rapifarma/internal/finanzas"
	"rapifarma/internal/model"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// GenerateReporteExcel writes the joined cuadres+gastos workbook.
// nombres maps farmacia id → nombre for the display columns.
// Returns the absolute path of the generated file.
func GenerateReporteExcel(reporteID string, cuadres []model.Cuadre, gastos []model.Gasto, nombres map[string]string, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return "", fmt.Errorf("excel: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, fmt.Sprintf("reporte_%s.xlsx", reporteID))

	f := excelize.NewFile()
	defer f.Close()

	// ── Hoja Cuadres ─────────────────────────────────────────────────────────
	const hojaCuadres = "Cuadres"
	idx, err := f.NewSheet(hojaCuadres)
	if err != nil {
		return "", fmt.Errorf("excel: new sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	// la hoja por defecto no se usa
	_ = f.DeleteSheet("Sheet1")

	encabezadosCuadres := []string{
		"Fecha", "Farmacia", "Turno", "Total Sistema Bs", "Efectivo Bs",
		"Efectivo USD", "Punto Bs", "Pago Móvil Bs", "Zelle USD",
		"Tasa", "Total USD", "Diferencia USD", "Sobrante USD", "Faltante USD", "Estado",
	}
	for col, h := range encabezadosCuadres {
		celda, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(hojaCuadres, celda, h)
	}

	totalUsd := decimal.Zero
	totalSobrante := decimal.Zero
	totalFaltante := decimal.Zero
	for i, c := range cuadres {
		fila := i + 2
		sobrante, faltante := finanzas.DividirDiferencia(c.DiferenciaUsd)
		usd := c.TotalUSD()
		totalUsd = totalUsd.Add(usd)
		totalSobrante = totalSobrante.Add(sobrante)
		totalFaltante = totalFaltante.Add(faltante)

		valores := []interface{}{
			c.Fecha.Format("2006-01-02"),
			nombres[c.FarmaciaID.String()],
			c.Turno,
			c.TotalSistemaBs.InexactFloat64(),
			c.EfectivoBs.InexactFloat64(),
			c.EfectivoUsd.InexactFloat64(),
			c.PuntoBs.InexactFloat64(),
			c.PagoMovilBs.InexactFloat64(),
			c.ZelleUsd.InexactFloat64(),
			c.Tasa.InexactFloat64(),
			usd.InexactFloat64(),
			c.DiferenciaUsd.InexactFloat64(),
			sobrante.InexactFloat64(),
			faltante.InexactFloat64(),
			c.Estado,
		}
		for col, v := range valores {
			celda, _ := excelize.CoordinatesToCellName(col+1, fila)
			_ = f.SetCellValue(hojaCuadres, celda, v)
		}
	}
	filaTotales := len(cuadres) + 2
	_ = f.SetCellValue(hojaCuadres, fmt.Sprintf("A%d", filaTotales), "TOTALES")
	_ = f.SetCellValue(hojaCuadres, fmt.Sprintf("K%d", filaTotales), totalUsd.InexactFloat64())
	_ = f.SetCellValue(hojaCuadres, fmt.Sprintf("M%d", filaTotales), totalSobrante.InexactFloat64())
	_ = f.SetCellValue(hojaCuadres, fmt.Sprintf("N%d", filaTotales), totalFaltante.InexactFloat64())

	// ── Hoja Gastos ──────────────────────────────────────────────────────────
	const hojaGastos = "Gastos"
	if _, err := f.NewSheet(hojaGastos); err != nil {
		return "", fmt.Errorf("excel: new sheet: %w", err)
	}
	encabezadosGastos := []string{
		"Fecha", "Farmacia", "Descripción", "Monto", "Divisa", "Tasa", "Monto USD", "Estado",
	}
	for col, h := range encabezadosGastos {
		celda, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(hojaGastos, celda, h)
	}
	// El total suma solo gastos verificados, igual que el resumen del PDF;
	// las filas listan todos los estados para poder auditarlos.
	totalGastos := decimal.Zero
	for i, g := range gastos {
		fila := i + 2
		usd := finanzas.Normalizar(g.Monto, g.Divisa, g.Tasa)
		if g.Estado == "verified" {
			totalGastos = totalGastos.Add(usd)
		}
		valores := []interface{}{
			g.Fecha.Format("2006-01-02"),
			nombres[g.FarmaciaID.String()],
			g.Descripcion,
			g.Monto.InexactFloat64(),
			g.Divisa,
			g.Tasa.InexactFloat64(),
			usd.InexactFloat64(),
			g.Estado,
		}
		for col, v := range valores {
			celda, _ := excelize.CoordinatesToCellName(col+1, fila)
			_ = f.SetCellValue(hojaGastos, celda, v)
		}
	}
	filaTotales = len(gastos) + 2
	_ = f.SetCellValue(hojaGastos, fmt.Sprintf("A%d", filaTotales), "TOTAL VERIFICADOS")
	_ = f.SetCellValue(hojaGastos, fmt.Sprintf("G%d", filaTotales), totalGastos.InexactFloat64())

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("excel: save workbook: %w", err)
	}
	return filePath, nil
}
