package infra

import (
	"fmt"
	"testing"
	"time"

	"rapifarma/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestGenerateReporteExcelTotalGastosSoloVerificados(t *testing.T) {
	farmaciaID := uuid.New()
	fecha := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	gastos := []model.Gasto{
		{FarmaciaID: farmaciaID, Descripcion: "Hielo", Monto: decimal.NewFromInt(50), Divisa: "USD", Fecha: fecha, Estado: "verified"},
		{FarmaciaID: farmaciaID, Descripcion: "Caja chica", Monto: decimal.NewFromInt(30), Divisa: "USD", Fecha: fecha, Estado: "wait"},
	}

	path, err := GenerateReporteExcel("test-total", nil, gastos, map[string]string{farmaciaID.String(): "Centro"}, t.TempDir())
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	// Fila de totales debajo de los dos gastos: suma solo los verificados,
	// igual que el resumen del PDF
	filaTotales := len(gastos) + 2
	etiqueta, err := f.GetCellValue("Gastos", fmt.Sprintf("A%d", filaTotales))
	require.NoError(t, err)
	assert.Equal(t, "TOTAL VERIFICADOS", etiqueta)

	total, err := f.GetCellValue("Gastos", fmt.Sprintf("G%d", filaTotales))
	require.NoError(t, err)
	assert.Equal(t, "50", total)
}
