package worker

// reporte_worker.go
// Processes export jobs from QueueReportes: joins the cuadres and gastos of
// the requested window into an .xlsx workbook plus a summary PDF, then
// optionally enqueues an email with both files attached.

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"rapifarma/internal/finanzas"
	"rapifarma/internal/infra"
	"rapifarma/internal/model"
	"rapifarma/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// MaxReporteRetries is the cap before a failed export moves to error/DLQ.
const MaxReporteRetries = 5

// ReporteJobPayload is the job envelope sent to QueueReportes.
type ReporteJobPayload struct {
	ReporteID string `json:"reporte_id"`
}

// ReporteWorker generates the files for one export request.
type ReporteWorker struct {
	reporteRepo  repository.ReporteRepository
	cuadreRepo   repository.CuadreRepository
	gastoRepo    repository.GastoRepository
	farmaciaRepo repository.FarmaciaRepository
	dispatcher   *Dispatcher
	storagePath  string
}

func NewReporteWorker(
	reporteRepo repository.ReporteRepository,
	cuadreRepo repository.CuadreRepository,
	gastoRepo repository.GastoRepository,
	farmaciaRepo repository.FarmaciaRepository,
	dispatcher *Dispatcher,
	storagePath string,
) *ReporteWorker {
	return &ReporteWorker{
		reporteRepo:  reporteRepo,
		cuadreRepo:   cuadreRepo,
		gastoRepo:    gastoRepo,
		farmaciaRepo: farmaciaRepo,
		dispatcher:   dispatcher,
		storagePath:  storagePath,
	}
}

// Process handles a single export job:
//  1. Mark the reporte as procesando
//  2. Fetch cuadres and gastos of the window concurrently
//  3. Generate the .xlsx workbook and the summary PDF
//  4. Mark completado and enqueue the email if a destination was given
//
// On failure the reporte returns to pendiente with a scheduled retry; the
// retry cron re-enqueues it until MaxReporteRetries.
func (w *ReporteWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ReporteJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("reporte_worker: invalid payload")
		return
	}
	reporteID, err := uuid.Parse(payload.ReporteID)
	if err != nil {
		log.Error().Str("reporte_id", payload.ReporteID).Msg("reporte_worker: invalid reporte_id")
		return
	}

	rep, err := w.reporteRepo.FindByID(ctx, reporteID)
	if err != nil {
		log.Error().Err(err).Str("reporte_id", payload.ReporteID).Msg("reporte_worker: reporte not found")
		return
	}
	if rep.Estado == "completado" {
		log.Warn().Str("reporte_id", payload.ReporteID).Msg("reporte_worker: already completed — skipping")
		return
	}

	rep.Estado = "procesando"
	if err := w.reporteRepo.Update(ctx, rep); err != nil {
		log.Error().Err(err).Str("reporte_id", payload.ReporteID).Msg("reporte_worker: failed to mark procesando")
		return
	}

	if err := w.generar(ctx, rep); err != nil {
		w.marcarFallo(ctx, rep, err)
		return
	}

	rep.Estado = "completado"
	rep.NextRetryAt = nil
	rep.LastError = nil
	if err := w.reporteRepo.Update(ctx, rep); err != nil {
		log.Error().Err(err).Str("reporte_id", payload.ReporteID).Msg("reporte_worker: failed to mark completado")
		return
	}
	log.Info().Str("reporte_id", payload.ReporteID).Msg("reporte_worker: export completed")

	w.encolarEmail(ctx, rep)
}

func (w *ReporteWorker) generar(ctx context.Context, rep *model.Reporte) error {
	filtroCuadres := repository.FiltroCuadres{
		FarmaciaID:  rep.FarmaciaID,
		FechaInicio: &rep.FechaInicio,
		FechaFin:    &rep.FechaFin,
	}
	filtroGastos := repository.FiltroGastos{
		FarmaciaID:  rep.FarmaciaID,
		FechaInicio: &rep.FechaInicio,
		FechaFin:    &rep.FechaFin,
	}

	var (
		wg         sync.WaitGroup
		cuadres    []model.Cuadre
		gastos     []model.Gasto
		errCuadres error
		errGastos  error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		cuadres, errCuadres = w.cuadreRepo.List(ctx, filtroCuadres)
	}()
	go func() {
		defer wg.Done()
		gastos, errGastos = w.gastoRepo.List(ctx, filtroGastos)
	}()
	wg.Wait()
	if errCuadres != nil {
		return fmt.Errorf("cargar cuadres: %w", errCuadres)
	}
	if errGastos != nil {
		return fmt.Errorf("cargar gastos: %w", errGastos)
	}

	farmacias, err := w.farmaciaRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("cargar farmacias: %w", err)
	}
	nombres := make(map[string]string, len(farmacias))
	for i := range farmacias {
		nombres[farmacias[i].ID.String()] = farmacias[i].Nombre
	}

	xlsxPath, err := infra.GenerateReporteExcel(rep.ID.String(), cuadres, gastos, nombres, w.storagePath)
	if err != nil {
		return fmt.Errorf("generar xlsx: %w", err)
	}
	rep.ArchivoXlsx = &xlsxPath

	pdfPath, err := infra.GenerateReportePDF(rep.ID.String(), w.resumen(rep, cuadres, gastos, nombres), w.storagePath)
	if err != nil {
		return fmt.Errorf("generar pdf: %w", err)
	}
	rep.ArchivoPdf = &pdfPath
	return nil
}

func (w *ReporteWorker) resumen(rep *model.Reporte, cuadres []model.Cuadre, gastos []model.Gasto, nombres map[string]string) infra.ResumenReporte {
	resumen := infra.ResumenReporte{
		FechaInicio: rep.FechaInicio.Format("2006-01-02"),
		FechaFin:    rep.FechaFin.Format("2006-01-02"),
		Farmacia:    "Todas",
		Cuadres:     len(cuadres),
	}
	if rep.FarmaciaID != nil {
		if nombre, ok := nombres[rep.FarmaciaID.String()]; ok {
			resumen.Farmacia = nombre
		}
	}

	for i := range cuadres {
		resumen.TotalUsd = resumen.TotalUsd.Add(cuadres[i].TotalUSD())
		sobrante, faltante := finanzas.DividirDiferencia(cuadres[i].DiferenciaUsd)
		resumen.SobranteUsd = resumen.SobranteUsd.Add(sobrante)
		resumen.FaltanteUsd = resumen.FaltanteUsd.Add(faltante)
	}
	resumen.TotalUsd = resumen.TotalUsd.Round(2)

	gastosUsd := decimal.Zero
	for i := range gastos {
		if gastos[i].Estado != "verified" {
			continue
		}
		resumen.Gastos++
		gastosUsd = gastosUsd.Add(finanzas.Normalizar(gastos[i].Monto, gastos[i].Divisa, gastos[i].Tasa))
	}
	resumen.GastosUsd = gastosUsd.Round(2)
	return resumen
}

func (w *ReporteWorker) marcarFallo(ctx context.Context, rep *model.Reporte, cause error) {
	rep.RetryCount++
	errMsg := cause.Error()
	rep.LastError = &errMsg

	if rep.RetryCount >= MaxReporteRetries {
		rep.Estado = "error"
		rep.NextRetryAt = nil
		log.Error().
			Str("reporte_id", rep.ID.String()).
			Int("retries", rep.RetryCount).
			Err(cause).
			Msg("reporte_worker: max retries exceeded, moving to error/DLQ")

		payload := fmt.Sprintf(`{"reporte_id":"%s"}`, rep.ID)
		SendToDLQ(ctx, w.dispatcher.rdb, QueueReportes, "reporte", []byte(payload),
			fmt.Sprintf("max retries (%d) exceeded: %s", MaxReporteRetries, errMsg),
			rep.RetryCount)
	} else {
		rep.Estado = "pendiente"
		nextRetry := time.Now().Add(computeRetryBackoff(rep.RetryCount))
		rep.NextRetryAt = &nextRetry
		log.Warn().
			Str("reporte_id", rep.ID.String()).
			Int("retry_count", rep.RetryCount).
			Time("next_retry_at", nextRetry).
			Err(cause).
			Msg("reporte_worker: export failed, scheduled retry")
	}

	if err := w.reporteRepo.Update(ctx, rep); err != nil {
		log.Error().Err(err).Str("reporte_id", rep.ID.String()).Msg("reporte_worker: failed to persist failure state")
	}
}

func (w *ReporteWorker) encolarEmail(ctx context.Context, rep *model.Reporte) {
	if rep.EmailDestino == nil || *rep.EmailDestino == "" {
		return
	}
	var adjuntos []string
	if rep.ArchivoXlsx != nil {
		adjuntos = append(adjuntos, *rep.ArchivoXlsx)
	}
	if rep.ArchivoPdf != nil {
		adjuntos = append(adjuntos, *rep.ArchivoPdf)
	}
	job := EmailJobPayload{
		ToEmail: *rep.EmailDestino,
		Subject: fmt.Sprintf("Reporte RapiFarma %s a %s", rep.FechaInicio.Format("2006-01-02"), rep.FechaFin.Format("2006-01-02")),
		Body:    "Adjunto encontrarás el reporte de cuadres y gastos solicitado.",
		Adjuntos: adjuntos,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, job); err != nil {
		log.Warn().Err(err).Str("email", *rep.EmailDestino).Msg("reporte_worker: failed to enqueue email")
	} else {
		log.Info().Str("email", *rep.EmailDestino).Msg("reporte_worker: email job enqueued")
	}
}

// computeRetryBackoff grows exponentially: 1m, 2m, 4m, 8m…
func computeRetryBackoff(retryCount int) time.Duration {
	return time.Duration(1<<uint(retryCount-1)) * time.Minute
}
