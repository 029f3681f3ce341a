package worker

// retry_cron.go
// Background goroutine that periodically re-enqueues export jobs for
// reportes stuck in estado='pendiente' with a next_retry_at in the past.

import (
	"context"
	"time"

	"rapifarma/internal/repository"

	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 30 * time.Second
	retryBatchSize    = 10
)

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	ReporteRepo repository.ReporteRepository
	Dispatcher  *Dispatcher
}

// StartRetryCron launches a background goroutine that ticks every 30s,
// queries pending reportes, and re-enqueues their export jobs.
// It respects the context for graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, cfg)
			}
		}
	}()
}

func processRetries(ctx context.Context, cfg RetryCronConfig) {
	now := time.Now()
	reportes, err := cfg.ReporteRepo.ListPendingRetries(ctx, now, retryBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to query pending retries")
		return
	}
	if len(reportes) == 0 {
		return
	}

	log.Info().Int("count", len(reportes)).Msg("retry_cron: re-enqueueing pending reportes")

	for i := range reportes {
		rep := &reportes[i]

		// Clear the schedule before re-enqueueing so the next tick does not
		// pick the same reporte while the job sits in the queue. The worker
		// re-schedules it if the attempt fails again.
		rep.NextRetryAt = nil
		if err := cfg.ReporteRepo.Update(ctx, rep); err != nil {
			log.Error().Err(err).Str("reporte_id", rep.ID.String()).Msg("retry_cron: failed to clear schedule")
			continue
		}

		job := ReporteJobPayload{ReporteID: rep.ID.String()}
		if err := cfg.Dispatcher.EnqueueReporte(ctx, job); err != nil {
			log.Error().Err(err).Str("reporte_id", rep.ID.String()).Msg("retry_cron: failed to enqueue job")
			// Restore the schedule so a future tick retries the enqueue
			retryAt := time.Now().Add(retryTickInterval)
			rep.NextRetryAt = &retryAt
			_ = cfg.ReporteRepo.Update(ctx, rep)
			continue
		}

		log.Info().
			Str("reporte_id", rep.ID.String()).
			Int("retry_count", rep.RetryCount).
			Msg("retry_cron: export job re-enqueued")
	}
}
