package worker

// retry_cron.go
// Background goroutine that periodically looks for cotizaciones whose PDF
// never got rendered (pdf_path still NULL a while after creation — the
// enqueue failed, redis was down, or the job died in the DLQ) and re-enqueues
// them. Re-rendering an already rendered document is harmless, so the cron
// errs on the side of enqueueing.

import (
	"context"
	"time"

	"nexopos/internal/repository"

	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 60 * time.Second
	retryBatchSize    = 10
	// Minimum age before a missing PDF counts as stuck rather than in-flight.
	retryMinAge = 2 * time.Minute
)

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	CotizacionRepo repository.CotizacionRepository
	Dispatcher     *Dispatcher
}

// StartRetryCron launches a background goroutine that ticks every minute and
// re-enqueues stuck cotizaciones. It respects the context for graceful shutdown.
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
	cutoff := time.Now().Add(-retryMinAge)
	pendientes, err := cfg.CotizacionRepo.ListSinPDF(ctx, cutoff, retryBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to query pending cotizaciones")
		return
	}
	if len(pendientes) == 0 {
		return
	}

	log.Info().Int("count", len(pendientes)).Msg("retry_cron: re-enqueueing cotizaciones without PDF")
	for i := range pendientes {
		id := pendientes[i].ID
		if err := cfg.Dispatcher.EncolarCotizacionPDF(ctx, id, nil); err != nil {
			log.Error().Err(err).Str("cotizacion_id", id.String()).
				Msg("retry_cron: re-enqueue failed")
			return // redis is down; the next tick retries the whole batch
		}
	}
}
