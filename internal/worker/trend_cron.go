package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// StartTrendCron periodically enqueues a trend refresh job. One job is
// enqueued immediately on startup so a fresh deployment has data
// without waiting a full interval.
func StartTrendCron(ctx context.Context, dispatcher *Dispatcher, interval time.Duration) {
	go func() {
		if err := dispatcher.EnqueueTrendRefresh(ctx); err != nil {
			log.Error().Err(err).Msg("failed to enqueue initial trend refresh")
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("trend cron stopped")
				return
			case <-ticker.C:
				if err := dispatcher.EnqueueTrendRefresh(ctx); err != nil {
					log.Error().Err(err).Msg("failed to enqueue trend refresh")
				}
			}
		}
	}()
	log.Info().Dur("interval", interval).Msg("trend cron started")
}
