package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"levscore/internal/infra"
	"levscore/internal/model"
	"levscore/internal/repository"
)

const trendMaxAttempts = 3

// TrendWorker pulls the latest retail index observations from the
// external API (through the circuit breaker) and persists them as
// monthly snapshots.
type TrendWorker struct {
	breaker *infra.CircuitBreaker
	client  *infra.TrendClient
	trends  repository.TrendRepository
}

func NewTrendWorker(breaker *infra.CircuitBreaker, client *infra.TrendClient, trends repository.TrendRepository) *TrendWorker {
	return &TrendWorker{breaker: breaker, client: client, trends: trends}
}

func (w *TrendWorker) Process(ctx context.Context, rdb *redis.Client, payload json.RawMessage) {
	var lastErr error
	for attempt := 1; attempt <= trendMaxAttempts; attempt++ {
		lastErr = w.refresh(ctx)
		if lastErr == nil {
			return
		}
		if lastErr == infra.ErrCircuitOpen {
			// No point hammering a tripped breaker; the cron will retry.
			log.Warn().Msg("trend refresh skipped: circuit breaker open")
			return
		}
		log.Warn().Err(lastErr).Int("attempt", attempt).Msg("trend refresh failed")
		time.Sleep(time.Duration(attempt) * 2 * time.Second)
	}
	pushDeadLetter(ctx, rdb, QueueTrendRefresh, payload, trendMaxAttempts, lastErr)
}

func (w *TrendWorker) refresh(ctx context.Context) error {
	var observations []infra.TrendObservation
	err := w.breaker.Execute(func() error {
		var fetchErr error
		observations, fetchErr = w.client.LatestObservations(ctx)
		return fetchErr
	})
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, obs := range observations {
		snapshot := &model.TrendSnapshot{
			Month:      obs.Month,
			IndexValue: obs.IndexValue,
			Source:     obs.Source,
			FetchedAt:  now,
		}
		if err := w.trends.Upsert(ctx, snapshot); err != nil {
			return err
		}
	}
	log.Info().Int("observations", len(observations)).Msg("trend snapshots refreshed")
	return nil
}
