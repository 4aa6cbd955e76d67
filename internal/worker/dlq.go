package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const dlqKey = "jobs:dead_letter"

// DeadLetter wraps a failed job with failure metadata so it can be
// inspected or replayed manually.
type DeadLetter struct {
	Queue    string          `json:"queue"`
	Payload  json.RawMessage `json:"payload"`
	Error    string          `json:"error"`
	Attempts int             `json:"attempts"`
	FailedAt time.Time       `json:"failed_at"`
}

func pushDeadLetter(ctx context.Context, rdb *redis.Client, queue string, payload json.RawMessage, attempts int, jobErr error) {
	dl := DeadLetter{
		Queue:    queue,
		Payload:  payload,
		Error:    jobErr.Error(),
		Attempts: attempts,
		FailedAt: time.Now().UTC(),
	}
	encoded, err := json.Marshal(dl)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal dead letter")
		return
	}
	if err := rdb.LPush(ctx, dlqKey, encoded).Err(); err != nil {
		log.Error().Err(err).Msg("failed to push dead letter")
		return
	}
	log.Warn().Str("queue", queue).Int("attempts", attempts).Msg("job moved to dead letter queue")
}
