package worker

// dlq.go — dead letter handling for exhausted jobs.
// Each source queue gets its own list under the dlq: prefix so stuck
// cotizaciones and emails can be inspected (and re-pushed) independently.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const DLQPrefix = "dlq:"

// DLQEntry is the envelope stored for a job that ran out of attempts.
// The original payload is kept verbatim so an operator can requeue it.
type DLQEntry struct {
	OriginalQueue string          `json:"original_queue"`
	JobType       string          `json:"job_type"`
	Payload       json.RawMessage `json:"payload"`
	Reason        string          `json:"reason"`
	Attempts      int             `json:"attempts"`
	FailedAt      time.Time       `json:"failed_at"`
}

// SendToDLQ parks a failed job. It never returns an error: losing the
// DLQ write is logged, but must not take the worker loop down with it.
func SendToDLQ(ctx context.Context, rdb *redis.Client, queue, jobType string, payload json.RawMessage, reason string, attempts int) {
	entry := DLQEntry{
		OriginalQueue: queue,
		JobType:       jobType,
		Payload:       payload,
		Reason:        reason,
		Attempts:      attempts,
		FailedAt:      time.Now().UTC(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: marshal failed")
		return
	}
	if err := rdb.LPush(ctx, DLQPrefix+queue, data).Err(); err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: push failed")
		return
	}

	log.Warn().
		Str("queue", queue).
		Str("job_type", jobType).
		Str("reason", reason).
		Int("attempts", attempts).
		Msg("job moved to dead letter queue")
}

// DLQLength reports how many jobs are parked for a given source queue.
func DLQLength(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.LLen(ctx, DLQPrefix+queue).Result()
}
