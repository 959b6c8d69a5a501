package worker

import (
	"context"
	"encoding/json"
	"time"

	"nexopos/internal/infra"
	"nexopos/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueCotizacionPDF = "jobs:cotizacion_pdf"
	QueueEmail         = "jobs:email"

	maxJobAttempts = 3
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// CotizacionPDFPayload asks a worker to render the cotización PDF and,
// when Email is set, mail it afterwards.
type CotizacionPDFPayload struct {
	CotizacionID string  `json:"cotizacion_id"`
	Email        *string `json:"email,omitempty"`
}

// EmailPayload asks a worker to send one mail with an optional attachment.
type EmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	PDFPath string `json:"pdf_path,omitempty"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EncolarCotizacionPDF pushes a render job to Redis. Satisfies the service
// layer's Dispatcher interface.
func (d *Dispatcher) EncolarCotizacionPDF(ctx context.Context, cotizacionID uuid.UUID, email *string) error {
	return d.enqueue(ctx, QueueCotizacionPDF, "cotizacion_pdf", CotizacionPDFPayload{
		CotizacionID: cotizacionID.String(),
		Email:        email,
	}, 0)
}

// EncolarEmail pushes an email job to Redis.
func (d *Dispatcher) EncolarEmail(ctx context.Context, payload EmailPayload) error {
	return d.enqueue(ctx, QueueEmail, "email", payload, 0)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}, attempts int) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data, Attempts: attempts}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// Pool consumes both queues and routes jobs to the concrete handlers.
type Pool struct {
	rdb            *redis.Client
	dispatcher     *Dispatcher
	cotizacionRepo repository.CotizacionRepository
	mailer         *infra.Mailer
	cb             *infra.CircuitBreaker
	storagePath    string
}

func NewPool(
	rdb *redis.Client,
	dispatcher *Dispatcher,
	cotizacionRepo repository.CotizacionRepository,
	mailer *infra.Mailer,
	cb *infra.CircuitBreaker,
	storagePath string,
) *Pool {
	return &Pool{
		rdb:            rdb,
		dispatcher:     dispatcher,
		cotizacionRepo: cotizacionRepo,
		mailer:         mailer,
		cb:             cb,
		storagePath:    storagePath,
	}
}

// Start launches numWorkers goroutines consuming both queues.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func (p *Pool) Start(ctx context.Context, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go p.runWorker(ctx, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func (p *Pool) runWorker(ctx context.Context, id int) {
	queues := []string{QueueCotizacionPDF, QueueEmail}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := p.rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			p.processJob(ctx, result[0], result[1])
		}
	}
}

func (p *Pool) processJob(ctx context.Context, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}

	var err error
	switch job.Type {
	case "cotizacion_pdf":
		err = p.handleCotizacionPDF(ctx, job.Payload)
	case "email":
		err = p.handleEmail(ctx, job.Payload)
	default:
		log.Error().Str("type", job.Type).Msg("unknown job type")
		return
	}
	if err == nil {
		return
	}

	job.Attempts++
	if job.Attempts >= maxJobAttempts {
		SendToDLQ(ctx, p.rdb, queue, job.Type, job.Payload, err.Error(), job.Attempts)
		return
	}
	log.Warn().Str("type", job.Type).Int("attempts", job.Attempts).Err(err).
		Msg("job failed, re-enqueueing")
	encoded, mErr := json.Marshal(job)
	if mErr != nil {
		return
	}
	if pushErr := p.rdb.LPush(ctx, queue, encoded).Err(); pushErr != nil {
		log.Error().Err(pushErr).Str("queue", queue).Msg("failed to re-enqueue job")
	}
}
