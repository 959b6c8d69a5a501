package worker

// email_worker.go — delivers queued mails through the SMTP circuit breaker.
// A tripped breaker surfaces as a normal job failure, so the pool's
// retry / DLQ path applies without hammering a downed relay.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
)

func (p *Pool) handleEmail(_ context.Context, raw json.RawMessage) error {
	var payload EmailPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("email: bad payload: %w", err)
	}
	if p.mailer == nil {
		log.Warn().Str("to", payload.To).Msg("email: SMTP not configured, dropping job")
		return nil
	}

	err := p.cb.Execute(func() error {
		return p.mailer.SendCotizacion(payload.To, payload.Subject, payload.Body, payload.PDFPath)
	})
	if err != nil {
		return fmt.Errorf("email: send to %s: %w", payload.To, err)
	}
	log.Info().Str("to", payload.To).Str("subject", payload.Subject).Msg("email sent")
	return nil
}
