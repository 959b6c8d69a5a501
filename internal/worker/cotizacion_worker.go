package worker

// cotizacion_worker.go — renders the PDF for a freshly issued cotización and,
// when the request carried a client email, chains an email job carrying the
// rendered file.

import (
	"context"
	"encoding/json"
	"fmt"

	"nexopos/internal/infra"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

func (p *Pool) handleCotizacionPDF(ctx context.Context, raw json.RawMessage) error {
	var payload CotizacionPDFPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("cotizacion_pdf: bad payload: %w", err)
	}
	id, err := uuid.Parse(payload.CotizacionID)
	if err != nil {
		return fmt.Errorf("cotizacion_pdf: bad id %q: %w", payload.CotizacionID, err)
	}

	cot, err := p.cotizacionRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("cotizacion_pdf: load %s: %w", id, err)
	}

	path, err := infra.GenerateCotizacionPDF(cot, p.storagePath)
	if err != nil {
		return err
	}
	if err := p.cotizacionRepo.UpdatePDFPath(ctx, id, path); err != nil {
		return fmt.Errorf("cotizacion_pdf: persist path: %w", err)
	}
	log.Info().Str("codigo", cot.Codigo).Str("path", path).Msg("cotización PDF generated")

	if payload.Email != nil && *payload.Email != "" {
		return p.dispatcher.EncolarEmail(ctx, EmailPayload{
			To:      *payload.Email,
			Subject: "Cotización " + cot.Codigo,
			Body:    "Adjuntamos la cotización solicitada. Queda válida hasta " + cot.FechaVencimiento.Format("02/01/2006") + ".",
			PDFPath: path,
		})
	}
	return nil
}
