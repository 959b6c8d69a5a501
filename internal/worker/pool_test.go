package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"nexopos/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

// failingCotizacionRepo always errors, driving jobs down the retry path.
type failingCotizacionRepo struct{}

func (failingCotizacionRepo) LastCodigoTx(*gorm.DB) (string, error) { return "", nil }
func (failingCotizacionRepo) CreateTx(*gorm.DB, *model.Cotizacion) error {
	return errors.New("not implemented")
}
func (failingCotizacionRepo) SaveTx(*gorm.DB, *model.Cotizacion) error {
	return errors.New("not implemented")
}
func (failingCotizacionRepo) FindByID(context.Context, uuid.UUID) (*model.Cotizacion, error) {
	return nil, gorm.ErrRecordNotFound
}
func (failingCotizacionRepo) FindByIDTx(*gorm.DB, uuid.UUID) (*model.Cotizacion, error) {
	return nil, gorm.ErrRecordNotFound
}
func (failingCotizacionRepo) List(context.Context) ([]model.Cotizacion, error) { return nil, nil }
func (failingCotizacionRepo) DeleteLineasTx(*gorm.DB, uuid.UUID) error         { return nil }
func (failingCotizacionRepo) CreateLineasTx(*gorm.DB, []model.CotizacionProducto) error {
	return nil
}
func (failingCotizacionRepo) DeleteTx(*gorm.DB, uuid.UUID) error { return nil }
func (failingCotizacionRepo) UpdatePDFPath(context.Context, uuid.UUID, string) error {
	return nil
}
func (failingCotizacionRepo) ListSinPDF(context.Context, time.Time, int) ([]model.Cotizacion, error) {
	return nil, nil
}
func (failingCotizacionRepo) DB() *gorm.DB { return nil }

func TestDispatcher_EncolarCotizacionPDF(t *testing.T) {
	rdb := newTestRedis(t)
	d := NewDispatcher(rdb)
	ctx := context.Background()

	id := uuid.New()
	email := "cliente@example.com"
	require.NoError(t, d.EncolarCotizacionPDF(ctx, id, &email))

	raw, err := rdb.RPop(ctx, QueueCotizacionPDF).Result()
	require.NoError(t, err)

	var job Job
	require.NoError(t, json.Unmarshal([]byte(raw), &job))
	assert.Equal(t, "cotizacion_pdf", job.Type)
	assert.Equal(t, 0, job.Attempts)

	var payload CotizacionPDFPayload
	require.NoError(t, json.Unmarshal(job.Payload, &payload))
	assert.Equal(t, id.String(), payload.CotizacionID)
	require.NotNil(t, payload.Email)
	assert.Equal(t, email, *payload.Email)
}

func TestDispatcher_EncolarEmail(t *testing.T) {
	rdb := newTestRedis(t)
	d := NewDispatcher(rdb)
	ctx := context.Background()

	require.NoError(t, d.EncolarEmail(ctx, EmailPayload{
		To:      "compras@example.com",
		Subject: "Cotización COT-0001",
		Body:    "Adjuntamos la cotización solicitada",
		PDFPath: "/tmp/COT-0001.pdf",
	}))

	raw, err := rdb.RPop(ctx, QueueEmail).Result()
	require.NoError(t, err)

	var job Job
	require.NoError(t, json.Unmarshal([]byte(raw), &job))
	assert.Equal(t, "email", job.Type)
}

func TestProcessJob_ReencolaConIntentoIncrementado(t *testing.T) {
	rdb := newTestRedis(t)
	p := NewPool(rdb, NewDispatcher(rdb), failingCotizacionRepo{}, nil, nil, t.TempDir())
	ctx := context.Background()

	payload, _ := json.Marshal(CotizacionPDFPayload{CotizacionID: uuid.New().String()})
	raw, _ := json.Marshal(Job{Type: "cotizacion_pdf", Payload: payload, Attempts: 0})

	p.processJob(ctx, QueueCotizacionPDF, string(raw))

	// The failed job goes back to its queue with attempts bumped
	requeued, err := rdb.RPop(ctx, QueueCotizacionPDF).Result()
	require.NoError(t, err)
	var job Job
	require.NoError(t, json.Unmarshal([]byte(requeued), &job))
	assert.Equal(t, 1, job.Attempts)

	n, err := DLQLength(ctx, rdb, QueueCotizacionPDF)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestProcessJob_AgotaIntentosYVaAlDLQ(t *testing.T) {
	rdb := newTestRedis(t)
	p := NewPool(rdb, NewDispatcher(rdb), failingCotizacionRepo{}, nil, nil, t.TempDir())
	ctx := context.Background()

	payload, _ := json.Marshal(CotizacionPDFPayload{CotizacionID: uuid.New().String()})
	raw, _ := json.Marshal(Job{Type: "cotizacion_pdf", Payload: payload, Attempts: maxJobAttempts - 1})

	p.processJob(ctx, QueueCotizacionPDF, string(raw))

	// Queue stays empty; the job landed in the DLQ with its failure reason
	_, err := rdb.RPop(ctx, QueueCotizacionPDF).Result()
	assert.ErrorIs(t, err, redis.Nil)

	n, err := DLQLength(ctx, rdb, QueueCotizacionPDF)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	rawEntry, err := rdb.RPop(ctx, DLQPrefix+QueueCotizacionPDF).Result()
	require.NoError(t, err)
	var entry DLQEntry
	require.NoError(t, json.Unmarshal([]byte(rawEntry), &entry))
	assert.Equal(t, QueueCotizacionPDF, entry.OriginalQueue)
	assert.Equal(t, "cotizacion_pdf", entry.JobType)
	assert.Equal(t, maxJobAttempts, entry.Attempts)
	assert.NotEmpty(t, entry.Reason)
}

func TestProcessJob_TipoDesconocidoSeDescarta(t *testing.T) {
	rdb := newTestRedis(t)
	p := NewPool(rdb, NewDispatcher(rdb), failingCotizacionRepo{}, nil, nil, t.TempDir())
	ctx := context.Background()

	raw, _ := json.Marshal(Job{Type: "fax", Payload: json.RawMessage(`{}`)})
	p.processJob(ctx, QueueCotizacionPDF, string(raw))

	llen, _ := rdb.LLen(ctx, QueueCotizacionPDF).Result()
	assert.Zero(t, llen)
	n, _ := DLQLength(ctx, rdb, QueueCotizacionPDF)
	assert.Zero(t, n)
}

// pendientesRepo returns a fixed batch from ListSinPDF.
type pendientesRepo struct {
	failingCotizacionRepo
	pendientes []model.Cotizacion
}

func (r pendientesRepo) ListSinPDF(context.Context, time.Time, int) ([]model.Cotizacion, error) {
	return r.pendientes, nil
}

func TestProcessRetries_ReencolaPendientes(t *testing.T) {
	rdb := newTestRedis(t)
	repo := pendientesRepo{pendientes: []model.Cotizacion{
		{ID: uuid.New()},
		{ID: uuid.New()},
	}}

	processRetries(context.Background(), RetryCronConfig{
		CotizacionRepo: repo,
		Dispatcher:     NewDispatcher(rdb),
	})

	llen, err := rdb.LLen(context.Background(), QueueCotizacionPDF).Result()
	require.NoError(t, err)
	assert.EqualValues(t, 2, llen)
}
