package service_test

import (
	"context"
	"testing"

	"nexopos/internal/apierror"
	"nexopos/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestConsultaPrecios_PorCodigoBarras(t *testing.T) {
	productoRepo := newStubProductoRepo()
	p := productoRepo.seed("Yogurt 1L", "7798880001234", decimal.NewFromFloat(12.50), 7)
	svc := service.NewConsultaPreciosService(productoRepo, newTestCache(t))

	resp, err := svc.PorCodigoBarras(context.Background(), p.CodigoBarras)
	require.NoError(t, err)
	assert.Equal(t, "Yogurt 1L", resp.Nombre)
	assert.Equal(t, "12.5", resp.PrecioVenta.String())
	assert.Equal(t, 7, resp.StockDisponible)
}

func TestConsultaPrecios_SirveDesdeCache(t *testing.T) {
	productoRepo := newStubProductoRepo()
	p := productoRepo.seed("Helado 1L", "7798880005678", decimal.NewFromInt(30), 4)
	svc := service.NewConsultaPreciosService(productoRepo, newTestCache(t))

	_, err := svc.PorCodigoBarras(context.Background(), p.CodigoBarras)
	require.NoError(t, err)

	// Within the TTL the cached answer wins over the catalog
	productoRepo.productos[p.ID].PrecioVenta = decimal.NewFromInt(99)
	resp, err := svc.PorCodigoBarras(context.Background(), p.CodigoBarras)
	require.NoError(t, err)
	assert.Equal(t, "30", resp.PrecioVenta.String())
}

func TestConsultaPrecios_NoEncontrado(t *testing.T) {
	svc := service.NewConsultaPreciosService(newStubProductoRepo(), newTestCache(t))

	_, err := svc.PorCodigoBarras(context.Background(), "0000000000000")
	require.Error(t, err)
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))
}

func TestConsultaPrecios_ProductoInactivo(t *testing.T) {
	productoRepo := newStubProductoRepo()
	p := productoRepo.seed("Fuera de catálogo", "7798880009999", decimal.NewFromInt(8), 3)
	productoRepo.productos[p.ID].Activo = false
	svc := service.NewConsultaPreciosService(productoRepo, newTestCache(t))

	_, err := svc.PorCodigoBarras(context.Background(), p.CodigoBarras)
	require.Error(t, err)
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))
}

func TestConsultaPrecios_SinCache(t *testing.T) {
	productoRepo := newStubProductoRepo()
	p := productoRepo.seed("Pan integral", "7798880001111", decimal.NewFromInt(6), 2)
	svc := service.NewConsultaPreciosService(productoRepo, nil)

	resp, err := svc.PorCodigoBarras(context.Background(), p.CodigoBarras)
	require.NoError(t, err)
	assert.Equal(t, "6", resp.PrecioVenta.String())
}
