package service_test

import (
	"context"
	"testing"

	"nexopos/internal/apierror"
	"nexopos/internal/dto"
	"nexopos/internal/model"
	"nexopos/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAbrirCaja(t *testing.T) {
	cajaRepo := newStubCajaRepo()
	svc := service.NewCajaService(cajaRepo)

	resp, err := svc.Abrir(context.Background(), uuid.New(), dto.AbrirCajaRequest{
		SucursalID:   uuid.New().String(),
		SaldoInicial: decimal.NewFromInt(150),
	})
	require.NoError(t, err)
	assert.Equal(t, "abierta", resp.Estado)
	assert.Equal(t, "150", resp.SaldoInicial.String())
	assert.Equal(t, "150", resp.SaldoFinal.String())
	assert.Equal(t, "0", resp.Ingresos.String())
}

func TestAbrirCaja_YaExisteAbierta(t *testing.T) {
	cajaRepo := newStubCajaRepo()
	svc := service.NewCajaService(cajaRepo)
	sucursalID := uuid.New()
	cajaRepo.seedAbierta(sucursalID, decimal.NewFromInt(100))

	_, err := svc.Abrir(context.Background(), uuid.New(), dto.AbrirCajaRequest{
		SucursalID:   sucursalID.String(),
		SaldoInicial: decimal.NewFromInt(50),
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindConflict, apierror.KindOf(err))
}

func TestAbrirCaja_OtraSucursalNoBloquea(t *testing.T) {
	cajaRepo := newStubCajaRepo()
	svc := service.NewCajaService(cajaRepo)
	cajaRepo.seedAbierta(uuid.New(), decimal.NewFromInt(100))

	// The one-open rule is per sucursal, not global
	_, err := svc.Abrir(context.Background(), uuid.New(), dto.AbrirCajaRequest{
		SucursalID:   uuid.New().String(),
		SaldoInicial: decimal.NewFromInt(50),
	})
	assert.NoError(t, err)
}

// carreraAperturaCajaRepo simulates the loser of two simultaneous opens: the
// lock scan sees no open caja, but the partial unique index rejects the insert.
type carreraAperturaCajaRepo struct {
	*stubCajaRepo
}

func (r *carreraAperturaCajaRepo) LockAbiertasPorSucursalTx(_ *gorm.DB, _ uuid.UUID) ([]model.Caja, error) {
	return nil, nil
}

func TestAbrirCaja_CarreraConIndiceUnico(t *testing.T) {
	base := newStubCajaRepo()
	sucursalID := uuid.New()
	base.seedAbierta(sucursalID, decimal.NewFromInt(100))
	svc := service.NewCajaService(&carreraAperturaCajaRepo{stubCajaRepo: base})

	_, err := svc.Abrir(context.Background(), uuid.New(), dto.AbrirCajaRequest{
		SucursalID:   sucursalID.String(),
		SaldoInicial: decimal.NewFromInt(50),
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindConflict, apierror.KindOf(err))
}

func TestAbrirCaja_SaldoInicialNegativo(t *testing.T) {
	cajaRepo := newStubCajaRepo()
	svc := service.NewCajaService(cajaRepo)

	_, err := svc.Abrir(context.Background(), uuid.New(), dto.AbrirCajaRequest{
		SucursalID:   uuid.New().String(),
		SaldoInicial: decimal.NewFromInt(-10),
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
}

func TestCerrarCaja(t *testing.T) {
	cajaRepo := newStubCajaRepo()
	svc := service.NewCajaService(cajaRepo)
	caja := cajaRepo.seedAbierta(uuid.New(), decimal.NewFromInt(100))
	usuarioID := uuid.New()

	resp, err := svc.Cerrar(context.Background(), usuarioID, caja.ID)
	require.NoError(t, err)
	assert.Equal(t, "cerrada", resp.Estado)
	assert.Equal(t, usuarioID.String(), resp.CerradaPor)
	assert.NotEmpty(t, resp.FechaCierre)
}

// lecturaObsoletaCajaRepo hands out a snapshot taken at construction from the
// unlocked read path, while the locked path sees the live row. Closing a caja
// must go through the lock, so totals posted after the snapshot still count.
type lecturaObsoletaCajaRepo struct {
	*stubCajaRepo
	obsoleta model.Caja
}

func (r *lecturaObsoletaCajaRepo) FindByID(_ context.Context, _ uuid.UUID) (*model.Caja, error) {
	cp := r.obsoleta
	return &cp, nil
}

func TestCerrarCaja_VentaConcurrenteNoSePierde(t *testing.T) {
	base := newStubCajaRepo()
	caja := base.seedAbierta(uuid.New(), decimal.NewFromInt(100))
	repo := &lecturaObsoletaCajaRepo{stubCajaRepo: base, obsoleta: *caja}
	svc := service.NewCajaService(repo)

	// A sale commits into the caja between the stale snapshot and the close.
	vivo := base.cajas[caja.ID]
	vivo.Ingresos = vivo.Ingresos.Add(decimal.NewFromInt(20))
	vivo.Recalcular()

	resp, err := svc.Cerrar(context.Background(), uuid.New(), caja.ID)
	require.NoError(t, err)
	assert.Equal(t, "cerrada", resp.Estado)
	assert.Equal(t, "20", resp.Ingresos.String())
	assert.Equal(t, "120", resp.SaldoFinal.String())

	// The persisted row kept the sale's income as well.
	assert.Equal(t, "20", base.cajas[caja.ID].Ingresos.String())
	assert.Equal(t, "120", base.cajas[caja.ID].SaldoFinal.String())
}

func TestCerrarCaja_YaCerrada(t *testing.T) {
	cajaRepo := newStubCajaRepo()
	svc := service.NewCajaService(cajaRepo)
	caja := cajaRepo.seedAbierta(uuid.New(), decimal.NewFromInt(100))
	cajaRepo.cajas[caja.ID].Estado = "cerrada"

	_, err := svc.Cerrar(context.Background(), uuid.New(), caja.ID)
	require.Error(t, err)
	assert.Equal(t, apierror.KindConflict, apierror.KindOf(err))
}

func TestRegistrarMovimiento_IngresoYEgreso(t *testing.T) {
	cajaRepo := newStubCajaRepo()
	svc := service.NewCajaService(cajaRepo)
	caja := cajaRepo.seedAbierta(uuid.New(), decimal.NewFromInt(100))

	resp, err := svc.RegistrarMovimiento(context.Background(), caja.ID, dto.MovimientoManualRequest{
		Tipo: "ingreso", Monto: decimal.NewFromInt(50), Descripcion: "fondo adicional",
	})
	require.NoError(t, err)
	assert.Equal(t, "150", resp.SaldoFinal.String())

	resp, err = svc.RegistrarMovimiento(context.Background(), caja.ID, dto.MovimientoManualRequest{
		Tipo: "egreso", Monto: decimal.NewFromInt(30), Descripcion: "pago a proveedor",
	})
	require.NoError(t, err)
	assert.Equal(t, "50", resp.Ingresos.String())
	assert.Equal(t, "30", resp.Egresos.String())
	assert.Equal(t, "120", resp.SaldoFinal.String())

	// Ledger: the egreso is stored signed
	require.Len(t, cajaRepo.movimientos, 2)
	assert.Equal(t, "ingreso_manual", cajaRepo.movimientos[0].Tipo)
	assert.Equal(t, "50", cajaRepo.movimientos[0].Monto.String())
	assert.Equal(t, "egreso_manual", cajaRepo.movimientos[1].Tipo)
	assert.Equal(t, "-30", cajaRepo.movimientos[1].Monto.String())
}

func TestRegistrarMovimiento_CajaCerrada(t *testing.T) {
	cajaRepo := newStubCajaRepo()
	svc := service.NewCajaService(cajaRepo)
	caja := cajaRepo.seedAbierta(uuid.New(), decimal.NewFromInt(100))
	cajaRepo.cajas[caja.ID].Estado = "cerrada"

	_, err := svc.RegistrarMovimiento(context.Background(), caja.ID, dto.MovimientoManualRequest{
		Tipo: "egreso", Monto: decimal.NewFromInt(10), Descripcion: "compra menor",
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindConflict, apierror.KindOf(err))
}

func TestRegistrarMovimiento_MontoInvalido(t *testing.T) {
	cajaRepo := newStubCajaRepo()
	svc := service.NewCajaService(cajaRepo)
	caja := cajaRepo.seedAbierta(uuid.New(), decimal.NewFromInt(100))

	_, err := svc.RegistrarMovimiento(context.Background(), caja.ID, dto.MovimientoManualRequest{
		Tipo: "ingreso", Monto: decimal.NewFromInt(-5), Descripcion: "monto negativo",
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))

	_, err = svc.RegistrarMovimiento(context.Background(), caja.ID, dto.MovimientoManualRequest{
		Tipo: "retiro", Monto: decimal.NewFromInt(5), Descripcion: "tipo desconocido",
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
}

func TestObtenerAbierta(t *testing.T) {
	cajaRepo := newStubCajaRepo()
	svc := service.NewCajaService(cajaRepo)
	sucursalID := uuid.New()
	caja := cajaRepo.seedAbierta(sucursalID, decimal.NewFromInt(100))

	resp, err := svc.ObtenerAbierta(context.Background(), sucursalID)
	require.NoError(t, err)
	assert.Equal(t, caja.ID.String(), resp.ID)

	_, err = svc.ObtenerAbierta(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))
}
