package service

import (
	"context"
	"errors"
	"time"

	"nexopos/internal/apierror"
	"nexopos/internal/dto"
	"nexopos/internal/model"
	"nexopos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CajaService interface {
	Abrir(ctx context.Context, usuarioID uuid.UUID, req dto.AbrirCajaRequest) (*dto.CajaResponse, error)
	Cerrar(ctx context.Context, usuarioID, cajaID uuid.UUID) (*dto.CajaResponse, error)
	RegistrarMovimiento(ctx context.Context, cajaID uuid.UUID, req dto.MovimientoManualRequest) (*dto.CajaResponse, error)
	ObtenerAbierta(ctx context.Context, sucursalID uuid.UUID) (*dto.CajaResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.CajaResponse, error)
	ListMovimientos(ctx context.Context, cajaID uuid.UUID) ([]dto.MovimientoCajaResponse, error)
}

type cajaService struct {
	repo repository.CajaRepository
}

func NewCajaService(repo repository.CajaRepository) CajaService {
	return &cajaService{repo: repo}
}

// Abrir opens a caja for the sucursal. The tx-level lock plus the partial
// unique index make the one-open-per-sucursal rule hold under concurrency:
// of two simultaneous opens, one commits and the other gets a conflict.
func (s *cajaService) Abrir(ctx context.Context, usuarioID uuid.UUID, req dto.AbrirCajaRequest) (*dto.CajaResponse, error) {
	sucursalID, err := uuid.Parse(req.SucursalID)
	if err != nil {
		return nil, apierror.Validation("id_sucursal inválido")
	}
	if req.SaldoInicial.IsNegative() {
		return nil, apierror.Validation("saldo_inicial no puede ser negativo")
	}

	var caja *model.Caja
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		abiertas, err := s.repo.LockAbiertasPorSucursalTx(tx, sucursalID)
		if err != nil {
			return err
		}
		if len(abiertas) > 0 {
			return apierror.Conflict("ya existe una caja abierta para esta sucursal")
		}
		caja = &model.Caja{
			SucursalID:   sucursalID,
			SaldoInicial: req.SaldoInicial,
			Ingresos:     decimal.Zero,
			Egresos:      decimal.Zero,
			Estado:       "abierta",
			AbiertaPor:   usuarioID,
		}
		caja.Recalcular()
		if err := s.repo.CreateTx(tx, caja); err != nil {
			// Partial unique index backstop: two opens that both observed
			// zero locked rows race here, and the loser must see a conflict.
			if isUniqueViolation(err) {
				return apierror.Conflict("ya existe una caja abierta para esta sucursal")
			}
			return err
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return cajaToResponse(caja), nil
}

// Cerrar freezes the session. A closed caja never receives another posting;
// later sales require a new open. The row lock serializes the close against
// any sale committing into the same caja: totals are re-read under the lock,
// so a posting that lands first is part of the closing balance.
func (s *cajaService) Cerrar(ctx context.Context, usuarioID, cajaID uuid.UUID) (*dto.CajaResponse, error) {
	var caja *model.Caja
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		caja, err = s.lockCaja(tx, cajaID)
		if err != nil {
			return err
		}
		if caja.Estado != "abierta" {
			return apierror.Conflict("la caja ya está cerrada")
		}
		now := time.Now()
		caja.Estado = "cerrada"
		caja.CerradaPor = &usuarioID
		caja.FechaCierre = &now
		caja.Recalcular()
		return s.repo.UpdateTx(tx, caja)
	})
	if txErr != nil {
		return nil, txErr
	}
	return cajaToResponse(caja), nil
}

// RegistrarMovimiento posts a manual ingreso or egreso against an open caja
// and appends the matching ledger entry, atomically.
func (s *cajaService) RegistrarMovimiento(ctx context.Context, cajaID uuid.UUID, req dto.MovimientoManualRequest) (*dto.CajaResponse, error) {
	if req.Tipo != "ingreso" && req.Tipo != "egreso" {
		return nil, apierror.Validation("tipo debe ser 'ingreso' o 'egreso'")
	}
	if !req.Monto.IsPositive() {
		return nil, apierror.Validation("monto debe ser mayor a cero")
	}

	var caja *model.Caja
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		caja, err = s.lockCaja(tx, cajaID)
		if err != nil {
			return err
		}
		if caja.Estado != "abierta" {
			return apierror.Conflict("no se pueden registrar movimientos en una caja cerrada")
		}

		var mov model.MovimientoCaja
		if req.Tipo == "ingreso" {
			caja.Ingresos = caja.Ingresos.Add(req.Monto)
			mov = model.MovimientoCaja{CajaID: caja.ID, Tipo: "ingreso_manual", Monto: req.Monto, Descripcion: req.Descripcion}
		} else {
			caja.Egresos = caja.Egresos.Add(req.Monto)
			mov = model.MovimientoCaja{CajaID: caja.ID, Tipo: "egreso_manual", Monto: req.Monto.Neg(), Descripcion: req.Descripcion}
		}
		caja.Recalcular()
		if err := s.repo.UpdateTx(tx, caja); err != nil {
			return err
		}
		return s.repo.CreateMovimientoTx(tx, &mov)
	})
	if txErr != nil {
		return nil, txErr
	}
	return cajaToResponse(caja), nil
}

func (s *cajaService) lockCaja(tx *gorm.DB, id uuid.UUID) (*model.Caja, error) {
	c, err := s.repo.LockByIDTx(tx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("caja no encontrada")
		}
		return nil, err
	}
	return c, nil
}

func (s *cajaService) ObtenerAbierta(ctx context.Context, sucursalID uuid.UUID) (*dto.CajaResponse, error) {
	caja, err := s.repo.FindAbiertaPorSucursal(ctx, sucursalID)
	if err != nil {
		return nil, apierror.NotFound("no hay una caja abierta para esta sucursal")
	}
	return cajaToResponse(caja), nil
}

func (s *cajaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.CajaResponse, error) {
	caja, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("caja no encontrada")
	}
	return cajaToResponse(caja), nil
}

func (s *cajaService) ListMovimientos(ctx context.Context, cajaID uuid.UUID) ([]dto.MovimientoCajaResponse, error) {
	if _, err := s.repo.FindByID(ctx, cajaID); err != nil {
		return nil, apierror.NotFound("caja no encontrada")
	}
	movs, err := s.repo.ListMovimientos(ctx, cajaID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovimientoCajaResponse, 0, len(movs))
	for _, m := range movs {
		ref := ""
		if m.ReferenciaID != nil {
			ref = m.ReferenciaID.String()
		}
		out = append(out, dto.MovimientoCajaResponse{
			ID:           m.ID.String(),
			Tipo:         m.Tipo,
			Monto:        m.Monto,
			Descripcion:  m.Descripcion,
			ReferenciaID: ref,
			Fecha:        m.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}
	return out, nil
}

func cajaToResponse(c *model.Caja) *dto.CajaResponse {
	resp := &dto.CajaResponse{
		ID:           c.ID.String(),
		SucursalID:   c.SucursalID.String(),
		SaldoInicial: c.SaldoInicial,
		Ingresos:     c.Ingresos,
		Egresos:      c.Egresos,
		SaldoFinal:   c.SaldoFinal,
		Estado:       c.Estado,
		AbiertaPor:   c.AbiertaPor.String(),
		FechaApertura: c.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if c.CerradaPor != nil {
		resp.CerradaPor = c.CerradaPor.String()
	}
	if c.FechaCierre != nil {
		resp.FechaCierre = c.FechaCierre.Format("2006-01-02T15:04:05Z")
	}
	return resp
}
