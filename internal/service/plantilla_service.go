package service

import (
	"context"

	"nexopos/internal/apierror"
	"nexopos/internal/dto"
	"nexopos/internal/model"
	"nexopos/internal/repository"

	"github.com/google/uuid"
)

type PlantillaService interface {
	Crear(ctx context.Context, req dto.CrearPlantillaRequest) (*dto.PlantillaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarPlantillaRequest) (*dto.PlantillaResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	Obtener(ctx context.Context, id uuid.UUID) (*dto.PlantillaResponse, error)
	List(ctx context.Context) ([]dto.PlantillaResponse, error)
}

type plantillaService struct {
	repo repository.PlantillaRepository
}

func NewPlantillaService(repo repository.PlantillaRepository) PlantillaService {
	return &plantillaService{repo: repo}
}

func (s *plantillaService) Crear(ctx context.Context, req dto.CrearPlantillaRequest) (*dto.PlantillaResponse, error) {
	p := &model.PlantillaCotizacion{
		Titulo:          req.Titulo,
		ColorTema:       req.ColorTema,
		Logo:            req.Logo,
		LogoSize:        req.LogoSize,
		LogoPosition:    req.LogoPosition,
		Terminos:        req.Terminos,
		MetodosPago:     req.MetodosPago,
		Notas:           req.Notas,
		CamposIncluidos: req.CamposIncluidos,
	}
	if p.LogoSize == 0 {
		p.LogoSize = 150
	}
	if p.LogoPosition == "" {
		p.LogoPosition = "left"
	}
	if p.CamposIncluidos == "" {
		p.CamposIncluidos = "[]"
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return plantillaToResponse(p), nil
}

func (s *plantillaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarPlantillaRequest) (*dto.PlantillaResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("plantilla no encontrada")
	}
	if req.Titulo != nil {
		p.Titulo = *req.Titulo
	}
	if req.ColorTema != nil {
		p.ColorTema = *req.ColorTema
	}
	if req.Logo != nil {
		p.Logo = req.Logo
	}
	if req.LogoSize != nil {
		p.LogoSize = *req.LogoSize
	}
	if req.LogoPosition != nil {
		p.LogoPosition = *req.LogoPosition
	}
	if req.Terminos != nil {
		p.Terminos = *req.Terminos
	}
	if req.MetodosPago != nil {
		p.MetodosPago = *req.MetodosPago
	}
	if req.Notas != nil {
		p.Notas = req.Notas
	}
	if req.CamposIncluidos != nil {
		p.CamposIncluidos = *req.CamposIncluidos
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return plantillaToResponse(p), nil
}

func (s *plantillaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("plantilla no encontrada")
	}
	return s.repo.Delete(ctx, id)
}

func (s *plantillaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.PlantillaResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("plantilla no encontrada")
	}
	return plantillaToResponse(p), nil
}

func (s *plantillaService) List(ctx context.Context) ([]dto.PlantillaResponse, error) {
	plantillas, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PlantillaResponse, 0, len(plantillas))
	for i := range plantillas {
		out = append(out, *plantillaToResponse(&plantillas[i]))
	}
	return out, nil
}

func plantillaToResponse(p *model.PlantillaCotizacion) *dto.PlantillaResponse {
	return &dto.PlantillaResponse{
		ID:              p.ID.String(),
		Titulo:          p.Titulo,
		ColorTema:       p.ColorTema,
		Logo:            p.Logo,
		LogoSize:        p.LogoSize,
		LogoPosition:    p.LogoPosition,
		Terminos:        p.Terminos,
		MetodosPago:     p.MetodosPago,
		Notas:           p.Notas,
		CamposIncluidos: p.CamposIncluidos,
		CreatedAt:       p.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
