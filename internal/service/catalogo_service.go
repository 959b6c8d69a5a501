package service

import (
	"context"

	"nexopos/internal/apierror"
	"nexopos/internal/dto"
	"nexopos/internal/model"
	"nexopos/internal/repository"

	"github.com/google/uuid"
)

// CatalogoService groups the thin CRUD surfaces that support the sales core:
// clientes, sucursales, categorías y proveedores.
type CatalogoService interface {
	CrearCliente(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	ObtenerCliente(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
	ListClientes(ctx context.Context) ([]dto.ClienteResponse, error)

	CrearSucursal(ctx context.Context, req dto.CrearSucursalRequest) (*dto.SucursalResponse, error)
	ListSucursales(ctx context.Context) ([]dto.SucursalResponse, error)

	CrearCategoria(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error)
	ListCategorias(ctx context.Context) ([]dto.CategoriaResponse, error)

	CrearProveedor(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error)
	ListProveedores(ctx context.Context) ([]dto.ProveedorResponse, error)
}

type catalogoService struct {
	clientes    repository.ClienteRepository
	sucursales  repository.SucursalRepository
	categorias  repository.CategoriaRepository
	proveedores repository.ProveedorRepository
}

func NewCatalogoService(
	clientes repository.ClienteRepository,
	sucursales repository.SucursalRepository,
	categorias repository.CategoriaRepository,
	proveedores repository.ProveedorRepository,
) CatalogoService {
	return &catalogoService{
		clientes:    clientes,
		sucursales:  sucursales,
		categorias:  categorias,
		proveedores: proveedores,
	}
}

func (s *catalogoService) CrearCliente(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	c := &model.Cliente{NombreCompleto: req.NombreCompleto, CI: req.CI}
	if err := s.clientes.Create(ctx, c); err != nil {
		if isUniqueViolation(err) {
			return nil, apierror.Conflict("ya existe un cliente con CI %s", req.CI)
		}
		return nil, err
	}
	return clienteToResponse(c), nil
}

func (s *catalogoService) ObtenerCliente(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	c, err := s.clientes.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("cliente no encontrado")
	}
	return clienteToResponse(c), nil
}

func (s *catalogoService) ListClientes(ctx context.Context) ([]dto.ClienteResponse, error) {
	clientes, err := s.clientes.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClienteResponse, 0, len(clientes))
	for i := range clientes {
		out = append(out, *clienteToResponse(&clientes[i]))
	}
	return out, nil
}

func (s *catalogoService) CrearSucursal(ctx context.Context, req dto.CrearSucursalRequest) (*dto.SucursalResponse, error) {
	suc := &model.Sucursal{Nombre: req.Nombre, Direccion: req.Direccion, Telefono: req.Telefono, Activo: true}
	if err := s.sucursales.Create(ctx, suc); err != nil {
		return nil, err
	}
	return sucursalToResponse(suc), nil
}

func (s *catalogoService) ListSucursales(ctx context.Context) ([]dto.SucursalResponse, error) {
	sucursales, err := s.sucursales.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SucursalResponse, 0, len(sucursales))
	for i := range sucursales {
		out = append(out, *sucursalToResponse(&sucursales[i]))
	}
	return out, nil
}

func (s *catalogoService) CrearCategoria(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error) {
	c := &model.Categoria{Nombre: req.Nombre, Descripcion: req.Descripcion}
	if err := s.categorias.Create(ctx, c); err != nil {
		if isUniqueViolation(err) {
			return nil, apierror.Conflict("ya existe una categoría con ese nombre")
		}
		return nil, err
	}
	return &dto.CategoriaResponse{ID: c.ID.String(), Nombre: c.Nombre, Descripcion: c.Descripcion}, nil
}

func (s *catalogoService) ListCategorias(ctx context.Context) ([]dto.CategoriaResponse, error) {
	categorias, err := s.categorias.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoriaResponse, 0, len(categorias))
	for _, c := range categorias {
		out = append(out, dto.CategoriaResponse{ID: c.ID.String(), Nombre: c.Nombre, Descripcion: c.Descripcion})
	}
	return out, nil
}

func (s *catalogoService) CrearProveedor(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error) {
	p := &model.Proveedor{Nombre: req.Nombre, Telefono: req.Telefono, Email: req.Email, Direccion: req.Direccion, Activo: true}
	if err := s.proveedores.Create(ctx, p); err != nil {
		return nil, err
	}
	return proveedorToResponse(p), nil
}

func (s *catalogoService) ListProveedores(ctx context.Context) ([]dto.ProveedorResponse, error) {
	proveedores, err := s.proveedores.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProveedorResponse, 0, len(proveedores))
	for i := range proveedores {
		out = append(out, *proveedorToResponse(&proveedores[i]))
	}
	return out, nil
}

func clienteToResponse(c *model.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:             c.ID.String(),
		NombreCompleto: c.NombreCompleto,
		CI:             c.CI,
		CreatedAt:      c.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func sucursalToResponse(s *model.Sucursal) *dto.SucursalResponse {
	return &dto.SucursalResponse{
		ID:        s.ID.String(),
		Nombre:    s.Nombre,
		Direccion: s.Direccion,
		Telefono:  s.Telefono,
		Activo:    s.Activo,
	}
}

func proveedorToResponse(p *model.Proveedor) *dto.ProveedorResponse {
	return &dto.ProveedorResponse{
		ID:        p.ID.String(),
		Nombre:    p.Nombre,
		Telefono:  p.Telefono,
		Email:     p.Email,
		Direccion: p.Direccion,
		Activo:    p.Activo,
	}
}
