package handler

import (
	"net/http"

	"nexopos/internal/dto"
	"nexopos/internal/service"

	"github.com/gin-gonic/gin"
)

// CatalogoHandler exposes the thin CRUD surfaces: clientes, sucursales,
// categorías y proveedores.
type CatalogoHandler struct{ svc service.CatalogoService }

func NewCatalogoHandler(svc service.CatalogoService) *CatalogoHandler {
	return &CatalogoHandler{svc: svc}
}

// ── Clientes ──────────────────────────────────────────────────────────────────

// CrearCliente godoc
// @Summary      Crear cliente
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearClienteRequest true "Cliente"
// @Success      201 {object} dto.ClienteResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/clientes [post]
func (h *CatalogoHandler) CrearCliente(c *gin.Context) {
	var req dto.CrearClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearCliente(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ObtenerCliente godoc
// @Summary      Obtener cliente
// @Tags         clientes
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del cliente"
// @Success      200 {object} dto.ClienteResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/clientes/{id} [get]
func (h *CatalogoHandler) ObtenerCliente(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerCliente(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarClientes godoc
// @Summary      Listar clientes
// @Tags         clientes
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.ClienteResponse
// @Router       /v1/clientes [get]
func (h *CatalogoHandler) ListarClientes(c *gin.Context) {
	resp, err := h.svc.ListClientes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Sucursales ────────────────────────────────────────────────────────────────

// CrearSucursal godoc
// @Summary      Crear sucursal
// @Tags         sucursales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearSucursalRequest true "Sucursal"
// @Success      201 {object} dto.SucursalResponse
// @Router       /v1/sucursales [post]
func (h *CatalogoHandler) CrearSucursal(c *gin.Context) {
	var req dto.CrearSucursalRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearSucursal(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarSucursales godoc
// @Summary      Listar sucursales
// @Tags         sucursales
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.SucursalResponse
// @Router       /v1/sucursales [get]
func (h *CatalogoHandler) ListarSucursales(c *gin.Context) {
	resp, err := h.svc.ListSucursales(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Categorías ────────────────────────────────────────────────────────────────

// CrearCategoria godoc
// @Summary      Crear categoría
// @Tags         categorias
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearCategoriaRequest true "Categoría"
// @Success      201 {object} dto.CategoriaResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/categorias [post]
func (h *CatalogoHandler) CrearCategoria(c *gin.Context) {
	var req dto.CrearCategoriaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearCategoria(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarCategorias godoc
// @Summary      Listar categorías
// @Tags         categorias
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.CategoriaResponse
// @Router       /v1/categorias [get]
func (h *CatalogoHandler) ListarCategorias(c *gin.Context) {
	resp, err := h.svc.ListCategorias(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Proveedores ───────────────────────────────────────────────────────────────

// CrearProveedor godoc
// @Summary      Crear proveedor
// @Tags         proveedores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearProveedorRequest true "Proveedor"
// @Success      201 {object} dto.ProveedorResponse
// @Router       /v1/proveedores [post]
func (h *CatalogoHandler) CrearProveedor(c *gin.Context) {
	var req dto.CrearProveedorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearProveedor(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarProveedores godoc
// @Summary      Listar proveedores
// @Tags         proveedores
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.ProveedorResponse
// @Router       /v1/proveedores [get]
func (h *CatalogoHandler) ListarProveedores(c *gin.Context) {
	resp, err := h.svc.ListProveedores(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
