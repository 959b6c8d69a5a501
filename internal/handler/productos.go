package handler

import (
	"net/http"

	"nexopos/internal/dto"
	"nexopos/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductosHandler struct{ svc service.ProductoService }

func NewProductosHandler(svc service.ProductoService) *ProductosHandler {
	return &ProductosHandler{svc: svc}
}

// CrearProducto godoc
// @Summary      Crear producto
// @Tags         productos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearProductoRequest true "Producto"
// @Success      201 {object} dto.ProductoResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/productos [post]
func (h *ProductosHandler) CrearProducto(c *gin.Context) {
	var req dto.CrearProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ActualizarProducto godoc
// @Summary      Actualizar producto
// @Description  Actualización parcial; el stock solo se modifica vía ajustes o ventas.
// @Tags         productos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID del producto"
// @Param        body body dto.ActualizarProductoRequest true "Campos a actualizar"
// @Success      200 {object} dto.ProductoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/productos/{id} [patch]
func (h *ProductosHandler) ActualizarProducto(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	var req dto.ActualizarProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AjustarStock godoc
// @Summary      Ajustar stock
// @Description  Aplica un delta manual de stock con motivo y registra el movimiento.
// @Tags         productos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID del producto"
// @Param        body body dto.AjustarStockRequest true "Ajuste"
// @Success      200 {object} dto.ProductoResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/productos/{id}/stock [post]
func (h *ProductosHandler) AjustarStock(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	var req dto.AjustarStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AjustarStock(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DesactivarProducto godoc
// @Summary      Desactivar producto (borrado lógico)
// @Tags         productos
// @Security     BearerAuth
// @Param        id path string true "UUID del producto"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/productos/{id} [delete]
func (h *ProductosHandler) DesactivarProducto(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.Desactivar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ReactivarProducto godoc
// @Summary      Reactivar producto
// @Tags         productos
// @Security     BearerAuth
// @Param        id path string true "UUID del producto"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/productos/{id}/reactivar [post]
func (h *ProductosHandler) ReactivarProducto(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.Reactivar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ObtenerProducto godoc
// @Summary      Obtener producto
// @Tags         productos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del producto"
// @Success      200 {object} dto.ProductoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/productos/{id} [get]
func (h *ProductosHandler) ObtenerProducto(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarProductos godoc
// @Summary      Listar productos
// @Tags         productos
// @Produce      json
// @Security     BearerAuth
// @Param        nombre        query string false "Filtro por nombre (ILIKE)"
// @Param        codigo_barras query string false "Filtro por código de barras exacto"
// @Param        categoria_id  query string false "UUID de categoría"
// @Param        id_sucursal   query string false "UUID de sucursal"
// @Param        activo        query string false "'' = solo activos, 'false' = inactivos, 'all' = todos"
// @Success      200 {object} dto.ProductoListResponse
// @Router       /v1/productos [get]
func (h *ProductosHandler) ListarProductos(c *gin.Context) {
	var filter dto.ProductoFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarMovimientosStock godoc
// @Summary      Historial de movimientos de stock
// @Tags         productos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del producto"
// @Success      200 {array} dto.MovimientoStockResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/productos/{id}/movimientos [get]
func (h *ProductosHandler) ListarMovimientosStock(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListMovimientos(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
