package handler

import (
	"net/http"

	"nexopos/internal/dto"
	"nexopos/internal/middleware"
	"nexopos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VentasHandler struct{ svc service.VentaService }

func NewVentasHandler(svc service.VentaService) *VentasHandler { return &VentasHandler{svc: svc} }

// RegistrarVenta godoc
// @Summary      Registrar una nueva venta
// @Description  Crea una venta ACID: descuenta stock, acredita la caja abierta y registra los movimientos de auditoría.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarVentaRequest true "Detalle de la venta"
// @Success      201  {object} dto.VentaResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/ventas [post]
func (h *VentasHandler) RegistrarVenta(c *gin.Context) {
	var req dto.RegistrarVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UsuarioID)

	resp, err := h.svc.RegistrarVenta(c.Request.Context(), usuarioID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	middleware.VentasRegistradas.Inc()
	c.JSON(http.StatusCreated, resp)
}

// EliminarVenta godoc
// @Summary      Anular venta
// @Description  Anula una venta: restaura stock, debita la caja abierta y elimina la venta con sus detalles.
// @Tags         ventas
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la venta"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/ventas/{id} [delete]
func (h *VentasHandler) EliminarVenta(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.EliminarVenta(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	middleware.VentasAnuladas.Inc()
	c.Status(http.StatusNoContent)
}

// ObtenerVenta godoc
// @Summary      Obtener venta
// @Tags         ventas
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la venta"
// @Success      200 {object} dto.VentaResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/ventas/{id} [get]
func (h *VentasHandler) ObtenerVenta(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerVenta(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarVentas godoc
// @Summary      Listar ventas
// @Description  Retorna lista paginada de ventas filtrada por fecha y sucursal.
// @Tags         ventas
// @Produce      json
// @Security     BearerAuth
// @Param        fecha       query string false "Fecha YYYY-MM-DD"
// @Param        id_sucursal query string false "UUID de la sucursal"
// @Param        page        query int    false "Página (default 1)"
// @Param        limit       query int    false "Registros por página (default 50)"
// @Success      200 {object} dto.VentaListResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/ventas [get]
func (h *VentasHandler) ListarVentas(c *gin.Context) {
	var filter dto.VentaFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.ListVentas(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
