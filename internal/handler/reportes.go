package handler

import (
	"net/http"

	"nexopos/internal/dto"
	"nexopos/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// Resumen godoc
// @Summary      Resumen de utilidad neta
// @Description  ingresos − costos − egresos en el rango, opcionalmente filtrado por sucursal.
// @Tags         reportes
// @Produce      json
// @Security     BearerAuth
// @Param        desde       query string true  "YYYY-MM-DD"
// @Param        hasta       query string true  "YYYY-MM-DD"
// @Param        id_sucursal query string false "UUID de sucursal"
// @Success      200 {object} dto.ResumenReporteResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/reportes/resumen [get]
func (h *ReportesHandler) Resumen(c *gin.Context) {
	var filter dto.ReporteFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.Resumen(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VentasPorProducto godoc
// @Summary      Ventas agrupadas por producto
// @Tags         reportes
// @Produce      json
// @Security     BearerAuth
// @Param        desde       query string true  "YYYY-MM-DD"
// @Param        hasta       query string true  "YYYY-MM-DD"
// @Param        id_sucursal query string false "UUID de sucursal"
// @Success      200 {object} dto.ProductosReporteResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/reportes/productos [get]
func (h *ReportesHandler) VentasPorProducto(c *gin.Context) {
	var filter dto.ReporteFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.VentasPorProducto(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
