package handler

import (
	"net/http"

	"nexopos/internal/apierror"
	"nexopos/internal/dto"
	"nexopos/internal/middleware"
	"nexopos/internal/service"

	"github.com/gin-gonic/gin"
)

type CotizacionesHandler struct{ svc service.CotizacionService }

func NewCotizacionesHandler(svc service.CotizacionService) *CotizacionesHandler {
	return &CotizacionesHandler{svc: svc}
}

// CrearCotizacion godoc
// @Summary      Emitir cotización
// @Description  Crea una cotización con código secuencial COT-NNNN, copia la plantilla y congela precios de catálogo. El PDF se genera de forma asíncrona.
// @Tags         cotizaciones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearCotizacionRequest true "Cotización"
// @Success      201 {object} dto.CotizacionResponse
// @Failure      404 {object} apierror.APIError
// @Failure      409 {object} apierror.APIError
// @Router       /v1/cotizaciones [post]
func (h *CotizacionesHandler) CrearCotizacion(c *gin.Context) {
	var req dto.CrearCotizacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	middleware.CotizacionesEmitidas.Inc()
	c.JSON(http.StatusCreated, resp)
}

// ActualizarCotizacion godoc
// @Summary      Actualizar cotización
// @Description  Actualización parcial; un arreglo de productos no nulo reemplaza todas las líneas y recalcula el total.
// @Tags         cotizaciones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID de la cotización"
// @Param        body body dto.ActualizarCotizacionRequest true "Campos a actualizar"
// @Success      200 {object} dto.CotizacionResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/cotizaciones/{id} [patch]
func (h *CotizacionesHandler) ActualizarCotizacion(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	var req dto.ActualizarCotizacionRequest
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

// EliminarCotizacion godoc
// @Summary      Eliminar cotización
// @Description  Elimina la cotización y sus líneas. El código no se reutiliza.
// @Tags         cotizaciones
// @Security     BearerAuth
// @Param        id path string true "UUID de la cotización"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/cotizaciones/{id} [delete]
func (h *CotizacionesHandler) EliminarCotizacion(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ObtenerCotizacion godoc
// @Summary      Obtener cotización
// @Tags         cotizaciones
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la cotización"
// @Success      200 {object} dto.CotizacionResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/cotizaciones/{id} [get]
func (h *CotizacionesHandler) ObtenerCotizacion(c *gin.Context) {
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

// ListarCotizaciones godoc
// @Summary      Listar cotizaciones
// @Tags         cotizaciones
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.CotizacionResponse
// @Router       /v1/cotizaciones [get]
func (h *CotizacionesHandler) ListarCotizaciones(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DescargarPDF godoc
// @Summary      Descargar el PDF de una cotización
// @Tags         cotizaciones
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id path string true "UUID de la cotización"
// @Success      200
// @Failure      404 {object} apierror.APIError
// @Router       /v1/cotizaciones/{id}/pdf [get]
func (h *CotizacionesHandler) DescargarPDF(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if resp.PDFPath == nil {
		c.JSON(http.StatusNotFound, apierror.New("el PDF aún no fue generado"))
		return
	}
	c.FileAttachment(*resp.PDFPath, resp.Codigo+".pdf")
}
