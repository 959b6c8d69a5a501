package handler

import (
	"net/http"

	"nexopos/internal/service"

	"github.com/gin-gonic/gin"
)

// ConsultaPreciosHandler serves the unauthenticated price-check endpoint used
// by the in-store scanner kiosk. Rate-limited at the router.
type ConsultaPreciosHandler struct{ svc service.ConsultaPreciosService }

func NewConsultaPreciosHandler(svc service.ConsultaPreciosService) *ConsultaPreciosHandler {
	return &ConsultaPreciosHandler{svc: svc}
}

// ConsultarPrecio godoc
// @Summary      Consultar precio por código de barras
// @Tags         consulta-precios
// @Produce      json
// @Param        codigo path string true "Código de barras"
// @Success      200 {object} dto.ConsultaPreciosResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/consulta-precios/{codigo} [get]
func (h *ConsultaPreciosHandler) ConsultarPrecio(c *gin.Context) {
	resp, err := h.svc.PorCodigoBarras(c.Request.Context(), c.Param("codigo"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
