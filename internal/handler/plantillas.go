package handler

import (
	"net/http"

	"nexopos/internal/dto"
	"nexopos/internal/service"

	"github.com/gin-gonic/gin"
)

type PlantillasHandler struct{ svc service.PlantillaService }

func NewPlantillasHandler(svc service.PlantillaService) *PlantillasHandler {
	return &PlantillasHandler{svc: svc}
}

// CrearPlantilla godoc
// @Summary      Crear plantilla de cotización
// @Tags         plantillas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearPlantillaRequest true "Plantilla"
// @Success      201 {object} dto.PlantillaResponse
// @Router       /v1/plantillas [post]
func (h *PlantillasHandler) CrearPlantilla(c *gin.Context) {
	var req dto.CrearPlantillaRequest
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

// ActualizarPlantilla godoc
// @Summary      Actualizar plantilla
// @Description  Actualización parcial. Las cotizaciones ya emitidas conservan su copia de la plantilla.
// @Tags         plantillas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID de la plantilla"
// @Param        body body dto.ActualizarPlantillaRequest true "Campos a actualizar"
// @Success      200 {object} dto.PlantillaResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/plantillas/{id} [patch]
func (h *PlantillasHandler) ActualizarPlantilla(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	var req dto.ActualizarPlantillaRequest
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

// EliminarPlantilla godoc
// @Summary      Eliminar plantilla
// @Tags         plantillas
// @Security     BearerAuth
// @Param        id path string true "UUID de la plantilla"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/plantillas/{id} [delete]
func (h *PlantillasHandler) EliminarPlantilla(c *gin.Context) {
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

// ObtenerPlantilla godoc
// @Summary      Obtener plantilla
// @Tags         plantillas
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la plantilla"
// @Success      200 {object} dto.PlantillaResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/plantillas/{id} [get]
func (h *PlantillasHandler) ObtenerPlantilla(c *gin.Context) {
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

// ListarPlantillas godoc
// @Summary      Listar plantillas
// @Tags         plantillas
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.PlantillaResponse
// @Router       /v1/plantillas [get]
func (h *PlantillasHandler) ListarPlantillas(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
