package handler

import (
	"net/http"

	"nexopos/internal/apierror"
	"nexopos/internal/dto"
	"nexopos/internal/middleware"
	"nexopos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CajaHandler struct{ svc service.CajaService }

func NewCajaHandler(svc service.CajaService) *CajaHandler { return &CajaHandler{svc: svc} }

// AbrirCaja godoc
// @Summary      Abrir caja
// @Description  Abre la sesión de caja de la sucursal. Falla con 409 si ya hay una abierta.
// @Tags         caja
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.AbrirCajaRequest true "Apertura"
// @Success      201 {object} dto.CajaResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/cajas [post]
func (h *CajaHandler) AbrirCaja(c *gin.Context) {
	var req dto.AbrirCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UsuarioID)

	resp, err := h.svc.Abrir(c.Request.Context(), usuarioID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// CerrarCaja godoc
// @Summary      Cerrar caja
// @Tags         caja
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la caja"
// @Success      200 {object} dto.CajaResponse
// @Failure      404 {object} apierror.APIError
// @Failure      409 {object} apierror.APIError
// @Router       /v1/cajas/{id}/cerrar [post]
func (h *CajaHandler) CerrarCaja(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UsuarioID)

	resp, err := h.svc.Cerrar(c.Request.Context(), usuarioID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegistrarMovimiento godoc
// @Summary      Registrar movimiento manual
// @Description  Registra un ingreso o egreso manual contra la caja abierta.
// @Tags         caja
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID de la caja"
// @Param        body body dto.MovimientoManualRequest true "Movimiento"
// @Success      200 {object} dto.CajaResponse
// @Failure      400 {object} apierror.APIError
// @Failure      409 {object} apierror.APIError
// @Router       /v1/cajas/{id}/movimientos [post]
func (h *CajaHandler) RegistrarMovimiento(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	var req dto.MovimientoManualRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarMovimiento(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerCajaAbierta godoc
// @Summary      Consultar la caja abierta de una sucursal
// @Tags         caja
// @Produce      json
// @Security     BearerAuth
// @Param        id_sucursal query string true "UUID de la sucursal"
// @Success      200 {object} dto.CajaResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/cajas/abierta [get]
func (h *CajaHandler) ObtenerCajaAbierta(c *gin.Context) {
	sucursalID, err := uuid.Parse(c.Query("id_sucursal"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("id_sucursal inválido"))
		return
	}
	resp, err := h.svc.ObtenerAbierta(c.Request.Context(), sucursalID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerCaja godoc
// @Summary      Obtener caja
// @Tags         caja
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la caja"
// @Success      200 {object} dto.CajaResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/cajas/{id} [get]
func (h *CajaHandler) ObtenerCaja(c *gin.Context) {
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

// ListarMovimientos godoc
// @Summary      Listar movimientos de una caja
// @Tags         caja
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la caja"
// @Success      200 {array} dto.MovimientoCajaResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/cajas/{id}/movimientos [get]
func (h *CajaHandler) ListarMovimientos(c *gin.Context) {
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
