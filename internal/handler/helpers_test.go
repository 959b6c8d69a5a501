package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nexopos/internal/dto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T, method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestBindAndValidate_CamposFaltantesResponde400(t *testing.T) {
	// A sale without detalles ni monto_total is incomplete data, not an
	// unprocessable entity.
	c, w := testContext(t, "POST", "/v1/ventas", `{"id_sucursal":"`+uuid.NewString()+`"}`)

	var req dto.RegistrarVentaRequest
	ok := bindAndValidate(c, &req)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Detalles")
}

func TestBindAndValidate_JSONInvalidoResponde400(t *testing.T) {
	c, w := testContext(t, "POST", "/v1/ventas", `{"id_sucursal":`)

	var req dto.RegistrarVentaRequest
	ok := bindAndValidate(c, &req)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBindAndValidate_RequestValida(t *testing.T) {
	body := `{"id_sucursal":"` + uuid.NewString() + `",` +
		`"detalles":[{"producto_id":"` + uuid.NewString() + `","cantidad":1}],` +
		`"monto_total":10}`
	c, w := testContext(t, "POST", "/v1/ventas", body)

	var req dto.RegistrarVentaRequest
	ok := bindAndValidate(c, &req)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, w.Code) // nothing written
	assert.Len(t, req.Detalles, 1)
}

func TestBindQueryAndValidate_FiltroInvalidoResponde400(t *testing.T) {
	c, w := testContext(t, "GET", "/v1/ventas?limit=500", "")

	var filter dto.VentaFilter
	ok := bindQueryAndValidate(c, &filter)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
