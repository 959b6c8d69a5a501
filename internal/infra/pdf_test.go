package infra

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"nexopos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cotizacionDePrueba() *model.Cotizacion {
	notas := "Entrega en 5 días hábiles"
	producto := &model.Producto{ID: uuid.New(), Nombre: "Compresor 50L", CodigoBarras: "7770001112223"}
	return &model.Cotizacion{
		ID:               uuid.New(),
		Codigo:           "COT-0007",
		FechaEmision:     time.Now(),
		FechaVencimiento: time.Now().AddDate(0, 0, 15),
		Terminos:         "Válida por 15 días",
		MetodosPago:      "Efectivo, transferencia bancaria",
		Notas:            &notas,
		Total:            decimal.NewFromInt(1740),
		Estado:           "pendiente",
		Cliente:          &model.Cliente{ID: uuid.New(), NombreCompleto: "Constructora Andina", CI: "5544332"},
		Sucursal:         &model.Sucursal{ID: uuid.New(), Nombre: "Casa Matriz"},
		Plantilla: &model.PlantillaCotizacion{
			Titulo:       "Cotización Comercial",
			ColorTema:    "#1a5276",
			LogoPosition: "left",
		},
		Productos: []model.CotizacionProducto{
			{
				ID:             uuid.New(),
				ProductoID:     producto.ID,
				Cantidad:       2,
				PrecioUnitario: decimal.NewFromInt(870),
				Total:          decimal.NewFromInt(1740),
				Producto:       producto,
			},
		},
	}
}

func TestGenerateCotizacionPDF(t *testing.T) {
	dir := t.TempDir()
	cot := cotizacionDePrueba()

	path, err := GenerateCotizacionPDF(cot, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "COT-0007.pdf"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(500))

	// %PDF magic header
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	head := make([]byte, 4)
	_, err = f.Read(head)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(head))
}

func TestGenerateCotizacionPDF_SinPlantillaNiCliente(t *testing.T) {
	dir := t.TempDir()
	cot := cotizacionDePrueba()
	cot.Plantilla = nil
	cot.Cliente = nil
	cot.Sucursal = nil
	cot.Notas = nil

	// Renders with fallbacks instead of failing
	path, err := GenerateCotizacionPDF(cot, dir)
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestParseHexColor(t *testing.T) {
	r, g, b := parseHexColor("#ffffff")
	assert.Equal(t, [3]int{255, 255, 255}, [3]int{r, g, b})

	// Malformed values fall back to the default theme
	r, g, b = parseHexColor("azul")
	r2, g2, b2 := parseHexColor("")
	assert.Equal(t, [3]int{r2, g2, b2}, [3]int{r, g, b})
}
