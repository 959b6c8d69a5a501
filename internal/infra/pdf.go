package infra

// pdf.go — Cotización PDF rendering using go-pdf/fpdf.
// Produces an A4 document styled from the plantilla snapshot carried by the
// cotización: theme color, logo placement, terms, payment methods and notes.
// The output file is saved to storagePath/{codigo}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"nexopos/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateCotizacionPDF renders the cotización and returns the absolute path
// of the written file. The caller must pass a fully preloaded cotización
// (Cliente, Sucursal, Plantilla, Productos.Producto).
func GenerateCotizacionPDF(cot *model.Cotizacion, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, cot.Codigo+".pdf")

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	r, g, b := parseHexColor(themeColor(cot))

	// ── Header band ──────────────────────────────────────────────────────────
	pdf.SetFillColor(r, g, b)
	pdf.Rect(0, 0, pageW, 30, "F")

	titulo := "Cotización"
	if cot.Plantilla != nil && cot.Plantilla.Titulo != "" {
		titulo = cot.Plantilla.Titulo
	}
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(15, 8)
	align := "L"
	if cot.Plantilla != nil {
		switch cot.Plantilla.LogoPosition {
		case "center":
			align = "C"
		case "right":
			align = "R"
		}
	}
	pdf.CellFormat(contentW, 10, titulo, "", 1, align, false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetY(36)

	// ── Identification block ─────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 6, cot.Codigo, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Emisión: "+cot.FechaEmision.Format("02/01/2006"), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, "Válida hasta: "+cot.FechaVencimiento.Format("02/01/2006"), "", 1, "L", false, 0, "")
	if cot.Cliente != nil {
		pdf.CellFormat(contentW, 5, "Cliente: "+cot.Cliente.NombreCompleto+"  (CI "+cot.Cliente.CI+")", "", 1, "L", false, 0, "")
	}
	if cot.Sucursal != nil {
		pdf.CellFormat(contentW, 5, "Sucursal: "+cot.Sucursal.Nombre, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// ── Line table ───────────────────────────────────────────────────────────
	col1 := contentW * 0.46 // product
	col2 := contentW * 0.12 // qty
	col3 := contentW * 0.21 // unit price
	col4 := contentW * 0.21 // line total

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(r, g, b)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(col1, 7, "Producto", "1", 0, "L", true, 0, "")
	pdf.CellFormat(col2, 7, "Cant.", "1", 0, "C", true, 0, "")
	pdf.CellFormat(col3, 7, "P. Unitario", "1", 0, "R", true, 0, "")
	pdf.CellFormat(col4, 7, "Total", "1", 1, "R", true, 0, "")
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont("Helvetica", "", 9)
	for _, l := range cot.Productos {
		nombre := l.ProductoID.String()
		if l.Producto != nil {
			nombre = l.Producto.Nombre
		}
		if len(nombre) > 48 {
			nombre = nombre[:47] + "…"
		}
		pdf.CellFormat(col1, 6, nombre, "1", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, strconv.Itoa(l.Cantidad), "1", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, l.PrecioUnitario.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, l.Total.StringFixed(2), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(col1+col2+col3, 7, "TOTAL", "1", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 7, cot.Total.StringFixed(2), "1", 1, "R", false, 0, "")
	pdf.Ln(6)

	// ── Boilerplate blocks ───────────────────────────────────────────────────
	writeBlock(pdf, contentW, "Términos y condiciones", cot.Terminos)
	writeBlock(pdf, contentW, "Métodos de pago", cot.MetodosPago)
	if cot.Notas != nil && *cot.Notas != "" {
		writeBlock(pdf, contentW, "Notas", *cot.Notas)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

func writeBlock(pdf *fpdf.Fpdf, w float64, title, body string) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(w, 6, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.MultiCell(w, 4.5, body, "", "L", false)
	pdf.Ln(3)
}

func themeColor(cot *model.Cotizacion) string {
	if cot.Plantilla != nil && cot.Plantilla.ColorTema != "" {
		return cot.Plantilla.ColorTema
	}
	return "#2c3e50"
}

// parseHexColor accepts "#RRGGBB"; anything malformed falls back to dark slate.
func parseHexColor(s string) (int, int, int) {
	if len(s) == 7 && s[0] == '#' {
		r, err1 := strconv.ParseInt(s[1:3], 16, 0)
		g, err2 := strconv.ParseInt(s[3:5], 16, 0)
		b, err3 := strconv.ParseInt(s[5:7], 16, 0)
		if err1 == nil && err2 == nil && err3 == nil {
			return int(r), int(g), int(b)
		}
	}
	return 44, 62, 80
}
