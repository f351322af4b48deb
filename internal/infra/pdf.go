package infra

// pdf.go — Pay-stub PDF generation using go-pdf/fpdf.
// Produces a half-letter style receipt with the employee header, the
// reporting window, scheduled vs. worked hours, the hourly rate and the
// resulting pay. The output file is saved to storagePath/recibo_{id}_{fin}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/iangusi/cafeteria-admin/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// ReciboPago carries the aggregated figures printed on a pay stub.
type ReciboPago struct {
	Empleado        *model.Empleado
	FechaInicio     time.Time
	FechaFin        time.Time
	HorasAsignadas  decimal.Decimal
	HorasTrabajadas decimal.Decimal
	Pago            decimal.Decimal
}

// GenerateReciboPDF writes the pay stub and returns the absolute file path.
func GenerateReciboPDF(recibo *ReciboPago, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("recibo_%s_%s.pdf", recibo.Empleado.ID, recibo.FechaFin.Format("20060102"))
	filePath := filepath.Join(storagePath, fileName)

	// Half letter ≈ 140mm × 216mm
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 140, Ht: 216},
	})
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "Cafeteria Admin", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Recibo de Pago", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Employee block ───────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, recibo.Empleado.Nombre, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Rol: "+recibo.Empleado.Rol, "", 1, "L", false, 0, "")
	periodo := fmt.Sprintf("Periodo: %s — %s",
		recibo.FechaInicio.Format("02/01/2006"), recibo.FechaFin.Format("02/01/2006"))
	pdf.CellFormat(contentW, 5, periodo, "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
	pdf.Ln(3)

	// ── Figures table ────────────────────────────────────────────────────────
	col1 := contentW * 0.65
	col2 := contentW * 0.35

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(col1, 6, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, value, "", 1, "R", false, 0, "")
	}
	row("Horas asignadas:", recibo.HorasAsignadas.StringFixed(2)+" h")
	row("Horas trabajadas:", recibo.HorasTrabajadas.StringFixed(2)+" h")
	row("Pago por hora:", "$"+recibo.Empleado.PagoPorHora.StringFixed(2))

	pdf.Ln(2)
	pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(col1, 8, "TOTAL A PAGAR:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 8, "$"+recibo.Pago.StringFixed(2), "", 1, "R", false, 0, "")

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "Generado el "+time.Now().Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
