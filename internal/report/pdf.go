package report

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"
)

const (
	rowDateFormat      = "2006-01-02"
	footerDateFormat   = "02.01.2006"
	currencySuffix     = "KM"
	tableColumnWidthMM = 42.5 // A4 minus 2cm margins, four equal columns
)

// RenderPDF renders a document to A4 PDF bytes. On any rendering fault it
// returns an error and no bytes.
func RenderPDF(doc Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 25)

	// The core Helvetica font takes cp1252 one-byte strings, so the
	// bullet and any accented service text must be translated.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	footer := tr(fmt.Sprintf("AutoStats • %s", doc.GeneratedAt.Format(footerDateFormat)))
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(0, 10, footer, "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	// Title
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(33, 83, 164)
	pdf.MultiCell(0, 8, tr(doc.Title), "", "C", false)
	pdf.Ln(8)

	// Table header
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	for _, h := range []string{"Date", "Type", "Mileage", "Cost (" + currencySuffix + ")"} {
		pdf.CellFormat(tableColumnWidthMM, 8, h, "B", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	// Rows
	pdf.SetFont("Helvetica", "", 12)
	for _, row := range doc.Rows {
		pdf.CellFormat(tableColumnWidthMM, 8, row.Date.Format(rowDateFormat), "B", 0, "L", false, 0, "")
		pdf.CellFormat(tableColumnWidthMM, 8, tr(row.ServiceType), "B", 0, "L", false, 0, "")
		pdf.CellFormat(tableColumnWidthMM, 8, strconv.Itoa(row.Mileage), "B", 0, "L", false, 0, "")
		pdf.CellFormat(tableColumnWidthMM, 8, row.Cost.StringFixed(2), "B", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(6)

	// Total
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(33, 83, 164)
	pdf.CellFormat(3*tableColumnWidthMM, 8, "Total:", "", 0, "R", false, 0, "")
	pdf.CellFormat(tableColumnWidthMM, 8, doc.TotalCost.StringFixed(2)+" "+currencySuffix, "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
