package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders score reports into a tabular PDF.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a PDF score report. Rows are shaded by their percentage
// band so elevated domains stand out; the overall row is set in bold.
func (e *PDFExporter) Render(report Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if report.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(report.Title), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	colWidth := 190.0 / float64(len(columns))
	pdf.SetFont("Arial", "B", 10)
	for _, column := range columns {
		pdf.CellFormat(colWidth, 8, column, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range report.Rows {
		writeScoreRow(pdf, row, colWidth)
	}
	pdf.SetFont("Arial", "B", 9)
	writeScoreRow(pdf, report.Overall, colWidth)

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeScoreRow(pdf *gofpdf.Fpdf, row ScoreRow, colWidth float64) {
	r, g, b := bandColor(row.Percentage)
	pdf.SetFillColor(r, g, b)
	for _, value := range row.record() {
		pdf.CellFormat(colWidth, 7, value, "1", 0, "", true, 0, "")
	}
	pdf.Ln(-1)
}

// bandColor maps a percentage to a row fill, mirroring the frontend's score
// color coding: red above 75, amber above 50, white below.
func bandColor(percentage float64) (int, int, int) {
	switch {
	case percentage >= 75:
		return 249, 205, 205
	case percentage >= 50:
		return 253, 235, 200
	default:
		return 255, 255, 255
	}
}
