package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/splitit/splitit/internal/money"
)

// PDFContentType is the MIME type of PDF output.
const PDFContentType = "application/pdf"

// PDF renders the summary as a one-page A4 document.
// Core PDF fonts cannot draw every currency symbol, so amounts are prefixed
// with the currency code instead.
func PDF(s Summary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(s.Title, true)
	pdf.SetCreator("SplitIt", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	prefix := s.Currency.Code + " "

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, tr(s.Title), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Split mode: %s", s.Mode), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Table header
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(120, 8, "Person", "1", 0, "L", true, 0, "")
	pdf.CellFormat(60, 8, "Owes", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	for _, line := range s.Lines {
		pdf.CellFormat(120, 8, tr(line.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, money.Format(line.Amount, prefix), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(120, 8, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, money.Format(s.Total, prefix), "1", 1, "R", false, 0, "")

	if len(s.Unassigned) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, tr("Not assigned to anyone: "+strings.Join(s.Unassigned, ", ")), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
