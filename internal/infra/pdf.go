package infra

// pdf.go — supplier scorecard PDF generation using go-pdf/fpdf.
// One A4 page per supplier:
//   - Supplier name + number header
//   - Score table (component scores, total)
//   - Revenue metrics (revenue, share, accumulated share, margin)
//   - Tier / profile / diagnosis block
//   - Review status footer
//
// The output file is saved to storagePath/scorecard_{levnr}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"levscore/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateScorecardPDF renders a one-page scorecard for a supplier.
// storagePath is the directory where the PDF will be written (created if
// needed). Returns the absolute path to the generated file.
func GenerateScorecardPDF(s *model.Supplier, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("scorecard_%s.pdf", s.SupplierNumber)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "LevScore PRO 3000", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Supplier scorecard", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 8, s.Name, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Supplier no. %s", s.SupplierNumber), "", 1, "L", false, 0, "")
	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(4)

	// ── Scores ───────────────────────────────────────────────────────────────
	col1 := contentW * 0.6
	col2 := contentW * 0.4

	scoreRow := func(label string, value float64) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(col1, 7, label, "B", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 7, fmt.Sprintf("%.1f", value), "B", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, "Scores", "", 1, "L", false, 0, "")
	scoreRow("Sales", s.SalesScore)
	scoreRow("Assortment", s.AssortmentScore)
	scoreRow("Efficiency", s.EfficiencyScore)
	scoreRow("Margin", s.MarginScore)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(col1, 8, "Total", "", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 8, fmt.Sprintf("%.1f", s.TotalScore), "", 1, "R", false, 0, "")
	pdf.Ln(4)

	// ── Revenue metrics ──────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, "Revenue", "", 1, "L", false, 0, "")
	scoreRow("Total revenue", s.TotalRevenue)
	scoreRow("Revenue share %", s.RevenueShare)
	scoreRow("Accumulated share %", s.AccumulatedShare)
	scoreRow("Average margin %", s.AvgMargin)
	pdf.Ln(4)

	// ── Classification ───────────────────────────────────────────────────────
	textRow := func(label string, value *string) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(col1*0.5, 6, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		v := "-"
		if value != nil {
			v = *value
		}
		pdf.MultiCell(contentW-col1*0.5, 6, v, "", "L", false)
	}
	textRow("Tier", s.Tier)
	textRow("Profile", s.Profile)
	textRow("Diagnosis", s.Diagnosis)
	textRow("Action", s.ShortAction)

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Review status: %s", s.ReviewStatus), "", 1, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
