package export

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/FlagRing/internal/model"
)

// ErrEmptyLayout is returned by exporters given a layout with no placements.
var ErrEmptyLayout = errors.New("layout has no placements")

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	legendWidth  = 80.0
	rowHeight    = 6.0
)

// ExportPDF writes a layout sheet: a scaled diagram of the cluster inside
// its bounding circle, then summary statistics and the placement table.
func ExportPDF(path string, l model.Layout) error {
	if len(l.Placements) == 0 {
		return ErrEmptyLayout
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderDiagramPage(pdf, l)

	pdf.AddPage()
	renderSummaryPage(pdf, l)

	return pdf.OutputFileAndClose(path)
}

// renderDiagramPage draws the circle and pieces, with a legend on the right.
func renderDiagramPage(pdf *fpdf.Fpdf, l model.Layout) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Layout: %d pieces, radius %.1f px (seed %d)", len(l.Placements), l.Radius, l.Seed)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Canvas: %d x %d px | Growth rounds: %d | Fill: %.1f%%",
		l.CanvasSide(), l.CanvasSide(), l.Rounds, l.Fill())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight - legendWidth
	drawHeight := pageHeight - drawAreaTop - marginBottom
	diameter := math.Max(2*l.Radius, 1)
	scale := math.Min(drawWidth, drawHeight) / diameter

	// Circle center on the page
	cx := marginLeft + drawWidth/2
	cy := drawAreaTop + drawHeight/2

	pdf.SetFillColor(30, 30, 30)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.4)
	pdf.Circle(cx, cy, l.Radius*scale, "FD")

	for i, p := range l.Placements {
		col := colorFor(i)
		pw := p.Piece.Width * scale
		ph := p.Piece.Height * scale
		px := cx + p.X*scale
		py := cy + p.Y*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(20, 20, 20)
		pdf.SetLineWidth(0.2)
		pdf.Rect(px, py, pw, ph, "FD")

		if pw > 12 && ph > 4 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)
			label := p.Piece.Label
			if lw := pdf.GetStringWidth(label); lw < pw-1 {
				pdf.SetXY(px+(pw-lw)/2, py+ph/2-2)
				pdf.CellFormat(lw, 4, label, "", 0, "C", false, 0, "")
			}
		}
	}

	// Origin marker
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.2)
	pdf.Line(cx-2, cy, cx+2, cy)
	pdf.Line(cx, cy-2, cx, cy+2)

	drawLegend(pdf, l, marginLeft+drawWidth+5, drawAreaTop)
}

// drawLegend lists placed pieces with their color swatch in one column,
// truncating when the page runs out.
func drawLegend(pdf *fpdf.Fpdf, l model.Layout, x, y float64) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(x, y)
	pdf.CellFormat(legendWidth-5, 4, "Pieces placed:", "", 0, "L", false, 0, "")
	y += 5

	pdf.SetFont("Helvetica", "", 7)
	maxY := pageHeight - marginBottom - 4
	for i, p := range l.Placements {
		if y > maxY {
			pdf.SetXY(x, y)
			pdf.CellFormat(legendWidth-5, 4, fmt.Sprintf("... and %d more", len(l.Placements)-i), "", 0, "L", false, 0, "")
			break
		}
		col := colorFor(i)
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(x, y+0.5, 3, 3, "F")
		pdf.SetXY(x+4, y)
		label := fmt.Sprintf("%d. %s (%.0fx%.0f)", i+1, p.Piece.Label, p.Piece.Width, p.Piece.Height)
		pdf.CellFormat(legendWidth-9, 4, label, "", 0, "L", false, 0, "")
		y += 4
	}
}

// renderSummaryPage draws the statistics and a placement table that
// continues on further pages as needed.
func renderSummaryPage(pdf *fpdf.Fpdf, l model.Layout) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Packing Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	summaryItems := []struct {
		label string
		value string
	}{
		{"Pieces Placed", fmt.Sprintf("%d", len(l.Placements))},
		{"Bounding Radius", fmt.Sprintf("%.2f px", l.Radius)},
		{"Canvas Size", fmt.Sprintf("%d x %d px", l.CanvasSide(), l.CanvasSide())},
		{"Growth Rounds", fmt.Sprintf("%d", l.Rounds)},
		{"Circle Fill", fmt.Sprintf("%.1f%%", l.Fill())},
		{"Seed", fmt.Sprintf("%d", l.Seed)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(60, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Placements", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{15, 25, 70, 40, 50, 50}
	headers := []string{"#", "ID", "Label", "Size (px)", "Anchor (x, y)", "Canvas (x, y)"}
	drawHeader := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		xPos := marginLeft
		for i, header := range headers {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[i], rowHeight, header, "1", 0, "C", true, 0, "")
			xPos += colWidths[i]
		}
		y += rowHeight
		pdf.SetFont("Helvetica", "", 9)
	}
	drawHeader()

	for i, p := range l.Placements {
		if y+rowHeight > pageHeight-marginBottom {
			pdf.AddPage()
			y = marginTop
			drawHeader()
		}
		pt := CanvasPoint(l, p)
		row := []string{
			fmt.Sprintf("%d", i+1),
			p.Piece.ID,
			p.Piece.Label,
			fmt.Sprintf("%.0f x %.0f", p.Piece.Width, p.Piece.Height),
			fmt.Sprintf("%.1f, %.1f", p.X, p.Y),
			fmt.Sprintf("%d, %d", pt.X, pt.Y),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos := marginLeft
		for j, cell := range row {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], rowHeight, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += rowHeight
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by FlagRing", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// labelFontSize returns a font size that suits the rectangle on the page.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 20:
		return 8
	case minDim > 8:
		return 6
	default:
		return 4
	}
}
