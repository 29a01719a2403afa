package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/FlagRing/internal/model"
)

const (
	placementsSheet = "Placements"
	summarySheet    = "Summary"
)

var placementHeaders = []interface{}{
	"#", "ID", "Label", "Width", "Height",
	"Anchor X", "Anchor Y", "Center X", "Center Y",
	"Canvas X", "Canvas Y", "Source",
}

// ExportXLSX writes a workbook with one row per placement and a summary
// sheet with the layout statistics.
func ExportXLSX(path string, l model.Layout) error {
	if len(l.Placements) == 0 {
		return ErrEmptyLayout
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), placementsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writePlacements(f, l); err != nil {
		return err
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}
	if err := writeSummary(f, l); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writePlacements(f *excelize.File, l model.Layout) error {
	if err := f.SetSheetRow(placementsSheet, "A1", &placementHeaders); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(placementHeaders), 1)
	if err := f.SetCellStyle(placementsSheet, "A1", last, header); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, p := range l.Placements {
		pt := CanvasPoint(l, p)
		row := []interface{}{
			i + 1, p.Piece.ID, p.Piece.Label, p.Piece.Width, p.Piece.Height,
			p.X, p.Y, p.Center.X, p.Center.Y,
			pt.X, pt.Y, p.Piece.Source,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(placementsSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(placementsSheet, "C", "C", 24); err != nil {
		return err
	}
	return f.SetColWidth(placementsSheet, "L", "L", 40)
}

func writeSummary(f *excelize.File, l model.Layout) error {
	rows := [][]interface{}{
		{"Pieces", len(l.Placements)},
		{"Radius", l.Radius},
		{"Canvas Side", l.CanvasSide()},
		{"Canvas Offset", l.CanvasOffset()},
		{"Growth Rounds", l.Rounds},
		{"Used Area", l.UsedArea()},
		{"Circle Area", l.CircleArea()},
		{"Fill %", l.Fill()},
		{"Seed", fmt.Sprintf("%d", l.Seed)}, // Text so spreadsheets keep every digit
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}
	return f.SetColWidth(summarySheet, "A", "A", 18)
}
