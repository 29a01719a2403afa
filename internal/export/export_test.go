package export

import (
	"github.com/piwi3910/FlagRing/internal/model"
)

// placed returns a placement of piece centered on (cx, cy).
func placed(label string, w, h, cx, cy float64) model.Placement {
	p := model.NewPiece(label, w, h)
	return model.Placement{
		Piece:  p,
		X:      cx - w/2,
		Y:      cy - h/2,
		Center: model.Point2D{X: cx, Y: cy},
	}
}

// buildTestLayout returns two pieces side by side in a circle of radius 50.
// The canvas is 100 px square with offset 50, so A lands at (30, 40) and B
// at (70, 40).
func buildTestLayout() model.Layout {
	return model.Layout{
		Radius: 50,
		Seed:   42,
		Rounds: 1,
		Placements: []model.Placement{
			placed("A", 40, 20, 0, 0),
			placed("B", 30, 20, 35, 0),
		},
	}
}

// buildLargeLayout returns n pieces in rows of five, enough to force page breaks.
func buildLargeLayout(n int) model.Layout {
	l := model.Layout{Radius: 400, Seed: 7}
	for i := 0; i < n; i++ {
		col, row := i%5, i/5
		l.Placements = append(l.Placements, placed(
			"Flag "+string(rune('A'+i%26)), 40, 20,
			float64(col*40-80), float64(row*20-200)))
	}
	return l
}
