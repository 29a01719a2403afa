package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"

	"github.com/piwi3910/FlagRing/internal/model"
)

// DXF layer names.
const (
	layerCircle = "CIRCLE"
	layerPieces = "PIECES"
	layerLabels = "LABELS"
)

// ExportDXF writes the layout as a drawing in cluster coordinates: the
// bounding circle, one closed rectangle per piece and a text label inside
// each. The y axis is flipped so the drawing reads like the composite.
func ExportDXF(path string, l model.Layout) error {
	if len(l.Placements) == 0 {
		return ErrEmptyLayout
	}

	d := dxf.NewDrawing()

	if _, err := d.AddLayer(layerCircle, color.Red, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("add layer: %w", err)
	}
	if _, err := d.Circle(0, 0, 0, l.Radius); err != nil {
		return fmt.Errorf("draw circle: %w", err)
	}

	if _, err := d.AddLayer(layerPieces, color.White, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("add layer: %w", err)
	}
	for _, p := range l.Placements {
		c := p.Corners()
		verts := make([][]float64, len(c))
		for i, pt := range c {
			verts[i] = []float64{pt.X, -pt.Y}
		}
		if _, err := d.LwPolyline(true, verts...); err != nil {
			return fmt.Errorf("draw %q: %w", p.Piece.Label, err)
		}
	}

	if _, err := d.AddLayer(layerLabels, color.Cyan, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("add layer: %w", err)
	}
	for _, p := range l.Placements {
		if p.Piece.Label == "" {
			continue
		}
		h := p.Piece.Height / 4
		// Left-aligned baseline just inside the piece's lower-left corner
		x := p.X + h/2
		y := -(p.Y + p.Piece.Height) + h/2
		if _, err := d.Text(p.Piece.Label, x, y, 0, h); err != nil {
			return fmt.Errorf("label %q: %w", p.Piece.Label, err)
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("save drawing: %w", err)
	}
	return nil
}
