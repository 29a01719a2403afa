package export

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/piwi3910/FlagRing/internal/model"
)

var (
	circleColor    = color.NRGBA{R: 255, G: 64, B: 64, A: 255}
	candidateColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	nextColor      = color.NRGBA{R: 255, G: 230, B: 0, A: 255}
	captionColor   = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
)

// DebugTracer writes a PNG snapshot of the cluster after every placement:
// pieces, the bounding circle, the candidate positions for the next piece
// and a caption. Files are named step_NNN.png.
type DebugTracer struct {
	Dir        string
	Images     ImageSource // Optional; nil draws placeholders
	Background color.Color
}

// NewDebugTracer creates dir if needed.
func NewDebugTracer(dir string, images ImageSource, background color.Color) (*DebugTracer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create debug directory: %w", err)
	}
	return &DebugTracer{Dir: dir, Images: images, Background: background}, nil
}

// StepPath returns the snapshot path for a step.
func (t *DebugTracer) StepPath(step int) string {
	return filepath.Join(t.Dir, fmt.Sprintf("step_%03d.png", step))
}

// Trace renders and saves one snapshot.
func (t *DebugTracer) Trace(step int, radius float64, placements []model.Placement, candidates []model.Point2D) error {
	l := model.Layout{Radius: radius, Placements: placements}
	bg := t.Background
	if bg == nil {
		bg = color.Black
	}

	canvas, err := Compose(l, t.Images, bg)
	if err != nil {
		return err
	}

	off := float64(l.CanvasOffset())
	drawCircle(canvas, off, off, radius, circleColor)
	for i, c := range candidates {
		col := candidateColor
		if i == 0 {
			col = nextColor
		}
		drawMarker(canvas, int(math.Floor(c.X+off)), int(math.Floor(c.Y+off)), col)
	}

	caption := fmt.Sprintf("step %d  r=%.1f  pieces=%d  candidates=%d", step, radius, len(placements), len(candidates))
	drawText(canvas, 4, 2, caption, captionColor)

	return SaveImage(t.StepPath(step), canvas)
}

// drawCircle plots the outline of a circle centered on (cx, cy).
func drawCircle(img *image.NRGBA, cx, cy, r float64, c color.Color) {
	n := int(math.Max(64, 2*math.Pi*r))
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		x := int(math.Round(cx + r*math.Cos(a)))
		y := int(math.Round(cy + r*math.Sin(a)))
		img.Set(x, y, c)
	}
}

// drawMarker plots a small cross. Points off the canvas are clipped.
func drawMarker(img *image.NRGBA, x, y int, c color.Color) {
	for d := -3; d <= 3; d++ {
		img.Set(x+d, y, c)
		img.Set(x, y+d, c)
	}
}
