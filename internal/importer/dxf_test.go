package importer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yofu/dxf"

	"github.com/piwi3910/FlagRing/internal/model"
)

func TestImportDXF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flags.dxf")

	d := dxf.NewDrawing()
	_, err := d.LwPolyline(true, []float64{0, 0}, []float64{90, 0}, []float64{90, 60}, []float64{0, 60})
	require.NoError(t, err)
	_, err = d.Text("France", 10, 20, 0, 5)
	require.NoError(t, err)

	// A square drawn as four loose lines
	for _, l := range [][4]float64{
		{200, 0, 260, 0}, {260, 0, 260, 60}, {260, 60, 200, 60}, {200, 60, 200, 0},
	} {
		_, err = d.Line(l[0], l[1], 0, l[2], l[3], 0)
		require.NoError(t, err)
	}
	_, err = d.Circle(400, 0, 0, 30)
	require.NoError(t, err)
	require.NoError(t, d.SaveAs(path))

	result := ImportDXF(path)
	require.Empty(t, result.Errors)
	require.Len(t, result.Pieces, 3)

	byLabel := make(map[string]model.Piece)
	for _, p := range result.Pieces {
		byLabel[p.Label] = p
	}
	require.Contains(t, byLabel, "France")
	assert.InDelta(t, 90, byLabel["France"].Width, 1e-6)
	assert.InDelta(t, 60, byLabel["France"].Height, 1e-6)

	var sizes []model.Size
	for _, p := range result.Pieces {
		sizes = append(sizes, model.Size{Width: round(p.Width), Height: round(p.Height)})
	}
	assert.Contains(t, sizes, model.Size{Width: 60, Height: 60})
}

func TestImportDXF_FileNotFound(t *testing.T) {
	result := ImportDXF("/nonexistent/flags.dxf")
	assert.NotEmpty(t, result.Errors)
}

func TestChainSegments(t *testing.T) {
	p := func(x, y float64) model.Point2D { return model.Point2D{X: x, Y: y} }
	segs := []segment{
		{p(0, 0), p(10, 0)},
		{p(10, 10), p(10, 0)}, // reversed
		{p(10, 10), p(0, 10)},
		{p(0, 10), p(0, 0)},
		{p(50, 50), p(60, 50)}, // open chain
	}

	outlines := chainSegments(segs, chainTolerance)
	require.Len(t, outlines, 1)
	assert.Len(t, outlines[0], 4)
	assert.InDelta(t, 100, outlineArea(outlines[0]), 1e-9)
}

func TestBulgePoints_Semicircle(t *testing.T) {
	pts := bulgePoints(model.Point2D{X: 0, Y: 0}, model.Point2D{X: 10, Y: 0}, 1, 8)

	require.Len(t, pts, 9)
	assert.InDelta(t, 0, pts[0].X, 1e-9)
	assert.InDelta(t, 10, pts[8].X, 1e-9)
	// A counter-clockwise half turn from (0,0) to (10,0) dips below the chord
	o := outline(pts)
	min, _ := o.bounds()
	assert.InDelta(t, -5, min.Y, 1e-9)
}

func round(v float64) float64 {
	return float64(int(v + 0.5))
}
