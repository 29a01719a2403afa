package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/FlagRing/internal/model"
)

func TestCornersOf_ClockwiseFromTopRight(t *testing.T) {
	c := CornersOf(model.Point2D{X: 0, Y: 0}, model.Size{Width: 10, Height: 20})

	assert.Equal(t, model.Corners{
		{X: 5, Y: 10},
		{X: 5, Y: -10},
		{X: -5, Y: -10},
		{X: -5, Y: 10},
	}, c)
}

func TestCornersOf_OffsetCenter(t *testing.T) {
	c := CornersOf(model.Point2D{X: 35, Y: -20}, model.Size{Width: 30, Height: 20})

	assert.Equal(t, model.Point2D{X: 50, Y: -10}, c[0])
	assert.Equal(t, model.Point2D{X: 20, Y: -30}, c[2])
	assert.Equal(t, model.Point2D{X: 20, Y: -30}, UpperLeft(c))
}

func TestInCircle(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
		p      model.Point2D
		want   bool
	}{
		{"exactly on boundary", 5, model.Point2D{X: 3, Y: 4}, true},
		{"just outside", 5, model.Point2D{X: 3, Y: 4.01}, false},
		{"origin", 0, model.Point2D{}, true},
		{"inside negative quadrant", 10, model.Point2D{X: -6, Y: -7}, true},
		{"outside on axis", 10, model.Point2D{X: 0, Y: -10.5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InCircle(tt.radius, tt.p))
		})
	}
}

func TestCornersInCircle(t *testing.T) {
	c := CornersOf(model.Point2D{}, model.Size{Width: 6, Height: 8})
	assert.True(t, CornersInCircle(5, c))
	assert.False(t, CornersInCircle(4.99, c))
}

func TestCheckHeights(t *testing.T) {
	ok := []model.Piece{
		model.NewPiece("A", 10, 10),
		model.NewPiece("B", 30, 10),
	}
	assert.NoError(t, CheckHeights(ok))
	assert.NoError(t, CheckHeights(nil))

	bad := []model.Piece{
		model.NewPiece("A", 10, 10),
		model.NewPiece("B", 10, 10),
		model.NewPiece("C", 10, 12),
	}
	err := CheckHeights(bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
	assert.Contains(t, err.Error(), `"C"`)
}

func TestOverlaps(t *testing.T) {
	unit := model.Size{Width: 10, Height: 10}
	base := CornersOf(model.Point2D{}, unit)

	tests := []struct {
		name   string
		center model.Point2D
		size   model.Size
		want   bool
	}{
		{"identical", model.Point2D{}, unit, true},
		{"partial overlap", model.Point2D{X: 5, Y: 5}, unit, true},
		{"contained", model.Point2D{X: 1, Y: 1}, model.Size{Width: 2, Height: 2}, true},
		{"touching right edge", model.Point2D{X: 10, Y: 0}, unit, false},
		{"touching top edge", model.Point2D{X: 0, Y: 10}, unit, false},
		{"touching corner", model.Point2D{X: 10, Y: 10}, unit, false},
		{"separated", model.Point2D{X: 30, Y: -30}, unit, false},
		{"same row gap", model.Point2D{X: 10.5, Y: 0}, unit, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := CornersOf(tt.center, tt.size)
			assert.Equal(t, tt.want, Overlaps(base, other))
			assert.Equal(t, tt.want, Overlaps(other, base), "overlap must be symmetric")
		})
	}
}

func TestVerify(t *testing.T) {
	piece := model.Piece{Label: "A", Width: 10, Height: 10}
	place := func(label string, x, y float64) model.Placement {
		p := piece
		p.Label = label
		c := CornersOf(model.Point2D{X: x, Y: y}, p.Size())
		ul := c.UpperLeft()
		return model.Placement{Piece: p, X: ul.X, Y: ul.Y, Center: model.Point2D{X: x, Y: y}}
	}

	valid := model.Layout{Radius: 20, Placements: []model.Placement{place("A", 0, 0), place("B", 10, 0)}}
	assert.NoError(t, Verify(valid))

	overlapping := model.Layout{Radius: 20, Placements: []model.Placement{place("A", 0, 0), place("B", 5, 0)}}
	assert.ErrorIs(t, Verify(overlapping), ErrOverlap)

	outside := model.Layout{Radius: 10, Placements: []model.Placement{place("A", 0, 0), place("B", 10, 0)}}
	assert.ErrorIs(t, Verify(outside), ErrOutsideRadius)
}
