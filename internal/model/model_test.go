package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPieceAssignsShortID(t *testing.T) {
	a := NewPiece("France", 90, 60)
	b := NewPiece("France", 90, 60)

	assert.Len(t, a.ID, 8)
	assert.NotEqual(t, a.ID, b.ID, "each piece should get its own ID")
	assert.Equal(t, Size{Width: 90, Height: 60}, a.Size())
	assert.Empty(t, a.Source)
}

func TestSizeHalfDiagonal(t *testing.T) {
	s := Size{Width: 40, Height: 20}
	assert.InDelta(t, 22.3607, s.HalfDiagonal(), 1e-4)
	assert.Equal(t, 800.0, s.Area())
}

func TestCornersUpperLeftAndCenter(t *testing.T) {
	c := Corners{{X: 5, Y: 10}, {X: 5, Y: -10}, {X: -5, Y: -10}, {X: -5, Y: 10}}

	assert.Equal(t, Point2D{X: -5, Y: -10}, c.UpperLeft())
	assert.Equal(t, Point2D{X: 0, Y: 0}, c.Center())
}

func TestPlacementCorners(t *testing.T) {
	p := Placement{
		Piece:  Piece{Width: 10, Height: 20},
		Center: Point2D{X: 100, Y: -50},
	}
	c := p.Corners()

	assert.Equal(t, Point2D{X: 105, Y: -40}, c[0], "top-right")
	assert.Equal(t, Point2D{X: 105, Y: -60}, c[1], "bottom-right")
	assert.Equal(t, Point2D{X: 95, Y: -60}, c[2], "bottom-left")
	assert.Equal(t, Point2D{X: 95, Y: -40}, c[3], "top-left")
	assert.Equal(t, Point2D{X: 95, Y: -60}, c.UpperLeft())
}

func TestLayoutCanvasSide(t *testing.T) {
	tests := []struct {
		radius float64
		side   int
	}{
		{0, 0},
		{22.36, 46},
		{50, 100},
		{72.4, 146},
	}
	for _, tt := range tests {
		l := Layout{Radius: tt.radius}
		assert.Equal(t, tt.side, l.CanvasSide(), "radius %v", tt.radius)
		assert.Equal(t, tt.side/2, l.CanvasOffset())
	}
}

func TestLayoutStatistics(t *testing.T) {
	l := Layout{
		Radius: 100,
		Placements: []Placement{
			{Piece: Piece{Label: "A", Width: 40, Height: 20}, Center: Point2D{X: 0, Y: 0}},
			{Piece: Piece{Label: "B", Width: 60, Height: 20}, Center: Point2D{X: 50, Y: 0}},
		},
	}

	assert.Equal(t, 2000.0, l.UsedArea())
	assert.InDelta(t, math.Pi*10000, l.CircleArea(), 1e-9)
	assert.InDelta(t, 2000/(math.Pi*10000)*100, l.Fill(), 1e-9)

	min, max := l.Bounds()
	assert.Equal(t, Point2D{X: -20, Y: -10}, min)
	assert.Equal(t, Point2D{X: 80, Y: 10}, max)

	pieces := l.Pieces()
	assert.Equal(t, "A", pieces[0].Label)
	assert.Equal(t, "B", pieces[1].Label)
}

func TestLayoutEmpty(t *testing.T) {
	var l Layout
	assert.Equal(t, 0.0, l.Fill())
	min, max := l.Bounds()
	assert.Equal(t, Point2D{}, min)
	assert.Equal(t, Point2D{}, max)
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, 50.0, s.GrowthStep)
	assert.Zero(t, s.MaxRadius)
	assert.Zero(t, s.Seed)
}
