package model

import (
	"math"

	"github.com/google/uuid"
)

// Point2D represents a 2D coordinate in canvas units (pixels).
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is the width and height of a rectangular piece.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// HalfDiagonal returns the distance from the center of the rectangle to any corner.
func (s Size) HalfDiagonal() float64 {
	return math.Hypot(s.Width/2, s.Height/2)
}

// Area returns width times height.
func (s Size) Area() float64 {
	return s.Width * s.Height
}

// Corners holds the four corners of an axis-aligned rectangle in clockwise
// order starting at the top-right: top-right, bottom-right, bottom-left, top-left.
type Corners [4]Point2D

// UpperLeft returns the minimum x and minimum y over all four corners.
// This is the anchor used when compositing onto a canvas.
func (c Corners) UpperLeft() Point2D {
	ul := c[0]
	for _, p := range c[1:] {
		if p.X < ul.X {
			ul.X = p.X
		}
		if p.Y < ul.Y {
			ul.Y = p.Y
		}
	}
	return ul
}

// Center returns the midpoint of the rectangle.
func (c Corners) Center() Point2D {
	return Point2D{
		X: (c[0].X + c[2].X) / 2,
		Y: (c[0].Y + c[2].Y) / 2,
	}
}

// Piece represents one rectangular image to be placed.
type Piece struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Width  float64 `json:"width"`            // px
	Height float64 `json:"height"`           // px
	Source string  `json:"source,omitempty"` // Image path; empty for placeholder pieces
}

func NewPiece(label string, w, h float64) Piece {
	return Piece{
		ID:     uuid.New().String()[:8],
		Label:  label,
		Width:  w,
		Height: h,
	}
}

// Size returns the piece dimensions.
func (p Piece) Size() Size {
	return Size{Width: p.Width, Height: p.Height}
}

// Placement represents a single piece placed in the cluster.
// X and Y are the upper-left anchor in the origin-centered coordinate system;
// Center is the center point chosen during the placement search.
type Placement struct {
	Piece  Piece   `json:"piece"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Center Point2D `json:"center"`
}

// Corners recomputes the rectangle corners from the center and piece size.
func (p Placement) Corners() Corners {
	w, h := p.Piece.Width/2, p.Piece.Height/2
	cx, cy := p.Center.X, p.Center.Y
	return Corners{
		{X: cx + w, Y: cy + h},
		{X: cx + w, Y: cy - h},
		{X: cx - w, Y: cy - h},
		{X: cx - w, Y: cy + h},
	}
}

// Layout is the result of one packing run. The cluster is centered on the
// origin and every placed corner lies within Radius of it.
type Layout struct {
	Radius     float64     `json:"radius"`
	Seed       int64       `json:"seed"`
	Rounds     int         `json:"rounds"` // Number of radius growth steps taken
	Placements []Placement `json:"placements"`
}

// CanvasSide returns the side length of the square output canvas in pixels.
func (l Layout) CanvasSide() int {
	return 2 * l.CanvasOffset()
}

// CanvasOffset returns the shift from origin-centered to canvas-local
// coordinates. Rounding up keeps every anchor on the canvas.
func (l Layout) CanvasOffset() int {
	return int(math.Ceil(l.Radius))
}

// UsedArea returns the total area covered by placed pieces.
func (l Layout) UsedArea() float64 {
	var total float64
	for _, p := range l.Placements {
		total += p.Piece.Size().Area()
	}
	return total
}

// CircleArea returns the area of the bounding circle.
func (l Layout) CircleArea() float64 {
	return math.Pi * l.Radius * l.Radius
}

// Fill returns the percentage of the bounding circle covered by pieces.
func (l Layout) Fill() float64 {
	ca := l.CircleArea()
	if ca == 0 {
		return 0
	}
	return (l.UsedArea() / ca) * 100.0
}

// Bounds returns the min and max corners of the axis-aligned box around all placements.
func (l Layout) Bounds() (min, max Point2D) {
	if len(l.Placements) == 0 {
		return Point2D{}, Point2D{}
	}
	first := l.Placements[0].Corners()
	min, max = first[2], first[0]
	for _, p := range l.Placements {
		c := p.Corners()
		if c[2].X < min.X {
			min.X = c[2].X
		}
		if c[2].Y < min.Y {
			min.Y = c[2].Y
		}
		if c[0].X > max.X {
			max.X = c[0].X
		}
		if c[0].Y > max.Y {
			max.Y = c[0].Y
		}
	}
	return min, max
}

// Pieces returns the placed pieces in placement order.
func (l Layout) Pieces() []Piece {
	pieces := make([]Piece, len(l.Placements))
	for i, p := range l.Placements {
		pieces[i] = p.Piece
	}
	return pieces
}

// PackSettings holds the packing driver configuration.
type PackSettings struct {
	GrowthStep float64 `json:"growth_step" toml:"growth_step"` // Radius increment when no piece fits
	MaxRadius  float64 `json:"max_radius" toml:"max_radius"`   // Safety limit; 0 derives one from the input
	Seed       int64   `json:"seed" toml:"seed"`               // 0 draws a fresh seed per run
}

func DefaultSettings() PackSettings {
	return PackSettings{
		GrowthStep: 50.0,
		MaxRadius:  0,
		Seed:       0,
	}
}
