package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/FlagRing/internal/model"
)

// overlapTolerance absorbs floating point noise when rectangles share an edge.
const overlapTolerance = 1e-6

// CornersOf returns the four corners of a rectangle of the given size centered
// on center, clockwise from the top-right corner.
func CornersOf(center model.Point2D, size model.Size) model.Corners {
	w, h := size.Width/2, size.Height/2
	return model.Corners{
		{X: center.X + w, Y: center.Y + h},
		{X: center.X + w, Y: center.Y - h},
		{X: center.X - w, Y: center.Y - h},
		{X: center.X - w, Y: center.Y + h},
	}
}

// InCircle reports whether p lies inside or on the circle of the given radius
// centered on the origin.
func InCircle(radius float64, p model.Point2D) bool {
	return radius >= math.Hypot(p.X, p.Y)
}

// CornersInCircle reports whether all four corners lie within radius.
func CornersInCircle(radius float64, c model.Corners) bool {
	for _, p := range c {
		if !InCircle(radius, p) {
			return false
		}
	}
	return true
}

// UpperLeft returns the minimum x and minimum y over the corners.
func UpperLeft(c model.Corners) model.Point2D {
	return c.UpperLeft()
}

// CheckHeights returns ErrDimensionMismatch unless every piece has the
// height of the first one.
func CheckHeights(pieces []model.Piece) error {
	if len(pieces) == 0 {
		return nil
	}
	h := pieces[0].Height
	for _, p := range pieces[1:] {
		if p.Height != h {
			return fmt.Errorf("%w: %q is %g high, expected %g", ErrDimensionMismatch, p.Label, p.Height, h)
		}
	}
	return nil
}

// checkSizes rejects negative, NaN or infinite dimensions.
func checkSizes(pieces []model.Piece) error {
	for _, p := range pieces {
		for _, v := range []float64{p.Width, p.Height} {
			if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: %q is %g x %g", ErrInvalidSize, p.Label, p.Width, p.Height)
			}
		}
	}
	return nil
}

// extent returns the min and max corners of an axis-aligned corner set.
func extent(c model.Corners) (min, max model.Point2D) {
	min, max = c[0], c[0]
	for _, p := range c[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}

// Overlaps reports whether two axis-aligned rectangles share interior area.
// Rectangles that only touch along an edge or corner do not overlap.
func Overlaps(a, b model.Corners) bool {
	aMin, aMax := extent(a)
	bMin, bMax := extent(b)
	// Separating axis test: any gap on x or y separates the rectangles
	if aMax.X <= bMin.X+overlapTolerance || bMax.X <= aMin.X+overlapTolerance {
		return false
	}
	if aMax.Y <= bMin.Y+overlapTolerance || bMax.Y <= aMin.Y+overlapTolerance {
		return false
	}
	return true
}

// Verify checks a finished layout: every corner lies within the radius and no
// two placements overlap.
func Verify(l model.Layout) error {
	corners := make([]model.Corners, len(l.Placements))
	for i, p := range l.Placements {
		corners[i] = p.Corners()
		if !CornersInCircle(l.Radius+overlapTolerance, corners[i]) {
			return fmt.Errorf("%w: %q at (%.1f, %.1f), radius %.1f", ErrOutsideRadius, p.Piece.Label, p.X, p.Y, l.Radius)
		}
	}
	for i := range corners {
		for j := i + 1; j < len(corners); j++ {
			if Overlaps(corners[i], corners[j]) {
				return fmt.Errorf("%w: %q and %q", ErrOverlap, l.Placements[i].Piece.Label, l.Placements[j].Piece.Label)
			}
		}
	}
	return nil
}
