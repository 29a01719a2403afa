package engine

import (
	"math"
	"math/rand"
	"sort"

	"github.com/piwi3910/FlagRing/internal/model"
)

// rowTolerance groups edge midpoints that sit on the same row.
const rowTolerance = 1e-9

// Candidates returns the center points where a rectangle of the given size
// may be tried next, based on the corner sets placed so far.
//
// Two kinds of points are produced. Profile points extend each row of the
// cluster outward: for every distinct row height the left-most and right-most
// vertical edge midpoints are kept and pushed out by half the new width. Pole
// points sit directly above the top and below the bottom of the cluster.
// Both groups are shuffled independently and the poles come last.
func Candidates(placed []model.Corners, size model.Size, rng *rand.Rand) []model.Point2D {
	if len(placed) == 0 {
		return nil
	}

	poles := poleCandidates(placed, size)
	profile := profileCandidates(placed, size)

	rng.Shuffle(len(profile), func(i, j int) { profile[i], profile[j] = profile[j], profile[i] })
	rng.Shuffle(len(poles), func(i, j int) { poles[i], poles[j] = poles[j], poles[i] })

	return append(profile, poles...)
}

// poleCandidates returns the centers just above the top-most and below the
// bottom-most placed rectangle, on the vertical axis.
func poleCandidates(placed []model.Corners, size model.Size) []model.Point2D {
	north := math.Inf(1)
	south := math.Inf(-1)
	for _, c := range placed {
		for _, p := range c {
			north = math.Min(north, p.Y)
			south = math.Max(south, p.Y)
		}
	}
	return []model.Point2D{
		{X: 0, Y: north - size.Height/2},
		{X: 0, Y: south + size.Height/2},
	}
}

// profileCandidates reduces every vertical edge to its midpoint, keeps the
// outermost pair per row and displaces them outward by half the new width.
func profileCandidates(placed []model.Corners, size model.Size) []model.Point2D {
	mids := make([]model.Point2D, 0, 2*len(placed))
	for _, c := range placed {
		// Right edge: top-right and bottom-right
		mids = append(mids, edgeMidpoint(c[0], c[1]))
		// Left edge: top-left and bottom-left
		mids = append(mids, edgeMidpoint(c[3], c[2]))
	}

	// Rows in descending y, then ascending x within a row
	sort.Slice(mids, func(i, j int) bool {
		if math.Abs(mids[i].Y-mids[j].Y) > rowTolerance {
			return mids[i].Y > mids[j].Y
		}
		return mids[i].X < mids[j].X
	})

	var kept []model.Point2D
	for start := 0; start < len(mids); {
		end := start + 1
		for end < len(mids) && math.Abs(mids[end].Y-mids[start].Y) <= rowTolerance {
			end++
		}
		kept = append(kept, mids[start], mids[end-1])
		start = end
	}

	for i := range kept {
		kept[i].X += sign(kept[i].X) * size.Width / 2
	}
	return kept
}

// edgeMidpoint returns the point halfway along a vertical edge.
func edgeMidpoint(a, b model.Point2D) model.Point2D {
	return model.Point2D{X: a.X, Y: (a.Y + b.Y) / 2}
}

// sign returns -1, 0 or 1. Unlike math.Copysign it maps zero to zero.
func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
