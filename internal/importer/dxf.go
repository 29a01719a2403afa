package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/FlagRing/internal/model"
)

// chainTolerance is the maximum gap between LINE endpoints that still join.
const chainTolerance = 0.01

// outline is a closed polygon read from a drawing.
type outline []model.Point2D

// bounds returns the min and max corners of the polygon's bounding box.
func (o outline) bounds() (min, max model.Point2D) {
	min, max = o[0], o[0]
	for _, p := range o[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}

// contains reports whether p lies inside the bounding box.
func (o outline) contains(p model.Point2D) bool {
	min, max := o.bounds()
	return p.X >= min.X && p.X <= max.X && p.Y >= min.Y && p.Y <= max.Y
}

// segment is a line between two points, used to chain loose LINEs and ARCs.
type segment struct {
	start model.Point2D
	end   model.Point2D
}

// label is a TEXT entity that may name the shape it sits in.
type label struct {
	at    model.Point2D
	value string
}

// ImportDXF reads pieces from a DXF drawing. Every closed shape (LWPOLYLINE,
// CIRCLE, or chain of LINEs and ARCs) becomes a placeholder piece sized by
// its bounding box. A TEXT entity inside a shape's box becomes its label.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var shapes []outline
	var segments []segment
	var labels []label

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			o := polylineOutline(e)
			if len(o) >= 3 {
				shapes = append(shapes, o)
			} else {
				result.Warnings = append(result.Warnings, "Skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Circle:
			shapes = append(shapes, circleOutline(e.Center[0], e.Center[1], e.Radius))

		case *entity.Arc:
			segments = append(segments, arcSegments(e)...)

		case *entity.Line:
			segments = append(segments, segment{
				start: model.Point2D{X: e.Start[0], Y: e.Start[1]},
				end:   model.Point2D{X: e.End[0], Y: e.End[1]},
			})

		case *entity.Text:
			if len(e.Coord1) >= 2 && e.Value != "" {
				labels = append(labels, label{at: model.Point2D{X: e.Coord1[0], Y: e.Coord1[1]}, value: e.Value})
			}
		}
	}

	shapes = append(shapes, chainSegments(segments, chainTolerance)...)
	if len(shapes) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	for i, o := range shapes {
		min, max := o.bounds()
		width := max.X - min.X
		height := max.Y - min.Y

		if width < 0.01 || height < 0.01 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped degenerate shape (%.2f x %.2f)", width, height))
			continue
		}

		name := fmt.Sprintf("DXF Piece %d", i+1)
		for _, l := range labels {
			if o.contains(l.at) {
				name = l.value
				break
			}
		}
		result.Pieces = append(result.Pieces, model.NewPiece(name, width, height))
	}

	return result
}

// polylineOutline converts an LWPOLYLINE to an outline. Bulged segments are
// sampled so that their arcs count towards the bounding box.
func polylineOutline(lw *entity.LwPolyline) outline {
	var o outline
	n := len(lw.Vertices)
	for i, v := range lw.Vertices {
		cur := model.Point2D{X: v[0], Y: v[1]}
		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}
		if math.Abs(bulge) < 1e-9 || n < 2 {
			o = append(o, cur)
			continue
		}
		nv := lw.Vertices[(i+1)%n]
		arc := bulgePoints(cur, model.Point2D{X: nv[0], Y: nv[1]}, bulge, 16)
		o = append(o, arc[:len(arc)-1]...)
	}
	return o
}

// bulgePoints samples the arc between p1 and p2 described by a DXF bulge,
// the tangent of a quarter of the included angle.
func bulgePoints(p1, p2 model.Point2D, bulge float64, steps int) []model.Point2D {
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	chord := math.Hypot(dx, dy)
	if chord < 1e-9 {
		return []model.Point2D{p1, p2}
	}

	theta := 4 * math.Atan(bulge) // Signed included angle, positive is counter-clockwise
	radius := chord / (2 * math.Sin(math.Abs(theta)/2))

	// Center lies on the chord bisector, on the left for positive bulges
	mx, my := (p1.X+p2.X)/2, (p1.Y+p2.Y)/2
	d := math.Sqrt(math.Max(radius*radius-chord*chord/4, 0))
	if math.Abs(theta) > math.Pi {
		d = -d
	}
	nx, ny := -dy/chord, dx/chord
	if bulge < 0 {
		nx, ny = -nx, -ny
	}
	cx, cy := mx+nx*d, my+ny*d

	start := math.Atan2(p1.Y-cy, p1.X-cx)
	pts := make([]model.Point2D, steps+1)
	for i := 0; i <= steps; i++ {
		a := start + theta*float64(i)/float64(steps)
		pts[i] = model.Point2D{X: cx + radius*math.Cos(a), Y: cy + radius*math.Sin(a)}
	}
	return pts
}

// circleOutline approximates a circle by its four extreme points, which is
// all a bounding box needs.
func circleOutline(cx, cy, r float64) outline {
	return outline{
		{X: cx + r, Y: cy},
		{X: cx, Y: cy + r},
		{X: cx - r, Y: cy},
		{X: cx, Y: cy - r},
	}
}

// arcSegments samples an ARC into connected segments.
func arcSegments(a *entity.Arc) []segment {
	cx, cy := a.Circle.Center[0], a.Circle.Center[1]
	r := a.Circle.Radius
	start := a.Angle[0] * math.Pi / 180
	end := a.Angle[1] * math.Pi / 180
	if end <= start {
		end += 2 * math.Pi
	}

	const steps = 16
	segs := make([]segment, 0, steps)
	prev := model.Point2D{X: cx + r*math.Cos(start), Y: cy + r*math.Sin(start)}
	for i := 1; i <= steps; i++ {
		a := start + (end-start)*float64(i)/steps
		next := model.Point2D{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
		segs = append(segs, segment{start: prev, end: next})
		prev = next
	}
	return segs
}

// chainSegments joins segments end to end into closed outlines. Chains that
// do not close are dropped. The result is ordered by area, largest first.
func chainSegments(segs []segment, tolerance float64) []outline {
	used := make([]bool, len(segs))
	var outlines []outline

	for first := range segs {
		if used[first] {
			continue
		}
		used[first] = true
		chain := outline{segs[first].start, segs[first].end}

		for extended := true; extended; {
			extended = false
			tail := chain[len(chain)-1]
			for i, s := range segs {
				if used[i] {
					continue
				}
				switch {
				case pointsClose(tail, s.start, tolerance):
					chain = append(chain, s.end)
				case pointsClose(tail, s.end, tolerance):
					chain = append(chain, s.start)
				default:
					continue
				}
				used[i] = true
				extended = true
				break
			}
		}

		if len(chain) < 4 || !pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			continue
		}
		outlines = append(outlines, chain[:len(chain)-1])
	}

	sort.SliceStable(outlines, func(i, j int) bool {
		return outlineArea(outlines[i]) > outlineArea(outlines[j])
	})
	return outlines
}

func pointsClose(a, b model.Point2D, tolerance float64) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) <= tolerance
}

// outlineArea is the absolute shoelace area.
func outlineArea(o outline) float64 {
	var area float64
	for i := range o {
		j := (i + 1) % len(o)
		area += o[i].X*o[j].Y - o[j].X*o[i].Y
	}
	return math.Abs(area) / 2
}
