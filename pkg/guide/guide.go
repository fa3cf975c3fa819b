// Package guide computes distance guides between two bounding boxes.
//
// All geometry is in absolute design space. Converting to overlay space and
// counter-scaling decoration sizes is the renderer's job.
package guide

import (
	"math"
	"strconv"

	"github.com/leapstack-labs/figlens/pkg/figma"
)

// Segment is a pair of points.
type Segment [2]figma.Vector

// Guide is a measured connection between two boxes along one axis.
type Guide struct {
	Points Segment `json:"points"`
	// Bisector is a dashed segment perpendicular to the guide across the
	// span where the two boxes overlap. Nil when they do not overlap.
	Bisector *Segment `json:"bisector,omitempty"`
}

// HorizontalLength is the absolute x extent of the guide.
func (g Guide) HorizontalLength() float64 {
	return math.Abs(g.Points[0].X - g.Points[1].X)
}

// VerticalLength is the absolute y extent of the guide.
func (g Guide) VerticalLength() float64 {
	return math.Abs(g.Points[0].Y - g.Points[1].Y)
}

// Length is the measured distance: the larger of the two extents.
func (g Guide) Length() float64 {
	return math.Max(g.HorizontalLength(), g.VerticalLength())
}

// IsHorizontal reports whether the guide runs mostly along the x axis.
func (g Guide) IsHorizontal() bool {
	return g.HorizontalLength() > g.VerticalLength()
}

// IsDegenerate reports whether both points coincide.
func (g Guide) IsDegenerate() bool {
	return g.HorizontalLength() == 0 && g.VerticalLength() == 0
}

// Center returns the midpoint of the guide.
func (g Guide) Center() figma.Vector {
	return figma.Vector{
		X: (g.Points[0].X + g.Points[1].X) / 2,
		Y: (g.Points[0].Y + g.Points[1].Y) / 2,
	}
}

// Label is the distance rounded half up to a whole number.
func (g Guide) Label() string {
	return strconv.FormatFloat(math.Floor(g.Length()+0.5), 'f', -1, 64)
}

// Distances returns the guides between the selected and hovered boxes: at
// most one per axis. A horizontal guide exists when the boxes are separated
// on the x axis, a vertical one when they are separated on the y axis.
// Guides start at the selected box's near edge and end at the hovered box's
// near edge. Boxes that overlap or touch on both axes yield no guides.
func Distances(selected, hovered figma.Rect) []Guide {
	var guides []Guide
	if g, ok := horizontal(selected, hovered); ok {
		guides = append(guides, g)
	}
	if g, ok := vertical(selected, hovered); ok {
		guides = append(guides, g)
	}
	return guides
}

func horizontal(a, b figma.Rect) (Guide, bool) {
	var from, to float64
	switch {
	case a.Right() <= b.Left():
		from, to = a.Right(), b.Left()
	case b.Right() <= a.Left():
		from, to = a.Left(), b.Right()
	default:
		return Guide{}, false
	}

	g := Guide{}
	top, bottom, overlaps := overlap(a.Top(), a.Bottom(), b.Top(), b.Bottom())
	y := a.Center().Y
	if overlaps {
		y = (top + bottom) / 2
		mid := (from + to) / 2
		g.Bisector = &Segment{{X: mid, Y: top}, {X: mid, Y: bottom}}
	}
	g.Points = Segment{{X: from, Y: y}, {X: to, Y: y}}
	if g.IsDegenerate() {
		return Guide{}, false
	}
	return g, true
}

func vertical(a, b figma.Rect) (Guide, bool) {
	var from, to float64
	switch {
	case a.Bottom() <= b.Top():
		from, to = a.Bottom(), b.Top()
	case b.Bottom() <= a.Top():
		from, to = a.Top(), b.Bottom()
	default:
		return Guide{}, false
	}

	g := Guide{}
	left, right, overlaps := overlap(a.Left(), a.Right(), b.Left(), b.Right())
	x := a.Center().X
	if overlaps {
		x = (left + right) / 2
		mid := (from + to) / 2
		g.Bisector = &Segment{{X: left, Y: mid}, {X: right, Y: mid}}
	}
	g.Points = Segment{{X: x, Y: from}, {X: x, Y: to}}
	if g.IsDegenerate() {
		return Guide{}, false
	}
	return g, true
}

// overlap returns the shared span of [a0, a1] and [b0, b1] and whether it
// has positive length.
func overlap(a0, a1, b0, b1 float64) (lo, hi float64, ok bool) {
	lo, hi = math.Max(a0, b0), math.Min(a1, b1)
	return lo, hi, hi > lo
}
