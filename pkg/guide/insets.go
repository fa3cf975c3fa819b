package guide

import "github.com/leapstack-labs/figlens/pkg/figma"

// Insets returns the edge-to-edge guides between two intersecting boxes,
// one per side, drawn through the centre of their intersection. It is used
// to measure a box nested in another. Sides where the edges coincide are
// dropped, and boxes that do not intersect yield nothing.
func Insets(outer, inner figma.Rect) []Guide {
	if !outer.Intersects(inner) {
		return nil
	}

	left, right, _ := overlap(outer.Left(), outer.Right(), inner.Left(), inner.Right())
	top, bottom, _ := overlap(outer.Top(), outer.Bottom(), inner.Top(), inner.Bottom())
	cx, cy := (left+right)/2, (top+bottom)/2

	candidates := []Guide{
		{Points: Segment{{X: cx, Y: outer.Top()}, {X: cx, Y: inner.Top()}}},
		{Points: Segment{{X: inner.Right(), Y: cy}, {X: outer.Right(), Y: cy}}},
		{Points: Segment{{X: cx, Y: inner.Bottom()}, {X: cx, Y: outer.Bottom()}}},
		{Points: Segment{{X: outer.Left(), Y: cy}, {X: inner.Left(), Y: cy}}},
	}

	guides := make([]Guide, 0, len(candidates))
	for _, g := range candidates {
		if !g.IsDegenerate() {
			guides = append(guides, g)
		}
	}
	return guides
}
