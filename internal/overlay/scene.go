// Package overlay builds and renders the inspection overlay: node outlines,
// the dimension label of the selected node, and the distance guides between
// the selected and hovered nodes.
//
// Geometry is root-relative design space. Every decoration size is
// multiplied by the viewport scale so it stays constant on screen.
package overlay

import (
	"math"
	"strconv"

	"github.com/leapstack-labs/figlens/pkg/figma"
	"github.com/leapstack-labs/figlens/pkg/guide"
	"github.com/leapstack-labs/figlens/pkg/viewport"
)

// Colors.
const (
	HoverStroke         = "#1c6ced"
	SelectionStroke     = "#961fe0"
	GuideStroke         = "#1c6ced"
	LabelBackground     = "#f0134e"
	DimensionBackground = "#1864ab"
	LabelText           = "#fff"
)

// Sizes in screen pixels, before counter-scaling.
const (
	strokeWidth        = 1.0
	bisectorDash       = 4.0
	guideFontSize      = 16.0
	dimensionFontSize  = 14.0
	labelPadding       = 6.0
	labelMarginTop     = 18.0
	labelMarginRight   = 8.0
	labelBorder        = 1.0
	dimensionMarginTop = 16.0
)

// Background is the rendered bitmap drawn beneath the overlay.
type Background struct {
	Href   string
	Width  float64
	Height float64
}

// Scene is everything needed to draw one overlay frame.
type Scene struct {
	Root     *figma.Node
	Viewport *viewport.Viewport
	Hovered  *figma.Node
	Selected *figma.Node

	// Nodes, when set, are drawn as transparent hit targets carrying the
	// node id so pointer events can be mapped back to nodes.
	Nodes      []*figma.Node
	Background *Background
	ShowInsets bool
	Measurer   Measurer
}

// Box is an axis-aligned label box.
type Box struct {
	X, Y, Width, Height float64
}

func (b Box) intersects(o Box) bool {
	return b.X < o.X+o.Width && o.X < b.X+b.Width && b.Y < o.Y+o.Height && o.Y < b.Y+b.Height
}

// Shape is one element of an overlay, in paint order.
type Shape interface {
	isShape()
}

// Rect is an outline, hit target or label background.
type Rect struct {
	ID          string
	Class       string
	X, Y        float64
	Width       float64
	Height      float64
	Radius      float64
	Fill        string
	Stroke      string
	StrokeWidth float64
}

// Line is a guide or bisector segment.
type Line struct {
	Class          string
	X1, Y1, X2, Y2 float64
	Stroke         string
	StrokeWidth    float64
	Dash           float64
}

// Text is a label.
type Text struct {
	Class    string
	X, Y     float64
	Content  string
	FontSize float64
	Anchor   string
	Baseline string
	Fill     string
}

// Image is the background bitmap.
type Image struct {
	Href          string
	Width, Height float64
}

func (Rect) isShape()  {}
func (Line) isShape()  {}
func (Text) isShape()  {}
func (Image) isShape() {}

// Build lays out the scene. The result is empty when the root has no
// bounding box.
func Build(sc Scene) []Shape {
	if !figma.HasBoundingBox(sc.Root) || sc.Viewport == nil {
		return nil
	}
	b := builder{
		vp:       sc.Viewport,
		scale:    sc.Viewport.Scale(),
		measurer: sc.Measurer,
	}
	if b.measurer == nil {
		b.measurer = DefaultMeasurer()
	}

	if bg := sc.Background; bg != nil {
		b.add(Image{Href: bg.Href, Width: bg.Width, Height: bg.Height})
	}
	for _, n := range sc.Nodes {
		if !figma.HasBoundingBox(n) {
			continue
		}
		r := b.vp.RectToOverlay(*n.BoundingBox)
		b.add(Rect{
			ID: n.ID, Class: "figma-node",
			X: r.X, Y: r.Y, Width: r.Width, Height: r.Height,
			Radius: radius(n), Fill: "transparent",
		})
	}

	hovered := figma.HasBoundingBox(sc.Hovered)
	selected := figma.HasBoundingBox(sc.Selected)

	if hovered {
		b.outline(sc.Hovered, HoverStroke, "node-hover-stroke")
	}
	if selected {
		b.outline(sc.Selected, SelectionStroke, "node-select-stroke")
		b.dimensionLabel(*sc.Selected.BoundingBox)
	}
	if hovered && selected && sc.Hovered.ID != sc.Selected.ID {
		a, h := *sc.Selected.BoundingBox, *sc.Hovered.BoundingBox
		for _, g := range guide.Distances(a, h) {
			b.guide(g)
		}
		if sc.ShowInsets && a.Intersects(h) {
			outer, inner := a, h
			if area(inner) > area(outer) {
				outer, inner = inner, outer
			}
			for _, g := range guide.Insets(outer, inner) {
				b.guide(g)
			}
		}
	}
	return b.shapes
}

type builder struct {
	vp       *viewport.Viewport
	scale    float64
	measurer Measurer
	shapes   []Shape
	labels   []Box
}

func (b *builder) add(s Shape) {
	b.shapes = append(b.shapes, s)
}

func (b *builder) scaled(v float64) float64 {
	return v * b.scale
}

func (b *builder) outline(n *figma.Node, stroke, class string) {
	r := b.vp.RectToOverlay(*n.BoundingBox)
	b.add(Rect{
		Class: class,
		X:     r.X, Y: r.Y, Width: r.Width, Height: r.Height,
		Radius:      radius(n),
		Fill:        "none",
		Stroke:      stroke,
		StrokeWidth: b.scaled(strokeWidth),
	})
}

func (b *builder) dimensionLabel(box figma.Rect) {
	r := b.vp.RectToOverlay(box)
	size := b.scaled(dimensionFontSize)
	pad := b.scaled(labelPadding)
	border := b.scaled(labelBorder)
	marginTop := b.scaled(dimensionMarginTop)

	content := strconv.Itoa(roundHalfUp(r.Width)) + " × " + strconv.Itoa(roundHalfUp(r.Height))
	tw, th := b.measurer.Measure(content, size)

	lx := r.X + r.Width/2
	ly := r.Y + r.Height
	bg := Box{X: lx - tw/2 - pad/2, Y: ly + marginTop - th + 2*border, Width: tw + pad, Height: th}
	b.labels = append(b.labels, bg)

	b.add(Rect{Class: "dimension-label-bg", X: bg.X, Y: bg.Y, Width: bg.Width, Height: bg.Height, Fill: DimensionBackground})
	b.add(Text{
		Class: "dimension-label", X: lx, Y: ly + marginTop, Content: content,
		FontSize: size, Anchor: "middle", Fill: LabelText,
	})
}

func (b *builder) guide(g guide.Guide) {
	if g.IsDegenerate() {
		return
	}
	p0 := b.vp.ToOverlay(g.Points[0])
	p1 := b.vp.ToOverlay(g.Points[1])
	width := b.scaled(strokeWidth)

	b.add(Line{Class: "distance-guide", X1: p0.X, Y1: p0.Y, X2: p1.X, Y2: p1.Y, Stroke: GuideStroke, StrokeWidth: width})
	b.guideLabel(g, p0, p1)

	if g.Bisector != nil {
		q0 := b.vp.ToOverlay(g.Bisector[0])
		q1 := b.vp.ToOverlay(g.Bisector[1])
		b.add(Line{
			Class: "distance-bisector", X1: q0.X, Y1: q0.Y, X2: q1.X, Y2: q1.Y,
			Stroke: GuideStroke, StrokeWidth: width, Dash: b.scaled(bisectorDash),
		})
	}
}

func (b *builder) guideLabel(g guide.Guide, p0, p1 figma.Vector) {
	size := b.scaled(guideFontSize)
	pad := b.scaled(labelPadding)
	border := b.scaled(labelBorder)
	marginTop := b.scaled(labelMarginTop)
	marginRight := b.scaled(labelMarginRight)

	content := g.Label()
	tw, th := b.measurer.Measure(content, size)
	cx, cy := (p0.X+p1.X)/2, (p0.Y+p1.Y)/2

	var text Text
	var bg Box
	if g.IsHorizontal() {
		text = Text{X: cx, Y: cy + marginTop, Anchor: "middle", Baseline: "baseline"}
		bg = Box{X: cx - tw/2 - pad/2, Y: cy - th + 2*border + marginTop, Width: tw + pad, Height: th}
	} else {
		text = Text{X: p0.X + marginRight, Y: cy, Anchor: "start", Baseline: "middle"}
		bg = Box{X: p0.X - pad/2 + marginRight, Y: cy - th/2 - 2*border, Width: tw + pad, Height: th}
	}

	// Mirror the label across its guide when it would cover an earlier one,
	// and stack it below the labels it still covers when both sides are taken.
	if b.overlapsLabel(bg) {
		flipped := bg
		if g.IsHorizontal() {
			flipped.Y = 2*cy - bg.Y - bg.Height
		} else {
			flipped.X = 2*p0.X - bg.X - bg.Width
		}
		if !b.overlapsLabel(flipped) {
			text.X += flipped.X - bg.X
			text.Y += flipped.Y - bg.Y
			bg = flipped
		} else {
			stacked := b.stackBelow(bg)
			text.Y += stacked.Y - bg.Y
			bg = stacked
		}
	}
	b.labels = append(b.labels, bg)

	text.Class = "distance-label-text"
	text.Content = content
	text.FontSize = size
	text.Fill = LabelText

	b.add(Rect{Class: "distance-label-bg", X: bg.X, Y: bg.Y, Width: bg.Width, Height: bg.Height, Fill: LabelBackground})
	b.add(text)
}

// stackBelow moves box down past every earlier label it intersects. Each
// move lands on a label's bottom edge, so it ends after at most one move per
// label.
func (b *builder) stackBelow(box Box) Box {
	for range len(b.labels) {
		moved := false
		for _, l := range b.labels {
			if l.intersects(box) {
				box.Y = l.Y + l.Height
				moved = true
			}
		}
		if !moved {
			break
		}
	}
	return box
}

func (b *builder) overlapsLabel(box Box) bool {
	for _, l := range b.labels {
		if l.intersects(box) {
			return true
		}
	}
	return false
}

func radius(n *figma.Node) float64 {
	if figma.HasRadius(n) {
		return *n.CornerRadius
	}
	return 0
}

func area(r figma.Rect) float64 {
	return r.Width * r.Height
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
