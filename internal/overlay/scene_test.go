package overlay

import (
	"testing"

	"github.com/leapstack-labs/figlens/internal/testutil"
	"github.com/leapstack-labs/figlens/pkg/figma"
	"github.com/leapstack-labs/figlens/pkg/viewport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedMeasurer makes label geometry predictable.
type fixedMeasurer struct{}

func (fixedMeasurer) Measure(string, float64) (float64, float64) { return 10, 8 }

func node(id string, x, y, w, h float64) *figma.Node {
	return &figma.Node{ID: id, Type: figma.NodeTypeRectangle, BoundingBox: &figma.Rect{X: x, Y: y, Width: w, Height: h}}
}

// newScene has a root at (100, 100) rendered at twice the container width,
// so every decoration is drawn at scale 2.
func newScene(t *testing.T, selected, hovered *figma.Node) Scene {
	t.Helper()
	root := node("root", 100, 100, 200, 100)
	vp := viewport.New(*root.BoundingBox, 400)
	require.NoError(t, vp.Fit(200))
	return Scene{Root: root, Viewport: vp, Selected: selected, Hovered: hovered, Measurer: fixedMeasurer{}}
}

func shapesOf[T Shape](shapes []Shape) []T {
	var out []T
	for _, s := range shapes {
		if v, ok := s.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func TestBuild_SelectedAndHovered(t *testing.T) {
	sc := newScene(t, node("a", 110, 110, 20, 10), node("b", 150, 112, 10, 6))

	shapes := Build(sc)

	require.Len(t, shapes, 8)

	assert.Equal(t, Rect{
		Class: "node-hover-stroke", X: 50, Y: 12, Width: 10, Height: 6,
		Fill: "none", Stroke: HoverStroke, StrokeWidth: 2,
	}, shapes[0])
	assert.Equal(t, Rect{
		Class: "node-select-stroke", X: 10, Y: 10, Width: 20, Height: 10,
		Fill: "none", Stroke: SelectionStroke, StrokeWidth: 2,
	}, shapes[1])

	assert.Equal(t, Rect{Class: "dimension-label-bg", X: 9, Y: 48, Width: 22, Height: 8, Fill: DimensionBackground}, shapes[2])
	assert.Equal(t, Text{
		Class: "dimension-label", X: 20, Y: 52, Content: "20 × 10",
		FontSize: 28, Anchor: "middle", Fill: LabelText,
	}, shapes[3])

	assert.Equal(t, Line{Class: "distance-guide", X1: 30, Y1: 15, X2: 50, Y2: 15, Stroke: GuideStroke, StrokeWidth: 2}, shapes[4])

	// the label below the guide would cover the dimension label, so it is
	// mirrored above the line
	assert.Equal(t, Rect{Class: "distance-label-bg", X: 29, Y: -25, Width: 22, Height: 8, Fill: LabelBackground}, shapes[5])
	assert.Equal(t, Text{
		Class: "distance-label-text", X: 40, Y: -21, Content: "20",
		FontSize: 32, Anchor: "middle", Baseline: "baseline", Fill: LabelText,
	}, shapes[6])

	assert.Equal(t, Line{
		Class: "distance-bisector", X1: 40, Y1: 12, X2: 40, Y2: 18,
		Stroke: GuideStroke, StrokeWidth: 2, Dash: 8,
	}, shapes[7])
}

func TestBuild_LabelKeepsPlaceWithoutOverlap(t *testing.T) {
	sc := newScene(t, node("a", 110, 110, 20, 10), node("b", 190, 112, 5, 6))

	rects := shapesOf[Rect](Build(sc))

	var label Rect
	for _, r := range rects {
		if r.Class == "distance-label-bg" {
			label = r
		}
	}
	assert.Equal(t, 49.0, label.X)
	assert.Equal(t, 47.0, label.Y)
}

func TestBuild_VerticalGuideLabel(t *testing.T) {
	sc := newScene(t, node("a", 110, 110, 20, 10), node("b", 112, 150, 10, 10))

	texts := shapesOf[Text](Build(sc))

	require.Len(t, texts, 2)
	label := texts[1]
	assert.Equal(t, "30", label.Content)
	assert.Equal(t, "start", label.Anchor)
	assert.Equal(t, "middle", label.Baseline)
}

func TestBuild_HoverOnly(t *testing.T) {
	sc := newScene(t, nil, node("b", 150, 112, 10, 6))

	shapes := Build(sc)

	require.Len(t, shapes, 1)
	assert.Equal(t, "node-hover-stroke", shapes[0].(Rect).Class)
}

func TestBuild_SameNodeHasNoGuides(t *testing.T) {
	n := node("a", 110, 110, 20, 10)
	sc := newScene(t, n, n)

	assert.Empty(t, shapesOf[Line](Build(sc)))
}

func TestBuild_Insets(t *testing.T) {
	outer := node("outer", 110, 110, 80, 60)
	inner := node("inner", 120, 120, 10, 10)

	sc := newScene(t, outer, inner)
	assert.Empty(t, shapesOf[Line](Build(sc)), "nested boxes have no gap")

	sc.ShowInsets = true
	lines := shapesOf[Line](Build(sc))
	assert.Len(t, lines, 4)

	// the larger box is treated as the outer one either way round
	sc = newScene(t, inner, outer)
	sc.ShowInsets = true
	assert.Len(t, shapesOf[Line](Build(sc)), 4)
}

func TestBuild_HitTargetsAndBackground(t *testing.T) {
	radius := 4.0
	a := node("a", 110, 110, 20, 10)
	a.CornerRadius = &radius
	sc := newScene(t, nil, nil)
	sc.Nodes = []*figma.Node{a, {ID: "nobox"}}
	sc.Background = &Background{Href: "data:image/png;base64,AA==", Width: 400, Height: 200}

	shapes := Build(sc)

	require.Len(t, shapes, 2)
	assert.Equal(t, Image{Href: "data:image/png;base64,AA==", Width: 400, Height: 200}, shapes[0])
	assert.Equal(t, Rect{ID: "a", Class: "figma-node", X: 10, Y: 10, Width: 20, Height: 10, Radius: 4, Fill: "transparent"}, shapes[1])
}

func TestBuild_NoRootBounds(t *testing.T) {
	vp := viewport.New(figma.Rect{}, 1)
	assert.Nil(t, Build(Scene{Root: &figma.Node{ID: "r"}, Viewport: vp}))
	assert.Nil(t, Build(Scene{}))
}

func TestBuild_CounterScalesWithZoom(t *testing.T) {
	sc := newScene(t, node("a", 110, 110, 20, 10), nil)
	require.NoError(t, sc.Viewport.Zoom(4))

	rects := shapesOf[Rect](Build(sc))

	require.NotEmpty(t, rects)
	assert.Equal(t, 0.25, rects[0].StrokeWidth)
	assert.Equal(t, 3.5, shapesOf[Text](Build(sc))[0].FontSize)
}

func TestBuild_LabelsDoNotOverlap(t *testing.T) {
	card := testutil.Card(t)

	tests := []struct {
		name     string
		selected string
		hovered  string
		width    float64
		insets   bool
	}{
		{"title to button", "1:2", "1:3", 200, false},
		{"button to title", "1:3", "1:2", 200, false},
		{"title to button zoomed out", "1:2", "1:3", 100, false},
		{"title to button zoomed in", "1:2", "1:3", 800, false},
		{"card to title insets", "1:1", "1:2", 200, true},
		{"title to card insets", "1:2", "1:1", 400, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vp := viewport.New(*card.BoundingBox, 400)
			require.NoError(t, vp.Fit(tt.width))
			sc := Scene{
				Root:       card,
				Viewport:   vp,
				Selected:   figma.Find(card, tt.selected),
				Hovered:    figma.Find(card, tt.hovered),
				ShowInsets: tt.insets,
				Measurer:   DefaultMeasurer(),
			}

			var labels []Box
			for _, r := range shapesOf[Rect](Build(sc)) {
				if r.Class == "dimension-label-bg" || r.Class == "distance-label-bg" {
					labels = append(labels, Box{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height})
				}
			}

			require.GreaterOrEqual(t, len(labels), 2)
			for i := range labels {
				for j := i + 1; j < len(labels); j++ {
					assert.False(t, labels[i].intersects(labels[j]), "label %d %+v overlaps label %d %+v", i, labels[i], j, labels[j])
				}
			}
		})
	}
}

func TestBuild_StacksLabelWhenBothSidesAreTaken(t *testing.T) {
	b := builder{labels: []Box{{X: 0, Y: 0, Width: 10, Height: 10}, {X: 0, Y: 10, Width: 10, Height: 5}}}

	got := b.stackBelow(Box{X: 2, Y: 4, Width: 4, Height: 4})

	assert.Equal(t, Box{X: 2, Y: 15, Width: 4, Height: 4}, got)
	assert.False(t, b.overlapsLabel(got))
}
