package style

import (
	"encoding/json"
	"testing"

	"github.com/leapstack-labs/figlens/pkg/figma"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestDerive_BoundingBoxOnly(t *testing.T) {
	root := &figma.Node{
		ID: "1", Type: figma.NodeTypeFrame,
		BoundingBox: &figma.Rect{Width: 100, Height: 100},
		Children: []*figma.Node{
			{ID: "2", Type: figma.NodeTypeRectangle, BoundingBox: &figma.Rect{X: 10, Y: 10, Width: 20, Height: 20}},
		},
	}

	got := Derive(figma.Find(root, "2"))

	assert.Equal(t, Declarations{
		{Property: "width", Value: String("20px")},
		{Property: "height", Value: String("20px")},
	}, got)
}

func TestDerive_Empty(t *testing.T) {
	assert.Empty(t, Derive(&figma.Node{ID: "x", Type: figma.NodeTypeGroup}))
	assert.Empty(t, Derive(nil))
}

func TestDerive_Padding(t *testing.T) {
	n := &figma.Node{Padding: &figma.Padding{Top: 1.005, Right: 2, Bottom: 3, Left: 4}}
	v, ok := Derive(n).Get("padding")
	require.True(t, ok)
	assert.Equal(t, "1px 2px 3px 4px", v.String())

	legacy := &figma.Node{LegacyPadding: &figma.LegacyPadding{Vertical: 8, Horizontal: 16}}
	v, ok = Derive(legacy).Get("padding")
	require.True(t, ok)
	assert.Equal(t, "8px 16px 8px 16px", v.String())
}

func TestDerive_TypeStyle(t *testing.T) {
	n := &figma.Node{
		Type: figma.NodeTypeText,
		Style: &figma.TypeStyle{
			FontFamily:          "Inter",
			FontSize:            14,
			FontWeight:          600,
			LineHeightPx:        20.004,
			TextAlignHorizontal: "JUSTIFIED",
			LetterSpacing:       0.5,
			Italic:              true,
			TextCase:            figma.TextCaseUpper,
		},
	}

	got := Derive(n)

	assert.Equal(t, []string{
		"font-family", "font-size", "font-weight", "line-height", "text-align",
		"letter-spacing", "font-style", "text-transform",
	}, propertyOrder(got))

	m := got.Map()
	assert.Equal(t, "Inter", m["font-family"])
	assert.Equal(t, "14px", m["font-size"])
	assert.Equal(t, "20px", m["line-height"])
	assert.Equal(t, "justify", m["text-align"])
	assert.Equal(t, "0.5px", m["letter-spacing"])
	assert.Equal(t, "italic", m["font-style"])
	assert.Equal(t, "uppercase", m["text-transform"])

	weight, ok := got.Get("font-weight")
	require.True(t, ok)
	assert.True(t, weight.IsNumber())
	assert.Equal(t, 600.0, weight.Float())
}

func TestDerive_TextCase(t *testing.T) {
	tests := []struct {
		in   figma.TextCase
		want string
	}{
		{figma.TextCaseLower, "lowercase"},
		{figma.TextCaseUpper, "uppercase"},
		{figma.TextCaseTitle, "capitalize"},
		{figma.TextCaseOriginal, ""},
		{"WEIRD", ""},
		{"", ""},
	}
	for _, tt := range tests {
		n := &figma.Node{Style: &figma.TypeStyle{TextAlignHorizontal: "LEFT", TextCase: tt.in}}
		v, ok := Derive(n).Get("text-transform")
		if tt.want == "" {
			assert.False(t, ok, "textCase %q", tt.in)
			continue
		}
		require.True(t, ok, "textCase %q", tt.in)
		assert.Equal(t, tt.want, v.String())
	}
}

func TestDerive_TextAlignLowercased(t *testing.T) {
	n := &figma.Node{Style: &figma.TypeStyle{TextAlignHorizontal: "CENTER"}}
	v, _ := Derive(n).Get("text-align")
	assert.Equal(t, "center", v.String())
}

func TestDerive_Fills(t *testing.T) {
	hidden := false
	red := &figma.Color{R: 1, A: 1}
	blue := &figma.Color{B: 1, A: 0.5}

	tests := []struct {
		name  string
		node  *figma.Node
		want  string
		found bool
	}{
		{
			name:  "text solid",
			node:  &figma.Node{Type: figma.NodeTypeText, Fills: []figma.Paint{{Type: figma.PaintSolid, Color: red}}},
			want:  "#ff0000",
			found: true,
		},
		{
			name: "skips hidden fill",
			node: &figma.Node{Type: figma.NodeTypeText, Fills: []figma.Paint{
				{Type: figma.PaintSolid, Visible: &hidden, Color: red},
				{Type: figma.PaintSolid, Color: blue},
			}},
			want:  "#0000ff7f",
			found: true,
		},
		{
			name: "first visible not solid",
			node: &figma.Node{Type: figma.NodeTypeText, Fills: []figma.Paint{
				{Type: figma.PaintGradientLinear},
				{Type: figma.PaintSolid, Color: red},
			}},
		},
		{
			name: "no visible fill",
			node: &figma.Node{Type: figma.NodeTypeText, Fills: []figma.Paint{{Type: figma.PaintSolid, Visible: &hidden, Color: red}}},
		},
		{
			name: "empty fills",
			node: &figma.Node{Type: figma.NodeTypeText, Fills: []figma.Paint{}},
		},
		{
			name: "not text",
			node: &figma.Node{Type: figma.NodeTypeRectangle, Fills: []figma.Paint{{Type: figma.PaintSolid, Color: red}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := Derive(tt.node).Get("color")
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.want, v.String())
			}
		})
	}
}

func TestDerive_Border(t *testing.T) {
	n := &figma.Node{
		Strokes:      []figma.Paint{{Type: figma.PaintSolid, Color: &figma.Color{A: 0}}},
		StrokeWeight: 1.5,
	}
	v, ok := Derive(n).Get("border")
	require.True(t, ok)
	assert.Equal(t, "1.5px solid transparent", v.String())

	_, ok = Derive(&figma.Node{Strokes: []figma.Paint{}}).Get("border")
	assert.False(t, ok)

	_, ok = Derive(&figma.Node{Strokes: []figma.Paint{{Type: figma.PaintImage}}}).Get("border")
	assert.False(t, ok)
}

func TestDerive_Radius(t *testing.T) {
	v, ok := Derive(&figma.Node{CornerRadius: ptr(8.0)}).Get("border-radius")
	require.True(t, ok)
	assert.Equal(t, "8px", v.String())

	_, ok = Derive(&figma.Node{CornerRadius: ptr(0.0)}).Get("border-radius")
	assert.False(t, ok)

	v, ok = Derive(&figma.Node{CornerRadii: []float64{1, 2, 3, 4}}).Get("border-radius")
	require.True(t, ok)
	assert.Equal(t, "1px 2px 3px 4px", v.String())
}

func TestDerive_Effects(t *testing.T) {
	n := &figma.Node{Effects: []figma.Effect{
		{Type: figma.EffectDropShadow, Visible: false, Radius: 99},
		{Type: figma.EffectInnerShadow, Visible: true, Radius: 4, Offset: &figma.Vector{X: 1, Y: 2}, Color: &figma.Color{R: 0.1, G: 0.2, B: 0.3, A: 0.4}},
		{Type: figma.EffectDropShadow, Visible: true, Radius: 10},
		{Type: "NOISE", Visible: true, Radius: 3},
		{Type: figma.EffectLayerBlur, Visible: true, Radius: 2.5},
		{Type: figma.EffectLayerBlur, Visible: true, Radius: 7},
		{Type: figma.EffectBackgroundBlur, Visible: true, Radius: 12},
	}}

	got := Derive(n)

	assert.Equal(t, []string{"box-shadow", "filter", "backdrop-filter"}, propertyOrder(got))
	m := got.Map()
	assert.Equal(t, "1px 2px 4px rgba(0.1, 0.2, 0.3, 0.4)", m["box-shadow"])
	assert.Equal(t, "blur(2.5px)", m["filter"])
	assert.Equal(t, "blur(12px)", m["backdrop-filter"])
}

func TestDerive_RuleOrder(t *testing.T) {
	n := &figma.Node{
		Type:         figma.NodeTypeText,
		BoundingBox:  &figma.Rect{Width: 10, Height: 5},
		Padding:      &figma.Padding{},
		Style:        &figma.TypeStyle{TextAlignHorizontal: "LEFT"},
		Fills:        []figma.Paint{{Type: figma.PaintSolid, Color: &figma.Color{A: 1}}},
		Strokes:      []figma.Paint{{Type: figma.PaintSolid, Color: &figma.Color{A: 1}}},
		StrokeWeight: 1,
		CornerRadius: ptr(2.0),
		Effects:      []figma.Effect{{Type: figma.EffectLayerBlur, Visible: true, Radius: 1}},
	}

	assert.Equal(t, []string{
		"width", "height", "padding",
		"font-family", "font-size", "font-weight", "line-height", "text-align",
		"color", "border", "border-radius", "filter",
	}, propertyOrder(Derive(n)))
}

func TestDerive_Idempotent(t *testing.T) {
	n := &figma.Node{
		Type:        figma.NodeTypeText,
		BoundingBox: &figma.Rect{Width: 33.333, Height: 12},
		Style:       &figma.TypeStyle{FontFamily: "Inter", TextAlignHorizontal: "RIGHT"},
		Fills:       []figma.Paint{{Type: figma.PaintSolid, Color: &figma.Color{G: 1, A: 1}}},
	}
	assert.Equal(t, Derive(n), Derive(n))
}

func TestDeclarations_CSSAndJSON(t *testing.T) {
	decls := Declarations{
		{Property: "width", Value: String("20px")},
		{Property: "font-weight", Value: Number(700)},
	}

	assert.Equal(t, "width:20px;font-weight:700", decls.CSS())

	data, err := json.Marshal(decls)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"propertyName":"width","value":"20px"},{"propertyName":"font-weight","value":700}]`, string(data))

	var back Declarations
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, decls, back)

	var bad Value
	assert.Error(t, json.Unmarshal([]byte(`true`), &bad))
}

func TestDeclarations_Properties(t *testing.T) {
	decls := Declarations{{Property: "width"}, {Property: "color"}}
	assert.Equal(t, []string{"color", "width"}, decls.Properties())
}

func propertyOrder(d Declarations) []string {
	out := make([]string, 0, len(d))
	for _, decl := range d {
		out = append(out, decl.Property)
	}
	return out
}
