package style

import (
	"strings"

	"github.com/leapstack-labs/figlens/pkg/figma"
)

// Derive returns the style declarations for a node in a fixed order:
// size, padding, typography, text color, border, radius, effects.
//
// A node with per-corner radii gets a "tl tr br bl" border-radius shorthand.
func Derive(n *figma.Node) Declarations {
	decls := Declarations{}
	if n == nil {
		return decls
	}
	add := func(property string, v Value) {
		decls = append(decls, Declaration{Property: property, Value: v})
	}

	if figma.HasBoundingBox(n) {
		add("width", String(Px(n.BoundingBox.Width)))
		add("height", String(Px(n.BoundingBox.Height)))
	}

	if figma.HasPadding(n) {
		p := n.Padding
		add("padding", String(padding(p.Top, p.Right, p.Bottom, p.Left)))
	} else if figma.HasLegacyPadding(n) {
		p := n.LegacyPadding
		add("padding", String(padding(p.Vertical, p.Horizontal, p.Vertical, p.Horizontal)))
	}

	if figma.HasTypeStyle(n) {
		s := n.Style
		add("font-family", String(s.FontFamily))
		add("font-size", String(Px(s.FontSize)))
		add("font-weight", Number(s.FontWeight))
		add("line-height", String(Px(s.LineHeightPx)))
		add("text-align", String(textAlign(s.TextAlignHorizontal)))
		if s.LetterSpacing != 0 {
			add("letter-spacing", String(Px(s.LetterSpacing)))
		}
		if s.Italic {
			add("font-style", String("italic"))
		}
		if transform, ok := textTransform(s.TextCase); ok {
			add("text-transform", String(transform))
		}
	}

	if figma.HasFills(n) && n.Type == figma.NodeTypeText {
		if fill, ok := firstVisible(n.Fills); ok && fill.Type == figma.PaintSolid {
			add("color", String(colorValue(fill.Color)))
		}
	}

	if figma.HasStroke(n) && len(n.Strokes) > 0 {
		if stroke := n.Strokes[0]; stroke.Type == figma.PaintSolid {
			add("border", String(Px(n.StrokeWeight)+" solid "+colorValue(stroke.Color)))
		}
	}

	if figma.HasRadius(n) && *n.CornerRadius > 0 {
		add("border-radius", String(Px(*n.CornerRadius)))
	} else if figma.HasRadii(n) {
		r := n.CornerRadii
		add("border-radius", String(padding(r[0], r[1], r[2], r[3])))
	}

	if figma.HasEffects(n) {
		var shadows, layerBlurs, bgBlurs []figma.Effect
		for _, e := range n.Effects {
			if !e.Visible {
				continue
			}
			switch {
			case figma.IsShadowEffect(e):
				shadows = append(shadows, e)
			case e.Type == figma.EffectLayerBlur:
				layerBlurs = append(layerBlurs, e)
			case e.Type == figma.EffectBackgroundBlur:
				bgBlurs = append(bgBlurs, e)
			}
		}
		if len(shadows) > 0 {
			add("box-shadow", String(shadow(shadows[0])))
		}
		if len(layerBlurs) > 0 {
			add("filter", String("blur("+Px(layerBlurs[0].Radius)+")"))
		}
		if len(bgBlurs) > 0 {
			add("backdrop-filter", String("blur("+Px(bgBlurs[0].Radius)+")"))
		}
	}

	return decls
}

func textAlign(align string) string {
	if align == "JUSTIFIED" {
		return "justify"
	}
	return strings.ToLower(align)
}

func textTransform(tc figma.TextCase) (string, bool) {
	switch tc {
	case figma.TextCaseLower:
		return "lowercase", true
	case figma.TextCaseUpper:
		return "uppercase", true
	case figma.TextCaseTitle:
		return "capitalize", true
	}
	return "", false
}

func firstVisible(paints []figma.Paint) (figma.Paint, bool) {
	for _, p := range paints {
		if p.IsVisible() {
			return p, true
		}
	}
	return figma.Paint{}, false
}
