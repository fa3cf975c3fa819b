package overlay

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"math"
	"strconv"

	svg "github.com/ajstarks/svgo/float"
)

// Render writes the scene as a standalone SVG document sized to the root
// bounds. The overlay group carries the viewport's pan and zoom transform.
func Render(w io.Writer, sc Scene) error {
	if sc.Root == nil || sc.Root.BoundingBox == nil || sc.Viewport == nil {
		return fmt.Errorf("overlay: scene has no root bounds")
	}
	root := *sc.Root.BoundingBox

	canvas := svg.New(w)
	canvas.Start(root.Width, root.Height,
		fmt.Sprintf(`viewBox="0 0 %s %s"`, num(root.Width), num(root.Height)))
	canvas.Gtransform(sc.Viewport.GroupTransform())
	Draw(canvas, Build(sc))
	canvas.Gend()
	canvas.End()
	return nil
}

// RenderString is Render into a string.
func RenderString(sc Scene) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, sc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Draw paints shapes onto an existing canvas.
func Draw(canvas *svg.SVG, shapes []Shape) {
	for _, s := range shapes {
		switch s := s.(type) {
		case Image:
			canvas.Image(0, 0, int(math.Ceil(s.Width)), int(math.Ceil(s.Height)), s.Href, `class="background"`)
		case Rect:
			attrs := rectAttrs(s)
			if s.Radius > 0 {
				canvas.Roundrect(s.X, s.Y, s.Width, s.Height, s.Radius, s.Radius, attrs...)
			} else {
				canvas.Rect(s.X, s.Y, s.Width, s.Height, attrs...)
			}
		case Line:
			attrs := []string{
				attr("class", s.Class),
				attr("stroke", s.Stroke),
				attr("stroke-width", num(s.StrokeWidth)),
				`pointer-events="none"`,
			}
			if s.Dash > 0 {
				attrs = append(attrs, attr("stroke-dasharray", num(s.Dash)))
			}
			canvas.Line(s.X1, s.Y1, s.X2, s.Y2, attrs...)
		case Text:
			attrs := []string{
				attr("class", s.Class),
				attr("font-size", num(s.FontSize)+"px"),
				attr("fill", s.Fill),
				attr("text-anchor", s.Anchor),
				`pointer-events="none"`,
			}
			if s.Baseline != "" {
				attrs = append(attrs, attr("dominant-baseline", s.Baseline))
			}
			canvas.Text(s.X, s.Y, s.Content, attrs...)
		}
	}
}

func rectAttrs(r Rect) []string {
	attrs := []string{attr("class", r.Class), attr("fill", r.Fill)}
	if r.ID != "" {
		attrs = append(attrs, attr("id", r.ID))
	} else {
		attrs = append(attrs, `pointer-events="none"`)
	}
	if r.Stroke != "" {
		attrs = append(attrs, attr("stroke", r.Stroke), attr("stroke-width", num(r.StrokeWidth)))
	}
	return attrs
}

// attr formats a name="value" pair; svgo writes strings containing "=" as
// attributes rather than style.
func attr(name, value string) string {
	return name + `="` + html.EscapeString(value) + `"`
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
