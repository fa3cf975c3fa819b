package testutil

import (
	"bytes"
	"encoding/json"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/leapstack-labs/figlens/pkg/figma"
	"github.com/stretchr/testify/require"
)

// CardJSON is a small design document in the nodes-response wire format:
// a 200x100 frame at (100, 100) holding a title, a button and a hidden badge.
const CardJSON = `{
  "nodes": {
    "1:1": {
      "document": {
        "id": "1:1", "name": "Card", "type": "FRAME",
        "absoluteBoundingBox": {"x": 100, "y": 100, "width": 200, "height": 100},
        "fills": [{"type": "SOLID", "color": {"r": 1, "g": 1, "b": 1, "a": 1}}],
        "cornerRadius": 8,
        "paddingTop": 16, "paddingRight": 16, "paddingBottom": 16, "paddingLeft": 16,
        "children": [
          {
            "id": "1:2", "name": "Title", "type": "TEXT", "characters": "Hello",
            "absoluteBoundingBox": {"x": 116, "y": 116, "width": 80, "height": 24},
            "fills": [{"type": "SOLID", "color": {"r": 0, "g": 0, "b": 0, "a": 1}}],
            "style": {"fontFamily": "Inter", "fontSize": 20, "fontWeight": 600, "lineHeightPx": 24, "textAlignHorizontal": "LEFT", "letterSpacing": 0}
          },
          {
            "id": "1:3", "name": "Button", "type": "RECTANGLE",
            "absoluteBoundingBox": {"x": 220, "y": 160, "width": 64, "height": 24},
            "strokes": [{"type": "SOLID", "color": {"r": 0, "g": 0, "b": 1, "a": 1}}],
            "strokeWeight": 1,
            "effects": [{"type": "DROP_SHADOW", "visible": true, "radius": 4, "color": {"r": 0, "g": 0, "b": 0, "a": 0.25}, "offset": {"x": 0, "y": 2}}]
          },
          {
            "id": "1:4", "name": "Badge", "type": "ELLIPSE", "visible": false,
            "absoluteBoundingBox": {"x": 280, "y": 104, "width": 12, "height": 12}
          }
        ]
      }
    }
  }
}`

// Card parses CardJSON.
func Card(t testing.TB) *figma.Node {
	t.Helper()
	var resp struct {
		Nodes map[string]struct {
			Document *figma.Node `json:"document"`
		} `json:"nodes"`
	}
	require.NoError(t, json.Unmarshal([]byte(CardJSON), &resp))
	return resp.Nodes["1:1"].Document
}

// PNG returns an encoded w x h image filled with c.
func PNG(t testing.TB, w, h int, c color.Color) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, imaging.New(w, h, c), imaging.PNG))
	return buf.Bytes()
}

// CardPNG is a bitmap for Card rendered at 2x.
func CardPNG(t testing.TB) []byte {
	t.Helper()
	return PNG(t, 400, 200, color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff})
}
