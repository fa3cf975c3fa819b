package overlay

import (
	"testing"

	"github.com/leapstack-labs/figlens/pkg/figma"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderString(t *testing.T) {
	sc := newScene(t, node("a", 110, 110, 20, 10), node("b", 150, 112, 10, 6))
	sc.Nodes = []*figma.Node{node("1:2", 110, 110, 20, 10)}

	out, err := RenderString(sc)

	require.NoError(t, err)
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "</svg>")
	assert.Contains(t, out, `transform="translate(0,0) scale(0.5)"`)
	assert.Contains(t, out, `class="node-select-stroke"`)
	assert.Contains(t, out, `stroke="#961fe0"`)
	assert.Contains(t, out, `stroke-width="2"`)
	assert.Contains(t, out, `stroke-dasharray="8"`)
	assert.Contains(t, out, `id="1:2"`)
	assert.Contains(t, out, "20 × 10")
}

func TestRenderString_Background(t *testing.T) {
	sc := newScene(t, nil, nil)
	sc.Background = &Background{Href: "data:image/png;base64,AA==", Width: 199.5, Height: 100}

	out, err := RenderString(sc)

	require.NoError(t, err)
	assert.Contains(t, out, "<image")
	assert.Contains(t, out, `class="background"`)
	assert.Contains(t, out, "data:image/png;base64,AA==")
}

func TestRender_NoRoot(t *testing.T) {
	_, err := RenderString(Scene{})
	assert.Error(t, err)
}

func TestAttr_Escapes(t *testing.T) {
	assert.Equal(t, `id="a&#34;b"`, attr("id", `a"b`))
}
