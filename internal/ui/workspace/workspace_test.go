package workspace

import (
	"bytes"
	"context"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/leapstack-labs/figlens/internal/viewer"
	"github.com/leapstack-labs/figlens/pkg/figma"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticSource(t *testing.T) *viewer.StaticSource {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, imaging.New(20, 10, color.White), imaging.PNG))
	return &viewer.StaticSource{
		Name: "card",
		Document: &figma.Node{
			ID: "1:1", Type: figma.NodeTypeFrame,
			BoundingBox: &figma.Rect{Width: 20, Height: 10},
		},
		Bitmap: viewer.Bitmap{Data: buf.Bytes(), Format: "png"},
	}
}

func TestWorkspace_Reload(t *testing.T) {
	src := staticSource(t)
	ws := New(viewer.Config{Source: src})
	assert.Nil(t, ws.Current())

	require.NoError(t, ws.Reload(context.Background()))
	first := ws.Current()
	require.NotNil(t, first)
	assert.Equal(t, "1:1", first.Root().ID)

	require.NoError(t, ws.Reload(context.Background()))
	assert.NotSame(t, first, ws.Current())
	assert.NoError(t, ws.Err())
}

func TestWorkspace_FailedReloadKeepsCurrent(t *testing.T) {
	src := staticSource(t)
	ws := New(viewer.Config{Source: src})
	require.NoError(t, ws.Reload(context.Background()))
	good := ws.Current()

	src.Document = nil
	err := ws.Reload(context.Background())
	require.Error(t, err)
	assert.Same(t, good, ws.Current())
	assert.Equal(t, err, ws.Err())
}

func TestWorkspace_InvalidLocator(t *testing.T) {
	ws := New(viewer.Config{Source: &viewer.RemoteSource{URL: "nope"}})

	require.NoError(t, ws.Reload(context.Background()))
	assert.Nil(t, ws.Current())
	assert.Nil(t, ws.Paths())
}

func TestWorkspace_Paths(t *testing.T) {
	ws := New(viewer.Config{Source: &viewer.FileSource{DocumentPath: "a.json", ImagePath: "a.png"}})
	assert.Equal(t, []string{"a.json", "a.png"}, ws.Paths())
}
