package testutil

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCard(t *testing.T) {
	card := Card(t)

	assert.Equal(t, "Card", card.Name)
	require.Len(t, card.Children, 3)
	assert.True(t, card.Children[2].Hidden)
}

func TestPNG(t *testing.T) {
	img, err := imaging.Decode(bytes.NewReader(PNG(t, 3, 2, color.Black)))
	require.NoError(t, err)
	assert.Equal(t, 3, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())
}
