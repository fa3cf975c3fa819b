package viewer

import (
	"encoding/base64"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/leapstack-labs/figlens/pkg/figma"
)

// ExportImage crops the bitmap to n and returns it as a PNG data URL.
func (v *Viewer) ExportImage(n *figma.Node) (string, error) {
	data, err := v.ExportPNG(n)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), nil
}

// ExportPNG crops the bitmap to n and returns the PNG bytes.
func (v *Viewer) ExportPNG(n *figma.Node) ([]byte, error) {
	if !figma.HasBoundingBox(n) {
		return nil, ErrNoBoundingBox
	}

	v.mu.RLock()
	root, bitmap := v.root, v.bitmap
	v.mu.RUnlock()
	if root == nil || bitmap == nil {
		return nil, ErrNotLoaded
	}

	rect, ok := cropRect(*root.BoundingBox, *n.BoundingBox, bitmap.Bounds())
	if !ok {
		return nil, ErrCropUnavailable
	}

	return encodePNG(imaging.Crop(bitmap, rect))
}

// cropRect maps a node box from design space onto bitmap pixels. The bitmap
// covers the root box, possibly at a different resolution.
func cropRect(root, box figma.Rect, bounds image.Rectangle) (image.Rectangle, bool) {
	if root.Width <= 0 || bounds.Dx() <= 0 {
		return image.Rectangle{}, false
	}
	ratio := float64(bounds.Dx()) / root.Width
	rel := box.Offset(root.Origin())

	r := image.Rect(
		int(math.Floor(rel.X*ratio)),
		int(math.Floor(rel.Y*ratio)),
		int(math.Ceil((rel.X+rel.Width)*ratio)),
		int(math.Ceil((rel.Y+rel.Height)*ratio)),
	).Add(bounds.Min).Intersect(bounds)
	if r.Empty() {
		return image.Rectangle{}, false
	}
	return r, true
}
