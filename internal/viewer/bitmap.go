package viewer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// decodeBitmap turns fetched bytes into an image. SVG renders are
// rasterized at their view box size.
func decodeBitmap(b Bitmap) (image.Image, error) {
	if b.Format == "svg" {
		return rasterizeSVG(b.Data)
	}
	img, err := imaging.Decode(bytes.NewReader(b.Data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s bitmap: %w", b.Format, err)
	}
	return img, nil
}

func rasterizeSVG(data []byte) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse svg bitmap: %w", err)
	}
	w, h := int(icon.ViewBox.W), int(icon.ViewBox.H)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("svg bitmap has empty view box")
	}

	icon.SetTarget(0, 0, float64(w), float64(h))
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
	return rgba, nil
}

// encodePNG encodes an image as PNG.
func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// DataURL encodes fetched bitmap bytes as a data URL.
func (b Bitmap) DataURL() string {
	return "data:" + b.MediaType() + ";base64," + base64.StdEncoding.EncodeToString(b.Data)
}

// MediaType returns the MIME type of the bitmap format.
func (b Bitmap) MediaType() string {
	switch b.Format {
	case "svg":
		return "image/svg+xml"
	case "jpg":
		return "image/jpeg"
	default:
		return "image/png"
	}
}
