package overlay

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Measurer reports the rendered width and height of a label.
type Measurer interface {
	Measure(text string, size float64) (width, height float64)
}

// referenceSize is the size the face is built at. Unhinted outlines scale
// linearly, so other sizes are measured by scaling from it.
const referenceSize = 64.0

// FontMeasurer measures text with a parsed OpenType font through a single
// face built at referenceSize.
type FontMeasurer struct {
	mu   sync.Mutex
	face font.Face
}

// NewFontMeasurer parses the given TTF/OTF bytes.
func NewFontMeasurer(data []byte) (*FontMeasurer, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    referenceSize,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	return &FontMeasurer{face: face}, nil
}

var (
	defaultMeasurer     Measurer
	defaultMeasurerOnce sync.Once
)

// DefaultMeasurer measures with the bundled Go Regular font, falling back to
// ApproxMeasurer if the font cannot be loaded.
func DefaultMeasurer() Measurer {
	defaultMeasurerOnce.Do(func() {
		m, err := NewFontMeasurer(goregular.TTF)
		if err != nil {
			defaultMeasurer = ApproxMeasurer{}
			return
		}
		defaultMeasurer = m
	})
	return defaultMeasurer
}

// Measure returns the advance width and the ascent+descent height.
func (m *FontMeasurer) Measure(text string, size float64) (float64, float64) {
	m.mu.Lock()
	adv := font.MeasureString(m.face, text)
	metrics := m.face.Metrics()
	m.mu.Unlock()

	k := size / referenceSize
	return k * fixedToFloat(adv), k * fixedToFloat(metrics.Ascent+metrics.Descent)
}

// ApproxMeasurer estimates labels at 0.6em per rune and 1.2em line height.
type ApproxMeasurer struct{}

// Measure implements Measurer.
func (ApproxMeasurer) Measure(text string, size float64) (float64, float64) {
	return 0.6 * size * float64(utf8.RuneCountInString(text)), 1.2 * size
}

func fixedToFloat[T ~int32](v T) float64 {
	return float64(v) / 64
}
