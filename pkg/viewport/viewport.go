// Package viewport models the overlay's coordinate transform.
//
// Overlay geometry is computed in root-relative design space: an absolute
// point p is drawn at p - root.origin. Pan and zoom are applied by the
// rendering surface as a single group transform and are never baked into
// point coordinates. Decoration sizes (stroke widths, label fonts, padding)
// are multiplied by Scale so they keep a constant size on screen.
package viewport

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/leapstack-labs/figlens/pkg/figma"
)

// Zoom limits applied to user zoom gestures.
const (
	MinZoom = 0.5
	MaxZoom = 5.0
)

// ErrInvalidSize is returned for non-positive widths and zoom factors.
var ErrInvalidSize = errors.New("viewport: size must be positive")

// Viewport holds the scale and pan of one viewer. It is safe for concurrent
// use; Follow updates it from a separate goroutine.
type Viewport struct {
	mu sync.RWMutex

	root         figma.Rect
	naturalWidth float64

	scale     float64 // design px per screen px
	k         float64 // group zoom factor
	translate figma.Vector
}

// Transform is a point-in-time copy of a viewport's state.
type Transform struct {
	Scale     float64      `json:"scale"`
	Zoom      float64      `json:"zoom"`
	Translate figma.Vector `json:"translate"`
}

// New returns a viewport for a tree whose root occupies root and whose
// rendered bitmap is naturalWidth pixels wide. Scale starts at 1.
func New(root figma.Rect, naturalWidth float64) *Viewport {
	return &Viewport{root: root, naturalWidth: naturalWidth, scale: 1, k: 1}
}

// Root returns the root bounds used for root-relative conversion.
func (v *Viewport) Root() figma.Rect {
	return v.root
}

// Fit derives the scale from the container width: natural / container.
// The group transform resets to a zoom of 1/scale with no pan.
func (v *Viewport) Fit(containerWidth float64) error {
	if containerWidth <= 0 || v.naturalWidth <= 0 {
		return fmt.Errorf("fit to width %v: %w", containerWidth, ErrInvalidSize)
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.scale = v.naturalWidth / containerWidth
	v.k = 1 / v.scale
	v.translate = figma.Vector{}
	return nil
}

// Zoom applies a zoom gesture with factor k, clamped to [MinZoom, MaxZoom].
// The scale becomes 1/k.
func (v *Viewport) Zoom(k float64) error {
	if k <= 0 {
		return fmt.Errorf("zoom by %v: %w", k, ErrInvalidSize)
	}
	k = min(max(k, MinZoom), MaxZoom)
	v.mu.Lock()
	defer v.mu.Unlock()
	v.k = k
	v.scale = 1 / k
	return nil
}

// Pan moves the group transform by (dx, dy) screen pixels.
func (v *Viewport) Pan(dx, dy float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.translate = v.translate.Add(figma.Vector{X: dx, Y: dy})
}

// Scale returns the current design-px-per-screen-px factor.
func (v *Viewport) Scale() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.scale
}

// Transform returns a copy of the current state.
func (v *Viewport) Transform() Transform {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return Transform{Scale: v.scale, Zoom: v.k, Translate: v.translate}
}

// Scaled counter-scales a decoration size.
func (v *Viewport) Scaled(size float64) float64 {
	return size * v.Scale()
}

// ToOverlay converts an absolute design-space point to root-relative space.
func (v *Viewport) ToOverlay(p figma.Vector) figma.Vector {
	return p.Sub(v.root.Origin())
}

// RectToOverlay converts an absolute box to root-relative space.
func (v *Viewport) RectToOverlay(r figma.Rect) figma.Rect {
	return r.Offset(v.root.Origin())
}

// GroupTransform returns the SVG transform attribute the surface applies to
// the overlay group.
func (v *Viewport) GroupTransform() string {
	t := v.Transform()
	return "translate(" + num(t.Translate.X) + "," + num(t.Translate.Y) + ") scale(" + num(t.Zoom) + ")"
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
