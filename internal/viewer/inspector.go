package viewer

import (
	"fmt"

	"github.com/leapstack-labs/figlens/internal/overlay"
	"github.com/leapstack-labs/figlens/pkg/figma"
	"github.com/leapstack-labs/figlens/pkg/viewport"
)

// Hover marks the node with the given id as hovered and emits node-hovered.
func (v *Viewer) Hover(id string) error {
	n, err := v.Node(id)
	if err != nil {
		return err
	}
	v.mu.Lock()
	v.hovered = n
	v.mu.Unlock()

	v.emitter.Emit(Event{Type: EventNodeHovered, Node: inspected(n)})
	return nil
}

// Select marks the node with the given id as selected and emits
// node-selected.
func (v *Viewer) Select(id string) error {
	n, err := v.Node(id)
	if err != nil {
		return err
	}
	v.mu.Lock()
	v.selected = n
	v.mu.Unlock()

	v.emitter.Emit(Event{Type: EventNodeSelected, Node: inspected(n)})
	return nil
}

// Leave clears the hovered node, as when the pointer exits the overlay.
func (v *Viewer) Leave() {
	v.mu.Lock()
	had := v.hovered != nil
	v.hovered = nil
	v.mu.Unlock()

	if had {
		v.emitter.Emit(Event{Type: EventNodeHovered})
	}
}

// Deselect clears the selected node.
func (v *Viewer) Deselect() {
	v.mu.Lock()
	had := v.selected != nil
	v.selected = nil
	v.mu.Unlock()

	if had {
		v.emitter.Emit(Event{Type: EventNodeSelected})
	}
}

// Hovered returns the hovered node, or nil.
func (v *Viewer) Hovered() *figma.Node {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.hovered
}

// Selected returns the selected node, or nil.
func (v *Viewer) Selected() *figma.Node {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.selected
}

// Zoom sets the zoom factor when pan and zoom are enabled.
func (v *Viewer) Zoom(k float64) (viewport.Transform, error) {
	vp, err := v.gestureViewport()
	if err != nil {
		return viewport.Transform{}, err
	}
	if err := vp.Zoom(k); err != nil {
		return viewport.Transform{}, err
	}
	return vp.Transform(), nil
}

// Pan moves the view by a screen-space delta when pan and zoom are enabled.
func (v *Viewer) Pan(dx, dy float64) (viewport.Transform, error) {
	vp, err := v.gestureViewport()
	if err != nil {
		return viewport.Transform{}, err
	}
	vp.Pan(dx, dy)
	return vp.Transform(), nil
}

func (v *Viewer) gestureViewport() (*viewport.Viewport, error) {
	vp := v.Viewport()
	if vp == nil {
		return nil, ErrNotLoaded
	}
	if !v.cfg.EnablePanAndZoom {
		return nil, fmt.Errorf("pan and zoom are disabled")
	}
	return vp, nil
}

// Scene returns the overlay scene for the current hover and selection,
// drawn on vp. When vp is nil the viewer's own viewport is used.
func (v *Viewer) Scene(vp *viewport.Viewport) (overlay.Scene, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.root == nil {
		return overlay.Scene{}, ErrNotLoaded
	}
	if vp == nil {
		vp = v.vp
	}
	return overlay.Scene{
		Root:       v.root,
		Viewport:   vp,
		Hovered:    v.hovered,
		Selected:   v.selected,
		Nodes:      v.nodes,
		ShowInsets: v.cfg.ShowInsets,
		Measurer:   v.cfg.Measurer,
	}, nil
}

func inspected(n *figma.Node) *InspectedNode {
	in := Inspect(n)
	return &in
}
