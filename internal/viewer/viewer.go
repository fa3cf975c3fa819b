// Package viewer runs one inspection session: it loads a design tree and its
// bitmap, tracks hover and selection, emits events and exports node crops.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"

	"github.com/leapstack-labs/figlens/internal/figmaapi"
	"github.com/leapstack-labs/figlens/internal/overlay"
	"github.com/leapstack-labs/figlens/pkg/figma"
	"github.com/leapstack-labs/figlens/pkg/viewport"
	"golang.org/x/sync/errgroup"
)

// Config holds viewer configuration.
type Config struct {
	Source Source
	Logger *slog.Logger
	// Emitter receives events; nil discards them.
	Emitter Emitter
	// ContainerWidth, when positive, fits the viewport at load.
	ContainerWidth float64
	// EnablePanAndZoom allows Zoom and Pan gestures.
	EnablePanAndZoom bool
	// ShowInsets adds edge guides between nested selections.
	ShowInsets bool
	Measurer   overlay.Measurer
}

// Viewer is a single inspection session. It is safe for concurrent use.
type Viewer struct {
	cfg       Config
	logger    *slog.Logger
	emitter   Emitter
	lifecycle viewport.Lifecycle

	mu       sync.RWMutex
	root     *figma.Node
	nodes    []*figma.Node
	byID     map[string]*figma.Node
	bitmap   image.Image
	raw      Bitmap
	vp       *viewport.Viewport
	hovered  *figma.Node
	selected *figma.Node
}

// New creates a viewer and emits the init event.
func New(cfg Config) *Viewer {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Emitter == nil {
		cfg.Emitter = EmitterFunc(func(Event) {})
	}
	v := &Viewer{
		cfg:     cfg,
		logger:  cfg.Logger,
		emitter: cfg.Emitter,
	}
	v.emitter.Emit(Event{Type: EventInit})
	return v
}

// Load fetches the document and bitmap in parallel; the first failure
// cancels the other fetch. A malformed share URL is logged and leaves the
// viewer in Loading without an error. Any other failure moves it to Error.
func (v *Viewer) Load(ctx context.Context) error {
	if err := v.lifecycle.Transition(viewport.StateLoading); err != nil {
		return err
	}
	v.logger.Debug("loading design", "source", v.cfg.Source.String())

	var (
		doc *figma.Node
		raw Bitmap
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		doc, err = v.cfg.Source.FetchDocument(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		raw, err = v.cfg.Source.FetchBitmap(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, figmaapi.ErrInvalidLocator) {
			v.logger.Warn("failed to parse design url", "source", v.cfg.Source.String(), "error", err)
			return nil
		}
		return v.fail(fmt.Errorf("failed to load %s: %w", v.cfg.Source.String(), err))
	}

	if !figma.HasBoundingBox(doc) {
		return v.fail(ErrNoRootBounds)
	}

	bitmap, err := decodeBitmap(raw)
	if err != nil {
		return v.fail(err)
	}

	vp := viewport.New(*doc.BoundingBox, float64(bitmap.Bounds().Dx()))
	if v.cfg.ContainerWidth > 0 {
		if err := vp.Fit(v.cfg.ContainerWidth); err != nil {
			return v.fail(err)
		}
	}

	nodes := figma.Paintable(doc)
	byID := make(map[string]*figma.Node, len(nodes))
	for _, n := range nodes {
		if _, dup := byID[n.ID]; !dup {
			byID[n.ID] = n
		}
	}

	v.mu.Lock()
	v.root, v.nodes, v.byID = doc, nodes, byID
	v.bitmap, v.raw, v.vp = bitmap, raw, vp
	v.hovered, v.selected = nil, nil
	v.mu.Unlock()

	if err := v.lifecycle.Transition(viewport.StateReady); err != nil {
		return err
	}
	v.logger.Info("design loaded", "source", v.cfg.Source.String(), "nodes", len(nodes),
		"width", doc.BoundingBox.Width, "height", doc.BoundingBox.Height)

	loaded := &Loaded{Nodes: make([]InspectedNode, 0, len(nodes)), Controller: v}
	for _, n := range nodes {
		loaded.Nodes = append(loaded.Nodes, Inspect(n))
	}
	v.emitter.Emit(Event{Type: EventLoaded, Loaded: loaded})

	return v.lifecycle.Transition(viewport.StateInteractive)
}

func (v *Viewer) fail(err error) error {
	v.logger.Error("failed to load design", "source", v.cfg.Source.String(), "error", err)
	if ferr := v.lifecycle.Fail(err); ferr != nil {
		return errors.Join(err, ferr)
	}
	return err
}

// State returns the lifecycle state.
func (v *Viewer) State() viewport.State {
	return v.lifecycle.State()
}

// Err returns the load error when the viewer is in the Error state.
func (v *Viewer) Err() error {
	return v.lifecycle.Err()
}

// Root returns the loaded root node.
func (v *Viewer) Root() *figma.Node {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.root
}

// Nodes returns the paintable nodes in walk order.
func (v *Viewer) Nodes() []*figma.Node {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.nodes
}

// Node returns the paintable node with the given id.
func (v *Viewer) Node(id string) (*figma.Node, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.root == nil {
		return nil, ErrNotLoaded
	}
	n, ok := v.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	return n, nil
}

// Viewport returns the viewer's viewport, or nil before load.
func (v *Viewer) Viewport() *viewport.Viewport {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.vp
}

// Bitmap returns the decoded bitmap and the bytes it was decoded from.
func (v *Viewer) Bitmap() (image.Image, Bitmap) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.bitmap, v.raw
}

// Options returns the configuration the viewer was created with.
func (v *Viewer) Options() Config {
	return v.cfg
}
