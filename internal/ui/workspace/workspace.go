// Package workspace holds the design the UI server is showing and swaps it
// when the source changes.
package workspace

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/leapstack-labs/figlens/internal/viewer"
	"github.com/leapstack-labs/figlens/pkg/viewport"
)

// Watchable is a source backed by local files.
type Watchable interface {
	Paths() []string
}

// Workspace owns the current viewer. Readers get an immutable loaded viewer;
// Reload builds a new one and swaps it in only when it loads.
type Workspace struct {
	cfg    viewer.Config
	logger *slog.Logger

	mu      sync.Mutex // serializes loads
	current atomic.Pointer[viewer.Viewer]
	lastErr atomic.Pointer[error]
}

// New creates a workspace. cfg is the template for every viewer it builds.
func New(cfg viewer.Config) *Workspace {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Workspace{cfg: cfg, logger: logger}
}

// Reload loads the source into a fresh viewer. On failure the previous
// viewer, if any, stays current.
func (w *Workspace) Reload(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	v := viewer.New(w.cfg)
	if err := v.Load(ctx); err != nil {
		w.lastErr.Store(&err)
		return err
	}
	if v.State() != viewport.StateInteractive {
		// a malformed locator leaves the viewer loading; nothing to show
		w.logger.Warn("design did not load", "source", w.cfg.Source.String(), "state", v.State().String())
		return nil
	}
	w.lastErr.Store(nil)
	w.current.Store(v)
	return nil
}

// Current returns the loaded viewer, or nil before the first successful load.
func (w *Workspace) Current() *viewer.Viewer {
	return w.current.Load()
}

// Err returns the error of the most recent failed load.
func (w *Workspace) Err() error {
	if p := w.lastErr.Load(); p != nil {
		return *p
	}
	return nil
}

// Source returns the source every viewer loads from.
func (w *Workspace) Source() viewer.Source {
	return w.cfg.Source
}

// Paths returns the files behind the source, or nil when it is not local.
func (w *Workspace) Paths() []string {
	if s, ok := w.cfg.Source.(Watchable); ok {
		return s.Paths()
	}
	return nil
}
