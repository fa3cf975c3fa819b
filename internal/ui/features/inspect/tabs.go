package inspect

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/leapstack-labs/figlens/internal/viewer"
	"github.com/leapstack-labs/figlens/pkg/viewport"
)

// Registry limits.
const (
	DefaultMaxTabs = 256
	DefaultTabIdle = 30 * time.Minute
)

var errTabClosed = errors.New("tab closed")

type tab struct {
	viewer   *viewer.Viewer
	vp       *viewport.Viewport
	feed     *viewport.Feed
	stop     func()
	resized  chan error
	closed   chan struct{}
	resizeMu sync.Mutex
	lastSeen time.Time
}

func newTab(v *viewer.Viewer, now time.Time) *tab {
	tb := &tab{
		viewer:   v,
		vp:       newViewport(v),
		feed:     viewport.NewFeed(),
		resized:  make(chan error, 1),
		closed:   make(chan struct{}),
		lastSeen: now,
	}
	tb.stop = tb.vp.Follow(context.Background(), tb.feed, func(_ viewport.Transform, err error) {
		select {
		case tb.resized <- err:
		default:
		}
	})
	return tb
}

func (tb *tab) close() {
	tb.stop()
	close(tb.closed)
}

// Tabs keeps one viewport per browser tab so zoom, pan and container width
// do not leak between tabs looking at the same design. Each viewport follows
// its own resize feed. Tabs without an open update stream are dropped once
// idle, and the oldest of them are evicted when the registry is full.
type Tabs struct {
	mu        sync.Mutex
	tabs      map[string]*tab
	streaming map[string]int
	max       int
	idle      time.Duration
	now       func() time.Time
}

// NewTabs creates an empty registry with the default limits.
func NewTabs() *Tabs {
	return NewTabsWithLimits(DefaultMaxTabs, DefaultTabIdle)
}

// NewTabsWithLimits creates an empty registry holding at most maxTabs idle
// tabs, each for no longer than idle.
func NewTabsWithLimits(maxTabs int, idle time.Duration) *Tabs {
	if maxTabs <= 0 {
		maxTabs = DefaultMaxTabs
	}
	if idle <= 0 {
		idle = DefaultTabIdle
	}
	return &Tabs{
		tabs:      make(map[string]*tab),
		streaming: make(map[string]int),
		max:       maxTabs,
		idle:      idle,
		now:       time.Now,
	}
}

// Viewport returns the tab's viewport for v. A tab first seen, or last seen
// with an older viewer, gets a fresh viewport.
func (t *Tabs) Viewport(key string, v *viewer.Viewer) *viewport.Viewport {
	return t.get(key, v).vp
}

// Resize publishes width to the tab's resize feed and waits until its
// viewport has been refitted.
func (t *Tabs) Resize(ctx context.Context, key string, v *viewer.Viewer, width float64) (*viewport.Viewport, error) {
	tb := t.get(key, v)

	tb.resizeMu.Lock()
	defer tb.resizeMu.Unlock()

	select {
	case <-tb.resized:
	default:
	}
	tb.feed.Publish(width)

	select {
	case err := <-tb.resized:
		if err != nil {
			return nil, err
		}
		return tb.vp, nil
	case <-tb.closed:
		return nil, errTabClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (t *Tabs) get(key string, v *viewer.Viewer) *tab {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if existing, ok := t.tabs[key]; ok {
		if existing.viewer == v {
			existing.lastSeen = now
			return existing
		}
		existing.close()
		delete(t.tabs, key)
	}

	t.sweep(now)
	tb := newTab(v, now)
	t.tabs[key] = tb
	return tb
}

// sweep drops idle tabs without a stream, then evicts the least recently
// seen ones until there is room for one more. Callers hold t.mu.
func (t *Tabs) sweep(now time.Time) {
	for key, tb := range t.tabs {
		if t.streaming[key] == 0 && now.Sub(tb.lastSeen) > t.idle {
			tb.close()
			delete(t.tabs, key)
		}
	}
	for len(t.tabs) >= t.max {
		oldest := ""
		for key, tb := range t.tabs {
			if t.streaming[key] > 0 {
				continue
			}
			if oldest == "" || tb.lastSeen.Before(t.tabs[oldest].lastSeen) {
				oldest = key
			}
		}
		if oldest == "" {
			return
		}
		t.tabs[oldest].close()
		delete(t.tabs, oldest)
	}
}

// Attach marks the tab as having an open update stream, which keeps it
// registered until Forget.
func (t *Tabs) Attach(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.streaming[key]++
}

// Forget ends one stream of a tab. When it was the last one, the tab is
// dropped with its resize follower.
func (t *Tabs) Forget(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.streaming[key] > 1 {
		t.streaming[key]--
		return
	}
	delete(t.streaming, key)
	if tb, ok := t.tabs[key]; ok {
		tb.close()
		delete(t.tabs, key)
	}
}

// Len returns the number of tracked tabs.
func (t *Tabs) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.tabs)
}

func newViewport(v *viewer.Viewer) *viewport.Viewport {
	root := v.Root()
	img, _ := v.Bitmap()
	vp := viewport.New(*root.BoundingBox, float64(img.Bounds().Dx()))
	if w := v.Options().ContainerWidth; w > 0 {
		_ = vp.Fit(w)
	}
	return vp
}
