package viewport

import (
	"context"
	"sync"
)

// ResizeFeed delivers container widths to subscribers. The returned cancel
// func releases the subscription and must be safe to call more than once.
type ResizeFeed interface {
	Subscribe() (<-chan float64, func())
}

// Feed is a channel-based ResizeFeed owned by one viewer. Each subscriber
// holds at most one pending width; a newer width replaces an unread one.
type Feed struct {
	mu   sync.Mutex
	subs map[chan float64]struct{}
}

// NewFeed returns an empty feed.
func NewFeed() *Feed {
	return &Feed{subs: make(map[chan float64]struct{})}
}

// Subscribe registers a listener.
func (f *Feed) Subscribe() (<-chan float64, func()) {
	ch := make(chan float64, 1)
	f.mu.Lock()
	f.subs[ch] = struct{}{}
	f.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs, ch)
			f.mu.Unlock()
			close(ch)
		})
	}
}

// Publish sends a width to every subscriber without blocking.
func (f *Feed) Publish(width float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subs {
		select {
		case <-ch:
		default:
		}
		ch <- width
	}
}

// Len returns the number of live subscriptions.
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// Follow subscribes to feed and refits the viewport on every width it
// receives. onResize, when non-nil, runs after each fit with its error. The
// subscription is released when ctx ends or stop is called; stop blocks
// until the follower goroutine has exited.
func (v *Viewport) Follow(ctx context.Context, feed ResizeFeed, onResize func(Transform, error)) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	widths, release := feed.Subscribe()
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer release()
		for {
			select {
			case <-ctx.Done():
				return
			case w, ok := <-widths:
				if !ok {
					return
				}
				err := v.Fit(w)
				if onResize != nil {
					onResize(v.Transform(), err)
				}
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}
}
