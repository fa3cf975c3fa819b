// Package notifier fans viewer events out to the UI's long-lived streams.
package notifier

import (
	"sync"

	"github.com/leapstack-labs/figlens/internal/viewer"
)

// DefaultQueueSize is the backlog an ordered listener may build up before it
// is dropped.
const DefaultQueueSize = 256

// Notifier broadcasts viewer events to all subscribed listeners.
//
// Listeners from Subscribe are last-value mailboxes: a slow redraw stream
// misses intermediate events but always receives the newest one. Listeners
// from SubscribeOrdered receive every event in order; one that falls a full
// queue behind is dropped and its channel closed.
type Notifier struct {
	mu        sync.RWMutex
	listeners map[chan viewer.Event]struct{}
	ordered   map[chan viewer.Event]struct{}
}

var _ viewer.Emitter = (*Notifier)(nil)

// New creates a new Notifier instance.
func New() *Notifier {
	return &Notifier{
		listeners: make(map[chan viewer.Event]struct{}),
		ordered:   make(map[chan viewer.Event]struct{}),
	}
}

// Subscribe returns a channel that receives events.
// The caller must call Unsubscribe when done to prevent goroutine leaks.
func (n *Notifier) Subscribe() chan viewer.Event {
	ch := make(chan viewer.Event, 1)
	n.mu.Lock()
	n.listeners[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// SubscribeOrdered returns a channel that receives every event, buffering up
// to size of them. The caller must call Unsubscribe when done.
func (n *Notifier) SubscribeOrdered(size int) chan viewer.Event {
	if size <= 0 {
		size = DefaultQueueSize
	}
	ch := make(chan viewer.Event, size)
	n.mu.Lock()
	n.ordered[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener channel and closes it.
func (n *Notifier) Unsubscribe(ch chan viewer.Event) {
	n.mu.Lock()
	_, ok := n.listeners[ch]
	_, isOrdered := n.ordered[ch]
	ok = ok || isOrdered
	delete(n.listeners, ch)
	delete(n.ordered, ch)
	n.mu.Unlock()
	if ok {
		close(ch)
	}
}

// Broadcast delivers e to every listener. Mailboxes have any unread event
// replaced; ordered listeners get it queued. It never blocks.
func (n *Notifier) Broadcast(e viewer.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for ch := range n.listeners {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- e:
		default:
		}
	}
	for ch := range n.ordered {
		select {
		case ch <- e:
		default:
			delete(n.ordered, ch)
			close(ch)
		}
	}
}

// Emit implements viewer.Emitter.
func (n *Notifier) Emit(e viewer.Event) {
	n.Broadcast(e)
}

// Len returns the number of listeners.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.listeners) + len(n.ordered)
}
