package viewer

import (
	"encoding/json"
	"fmt"

	"github.com/leapstack-labs/figlens/pkg/figma"
	"github.com/leapstack-labs/figlens/pkg/style"
)

// EventType names an event emitted to the embedding application.
type EventType string

// Event types.
const (
	EventInit         EventType = "init"
	EventLoaded       EventType = "loaded"
	EventNodeSelected EventType = "node-selected"
	EventNodeHovered  EventType = "node-hovered"
)

// Event is delivered to an Emitter. Node is set for selection and hover
// events, Loaded for the loaded event.
type Event struct {
	Type   EventType
	Node   *InspectedNode
	Loaded *Loaded
}

// MarshalJSON encodes the event as {"type": ..., "detail": ...}.
func (e Event) MarshalJSON() ([]byte, error) {
	var detail any
	switch {
	case e.Node != nil:
		detail = e.Node
	case e.Loaded != nil:
		detail = e.Loaded
	}
	return json.Marshal(struct {
		Type   EventType `json:"type"`
		Detail any       `json:"detail,omitempty"`
	}{e.Type, detail})
}

// Emitter receives viewer events. Emit is called synchronously from the
// goroutine that caused the event.
type Emitter interface {
	Emit(Event)
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(Event)

// Emit implements Emitter.
func (f EmitterFunc) Emit(e Event) { f(e) }

// Controller exposes operations on a loaded viewer.
type Controller interface {
	ExportImage(n *figma.Node) (string, error)
}

// Loaded is the payload of the loaded event.
type Loaded struct {
	Nodes      []InspectedNode `json:"nodes"`
	Controller Controller      `json:"-"`
}

// InspectedNode is a node with its derived styles, recomputed on demand.
type InspectedNode struct {
	Node   *figma.Node
	Styles style.Declarations
}

// Inspect derives the styles of n.
func Inspect(n *figma.Node) InspectedNode {
	return InspectedNode{Node: n, Styles: style.Derive(n)}
}

// MarshalJSON emits the node in its wire format with an added "styles"
// field. Children are omitted: the node list is already flat.
func (in InspectedNode) MarshalJSON() ([]byte, error) {
	if in.Node == nil {
		return []byte("null"), nil
	}
	shallow := *in.Node
	shallow.Children = nil

	raw, err := json.Marshal(&shallow)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("failed to inject styles: %w", err)
	}
	styles, err := json.Marshal(in.Styles)
	if err != nil {
		return nil, err
	}
	fields["styles"] = styles
	return json.Marshal(fields)
}
