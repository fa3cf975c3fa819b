// Package pages renders the inspector's HTML as templ components.
package pages

import "github.com/leapstack-labs/figlens/pkg/style"

// NodeItem is one row of the node list.
type NodeItem struct {
	ID   string
	Name string
	Type string
	Size string
}

// NodePanel shows one inspected node.
type NodePanel struct {
	Label  string
	ID     string
	Name   string
	Type   string
	Size   string
	Styles style.Declarations
}

// ViewData is everything the page renders.
type ViewData struct {
	Title      string
	TabID      string
	IsDev      bool
	PanAndZoom bool
	Source     string
	Error      string
	Nodes      []NodeItem
	Overlay    string
	Selected   *NodePanel
	Hovered    *NodePanel
}
