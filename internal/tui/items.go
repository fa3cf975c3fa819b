package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/leapstack-labs/figlens/pkg/figma"
	"github.com/leapstack-labs/figlens/pkg/style"
)

// nodeItem adapts a design node to the list component.
type nodeItem struct {
	node  *figma.Node
	depth int
}

var _ list.DefaultItem = nodeItem{}

func (i nodeItem) Title() string {
	return strings.Repeat("  ", i.depth) + i.node.Name
}

func (i nodeItem) Description() string {
	return strings.Repeat("  ", i.depth) + fmt.Sprintf("%s · %s", i.node.Type, size(i.node))
}

func (i nodeItem) FilterValue() string { return i.node.Name + " " + i.node.ID }

// items lists the paintable nodes indented by tree depth.
func items(root *figma.Node, paintable []*figma.Node) []list.Item {
	depths := make(map[string]int, len(paintable))
	var walk func(n *figma.Node, d int)
	walk = func(n *figma.Node, d int) {
		depths[n.ID] = d
		for _, c := range n.Children {
			walk(c, d+1)
		}
	}
	if root != nil {
		walk(root, 0)
	}

	out := make([]list.Item, 0, len(paintable))
	for _, n := range paintable {
		out = append(out, nodeItem{node: n, depth: depths[n.ID]})
	}
	return out
}

func size(n *figma.Node) string {
	if n.BoundingBox == nil {
		return "no bounds"
	}
	return fmt.Sprintf("%s × %s", style.Px(n.BoundingBox.Width), style.Px(n.BoundingBox.Height))
}
