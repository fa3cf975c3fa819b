package figma

import "iter"

// Walk returns a depth-first, pre-order sequence over root and all of its
// descendants, visiting children in array order. The sequence can be ranged
// over any number of times. Trees are assumed acyclic.
func Walk(root *Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		walk(root, yield)
	}
}

// walk returns false once the consumer stops the iteration.
func walk(n *Node, yield func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !yield(n) {
		return false
	}
	for _, child := range n.Children {
		if !walk(child, yield) {
			return false
		}
	}
	return true
}

// Paintable returns, in walk order, the nodes that can be hit-tested and
// outlined: those with a bounding box that are not explicitly hidden.
func Paintable(root *Node) []*Node {
	var nodes []*Node
	for n := range Walk(root) {
		if HasBoundingBox(n) && IsVisible(n) {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// Find returns the first node in walk order with the given id, or nil.
func Find(root *Node, id string) *Node {
	for n := range Walk(root) {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// Count returns the number of nodes in the tree.
func Count(root *Node) int {
	count := 0
	for range Walk(root) {
		count++
	}
	return count
}
