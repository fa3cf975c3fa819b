// Package figma defines the design-tree data model used by figlens.
//
// A design tree is a hierarchy of nodes with absolute design-space geometry.
// Nodes are a tagged union keyed by Type; the optional properties a node may
// carry (bounding box, fills, strokes, radii, effects, padding, type style)
// are modelled as independent facets and tested with presence predicates
// such as HasBoundingBox and HasTypeStyle rather than by node type.
package figma
