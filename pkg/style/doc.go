// Package style derives CSS-like style declarations from design nodes.
//
// Derive is pure and total: a node that exposes no facets yields an empty
// list, and no input makes it fail. Only the first visible fill, the first
// stroke, and the first shadow, layer blur and background blur are honored.
package style
