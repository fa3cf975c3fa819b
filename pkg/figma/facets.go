package figma

// Capability predicates. Each one is a structural test on facet presence and
// they are independent of one another and of the node type.

// HasBoundingBox reports whether the node occupies screen area.
func HasBoundingBox(n *Node) bool {
	return n != nil && n.BoundingBox != nil
}

// HasFills reports whether the node carries a fills list (possibly empty).
func HasFills(n *Node) bool {
	return n != nil && n.Fills != nil
}

// HasStroke reports whether the node carries a strokes list (possibly empty).
func HasStroke(n *Node) bool {
	return n != nil && n.Strokes != nil
}

// HasRadius reports whether the node carries a single corner radius.
func HasRadius(n *Node) bool {
	return n != nil && n.CornerRadius != nil
}

// HasRadii reports whether the node carries per-corner radii.
func HasRadii(n *Node) bool {
	return n != nil && len(n.CornerRadii) == 4
}

// HasEffects reports whether the node carries an effects list.
func HasEffects(n *Node) bool {
	return n != nil && n.Effects != nil
}

// HasPadding reports whether the node carries four-sided padding.
func HasPadding(n *Node) bool {
	return n != nil && n.Padding != nil
}

// HasLegacyPadding reports whether the node carries vertical/horizontal padding.
func HasLegacyPadding(n *Node) bool {
	return n != nil && n.LegacyPadding != nil
}

// HasTypeStyle reports whether the node carries typography.
func HasTypeStyle(n *Node) bool {
	return n != nil && n.Style != nil
}

// IsShadowEffect reports whether e is a drop or inner shadow.
func IsShadowEffect(e Effect) bool {
	return e.Type == EffectDropShadow || e.Type == EffectInnerShadow
}

// IsVisible reports whether the node is not explicitly hidden.
func IsVisible(n *Node) bool {
	return n != nil && !n.Hidden
}
