package figma

import (
	"encoding/json"
	"fmt"
)

// nodeJSON mirrors the wire shape of a node. Facets that are flattened on the
// wire (padding) are regrouped by UnmarshalJSON.
type nodeJSON struct {
	ID                   string     `json:"id"`
	Name                 string     `json:"name,omitempty"`
	Type                 NodeType   `json:"type"`
	Visible              *bool      `json:"visible,omitempty"`
	Characters           string     `json:"characters,omitempty"`
	AbsoluteBoundingBox  *Rect      `json:"absoluteBoundingBox,omitempty"`
	Fills                []Paint    `json:"fills,omitempty"`
	Strokes              []Paint    `json:"strokes,omitempty"`
	StrokeWeight         *float64   `json:"strokeWeight,omitempty"`
	CornerRadius         *float64   `json:"cornerRadius,omitempty"`
	RectangleCornerRadii []float64  `json:"rectangleCornerRadii,omitempty"`
	Effects              []Effect   `json:"effects,omitempty"`
	PaddingTop           *float64   `json:"paddingTop,omitempty"`
	PaddingRight         *float64   `json:"paddingRight,omitempty"`
	PaddingBottom        *float64   `json:"paddingBottom,omitempty"`
	PaddingLeft          *float64   `json:"paddingLeft,omitempty"`
	VerticalPadding      *float64   `json:"verticalPadding,omitempty"`
	HorizontalPadding    *float64   `json:"horizontalPadding,omitempty"`
	Style                *TypeStyle `json:"style,omitempty"`
	Children             []*Node    `json:"children,omitempty"`
}

// UnmarshalJSON decodes a node in the design-file wire format.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw nodeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*n = Node{
		ID:           raw.ID,
		Name:         raw.Name,
		Type:         raw.Type,
		Hidden:       raw.Visible != nil && !*raw.Visible,
		Children:     raw.Children,
		Characters:   raw.Characters,
		BoundingBox:  raw.AbsoluteBoundingBox,
		Fills:        raw.Fills,
		Strokes:      raw.Strokes,
		CornerRadius: raw.CornerRadius,
		CornerRadii:  raw.RectangleCornerRadii,
		Effects:      raw.Effects,
		Style:        raw.Style,
	}
	if raw.StrokeWeight != nil {
		n.StrokeWeight = *raw.StrokeWeight
	}

	if raw.PaddingTop != nil || raw.PaddingRight != nil || raw.PaddingBottom != nil || raw.PaddingLeft != nil {
		n.Padding = &Padding{
			Top:    deref(raw.PaddingTop),
			Right:  deref(raw.PaddingRight),
			Bottom: deref(raw.PaddingBottom),
			Left:   deref(raw.PaddingLeft),
		}
	} else if raw.VerticalPadding != nil || raw.HorizontalPadding != nil {
		n.LegacyPadding = &LegacyPadding{
			Vertical:   deref(raw.VerticalPadding),
			Horizontal: deref(raw.HorizontalPadding),
		}
	}

	return nil
}

// MarshalJSON encodes the node back into the design-file wire format.
func (n *Node) MarshalJSON() ([]byte, error) {
	raw := nodeJSON{
		ID:                   n.ID,
		Name:                 n.Name,
		Type:                 n.Type,
		Characters:           n.Characters,
		AbsoluteBoundingBox:  n.BoundingBox,
		Fills:                n.Fills,
		Strokes:              n.Strokes,
		CornerRadius:         n.CornerRadius,
		RectangleCornerRadii: n.CornerRadii,
		Effects:              n.Effects,
		Style:                n.Style,
		Children:             n.Children,
	}
	if n.Hidden {
		hidden := false
		raw.Visible = &hidden
	}
	if n.Strokes != nil {
		weight := n.StrokeWeight
		raw.StrokeWeight = &weight
	}
	if p := n.Padding; p != nil {
		raw.PaddingTop, raw.PaddingRight, raw.PaddingBottom, raw.PaddingLeft = &p.Top, &p.Right, &p.Bottom, &p.Left
	}
	if p := n.LegacyPadding; p != nil {
		raw.VerticalPadding, raw.HorizontalPadding = &p.Vertical, &p.Horizontal
	}
	return json.Marshal(raw)
}

// ParseDocument decodes a single node tree from raw JSON.
func ParseDocument(data []byte) (*Node, error) {
	var root Node
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	if root.ID == "" {
		return nil, fmt.Errorf("failed to decode document: root node has no id")
	}
	return &root, nil
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
