package figma

// NodeType is the discriminant of the node union.
type NodeType string

// Node type constants as emitted by the design-file API.
const (
	NodeTypeDocument         NodeType = "DOCUMENT"
	NodeTypeCanvas           NodeType = "CANVAS"
	NodeTypeFrame            NodeType = "FRAME"
	NodeTypeGroup            NodeType = "GROUP"
	NodeTypeSection          NodeType = "SECTION"
	NodeTypeVector           NodeType = "VECTOR"
	NodeTypeBooleanOperation NodeType = "BOOLEAN_OPERATION"
	NodeTypeStar             NodeType = "STAR"
	NodeTypeLine             NodeType = "LINE"
	NodeTypeEllipse          NodeType = "ELLIPSE"
	NodeTypeRegularPolygon   NodeType = "REGULAR_POLYGON"
	NodeTypeRectangle        NodeType = "RECTANGLE"
	NodeTypeText             NodeType = "TEXT"
	NodeTypeSlice            NodeType = "SLICE"
	NodeTypeComponent        NodeType = "COMPONENT"
	NodeTypeComponentSet     NodeType = "COMPONENT_SET"
	NodeTypeInstance         NodeType = "INSTANCE"
	NodeTypeSticky           NodeType = "STICKY"
	NodeTypeShapeWithText    NodeType = "SHAPE_WITH_TEXT"
	NodeTypeConnector        NodeType = "CONNECTOR"
	NodeTypeTable            NodeType = "TABLE"
	NodeTypeTableCell        NodeType = "TABLE_CELL"
	NodeTypeWashiTape        NodeType = "WASHI_TAPE"
)

var knownNodeTypes = map[NodeType]struct{}{
	NodeTypeDocument: {}, NodeTypeCanvas: {}, NodeTypeFrame: {}, NodeTypeGroup: {},
	NodeTypeSection: {}, NodeTypeVector: {}, NodeTypeBooleanOperation: {}, NodeTypeStar: {},
	NodeTypeLine: {}, NodeTypeEllipse: {}, NodeTypeRegularPolygon: {}, NodeTypeRectangle: {},
	NodeTypeText: {}, NodeTypeSlice: {}, NodeTypeComponent: {}, NodeTypeComponentSet: {},
	NodeTypeInstance: {}, NodeTypeSticky: {}, NodeTypeShapeWithText: {}, NodeTypeConnector: {},
	NodeTypeTable: {}, NodeTypeTableCell: {}, NodeTypeWashiTape: {},
}

// Known reports whether t is one of the node types listed above.
// Unknown tags still decode; they simply match no type-specific rule.
func (t NodeType) Known() bool {
	_, ok := knownNodeTypes[t]
	return ok
}

// Node is a single element of a design tree.
//
// Facet fields are nil when the node does not carry the facet. Slices follow
// the same rule: a node with "fills": [] has a non-nil, empty Fills slice and
// therefore still has the Fills facet.
type Node struct {
	ID       string
	Name     string
	Type     NodeType
	// Hidden is set when the document marks the node invisible. The zero
	// value is visible, matching an absent "visible" field.
	Hidden   bool
	Children []*Node

	// Characters is the text content of TEXT nodes. Display only.
	Characters string

	BoundingBox *Rect

	Fills []Paint

	Strokes      []Paint
	StrokeWeight float64

	CornerRadius *float64
	// CornerRadii holds top-left, top-right, bottom-right, bottom-left.
	CornerRadii []float64

	Effects []Effect

	Padding       *Padding
	LegacyPadding *LegacyPadding

	Style *TypeStyle
}

// PaintType identifies a paint kind.
type PaintType string

// Paint types.
const (
	PaintSolid           PaintType = "SOLID"
	PaintGradientLinear  PaintType = "GRADIENT_LINEAR"
	PaintGradientRadial  PaintType = "GRADIENT_RADIAL"
	PaintGradientAngular PaintType = "GRADIENT_ANGULAR"
	PaintGradientDiamond PaintType = "GRADIENT_DIAMOND"
	PaintImage           PaintType = "IMAGE"
	PaintEmoji           PaintType = "EMOJI"
	PaintVideo           PaintType = "VIDEO"
)

// Paint is a fill or stroke entry.
type Paint struct {
	Type PaintType `json:"type"`
	// Visible is nil when the field is absent, which counts as visible.
	Visible *bool    `json:"visible,omitempty"`
	Color   *Color   `json:"color,omitempty"`
	Opacity *float64 `json:"opacity,omitempty"`
}

// IsVisible reports whether the paint is not explicitly hidden.
func (p Paint) IsVisible() bool {
	return p.Visible == nil || *p.Visible
}

// EffectType identifies an effect kind.
type EffectType string

// Effect types.
const (
	EffectDropShadow     EffectType = "DROP_SHADOW"
	EffectInnerShadow    EffectType = "INNER_SHADOW"
	EffectLayerBlur      EffectType = "LAYER_BLUR"
	EffectBackgroundBlur EffectType = "BACKGROUND_BLUR"
)

// Effect is a shadow or blur entry.
type Effect struct {
	Type    EffectType `json:"type"`
	Visible bool       `json:"visible"`
	Radius  float64    `json:"radius"`
	Color   *Color     `json:"color,omitempty"`
	Offset  *Vector    `json:"offset,omitempty"`
	Spread  float64    `json:"spread,omitempty"`
}

// Padding is the auto-layout padding facet.
type Padding struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// LegacyPadding is the older vertical/horizontal padding pair.
type LegacyPadding struct {
	Vertical   float64
	Horizontal float64
}

// TextCase is the text-case transform of a type style.
type TextCase string

// Text cases.
const (
	TextCaseOriginal TextCase = "ORIGINAL"
	TextCaseUpper    TextCase = "UPPER"
	TextCaseLower    TextCase = "LOWER"
	TextCaseTitle    TextCase = "TITLE"
)

// TypeStyle is the typography facet of TEXT nodes.
type TypeStyle struct {
	FontFamily          string   `json:"fontFamily"`
	FontSize            float64  `json:"fontSize"`
	FontWeight          float64  `json:"fontWeight"`
	LineHeightPx        float64  `json:"lineHeightPx"`
	TextAlignHorizontal string   `json:"textAlignHorizontal"`
	LetterSpacing       float64  `json:"letterSpacing,omitempty"`
	Italic              bool     `json:"italic,omitempty"`
	TextCase            TextCase `json:"textCase,omitempty"`
}

// Color is an RGBA color with channels in [0, 1].
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// IsTransparent reports whether the color has zero alpha.
func (c Color) IsTransparent() bool {
	return c.A == 0
}
