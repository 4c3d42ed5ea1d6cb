// Package scene defines the read-only view of a host-owned canvas node
// tree. The host runtime owns the actual graph; everything here is a
// capability interface plus the value types its accessors return. Nothing
// in this package mutates a node.
package scene

// NodeType is the fixed type-tag enumeration for canvas nodes.
type NodeType string

const (
	TypeDocument     NodeType = "DOCUMENT"
	TypePage         NodeType = "PAGE"
	TypeFrame        NodeType = "FRAME"
	TypeGroup        NodeType = "GROUP"
	TypeSection      NodeType = "SECTION"
	TypeComponent    NodeType = "COMPONENT"
	TypeComponentSet NodeType = "COMPONENT_SET"
	TypeInstance     NodeType = "INSTANCE"
	TypeText         NodeType = "TEXT"
	TypeRectangle    NodeType = "RECTANGLE"
	TypeEllipse      NodeType = "ELLIPSE"
	TypeLine         NodeType = "LINE"
	TypePolygon      NodeType = "POLYGON"
	TypeStar         NodeType = "STAR"
	TypeVector       NodeType = "VECTOR"
	TypeBoolean      NodeType = "BOOLEAN_OPERATION"
	TypeSlice        NodeType = "SLICE"
)

// Mixed is a tagged union for attributes that can differ across a
// multi-element selection. Either the concrete value or the mixed flag is
// meaningful, never both.
type Mixed[T any] struct {
	Value   T
	IsMixed bool
}

// Concrete wraps a concrete attribute value.
func Concrete[T any](v T) Mixed[T] {
	return Mixed[T]{Value: v}
}

// MixedOf returns the mixed sentinel for type T.
func MixedOf[T any]() Mixed[T] {
	return Mixed[T]{IsMixed: true}
}

// Color is an RGBA color with 0.0-1.0 float channels. Alpha is only
// meaningful on effect colors and defaults to opaque when absent; paints
// carry opacity separately.
type Color struct {
	R float64  `json:"r"`
	G float64  `json:"g"`
	B float64  `json:"b"`
	A *float64 `json:"a,omitempty"`
}

// Vector is a 2D offset.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Paint is a single fill or stroke entry. Visible and Opacity are
// pointers because the host may omit them; absent means visible / fully
// opaque. Color is set only for solid paints.
type Paint struct {
	Type    string   `json:"type"`
	Visible *bool    `json:"visible,omitempty"`
	Opacity *float64 `json:"opacity,omitempty"`
	Color   *Color   `json:"color,omitempty"`
}

// SolidPaint is the type tag for solid paints.
const SolidPaint = "SOLID"

// PaintList is a paint list attribute. Mixed means the attribute differs
// across a multi-selection and no concrete list is available.
type PaintList struct {
	IsMixed bool
	Paints  []Paint
}

// Effect is a visual effect entry (shadow or blur).
type Effect struct {
	Type    string  `json:"type"`
	Visible *bool   `json:"visible,omitempty"`
	Color   *Color  `json:"color,omitempty"`
	Offset  *Vector `json:"offset,omitempty"`
	Radius  float64 `json:"radius,omitempty"`
	Spread  float64 `json:"spread,omitempty"`
}

// Effect type tags.
const (
	EffectDropShadow     = "DROP_SHADOW"
	EffectInnerShadow    = "INNER_SHADOW"
	EffectLayerBlur      = "LAYER_BLUR"
	EffectBackgroundBlur = "BACKGROUND_BLUR"
)

// IsShadow reports whether the effect is a drop or inner shadow.
func (e Effect) IsShadow() bool {
	return e.Type == EffectDropShadow || e.Type == EffectInnerShadow
}

// IsBlur reports whether the effect is a layer or background blur.
func (e Effect) IsBlur() bool {
	return e.Type == EffectLayerBlur || e.Type == EffectBackgroundBlur
}

// CornerRadius is a corner-radius attribute. When IsMixed is set, the
// per-corner values carry the breakdown and Radius is meaningless.
type CornerRadius struct {
	IsMixed     bool
	Radius      float64
	TopLeft     float64
	TopRight    float64
	BottomRight float64
	BottomLeft  float64
}

// Constraints is the layout-constraint pair.
type Constraints struct {
	Horizontal string `json:"horizontal"`
	Vertical   string `json:"vertical"`
}

// AutoLayout holds auto-layout parameters. Only present on a node when
// its layout mode is not "NONE".
type AutoLayout struct {
	Mode             string   `json:"layoutMode"`
	ItemSpacing      float64  `json:"itemSpacing"`
	CounterSpacing   *float64 `json:"counterAxisSpacing,omitempty"`
	PaddingTop       float64  `json:"paddingTop"`
	PaddingRight     float64  `json:"paddingRight"`
	PaddingBottom    float64  `json:"paddingBottom"`
	PaddingLeft      float64  `json:"paddingLeft"`
	PrimaryAxisAlign string   `json:"primaryAxisAlignItems"`
	CounterAxisAlign string   `json:"counterAxisAlignItems"`
	SizingHorizontal string   `json:"layoutSizingHorizontal,omitempty"`
	SizingVertical   string   `json:"layoutSizingVertical,omitempty"`
}

// FontName is a font family/style pair.
type FontName struct {
	Family string `json:"family"`
	Style  string `json:"style"`
}

// LineHeight units.
const (
	UnitAuto    = "AUTO"
	UnitPixels  = "PIXELS"
	UnitPercent = "PERCENT"
)

// LineHeight is a line-height value with its unit.
type LineHeight struct {
	Unit  string  `json:"unit"`
	Value float64 `json:"value,omitempty"`
}

// LetterSpacing is a letter-spacing value with its unit.
type LetterSpacing struct {
	Unit  string  `json:"unit"`
	Value float64 `json:"value,omitempty"`
}

// TextStyle holds the text attributes of a TEXT node. Any of the style
// fields may be mixed when the node spans multiple style runs.
type TextStyle struct {
	Characters    string
	FontSize      Mixed[float64]
	FontName      Mixed[FontName]
	LineHeight    Mixed[LineHeight]
	LetterSpacing Mixed[LetterSpacing]
	AlignH        string
	AlignV        string
	AutoResize    string
}

// ComponentMeta is the metadata of a main component, a standalone
// component, or a component set.
type ComponentMeta struct {
	Name        string
	Description string
	Remote      bool
	Key         string
	// SetName is the owning component set's name, empty when the
	// component is not part of a set.
	SetName string
}

// Node is the narrow read-only capability interface over a host scene
// node. Optional attributes report presence through their second return
// value; an absent attribute is not an error.
type Node interface {
	ID() string
	Name() string
	Type() NodeType
	Visible() bool
	Locked() bool

	Position() (x, y float64, ok bool)
	Size() (w, h float64, ok bool)
	Rotation() (float64, bool)
	Opacity() (float64, bool)
	BlendMode() (string, bool)

	Fills() (PaintList, bool)
	Strokes() (PaintList, bool)
	StrokeWeight() (Mixed[float64], bool)
	StrokeAlign() (string, bool)
	CornerRadius() (CornerRadius, bool)
	Effects() ([]Effect, bool)
	Constraints() (Constraints, bool)
	AutoLayout() (AutoLayout, bool)

	Text() (TextStyle, bool)

	// MainComponent resolves component metadata: for an instance the main
	// component, for a component or component set the node itself. The
	// second return is false for every other node type or when the lookup
	// fails.
	MainComponent() (ComponentMeta, bool)

	// VariantProperties returns the declared variant properties of an
	// instance, values coerced to strings. The lookup may fail; callers
	// are expected to treat an error as "absent".
	VariantProperties() (map[string]string, error)

	// Children returns the ordered child list. The second return is false
	// for leaf node types that cannot carry children.
	Children() ([]Node, bool)
}
