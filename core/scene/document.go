package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// mixedMarker is the wire sentinel used by scene documents for attributes
// that differ across a multi-selection.
const mixedMarker = "MIXED"

// Document is a scene tree loaded from a JSON export. It is the concrete
// stand-in for the host runtime's canvas: the CLI host serves selection
// and serialization requests from it.
type Document struct {
	Name      string        `json:"name"`
	Selection []string      `json:"selection,omitempty"`
	Root      *DocumentNode `json:"root"`
}

// ErrNoRoot indicates a document without a root node.
var ErrNoRoot = errors.New("scene document has no root node")

// LoadDocument reads and parses a scene document from disk.
func LoadDocument(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene document: %w", err)
	}
	return ParseDocument(raw)
}

// ParseDocument parses a scene document from raw JSON.
func ParseDocument(raw []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse scene document: %w", err)
	}
	if doc.Root == nil {
		return nil, ErrNoRoot
	}
	return &doc, nil
}

// FindByID walks the tree looking for a node with the given id.
func (d *Document) FindByID(id string) (*DocumentNode, bool) {
	return findByID(d.Root, id)
}

func findByID(n *DocumentNode, id string) (*DocumentNode, bool) {
	if n == nil {
		return nil, false
	}
	if n.NodeID == id {
		return n, true
	}
	for _, child := range n.ChildNodes {
		if found, ok := findByID(child, id); ok {
			return found, true
		}
	}
	return nil, false
}

// SelectedNodes resolves the document's selection ids to nodes, dropping
// ids that no longer exist. An empty selection list selects nothing.
func (d *Document) SelectedNodes() []*DocumentNode {
	var out []*DocumentNode
	for _, id := range d.Selection {
		if n, ok := d.FindByID(id); ok {
			out = append(out, n)
		}
	}
	return out
}

// mixedFloat unmarshals either a number or the "MIXED" sentinel.
type mixedFloat struct {
	Mixed bool
	Value float64
}

func (m *mixedFloat) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s != mixedMarker {
			return fmt.Errorf("unexpected string %q for numeric attribute", s)
		}
		m.Mixed = true
		return nil
	}
	return json.Unmarshal(raw, &m.Value)
}

// mixedFont unmarshals either a font name object or "MIXED".
type mixedFont struct {
	Mixed bool
	Value FontName
}

func (m *mixedFont) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		m.Mixed = s == mixedMarker
		return nil
	}
	return json.Unmarshal(raw, &m.Value)
}

// mixedLineHeight unmarshals either a line-height object or "MIXED".
type mixedLineHeight struct {
	Mixed bool
	Value LineHeight
}

func (m *mixedLineHeight) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		m.Mixed = s == mixedMarker
		return nil
	}
	return json.Unmarshal(raw, &m.Value)
}

// mixedLetterSpacing unmarshals either a letter-spacing object or "MIXED".
type mixedLetterSpacing struct {
	Mixed bool
	Value LetterSpacing
}

func (m *mixedLetterSpacing) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		m.Mixed = s == mixedMarker
		return nil
	}
	return json.Unmarshal(raw, &m.Value)
}

// docPaintList unmarshals either a paint array or "MIXED".
type docPaintList struct {
	Mixed  bool
	Paints []Paint
}

func (p *docPaintList) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		p.Mixed = s == mixedMarker
		return nil
	}
	return json.Unmarshal(raw, &p.Paints)
}

// docCornerRadius unmarshals a scalar radius or a per-corner object.
type docCornerRadius struct {
	CornerRadius
}

func (c *docCornerRadius) UnmarshalJSON(raw []byte) error {
	var scalar float64
	if err := json.Unmarshal(raw, &scalar); err == nil {
		c.Radius = scalar
		return nil
	}
	var corners struct {
		TopLeft     float64 `json:"topLeft"`
		TopRight    float64 `json:"topRight"`
		BottomRight float64 `json:"bottomRight"`
		BottomLeft  float64 `json:"bottomLeft"`
	}
	if err := json.Unmarshal(raw, &corners); err != nil {
		return err
	}
	c.IsMixed = true
	c.TopLeft = corners.TopLeft
	c.TopRight = corners.TopRight
	c.BottomRight = corners.BottomRight
	c.BottomLeft = corners.BottomLeft
	return nil
}

// docText is the wire shape of a text block.
type docText struct {
	Characters    string              `json:"characters"`
	FontSize      *mixedFloat         `json:"fontSize,omitempty"`
	FontName      *mixedFont          `json:"fontName,omitempty"`
	LineHeight    *mixedLineHeight    `json:"lineHeight,omitempty"`
	LetterSpacing *mixedLetterSpacing `json:"letterSpacing,omitempty"`
	AlignH        string              `json:"textAlignHorizontal,omitempty"`
	AlignV        string              `json:"textAlignVertical,omitempty"`
	AutoResize    string              `json:"textAutoResize,omitempty"`
}

// docComponent is the wire shape of resolved component metadata.
type docComponent struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Remote      bool   `json:"remote,omitempty"`
	Key         string `json:"key,omitempty"`
	SetName     string `json:"setName,omitempty"`
}

// DocumentNode is a scene node parsed from a document file. It implements
// the Node capability interface.
type DocumentNode struct {
	NodeID    string   `json:"id"`
	NodeName  string   `json:"name"`
	NodeType  NodeType `json:"type"`
	Invisible bool     `json:"invisible,omitempty"`
	IsLocked  bool     `json:"locked,omitempty"`

	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
	Rotate *float64 `json:"rotation,omitempty"`
	Alpha  *float64 `json:"opacity,omitempty"`
	Blend  string   `json:"blendMode,omitempty"`

	FillList    *docPaintList    `json:"fills,omitempty"`
	StrokeList  *docPaintList    `json:"strokes,omitempty"`
	StrokeW     *mixedFloat      `json:"strokeWeight,omitempty"`
	StrokeAl    string           `json:"strokeAlign,omitempty"`
	Corner      *docCornerRadius `json:"cornerRadius,omitempty"`
	EffectList  []Effect         `json:"effects,omitempty"`
	Constraint  *Constraints     `json:"constraints,omitempty"`
	Layout      *AutoLayout      `json:"layout,omitempty"`
	TextBlock   *docText         `json:"text,omitempty"`
	Component   *docComponent    `json:"component,omitempty"`
	VariantMap  map[string]any   `json:"variantProperties,omitempty"`
	VariantFail bool             `json:"variantLookupFails,omitempty"`

	ChildNodes []*DocumentNode `json:"children,omitempty"`

	// hasChildren records whether the children key appeared in the source
	// JSON at all, so empty containers keep their child list.
	hasChildren bool
}

// containerTypes can carry children even when the document omits the key.
var containerTypes = map[NodeType]bool{
	TypeDocument:     true,
	TypePage:         true,
	TypeFrame:        true,
	TypeGroup:        true,
	TypeSection:      true,
	TypeComponent:    true,
	TypeComponentSet: true,
	TypeInstance:     true,
	TypeBoolean:      true,
}

func (n *DocumentNode) UnmarshalJSON(raw []byte) error {
	type alias DocumentNode
	var a alias
	if err := json.Unmarshal(raw, &a); err != nil {
		return err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return err
	}
	*n = DocumentNode(a)
	_, n.hasChildren = keys["children"]
	return nil
}

func (n *DocumentNode) ID() string     { return n.NodeID }
func (n *DocumentNode) Name() string   { return n.NodeName }
func (n *DocumentNode) Type() NodeType { return n.NodeType }
func (n *DocumentNode) Visible() bool  { return !n.Invisible }
func (n *DocumentNode) Locked() bool   { return n.IsLocked }

func (n *DocumentNode) Position() (float64, float64, bool) {
	if n.X == nil || n.Y == nil {
		return 0, 0, false
	}
	return *n.X, *n.Y, true
}

func (n *DocumentNode) Size() (float64, float64, bool) {
	if n.Width == nil || n.Height == nil {
		return 0, 0, false
	}
	return *n.Width, *n.Height, true
}

func (n *DocumentNode) Rotation() (float64, bool) {
	if n.Rotate == nil {
		return 0, false
	}
	return *n.Rotate, true
}

func (n *DocumentNode) Opacity() (float64, bool) {
	if n.Alpha == nil {
		return 0, false
	}
	return *n.Alpha, true
}

func (n *DocumentNode) BlendMode() (string, bool) {
	return n.Blend, n.Blend != ""
}

func (n *DocumentNode) Fills() (PaintList, bool) {
	if n.FillList == nil {
		return PaintList{}, false
	}
	return PaintList{IsMixed: n.FillList.Mixed, Paints: n.FillList.Paints}, true
}

func (n *DocumentNode) Strokes() (PaintList, bool) {
	if n.StrokeList == nil {
		return PaintList{}, false
	}
	return PaintList{IsMixed: n.StrokeList.Mixed, Paints: n.StrokeList.Paints}, true
}

func (n *DocumentNode) StrokeWeight() (Mixed[float64], bool) {
	if n.StrokeW == nil {
		return Mixed[float64]{}, false
	}
	if n.StrokeW.Mixed {
		return MixedOf[float64](), true
	}
	return Concrete(n.StrokeW.Value), true
}

func (n *DocumentNode) StrokeAlign() (string, bool) {
	return n.StrokeAl, n.StrokeAl != ""
}

func (n *DocumentNode) CornerRadius() (CornerRadius, bool) {
	if n.Corner == nil {
		return CornerRadius{}, false
	}
	return n.Corner.CornerRadius, true
}

func (n *DocumentNode) Effects() ([]Effect, bool) {
	if n.EffectList == nil {
		return nil, false
	}
	return n.EffectList, true
}

func (n *DocumentNode) Constraints() (Constraints, bool) {
	if n.Constraint == nil {
		return Constraints{}, false
	}
	return *n.Constraint, true
}

func (n *DocumentNode) AutoLayout() (AutoLayout, bool) {
	if n.Layout == nil || n.Layout.Mode == "" || n.Layout.Mode == "NONE" {
		return AutoLayout{}, false
	}
	return *n.Layout, true
}

func (n *DocumentNode) Text() (TextStyle, bool) {
	if n.NodeType != TypeText || n.TextBlock == nil {
		return TextStyle{}, false
	}
	t := TextStyle{
		Characters: n.TextBlock.Characters,
		AlignH:     n.TextBlock.AlignH,
		AlignV:     n.TextBlock.AlignV,
		AutoResize: n.TextBlock.AutoResize,
	}
	if fs := n.TextBlock.FontSize; fs != nil {
		if fs.Mixed {
			t.FontSize = MixedOf[float64]()
		} else {
			t.FontSize = Concrete(fs.Value)
		}
	}
	if fn := n.TextBlock.FontName; fn != nil {
		if fn.Mixed {
			t.FontName = MixedOf[FontName]()
		} else {
			t.FontName = Concrete(fn.Value)
		}
	}
	if lh := n.TextBlock.LineHeight; lh != nil {
		if lh.Mixed {
			t.LineHeight = MixedOf[LineHeight]()
		} else {
			t.LineHeight = Concrete(lh.Value)
		}
	}
	if ls := n.TextBlock.LetterSpacing; ls != nil {
		if ls.Mixed {
			t.LetterSpacing = MixedOf[LetterSpacing]()
		} else {
			t.LetterSpacing = Concrete(ls.Value)
		}
	}
	return t, true
}

func (n *DocumentNode) MainComponent() (ComponentMeta, bool) {
	switch n.NodeType {
	case TypeInstance, TypeComponent, TypeComponentSet:
	default:
		return ComponentMeta{}, false
	}
	if n.Component == nil {
		return ComponentMeta{}, false
	}
	return ComponentMeta{
		Name:        n.Component.Name,
		Description: n.Component.Description,
		Remote:      n.Component.Remote,
		Key:         n.Component.Key,
		SetName:     n.Component.SetName,
	}, true
}

func (n *DocumentNode) VariantProperties() (map[string]string, error) {
	if n.VariantFail {
		return nil, fmt.Errorf("variant properties of %s: lookup failed", n.NodeID)
	}
	if len(n.VariantMap) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(n.VariantMap))
	for k, v := range n.VariantMap {
		out[k] = fmt.Sprint(v)
	}
	return out, nil
}

// SetComponent attaches component metadata to the node, used when the
// host places a new instance into the tree. The variant string is parsed
// as comma-separated "property=value" pairs.
func (n *DocumentNode) SetComponent(name, key, variant string) {
	n.Component = &docComponent{Name: name, Key: key}
	if variant == "" {
		return
	}
	props := make(map[string]any)
	for _, pair := range strings.Split(variant, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			continue
		}
		props[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	if len(props) > 0 {
		n.VariantMap = props
	}
}

func (n *DocumentNode) Children() ([]Node, bool) {
	if !n.hasChildren && !containerTypes[n.NodeType] {
		return nil, false
	}
	out := make([]Node, len(n.ChildNodes))
	for i, c := range n.ChildNodes {
		out[i] = c
	}
	return out, true
}
