package snapshot

import (
	"fmt"

	"github.com/nuckecy/sidekick/core/scene"
)

// fakeNode is a scene.Node test double. Optional attributes are present
// only when their pointer field is set.
type fakeNode struct {
	id       string
	name     string
	nodeType scene.NodeType
	hidden   bool
	locked   bool

	x, y          *float64
	width, height *float64
	rotation      *float64
	opacity       *float64
	blendMode     string

	fills        *scene.PaintList
	strokes      *scene.PaintList
	strokeWeight *scene.Mixed[float64]
	strokeAlign  string
	cornerRadius *scene.CornerRadius
	effects      []scene.Effect
	constraints  *scene.Constraints
	autoLayout   *scene.AutoLayout
	text         *scene.TextStyle

	component   *scene.ComponentMeta
	variants    map[string]string
	variantFail bool

	children    []scene.Node
	isContainer bool
}

func (f *fakeNode) ID() string           { return f.id }
func (f *fakeNode) Name() string         { return f.name }
func (f *fakeNode) Type() scene.NodeType { return f.nodeType }
func (f *fakeNode) Visible() bool        { return !f.hidden }
func (f *fakeNode) Locked() bool         { return f.locked }

func (f *fakeNode) Position() (float64, float64, bool) {
	if f.x == nil || f.y == nil {
		return 0, 0, false
	}
	return *f.x, *f.y, true
}

func (f *fakeNode) Size() (float64, float64, bool) {
	if f.width == nil || f.height == nil {
		return 0, 0, false
	}
	return *f.width, *f.height, true
}

func (f *fakeNode) Rotation() (float64, bool) {
	if f.rotation == nil {
		return 0, false
	}
	return *f.rotation, true
}

func (f *fakeNode) Opacity() (float64, bool) {
	if f.opacity == nil {
		return 0, false
	}
	return *f.opacity, true
}

func (f *fakeNode) BlendMode() (string, bool) {
	return f.blendMode, f.blendMode != ""
}

func (f *fakeNode) Fills() (scene.PaintList, bool) {
	if f.fills == nil {
		return scene.PaintList{}, false
	}
	return *f.fills, true
}

func (f *fakeNode) Strokes() (scene.PaintList, bool) {
	if f.strokes == nil {
		return scene.PaintList{}, false
	}
	return *f.strokes, true
}

func (f *fakeNode) StrokeWeight() (scene.Mixed[float64], bool) {
	if f.strokeWeight == nil {
		return scene.Mixed[float64]{}, false
	}
	return *f.strokeWeight, true
}

func (f *fakeNode) StrokeAlign() (string, bool) {
	return f.strokeAlign, f.strokeAlign != ""
}

func (f *fakeNode) CornerRadius() (scene.CornerRadius, bool) {
	if f.cornerRadius == nil {
		return scene.CornerRadius{}, false
	}
	return *f.cornerRadius, true
}

func (f *fakeNode) Effects() ([]scene.Effect, bool) {
	return f.effects, f.effects != nil
}

func (f *fakeNode) Constraints() (scene.Constraints, bool) {
	if f.constraints == nil {
		return scene.Constraints{}, false
	}
	return *f.constraints, true
}

func (f *fakeNode) AutoLayout() (scene.AutoLayout, bool) {
	if f.autoLayout == nil {
		return scene.AutoLayout{}, false
	}
	return *f.autoLayout, true
}

func (f *fakeNode) Text() (scene.TextStyle, bool) {
	if f.text == nil {
		return scene.TextStyle{}, false
	}
	return *f.text, true
}

func (f *fakeNode) MainComponent() (scene.ComponentMeta, bool) {
	if f.component == nil {
		return scene.ComponentMeta{}, false
	}
	return *f.component, true
}

func (f *fakeNode) VariantProperties() (map[string]string, error) {
	if f.variantFail {
		return nil, fmt.Errorf("variant lookup failed for %s", f.id)
	}
	return f.variants, nil
}

func (f *fakeNode) Children() ([]scene.Node, bool) {
	if !f.isContainer && f.children == nil {
		return nil, false
	}
	return f.children, true
}

func fp(v float64) *float64 { return &v }

// frame builds a sized container node.
func frame(id string, children ...scene.Node) *fakeNode {
	return &fakeNode{
		id:          id,
		name:        "Frame " + id,
		nodeType:    scene.TypeFrame,
		width:       fp(100),
		height:      fp(50),
		children:    children,
		isContainer: true,
	}
}

// rect builds a sized leaf node.
func rect(id string) *fakeNode {
	return &fakeNode{
		id:       id,
		name:     "Rect " + id,
		nodeType: scene.TypeRectangle,
		width:    fp(10),
		height:   fp(10),
	}
}

// deepTree builds a chain of frames depth levels tall with width leaf
// children at every level.
func deepTree(depth, width int) *fakeNode {
	node := frame(fmt.Sprintf("d%d", depth))
	for i := 0; i < width; i++ {
		node.children = append(node.children, rect(fmt.Sprintf("d%d-r%d", depth, i)))
	}
	if depth > 1 {
		node.children = append(node.children, deepTree(depth-1, width))
	}
	return node
}
