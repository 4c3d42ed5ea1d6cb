package snapshot

import (
	"encoding/json"

	"github.com/nuckecy/sidekick/core/paint"
	"github.com/nuckecy/sidekick/core/scene"
)

// MaxNodes is the default total-visit budget for a deep serialization.
const MaxNodes = 5000

// TruncationMarker signals that traversal stopped early because the
// node budget ran out, not because the real node had no children.
// Remaining counts only the immediate siblings that were still
// unprocessed when the budget was hit, not truncated descendants.
type TruncationMarker struct {
	Truncated bool `json:"_truncated"`
	Remaining int  `json:"_remaining,omitempty"`
}

// DeepNode is the full per-node record of the deep export view.
type DeepNode struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	Type          scene.NodeType        `json:"type"`
	Visible       bool                  `json:"visible"`
	Locked        bool                  `json:"locked"`
	X             *int                  `json:"x,omitempty"`
	Y             *int                  `json:"y,omitempty"`
	Width         *int                  `json:"width,omitempty"`
	Height        *int                  `json:"height,omitempty"`
	Rotation      *float64              `json:"rotation,omitempty"`
	Opacity       *float64              `json:"opacity,omitempty"`
	BlendMode     string                `json:"blendMode,omitempty"`
	Fills         []paint.EncodedPaint  `json:"fills,omitzero"`
	Strokes       []paint.EncodedPaint  `json:"strokes,omitzero"`
	StrokeWeight  *Scalar               `json:"strokeWeight,omitempty"`
	StrokeAlign   string                `json:"strokeAlign,omitempty"`
	Effects       []paint.EncodedEffect `json:"effects,omitzero"`
	CornerRadius  *Corners              `json:"cornerRadius,omitempty"`
	Constraints   *scene.Constraints    `json:"constraints,omitempty"`
	AutoLayout    *AutoLayoutBlock      `json:"autoLayout,omitempty"`
	Text          *TextBlock            `json:"text,omitempty"`
	ComponentInfo *ComponentInfo        `json:"componentInfo,omitempty"`
	Children      []DeepChild           `json:"children,omitzero"`
}

// DeepChild is one entry of a deep child list: either a real node record
// or a truncation marker.
type DeepChild struct {
	Node   *DeepNode
	Marker *TruncationMarker
}

func (c DeepChild) MarshalJSON() ([]byte, error) {
	if c.Marker != nil {
		return json.Marshal(c.Marker)
	}
	return json.Marshal(c.Node)
}

// Result is the outcome of a deep serialization: the tree, the number of
// real nodes present in it, and whether the budget was exhausted. The
// node count skips truncation markers, so it may undercount nodes the
// budget cut off.
type Result struct {
	Root      DeepChild
	NodeCount int
	Truncated bool
}

// Serialize builds the deep export view with the default node budget.
func Serialize(n scene.Node) *Result {
	return SerializeWithBudget(n, MaxNodes)
}

// SerializeWithBudget builds the deep export view, visiting at most
// budget nodes across the whole walk.
func SerializeWithBudget(n scene.Node, budget int) *Result {
	counter := NewCounter(budget)
	root := serializeDeep(n, counter)
	return &Result{
		Root:      root,
		NodeCount: CountNodes(root),
		Truncated: counter.Exhausted(),
	}
}

func serializeDeep(n scene.Node, counter *Counter) DeepChild {
	if counter.Exhausted() {
		return DeepChild{Marker: &TruncationMarker{Truncated: true}}
	}
	counter.Visit()

	node := &DeepNode{
		ID:      n.ID(),
		Name:    n.Name(),
		Type:    n.Type(),
		Visible: n.Visible(),
		Locked:  n.Locked(),
	}

	if x, y, ok := n.Position(); ok {
		xi, yi := roundInt(x), roundInt(y)
		node.X = &xi
		node.Y = &yi
	}
	if w, h, ok := n.Size(); ok {
		wi, hi := roundInt(w), roundInt(h)
		node.Width = &wi
		node.Height = &hi
	}
	if r, ok := n.Rotation(); ok {
		node.Rotation = &r
	}
	if op, ok := n.Opacity(); ok {
		node.Opacity = &op
	}
	if bm, ok := n.BlendMode(); ok {
		node.BlendMode = bm
	}

	if fills, ok := n.Fills(); ok {
		node.Fills = paint.Paints(fills)
	}
	if strokes, ok := n.Strokes(); ok {
		node.Strokes = paint.Paints(strokes)
	}
	if sw, ok := n.StrokeWeight(); ok {
		s := scalarOf(sw)
		node.StrokeWeight = &s
	}
	if sa, ok := n.StrokeAlign(); ok {
		node.StrokeAlign = sa
	}
	if effects, ok := n.Effects(); ok && len(effects) > 0 {
		node.Effects = paint.Effects(effects)
	}
	if cr, ok := n.CornerRadius(); ok {
		corners := cornersOf(cr)
		node.CornerRadius = &corners
	}
	if cons, ok := n.Constraints(); ok {
		node.Constraints = &cons
	}
	if al, ok := n.AutoLayout(); ok {
		node.AutoLayout = autoLayoutBlock(al, true)
	}
	if ts, ok := n.Text(); ok {
		node.Text = textBlock(ts, true)
	}
	node.ComponentInfo = componentInfo(n)

	if children, ok := n.Children(); ok {
		node.Children = []DeepChild{}
		for _, child := range children {
			if counter.Exhausted() {
				node.Children = append(node.Children, DeepChild{Marker: &TruncationMarker{
					Truncated: true,
					Remaining: len(children) - len(node.Children),
				}})
				break
			}
			node.Children = append(node.Children, serializeDeep(child, counter))
		}
	}

	return DeepChild{Node: node}
}

// CountNodes counts the real node records present in a serialized tree,
// skipping truncation markers.
func CountNodes(c DeepChild) int {
	if c.Node == nil {
		return 0
	}
	count := 1
	for _, child := range c.Node.Children {
		count += CountNodes(child)
	}
	return count
}
