package snapshot

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/nuckecy/sidekick/core/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeSmallTreeFits(t *testing.T) {
	root := deepTree(3, 4)
	result := Serialize(root)

	assert.False(t, result.Truncated)
	require.NotNil(t, result.Root.Node)
	assert.Equal(t, 1+CountDescendants(root), result.NodeCount)
}

func TestSerializeBudgetNeverExceeded(t *testing.T) {
	wide := frame("root")
	for i := 0; i < 30; i++ {
		wide.children = append(wide.children, rect(fmt.Sprintf("r%d", i)))
	}

	result := SerializeWithBudget(wide, 10)
	assert.True(t, result.Truncated)
	// 10 visited: root plus 9 children.
	assert.Equal(t, 10, result.NodeCount)

	children := result.Root.Node.Children
	require.Len(t, children, 10)
	for i := 0; i < 9; i++ {
		require.NotNil(t, children[i].Node, "child %d should be a real node", i)
	}
	marker := children[9]
	require.NotNil(t, marker.Marker)
	assert.True(t, marker.Marker.Truncated)
	// 30 children total, 9 appended when the budget ran out.
	assert.Equal(t, 21, marker.Marker.Remaining)
}

func TestSerializeDeepChainTruncates(t *testing.T) {
	// A chain of nested frames deeper than the budget.
	var build func(depth int) *fakeNode
	build = func(depth int) *fakeNode {
		n := frame(fmt.Sprintf("f%d", depth))
		if depth > 1 {
			n.children = []scene.Node{build(depth - 1)}
		}
		return n
	}
	root := build(20)

	result := SerializeWithBudget(root, 5)
	assert.True(t, result.Truncated)
	assert.Equal(t, 5, result.NodeCount)

	// Walk to the truncation point: 5 real nodes, then a marker.
	depth := 0
	current := result.Root
	for current.Node != nil {
		depth++
		if len(current.Node.Children) == 0 {
			break
		}
		current = current.Node.Children[0]
	}
	assert.Equal(t, 5, depth)
	require.NotNil(t, current.Marker)
	assert.Equal(t, 1, current.Marker.Remaining)
}

func TestSerializeNodeCountSkipsMarkers(t *testing.T) {
	wide := frame("root")
	for i := 0; i < 10; i++ {
		wide.children = append(wide.children, rect(fmt.Sprintf("r%d", i)))
	}

	result := SerializeWithBudget(wide, 4)
	// Visited: root + 3 children; the marker is not counted.
	assert.Equal(t, 4, result.NodeCount)
}

func TestSerializeFullFieldSet(t *testing.T) {
	node := &fakeNode{
		id:        "2:1",
		name:      "Hero",
		nodeType:  scene.TypeFrame,
		locked:    true,
		x:         fp(12.3),
		y:         fp(-4.6),
		width:     fp(375),
		height:    fp(812),
		rotation:  fp(45),
		opacity:   fp(0.8),
		blendMode: "MULTIPLY",
		strokes: &scene.PaintList{Paints: []scene.Paint{
			{Type: scene.SolidPaint, Color: &scene.Color{B: 1}},
		}},
		strokeAlign: "INSIDE",
		effects: []scene.Effect{
			{Type: scene.EffectDropShadow, Color: &scene.Color{}, Offset: &scene.Vector{Y: 2}, Radius: 4},
		},
		cornerRadius: &scene.CornerRadius{IsMixed: true, TopLeft: 8, TopRight: 8},
		constraints:  &scene.Constraints{Horizontal: "MIN", Vertical: "STRETCH"},
		autoLayout: &scene.AutoLayout{
			Mode:             "HORIZONTAL",
			ItemSpacing:      8,
			CounterSpacing:   fp(4),
			SizingHorizontal: "HUG",
		},
		isContainer: true,
	}

	result := Serialize(node)
	dn := result.Root.Node
	require.NotNil(t, dn)

	assert.True(t, dn.Locked)
	require.NotNil(t, dn.X)
	assert.Equal(t, 12, *dn.X)
	require.NotNil(t, dn.Y)
	assert.Equal(t, -5, *dn.Y)
	require.NotNil(t, dn.Rotation)
	assert.Equal(t, 45.0, *dn.Rotation)
	assert.Equal(t, "MULTIPLY", dn.BlendMode)
	assert.Equal(t, "INSIDE", dn.StrokeAlign)
	require.Len(t, dn.Effects, 1)
	require.NotNil(t, dn.AutoLayout)
	require.NotNil(t, dn.AutoLayout.CounterSpacing)
	assert.Equal(t, "HUG", dn.AutoLayout.SizingHorizontal)

	raw, err := json.Marshal(result.Root)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	// Mixed corner radius serializes as the per-corner breakdown.
	corners, ok := decoded["cornerRadius"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 8.0, corners["topLeft"])
}

func TestSerializeEmptyEffectsOmitted(t *testing.T) {
	node := frame("root")
	node.effects = []scene.Effect{}
	result := Serialize(node)

	raw, err := json.Marshal(result.Root)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.NotContains(t, decoded, "effects")
}

func TestSerializeMarkerJSONShape(t *testing.T) {
	marker := DeepChild{Marker: &TruncationMarker{Truncated: true, Remaining: 7}}
	raw, err := json.Marshal(marker)
	require.NoError(t, err)
	assert.JSONEq(t, `{"_truncated":true,"_remaining":7}`, string(raw))
}

func TestSerializeVariantPropertiesOnInstance(t *testing.T) {
	inst := &fakeNode{
		id:       "i2",
		nodeType: scene.TypeInstance,
		component: &scene.ComponentMeta{
			Name: "Badge",
			Key:  "k1",
		},
		variants:    map[string]string{"Size": "sm", "Tone": "destructive"},
		isContainer: true,
	}

	result := Serialize(inst)
	info := result.Root.Node.ComponentInfo
	require.NotNil(t, info)
	assert.Equal(t, map[string]string{"Size": "sm", "Tone": "destructive"}, info.VariantProperties)
}
