package snapshot

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/nuckecy/sidekick/core/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func maxChildDepth(children []ChildSnapshot) int {
	deepest := 0
	for _, c := range children {
		if d := 1 + maxChildDepth(c.Children); d > deepest {
			deepest = d
		}
	}
	return deepest
}

func maxBreadth(children []ChildSnapshot) int {
	widest := len(children)
	for _, c := range children {
		if w := maxBreadth(c.Children); w > widest {
			widest = w
		}
	}
	return widest
}

func TestInspectDepthBound(t *testing.T) {
	root := deepTree(6, 2)
	snap := Inspect(root)

	assert.LessOrEqual(t, maxChildDepth(snap.Children), DefaultMaxDepth)
}

func TestInspectBreadthBound(t *testing.T) {
	wide := frame("root")
	for i := 0; i < 50; i++ {
		wide.children = append(wide.children, rect(fmt.Sprintf("r%d", i)))
	}
	snap := Inspect(wide)

	assert.Len(t, snap.Children, DefaultMaxPerLevel)
	// Original sibling order, no reordering.
	assert.Equal(t, "r0", snap.Children[0].ID)
	assert.Equal(t, "r19", snap.Children[19].ID)
}

func TestInspectDescendantCountIsUnbounded(t *testing.T) {
	// 5 levels of frames, 50 rects each: far more descendants than the
	// bounded children subtree can hold.
	root := deepTree(5, 50)
	snap := Inspect(root)

	emitted := 0
	var walk func([]ChildSnapshot)
	walk = func(children []ChildSnapshot) {
		for _, c := range children {
			emitted++
			walk(c.Children)
		}
	}
	walk(snap.Children)

	assert.Equal(t, CountDescendants(root), snap.DescendantCount)
	assert.Greater(t, snap.DescendantCount, emitted)
	assert.NotZero(t, snap.Timestamp)
}

func TestInspectRootEnrichment(t *testing.T) {
	mixedWeight := scene.MixedOf[float64]()
	node := &fakeNode{
		id:           "1:1",
		name:         "Card",
		nodeType:     scene.TypeFrame,
		width:        fp(375.4),
		height:       fp(199.6),
		opacity:      fp(0.9),
		strokeWeight: &mixedWeight,
		cornerRadius: &scene.CornerRadius{IsMixed: true, TopLeft: 4},
		autoLayout: &scene.AutoLayout{
			Mode:        "VERTICAL",
			ItemSpacing: 8,
			PaddingTop:  16,
		},
		isContainer: true,
	}

	snap := Inspect(node)
	assert.Equal(t, 375, snap.Width)
	assert.Equal(t, 200, snap.Height)
	assert.Equal(t, 0.9, snap.Opacity)

	raw, err := json.Marshal(snap)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "MIXED", decoded["strokeWeight"])
	assert.Equal(t, "MIXED", decoded["cornerRadius"])

	layout, ok := decoded["autoLayout"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "VERTICAL", layout["layoutMode"])
	// Shallow mode leaves the deep-only layout fields out.
	assert.NotContains(t, layout, "counterAxisSpacing")
	assert.NotContains(t, layout, "layoutSizingHorizontal")
}

func TestInspectAutoLayoutAbsentWhenModeNone(t *testing.T) {
	node := frame("1:2")
	snap := Inspect(node)
	assert.Nil(t, snap.AutoLayout)
}

func TestInspectTextBlockFormatting(t *testing.T) {
	tests := []struct {
		name       string
		style      scene.TextStyle
		wantFont   string
		wantLine   string
		wantLetter string
	}{
		{
			name: "concrete values",
			style: scene.TextStyle{
				Characters:    "Sign in",
				FontSize:      scene.Concrete(16.0),
				FontName:      scene.Concrete(scene.FontName{Family: "Inter", Style: "Medium"}),
				LineHeight:    scene.Concrete(scene.LineHeight{Unit: scene.UnitPixels, Value: 24}),
				LetterSpacing: scene.Concrete(scene.LetterSpacing{Unit: scene.UnitPercent, Value: 2}),
			},
			wantFont:   "Inter Medium",
			wantLine:   "24px",
			wantLetter: "2%",
		},
		{
			name: "auto line height",
			style: scene.TextStyle{
				LineHeight: scene.Concrete(scene.LineHeight{Unit: scene.UnitAuto}),
			},
			wantFont:   " ",
			wantLine:   "AUTO",
			wantLetter: "0px",
		},
		{
			name: "all mixed",
			style: scene.TextStyle{
				FontSize:      scene.MixedOf[float64](),
				FontName:      scene.MixedOf[scene.FontName](),
				LineHeight:    scene.MixedOf[scene.LineHeight](),
				LetterSpacing: scene.MixedOf[scene.LetterSpacing](),
			},
			wantFont:   "MIXED",
			wantLine:   "MIXED",
			wantLetter: "MIXED",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			style := tc.style
			node := &fakeNode{id: "t", nodeType: scene.TypeText, text: &style}
			snap := Inspect(node)

			require.NotNil(t, snap.TextProps)
			assert.Equal(t, tc.wantFont, snap.TextProps.FontName)
			assert.Equal(t, tc.wantLine, snap.TextProps.LineHeight)
			assert.Equal(t, tc.wantLetter, snap.TextProps.LetterSpacing)
		})
	}
}

func TestInspectChildCharactersAndFills(t *testing.T) {
	text := &fakeNode{
		id:       "t1",
		name:     "Label",
		nodeType: scene.TypeText,
		width:    fp(80),
		height:   fp(20),
		text:     &scene.TextStyle{Characters: "Submit"},
		fills: &scene.PaintList{Paints: []scene.Paint{
			{Type: scene.SolidPaint, Color: &scene.Color{R: 1}},
		}},
	}
	snap := Inspect(frame("root", text))

	require.Len(t, snap.Children, 1)
	child := snap.Children[0]
	assert.Equal(t, "Submit", child.Characters)
	require.Len(t, child.Fills, 1)
	assert.Equal(t, "#FF0000", child.Fills[0].Color)
	require.NotNil(t, child.Width)
	assert.Equal(t, 80, *child.Width)
}

func TestInspectComponentLookupFailureSwallowed(t *testing.T) {
	inst := &fakeNode{
		id:       "i1",
		name:     "Button",
		nodeType: scene.TypeInstance,
		component: &scene.ComponentMeta{
			Name:    "Button",
			Key:     "abc123",
			SetName: "Buttons",
		},
		variantFail: true,
		isContainer: true,
	}

	snap := Inspect(inst)
	require.NotNil(t, snap.ComponentInfo)
	assert.Equal(t, "Button", snap.ComponentInfo.ComponentName)
	assert.Equal(t, "Buttons", snap.ComponentInfo.ComponentSetName)
	assert.Nil(t, snap.ComponentInfo.VariantProperties)
}

func TestInspectNameFilter(t *testing.T) {
	root := frame("root",
		&fakeNode{id: "a", name: "Button/Primary", nodeType: scene.TypeInstance, isContainer: true},
		&fakeNode{id: "b", name: "Icon", nodeType: scene.TypeVector},
		&fakeNode{id: "c", name: "Button/Ghost", nodeType: scene.TypeInstance, isContainer: true},
	)

	snap := InspectWithOptions(root, InspectOptions{NameFilter: "Button/*"})
	require.Len(t, snap.Children, 2)
	assert.Equal(t, "a", snap.Children[0].ID)
	assert.Equal(t, "c", snap.Children[1].ID)
}

func TestInspectMixedFillsEncodeEmptyButPresent(t *testing.T) {
	node := frame("root")
	node.fills = &scene.PaintList{IsMixed: true}
	snap := Inspect(node)

	raw, err := json.Marshal(snap)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	fills, ok := decoded["fills"].([]any)
	require.True(t, ok, "mixed fills should still serialize as a list")
	assert.Empty(t, fills)
}
