package snapshot

import (
	"github.com/nuckecy/sidekick/core/scene"
)

// TextBlock is the snapshot form of a TEXT node's style. Font name,
// line height and letter spacing are pre-formatted human-readable
// strings; each independently falls back to the "MIXED" sentinel.
type TextBlock struct {
	Characters    string `json:"characters"`
	FontSize      Scalar `json:"fontSize"`
	FontName      string `json:"fontName"`
	LineHeight    string `json:"lineHeight"`
	LetterSpacing string `json:"letterSpacing"`
	AlignH        string `json:"textAlignHorizontal,omitempty"`
	AlignV        string `json:"textAlignVertical,omitempty"`
	AutoResize    string `json:"textAutoResize,omitempty"`
}

func textBlock(ts scene.TextStyle, includeAutoResize bool) *TextBlock {
	block := &TextBlock{
		Characters: ts.Characters,
		FontSize:   scalarOf(ts.FontSize),
		AlignH:     ts.AlignH,
		AlignV:     ts.AlignV,
	}
	if includeAutoResize {
		block.AutoResize = ts.AutoResize
	}

	if ts.FontName.IsMixed {
		block.FontName = MixedSentinel
	} else {
		block.FontName = ts.FontName.Value.Family + " " + ts.FontName.Value.Style
	}

	switch {
	case ts.LineHeight.IsMixed:
		block.LineHeight = MixedSentinel
	case ts.LineHeight.Value.Unit == scene.UnitAuto:
		block.LineHeight = scene.UnitAuto
	case ts.LineHeight.Value.Unit == scene.UnitPercent:
		block.LineHeight = formatNumber(ts.LineHeight.Value.Value) + "%"
	default:
		block.LineHeight = formatNumber(ts.LineHeight.Value.Value) + "px"
	}

	switch {
	case ts.LetterSpacing.IsMixed:
		block.LetterSpacing = MixedSentinel
	case ts.LetterSpacing.Value.Unit == scene.UnitPercent:
		block.LetterSpacing = formatNumber(ts.LetterSpacing.Value.Value) + "%"
	default:
		block.LetterSpacing = formatNumber(ts.LetterSpacing.Value.Value) + "px"
	}

	return block
}

// AutoLayoutBlock is the snapshot form of auto-layout parameters.
// Counter-axis spacing and sizing are deep-mode fields.
type AutoLayoutBlock struct {
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

func autoLayoutBlock(al scene.AutoLayout, deep bool) *AutoLayoutBlock {
	block := &AutoLayoutBlock{
		Mode:             al.Mode,
		ItemSpacing:      al.ItemSpacing,
		PaddingTop:       al.PaddingTop,
		PaddingRight:     al.PaddingRight,
		PaddingBottom:    al.PaddingBottom,
		PaddingLeft:      al.PaddingLeft,
		PrimaryAxisAlign: al.PrimaryAxisAlign,
		CounterAxisAlign: al.CounterAxisAlign,
	}
	if deep {
		block.CounterSpacing = al.CounterSpacing
		block.SizingHorizontal = al.SizingHorizontal
		block.SizingVertical = al.SizingVertical
	}
	return block
}

// ComponentInfo is the snapshot form of component metadata, shared by
// both serialization modes.
type ComponentInfo struct {
	ComponentName     string            `json:"componentName"`
	Description       string            `json:"description"`
	IsRemote          bool              `json:"isRemote"`
	Key               string            `json:"key"`
	VariantProperties map[string]string `json:"variantProperties,omitempty"`
	ComponentSetName  string            `json:"componentSetName,omitempty"`
}

// componentInfo resolves the component-info block for a node, or nil
// when the node is not component-shaped or the main-component lookup
// fails. Variant-property lookup errors are swallowed: the block is
// emitted without variantProperties.
func componentInfo(n scene.Node) *ComponentInfo {
	meta, ok := n.MainComponent()
	if !ok {
		return nil
	}
	info := &ComponentInfo{
		ComponentName:    meta.Name,
		Description:      meta.Description,
		IsRemote:         meta.Remote,
		Key:              meta.Key,
		ComponentSetName: meta.SetName,
	}
	if n.Type() == scene.TypeInstance {
		if props, err := n.VariantProperties(); err == nil && len(props) > 0 {
			info.VariantProperties = props
		}
	}
	return info
}

// Counter is the shared node budget for a deep serialization walk. It is
// threaded through the whole recursive traversal; every visited node
// consumes one unit, and once exhausted only truncation markers are
// produced.
type Counter struct {
	visited int
	limit   int
}

// NewCounter returns a counter with the given budget.
func NewCounter(limit int) *Counter {
	return &Counter{limit: limit}
}

// Exhausted reports whether the budget is spent.
func (c *Counter) Exhausted() bool {
	return c.visited >= c.limit
}

// Visit consumes one unit of budget.
func (c *Counter) Visit() {
	c.visited++
}

// Visited returns how many nodes have been visited so far.
func (c *Counter) Visited() int {
	return c.visited
}
