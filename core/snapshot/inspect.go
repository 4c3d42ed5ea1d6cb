// Package snapshot walks host scene nodes into bounded, JSON-safe
// structural records. Two modes share one field policy but different
// bounds: the shallow inspect view caps depth and per-level breadth,
// while the deep export view caps only the total number of visited
// nodes. Snapshots are built fresh per request and never persisted.
package snapshot

import (
	"time"

	"github.com/gobwas/glob"
	"github.com/nuckecy/sidekick/core/paint"
	"github.com/nuckecy/sidekick/core/scene"
)

// Shallow traversal bounds.
const (
	DefaultMaxDepth    = 3
	DefaultMaxPerLevel = 20
)

// InspectOptions tunes the shallow walk. Zero values fall back to the
// defaults; NameFilter, when set, is a glob matched against child names
// before the per-level cap is applied.
type InspectOptions struct {
	MaxDepth    int
	MaxPerLevel int
	NameFilter  string
}

// ChildSnapshot is the reduced per-node record emitted for descendants
// in the shallow view.
type ChildSnapshot struct {
	ID         string               `json:"id"`
	Name       string               `json:"name"`
	Type       scene.NodeType       `json:"type"`
	Visible    bool                 `json:"visible"`
	Width      *int                 `json:"width,omitempty"`
	Height     *int                 `json:"height,omitempty"`
	Characters string               `json:"characters,omitempty"`
	Fills      []paint.EncodedPaint `json:"fills,omitzero"`
	Children   []ChildSnapshot      `json:"children,omitzero"`
}

// InspectSnapshot is the enriched root record of the shallow view.
type InspectSnapshot struct {
	ID              string               `json:"id"`
	Name            string               `json:"name"`
	Type            scene.NodeType       `json:"type"`
	Width           int                  `json:"width"`
	Height          int                  `json:"height"`
	Opacity         float64              `json:"opacity"`
	Visible         bool                 `json:"visible"`
	DescendantCount int                  `json:"descendantCount"`
	Timestamp       int64                `json:"timestamp"`
	AdditionalCount int                  `json:"additionalCount,omitempty"`
	Fills           []paint.EncodedPaint `json:"fills,omitzero"`
	Strokes         []paint.EncodedPaint `json:"strokes,omitzero"`
	StrokeWeight    *Scalar              `json:"strokeWeight,omitempty"`
	CornerRadius    *Scalar              `json:"cornerRadius,omitempty"`
	AutoLayout      *AutoLayoutBlock     `json:"autoLayout,omitempty"`
	TextProps       *TextBlock           `json:"textProps,omitempty"`
	ComponentInfo   *ComponentInfo       `json:"componentInfo,omitempty"`
	Children        []ChildSnapshot      `json:"children,omitzero"`
}

// Inspect builds the shallow view of a node with default bounds.
func Inspect(n scene.Node) *InspectSnapshot {
	return InspectWithOptions(n, InspectOptions{})
}

// InspectWithOptions builds the shallow view with explicit bounds.
func InspectWithOptions(n scene.Node, opts InspectOptions) *InspectSnapshot {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.MaxPerLevel <= 0 {
		opts.MaxPerLevel = DefaultMaxPerLevel
	}
	var matcher glob.Glob
	if opts.NameFilter != "" {
		if g, err := glob.Compile(opts.NameFilter); err == nil {
			matcher = g
		}
	}

	snap := &InspectSnapshot{
		ID:              n.ID(),
		Name:            n.Name(),
		Type:            n.Type(),
		Opacity:         1,
		Visible:         n.Visible(),
		DescendantCount: CountDescendants(n),
		Timestamp:       time.Now().UnixMilli(),
	}
	if w, h, ok := n.Size(); ok {
		snap.Width = roundInt(w)
		snap.Height = roundInt(h)
	}
	if op, ok := n.Opacity(); ok {
		snap.Opacity = op
	}

	if fills, ok := n.Fills(); ok {
		snap.Fills = paint.Paints(fills)
	}
	if strokes, ok := n.Strokes(); ok {
		snap.Strokes = paint.Paints(strokes)
	}
	if sw, ok := n.StrokeWeight(); ok {
		s := scalarOf(sw)
		snap.StrokeWeight = &s
	}
	if cr, ok := n.CornerRadius(); ok {
		s := Scalar{IsMixed: cr.IsMixed, Value: cr.Radius}
		snap.CornerRadius = &s
	}
	if al, ok := n.AutoLayout(); ok {
		snap.AutoLayout = autoLayoutBlock(al, false)
	}
	if ts, ok := n.Text(); ok {
		snap.TextProps = textBlock(ts, false)
	}
	snap.ComponentInfo = componentInfo(n)

	if children, ok := n.Children(); ok {
		snap.Children = serializeChildren(children, 0, opts, matcher)
	}

	return snap
}

// serializeChildren emits the bounded child subtree. At or beyond the
// depth bound it stops descending with an empty list; extra siblings
// past the per-level cap are dropped without a marker.
func serializeChildren(children []scene.Node, depth int, opts InspectOptions, matcher glob.Glob) []ChildSnapshot {
	out := []ChildSnapshot{}
	if depth >= opts.MaxDepth {
		return out
	}
	for _, child := range children {
		if matcher != nil && !matcher.Match(child.Name()) {
			continue
		}
		if len(out) >= opts.MaxPerLevel {
			break
		}
		entry := ChildSnapshot{
			ID:      child.ID(),
			Name:    child.Name(),
			Type:    child.Type(),
			Visible: child.Visible(),
		}
		if w, h, ok := child.Size(); ok {
			wi, hi := roundInt(w), roundInt(h)
			entry.Width = &wi
			entry.Height = &hi
		}
		if ts, ok := child.Text(); ok {
			entry.Characters = ts.Characters
		}
		if fills, ok := child.Fills(); ok {
			entry.Fills = paint.Paints(fills)
		}
		if grand, ok := child.Children(); ok {
			entry.Children = serializeChildren(grand, depth+1, opts, matcher)
		}
		out = append(out, entry)
	}
	return out
}

// CountDescendants returns the true total descendant count of a node,
// independent of any traversal bound.
func CountDescendants(n scene.Node) int {
	count := 0
	if children, ok := n.Children(); ok {
		for _, child := range children {
			count += 1 + CountDescendants(child)
		}
	}
	return count
}
