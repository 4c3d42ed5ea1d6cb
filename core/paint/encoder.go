// Package paint converts paint and effect records into compact,
// JSON-safe encoded forms: uppercase hex colors, percentage opacities,
// and human-readable display strings. All functions are pure and total
// over the known type enumeration.
package paint

import (
	"fmt"
	"math"

	"github.com/nuckecy/sidekick/core/scene"
)

// EncodedPaint is the encoded form of a single fill or stroke entry.
// Color and Display are set only for solid paints.
type EncodedPaint struct {
	Type    string  `json:"type"`
	Visible bool    `json:"visible"`
	Opacity float64 `json:"opacity"`
	Color   string  `json:"color,omitempty"`
	Display string  `json:"display,omitempty"`
}

// EncodedEffect is the encoded form of a visual effect. Shadows carry
// color, opacity percentage, offset, radius and spread; blurs carry only
// a radius. Unknown effect types keep just the base fields.
type EncodedEffect struct {
	Type    string        `json:"type"`
	Visible bool          `json:"visible"`
	Color   string        `json:"color,omitempty"`
	Opacity *int          `json:"opacity,omitempty"`
	Offset  *scene.Vector `json:"offset,omitempty"`
	Radius  *float64      `json:"radius,omitempty"`
	Spread  *float64      `json:"spread,omitempty"`
}

// Hex converts a color to an uppercase "#RRGGBB" string. Each 0.0-1.0
// channel is rounded to the nearest 8-bit value.
func Hex(c scene.Color) string {
	to8 := func(v float64) int {
		return int(math.Round(v * 255))
	}
	return fmt.Sprintf("#%02X%02X%02X", to8(c.R), to8(c.G), to8(c.B))
}

// Paints encodes a paint-list attribute. A list that is mixed across the
// selection encodes as an empty list: heterogeneous paint sets are not
// represented.
func Paints(list scene.PaintList) []EncodedPaint {
	if list.IsMixed {
		return []EncodedPaint{}
	}
	out := make([]EncodedPaint, 0, len(list.Paints))
	for _, p := range list.Paints {
		out = append(out, One(p))
	}
	return out
}

// One encodes a single paint entry. Visibility defaults to true and
// opacity to 1 when the source record omits them.
func One(p scene.Paint) EncodedPaint {
	enc := EncodedPaint{
		Type:    p.Type,
		Visible: p.Visible == nil || *p.Visible,
		Opacity: 1,
	}
	if p.Opacity != nil {
		enc.Opacity = *p.Opacity
	}
	if p.Type == scene.SolidPaint && p.Color != nil {
		enc.Color = Hex(*p.Color)
		enc.Display = fmt.Sprintf("%s %d%%", enc.Color, int(math.Round(enc.Opacity*100)))
	}
	return enc
}

// Effects encodes an effect list.
func Effects(effects []scene.Effect) []EncodedEffect {
	out := make([]EncodedEffect, 0, len(effects))
	for _, e := range effects {
		out = append(out, Effect(e))
	}
	return out
}

// Effect encodes a single effect entry.
func Effect(e scene.Effect) EncodedEffect {
	enc := EncodedEffect{
		Type:    e.Type,
		Visible: e.Visible == nil || *e.Visible,
	}
	switch {
	case e.IsShadow():
		if e.Color != nil {
			enc.Color = Hex(*e.Color)
			alpha := 1.0
			if e.Color.A != nil {
				alpha = *e.Color.A
			}
			pct := int(math.Round(alpha * 100))
			enc.Opacity = &pct
		}
		if e.Offset != nil {
			offset := *e.Offset
			enc.Offset = &offset
		}
		radius := e.Radius
		spread := e.Spread
		enc.Radius = &radius
		enc.Spread = &spread
	case e.IsBlur():
		radius := e.Radius
		enc.Radius = &radius
	}
	return enc
}
