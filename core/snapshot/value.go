package snapshot

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/nuckecy/sidekick/core/scene"
)

// MixedSentinel is the string emitted in place of a concrete value when
// an attribute differs across a multi-selection.
const MixedSentinel = "MIXED"

// Scalar is a numeric snapshot field that may instead be the "MIXED"
// string sentinel.
type Scalar struct {
	IsMixed bool
	Value   float64
}

func (s Scalar) MarshalJSON() ([]byte, error) {
	if s.IsMixed {
		return json.Marshal(MixedSentinel)
	}
	return json.Marshal(s.Value)
}

func (s *Scalar) UnmarshalJSON(raw []byte) error {
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		s.IsMixed = str == MixedSentinel
		return nil
	}
	return json.Unmarshal(raw, &s.Value)
}

func scalarOf(m scene.Mixed[float64]) Scalar {
	if m.IsMixed {
		return Scalar{IsMixed: true}
	}
	return Scalar{Value: m.Value}
}

// Corners is a corner-radius snapshot field: a plain number when uniform,
// a per-corner breakdown object when mixed.
type Corners struct {
	IsMixed     bool
	Radius      float64
	TopLeft     float64 `json:"topLeft"`
	TopRight    float64 `json:"topRight"`
	BottomRight float64 `json:"bottomRight"`
	BottomLeft  float64 `json:"bottomLeft"`
}

func (c Corners) MarshalJSON() ([]byte, error) {
	if !c.IsMixed {
		return json.Marshal(c.Radius)
	}
	type corners struct {
		TopLeft     float64 `json:"topLeft"`
		TopRight    float64 `json:"topRight"`
		BottomRight float64 `json:"bottomRight"`
		BottomLeft  float64 `json:"bottomLeft"`
	}
	return json.Marshal(corners{c.TopLeft, c.TopRight, c.BottomRight, c.BottomLeft})
}

func cornersOf(cr scene.CornerRadius) Corners {
	return Corners{
		IsMixed:     cr.IsMixed,
		Radius:      cr.Radius,
		TopLeft:     cr.TopLeft,
		TopRight:    cr.TopRight,
		BottomRight: cr.BottomRight,
		BottomLeft:  cr.BottomLeft,
	}
}

// formatNumber renders a float without trailing zeros, matching how the
// host displays dimension values.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
