package session

import (
	"encoding/json"
	"strings"

	"github.com/nuckecy/sidekick/core/bridge"
)

// ============================================================================
// Placement Actions
// ============================================================================

const actionPlaceComponent = "place_component"

type replyAction struct {
	Type          string `json:"type"`
	ComponentName string `json:"componentName"`
	ComponentKey  string `json:"componentKey"`
	Variant       string `json:"variant"`
}

type actionReply struct {
	Response string       `json:"response"`
	Action   *replyAction `json:"action"`
}

// parseActionReply recognizes the structured reply shape the system prompt
// asks providers to emit when the user requests a component placement. It
// accepts the bare JSON object or the same object wrapped in a markdown
// code fence; anything else is treated as plain prose.
func parseActionReply(text string) (string, *bridge.PlaceComponentPayload, bool) {
	candidate := strings.TrimSpace(text)
	if fenced, ok := stripCodeFence(candidate); ok {
		candidate = fenced
	}

	if !strings.HasPrefix(candidate, "{") {
		return "", nil, false
	}

	var reply actionReply
	if err := json.Unmarshal([]byte(candidate), &reply); err != nil {
		return "", nil, false
	}

	if reply.Action == nil || reply.Action.Type != actionPlaceComponent {
		return "", nil, false
	}

	if reply.Action.ComponentName == "" || reply.Action.ComponentKey == "" {
		return "", nil, false
	}

	placement := &bridge.PlaceComponentPayload{
		ComponentName: reply.Action.ComponentName,
		ComponentKey:  reply.Action.ComponentKey,
		Variant:       reply.Action.Variant,
	}
	return reply.Response, placement, true
}

func stripCodeFence(text string) (string, bool) {
	if !strings.HasPrefix(text, "```") {
		return "", false
	}

	body := strings.TrimPrefix(text, "```")
	if idx := strings.Index(body, "\n"); idx >= 0 {
		// Drop the language tag line ("json" or empty).
		body = body[idx+1:]
	}

	body = strings.TrimSpace(body)
	body = strings.TrimSuffix(body, "```")
	return strings.TrimSpace(body), true
}
