// Package session implements the conversation orchestrator: it owns the
// append-only chat transcript, runs each user turn through the meta-reply
// table, the criteria matcher, and the active generation provider, and
// degrades to keyword results when no provider is reachable.
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/nuckecy/sidekick/core/knowledge"
)

// ============================================================================
// Messages
// ============================================================================

// Role tags a transcript message as user- or bot-authored.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Message is one entry in the display transcript. Cards carry the matched
// criteria shown alongside a reply, both in AI mode and in keyword mode.
type Message struct {
	ID        string                 `json:"id"`
	Role      Role                   `json:"role"`
	Text      string                 `json:"text"`
	Cards     []*knowledge.Criterion `json:"cards,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func newMessage(role Role, text string, cards []*knowledge.Criterion) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		Cards:     cards,
		Timestamp: time.Now(),
	}
}
