package session

// ============================================================================
// Canned Replies
// ============================================================================

const helpReply = "I can help with:\n" +
	"- **WCAG success criteria** — Ask about any SC by number or topic\n" +
	"- **Contrast requirements** — Minimum ratios for text and UI\n" +
	"- **Touch targets** — Minimum sizes for interactive elements\n" +
	"- **Focus indicators** — Visibility requirements\n" +
	"- **Form accessibility** — Labels, errors, and inputs\n" +
	"- **Keyboard navigation** — Requirements for keyboard users\n\n" +
	"Try asking: \"What are the contrast requirements?\" or \"Tell me about SC 1.4.3\""

const greetingReply = "Hi! I'm System Sidekick, your WCAG 2.2 accessibility assistant. " +
	"Ask me about contrast ratios, touch targets, focus indicators, form accessibility, " +
	"or any WCAG success criterion."

// metaReplies maps whole lowercased queries to hardcoded responses, so
// greetings and "help" never burn a generation request.
var metaReplies = map[string]string{
	"hello":           greetingReply,
	"hi":              greetingReply,
	"hey":             "Hey! I'm your WCAG 2.2 accessibility assistant. What accessibility question can I help with?",
	"help":            helpReply,
	"what can you do": helpReply,
}

// Suggestion is a preset query offered to the user before they type.
type Suggestion struct {
	Label string
	Query string
}

// Suggestions returns the starter queries in display order.
func Suggestions() []Suggestion {
	return []Suggestion{
		{Label: "Find a component", Query: "Contrast requirements"},
		{Label: "Check accessibility", Query: "Focus indicators"},
		{Label: "Get token values", Query: "Touch target sizes"},
		{Label: "Usage guidelines", Query: "Form accessibility"},
	}
}
