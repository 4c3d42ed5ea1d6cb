package knowledge

import (
	_ "embed"
	"fmt"
	"strings"
)

//go:embed assets/system_prompt.md
var systemPromptBase string

// =============================================================================
// Prompt Assembly
// =============================================================================

// Prompt is an assembled generation request: the system instruction text
// plus the criteria the matcher found for the query, kept separately so the
// caller can render them as reference cards or fall back to them when the
// generation call fails.
type Prompt struct {
	System  string
	Matched []*Criterion
}

// SystemPromptBase returns the fixed instruction template without any
// query-specific context appended.
func SystemPromptBase() string {
	return strings.TrimRight(systemPromptBase, "\n")
}

// BuildPrompt runs the matcher on the query and assembles the system
// prompt. When criteria match, a flat context block listing each one is
// appended to the base template; otherwise the base template is returned
// unchanged. Deterministic for a fixed corpus and query, with no side
// effects beyond the matcher's cache.
//
// Selection context is deliberately not handled here: when the caller has
// a canvas selection, it prefixes the user-facing message (never the
// system prompt) with a one-line structural summary before the user text.
func (m *Matcher) BuildPrompt(query string) Prompt {
	results := m.Search(query, 0)

	base := SystemPromptBase()
	if len(results) == 0 {
		return Prompt{System: base}
	}

	matched := make([]*Criterion, len(results))
	blocks := make([]string, len(results))
	for i, r := range results {
		matched[i] = r.Criterion
		blocks[i] = r.Criterion.FormatContext()
	}

	system := fmt.Sprintf(
		"%s\n\nCONTEXT (relevant WCAG success criteria for this query):\n%s",
		base, strings.Join(blocks, "\n\n"),
	)
	return Prompt{System: system, Matched: matched}
}
