// Package knowledge holds the static WCAG success-criterion corpus and the
// layered query matcher that ranks free-text design questions against it.
package knowledge

import (
	"fmt"
	"strings"
)

// =============================================================================
// Criterion Types
// =============================================================================

// Level is a WCAG conformance level.
type Level string

const (
	LevelA   Level = "A"
	LevelAA  Level = "AA"
	LevelAAA Level = "AAA"
)

// SpecialCase is an exception or carve-out attached to a criterion.
type SpecialCase struct {
	Type        string `json:"type,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Note is a free-form annotation attached to a criterion.
type Note struct {
	Content string `json:"content"`
}

// Reference points at an external resource for a criterion.
type Reference struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Criterion is one numbered success criterion in the corpus. Records are
// immutable after load.
type Criterion struct {
	RefID        string        `json:"ref_id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	URL          string        `json:"url,omitempty"`
	Level        Level         `json:"level"`
	SpecialCases []SpecialCase `json:"special_cases,omitempty"`
	Notes        []Note        `json:"notes,omitempty"`
	References   []Reference   `json:"references,omitempty"`
}

// FormatContext renders the criterion as a flat context block for inclusion
// in a generation prompt: header line, description, then exceptions and
// notes joined with semicolons.
func (c *Criterion) FormatContext() string {
	var b strings.Builder
	fmt.Fprintf(&b, "SC %s - %s (Level %s)\n", c.RefID, c.Title, c.Level)
	b.WriteString(c.Description)

	if len(c.SpecialCases) > 0 {
		b.WriteString("\nExceptions: ")
		for i, sc := range c.SpecialCases {
			if i > 0 {
				b.WriteString("; ")
			}
			b.WriteString(sc.Title)
			b.WriteString(": ")
			b.WriteString(sc.Description)
		}
	}

	if len(c.Notes) > 0 {
		b.WriteString("\nNotes: ")
		for i, n := range c.Notes {
			if i > 0 {
				b.WriteString("; ")
			}
			b.WriteString(n.Content)
		}
	}

	return b.String()
}

// notesText returns the concatenated lowercased note contents, used by the
// token-overlap scoring stage.
func (c *Criterion) notesText() string {
	if len(c.Notes) == 0 {
		return ""
	}
	parts := make([]string, len(c.Notes))
	for i, n := range c.Notes {
		parts[i] = n.Content
	}
	return strings.ToLower(strings.Join(parts, " "))
}
