package knowledge

import "sort"

// =============================================================================
// Shortcut Phrases
// =============================================================================

// shortcut maps one curated design-jargon phrase to an ordered list of
// criterion identifiers.
type shortcut struct {
	phrase string
	refs   []string
}

// shortcutTable maps the queries designers actually type straight to the
// most relevant criteria, bypassing token scoring. Declaration order is the
// tiebreaker between equal-length phrases.
var shortcutTable = []shortcut{
	{"contrast", []string{"1.4.3", "1.4.6", "1.4.11"}},
	{"color contrast", []string{"1.4.3", "1.4.6", "1.4.11"}},
	{"colour contrast", []string{"1.4.3", "1.4.6", "1.4.11"}},
	{"touch target", []string{"2.5.8", "2.5.5"}},
	{"target size", []string{"2.5.8", "2.5.5"}},
	{"tap target", []string{"2.5.8", "2.5.5"}},
	{"click target", []string{"2.5.8", "2.5.5"}},
	{"focus", []string{"2.4.7", "2.4.11", "2.4.13", "2.4.3"}},
	{"focus visible", []string{"2.4.7", "2.4.11", "2.4.13"}},
	{"focus indicator", []string{"2.4.7", "2.4.11", "2.4.13"}},
	{"keyboard", []string{"2.1.1", "2.1.2", "2.1.3", "2.4.7"}},
	{"alt text", []string{"1.1.1"}},
	{"alternative text", []string{"1.1.1"}},
	{"image description", []string{"1.1.1"}},
	{"heading", []string{"1.3.1", "2.4.6", "2.4.10"}},
	{"headings", []string{"1.3.1", "2.4.6", "2.4.10"}},
	{"form", []string{"1.3.5", "3.3.1", "3.3.2", "3.3.3", "3.3.4"}},
	{"label", []string{"1.3.1", "3.3.2", "2.5.3"}},
	{"error", []string{"3.3.1", "3.3.3", "3.3.4", "3.3.8"}},
	{"error message", []string{"3.3.1", "3.3.3"}},
	{"color", []string{"1.4.1", "1.4.3", "1.4.6", "1.4.11"}},
	{"animation", []string{"2.3.3", "2.2.2"}},
	{"motion", []string{"2.3.3", "2.2.2"}},
	{"reflow", []string{"1.4.10"}},
	{"responsive", []string{"1.4.10"}},
	{"zoom", []string{"1.4.4", "1.4.10"}},
	{"text size", []string{"1.4.4", "1.4.8"}},
	{"font size", []string{"1.4.4", "1.4.8"}},
	{"spacing", []string{"1.4.12"}},
	{"text spacing", []string{"1.4.12"}},
	{"link", []string{"2.4.4", "2.4.9"}},
	{"navigation", []string{"2.4.5", "3.2.3", "3.2.4"}},
	{"login", []string{"3.3.8", "3.3.9", "3.3.2", "3.3.1", "2.1.1"}},
	{"authentication", []string{"3.3.8", "3.3.9"}},
	{"drag", []string{"2.5.7"}},
	{"dragging", []string{"2.5.7"}},
	{"orientation", []string{"1.3.4"}},
	{"captions", []string{"1.2.2", "1.2.4"}},
	{"video", []string{"1.2.1", "1.2.2", "1.2.3", "1.2.5"}},
	{"audio", []string{"1.2.1", "1.2.2", "1.2.3", "1.4.2"}},
}

// shortcutsByLength holds the table sorted longest phrase first, so
// "color contrast" is tried before "contrast" and "color".
var shortcutsByLength = func() []shortcut {
	sorted := make([]shortcut, len(shortcutTable))
	copy(sorted, shortcutTable)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].phrase) > len(sorted[j].phrase)
	})
	return sorted
}()
