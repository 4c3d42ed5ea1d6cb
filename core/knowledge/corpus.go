package knowledge

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed data/wcag22.json
var corpusData []byte

// =============================================================================
// Corpus
// =============================================================================

// Corpus is the fixed set of success criteria, loaded wholesale at startup
// and read-only afterwards. Iteration order is file order, which all
// tie-breaking in the matcher relies on.
type Corpus struct {
	entries []Criterion
	byRef   map[string]*Criterion
}

// NewCorpus loads the embedded WCAG 2.2 dataset.
func NewCorpus() (*Corpus, error) {
	return LoadCorpus(corpusData)
}

// LoadCorpus parses a criterion collection from raw JSON. Identifiers must
// be unique within the collection.
func LoadCorpus(data []byte) (*Corpus, error) {
	var entries []Criterion
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse criteria corpus: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("criteria corpus is empty")
	}

	byRef := make(map[string]*Criterion, len(entries))
	for i := range entries {
		c := &entries[i]
		if c.RefID == "" {
			return nil, fmt.Errorf("criterion at index %d has no ref_id", i)
		}
		if _, exists := byRef[c.RefID]; exists {
			return nil, fmt.Errorf("duplicate criterion ref_id %q", c.RefID)
		}
		byRef[c.RefID] = c
	}

	return &Corpus{entries: entries, byRef: byRef}, nil
}

// Len returns the number of criteria in the corpus.
func (c *Corpus) Len() int {
	return len(c.entries)
}

// All returns every criterion in corpus order. The returned slice aliases
// the corpus and must not be modified.
func (c *Corpus) All() []Criterion {
	return c.entries
}

// ByRef looks up a criterion by its dotted identifier.
func (c *Corpus) ByRef(refID string) (*Criterion, bool) {
	crit, ok := c.byRef[refID]
	return crit, ok
}

// AtLevel returns every criterion at exactly the given conformance level,
// in corpus order.
func (c *Corpus) AtLevel(level Level) []*Criterion {
	var out []*Criterion
	for i := range c.entries {
		if c.entries[i].Level == level {
			out = append(out, &c.entries[i])
		}
	}
	return out
}
