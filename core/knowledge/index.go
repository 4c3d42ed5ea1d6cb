package knowledge

import (
	"fmt"

	"github.com/blevesearch/bleve/v2"
)

// =============================================================================
// Full-Text Index
// =============================================================================

// indexDocument is the flattened form of a criterion stored in the
// full-text index.
type indexDocument struct {
	RefID       string `json:"ref_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Level       string `json:"level"`
	Notes       string `json:"notes"`
}

// Index is an in-memory full-text index over the corpus. It complements
// the layered matcher for exploratory queries where analyzed, fuzzy-ish
// full-text retrieval is more useful than the matcher's fixed heuristics.
type Index struct {
	corpus *Corpus
	index  bleve.Index
}

// NewIndex builds a memory-only full-text index over every corpus entry.
func NewIndex(corpus *Corpus) (*Index, error) {
	if corpus == nil {
		return nil, fmt.Errorf("index requires a corpus")
	}

	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create full-text index: %w", err)
	}

	batch := idx.NewBatch()
	for _, crit := range corpus.All() {
		doc := indexDocument{
			RefID:       crit.RefID,
			Title:       crit.Title,
			Description: crit.Description,
			Level:       string(crit.Level),
		}
		if len(crit.Notes) > 0 {
			parts := make([]string, len(crit.Notes))
			for i, n := range crit.Notes {
				parts[i] = n.Content
			}
			for _, p := range parts {
				if doc.Notes != "" {
					doc.Notes += " "
				}
				doc.Notes += p
			}
		}
		if err := batch.Index(crit.RefID, doc); err != nil {
			return nil, fmt.Errorf("failed to index criterion %s: %w", crit.RefID, err)
		}
	}
	if err := idx.Batch(batch); err != nil {
		return nil, fmt.Errorf("failed to commit index batch: %w", err)
	}

	return &Index{corpus: corpus, index: idx}, nil
}

// Query runs a query-string search and returns matching criteria in
// relevance order, capped at limit.
func (ix *Index) Query(query string, limit int) ([]*Criterion, error) {
	if limit <= 0 {
		limit = 10
	}

	q := bleve.NewQueryStringQuery(query)
	req := bleve.NewSearchRequestOptions(q, limit, 0, false)
	res, err := ix.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("full-text search failed: %w", err)
	}

	var out []*Criterion
	for _, hit := range res.Hits {
		if crit, ok := ix.corpus.ByRef(hit.ID); ok {
			out = append(out, crit)
		}
	}
	return out, nil
}

// Close releases the index resources.
func (ix *Index) Close() error {
	return ix.index.Close()
}
