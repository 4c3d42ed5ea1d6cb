package knowledge

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// =============================================================================
// Matcher Configuration
// =============================================================================

// MatcherConfig configures result caps and caching for a Matcher.
type MatcherConfig struct {
	// MaxResults caps the result list when the caller does not supply a cap.
	MaxResults int

	// CacheSize is the number of query results kept in the LRU cache.
	// Zero disables caching.
	CacheSize int
}

// DefaultMatcherConfig returns the standard matcher configuration.
func DefaultMatcherConfig() MatcherConfig {
	return MatcherConfig{
		MaxResults: 5,
		CacheSize:  128,
	}
}

// Validate checks the configuration for usable values.
func (c MatcherConfig) Validate() error {
	if c.MaxResults <= 0 {
		return fmt.Errorf("matcher max results must be positive, got %d", c.MaxResults)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("matcher cache size must be non-negative, got %d", c.CacheSize)
	}
	return nil
}

// =============================================================================
// Matcher
// =============================================================================

// Result pairs a matched criterion with its relevance score.
type Result struct {
	Criterion *Criterion
	Score     int
}

// Stage scores. Each resolution stage assigns one fixed score; the stage
// ordering, not the score magnitude, decides which stage answers a query.
const (
	ScoreDirectRef = 100
	ScoreShortcut  = 80
	ScoreLevel     = 50
)

// Token-overlap weights for the fallback stage. A token can hit several
// buckets on the same entry; the contributions add.
const (
	weightRefID       = 15
	weightTitle       = 10
	weightDescription = 5
	weightNotes       = 3
)

var (
	// refPattern finds an optional "sc " or "wcag " prefix followed by a
	// dotted three-part identifier anywhere in a lowercased query.
	refPattern = regexp.MustCompile(`(?:sc\s*|wcag\s*)?(\d+\.\d+\.\d+)`)

	// levelPattern and levelSuffixPattern recognize conformance-level
	// queries like "level aa" and "aaa criteria".
	levelPattern       = regexp.MustCompile(`\blevel\s+(a{1,3})\b`)
	levelSuffixPattern = regexp.MustCompile(`\b(aaa|aa|a)\s+(?:criteria|requirements|level)\b`)
)

// Matcher ranks free-text queries against a criteria corpus using four
// layered strategies, trying each in order and stopping at the first that
// produces any result:
//
//  1. direct reference detection ("SC 1.4.3")
//  2. conformance-level filter ("level aa criteria")
//  3. curated shortcut phrases ("touch target"), longest phrase first
//  4. token-overlap scoring over title, description, and notes
//
// Matchers are safe for concurrent use; the corpus is read-only and the
// cache is internally synchronized.
type Matcher struct {
	corpus *Corpus
	config MatcherConfig
	cache  *lru.Cache[string, []Result]
}

// NewMatcher creates a matcher over the given corpus with the default
// configuration.
func NewMatcher(corpus *Corpus) (*Matcher, error) {
	return NewMatcherWithConfig(corpus, DefaultMatcherConfig())
}

// NewMatcherWithConfig creates a matcher with an explicit configuration.
func NewMatcherWithConfig(corpus *Corpus, config MatcherConfig) (*Matcher, error) {
	if corpus == nil {
		return nil, fmt.Errorf("matcher requires a corpus")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	m := &Matcher{corpus: corpus, config: config}
	if config.CacheSize > 0 {
		cache, err := lru.New[string, []Result](config.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create matcher cache: %w", err)
		}
		m.cache = cache
	}
	return m, nil
}

// Corpus returns the corpus the matcher ranks against.
func (m *Matcher) Corpus() *Corpus {
	return m.corpus
}

// Search returns up to maxResults criteria ranked for the query, highest
// score first. A non-positive maxResults uses the configured default. The
// first stage to produce any result wins; later stages never run.
func (m *Matcher) Search(query string, maxResults int) []Result {
	if maxResults <= 0 {
		maxResults = m.config.MaxResults
	}

	q := strings.ToLower(strings.TrimSpace(query))

	cacheKey := fmt.Sprintf("%s|%d", q, maxResults)
	if m.cache != nil {
		if cached, ok := m.cache.Get(cacheKey); ok {
			return cached
		}
	}

	results := m.resolve(q, query, maxResults)

	if m.cache != nil {
		m.cache.Add(cacheKey, results)
	}
	return results
}

func (m *Matcher) resolve(q, original string, maxResults int) []Result {
	if results := m.matchDirectRef(q); results != nil {
		return results
	}
	if results := m.matchLevel(q); results != nil {
		return results
	}
	if results := m.matchShortcut(q, maxResults); results != nil {
		return results
	}
	return m.scoreTokens(original, maxResults)
}

// matchDirectRef handles queries that name a criterion outright. A dotted
// identifier that is not in the corpus falls through to later stages.
func (m *Matcher) matchDirectRef(q string) []Result {
	match := refPattern.FindStringSubmatch(q)
	if match == nil {
		return nil
	}
	crit, ok := m.corpus.ByRef(match[1])
	if !ok {
		return nil
	}
	return []Result{{Criterion: crit, Score: ScoreDirectRef}}
}

// matchLevel returns every criterion at a named conformance level, in
// corpus order with no ranking inside the level.
func (m *Matcher) matchLevel(q string) []Result {
	match := levelPattern.FindStringSubmatch(q)
	if match == nil {
		match = levelSuffixPattern.FindStringSubmatch(q)
	}
	if match == nil {
		return nil
	}

	level := Level(strings.ToUpper(match[1]))
	criteria := m.corpus.AtLevel(level)
	if len(criteria) == 0 {
		return nil
	}

	results := make([]Result, len(criteria))
	for i, crit := range criteria {
		results[i] = Result{Criterion: crit, Score: ScoreLevel}
	}
	return results
}

// matchShortcut tries curated phrases longest-first against the query. The
// first phrase both contained in the query and resolving to at least one
// corpus entry wins; its criteria come back in the table's fixed order.
func (m *Matcher) matchShortcut(q string, maxResults int) []Result {
	for _, sc := range shortcutsByLength {
		if !strings.Contains(q, sc.phrase) {
			continue
		}
		var results []Result
		for _, refID := range sc.refs {
			if crit, ok := m.corpus.ByRef(refID); ok {
				results = append(results, Result{Criterion: crit, Score: ScoreShortcut})
			}
		}
		if len(results) > 0 {
			if len(results) > maxResults {
				results = results[:maxResults]
			}
			return results
		}
	}
	return nil
}

// scoreTokens is the fallback: additive token-overlap scoring across every
// corpus entry, keeping only positive scores, descending with corpus order
// preserved on ties.
func (m *Matcher) scoreTokens(query string, maxResults int) []Result {
	tokens := Tokenize(query)
	if len(tokens) == 0 {
		return nil
	}

	var scored []Result
	for i := range m.corpus.entries {
		crit := &m.corpus.entries[i]
		titleLower := strings.ToLower(crit.Title)
		descLower := strings.ToLower(crit.Description)
		notesLower := crit.notesText()

		score := 0
		for _, token := range tokens {
			if crit.RefID == token {
				score += weightRefID
			}
			if strings.Contains(titleLower, token) {
				score += weightTitle
			}
			if strings.Contains(descLower, token) {
				score += weightDescription
			}
			if notesLower != "" && strings.Contains(notesLower, token) {
				score += weightNotes
			}
		}
		if score > 0 {
			scored = append(scored, Result{Criterion: crit, Score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > maxResults {
		scored = scored[:maxResults]
	}
	return scored
}
