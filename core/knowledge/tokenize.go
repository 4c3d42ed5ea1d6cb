package knowledge

import (
	"regexp"
	"strings"
)

// nonWordPattern matches everything that is not a word character,
// whitespace, period, or hyphen. Periods survive so dotted criterion
// identifiers tokenize intact.
var nonWordPattern = regexp.MustCompile(`[^\w\s.-]`)

// stopwords are dropped during tokenization. The tail of the list is
// domain filler ("wcag", "criteria", ...) that appears in nearly every
// query and would otherwise dominate token scoring.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"a", "an", "the", "is", "are", "was", "were", "be", "been",
		"being", "have", "has", "had", "do", "does", "did", "will",
		"would", "could", "should", "may", "might", "shall", "can",
		"to", "of", "in", "for", "on", "with", "at", "by", "from",
		"as", "into", "about", "between", "through", "during", "before",
		"after", "above", "below", "and", "but", "or", "nor", "not",
		"so", "yet", "both", "either", "neither", "each", "every",
		"all", "any", "few", "more", "most", "other", "some", "such",
		"no", "only", "own", "same", "than", "too", "very", "just",
		"because", "if", "when", "where", "how", "what", "which",
		"who", "whom", "this", "that", "these", "those", "i", "me",
		"my", "we", "our", "you", "your", "it", "its", "they", "them",
		"their", "he", "she", "him", "her", "his",
		"tell", "explain", "describe", "show", "give", "need",
		"want", "know", "think", "help", "please", "thanks",
		"wcag", "accessibility", "requirement", "requirements",
		"guideline", "guidelines", "criterion", "criteria",
		"standard", "standards", "rule", "rules",
	} {
		stopwords[w] = struct{}{}
	}
}

// Tokenize lowercases the text, strips punctuation other than periods and
// hyphens, splits on whitespace, and drops single-character tokens and
// stopwords. A query made entirely of stopwords tokenizes to nil.
func Tokenize(text string) []string {
	cleaned := nonWordPattern.ReplaceAllString(strings.ToLower(text), " ")
	var tokens []string
	for _, t := range strings.Fields(cleaned) {
		if len(t) <= 1 {
			continue
		}
		if _, stop := stopwords[t]; stop {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens
}
