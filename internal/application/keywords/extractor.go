package keywords

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// defaultStopWords is the fixed set of common function words excluded from
// keyword candidacy. The membership list is part of the search contract:
// keywords persisted by earlier deployments must keep matching, so do not
// edit it casually.
func defaultStopWords() map[string]struct{} {
	words := []string{
		"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for",
		"of", "with", "by", "from", "as", "is", "was", "are", "were", "been",
		"be", "have", "has", "had", "do", "does", "did", "will", "would",
		"should", "could", "can", "may", "might", "must", "shall", "this",
		"that", "these", "those", "i", "you", "he", "she", "it", "we", "they",
		"what", "which", "who", "when", "where", "why", "how", "all", "each",
		"every", "both", "few", "more", "most", "other", "some", "such", "no",
		"not", "only", "own", "same", "so", "than", "too", "very", "just",
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Extractor derives a fixed number of keywords from raw text by token
// frequency. It is deterministic and has no failure path: any input,
// including a degenerate one, yields exactly Limit keywords.
type Extractor struct {
	stopWords map[string]struct{}
	limit     int
	pad       string
}

// NewExtractor builds an extractor with the default stop-word set, a limit
// of three keywords, and "text" as the padding token.
func NewExtractor() *Extractor {
	return &Extractor{
		stopWords: defaultStopWords(),
		limit:     3,
		pad:       "text",
	}
}

// Extract returns the top keywords of text ordered by descending frequency.
// Tokens with equal frequency keep their first-occurrence order. When fewer
// distinct tokens survive filtering than the limit, the result is padded
// with the literal padding token, so short input can yield duplicates.
func (e *Extractor) Extract(text string) []string {
	counts := make(map[string]int)
	var order []string

	for _, tok := range tokenize(text) {
		if utf8.RuneCountInString(tok) <= 3 {
			continue
		}
		if _, stop := e.stopWords[tok]; stop {
			continue
		}
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}

	// Stable sort over the first-occurrence-ordered slice gives the
	// required tiebreak for free.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > e.limit {
		order = order[:e.limit]
	}
	for len(order) < e.limit {
		order = append(order, e.pad)
	}
	return order
}

// tokenize lowercases text, turns every non-word character into a space so
// adjacent words never merge, and splits on whitespace runs.
func tokenize(text string) []string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Fields(b.String())
}
