package search

import (
	"regexp"
	"slices"
	"strings"

	"github.com/bbalet/stopwords"
)

// Words considered as suggestion candidates: alphanumeric, at least 4 chars.
var suggestionWord = regexp.MustCompile(`[a-zA-Z0-9]{4,}`)

// Suggestions proposes follow-up queries from the excerpts of a completed
// search. Candidate words are frequency-ranked, with stopwords and words
// already present in the original query excluded. An empty result set yields
// no suggestions.
func Suggestions(results []Result, query string, limit int) []string {
	if len(results) == 0 || limit <= 0 {
		return nil
	}

	queryWords := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(query)) {
		queryWords[w] = struct{}{}
	}

	freq := make(map[string]int)
	for _, r := range results {
		cleaned := stopwords.CleanString(r.Excerpt, "en", false)
		for _, word := range suggestionWord.FindAllString(strings.ToLower(cleaned), -1) {
			if _, inQuery := queryWords[word]; inQuery {
				continue
			}
			freq[word]++
		}
	}
	if len(freq) == 0 {
		return nil
	}

	words := make([]string, 0, len(freq))
	for w := range freq {
		words = append(words, w)
	}
	// Most frequent first; alphabetical among equals so the output is stable.
	slices.SortFunc(words, func(a, b string) int {
		if freq[a] != freq[b] {
			return freq[b] - freq[a]
		}
		return strings.Compare(a, b)
	})

	if len(words) > limit {
		words = words[:limit]
	}
	return words
}
