package search

import (
	"regexp"
	"sort"
	"strings"
)

// Markers wrapped around matched terms in highlighted excerpts. They match
// the HTML element the UI renders, but callers are free to rewrite them.
const (
	MarkOpen  = "<mark>"
	MarkClose = "</mark>"
)

// Highlight wraps every case-insensitive occurrence of any term in text with
// the highlight markers. Terms are escaped before the pattern is built, so a
// term containing regex metacharacters matches literally instead of blowing
// up the query. The visible text is never altered, only wrapped.
func Highlight(text string, terms []string) string {
	re := termPattern(terms)
	if re == nil {
		return text
	}
	return re.ReplaceAllString(text, MarkOpen+"$0"+MarkClose)
}

// termPattern builds a single case-insensitive alternation over the escaped
// terms, longest first so that overlapping terms prefer the longer match.
func termPattern(terms []string) *regexp.Regexp {
	escaped := make([]string, 0, len(terms))
	for _, t := range terms {
		if t != "" {
			escaped = append(escaped, regexp.QuoteMeta(t))
		}
	}
	if len(escaped) == 0 {
		return nil
	}
	sort.Slice(escaped, func(i, j int) bool {
		return len(escaped[i]) > len(escaped[j])
	})

	re, err := regexp.Compile(`(?i)(` + strings.Join(escaped, "|") + `)`)
	if err != nil {
		// QuoteMeta makes this unreachable in practice; treat a bad
		// pattern as "nothing to highlight" rather than failing the query.
		return nil
	}
	return re
}
