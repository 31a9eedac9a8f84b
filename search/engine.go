package search

import (
	"cmp"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/abiiranathan/docsearch/document"
)

const (
	// Maximum number of results returned by a search.
	MaxResults = 20

	// Maximum length of a plain excerpt in characters, before the ellipsis.
	ExcerptLength = 200

	// Number of follow-up query suggestions generated per search.
	MaxSuggestions = 5

	// Minimum term length. Shorter tokens are discarded as noise.
	minTermLength = 3
)

// Result is a single scored excerpt from a document page.
type Result struct {
	DocumentID   string  `json:"documentId"`
	DocumentName string  `json:"documentName"`
	PageNumber   int     `json:"pageNumber"` // 1-based
	Score        float64 `json:"score"`      // Relative ranking key only; not normalized to any range.
	Excerpt      string  `json:"excerpt"`
	Highlighted  string  `json:"highlighted"`
}

// Response carries the full outcome of one search call.
type Response struct {
	Query        string   `json:"query"`
	Results      []Result `json:"results"`
	TotalResults int      `json:"totalResults"`
	SearchTimeMs int64    `json:"searchTimeMs"`
	Suggestions  []string `json:"suggestions,omitempty"`
}

// Engine scores free-text queries against an in-memory document snapshot.
// No index is kept between calls: every query scans the current snapshot,
// so SetDocuments is O(1) and Search is O(total text size).
//
// The snapshot is replaced wholesale (copy-on-write), which makes concurrent
// searches against the same snapshot safe. Calling SetDocuments concurrently
// with a running search is not supported.
type Engine struct {
	docs []document.Document
}

func NewEngine() *Engine {
	return &Engine{}
}

// SetDocuments replaces the entire working set atomically. There are no
// partial updates and no merging with the previous snapshot.
func (e *Engine) SetDocuments(docs []document.Document) {
	e.docs = docs
}

// Documents returns the current snapshot. Callers must treat it as read-only.
func (e *Engine) Documents() []document.Document {
	return e.docs
}

// Search runs the query against the current snapshot and returns ranked,
// deduplicated excerpts. A degenerate query (empty, whitespace-only, or all
// tokens filtered out) yields an empty result set with zero elapsed time;
// it is never an error.
func (e *Engine) Search(query string) Response {
	resp := Response{Query: query, Results: []Result{}}

	terms := Tokenize(query)
	if len(terms) == 0 {
		return resp
	}

	start := time.Now()
	var results []Result
	for i := range e.docs {
		results = append(results, scoreDocument(&e.docs[i], terms)...)
	}

	// Highest score first. The sort is stable so that equal scores keep
	// document order, which makes repeated searches deterministic.
	slices.SortStableFunc(results, func(a, b Result) int {
		return cmp.Compare(b.Score, a.Score)
	})

	// Drop duplicate excerpts, keeping the first (best ranked) occurrence.
	seen := make(map[string]struct{}, len(results))
	deduped := results[:0]
	for _, r := range results {
		if _, exists := seen[r.Excerpt]; exists {
			continue
		}
		seen[r.Excerpt] = struct{}{}
		deduped = append(deduped, r)
	}
	results = deduped

	if len(results) > MaxResults {
		results = results[:MaxResults]
	}
	if results == nil {
		results = []Result{}
	}

	resp.Results = results
	resp.TotalResults = len(results)
	resp.SearchTimeMs = time.Since(start).Milliseconds()
	resp.Suggestions = Suggestions(results, query, MaxSuggestions)
	return resp
}

// scoreDocument produces one result per matching span in every section of
// the document. Documents without any text contribute nothing.
func scoreDocument(doc *document.Document, terms []string) []Result {
	var results []Result
	for _, section := range doc.SearchableSections() {
		sectionHits := CountHits(section.Content, terms)
		if sectionHits == 0 {
			continue
		}

		matched := false
		for _, span := range SplitSpans(section.Content) {
			hits := CountHits(span, terms)
			if hits == 0 {
				continue
			}
			matched = true
			results = append(results, makeResult(doc, section.PageNumber, span, hits, terms))
		}

		// The section matched but no single span did (matches straddling
		// span boundaries). Fall back to a fixed-length slice from the
		// start of the section.
		if !matched {
			span := strings.TrimSpace(firstRunes(section.Content, ExcerptLength))
			if span != "" {
				hits := CountHits(span, terms)
				results = append(results, makeResult(doc, section.PageNumber, span, hits, terms))
			}
		}
	}
	return results
}

func makeResult(doc *document.Document, page int, span string, hits int, terms []string) Result {
	excerpt := Excerpt(span, ExcerptLength)
	return Result{
		DocumentID:   doc.ID,
		DocumentName: doc.Name,
		PageNumber:   page,
		Score:        scoreSpan(hits, span),
		Excerpt:      excerpt,
		Highlighted:  Highlight(excerpt, terms),
	}
}

// scoreSpan computes the density score: term hits per span character, times
// 100. It rewards short, term-dense spans and is not bounded to [0, 100].
func scoreSpan(hits int, span string) float64 {
	n := utf8.RuneCountInString(span)
	if n == 0 {
		return 0
	}
	return float64(hits) / float64(n) * 100
}

// Tokenize splits a query on whitespace, lowercases the tokens and drops
// the ones too short to be meaningful search terms.
func Tokenize(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	terms := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= minTermLength {
			terms = append(terms, f)
		}
	}
	return terms
}

// CountHits sums the case-insensitive substring occurrences of every term
// in text.
func CountHits(text string, terms []string) int {
	lower := strings.ToLower(text)
	total := 0
	for _, t := range terms {
		total += strings.Count(lower, t)
	}
	return total
}

// SplitSpans breaks text into sentence-like spans on '.', '!' and '?'.
// Empty spans are dropped and the rest are whitespace-trimmed.
func SplitSpans(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	spans := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			spans = append(spans, p)
		}
	}
	return spans
}

// BestSpan returns the span of text with the most term hits, ties broken by
// first occurrence, along with its hit count. When no span contains a match
// it falls back to a fixed-length slice from the start of the text.
func BestSpan(text string, terms []string) (string, int) {
	best := ""
	bestHits := 0
	for _, span := range SplitSpans(text) {
		if hits := CountHits(span, terms); hits > bestHits {
			best, bestHits = span, hits
		}
	}
	if bestHits == 0 {
		best = strings.TrimSpace(firstRunes(text, ExcerptLength))
	}
	return best, bestHits
}

// Excerpt bounds s to max characters, appending an ellipsis when truncated.
func Excerpt(s string, max int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return firstRunes(s, max) + "..."
}

func firstRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
