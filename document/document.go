package document

import "strings"

// A page-scoped chunk of a document's extracted text.
type Section struct {
	PageNumber int    // 1-based page number as reported by the extractor.
	Content    string // Extracted text of the page.
	WordCount  int
	CharCount  int
}

// AnalysisStatus reports how much the extraction service managed to produce
// for a document.
type AnalysisStatus int

const (
	// Plain text only, no analysis ran or none was requested.
	AnalysisTextOnly AnalysisStatus = iota

	// Full extraction with page sections and statistics.
	AnalysisFull

	// The extraction service failed for this document.
	AnalysisFailed
)

func (s AnalysisStatus) String() string {
	switch s {
	case AnalysisFull:
		return "analyzed"
	case AnalysisFailed:
		return "failed"
	default:
		return "text-only"
	}
}

// Basic statistics reported by the analysis service.
type Stats struct {
	PageCount       int
	WordCount       int
	SentenceCount   int
	ParagraphCount  int
	AvgWordsPerPage float64
}

// Analysis is the outcome of running a document through the extraction
// service. Stats is only meaningful when Status is AnalysisFull and Err
// only when Status is AnalysisFailed.
type Analysis struct {
	Status AnalysisStatus
	Stats  Stats
	Err    string
}

// Document is a search target: an identifier, a display name and the
// extracted text split into page sections. Text is the flattened full
// text, used as a fallback when no sections exist.
type Document struct {
	ID       string
	Name     string
	Sections []Section
	Text     string
	Analysis Analysis
}

// HasText reports whether the document has any searchable content.
// A document without text is retained in the working set so that
// counts stay accurate, but it never contributes search results.
func (d *Document) HasText() bool {
	if strings.TrimSpace(d.Text) != "" {
		return true
	}
	for _, s := range d.Sections {
		if strings.TrimSpace(s.Content) != "" {
			return true
		}
	}
	return false
}

// SearchableSections returns the sections to score. When a document has no
// sections but carries flattened full text, a single pseudo-section on page 1
// is returned; without section metadata page 1 is the best attribution we
// can make.
func (d *Document) SearchableSections() []Section {
	if len(d.Sections) > 0 {
		return d.Sections
	}
	if strings.TrimSpace(d.Text) == "" {
		return nil
	}
	return []Section{{PageNumber: 1, Content: d.Text}}
}
