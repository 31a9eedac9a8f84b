// Package chat answers natural-language questions by retrieving the most
// relevant passages from the current document snapshot and synthesizing a
// templated answer with clickable reference markers.
//
// The answer text is a stand-in for a real generation step. The contract
// (question + ranked references in, answer text + markers out) is the seam
// where a real backend can be substituted.
package chat

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/abiiranathan/docsearch/document"
	"github.com/abiiranathan/docsearch/refs"
	"github.com/abiiranathan/docsearch/search"
	"github.com/google/uuid"
)

const (
	// Maximum number of references grounding one answer.
	MaxReferences = 5

	// Maximum length of the surrounding-context string, before the ellipsis.
	ContextLength = 500

	// NoAnswerFallback is the literal answer returned when no document
	// contains anything relevant to the question.
	NoAnswerFallback = "I couldn't find relevant information about that in the uploaded documents. Try rephrasing your question or asking about a different topic."
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Reference is a passage that grounded an answer.
type Reference struct {
	DocumentID   string  `json:"documentId"`
	DocumentName string  `json:"documentName"`
	PageNumber   int     `json:"pageNumber"`
	Confidence   float64 `json:"confidence"` // 0-100, relative to the number of query terms.
	Excerpt      string  `json:"excerpt"`
	Context      string  `json:"context"` // Longer surrounding text for expandable views.
}

// Message is one entry in a conversation.
type Message struct {
	ID         string      `json:"id"`
	Role       Role        `json:"role"`
	Content    string      `json:"content"`
	CreatedAt  time.Time   `json:"createdAt"`
	References []Reference `json:"references,omitempty"` // Assistant messages only.
}

// Answer is the result of one AskQuestion call.
type Answer struct {
	Message          Message     `json:"message"`
	References       []Reference `json:"references"`
	RelatedQuestions []string    `json:"relatedQuestions,omitempty"`
}

// Assistant retrieves relevant passages for conversational questions and
// keeps the append-only history of one conversation. Construct one per
// session; there is no shared state between instances.
type Assistant struct {
	engine  *search.Engine
	history []Message
}

// NewAssistant wraps the given engine. The engine's document snapshot is
// shared: replacing it through SetDocuments affects subsequent questions
// but never clears the conversation history.
func NewAssistant(engine *search.Engine) *Assistant {
	return &Assistant{engine: engine}
}

// SetDocuments replaces the snapshot questions are answered from.
func (a *Assistant) SetDocuments(docs []document.Document) {
	a.engine.SetDocuments(docs)
}

// History returns a copy of the conversation so far.
func (a *Assistant) History() []Message {
	return slices.Clone(a.history)
}

// ClearHistory resets the conversation to empty.
func (a *Assistant) ClearHistory() {
	a.history = nil
}

// AskQuestion records the question, retrieves the most relevant passages
// across all documents and synthesizes an answer embedding one reference
// marker per passage. A question that matches nothing produces the fallback
// answer with zero references; it is never an error and never corrupts the
// history or the snapshot.
func (a *Assistant) AskQuestion(question string) Answer {
	a.append(Message{
		ID:        uuid.NewString(),
		Role:      RoleUser,
		Content:   question,
		CreatedAt: time.Now(),
	})

	references := a.retrieve(question)

	var content string
	var related []string
	if len(references) == 0 {
		content = NoAnswerFallback
	} else {
		content = composeAnswer(references)
		related = RelatedQuestions(question, references, 3)
	}

	msg := Message{
		ID:         uuid.NewString(),
		Role:       RoleAssistant,
		Content:    content,
		CreatedAt:  time.Now(),
		References: references,
	}
	a.append(msg)

	return Answer{Message: msg, References: references, RelatedQuestions: related}
}

func (a *Assistant) append(msg Message) {
	a.history = append(a.history, msg)
}

// retrieve finds the best sentence of every matching section and keeps the
// top passages by confidence. Confidence is the raw term-hit count of the
// best sentence relative to the number of query terms; unlike search scores
// it is not normalized by span length, so the two are not comparable.
func (a *Assistant) retrieve(question string) []Reference {
	terms := search.Tokenize(question)
	if len(terms) == 0 {
		return nil
	}

	var references []Reference
	for _, doc := range a.engine.Documents() {
		for _, section := range doc.SearchableSections() {
			if search.CountHits(section.Content, terms) == 0 {
				continue
			}
			span, hits := search.BestSpan(section.Content, terms)
			if span == "" {
				continue
			}
			references = append(references, Reference{
				DocumentID:   doc.ID,
				DocumentName: doc.Name,
				PageNumber:   section.PageNumber,
				Confidence:   confidence(hits, len(terms)),
				Excerpt:      search.Excerpt(span, search.ExcerptLength),
				Context:      contextWindow(section.Content, terms),
			})
		}
	}

	slices.SortStableFunc(references, func(x, y Reference) int {
		return cmp.Compare(y.Confidence, x.Confidence)
	})

	seen := make(map[string]struct{}, len(references))
	deduped := references[:0]
	for _, r := range references {
		if _, exists := seen[r.Excerpt]; exists {
			continue
		}
		seen[r.Excerpt] = struct{}{}
		deduped = append(deduped, r)
	}
	references = deduped

	if len(references) > MaxReferences {
		references = references[:MaxReferences]
	}
	return references
}

func confidence(hits, numTerms int) float64 {
	if numTerms == 0 {
		return 0
	}
	c := float64(hits) / float64(numTerms) * 100
	return min(c, 100)
}

// contextWindow returns up to ContextLength characters of section text
// surrounding the first term occurrence, for the expandable-context UI.
func contextWindow(sectionText string, terms []string) string {
	lower := strings.ToLower(sectionText)
	anchor := -1
	for _, t := range terms {
		if i := strings.Index(lower, t); i >= 0 && (anchor == -1 || i < anchor) {
			anchor = i
		}
	}
	if anchor < 0 {
		return search.Excerpt(sectionText, ContextLength)
	}

	start := anchor - ContextLength/2
	if start < 0 {
		start = 0
	}
	for start > 0 && !utf8.RuneStart(sectionText[start]) {
		start--
	}
	return search.Excerpt(sectionText[start:], ContextLength)
}

// composeAnswer fills the answer template with the retrieved passages, one
// reference marker per excerpt.
func composeAnswer(references []Reference) string {
	var b strings.Builder
	b.WriteString("Based on the uploaded documents, here's what I found:\n")
	for i, ref := range references {
		fmt.Fprintf(&b, "\n%d. %s %s\n", i+1, ref.Excerpt,
			refs.FormatMarker(ref.DocumentName, ref.DocumentID, ref.PageNumber))
	}
	return b.String()
}
