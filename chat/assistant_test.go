package chat

import (
	"strings"
	"testing"

	"github.com/abiiranathan/docsearch/document"
	"github.com/abiiranathan/docsearch/refs"
	"github.com/abiiranathan/docsearch/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAssistant(docs ...document.Document) *Assistant {
	engine := search.NewEngine()
	engine.SetDocuments(docs)
	return NewAssistant(engine)
}

func biologyDoc() document.Document {
	return document.Document{
		ID:   "bio-1",
		Name: "biology.pdf",
		Sections: []document.Section{
			{PageNumber: 1, Content: "Photosynthesis converts sunlight into chemical energy. Plants use chlorophyll for this process."},
			{PageNumber: 2, Content: "Respiration releases the stored energy. Mitochondria drive respiration in cells."},
		},
	}
}

func TestAskQuestionReturnsReferences(t *testing.T) {
	assistant := newTestAssistant(biologyDoc())

	answer := assistant.AskQuestion("How does photosynthesis work?")
	require.NotEmpty(t, answer.References)
	require.LessOrEqual(t, len(answer.References), MaxReferences)

	ref := answer.References[0]
	assert.Equal(t, "bio-1", ref.DocumentID)
	assert.Equal(t, "biology.pdf", ref.DocumentName)
	assert.Equal(t, 1, ref.PageNumber)
	assert.Greater(t, ref.Confidence, 0.0)
	assert.LessOrEqual(t, ref.Confidence, 100.0)
	assert.Contains(t, strings.ToLower(ref.Excerpt), "photosynthesis")

	// The answer embeds one parseable reference marker per excerpt.
	markers := refs.ParseMarkers(answer.Message.Content)
	require.Len(t, markers, len(answer.References))
	assert.Equal(t, "bio-1", markers[0].DocumentID)
	assert.Equal(t, 1, markers[0].PageNumber)

	assert.Equal(t, RoleAssistant, answer.Message.Role)
	assert.NotEmpty(t, answer.Message.ID)
	assert.False(t, answer.Message.CreatedAt.IsZero())
}

func TestAskQuestionNoMatchFallback(t *testing.T) {
	assistant := newTestAssistant(biologyDoc())

	answer := assistant.AskQuestion("quantum entanglement spacecraft")
	assert.Empty(t, answer.References)
	assert.Equal(t, NoAnswerFallback, answer.Message.Content)
	assert.Empty(t, answer.RelatedQuestions)

	// The failed question still lands in history.
	assert.Len(t, assistant.History(), 2)
}

func TestAskQuestionEmptySnapshot(t *testing.T) {
	assistant := newTestAssistant()
	assistant.SetDocuments([]document.Document{})

	answer := assistant.AskQuestion("anything at all")
	assert.Empty(t, answer.References)
	assert.Equal(t, NoAnswerFallback, answer.Message.Content)
}

func TestHistoryAppendOnly(t *testing.T) {
	assistant := newTestAssistant(biologyDoc())

	assistant.AskQuestion("What is photosynthesis?")
	assistant.AskQuestion("What about respiration?")

	history := assistant.History()
	require.Len(t, history, 4)
	assert.Equal(t, RoleUser, history[0].Role)
	assert.Equal(t, RoleAssistant, history[1].Role)
	assert.Equal(t, RoleUser, history[2].Role)
	assert.Equal(t, RoleAssistant, history[3].Role)

	assistant.ClearHistory()
	assert.Empty(t, assistant.History())
}

func TestSetDocumentsKeepsHistory(t *testing.T) {
	assistant := newTestAssistant(biologyDoc())
	assistant.AskQuestion("What is photosynthesis?")
	require.Len(t, assistant.History(), 2)

	assistant.SetDocuments(nil)
	assert.Len(t, assistant.History(), 2)

	// The new snapshot is what later questions are answered from.
	answer := assistant.AskQuestion("What is photosynthesis?")
	assert.Empty(t, answer.References)
}

func TestReferenceContextBounds(t *testing.T) {
	long := strings.Repeat("padding text around the important word ", 30) +
		"chlorophyll " + strings.Repeat("and much more trailing text ", 30)
	assistant := newTestAssistant(document.Document{
		ID:       "d1",
		Name:     "long.pdf",
		Sections: []document.Section{{PageNumber: 1, Content: long}},
	})

	answer := assistant.AskQuestion("Tell me about chlorophyll")
	require.NotEmpty(t, answer.References)

	ref := answer.References[0]
	assert.LessOrEqual(t, len([]rune(ref.Excerpt)), search.ExcerptLength+3)
	assert.LessOrEqual(t, len([]rune(ref.Context)), ContextLength+3)
	assert.Contains(t, ref.Context, "chlorophyll")
}

func TestReferencesDeduplicatedAndLimited(t *testing.T) {
	sections := make([]document.Section, 0, 10)
	for i := 0; i < 10; i++ {
		sections = append(sections, document.Section{
			PageNumber: i + 1,
			Content:    "Energy is discussed on this page number " + strings.Repeat("x", i+1) + ".",
		})
	}
	// Two sections with byte-identical best sentences collapse to one.
	sections = append(sections,
		document.Section{PageNumber: 11, Content: "Energy everywhere."},
		document.Section{PageNumber: 12, Content: "Energy everywhere."},
	)

	assistant := newTestAssistant(document.Document{ID: "d1", Name: "a.pdf", Sections: sections})

	answer := assistant.AskQuestion("What about energy")
	assert.LessOrEqual(t, len(answer.References), MaxReferences)

	seen := make(map[string]int)
	for _, ref := range answer.References {
		seen[ref.Excerpt]++
	}
	for excerpt, count := range seen {
		assert.Equal(t, 1, count, "duplicate excerpt %q", excerpt)
	}
}

func TestConfidenceClamped(t *testing.T) {
	// One term repeated many times in the best sentence would push the raw
	// ratio above 100.
	assistant := newTestAssistant(document.Document{
		ID:       "d1",
		Name:     "a.pdf",
		Sections: []document.Section{{PageNumber: 1, Content: "energy energy energy energy energy"}},
	})

	answer := assistant.AskQuestion("energy")
	require.NotEmpty(t, answer.References)
	assert.Equal(t, 100.0, answer.References[0].Confidence)
}

func TestRelatedQuestionsGenerated(t *testing.T) {
	assistant := newTestAssistant(biologyDoc())

	answer := assistant.AskQuestion("How does photosynthesis work?")
	require.NotEmpty(t, answer.References)
	assert.LessOrEqual(t, len(answer.RelatedQuestions), 3)
	for _, q := range answer.RelatedQuestions {
		assert.NotContains(t, strings.ToLower(q), "photosynthesis")
	}
}
