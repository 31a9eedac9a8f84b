package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestionsEmptyResults(t *testing.T) {
	assert.Empty(t, Suggestions(nil, "anything", MaxSuggestions))
	assert.Empty(t, Suggestions([]Result{}, "anything", MaxSuggestions))
}

func TestSuggestionsFrequencyRanked(t *testing.T) {
	results := []Result{
		{Excerpt: "photosynthesis converts sunlight in chloroplasts"},
		{Excerpt: "photosynthesis requires sunlight and water"},
		{Excerpt: "photosynthesis output includes oxygen"},
	}

	got := Suggestions(results, "plants", MaxSuggestions)
	assert.NotEmpty(t, got)
	assert.Equal(t, "photosynthesis", got[0])
}

func TestSuggestionsExcludeQueryWords(t *testing.T) {
	results := []Result{
		{Excerpt: "photosynthesis requires sunlight constantly"},
	}

	got := Suggestions(results, "photosynthesis sunlight", MaxSuggestions)
	assert.NotContains(t, got, "photosynthesis")
	assert.NotContains(t, got, "sunlight")
}

func TestSuggestionsMinimumWordLength(t *testing.T) {
	results := []Result{
		{Excerpt: "ion gas era photosynthesis"},
	}

	got := Suggestions(results, "query", MaxSuggestions)
	for _, word := range got {
		assert.GreaterOrEqual(t, len(word), 4)
	}
}

func TestSuggestionsLimit(t *testing.T) {
	results := []Result{
		{Excerpt: "alpha bravo charlie delta echoes foxtrot golf hotel indigo juliet"},
	}

	got := Suggestions(results, "query", 3)
	assert.LessOrEqual(t, len(got), 3)
}
