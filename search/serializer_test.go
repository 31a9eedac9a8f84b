package search

import (
	"path/filepath"
	"testing"

	"github.com/abiiranathan/docsearch/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeRoundTrip(t *testing.T) {
	docs := []document.Document{
		{
			ID:   "d1",
			Name: "a.pdf",
			Sections: []document.Section{
				{PageNumber: 1, Content: "Page one text.", WordCount: 3, CharCount: 14},
			},
			Text:     "Page one text.",
			Analysis: document.Analysis{Status: document.AnalysisFull},
		},
		{
			ID:       "d2",
			Name:     "broken.pdf",
			Analysis: document.Analysis{Status: document.AnalysisFailed, Err: "extraction failed"},
		},
	}

	path := filepath.Join(t.TempDir(), "index.bin")
	require.NoError(t, Serialize(path, docs))

	got, err := Deserialize(path)
	require.NoError(t, err)
	assert.Equal(t, docs, got)
}

func TestDeserializeMissingFile(t *testing.T) {
	_, err := Deserialize(filepath.Join(t.TempDir(), "nope.bin"))
	assert.Error(t, err)
}
