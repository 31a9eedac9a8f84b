package refs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFileRefs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []FileRef
	}{
		{
			name: "single line",
			text: "see main.go:7 for details",
			want: []FileRef{{Raw: "main.go:7", File: "main.go", StartLine: 7, EndLine: 7}},
		},
		{
			name: "line range",
			text: "defined in S3KeySource.kt:12-33",
			want: []FileRef{{Raw: "S3KeySource.kt:12-33", File: "S3KeySource.kt", StartLine: 12, EndLine: 33}},
		},
		{
			name: "multiple references in order",
			text: "compare a/b/parser.go:10-20 with lexer.go:5",
			want: []FileRef{
				{Raw: "a/b/parser.go:10-20", File: "a/b/parser.go", StartLine: 10, EndLine: 20},
				{Raw: "lexer.go:5", File: "lexer.go", StartLine: 5, EndLine: 5},
			},
		},
		{
			name: "no references",
			text: "plain text without any references",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFileRefs(tt.text))
		})
	}
}

func TestScanReconstructsInput(t *testing.T) {
	text := "The bug lives in parser.go:10-20, not in lexer.go:5. Honest."

	segments := Scan(text)
	require.NotEmpty(t, segments)

	var rebuilt strings.Builder
	refCount := 0
	for _, seg := range segments {
		rebuilt.WriteString(seg.Text)
		if seg.Ref != nil {
			refCount++
		}
	}
	assert.Equal(t, text, rebuilt.String())
	assert.Equal(t, 2, refCount)
}

func TestScanPlainTextPassThrough(t *testing.T) {
	text := "nothing to see here"

	segments := Scan(text)
	require.Len(t, segments, 1)
	assert.Nil(t, segments[0].Ref)
	assert.Equal(t, text, segments[0].Text)
}

func TestLineHighlighted(t *testing.T) {
	const snippet = "misk-crypto/src/main/kotlin/misk/crypto/S3KeySource.kt"

	tests := []struct {
		name   string
		active string
		path   string
		line   int
		want   bool
	}{
		{"range start inclusive", "S3KeySource.kt:12-33", snippet, 12, true},
		{"range end inclusive", "S3KeySource.kt:12-33", snippet, 33, true},
		{"inside range", "S3KeySource.kt:12-33", snippet, 20, true},
		{"outside range", "S3KeySource.kt:12-33", snippet, 40, false},
		{"single line match", "S3KeySource.kt:12", snippet, 12, true},
		{"single line mismatch", "S3KeySource.kt:12", snippet, 13, false},
		{"different file", "OtherSource.kt:12-33", snippet, 12, false},
		{"unparseable active ref", "not a reference", snippet, 12, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LineHighlighted(tt.active, tt.path, tt.line))
		})
	}
}

func TestMarkerRoundTrip(t *testing.T) {
	marker := FormatMarker("biology.pdf", "doc-42", 7)
	assert.Equal(t, "[biology.pdf:page7](ref:doc-42:7)", marker)

	parsed := ParseMarkers("Answer with evidence " + marker + " and more text")
	require.Len(t, parsed, 1)
	assert.Equal(t, "biology.pdf", parsed[0].DocumentName)
	assert.Equal(t, "doc-42", parsed[0].DocumentID)
	assert.Equal(t, 7, parsed[0].PageNumber)
}

func TestParseMarkersIgnoresPlainLinks(t *testing.T) {
	assert.Empty(t, ParseMarkers("a [normal](https://example.com) markdown link"))
}
