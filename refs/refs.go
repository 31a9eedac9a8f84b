// Package refs locates file and document references embedded in response
// text and resolves which displayed lines they highlight.
package refs

import (
	"regexp"
	"strconv"
	"strings"
)

// Matches "Name.ext:12" and "Name.ext:12-33".
var filePattern = regexp.MustCompile(`([\w./-]+\.[A-Za-z][\w]*):(\d+)(?:-(\d+))?`)

// FileRef is a parsed file reference such as "S3KeySource.kt:12-33".
type FileRef struct {
	Raw       string // The reference exactly as it appeared in the text.
	File      string // File name, possibly a partial path.
	StartLine int
	EndLine   int // Equal to StartLine for single-line references.
}

// Segment is a run of text, either plain or a file reference.
type Segment struct {
	Text string
	Ref  *FileRef // nil for plain text segments
}

// ParseFileRefs returns all file references in text, non-overlapping and in
// left-to-right order.
func ParseFileRefs(text string) []FileRef {
	var out []FileRef
	for _, m := range filePattern.FindAllStringSubmatch(text, -1) {
		out = append(out, newFileRef(m))
	}
	return out
}

// Scan splits text into plain and reference segments. Concatenating the
// segment texts reproduces the input unchanged.
func Scan(text string) []Segment {
	var segments []Segment
	last := 0
	for _, loc := range filePattern.FindAllStringSubmatchIndex(text, -1) {
		if loc[0] > last {
			segments = append(segments, Segment{Text: text[last:loc[0]]})
		}
		m := make([]string, 0, 4)
		for i := 0; i < len(loc); i += 2 {
			if loc[i] < 0 {
				m = append(m, "")
			} else {
				m = append(m, text[loc[i]:loc[i+1]])
			}
		}
		ref := newFileRef(m)
		segments = append(segments, Segment{Text: ref.Raw, Ref: &ref})
		last = loc[1]
	}
	if last < len(text) {
		segments = append(segments, Segment{Text: text[last:]})
	}
	return segments
}

func newFileRef(m []string) FileRef {
	start, _ := strconv.Atoi(m[2])
	end := start
	if m[3] != "" {
		end, _ = strconv.Atoi(m[3])
	}
	return FileRef{Raw: m[0], File: m[1], StartLine: start, EndLine: end}
}

// MatchesPath reports whether the reference points into the given snippet
// path. Substring matching is deliberate: references usually carry a short
// name while snippets carry full repository paths.
func (r FileRef) MatchesPath(path string) bool {
	return strings.Contains(path, r.File)
}

// ContainsLine reports whether line falls within the reference's declared
// range, inclusive.
func (r FileRef) ContainsLine(line int) bool {
	return line >= r.StartLine && line <= r.EndLine
}

// LineHighlighted resolves an active reference string against a snippet:
// the line is highlighted when the snippet path contains the referenced
// file and the line number is inside the declared range. An unparseable
// active reference highlights nothing; that is not an error.
func LineHighlighted(active, snippetPath string, line int) bool {
	m := filePattern.FindStringSubmatch(active)
	if m == nil {
		return false
	}
	ref := newFileRef(m)
	return ref.MatchesPath(snippetPath) && ref.ContainsLine(line)
}
