package refs

// Document reference markers embedded in generated answers, in the form
// [name:pageN](ref:docID:page). The presentation layer parses these to build
// clickable navigation; this package owns only the syntax.

import (
	"fmt"
	"regexp"
	"strconv"
)

var markerPattern = regexp.MustCompile(`\[([^\]]+):page(\d+)\]\(ref:([^:)]+):(\d+)\)`)

// Marker is a parsed document reference marker.
type Marker struct {
	DocumentName string
	DocumentID   string
	PageNumber   int
}

// FormatMarker renders the marker for one referenced page.
func FormatMarker(name, docID string, page int) string {
	return fmt.Sprintf("[%s:page%d](ref:%s:%d)", name, page, docID, page)
}

// ParseMarkers extracts all document reference markers from text, in order.
func ParseMarkers(text string) []Marker {
	var out []Marker
	for _, m := range markerPattern.FindAllStringSubmatch(text, -1) {
		page, _ := strconv.Atoi(m[4])
		out = append(out, Marker{
			DocumentName: m[1],
			DocumentID:   m[3],
			PageNumber:   page,
		})
	}
	return out
}
