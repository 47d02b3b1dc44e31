// Package extractor finds brace-balanced JSON object literals in free text.
package extractor

import (
	"regexp"
	"strings"
)

// DefaultFenceMarkers are removed from the document before scanning, in this order.
// Replacement is literal, so a marker inside a JSON string value is removed too.
var DefaultFenceMarkers = []string{"```json\n", "```\n", "```"}

var blankLines = regexp.MustCompile(`\n\s*\n`)

// Extractor scans text for candidate blocks.
type Extractor struct {
	fenceMarkers []string
}

// New creates an Extractor. With no markers, DefaultFenceMarkers are used.
func New(fenceMarkers ...string) *Extractor {
	if len(fenceMarkers) == 0 {
		fenceMarkers = DefaultFenceMarkers
	}
	return &Extractor{fenceMarkers: fenceMarkers}
}

// Extract returns the candidate blocks of text using the default fence markers.
func Extract(text string) []string {
	return New().Extract(text)
}

// Clean applies the preprocessing steps: CRLF to LF, blank-line runs
// collapsed to a single newline, then fence markers stripped.
func (e *Extractor) Clean(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = blankLines.ReplaceAllString(text, "\n")
	for _, marker := range e.fenceMarkers {
		if marker == "" {
			continue
		}
		text = strings.ReplaceAll(text, marker, "")
	}
	return text
}

// Extract returns every span whose outermost braces balance, in document order.
// Text outside a span is dropped; a trailing unbalanced span is never returned.
// The blocks are not validated as JSON.
func (e *Extractor) Extract(text string) []string {
	text = e.Clean(text)

	var (
		blocks []string
		buf    strings.Builder
		depth  int
	)
	for _, ch := range text {
		switch {
		case ch == '{':
			if depth == 0 {
				buf.Reset()
			}
			buf.WriteRune(ch)
			depth++
		case ch == '}':
			// depth may go negative on a stray '}'; the buffer is reset on
			// the next 0 -> 1 transition so emitted blocks always balance.
			depth--
			buf.WriteRune(ch)
			if depth == 0 {
				if block := strings.TrimSpace(buf.String()); block != "" {
					blocks = append(blocks, block)
				}
				buf.Reset()
			}
		case depth > 0:
			buf.WriteRune(ch)
		}
	}
	return blocks
}
