package subtitle

import (
	"fmt"
	"strings"
)

// Apply splices every non-skipped edit into text at its recorded span.
// Edits must be sorted by position and must not overlap.
func Apply(text string, edits []Edit) (string, error) {
	var sb strings.Builder
	sb.Grow(len(text))

	last := 0
	for _, e := range edits {
		if e.Span.Pos < last || e.Span.End() > len(text) {
			return "", fmt.Errorf(
				"edit at %d-%d is out of order or out of range",
				e.Span.Pos,
				e.Span.End(),
			)
		}
		if text[e.Span.Pos:e.Span.End()] != e.Original {
			return "", fmt.Errorf(
				"edit at %d: expected %q, found %q",
				e.Span.Pos,
				e.Original,
				text[e.Span.Pos:e.Span.End()],
			)
		}
		if e.Skipped {
			continue
		}
		sb.WriteString(text[last:e.Span.Pos])
		sb.WriteString(e.Replacement)
		last = e.Span.End()
	}
	sb.WriteString(text[last:])

	return sb.String(), nil
}
