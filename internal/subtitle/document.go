package subtitle

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

// DefaultEncoding is the legacy Western charset SRT files are read with.
var DefaultEncoding encoding.Encoding = charmap.ISO8859_1

const timingArrow = "-->"

// decoded subtitle file
type Document struct {
	Text     string
	Encoding encoding.Encoding
}

// LookupEncoding resolves an IANA charset name. An empty name selects
// DefaultEncoding; UTF-8 is passed through without validation so invalid
// bytes survive a rewrite.
func LookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return DefaultEncoding, nil
	case "utf-8", "utf8":
		return encoding.Nop, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	return enc, nil
}

func Load(path string, enc encoding.Encoding) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read subtitle file: %w", err)
	}
	doc, err := Decode(raw, enc)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return doc, nil
}

func Decode(raw []byte, enc encoding.Encoding) (*Document, error) {
	if enc == nil {
		enc = DefaultEncoding
	}
	text, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, err
	}
	return &Document{Text: string(text), Encoding: enc}, nil
}

// Encode converts text back to the document's encoding.
func (d *Document) Encode(text string) ([]byte, error) {
	enc := d.Encoding
	if enc == nil {
		enc = DefaultEncoding
	}
	out, err := enc.NewEncoder().String(text)
	if err != nil {
		return nil, fmt.Errorf("failed to encode subtitle text: %w", err)
	}
	return []byte(out), nil
}

type line struct {
	pos  int
	text string
}

// Timings splits the document into blank-line separated blocks and
// extracts the timing line (second line) of every block with at least
// three lines. Shorter blocks are skipped.
func (d *Document) Timings() ([]Timing, error) {
	var (
		timings []Timing
		block   []line
		blocks  int
		// index into timings still waiting for its extent end
		open = -1
	)

	flush := func() error {
		if len(block) == 0 {
			return nil
		}
		defer func() { block = block[:0] }()
		if len(block) < 3 {
			return nil
		}
		t, err := extractTiming(blocks, block[1])
		if err != nil {
			return err
		}
		t.Extent = Span{Pos: block[0].pos}
		timings = append(timings, t)
		open = len(timings) - 1
		return nil
	}

	text := d.Text
	for pos := 0; pos < len(text); {
		next := len(text)
		end := len(text)
		if i := strings.IndexByte(text[pos:], '\n'); i >= 0 {
			end = pos + i
			next = end + 1
		}
		l := line{pos: pos, text: text[pos:end]}
		pos = next

		if strings.TrimSpace(l.text) == "" {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		if len(block) == 0 {
			blocks++
			if open >= 0 {
				ext := &timings[open].Extent
				ext.Len = l.pos - ext.Pos
				open = -1
			}
		}
		block = append(block, l)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if open >= 0 {
		ext := &timings[open].Extent
		ext.Len = len(text) - ext.Pos
	}

	return timings, nil
}

func extractTiming(block int, l line) (Timing, error) {
	tokens := fieldSpans(l.text)
	if len(tokens) < 3 || l.text[tokens[1].Pos:tokens[1].End()] != timingArrow {
		return Timing{}, &MalformedTimingLineError{
			Block: block,
			Line:  strings.TrimRight(l.text, "\r"),
		}
	}
	start := Span{Pos: l.pos + tokens[0].Pos, Len: tokens[0].Len}
	end := Span{Pos: l.pos + tokens[2].Pos, Len: tokens[2].Len}
	return Timing{
		Block:    block,
		Start:    start,
		End:      end,
		RawStart: l.text[tokens[0].Pos:tokens[0].End()],
		RawEnd:   l.text[tokens[2].Pos:tokens[2].End()],
	}, nil
}

// whitespace separated fields with their byte spans, like strings.Fields
func fieldSpans(s string) []Span {
	var spans []Span
	start := -1
	for i, r := range s {
		if unicode.IsSpace(r) {
			if start >= 0 {
				spans = append(spans, Span{Pos: start, Len: i - start})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		spans = append(spans, Span{Pos: start, Len: len(s) - start})
	}
	return spans
}
