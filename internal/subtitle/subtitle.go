package subtitle

import (
	"fmt"
	"strings"
)

// byte range inside a document
type Span struct {
	Pos int
	Len int
}

func (s Span) End() int {
	return s.Pos + s.Len
}

// timing line of a single well-formed subtitle block
type Timing struct {
	// 1-based block number in document order, short blocks included
	Block int
	// the block plus the blank lines that follow it
	Extent   Span
	Start    Span
	End      Span
	RawStart string
	RawEnd   string
}

// single positional text edit produced by Shift
type Edit struct {
	Span        Span
	Original    string
	Replacement string
	// original text is kept as is
	Skipped bool
}

// what happens to a block whose shifted time would be negative
type NegativePolicy string

const (
	NegativeKeep  NegativePolicy = "keep"
	NegativeClamp NegativePolicy = "clamp"
	NegativeDrop  NegativePolicy = "drop"
)

func ParseNegativePolicy(s string) (NegativePolicy, error) {
	switch p := NegativePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return NegativeKeep, nil
	case NegativeKeep, NegativeClamp, NegativeDrop:
		return p, nil
	default:
		return "", fmt.Errorf(
			"unsupported negative policy %q: use keep, clamp, or drop",
			s,
		)
	}
}

// per-run counters reported by Shift
type Stats struct {
	Blocks  int
	Shifted int
	Skipped int
	Clamped int
	Dropped int
}
