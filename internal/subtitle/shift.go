package subtitle

import (
	"time"
)

// Shift parses every timing, adds offset, and returns one ordered list
// of edits against text. Blocks whose shifted start or end would be
// negative are handled according to policy.
func Shift(
	text string,
	timings []Timing,
	offset time.Duration,
	policy NegativePolicy,
) ([]Edit, Stats, error) {
	if policy == "" {
		policy = NegativeKeep
	}

	edits := make([]Edit, 0, 2*len(timings))
	stats := Stats{Blocks: len(timings)}

	for _, t := range timings {
		start, err := parseTimingField(t.Block, t.RawStart)
		if err != nil {
			return nil, Stats{}, err
		}
		end, err := parseTimingField(t.Block, t.RawEnd)
		if err != nil {
			return nil, Stats{}, err
		}

		start += offset
		end += offset
		negative := start < 0 || end < 0

		switch {
		case !negative:
			stats.Shifted++
		case policy == NegativeClamp:
			stats.Clamped++
			start = max(start, 0)
			end = max(end, 0)
		case policy == NegativeDrop:
			stats.Dropped++
			edits = append(edits, Edit{
				Span:     t.Extent,
				Original: text[t.Extent.Pos:t.Extent.End()],
			})
			continue
		default:
			stats.Skipped++
			edits = append(edits,
				Edit{Span: t.Start, Original: t.RawStart, Skipped: true},
				Edit{Span: t.End, Original: t.RawEnd, Skipped: true},
			)
			continue
		}

		edits = append(edits,
			Edit{
				Span:        t.Start,
				Original:    t.RawStart,
				Replacement: FormatTimecode(start),
			},
			Edit{
				Span:        t.End,
				Original:    t.RawEnd,
				Replacement: FormatTimecode(end),
			},
		)
	}

	return edits, stats, nil
}

func parseTimingField(block int, raw string) (time.Duration, error) {
	d, err := ParseTimecode(raw)
	if err != nil {
		if tcErr, ok := err.(*InvalidTimecodeError); ok {
			tcErr.Block = block
		}
		return 0, err
	}
	return d, nil
}
