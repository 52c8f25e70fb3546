package subtitle

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ParseTimecode converts an SRT timecode (HH:MM:SS,mmm) to a duration.
func ParseTimecode(s string) (time.Duration, error) {
	fields := strings.Split(s, ":")
	if len(fields) != 3 {
		return 0, &InvalidTimecodeError{
			Value:  s,
			Reason: "expected HH:MM:SS,mmm",
		}
	}
	secs := strings.Split(fields[2], ",")
	if len(secs) != 2 {
		return 0, &InvalidTimecodeError{
			Value:  s,
			Reason: "expected a comma before milliseconds",
		}
	}

	h, err := parseTimecodeField(s, "hours", fields[0], 0, -1)
	if err != nil {
		return 0, err
	}
	m, err := parseTimecodeField(s, "minutes", fields[1], 2, 59)
	if err != nil {
		return 0, err
	}
	sec, err := parseTimecodeField(s, "seconds", secs[0], 2, 59)
	if err != nil {
		return 0, err
	}
	ms, err := parseTimecodeField(s, "milliseconds", secs[1], 3, 999)
	if err != nil {
		return 0, err
	}

	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(sec)*time.Second +
		time.Duration(ms)*time.Millisecond, nil
}

// maxDigits <= 0 and limit < 0 mean unbounded
func parseTimecodeField(
	value, name, field string,
	maxDigits, limit int,
) (int, error) {
	if field == "" {
		return 0, &InvalidTimecodeError{Value: value, Reason: name + " missing"}
	}
	if maxDigits > 0 && len(field) > maxDigits {
		return 0, &InvalidTimecodeError{
			Value:  value,
			Reason: fmt.Sprintf("%s has more than %d digits", name, maxDigits),
		}
	}
	for _, r := range field {
		if r < '0' || r > '9' {
			return 0, &InvalidTimecodeError{
				Value:  value,
				Reason: name + " is not numeric",
			}
		}
	}
	n, err := strconv.Atoi(field)
	if err != nil || n > maxTimecodeHours {
		return 0, &InvalidTimecodeError{Value: value, Reason: name + " out of range"}
	}
	if limit >= 0 && n > limit {
		return 0, &InvalidTimecodeError{
			Value:  value,
			Reason: fmt.Sprintf("%s must be at most %d", name, limit),
		}
	}
	return n, nil
}

// keeps every parsed timecode well inside time.Duration
const maxTimecodeHours = 1_000_000

// FormatTimecode renders d as HH:MM:SS,mmm. Negative durations render as zero.
func FormatTimecode(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	hours := ms / int64(time.Hour/time.Millisecond)
	minutes := ms / int64(time.Minute/time.Millisecond) % 60
	seconds := ms / int64(time.Second/time.Millisecond) % 60
	millis := ms % 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}

// OffsetFromSeconds rounds a signed number of seconds to whole milliseconds.
func OffsetFromSeconds(seconds float64) (time.Duration, error) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0, fmt.Errorf("offset must be a finite number of seconds")
	}
	ms := math.Round(seconds * 1000)
	if math.Abs(ms) > float64(maxTimecodeHours)*3600*1000 {
		return 0, fmt.Errorf("offset %gs out of range", seconds)
	}
	return time.Duration(ms) * time.Millisecond, nil
}
