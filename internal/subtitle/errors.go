package subtitle

import (
	"errors"
	"fmt"
)

// ErrMalformedInput matches every timing line or timecode error.
var ErrMalformedInput = errors.New("malformed subtitle input")

type MalformedTimingLineError struct {
	Block int
	Line  string
}

func (e *MalformedTimingLineError) Error() string {
	return fmt.Sprintf("block %d: malformed timing line %q", e.Block, e.Line)
}

func (e *MalformedTimingLineError) Is(target error) bool {
	return target == ErrMalformedInput
}

type InvalidTimecodeError struct {
	// zero when the timecode was parsed outside a document
	Block  int
	Value  string
	Reason string
}

func (e *InvalidTimecodeError) Error() string {
	if e.Block > 0 {
		return fmt.Sprintf(
			"block %d: invalid timecode %q: %s",
			e.Block,
			e.Value,
			e.Reason,
		)
	}
	return fmt.Sprintf("invalid timecode %q: %s", e.Value, e.Reason)
}

func (e *InvalidTimecodeError) Is(target error) bool {
	return target == ErrMalformedInput
}
