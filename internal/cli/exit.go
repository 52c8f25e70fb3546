package cli

import (
	"errors"

	"github.com/tainn/sub-sync/internal/discover"
	"github.com/tainn/sub-sync/internal/subtitle"
)

// process exit statuses
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitNoCandidate = 2
	ExitAmbiguous   = 3
	ExitMalformed   = 4
)

// ExitCode maps an Execute error to the process exit status.
func ExitCode(err error) int {
	var ambiguous *discover.AmbiguousError
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, discover.ErrNoCandidate):
		return ExitNoCandidate
	case errors.As(err, &ambiguous):
		return ExitAmbiguous
	case errors.Is(err, subtitle.ErrMalformedInput):
		return ExitMalformed
	default:
		return ExitFailure
	}
}
