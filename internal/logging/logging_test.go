package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewRespectsVerbose(t *testing.T) {
	tests := []struct {
		verbose   bool
		wantDebug bool
	}{
		{verbose: false, wantDebug: false},
		{verbose: true, wantDebug: true},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		logger := New(&buf, tt.verbose)
		logger.Debugw("debug line", "key", "value")
		logger.Infow("info line", "path", "movie.srt")
		_ = logger.Sync()

		out := buf.String()
		if !strings.Contains(out, "info line") || !strings.Contains(out, "movie.srt") {
			t.Errorf("verbose=%v: info line missing from %q", tt.verbose, out)
		}
		if got := strings.Contains(out, "debug line"); got != tt.wantDebug {
			t.Errorf("verbose=%v: debug logged = %v, want %v", tt.verbose, got, tt.wantDebug)
		}
	}
}

func TestNewNop(t *testing.T) {
	logger := NewNop()
	logger.Infow("discarded", "n", 1)
}
