package discover

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}
}

func TestFindExcludesBackups(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.srt", "a-old-0.srt", "a-old-17.srt", "notes.txt")

	got, err := Find(dir)
	if err != nil {
		t.Fatalf("Find returned error: %v", err)
	}
	if want := filepath.Join(dir, "a.srt"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFindNoCandidate(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a-old-0.srt", "movie.mkv")
	if err := os.Mkdir(filepath.Join(dir, "sub.srt"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	_, err := Find(dir)
	if !errors.Is(err, ErrNoCandidate) {
		t.Fatalf("expected ErrNoCandidate, got %v", err)
	}
}

func TestFindAmbiguous(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.srt", "a.srt", "a-old-0.srt")

	_, err := Find(dir)
	var ambiguous *AmbiguousError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("expected *AmbiguousError, got %v", err)
	}
	if len(ambiguous.Candidates) != 2 ||
		ambiguous.Candidates[0] != "a.srt" ||
		ambiguous.Candidates[1] != "b.srt" {
		t.Errorf("unexpected candidates %v", ambiguous.Candidates)
	}
}

func TestIsBackup(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"a-old-0.srt", true},
		{"a-old-00.srt", true},
		{"dir/movie.en-old-123.srt", true},
		{"a.srt", false},
		{"a-old.srt", false},
		{"a-old-x.srt", false},
		{"gold-1.srt", true},
	}
	for _, tt := range tests {
		if got := IsBackup(tt.name); got != tt.want {
			t.Errorf("IsBackup(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"movie", "movie.srt"},
		{"movie.srt", "movie.srt"},
		{"dir/movie.en", "dir/movie.en.srt"},
	}
	for _, tt := range tests {
		if got := Resolve(tt.input); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
