package discover

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

const Extension = ".srt"

var ErrNoCandidate = errors.New("no srt file found")

// AmbiguousError lists every candidate when more than one file matched.
type AmbiguousError struct {
	Candidates []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf(
		"more than 1 srt file found: %d (%s); use --path to pick one",
		len(e.Candidates),
		strings.Join(e.Candidates, ", "),
	)
}

// names produced by the backup step
var backupPattern = regexp.MustCompile(`old-\d+\.srt$`)

// IsBackup reports whether name looks like a backup left by a previous run.
func IsBackup(name string) bool {
	return backupPattern.MatchString(filepath.Base(name))
}

// Resolve appends the .srt extension to an explicit path when missing.
func Resolve(path string) string {
	if path == "" || strings.HasSuffix(path, Extension) {
		return path
	}
	return path + Extension
}

// Find returns the single non-backup .srt file in dir.
func Find(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("scan %s: %w", dir, err)
	}

	var candidates []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if ok, _ := filepath.Match("*"+Extension, name); !ok || IsBackup(name) {
			continue
		}
		candidates = append(candidates, name)
	}
	sort.Strings(candidates)

	switch len(candidates) {
	case 0:
		return "", ErrNoCandidate
	case 1:
		return filepath.Join(dir, candidates[0]), nil
	default:
		return "", &AmbiguousError{Candidates: candidates}
	}
}
