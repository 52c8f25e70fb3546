// Package backup keeps a versioned copy of a file before it is rewritten.
//
// Persist never leaves the original path empty: the original is linked
// (or copied) to the lowest free "<stem>-old-<N><ext>" name, and the new
// content replaces the original through an atomic rename of a fully
// written temp file.
package backup

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

// LockFileName is created next to the persisted file while a run holds
// the directory.
const LockFileName = ".subsync.lock"

var (
	ErrLocked          = errors.New("another subsync run holds the directory lock")
	ErrBackupCollision = errors.New("no free backup name")
)

type Options struct {
	Base   int
	Digits int
	Lock   bool
}

// Name returns <stem>-old-<n><ext> with n zero-padded to digits.
func Name(path string, n, digits int) string {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	return fmt.Sprintf("%s-old-%0*d%s", stem, digits, n, ext)
}

// NextPath returns the first backup name, counting up from base, that
// does not exist yet.
func NextPath(path string, base, digits int) (string, error) {
	p, _, err := nextFree(path, base, digits)
	return p, err
}

func nextFree(path string, from, digits int) (string, int, error) {
	for n := from; ; n++ {
		candidate := Name(path, n, digits)
		_, err := os.Lstat(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			return candidate, n, nil
		}
		if err != nil {
			return "", 0, fmt.Errorf("probe backup name: %w", err)
		}
		if n == math.MaxInt {
			return "", 0, fmt.Errorf("%w for %s", ErrBackupCollision, path)
		}
	}
}

// Persist writes data to path after preserving the current content under
// a backup name, which is returned.
func Persist(path string, data []byte, opts Options) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat original: %w", err)
	}
	dir := filepath.Dir(path)

	if opts.Lock {
		lock := flock.New(filepath.Join(dir, LockFileName))
		ok, err := lock.TryLock()
		if err != nil {
			return "", fmt.Errorf("acquire lock: %w", err)
		}
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrLocked, lock.Path())
		}
		defer func() {
			_ = lock.Unlock()
			_ = os.Remove(lock.Path())
		}()
	}

	tmpPath, err := writeTemp(dir, filepath.Base(path), data, info.Mode().Perm())
	if err != nil {
		return "", err
	}
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	backupPath, err := preserve(path, opts)
	if err != nil {
		return "", err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return backupPath, fmt.Errorf("replace original: %w", err)
	}
	committed = true

	return backupPath, nil
}

func writeTemp(dir, base string, data []byte, perm fs.FileMode) (string, error) {
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	name := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return "", fmt.Errorf("write temp file %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return "", fmt.Errorf("sync temp file %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(name)
		return "", fmt.Errorf("close temp file %s: %w", name, err)
	}
	if err := os.Chmod(name, perm); err != nil {
		_ = os.Remove(name)
		return "", fmt.Errorf("chmod temp file: %w", err)
	}
	return name, nil
}

// preserve links path to the lowest free backup name. A name taken
// between probe and link moves the search on; filesystems without hard
// links get an exclusive copy instead.
func preserve(path string, opts Options) (string, error) {
	n := opts.Base
	for {
		candidate, found, err := nextFree(path, n, opts.Digits)
		if err != nil {
			return "", err
		}

		err = os.Link(path, candidate)
		if err != nil && !errors.Is(err, fs.ErrExist) {
			err = copyExclusive(path, candidate)
		}
		switch {
		case err == nil:
			return candidate, nil
		case errors.Is(err, fs.ErrExist):
			if found == math.MaxInt {
				return "", fmt.Errorf("%w for %s", ErrBackupCollision, path)
			}
			n = found + 1
		default:
			return "", fmt.Errorf("create backup: %w", err)
		}
	}
}
