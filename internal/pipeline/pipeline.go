// Package pipeline runs one subtitle shift: load, split, shift, rewrite,
// and persist.
package pipeline

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/text/encoding"

	"github.com/tainn/sub-sync/internal/backup"
	"github.com/tainn/sub-sync/internal/logging"
	"github.com/tainn/sub-sync/internal/subtitle"
)

type Options struct {
	Path   string
	Offset time.Duration
	Policy subtitle.NegativePolicy
	// nil selects subtitle.DefaultEncoding
	Encoding encoding.Encoding
	Backup   backup.Options

	// Output, when set, receives the result and the input is left alone.
	Output string
	// DryRun writes the result to Stdout instead of any file.
	DryRun bool
	Stdout io.Writer
}

type Result struct {
	Path       string
	Written    string
	BackupPath string
	Stats      subtitle.Stats
}

func Run(opts Options, logger *logging.Logger) (*Result, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	doc, err := subtitle.Load(opts.Path, opts.Encoding)
	if err != nil {
		return nil, err
	}
	logger.Debugw("Loaded subtitle file",
		"path", opts.Path,
		"bytes", len(doc.Text),
	)

	timings, err := doc.Timings()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opts.Path, err)
	}

	edits, stats, err := subtitle.Shift(doc.Text, timings, opts.Offset, opts.Policy)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opts.Path, err)
	}
	logger.Debugw("Shifted timings",
		"blocks", stats.Blocks,
		"shifted", stats.Shifted,
		"skipped", stats.Skipped,
		"clamped", stats.Clamped,
		"dropped", stats.Dropped,
	)
	if stats.Skipped > 0 {
		logger.Warnw("Left blocks unchanged because they would start before zero",
			"count", stats.Skipped,
		)
	}

	text, err := subtitle.Apply(doc.Text, edits)
	if err != nil {
		return nil, fmt.Errorf("rewrite %s: %w", opts.Path, err)
	}
	data, err := doc.Encode(text)
	if err != nil {
		return nil, err
	}

	res := &Result{Path: opts.Path, Stats: stats}

	switch {
	case opts.DryRun:
		w := opts.Stdout
		if w == nil {
			w = os.Stdout
		}
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("write result: %w", err)
		}
	case opts.Output != "":
		if err := os.WriteFile(opts.Output, data, 0644); err != nil {
			return nil, fmt.Errorf("write output: %w", err)
		}
		res.Written = opts.Output
	default:
		backupPath, err := backup.Persist(opts.Path, data, opts.Backup)
		if err != nil {
			return nil, err
		}
		res.Written = opts.Path
		res.BackupPath = backupPath
		logger.Infow("Kept original as backup", "backup", backupPath)
	}

	return res, nil
}
