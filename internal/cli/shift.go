package cli

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tainn/sub-sync/internal/backup"
	"github.com/tainn/sub-sync/internal/config"
	"github.com/tainn/sub-sync/internal/discover"
	"github.com/tainn/sub-sync/internal/pipeline"
	"github.com/tainn/sub-sync/internal/subtitle"
)

func runShift(cmd *cobra.Command, args []string) error {
	seconds, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf(
			"invalid offset %q: expected seconds such as -0.5 or +1.25",
			args[0],
		)
	}
	offset, err := subtitle.OffsetFromSeconds(seconds)
	if err != nil {
		return err
	}

	configPath, _ := cmd.Flags().GetString("config")
	pathFlag, _ := cmd.Flags().GetString("path")
	outputPath, _ := cmd.Flags().GetString("output")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	negative, _ := cmd.Flags().GetString("negative")
	encodingName, _ := cmd.Flags().GetString("encoding")

	cfg, resolvedConfig, exists, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if exists {
		logger.Debugw("Loaded config", "path", resolvedConfig)
	}
	if cmd.Flags().Changed("negative") {
		cfg.NegativePolicy = negative
	}
	if cmd.Flags().Changed("encoding") {
		cfg.Encoding = encodingName
	}

	policy, err := subtitle.ParseNegativePolicy(cfg.NegativePolicy)
	if err != nil {
		return err
	}
	enc, err := subtitle.LookupEncoding(cfg.Encoding)
	if err != nil {
		return err
	}

	path := discover.Resolve(pathFlag)
	if path == "" {
		path, err = discover.Find(".")
		if err != nil {
			return err
		}
	}

	logger.Infow("Shifting subtitles",
		"path", path,
		"offset", offset,
		"negative", policy,
		"encoding", cfg.Encoding,
	)

	res, err := pipeline.Run(pipeline.Options{
		Path:     path,
		Offset:   offset,
		Policy:   policy,
		Encoding: enc,
		Backup: backup.Options{
			Base:   cfg.Backup.Base,
			Digits: cfg.Backup.Digits,
			Lock:   cfg.Backup.Lock,
		},
		Output: outputPath,
		DryRun: dryRun,
		Stdout: cmd.OutOrStdout(),
	}, logger)
	if err != nil {
		return err
	}

	logger.Infow("Shift complete",
		"blocks", res.Stats.Blocks,
		"shifted", res.Stats.Shifted,
		"skipped", res.Stats.Skipped,
		"clamped", res.Stats.Clamped,
		"dropped", res.Stats.Dropped,
	)

	if dryRun {
		return nil
	}
	absOutput, _ := filepath.Abs(res.Written)
	logger.Debugw("Wrote subtitle file", "path", absOutput)
	fmt.Fprintln(cmd.OutOrStdout(), "Complete!")

	return nil
}
