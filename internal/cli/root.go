package cli

import (
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tainn/sub-sync/internal/logging"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "subsync [flags] offset",
	Short: "Shift every timestamp of an SRT subtitle file",
	Long: `Subsync moves all timestamps of an SRT subtitle file by a fixed
number of seconds and keeps the original as a numbered backup.

A negative offset hastens the subtitles, a positive one delays them.
Without --path, the only .srt file in the current directory is used;
backups from earlier runs (*-old-N.srt) are ignored.

Examples:
  subsync 1.25
  subsync -0.5 --path movie
  subsync +2 -p movie.en.srt --negative clamp
  subsync --dry-run -3`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
	RunE: runShift,
}

func Execute() error {
	rootCmd.SetArgs(normalizeArgs(os.Args[1:]))
	err := rootCmd.Execute()
	if logger != nil {
		_ = logger.Sync()
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		String("config", "", "Config file path (default: user config dir, then ./subsync.toml)")

	rootCmd.Flags().
		StringP("path", "p", "", "Absolute or relative path to the subtitle file (.srt appended if missing)")
	rootCmd.Flags().
		StringP("output", "o", "", "Write the shifted file here and leave the input untouched")
	rootCmd.Flags().
		Bool("dry-run", false, "Print the shifted file to stdout without touching any file")
	rootCmd.Flags().
		String("negative", "", "Blocks shifted before zero: keep, clamp, or drop (default from config: keep)")
	rootCmd.Flags().
		String("encoding", "", "Charset of the subtitle file (default from config: ISO-8859-1)")
}

// normalizeArgs moves negative numbers behind a "--" terminator so an
// offset like -0.5 is not parsed as a shorthand flag.
func normalizeArgs(args []string) []string {
	var (
		flags      []string
		positional []string
	)
	for i, a := range args {
		if a == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}
		if isNegativeNumber(a) {
			positional = append(positional, a)
			continue
		}
		flags = append(flags, a)
	}
	if len(positional) == 0 {
		return args
	}

	out := make([]string, 0, len(flags)+1+len(positional))
	out = append(out, flags...)
	out = append(out, "--")
	return append(out, positional...)
}

func isNegativeNumber(s string) bool {
	if !strings.HasPrefix(s, "-") || len(s) < 2 {
		return false
	}
	c := s[1]
	if c != '.' && (c < '0' || c > '9') {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
