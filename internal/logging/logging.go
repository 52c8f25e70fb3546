package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the sugared zap logger shared by the CLI and pipeline.
type Logger struct {
	*zap.SugaredLogger
}

// NewLogger logs human-readable lines to stderr, at debug level when
// verbose is set.
func NewLogger(verbose bool) *Logger {
	return New(os.Stderr, verbose)
}

func New(w io.Writer, verbose bool) *Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.CallerKey = ""
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		level,
	)
	return &Logger{zap.New(core).Sugar()}
}

func NewNop() *Logger {
	return &Logger{zap.NewNop().Sugar()}
}
