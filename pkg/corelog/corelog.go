// Package corelog is the CLI's logging facade: a thin wrapper over
// log/slog with a verbosity switch, in the style of rcornwell-S370's
// util/logger (a small slog.Handler wrapper, not a third-party logging
// library — the pack never imports zap/zerolog/logrus for a runtime
// dependency, so this module follows the same stdlib-plus-slog shape).
package corelog

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps an *slog.Logger with a verbose flag that gates Debug output.
type Logger struct {
	*slog.Logger
	verbose bool
}

// New creates a Logger writing text-formatted records to w. When verbose is
// false, debug-level records are suppressed.
func New(w io.Writer, verbose bool) *Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &Logger{Logger: slog.New(handler), verbose: verbose}
}

// Default creates a Logger writing to stderr.
func Default(verbose bool) *Logger {
	return New(os.Stderr, verbose)
}

// Verbose reports whether debug-level logging is enabled.
func (l *Logger) Verbose() bool {
	return l.verbose
}
