package logger

import (
	"io"
	"log/slog"
	"os"
)

// Logger represents application logger.
type Logger struct {
	*slog.Logger
}

// New creates a Logger at the given level. Format is "text", "json", or
// "both", which writes text to stdout and JSON to stderr.
func New(level slog.Level, format string) *Logger {
	return NewWithWriters(level, format, os.Stdout, os.Stderr)
}

// NewWithWriters is New with explicit output streams.
func NewWithWriters(level slog.Level, format string, stdout, stderr io.Writer) *Logger {
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	switch format {
	case "json":
		h = slog.NewJSONHandler(stdout, opts)
	case "both":
		h = slog.NewMultiHandler(
			slog.NewTextHandler(stdout, opts),
			slog.NewJSONHandler(stderr, opts),
		)
	default:
		h = slog.NewTextHandler(stdout, opts)
	}

	return &Logger{Logger: slog.New(h)}
}

// Fatal is equivalent to Error followed by os.Exit(1).
func (l *Logger) Fatal(msg string, args ...any) {
	l.Logger.Error(msg, args...)
	os.Exit(1)
}
