// Package logging wraps log/slog with the defaults used across ballsim.
// Output goes to stderr so it never interleaves with terminal rendering or
// command output on stdout.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLevel names the environment variable that selects the log level.
const EnvLevel = "BALLSIM_LOG_LEVEL"

type Logger struct {
	*slog.Logger
}

// New returns a text logger writing to w at the given level.
func New(w io.Writer, level slog.Level) *Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &Logger{slog.New(h)}
}

// FromEnv builds the default stderr logger, reading the level from
// BALLSIM_LOG_LEVEL (DEBUG, INFO, WARN, ERROR). Unset or unknown values
// select WARN so the window and terminal views stay quiet.
func FromEnv() *Logger {
	return New(os.Stderr, ParseLevel(os.Getenv(EnvLevel), slog.LevelWarn))
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New(io.Discard, slog.LevelError+1)
}

func ParseLevel(s string, fallback slog.Level) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return fallback
	}
}

// With returns a child logger carrying the given attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{l.Logger.With(args...)}
}
