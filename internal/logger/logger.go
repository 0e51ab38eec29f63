// Package logger configures the process-wide log/slog logger.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", level)
	}
	return l, nil
}

// New builds a logger writing in format: "text" to stdout, "json" to
// stdout, or "both" with text on stdout and JSON on stderr.
func New(level, format string, stdout, stderr io.Writer) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "text", "":
		return slog.New(slog.NewTextHandler(stdout, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(stdout, opts)), nil
	case "both":
		return slog.New(slog.NewMultiHandler(
			slog.NewTextHandler(stdout, opts),
			slog.NewJSONHandler(stderr, opts),
		)), nil
	}
	return nil, fmt.Errorf("invalid log format %q", format)
}

// Setup builds a logger with New and installs it as the slog default.
func Setup(level, format string, stdout, stderr io.Writer) error {
	l, err := New(level, format, stdout, stderr)
	if err != nil {
		return err
	}
	slog.SetDefault(l)
	return nil
}
