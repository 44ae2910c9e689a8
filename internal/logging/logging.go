// Package logging configures the process-wide slog logger.
package logging

import (
	"errors"
	"io"
	"log/slog"
	"os"
)

// Configure sets up the default slog logger with a log level and an
// optional output file.
//
// Valid levels are "none", "error", "warn", "info" and "debug"; any
// other value returns an error. With an empty path the logger writes
// text to stderr, keeping stdout free for payload data; with a path
// it writes JSON to that file.
//
// The returned file, when non-nil, is the caller's to close on
// shutdown.
func Configure(level, path string) (*os.File, error) {
	var opts slog.HandlerOptions

	switch level {
	case "none":
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return nil, nil
	case "error":
		opts.Level = slog.LevelError
	case "warn":
		opts.Level = slog.LevelWarn
	case "info":
		opts.Level = slog.LevelInfo
	case "debug":
		opts.Level = slog.LevelDebug
	default:
		return nil, errors.New("unexpected log level")
	}

	if path == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &opts)))
		return nil, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(f, &opts)))
	return f, nil
}
