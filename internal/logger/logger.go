// Package logger sets up the process-wide structured logger
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

var (
	defaultLogger *slog.Logger
	level         = new(slog.LevelVar)
)

// Init installs a slog logger writing to w as the default logger
func Init(lvl string, format string, w io.Writer) *slog.Logger {
	var handler slog.Handler

	level.Set(parseLevel(lvl))
	opts := &slog.HandlerOptions{
		Level: level,
	}

	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
	return defaultLogger
}

// InitFile is Init writing to the file at path, appending. The returned
// closer releases the file.
func InitFile(lvl, format, path string) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return Init(lvl, format, f), f, nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetLevel changes the level of the installed logger at runtime
func SetLevel(lvl string) {
	level.Set(parseLevel(lvl))
}

// Default returns the installed logger, falling back to text on stderr
func Default() *slog.Logger {
	if defaultLogger == nil {
		Init("info", "text", os.Stderr)
	}
	return defaultLogger
}

// Discard returns a logger that drops every record. Handy in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
