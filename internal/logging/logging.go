// Package logging owns the process logger. The TUI draws on the terminal, so
// records go to a file or nowhere.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	mu       sync.Mutex
	logFile  *os.File
	levelVar = &slog.LevelVar{}
	logger   = slog.New(slog.DiscardHandler)
)

// Setup opens path for appending and installs a JSON logger on it. An empty
// path keeps logging disabled.
func Setup(path, level string) (*slog.Logger, error) {
	mu.Lock()
	defer mu.Unlock()

	SetRawLogLevel(level)
	if path == "" {
		return logger, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return logger, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return logger, fmt.Errorf("open log file: %w", err)
	}
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	logger = New(f)
	return logger, nil
}

// New builds a JSON logger on w that follows the shared level.
func New(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: levelVar}))
}

// Logger returns the process logger.
func Logger() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// SetRawLogLevel parses a config level name; unknown names mean info.
func SetRawLogLevel(raw string) {
	var level slog.Level
	switch strings.ToLower(raw) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	levelVar.Set(level)
}

// Close flushes and closes the log file and disables logging.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	logger = slog.New(slog.DiscardHandler)
}
