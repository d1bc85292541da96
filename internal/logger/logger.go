// Package logger writes awsps debug logs to a file. The selector draws on the
// terminal, so nothing here ever writes to stdout or stderr.
package logger

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

var (
	mu         sync.Mutex
	slogLogger = slog.New(slog.DiscardHandler)
	logFile    *os.File
	logPath    string
)

// Init opens path for appending and logs at debug level when enabled is true.
// When enabled is false every logger returned by this package discards.
func Init(path string, enabled bool) error {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()
	if !enabled {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	logFile = f
	logPath = path
	slogLogger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))

	slogLogger.Debug("Logger initialized", "path", path, "pid", os.Getpid())
	return nil
}

// Path returns the active log file, or "" when logging is disabled.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

// Logger returns the underlying slog.Logger.
func Logger() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return slogLogger
}

// Component returns a slog.Logger with the component attribute pre-attached.
//
// Example:
//
//	log := logger.Component("selector")
//	log.Debug("key", "key", k.String())
func Component(name string) *slog.Logger {
	return Logger().With(slog.String("component", name))
}

// Close closes the log file and falls back to discarding.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
}

func closeLocked() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	logPath = ""
	slogLogger = slog.New(slog.DiscardHandler)
}
