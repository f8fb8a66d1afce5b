// Package logger provides structured logging for toolbridge.
//
// Stdout carries the MCP stdio transport, so log lines must never be written
// there. The serve command points the logger at an append-only file; other
// commands log to stderr. Debug and Section lines appear only in verbose mode.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	base              = build(os.Stderr, false)
)

func build(w io.Writer, v bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if v {
		level = zerolog.DebugLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// SetVerbose enables or disables debug logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	base = build(output, verbose)
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	base = build(output, verbose)
}

// OpenFile redirects logs to the file at path, creating parent directories.
// The caller closes the returned file when the process shuts down.
func OpenFile(path string) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	SetOutput(f)
	return f, nil
}

// Logger returns the current logger for callers that attach their own fields.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Debug logs a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	l := Logger()
	l.Debug().Msgf(format, args...)
}

// Section logs a section marker if verbose mode is enabled.
func Section(name string) {
	l := Logger()
	l.Debug().Str("section", name).Msg("=== " + name + " ===")
}

// Info logs an informational message.
func Info(format string, args ...any) {
	l := Logger()
	l.Info().Msgf(format, args...)
}

// Warn logs a warning message.
func Warn(format string, args ...any) {
	l := Logger()
	l.Warn().Msgf(format, args...)
}

// Error logs an error with a message.
func Error(err error, format string, args ...any) {
	l := Logger()
	l.Error().Err(err).Msgf(format, args...)
}
