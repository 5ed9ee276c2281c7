// Package logger holds the process-wide structured logger shared by the
// allocators and allocctl.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// EnvLogAlloc enables debug allocation logging on stderr when set to any
// non-empty value.
const EnvLogAlloc = "ALLOCKIT_LOG_ALLOC"

// L is the global logger instance. It discards all output unless
// ALLOCKIT_LOG_ALLOC is set or Init enables it.
var L = fromEnv()

// file is the log file opened by Init for Options.Path, if any.
var file *os.File

// Options configures the logger initialization.
type Options struct {
	Enabled bool       // If false, all logging is discarded
	Writer  io.Writer  // Destination. Default: os.Stderr
	Path    string     // If set, append to this file instead of Writer
	Level   slog.Level // Minimum log level. Default: LevelInfo when enabled
	JSON    bool       // Emit JSON records instead of key=value text
}

// Init configures logging. Call from main() before any log calls.
// If opts.Enabled is false, all log output is discarded.
// A log file opened by an earlier Init is closed.
func Init(opts Options) error {
	if err := Close(); err != nil {
		return err
	}
	if !opts.Enabled {
		L = discard()
		return nil
	}

	w := opts.Writer
	if opts.Path != "" {
		f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		file = f
		w = f
	}
	if w == nil {
		w = os.Stderr
	}

	level := opts.Level
	if level == 0 {
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	if opts.JSON {
		L = slog.New(slog.NewJSONHandler(w, handlerOpts))
	} else {
		L = slog.New(slog.NewTextHandler(w, handlerOpts))
	}
	return nil
}

// Close closes the log file opened by Init and discards further output.
// It is a no-op when logging goes to a writer.
func Close() error {
	if file == nil {
		return nil
	}
	f := file
	file = nil
	L = discard()
	return f.Close()
}

// Or returns l when non-nil and the global logger otherwise.
func Or(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return L
}

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func fromEnv() *slog.Logger {
	if os.Getenv(EnvLogAlloc) == "" {
		return discard()
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) { L.Error(msg, args...) }
