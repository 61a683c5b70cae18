// Package logger exposes the shared structured logger. Log records go to
// stderr so the interactive status line keeps stdout to itself.
package logger

import (
	"log/slog"
	"os"
	"sync"
)

var (
	defaultLogger *slog.Logger
	level         = new(slog.LevelVar)
	once          sync.Once
)

// Initialize sets up the shared logger. Safe to call more than once.
func Initialize() {
	once.Do(func() {
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})
		defaultLogger = slog.New(handler)
	})
}

// Get returns the shared logger, initializing it on first use.
func Get() *slog.Logger {
	Initialize()
	return defaultLogger
}

// SetLevel adjusts the minimum level of the shared logger.
func SetLevel(l slog.Level) {
	level.Set(l)
}

// Debug logs a debug level message.
func Debug(msg string, args ...any) {
	Get().Debug(msg, args...)
}

// Info logs an info level message.
func Info(msg string, args ...any) {
	Get().Info(msg, args...)
}

// Warn logs a warning level message.
func Warn(msg string, args ...any) {
	Get().Warn(msg, args...)
}

// Error logs an error level message.
func Error(msg string, args ...any) {
	Get().Error(msg, args...)
}

// With returns a logger carrying the given attributes.
func With(args ...any) *slog.Logger {
	return Get().With(args...)
}
