package logger

import (
	"os"
	"sync/atomic"

	charm "github.com/charmbracelet/log"
)

// defaultLogger is the global default logger instance stored atomically.
var defaultLogger atomic.Value

func init() {
	// Initialize with charm's default logger.
	defaultLogger.Store(charm.Default())
}

// Default returns the global default logger instance.
func Default() *charm.Logger {
	return defaultLogger.Load().(*charm.Logger)
}

// SetDefault sets a new global default logger instance.
func SetDefault(logger *charm.Logger) {
	if logger != nil {
		defaultLogger.Store(logger)
	}
}

// New creates a new logger with default settings writing to stderr.
func New() *charm.Logger {
	return charm.New(os.Stderr)
}

// SetLevelString parses a level name and applies it to the default logger.
func SetLevelString(level string) error {
	parsed, err := charm.ParseLevel(level)
	if err != nil {
		return err
	}
	Default().SetLevel(parsed)
	return nil
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg any, keyvals ...any) {
	Default().Debug(msg, keyvals...)
}

// Info logs an info message with optional key-value pairs.
func Info(msg any, keyvals ...any) {
	Default().Info(msg, keyvals...)
}

// Warn logs a warning message with optional key-value pairs.
func Warn(msg any, keyvals ...any) {
	Default().Warn(msg, keyvals...)
}

// Error logs an error message with optional key-value pairs.
func Error(msg any, keyvals ...any) {
	Default().Error(msg, keyvals...)
}
