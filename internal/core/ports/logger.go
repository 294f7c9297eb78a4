// Package ports defines the core interfaces for the application.
package ports

import "io"

// Logger defines the interface for logging.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	// Debug logs a message at debug level with optional key-value pairs.
	Debug(msg string, args ...any)

	// Info logs a message at info level with optional key-value pairs.
	Info(msg string, args ...any)

	// Warn logs a message at warn level with optional key-value pairs.
	Warn(msg string, args ...any)

	// Error logs an error.
	Error(err error)

	// SetOutput updates the logger's output destination.
	SetOutput(w io.Writer)

	// SetVerbose toggles debug-level output.
	SetVerbose(verbose bool)
}
