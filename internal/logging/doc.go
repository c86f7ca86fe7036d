// Package logging provides structured logging utilities for the
// calendar-mcp application.
//
// This package centralizes logging patterns to ensure consistent,
// structured logging throughout the codebase using the standard
// library's slog package.
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "add_event")
//	logger.Info("event stored",
//	    logging.Status("success"))
//
// # Security Considerations
//
// OAuth tokens are never logged directly; SanitizeToken reduces a token
// to a length indicator before it reaches a log line.
package logging
