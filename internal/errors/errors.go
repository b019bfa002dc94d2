package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates a remote service call timed out.
	ExitErrorWorkflow = 3   // Indicates a workflow step failed.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect
// user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// NetworkError represents a transport-level failure while calling a remote
// prediction service: connection refused, DNS failure, or a broken pipe.
// The original cause is preserved for error chain inspection.
type NetworkError struct {
	// Operation is the name of the remote capability being called.
	Operation string
	// Cause is the underlying transport error.
	Cause error
}

// Error returns a message naming the operation and the underlying cause.
func (e NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Operation, e.Cause)
}

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
func (e NetworkError) Unwrap() error { return e.Cause }

// HTTPError represents a non-2xx response from a remote prediction service.
// It captures the status code and the response body (or status line) verbatim
// so the failure can be surfaced to the analyst unchanged.
type HTTPError struct {
	// Operation is the name of the remote capability being called.
	Operation string
	// StatusCode is the HTTP status code returned by the service.
	StatusCode int
	// Message is the response body or status line, captured verbatim.
	Message string
}

// Error returns a formatted message describing the HTTP failure.
func (e HTTPError) Error() string {
	return fmt.Sprintf("%s: HTTP %d: %s", e.Operation, e.StatusCode, e.Message)
}

// TimeoutError represents a remote call that exceeded its configured bound.
// It captures the operation name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ParseError represents an unreadable document or a remote payload that does
// not match the expected schema. During fallback synthesis it is recovered
// locally and never surfaced to the user.
type ParseError struct {
	// Source identifies what was being parsed (e.g., a filename or capability).
	Source string
	// Message explains the parse failure.
	Message string
}

// Error returns a formatted message describing the parse failure.
func (e ParseError) Error() string {
	return fmt.Sprintf("parse error in %q: %s", e.Source, e.Message)
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline
// exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// IsTimeout reports whether err is a TimeoutError or a context deadline error.
// ServiceClient uses this to classify a hung remote service.
func IsTimeout(err error) bool {
	var te TimeoutError
	return errors.As(err, &te) || errors.Is(err, context.DeadlineExceeded)
}
