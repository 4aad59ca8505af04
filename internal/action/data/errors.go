// Package data provides JSON reformatting and pattern extraction transforms.
package data

import "fmt"

// ErrorType represents the type of data transform error.
type ErrorType string

const (
	// ErrorTypeParseError indicates structurally invalid JSON.
	ErrorTypeParseError ErrorType = "parse_error"
)

// OperationError represents an error from a data transform.
type OperationError struct {
	Operation string
	Message   string
	ErrorType ErrorType
	Cause     error
	Position  int64 // Byte offset for parse errors, when known
}

// Error implements the error interface.
func (e *OperationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Operation, e.Message)
}

// Unwrap returns the underlying cause.
func (e *OperationError) Unwrap() error {
	return e.Cause
}

// Kind returns the error classification used for metrics labels.
func (e *OperationError) Kind() string {
	return string(e.ErrorType)
}

// IsRetryable returns true if the error may succeed on retry.
func (e *OperationError) IsRetryable() bool {
	return false
}
