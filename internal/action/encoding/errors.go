// Package encoding provides the Base64, hex, percent-encoding and HTML entity transforms.
package encoding

import "fmt"

// ErrorType represents the type of encoding transform error.
type ErrorType string

const (
	// ErrorTypeDecode indicates input the decoder rejects (bad alphabet,
	// bad padding, malformed escape, odd hex length) or decoded bytes that
	// are not valid UTF-8.
	ErrorTypeDecode ErrorType = "decode_error"
)

// OperationError represents an error from an encoding transform.
type OperationError struct {
	Operation string
	Message   string
	ErrorType ErrorType
	Cause     error
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
	// Decoding is deterministic
	return false
}
