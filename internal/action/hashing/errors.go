package hashing

import "fmt"

// ErrorType represents the type of hashing transform error.
type ErrorType string

const (
	// ErrorTypeInternal indicates an unexpected failure preparing the input.
	ErrorTypeInternal ErrorType = "internal"
)

// OperationError represents an error from a hashing transform.
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
