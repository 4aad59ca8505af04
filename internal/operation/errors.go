package operation

import "fmt"

// ErrorType classifies dispatch errors.
type ErrorType string

const (
	// ErrorTypeUnknownOperation indicates a name with no registry entry.
	ErrorTypeUnknownOperation ErrorType = "unknown_operation"

	// ErrorTypeMissingParameter indicates an absent required parameter.
	ErrorTypeMissingParameter ErrorType = "missing_parameter"

	// ErrorTypeInvalidParameter indicates a required parameter with no
	// default whose value failed to coerce.
	ErrorTypeInvalidParameter ErrorType = "invalid_parameter"

	// ErrorTypeInternal indicates a transform that panicked.
	ErrorTypeInternal ErrorType = "internal"
)

// Error represents a dispatch failure raised by the registry itself, as
// opposed to a failure reported by a transform.
type Error struct {
	// Type classifies the error for metrics
	Type ErrorType

	// Operation is the requested operation name
	Operation string

	// Message is the human-readable error description returned to callers
	Message string

	// SuggestText provides guidance on how to resolve the error.
	SuggestText string

	// Cause is the underlying error
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Kind returns the error classification used for metrics labels.
func (e *Error) Kind() string {
	return string(e.Type)
}

// IsRetryable returns false; dispatch errors are deterministic.
func (e *Error) IsRetryable() bool {
	return false
}

// Suggestion returns actionable guidance for resolving the error.
func (e *Error) Suggestion() string {
	return e.SuggestText
}

// NewUnknownOperationError creates the error returned for an unregistered name.
func NewUnknownOperationError(name string) *Error {
	return &Error{
		Type:        ErrorTypeUnknownOperation,
		Operation:   name,
		Message:     fmt.Sprintf("Unknown operation: %s", name),
		SuggestText: "List available operations with GET /api/operations or 'textchef operations'",
	}
}

// NewMissingParameterError creates the error for an absent required parameter.
func NewMissingParameterError(operation, param string) *Error {
	return &Error{
		Type:        ErrorTypeMissingParameter,
		Operation:   operation,
		Message:     fmt.Sprintf("Missing required parameter '%s' for operation %s", param, operation),
		SuggestText: fmt.Sprintf("Provide the %q parameter", param),
	}
}

// NewInvalidParameterError creates the error for a required parameter that
// failed to coerce and has no default to fall back to.
func NewInvalidParameterError(operation, param string, cause error) *Error {
	return &Error{
		Type:        ErrorTypeInvalidParameter,
		Operation:   operation,
		Message:     fmt.Sprintf("Invalid value for required parameter '%s' of operation %s", param, operation),
		Cause:       cause,
		SuggestText: "Check the parameter type in the operation descriptor",
	}
}

// kinded is implemented by the error types of this package and of the
// transform packages.
type kinded interface {
	Kind() string
}
