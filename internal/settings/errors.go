package settings

import "fmt"

// ErrorType represents the category of a settings error.
type ErrorType int

const (
	// ErrTypeValidation indicates a rejected mutation (index out of range).
	ErrTypeValidation ErrorType = iota
	// ErrTypeParse indicates a malformed persisted blob.
	ErrTypeParse
	// ErrTypeStore indicates a durable store failure (read or write).
	ErrTypeStore
)

// String returns a human-readable name for the error type.
func (et ErrorType) String() string {
	switch et {
	case ErrTypeValidation:
		return "Validation Error"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeStore:
		return "Store Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// Error represents an error raised by settings operations.
type Error struct {
	Type    ErrorType // Category of error
	Message string    // Human-readable error message
	Err     error     // Underlying error (if any)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationError creates a validation error.
func NewValidationError(message string) *Error {
	return &Error{Type: ErrTypeValidation, Message: message}
}

// NewParseError creates a parse error for a malformed persisted blob.
func NewParseError(message string, err error) *Error {
	return &Error{Type: ErrTypeParse, Message: message, Err: err}
}

// NewStoreError creates a durable store error.
func NewStoreError(message string, err error) *Error {
	return &Error{Type: ErrTypeStore, Message: message, Err: err}
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == ErrTypeValidation
	}
	return false
}

// IsParseError checks if an error is a parse error.
func IsParseError(err error) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == ErrTypeParse
	}
	return false
}

// IsStoreError checks if an error is a durable store error.
func IsStoreError(err error) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == ErrTypeStore
	}
	return false
}
