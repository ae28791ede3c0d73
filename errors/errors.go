package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// Configuration errors
	ErrConfigParse   ErrorType = "CONFIG_PARSE_ERROR"
	ErrConfigInvalid ErrorType = "CONFIG_INVALID_ERROR"

	// CLI errors
	ErrUsage ErrorType = "USAGE_ERROR"

	// AWS errors
	ErrAWSClient    ErrorType = "AWS_CLIENT_ERROR"
	ErrAWSAPI       ErrorType = "AWS_API_ERROR"
	ErrUnauthorized ErrorType = "UNAUTHORIZED_ERROR"
	ErrDryRun       ErrorType = "DRY_RUN"

	// Instance lifecycle errors
	ErrInstanceNotFound ErrorType = "INSTANCE_NOT_FOUND_ERROR"
	ErrInvalidState     ErrorType = "INVALID_STATE_ERROR"
)

// CustomError represents a custom error with additional context
type CustomError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	WrappedErr error
}

// New creates a new custom error
func New(errorType ErrorType, message string, context map[string]interface{}, wrappedErr error) *CustomError {
	return &CustomError{
		Type:       errorType,
		Message:    message,
		Context:    context,
		WrappedErr: wrappedErr,
	}
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.WrappedErr != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.WrappedErr)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error
func (e *CustomError) Unwrap() error {
	return e.WrappedErr
}

// Is checks if the error, or any error it wraps, is of a specific type
func Is(err error, errType ErrorType) bool {
	return TypeOf(err) == errType
}

// TypeOf returns the type of the first CustomError in err's chain, or "" if there is none
func TypeOf(err error) ErrorType {
	var customErr *CustomError
	if stderrors.As(err, &customErr) {
		return customErr.Type
	}
	return ""
}

// MessageOf returns the human readable message of err, without the type prefix
// and wrapped error text that Error adds.
func MessageOf(err error) string {
	var customErr *CustomError
	if stderrors.As(err, &customErr) {
		return customErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
