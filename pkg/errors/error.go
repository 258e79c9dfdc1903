// Package errors provides structured error handling with typed error codes.
//
// Error codes are organized into categories:
//   - General errors (1-99): Unknown and general errors
//   - Validation errors (100-199): Invalid configuration, periods and parameters
//   - Data/Resource errors (200-299): Unavailable sources, directory setup, output files
//   - Market data errors (700-799): Market data fetching, writing and parsing errors
//
// Usage:
//
//	// Create a new error
//	err := errors.New(errors.ErrCodeInvalidConfiguration, "data directory is required")
//
//	// Create a formatted error
//	err := errors.Newf(errors.ErrCodeInvalidPeriod, "unsupported period %s", period)
//
//	// Wrap an existing error
//	err := errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "failed to fetch history", originalErr)
//
//	// Check error code
//	if errors.HasCode(err, errors.ErrCodeMarketDataFetchFailed) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error represents a structured error with an error code and message.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   nil,
	}
}

// Wrap wraps an existing error with a new Error containing the given code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an existing error with a new Error containing the given code and formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard errors.Is function.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around the standard errors.As function.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode extracts the ErrorCode from an error if it's an *Error type.
// Returns ErrCodeUnknown if the error is not an *Error type.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return ErrCodeUnknown
}

// HasCode checks if an error has a specific ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// HTTPStatusError is returned by HTTP-backed providers when the upstream
// API answers with a non-success status.
type HTTPStatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

// NewHTTPStatusError creates a new HTTPStatusError.
func NewHTTPStatusError(provider string, statusCode int, body string) *HTTPStatusError {
	return &HTTPStatusError{
		Provider:   provider,
		StatusCode: statusCode,
		Body:       body,
	}
}

// Error implements the error interface.
func (e *HTTPStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Provider, e.StatusCode)
	}

	return fmt.Sprintf("%s: unexpected status %d: %s", e.Provider, e.StatusCode, e.Body)
}

// IsHTTPStatusError checks if an error is an HTTPStatusError.
// It uses errors.As to check the error chain.
func IsHTTPStatusError(err error) bool {
	var statusErr *HTTPStatusError

	return errors.As(err, &statusErr)
}
