package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain-specific errors
var (
	// ErrURLNotFound is returned when a short code has no stored URL.
	// An empty stored value counts as not found.
	ErrURLNotFound = errors.New("URL not found")

	// ErrURLRequired is returned when a shorten request carries no URL
	ErrURLRequired = errors.New("url is required")

	// ErrInvalidURL is returned when strict validation rejects a URL
	ErrInvalidURL = errors.New("invalid url")

	// ErrCodeAllocation is returned when every generated code was already taken
	ErrCodeAllocation = errors.New("could not allocate code")

	// ErrStoreUnavailable is returned for key-value store connectivity issues
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrRateLimitExceeded is returned when rate limit is hit
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
)

// AppError wraps errors with additional context
type AppError struct {
	Err        error  // Original error
	Message    string // User-facing message
	StatusCode int    // HTTP status code
	Internal   bool   // Whether to log as internal error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Message != "" && e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

// Unwrap returns the wrapped error for errors.Is and errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new application error with context
func NewAppError(err error, message string, statusCode int, internal bool) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		StatusCode: statusCode,
		Internal:   internal,
	}
}

// NewStoreError wraps a key-value store failure as a 500
func NewStoreError(op string, err error) *AppError {
	return &AppError{
		Err:        fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err),
		Message:    "internal error",
		StatusCode: http.StatusInternalServerError,
		Internal:   true,
	}
}
