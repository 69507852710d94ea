package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Sentinel errors. Each maps to one distinct user-visible failure class, so
// callers must not collapse them into a generic message.
var (
	// ErrInvalidInput covers malformed documents: zero pages, a bad page
	// window, or a cached table missing expected columns.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingCredential means no API key was configured. Checked before
	// any processing starts.
	ErrMissingCredential = errors.New("missing api credential")

	// ErrOracleUnavailable covers transport or auth failures talking to the
	// extraction service.
	ErrOracleUnavailable = errors.New("oracle unavailable")

	// ErrBadOracleJSON means the oracle answered but no JSON could be
	// recovered from the response where one is required.
	ErrBadOracleJSON = errors.New("oracle returned invalid json")

	// ErrInsufficientInput means fewer than two documents had rows in the
	// requested category; comparison aborts and writes no cache artifact.
	ErrInsufficientInput = errors.New("insufficient input")

	ErrNotFound = errors.New("resource not found")
	ErrInternal = errors.New("internal error")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
