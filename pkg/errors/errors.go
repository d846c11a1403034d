package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"maps"
)

// ErrorCode represents a structured error classification.
type ErrorCode string

const (
	// ErrCodeNotFound indicates a requested record was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeTimeout indicates an operation exceeded its time limit.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeInternal indicates an internal failure, including failed store writes.
	ErrCodeInternal ErrorCode = "INTERNAL"
	// ErrCodeInvalidRequest indicates malformed or invalid input.
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	// ErrCodeRateLimitExceeded indicates the client exceeded an enforced request limit.
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
	// ErrCodeMethodNotAllowed indicates the HTTP method is not allowed for the resource.
	ErrCodeMethodNotAllowed ErrorCode = "METHOD_NOT_ALLOWED"
	// ErrCodePayloadTooLarge indicates an upload exceeded the configured size.
	ErrCodePayloadTooLarge ErrorCode = "PAYLOAD_TOO_LARGE"
	// ErrCodeUnavailable indicates a service or resource is temporarily unavailable.
	ErrCodeUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
)

// StructuredError is an error with a code, a message safe to show to API
// clients, an optional cause and optional context rendered as response
// details.
type StructuredError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

func (e *StructuredError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
}

func (e *StructuredError) Unwrap() error { return e.Cause }

// With returns a copy of e with key set in its context.
func (e *StructuredError) With(key string, value any) *StructuredError {
	out := *e
	out.Context = make(map[string]any, len(e.Context)+1)
	maps.Copy(out.Context, e.Context)
	out.Context[key] = value
	return &out
}

// New returns an error without a cause.
func New(code ErrorCode, message string) *StructuredError {
	return &StructuredError{Code: code, Message: message}
}

// NewWithContext is New with response details.
func NewWithContext(code ErrorCode, message string, details map[string]any) *StructuredError {
	return &StructuredError{Code: code, Message: message, Context: details}
}

// Wrap attaches code and message to cause. A cause that is a context
// deadline reports ErrCodeTimeout whatever code was asked for, so a slow
// store read surfaces as 504 instead of 500.
func Wrap(code ErrorCode, message string, cause error) *StructuredError {
	return WrapWithContext(code, message, cause, nil)
}

// WrapWithContext is Wrap with response details.
func WrapWithContext(code ErrorCode, message string, cause error, details map[string]any) *StructuredError {
	return &StructuredError{Code: causeCode(code, cause), Message: message, Cause: cause, Context: details}
}

func causeCode(code ErrorCode, cause error) ErrorCode {
	if cause != nil && stderrors.Is(cause, context.DeadlineExceeded) {
		return ErrCodeTimeout
	}
	return code
}

// CodeOf returns the code of the first StructuredError in the chain,
// ErrCodeInternal when there is none, and "" for a nil error.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var se *StructuredError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return ErrCodeInternal
}

// IsCode reports whether err carries code.
func IsCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}
