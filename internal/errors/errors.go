// Package errors provides coded domain errors for the meal planner.
//
// Services return these errors; the session decides how to present them:
//
//	if errors.Is(err, errors.ErrPrecondition) {
//	    io.WriteLine("Unable to save. Plan your meals first.")
//	}
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code represents a machine-readable error code.
type Code string

const (
	CodeValidation   Code = "VALIDATION"
	CodeNotFound     Code = "NOT_FOUND"
	CodePrecondition Code = "PRECONDITION"
	CodeUnplannable  Code = "UNPLANNABLE"
	CodeStorage      Code = "STORAGE"
)

// Error is a domain error with a code, message, and optional details.
type Error struct {
	Code    Code
	Message string
	Details any
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// WithDetails returns a copy of the error carrying details.
func (e *Error) WithDetails(details any) *Error {
	return &Error{Code: e.Code, Message: e.Message, Details: details, cause: e.cause}
}

// WithCause returns a copy of the error wrapping err.
func (e *Error) WithCause(err error) *Error {
	return &Error{Code: e.Code, Message: e.Message, Details: e.Details, cause: err}
}

// Sentinel errors for use with errors.Is().
var (
	ErrValidation   = &Error{Code: CodeValidation, Message: "validation error"}
	ErrNotFound     = &Error{Code: CodeNotFound, Message: "not found"}
	ErrPrecondition = &Error{Code: CodePrecondition, Message: "precondition failed"}
	ErrUnplannable  = &Error{Code: CodeUnplannable, Message: "nothing to plan"}
	ErrStorage      = &Error{Code: CodeStorage, Message: "storage failure"}
)

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// ValidationWithDetails creates a validation error with per-field messages.
func ValidationWithDetails(msg string, details map[string]string) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}

// NotFound creates a not found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// NotFoundf creates a not found error with a formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Precondition creates a precondition error.
func Precondition(msg string) *Error {
	return &Error{Code: CodePrecondition, Message: msg}
}

// Unplannable creates an error for a slot that has no meals to choose from.
func Unplannable(msg string) *Error {
	return &Error{Code: CodeUnplannable, Message: msg}
}

// Storage wraps a persistence failure.
func Storage(msg string, cause error) *Error {
	return &Error{Code: CodeStorage, Message: msg, cause: cause}
}
