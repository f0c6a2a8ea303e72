package strider

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCategory tells callers how to react to a failure.
type ErrorCategory string

const (
	// ErrorTransient marks failures worth retrying, such as rate limits,
	// network hiccups, or an overloaded backend.
	ErrorTransient ErrorCategory = "transient"

	// ErrorPermanent marks failures that retrying cannot fix, such as a
	// bad API key or an unknown model.
	ErrorPermanent ErrorCategory = "permanent"

	// ErrorUserInput marks failures caused by the request itself, such as
	// malformed parameters or a policy violation.
	ErrorUserInput ErrorCategory = "user_input"
)

// CategorizedError is implemented by errors that carry handling metadata.
// The helpers below use errors.As, so the metadata survives wrapping with
// fmt.Errorf and %w.
type CategorizedError interface {
	error
	Category() ErrorCategory
	Retryable() bool
	StatusCode() int
	RetryAfter() time.Duration
}

// Error is the concrete categorized error produced by provider adapters
// when translating SDK transport and auth failures. The agent loop treats
// any provider error as fatal; the retry layer inspects the category to
// decide whether another attempt is worthwhile.
type Error struct {
	Msg        string
	Cat        ErrorCategory
	Code       int           // HTTP status, 0 when not applicable
	RetryDelay time.Duration // server-suggested wait, 0 when absent
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
	}
	return e.Msg
}

func (e *Error) Unwrap() error             { return e.Cause }
func (e *Error) Category() ErrorCategory   { return e.Cat }
func (e *Error) Retryable() bool           { return e.Cat == ErrorTransient }
func (e *Error) StatusCode() int           { return e.Code }
func (e *Error) RetryAfter() time.Duration { return e.RetryDelay }

// NewTransientError builds a retryable error.
func NewTransientError(msg string, statusCode int, cause error) *Error {
	return &Error{Msg: msg, Cat: ErrorTransient, Code: statusCode, Cause: cause}
}

// NewTransientErrorWithRetry builds a retryable error carrying the
// server's suggested wait, typically parsed from a Retry-After header.
func NewTransientErrorWithRetry(msg string, statusCode int, retryAfter time.Duration, cause error) *Error {
	return &Error{Msg: msg, Cat: ErrorTransient, Code: statusCode, RetryDelay: retryAfter, Cause: cause}
}

// NewPermanentError builds an error that must not be retried.
func NewPermanentError(msg string, statusCode int, cause error) *Error {
	return &Error{Msg: msg, Cat: ErrorPermanent, Code: statusCode, Cause: cause}
}

// NewUserInputError builds an error attributing the failure to the request.
func NewUserInputError(msg string, statusCode int, cause error) *Error {
	return &Error{Msg: msg, Cat: ErrorUserInput, Code: statusCode, Cause: cause}
}

func categorized(err error) (CategorizedError, bool) {
	var ce CategorizedError
	ok := errors.As(err, &ce)
	return ce, ok
}

// IsTransient reports whether err, anywhere in its chain, is categorized
// as transient.
func IsTransient(err error) bool {
	ce, ok := categorized(err)
	return ok && ce.Category() == ErrorTransient
}

// IsPermanent reports whether err is categorized as permanent.
func IsPermanent(err error) bool {
	ce, ok := categorized(err)
	return ok && ce.Category() == ErrorPermanent
}

// IsUserInput reports whether err is categorized as a user input error.
func IsUserInput(err error) bool {
	ce, ok := categorized(err)
	return ok && ce.Category() == ErrorUserInput
}

// StatusCodeOf extracts the HTTP status from a categorized error, or 0.
func StatusCodeOf(err error) int {
	if ce, ok := categorized(err); ok {
		return ce.StatusCode()
	}
	return 0
}

// RetryAfterOf extracts the server-suggested wait from a categorized
// error, or 0.
func RetryAfterOf(err error) time.Duration {
	if ce, ok := categorized(err); ok {
		return ce.RetryAfter()
	}
	return 0
}
