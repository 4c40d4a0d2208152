package menagerie

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

// ErrorCategory classifies upstream failures by how a caller should treat them.
type ErrorCategory string

const (
	// ErrorTransient indicates a temporary failure such as a rate limit or
	// server overload.
	ErrorTransient ErrorCategory = "transient"

	// ErrorPermanent indicates a failure that will not go away on its own,
	// such as an invalid API key or a missing model.
	ErrorPermanent ErrorCategory = "permanent"

	// ErrorUserInput indicates the request itself was rejected.
	ErrorUserInput ErrorCategory = "user_input"
)

// CategorizedError is an error that reports how it should be handled.
type CategorizedError interface {
	error
	Category() ErrorCategory
	StatusCode() int
}

// Error is a categorized upstream error.
type Error struct {
	Msg   string
	Cat   ErrorCategory
	Code  int   // HTTP status code, 0 if not applicable
	Cause error // underlying error
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Cause != nil && e.Msg == "" {
		return e.Cause.Error()
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
	}
	return e.Msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Category returns the error category.
func (e *Error) Category() ErrorCategory {
	return e.Cat
}

// StatusCode returns the HTTP status code, or 0 if not applicable.
func (e *Error) StatusCode() int {
	return e.Code
}

// NewError creates a categorized error for an HTTP status code.
func NewError(msg string, statusCode int, cause error) *Error {
	return &Error{
		Msg:   msg,
		Cat:   CategorizeStatus(statusCode),
		Code:  statusCode,
		Cause: cause,
	}
}

// CategorizeStatus determines the error category from an HTTP status code.
func CategorizeStatus(code int) ErrorCategory {
	switch {
	case code == http.StatusTooManyRequests:
		return ErrorTransient
	case code >= 500 && code < 600:
		return ErrorTransient
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return ErrorPermanent
	case code == http.StatusBadRequest || code == http.StatusNotFound || code == http.StatusUnprocessableEntity:
		return ErrorUserInput
	default:
		return ErrorPermanent
	}
}

// IsTransient returns true if the error is categorized as transient.
func IsTransient(err error) bool {
	return categoryOf(err) == ErrorTransient
}

// IsPermanent returns true if the error is categorized as permanent.
func IsPermanent(err error) bool {
	return categoryOf(err) == ErrorPermanent
}

// IsUserInput returns true if the error is categorized as a rejected request.
func IsUserInput(err error) bool {
	return categoryOf(err) == ErrorUserInput
}

// StatusCodeOf returns the HTTP status code from a categorized error, or 0.
func StatusCodeOf(err error) int {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.StatusCode()
	}
	return 0
}

// Describe returns a short human readable explanation of an upstream error,
// suitable for showing to an end user.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var ce CategorizedError
	if !errors.As(err, &ce) {
		return err.Error()
	}
	code := ce.StatusCode()
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return "the provider rejected the credentials (status " + strconv.Itoa(code) + ")"
	case code == http.StatusTooManyRequests:
		return "the provider is rate limiting requests, try again shortly"
	case ce.Category() == ErrorTransient:
		return "the provider is temporarily unavailable (status " + strconv.Itoa(code) + ")"
	case ce.Category() == ErrorUserInput:
		return "the provider rejected the request: " + ce.Error()
	default:
		return ce.Error()
	}
}

func categoryOf(err error) ErrorCategory {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.Category()
	}
	return ""
}
