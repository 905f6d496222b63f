package errors

import (
	stdErrors "errors"
	"fmt"
)

// ErrMissingField marks a response that decoded but lacks a required top-level field.
var ErrMissingField = stdErrors.New("missing field")

// ResponseError represents an upstream response that could not be used:
// a non-2xx status, a body that is not JSON, or a body missing expected fields.
type ResponseError struct {
	Op         string
	StatusCode int
	Body       string // first bytes of the body, only set for status failures
	Err        error
}

func (e *ResponseError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Body != "":
		return fmt.Sprintf("%s: unexpected status %d: %s", e.Op, e.StatusCode, e.Body)
	case e.StatusCode != 0 && e.Err == nil:
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
	default:
		return fmt.Sprintf("%s: malformed response: %v", e.Op, e.Err)
	}
}

func (e *ResponseError) Unwrap() error {
	return e.Err
}

// NewStatusError creates a ResponseError for a non-2xx status code
func NewStatusError(op string, statusCode int, body string) *ResponseError {
	return &ResponseError{Op: op, StatusCode: statusCode, Body: body}
}

// NewMalformedError creates a ResponseError for a body that could not be decoded
func NewMalformedError(op string, err error) *ResponseError {
	return &ResponseError{Op: op, Err: err}
}

// NewMissingFieldError creates a ResponseError for an absent top-level field
func NewMissingFieldError(op, field string) *ResponseError {
	return &ResponseError{Op: op, Err: fmt.Errorf("%w %q", ErrMissingField, field)}
}

// IsResponseError checks if error is a ResponseError
func IsResponseError(err error) bool {
	var respErr *ResponseError
	return stdErrors.As(err, &respErr)
}
