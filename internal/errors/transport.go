package errors

import (
	stdErrors "errors"
	"fmt"
)

// TransportError represents a failure to reach an upstream API at all
// (DNS, refused or reset connections, timeouts).
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport failure: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the underlying failure was a timeout.
func (e *TransportError) Timeout() bool {
	var t interface{ Timeout() bool }
	return stdErrors.As(e.Err, &t) && t.Timeout()
}

// NewTransportError wraps err as a TransportError for the named operation
func NewTransportError(op string, err error) *TransportError {
	return &TransportError{Op: op, Err: err}
}

// IsTransportError checks if error is a TransportError
func IsTransportError(err error) bool {
	var transportErr *TransportError
	return stdErrors.As(err, &transportErr)
}
