// Package errors defines the error taxonomy for calls against the remote
// notification backend. Every failure a backend operation can produce maps
// to exactly one of these types, so callers can decide between retrying,
// reporting, and treating the server state as unknown.
package errors

import (
	"fmt"

	"ogsnotify/internal/errors"
)

// ErrInvalidEndpoint means the configured base URL could not be turned into
// a request. This is a configuration bug, not a runtime condition.
var ErrInvalidEndpoint = errors.New("invalid server endpoint")

// ErrBindingIncomplete is returned by an explicit re-registration when the
// store holds fewer than both halves of the (user, token) binding.
var ErrBindingIncomplete = errors.New("missing user ID or device token")

// TransportError is a connectivity-level failure: the request never produced
// an HTTP response. Offline distinguishes "the network is down" classes
// (connection refused, network unreachable, no connectivity) from other
// transport failures, so callers can tell transient from actionable.
type TransportError struct {
	Err     error
	Offline bool
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError wraps a connectivity failure, with its offline class.
func NewTransportError(err error, offline bool) *TransportError {
	return &TransportError{Err: err, Offline: offline}
}

// ServerError is a non-200 HTTP response from the backend.
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error: HTTP %d", e.StatusCode)
}

// NewServerError builds a ServerError for the given status code.
func NewServerError(status int) *ServerError {
	return &ServerError{StatusCode: status}
}

// DecodingError is a 200 response whose body does not parse against the
// expected shape. Distinct from ServerError: the server accepted the call
// but the payload is unusable, so no partially-populated result is returned.
type DecodingError struct {
	Err error
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("decoding failure: %v", e.Err)
}

func (e *DecodingError) Unwrap() error {
	return e.Err
}

// NewDecodingError wraps a body-parse failure.
func NewDecodingError(err error) *DecodingError {
	return &DecodingError{Err: err}
}

// IsOffline reports whether err is a transport failure of the offline class.
func IsOffline(err error) bool {
	var terr *TransportError
	if errors.As(err, &terr) {
		return terr.Offline
	}

	return false
}

// IsRetryable reports whether a registration failure is worth retrying:
// transport failures and 5xx responses are; 4xx and decode failures are not.
func IsRetryable(err error) bool {
	var terr *TransportError
	if errors.As(err, &terr) {
		return true
	}

	var serr *ServerError
	if errors.As(err, &serr) {
		return serr.StatusCode >= 500
	}

	return false
}
