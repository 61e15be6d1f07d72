package domain

import (
	"errors"
	"fmt"
)

var ErrSnapshotNotFound = errors.New("sensor snapshot not found")

// ValidationError reports a bad or missing local parameter. Operations fail
// with it before any network call is made.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s", e.Reason)
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// AuthError reports credentials the service rejected, after at most one
// transparent refresh attempt.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("auth: %s", e.Reason)
}

func (e *AuthError) Unwrap() error { return e.Err }

// RemoteError is a well-formed request the service refused: any envelope
// code other than success or auth-expired.
type RemoteError struct {
	Code    int
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote: code %d: %s", e.Code, e.Message)
}

// TransportError covers network-level failures: dial errors, timeouts and
// malformed response bodies. Distinct from RemoteError so callers can tell a
// refusal from an unreachable service.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsAuth(err error) bool {
	var target *AuthError
	return errors.As(err, &target)
}

func IsRemote(err error) bool {
	var target *RemoteError
	return errors.As(err, &target)
}

func IsTransport(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}
