package service

import "errors"

var (
	// ErrNotFound signals that the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrForbidden signals that the caller does not own the record.
	ErrForbidden = errors.New("forbidden")
	// ErrRateLimited signals too many synchronization attempts; the caller
	// should back off and retry after the window passes.
	ErrRateLimited = errors.New("too many sync attempts, try again shortly")
	// ErrInvalidCredentials signals a failed login.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken signals a registration with an email already in use.
	ErrEmailTaken = errors.New("email already registered")
)

// ValidationError is a client-fixable input problem. Its message is surfaced
// to the caller verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// UpstreamError is a non-success response or transport failure from the
// external consultation service. The message is passed through from upstream
// when available.
type UpstreamError struct {
	Message string
}

func (e *UpstreamError) Error() string { return e.Message }
