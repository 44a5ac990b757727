package transport

import (
	"errors"
	"fmt"
)

// Status is a transport result code.
type Status int

const (
	// StatusOK indicates success.
	StatusOK Status = iota

	// StatusResourceExhausted indicates the transport is temporarily out of
	// buffer space. Retry later.
	StatusResourceExhausted

	// StatusConnectionInvalid indicates the connection is gone.
	StatusConnectionInvalid

	// StatusBadArgument indicates the caller broke the call contract.
	StatusBadArgument

	// StatusAborted indicates the connection was aborted locally.
	StatusAborted

	// StatusReset indicates the peer reset the connection.
	StatusReset

	// StatusClosed indicates the connection was closed.
	StatusClosed

	// StatusTimeout indicates the operation timed out.
	StatusTimeout

	// StatusInProgress indicates a connect is already outstanding.
	StatusInProgress
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusResourceExhausted:
		return "RESOURCE_EXHAUSTED"
	case StatusConnectionInvalid:
		return "CONNECTION_INVALID"
	case StatusBadArgument:
		return "BAD_ARGUMENT"
	case StatusAborted:
		return "ABORTED"
	case StatusReset:
		return "RESET"
	case StatusClosed:
		return "CLOSED"
	case StatusTimeout:
		return "TIMEOUT"
	case StatusInProgress:
		return "IN_PROGRESS"
	default:
		return fmt.Sprintf("STATUS(%d)", int(s))
	}
}

// Err returns nil for StatusOK and a *StatusError otherwise.
func (s Status) Err() error {
	if s == StatusOK {
		return nil
	}
	return &StatusError{Status: s}
}

// StatusError carries a non-OK Status as an error.
type StatusError struct {
	Status Status
	Err    error
}

func (e *StatusError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transport: %s: %v", e.Status, e.Err)
	}
	return "transport: " + e.Status.String()
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// StatusOf extracts the Status carried by err. It returns StatusOK for a nil
// error and StatusConnectionInvalid for errors that carry no status.
func StatusOf(err error) Status {
	if err == nil {
		return StatusOK
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return StatusConnectionInvalid
}
