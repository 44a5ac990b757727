package client

import (
	"errors"
	"fmt"

	"github.com/mash-protocol/pollstream/pkg/transport"
)

// Kind classifies client errors.
type Kind uint8

const (
	// KindConfiguration indicates an unusable address, port or config.
	KindConfiguration Kind = iota + 1

	// KindTransport indicates a transport failure.
	KindTransport

	// KindResourceExhaustion indicates a local buffer limit or allocation
	// failure.
	KindResourceExhaustion
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "CONFIGURATION"
	case KindTransport:
		return "TRANSPORT"
	case KindResourceExhaustion:
		return "RESOURCE_EXHAUSTION"
	default:
		return "UNKNOWN"
	}
}

// Error makes a Kind usable as an errors.Is target.
func (k Kind) Error() string {
	return "client: " + k.String()
}

// Kind sentinels, for errors.Is.
var (
	ErrConfiguration     error = KindConfiguration
	ErrTransport         error = KindTransport
	ErrResourceExhausted error = KindResourceExhaustion
)

// Cause sentinels carried in Error.Err.
var (
	ErrInvalidAddress = errors.New("invalid address")
	ErrInvalidPort    = errors.New("port out of range")
	ErrNoTransport    = errors.New("no transport factory")
	ErrNotConnected   = errors.New("not connected")
	ErrQueueFull      = errors.New("queue limit reached")
	ErrProtocolDefect = errors.New("transport contract violated")
)

// Error is the error type returned by the client.
type Error struct {
	Kind   Kind
	Op     string
	Status transport.Status
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("client: %s: %s", e.Op, e.Kind.String())
	if e.Status != transport.StatusOK {
		msg += " (" + e.Status.String() + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches a Kind sentinel.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

func configError(op string, cause error) *Error {
	return &Error{Kind: KindConfiguration, Op: op, Err: cause}
}

func resourceError(op string, cause error) *Error {
	return &Error{Kind: KindResourceExhaustion, Op: op, Err: cause}
}

func transportError(op string, status transport.Status, cause error) *Error {
	return &Error{Kind: KindTransport, Op: op, Status: status, Err: cause}
}

// Recovery is the action taken for a transport status.
type Recovery uint8

const (
	// RecoveryContinue means the step succeeded.
	RecoveryContinue Recovery = iota

	// RecoveryRetry keeps the data queued for a later flush.
	RecoveryRetry

	// RecoveryAbort tears the connection down.
	RecoveryAbort

	// RecoveryReport records a defect and leaves the queue untouched.
	RecoveryReport
)

// String returns the recovery name.
func (r Recovery) String() string {
	switch r {
	case RecoveryContinue:
		return "CONTINUE"
	case RecoveryRetry:
		return "RETRY"
	case RecoveryAbort:
		return "ABORT"
	case RecoveryReport:
		return "REPORT"
	default:
		return "UNKNOWN"
	}
}

// RecoveryFor maps a send status to its recovery action. Statuses without a
// dedicated action are fatal.
func RecoveryFor(status transport.Status) Recovery {
	switch status {
	case transport.StatusOK:
		return RecoveryContinue
	case transport.StatusResourceExhausted:
		return RecoveryRetry
	case transport.StatusBadArgument:
		return RecoveryReport
	default:
		return RecoveryAbort
	}
}
