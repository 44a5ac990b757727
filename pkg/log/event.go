package log

import (
	"time"
)

// DefaultSampleSize is the number of payload bytes kept in a DataEvent.
const DefaultSampleSize = 64

// Event is a protocol event. At most one of the payload pointers is set, and
// it matches Category.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// ConnectionID identifies the client connection (UUID).
	ConnectionID string `cbor:"2,keyasint"`

	// Direction of the bytes involved; DirectionNone for state and error
	// events.
	Direction Direction `cbor:"3,keyasint"`

	// Category classifies the event.
	Category Category `cbor:"4,keyasint"`

	// RemoteAddr is the peer address (IP:port), once known.
	RemoteAddr string `cbor:"5,keyasint,omitempty"`

	StateChange *StateChangeEvent `cbor:"10,keyasint,omitempty"`
	Data        *DataEvent        `cbor:"11,keyasint,omitempty"`
	Flow        *FlowEvent        `cbor:"12,keyasint,omitempty"`
	Error       *ErrorEventData   `cbor:"13,keyasint,omitempty"`
}

// Direction indicates the direction of byte flow.
type Direction uint8

const (
	// DirectionNone marks events that move no bytes.
	DirectionNone Direction = 0
	// DirectionIn indicates bytes arriving from the peer.
	DirectionIn Direction = 1
	// DirectionOut indicates bytes written towards the peer.
	DirectionOut Direction = 2
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionNone:
		return "NONE"
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryState indicates a connection state change.
	CategoryState Category = 0
	// CategoryData indicates bytes entering a queue.
	CategoryData Category = 1
	// CategoryFlow indicates a flow-control step.
	CategoryFlow Category = 2
	// CategoryError indicates an error.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryState:
		return "STATE"
	case CategoryData:
		return "DATA"
	case CategoryFlow:
		return "FLOW"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// StateChangeEvent captures a connection state transition.
type StateChangeEvent struct {
	OldState string `cbor:"1,keyasint,omitempty"`
	NewState string `cbor:"2,keyasint"`
	Reason   string `cbor:"3,keyasint,omitempty"`
}

// DataEvent captures bytes written by the application or delivered by the
// transport.
type DataEvent struct {
	// Size is the number of bytes.
	Size int `cbor:"1,keyasint"`

	// Data is a prefix of the bytes (see Sample).
	Data []byte `cbor:"2,keyasint,omitempty"`

	// Truncated indicates Data is shorter than Size.
	Truncated bool `cbor:"3,keyasint,omitempty"`
}

// FlowKind distinguishes flow-control steps.
type FlowKind uint8

const (
	// FlowFlush records bytes handed to the transport.
	FlowFlush FlowKind = 0
	// FlowAck records bytes acknowledged by the peer.
	FlowAck FlowKind = 1
	// FlowStall records a flush that stopped with bytes still unsent.
	FlowStall FlowKind = 2
	// FlowRead records bytes taken by the application.
	FlowRead FlowKind = 3
)

// String returns the flow kind name.
func (k FlowKind) String() string {
	switch k {
	case FlowFlush:
		return "FLUSH"
	case FlowAck:
		return "ACK"
	case FlowStall:
		return "STALL"
	case FlowRead:
		return "READ"
	default:
		return "UNKNOWN"
	}
}

// FlowEvent captures one flow-control step.
type FlowEvent struct {
	Kind FlowKind `cbor:"1,keyasint"`

	// Bytes moved by this step.
	Bytes int `cbor:"2,keyasint"`

	// Queued is the queue size after the step.
	Queued int `cbor:"3,keyasint"`

	// Window is the transport send window observed, when relevant.
	Window int `cbor:"4,keyasint,omitempty"`

	// Status is the transport status that ended a stalled flush.
	Status string `cbor:"5,keyasint,omitempty"`
}

// ErrorEventData captures an error.
type ErrorEventData struct {
	// Kind is the client error kind (CONFIGURATION, TRANSPORT, RESOURCE_EXHAUSTION).
	Kind string `cbor:"1,keyasint"`

	// Status is the transport status involved, if any.
	Status string `cbor:"2,keyasint,omitempty"`

	// Message is the error text.
	Message string `cbor:"3,keyasint"`

	// Context is the operation during which the error occurred.
	Context string `cbor:"4,keyasint,omitempty"`

	// Fatal indicates the connection was torn down.
	Fatal bool `cbor:"5,keyasint,omitempty"`
}

// Sample returns a copy of at most limit bytes of p and whether p was cut.
func Sample(p []byte, limit int) ([]byte, bool) {
	if limit <= 0 {
		return nil, len(p) > 0
	}
	n := min(len(p), limit)
	out := make([]byte, n)
	copy(out, p[:n])
	return out, n < len(p)
}
