package client

// State is the connection state.
type State uint8

const (
	// StateIdle indicates no connection and no connect in progress.
	StateIdle State = iota

	// StateConnecting indicates a connect request awaits its reply.
	StateConnecting

	// StateConnected indicates an established stream.
	StateConnected

	// StateClosed indicates the stream was stopped, failed or closed by the
	// peer.
	StateClosed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateConnecting:
		return "CONNECTING"
	case StateConnected:
		return "CONNECTED"
	case StateClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}
