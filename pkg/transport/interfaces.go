package transport

import "net/netip"

// Handler receives transport events. All methods are invoked from inside
// Transport.Poll.
type Handler interface {
	// OnConnected is called once the asynchronous connect finishes.
	// err is nil on success.
	OnConnected(err error)

	// OnSent is called when the peer has acknowledged n more bytes.
	OnSent(n int)

	// OnReceived is called with bytes that arrived. The slice is only valid
	// for the duration of the call. A nil or empty slice signals that the
	// peer closed the stream. A non-nil error leaves the payload with the
	// transport, which offers it again on a later Poll.
	OnReceived(p []byte) error

	// OnError is called when the connection was aborted or reset. The
	// transport handle is no longer usable afterwards.
	OnError(status Status)

	// OnPoll is called periodically for background maintenance.
	OnPoll()
}

// Transport is an asynchronous, flow-controlled byte stream.
// Implemented by TCP and transporttest.Fake.
type Transport interface {
	// Register installs the handler that receives events.
	Register(h Handler)

	// Deregister removes the handler. Queued events are dropped.
	Deregister()

	// Connect starts an asynchronous connect to addr. The outcome is
	// reported through Handler.OnConnected.
	Connect(addr netip.AddrPort) error

	// SendWindow returns the number of bytes Send accepts right now.
	SendWindow() int

	// Send copies p into the transport's send buffer.
	Send(p []byte) Status

	// Consumed reports that n received bytes were taken by the handler.
	Consumed(n int)

	// Poll drives background processing and dispatches queued events.
	Poll()

	// Close shuts the connection down gracefully and releases the handle.
	Close() error

	// Abort drops the connection immediately and releases the handle.
	Abort()
}

// Factory creates a fresh, unconnected Transport.
type Factory func() (Transport, error)

// Compile-time interface satisfaction checks.
var _ Transport = (*TCP)(nil)
