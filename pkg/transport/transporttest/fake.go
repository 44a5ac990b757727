// Package transporttest provides a scripted in-memory transport.Transport for
// deterministic tests of code driven by transport events.
package transporttest

import (
	"net/netip"

	"github.com/mash-protocol/pollstream/pkg/transport"
)

// Fake is a transport.Transport whose window, statuses and events are
// controlled by the test. Events raised through its helper methods are
// dispatched to the registered handler synchronously, the way a real
// transport dispatches them from inside Poll. Events added with Enqueue are
// held until the next Poll.
type Fake struct {
	// Window is the current send window. Send shrinks it; Ack grows it.
	Window int

	// SendStatus, when not StatusOK, is returned by Send without accepting
	// any bytes.
	SendStatus transport.Status

	// ConnectErr is returned by Connect.
	ConnectErr error

	// CloseErr is returned by Close.
	CloseErr error

	// Sent accumulates every byte accepted by Send.
	Sent []byte

	// SendCalls records the length of every Send call, including refused ones.
	SendCalls []int

	// Connects records every address passed to Connect.
	Connects []netip.AddrPort

	// ConsumedBytes is the running total reported through Consumed.
	ConsumedBytes int

	Polls        int
	Registers    int
	Deregistered int
	Closed       bool
	Aborted      bool

	// Calls records method names in call order.
	Calls []string

	handler transport.Handler
	queue   []func(transport.Handler)
}

// NewFake returns a Fake with the given send window.
func NewFake(window int) *Fake {
	return &Fake{Window: window}
}

// Factory returns a transport.Factory that always yields f.
func (f *Fake) Factory() transport.Factory {
	return func() (transport.Transport, error) {
		return f, nil
	}
}

// Handler returns the registered handler, or nil.
func (f *Fake) Handler() transport.Handler {
	return f.handler
}

// Register installs h.
func (f *Fake) Register(h transport.Handler) {
	f.Calls = append(f.Calls, "Register")
	f.Registers++
	f.handler = h
}

// Deregister removes the handler and drops queued events.
func (f *Fake) Deregister() {
	f.Calls = append(f.Calls, "Deregister")
	f.Deregistered++
	f.handler = nil
	f.queue = nil
}

// Connect records addr and returns ConnectErr.
func (f *Fake) Connect(addr netip.AddrPort) error {
	f.Calls = append(f.Calls, "Connect")
	f.Connects = append(f.Connects, addr)
	return f.ConnectErr
}

// SendWindow returns Window.
func (f *Fake) SendWindow() int {
	if f.Window < 0 {
		return 0
	}
	return f.Window
}

// Send accepts p if the window allows it and SendStatus is OK.
func (f *Fake) Send(p []byte) transport.Status {
	f.SendCalls = append(f.SendCalls, len(p))
	if f.SendStatus != transport.StatusOK {
		return f.SendStatus
	}
	if len(p) == 0 {
		return transport.StatusBadArgument
	}
	if len(p) > f.Window {
		return transport.StatusResourceExhausted
	}
	f.Window -= len(p)
	f.Sent = append(f.Sent, p...)
	return transport.StatusOK
}

// Consumed adds n to ConsumedBytes.
func (f *Fake) Consumed(n int) {
	f.ConsumedBytes += n
}

// Poll dispatches events added with Enqueue.
func (f *Fake) Poll() {
	f.Polls++
	queue := f.queue
	f.queue = nil
	for _, fn := range queue {
		if f.handler == nil {
			return
		}
		fn(f.handler)
	}
}

// Close marks the fake closed and returns CloseErr.
func (f *Fake) Close() error {
	f.Calls = append(f.Calls, "Close")
	f.Closed = true
	return f.CloseErr
}

// Abort marks the fake aborted.
func (f *Fake) Abort() {
	f.Calls = append(f.Calls, "Abort")
	f.Aborted = true
}

// Enqueue holds an event until the next Poll.
func (f *Fake) Enqueue(fn func(h transport.Handler)) {
	f.queue = append(f.queue, fn)
}

// CompleteConnect reports the outcome of a connect.
func (f *Fake) CompleteConnect(err error) {
	if f.handler != nil {
		f.handler.OnConnected(err)
	}
}

// Ack reopens the window by n and reports n acknowledged bytes.
func (f *Fake) Ack(n int) {
	f.Window += n
	if f.handler != nil {
		f.handler.OnSent(n)
	}
}

// Deliver hands p to the handler and returns its verdict.
func (f *Fake) Deliver(p []byte) error {
	if f.handler == nil {
		return nil
	}
	return f.handler.OnReceived(p)
}

// PeerClose signals that the peer closed the stream.
func (f *Fake) PeerClose() {
	if f.handler != nil {
		_ = f.handler.OnReceived(nil)
	}
}

// Fail reports a fatal transport error.
func (f *Fake) Fail(status transport.Status) {
	if f.handler != nil {
		f.handler.OnError(status)
	}
}

// Tick fires the periodic poll callback.
func (f *Fake) Tick() {
	if f.handler != nil {
		f.handler.OnPoll()
	}
}

var _ transport.Transport = (*Fake)(nil)
