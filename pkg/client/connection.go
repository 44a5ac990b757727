package client

import (
	"fmt"
	"net/netip"

	pslog "github.com/mash-protocol/pollstream/pkg/log"
	"github.com/mash-protocol/pollstream/pkg/transport"
)

// Connect starts connecting to host:port, where host is an IP address
// literal. It returns as soon as the request is issued; the outcome is
// delivered through Sync. Connect is a no-op while connected or while a
// request is outstanding. From the closed state it starts over with a new
// transport handle and drops unread data.
func (c *Client) Connect(host string, port int) error {
	switch c.state {
	case StateConnected, StateConnecting:
		return nil
	}

	addr, err := parseEndpoint(host, port)
	if err != nil {
		return err
	}

	if c.state == StateClosed {
		c.in.Reset()
		c.err = nil
	}

	if c.handle == nil {
		t, err := c.config.Transport()
		if err != nil {
			return resourceError("connect", err)
		}
		if t == nil {
			return resourceError("connect", ErrNoTransport)
		}
		c.handle = t
		c.handler = &eventHandler{c: c, live: true}
		t.Register(c.handler)
	}

	if err := c.handle.Connect(addr); err != nil {
		return transportError("connect", transport.StatusOf(err), err)
	}

	c.addr = addr
	c.pending = true
	c.setState(StateConnecting, "connect")
	return nil
}

func parseEndpoint(host string, port int) (netip.AddrPort, error) {
	ip, err := netip.ParseAddr(host)
	if err != nil {
		return netip.AddrPort{}, configError("connect", fmt.Errorf("%w: %q", ErrInvalidAddress, host))
	}
	if port < 1 || port > 65535 {
		return netip.AddrPort{}, configError("connect", fmt.Errorf("%w: %d", ErrInvalidPort, port))
	}
	return netip.AddrPortFrom(ip, uint16(port)), nil
}

// connected handles the reply to a connect request.
func (c *Client) connected(err error) {
	if c.state != StateConnecting {
		c.log.Debug("connected: no request outstanding", "state", c.state, "error", err)
		return
	}
	c.pending = false

	if err != nil {
		e := transportError("connect", transport.StatusOf(err), err)
		c.err = e
		c.log.Warn("connected: connect failed", "addr", c.addr, "status", e.Status, "error", err)
		c.emitError(e, false)
		c.setState(StateIdle, err.Error())
		return
	}

	c.setState(StateConnected, "")
	_ = c.flush()
}

// fail tears the connection down after a fatal transport status.
func (c *Client) fail(op string, status transport.Status, cause error) *Error {
	e := transportError(op, status, cause)
	c.err = e
	c.log.Warn(op+": connection lost", "status", status, "queued", c.out.chain.Len())
	c.emitError(e, true)
	c.release(false)
	c.setState(StateClosed, status.String())
	return e
}

// peerClosed handles the end of the inbound stream. Unread data stays
// readable.
func (c *Client) peerClosed() {
	c.log.Debug("receive: peer closed", "available", c.in.Len(), "queued", c.out.chain.Len())
	c.release(false)
	c.setState(StateClosed, "peer closed")
}

// release detaches the handler, deregisters it and then releases the
// transport handle. Queued outbound bytes are dropped.
func (c *Client) release(graceful bool) error {
	c.out.reset()
	c.pending = false

	h := c.handle
	if h == nil {
		return nil
	}
	c.handle = nil
	if c.handler != nil {
		c.handler.live = false
		c.handler = nil
	}
	h.Deregister()

	if !graceful {
		h.Abort()
		return nil
	}
	if err := h.Close(); err != nil {
		c.log.Debug("close: transport close failed, aborting", "error", err)
		h.Abort()
		return transportError("close", transport.StatusOf(err), err)
	}
	return nil
}

func (c *Client) setState(next State, reason string) {
	prev := c.state
	if prev == next {
		return
	}
	c.state = next
	c.log.Debug("state change", "from", prev, "to", next, "reason", reason)
	c.emit(pslog.Event{
		Category: pslog.CategoryState,
		StateChange: &pslog.StateChangeEvent{
			OldState: prev.String(),
			NewState: next.String(),
			Reason:   reason,
		},
	})
}
