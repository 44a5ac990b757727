package client

import (
	"io"
	"log/slog"
	"net/netip"
	"time"

	"github.com/google/uuid"

	"github.com/mash-protocol/pollstream/pkg/buffer"
	pslog "github.com/mash-protocol/pollstream/pkg/log"
	"github.com/mash-protocol/pollstream/pkg/transport"
)

// Client is a polling byte-stream client. Create one with New.
type Client struct {
	config Config
	log    *slog.Logger
	plog   pslog.Logger
	id     string

	state   State
	addr    netip.AddrPort
	handle  transport.Transport
	handler *eventHandler
	pending bool

	out outbound
	in  buffer.Chain

	err error
}

// New creates a Client. The transport handle is created on the first Connect.
func New(cfg Config) (*Client, error) {
	if cfg.Transport == nil {
		return nil, configError("new", ErrNoTransport)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.ProtocolLogger == nil {
		cfg.ProtocolLogger = pslog.NoopLogger{}
	}
	if cfg.MaxQueued == 0 {
		cfg.MaxQueued = DefaultMaxQueued
	}
	if cfg.MaxReceiveBuffered == 0 {
		cfg.MaxReceiveBuffered = DefaultMaxReceiveBuffered
	}
	if cfg.LogSampleSize == 0 {
		cfg.LogSampleSize = pslog.DefaultSampleSize
	}
	if cfg.ConnectionID == "" {
		cfg.ConnectionID = uuid.New().String()
	}

	return &Client{
		config: cfg,
		log:    cfg.Logger.With("conn_id", cfg.ConnectionID),
		plog:   cfg.ProtocolLogger,
		id:     cfg.ConnectionID,
	}, nil
}

// ID returns the identifier used in log records.
func (c *Client) ID() string {
	return c.id
}

// State returns the connection state.
func (c *Client) State() State {
	return c.state
}

// Connected reports whether the stream is established.
func (c *Client) Connected() bool {
	return c.state == StateConnected
}

// Pending reports whether a connect request awaits its reply.
func (c *Client) Pending() bool {
	return c.pending
}

// RemoteAddr returns the address of the last connect request.
func (c *Client) RemoteAddr() netip.AddrPort {
	return c.addr
}

// Err returns the last error observed while processing transport events:
// a failed connect, a fatal transport status, or a contract violation.
// It is cleared when a new connection is started from the closed state.
func (c *Client) Err() error {
	return c.err
}

// Write queues a copy of p for sending. Bytes written before the connection
// is established are sent once it is. Write returns len(p) when the bytes
// were accepted into the queue.
func (c *Client) Write(p []byte) (int, error) {
	if c.state == StateClosed {
		return 0, transportError("write", transport.StatusClosed, ErrNotConnected)
	}
	if len(p) == 0 {
		return 0, nil
	}
	if limit := c.config.MaxQueued; limit > 0 && c.out.chain.Len()+len(p) > limit {
		return 0, resourceError("write", ErrQueueFull)
	}

	c.out.chain.Append(p)
	sample, truncated := pslog.Sample(p, c.config.LogSampleSize)
	c.emit(pslog.Event{
		Direction: pslog.DirectionOut,
		Category:  pslog.CategoryData,
		Data:      &pslog.DataEvent{Size: len(p), Data: sample, Truncated: truncated},
	})

	if c.state == StateConnected && !c.out.stalled {
		if err := c.flush(); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

// WriteByte queues a single byte.
func (c *Client) WriteByte(b byte) error {
	_, err := c.Write([]byte{b})
	return err
}

// Queued returns the number of written bytes not yet acknowledged by the
// peer.
func (c *Client) Queued() int {
	return c.out.chain.Len()
}

// Available returns the number of received bytes ready to Read.
func (c *Client) Available() int {
	return c.in.Len()
}

// Read copies up to len(p) received bytes into p. It never blocks: with
// nothing buffered it returns 0, nil, or 0, io.EOF once the connection is
// closed.
func (c *Client) Read(p []byte) (int, error) {
	if c.in.Empty() {
		if c.state == StateClosed {
			return 0, io.EOF
		}
		return 0, nil
	}
	if len(p) == 0 {
		return 0, nil
	}

	n := c.in.Consume(p)
	c.emit(pslog.Event{
		Direction: pslog.DirectionIn,
		Category:  pslog.CategoryFlow,
		Flow:      &pslog.FlowEvent{Kind: pslog.FlowRead, Bytes: n, Queued: c.in.Len()},
	})
	return n, nil
}

// Sync processes pending transport events and retries a stalled flush.
// Call it regularly from the application loop.
func (c *Client) Sync() {
	if c.handle != nil {
		c.handle.Poll()
	}
	c.retry()
}

// Stop aborts the connection and drops all buffered data. It is safe to
// call in any state.
func (c *Client) Stop() {
	c.release(false)
	c.in.Reset()
	c.setState(StateClosed, "stop")
}

// Close shuts the transport down gracefully, falling back to an abort if
// the transport cannot close, and drops all buffered data.
func (c *Client) Close() error {
	err := c.release(true)
	c.in.Reset()
	c.setState(StateClosed, "close")
	return err
}

func (c *Client) emit(ev pslog.Event) {
	ev.Timestamp = time.Now()
	ev.ConnectionID = c.id
	if c.addr.IsValid() {
		ev.RemoteAddr = c.addr.String()
	}
	c.plog.Log(ev)
}

func (c *Client) emitError(e *Error, fatal bool) {
	ed := &pslog.ErrorEventData{
		Kind:    e.Kind.String(),
		Message: e.Error(),
		Context: e.Op,
		Fatal:   fatal,
	}
	if e.Status != transport.StatusOK {
		ed.Status = e.Status.String()
	}
	c.emit(pslog.Event{Category: pslog.CategoryError, Error: ed})
}

var (
	_ io.Writer     = (*Client)(nil)
	_ io.ByteWriter = (*Client)(nil)
	_ io.Reader     = (*Client)(nil)
	_ io.Closer     = (*Client)(nil)
)
