package transport

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/netip"
	"sync"
	"time"
)

// TCP defaults.
const (
	DefaultDialTimeout      = 5 * time.Second
	DefaultCloseTimeout     = 5 * time.Second
	DefaultSendBuffer       = 8 * 1024
	DefaultRecvWindow       = 8 * 1024
	DefaultReadBufferSize   = 2048
	DefaultPollInterval     = 5 * time.Second
	DefaultMaxEventsPerPoll = 64
	DefaultEventQueueSize   = 256
)

// TCPConfig configures a TCP transport.
type TCPConfig struct {
	// DialTimeout bounds the asynchronous connect (default: 5s).
	DialTimeout time.Duration

	// CloseTimeout bounds how long a graceful Close keeps flushing queued
	// bytes (default: 5s).
	CloseTimeout time.Duration

	// SendBuffer is the send window advertised by SendWindow (default: 8KB).
	SendBuffer int

	// RecvWindow is the number of received bytes that may be outstanding
	// before the socket stops being read (default: 8KB).
	RecvWindow int

	// ReadBufferSize is the size of a single socket read (default: 2KB).
	ReadBufferSize int

	// PollInterval is the period of Handler.OnPoll (default: 5s).
	PollInterval time.Duration

	// MaxEventsPerPoll caps the events dispatched by one Poll (default: 64).
	MaxEventsPerPoll int

	// EventQueueSize is the capacity of the event queue (default: 256).
	EventQueueSize int
}

// DefaultTCPConfig returns the default TCP transport configuration.
func DefaultTCPConfig() TCPConfig {
	return TCPConfig{
		DialTimeout:      DefaultDialTimeout,
		CloseTimeout:     DefaultCloseTimeout,
		SendBuffer:       DefaultSendBuffer,
		RecvWindow:       DefaultRecvWindow,
		ReadBufferSize:   DefaultReadBufferSize,
		PollInterval:     DefaultPollInterval,
		MaxEventsPerPoll: DefaultMaxEventsPerPoll,
		EventQueueSize:   DefaultEventQueueSize,
	}
}

type eventKind uint8

const (
	eventConnected eventKind = iota
	eventSent
	eventData
	eventError
)

type event struct {
	kind    eventKind
	err     error
	n       int
	payload []byte
	status  Status
}

type tcpState uint8

const (
	tcpIdle tcpState = iota
	tcpDialing
	tcpOpen
	tcpClosing
	tcpClosed
)

// TCP is a Transport over a TCP socket. Socket I/O runs on internal
// goroutines; their results are queued and only reach the Handler from
// inside Poll.
type TCP struct {
	config TCPConfig
	log    *slog.Logger
	events chan event

	// Owned by the goroutine calling Poll.
	handler  Handler
	parked   []event
	lastPoll time.Time

	// detached is closed once events can no longer reach a handler.
	detached   chan struct{}
	detachOnce sync.Once

	mu         sync.Mutex
	cond       *sync.Cond
	state      tcpState
	conn       net.Conn
	sendq      [][]byte
	queued     int
	unconsumed int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewTCP creates an unconnected TCP transport.
func NewTCP(config TCPConfig, logger *slog.Logger) *TCP {
	defaults := DefaultTCPConfig()
	if config.DialTimeout <= 0 {
		config.DialTimeout = defaults.DialTimeout
	}
	if config.CloseTimeout <= 0 {
		config.CloseTimeout = defaults.CloseTimeout
	}
	if config.SendBuffer <= 0 {
		config.SendBuffer = defaults.SendBuffer
	}
	if config.RecvWindow <= 0 {
		config.RecvWindow = defaults.RecvWindow
	}
	if config.ReadBufferSize <= 0 {
		config.ReadBufferSize = defaults.ReadBufferSize
	}
	if config.PollInterval <= 0 {
		config.PollInterval = defaults.PollInterval
	}
	if config.MaxEventsPerPoll <= 0 {
		config.MaxEventsPerPoll = defaults.MaxEventsPerPoll
	}
	if config.EventQueueSize <= 0 {
		config.EventQueueSize = defaults.EventQueueSize
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	t := &TCP{
		config:   config,
		log:      logger,
		events:   make(chan event, config.EventQueueSize),
		lastPoll: time.Now(),
		detached: make(chan struct{}),
		ctx:      ctx,
		cancel:   cancel,
	}
	t.cond = sync.NewCond(&t.mu)
	return t
}

// TCPFactory returns a Factory producing TCP transports.
func TCPFactory(config TCPConfig, logger *slog.Logger) Factory {
	return func() (Transport, error) {
		return NewTCP(config, logger), nil
	}
}

// Register installs the event handler.
func (t *TCP) Register(h Handler) {
	t.handler = h
}

// Deregister removes the event handler. Events raised afterwards are
// dropped; a transport cannot be registered again.
func (t *TCP) Deregister() {
	t.handler = nil
	t.parked = nil
	t.detach()
}

func (t *TCP) detach() {
	t.detachOnce.Do(func() { close(t.detached) })
}

// Connect starts dialing addr in the background.
func (t *TCP) Connect(addr netip.AddrPort) error {
	if !addr.IsValid() || addr.Port() == 0 {
		return StatusBadArgument.Err()
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	switch t.state {
	case tcpDialing:
		return StatusInProgress.Err()
	case tcpOpen:
		return StatusConnectionInvalid.Err()
	case tcpClosing, tcpClosed:
		return StatusClosed.Err()
	}

	t.state = tcpDialing
	t.wg.Add(1)
	go t.dial(addr)
	return nil
}

// SendWindow returns the free space in the send buffer.
func (t *TCP) SendWindow() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != tcpOpen {
		return 0
	}
	return t.config.SendBuffer - t.queued
}

// Send queues a copy of p for transmission.
func (t *TCP) Send(p []byte) Status {
	if len(p) == 0 {
		return StatusBadArgument
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != tcpOpen {
		return StatusConnectionInvalid
	}
	if len(p) > t.config.SendBuffer-t.queued {
		return StatusResourceExhausted
	}

	chunk := make([]byte, len(p))
	copy(chunk, p)
	t.sendq = append(t.sendq, chunk)
	t.queued += len(chunk)
	t.cond.Broadcast()
	return StatusOK
}

// Consumed reopens the receive window by n bytes.
func (t *TCP) Consumed(n int) {
	if n <= 0 {
		return
	}

	t.mu.Lock()
	t.unconsumed -= n
	if t.unconsumed < 0 {
		t.unconsumed = 0
	}
	t.cond.Broadcast()
	t.mu.Unlock()
}

// Poll dispatches queued events to the handler and fires OnPoll when the
// poll interval has elapsed. It never blocks. Payloads refused by the
// handler are parked and offered again, in order, on later polls; other
// events keep flowing past them.
func (t *TCP) Poll() {
	for len(t.parked) > 0 {
		if !t.deliver(t.parked[0]) {
			break
		}
		// The handler may have deregistered, dropping the parked list.
		if len(t.parked) > 0 {
			t.parked[0] = event{}
			t.parked = t.parked[1:]
		}
	}

drain:
	for i := 0; i < t.config.MaxEventsPerPoll; i++ {
		select {
		case ev := <-t.events:
			t.dispatch(ev)
		default:
			break drain
		}
	}

	if now := time.Now(); now.Sub(t.lastPoll) >= t.config.PollInterval {
		t.lastPoll = now
		if t.handler != nil {
			t.handler.OnPoll()
		}
	}
}

// dispatch delivers one event. A payload queues behind parked payloads and
// is parked itself when refused.
func (t *TCP) dispatch(ev event) {
	h := t.handler
	if h == nil {
		return
	}

	switch ev.kind {
	case eventConnected:
		h.OnConnected(ev.err)
	case eventSent:
		h.OnSent(ev.n)
	case eventData:
		if len(t.parked) > 0 || !t.deliver(ev) {
			if t.handler != nil {
				t.parked = append(t.parked, ev)
			}
		}
	case eventError:
		h.OnError(ev.status)
	}
}

// deliver offers a payload to the handler and reports whether it was taken.
func (t *TCP) deliver(ev event) bool {
	if t.handler == nil {
		return true
	}
	return t.handler.OnReceived(ev.payload) == nil
}

// Close flushes queued bytes in the background and then closes the socket.
// Events raised after Close are dropped. It is safe to call more than once.
func (t *TCP) Close() error {
	t.detach()

	t.mu.Lock()
	switch t.state {
	case tcpClosing, tcpClosed:
		t.mu.Unlock()
		return nil
	case tcpOpen:
		t.state = tcpClosing
		if t.conn != nil {
			_ = t.conn.SetWriteDeadline(time.Now().Add(t.config.CloseTimeout))
		}
		t.cond.Broadcast()
		t.mu.Unlock()
		return nil
	}
	t.mu.Unlock()

	t.Abort()
	return nil
}

// Abort closes the socket immediately, discarding queued bytes, and waits for
// the I/O goroutines to exit. It is safe to call more than once.
func (t *TCP) Abort() {
	t.mu.Lock()
	if t.state == tcpClosed {
		t.mu.Unlock()
		return
	}
	t.state = tcpClosed
	conn := t.conn
	t.conn = nil
	t.sendq = nil
	t.queued = 0
	t.cond.Broadcast()
	t.mu.Unlock()

	t.cancel()
	if conn != nil {
		if tc, ok := conn.(*net.TCPConn); ok {
			_ = tc.SetLinger(0)
		}
		conn.Close()
	}
	t.wg.Wait()
}

// post queues an event unless no handler can receive it any more.
func (t *TCP) post(ev event) {
	select {
	case t.events <- ev:
	case <-t.detached:
	case <-t.ctx.Done():
	}
}

func (t *TCP) dial(addr netip.AddrPort) {
	defer t.wg.Done()

	dialer := &net.Dialer{Timeout: t.config.DialTimeout}
	conn, err := dialer.DialContext(t.ctx, "tcp", addr.String())
	if err != nil {
		t.mu.Lock()
		if t.state == tcpDialing {
			t.state = tcpIdle
		}
		t.mu.Unlock()

		status := StatusConnectionInvalid
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			status = StatusTimeout
		}
		t.log.Debug("tcp: dial failed", slog.String("addr", addr.String()), slog.Any("error", err))
		t.post(event{kind: eventConnected, err: &StatusError{Status: status, Err: err}})
		return
	}

	t.mu.Lock()
	if t.state != tcpDialing {
		t.mu.Unlock()
		conn.Close()
		return
	}
	t.conn = conn
	t.state = tcpOpen
	t.wg.Add(2)
	t.mu.Unlock()

	t.log.Debug("tcp: connected", slog.String("addr", addr.String()))
	go t.writeLoop(conn)
	go t.readLoop(conn)
	t.post(event{kind: eventConnected})
}

func (t *TCP) writeLoop(conn net.Conn) {
	defer t.wg.Done()

	for {
		t.mu.Lock()
		for len(t.sendq) == 0 && t.state == tcpOpen {
			t.cond.Wait()
		}
		if t.state == tcpClosed || (t.state == tcpClosing && len(t.sendq) == 0) {
			closing := t.state == tcpClosing
			t.mu.Unlock()
			if closing {
				t.finishClose(conn)
			}
			return
		}
		chunk := t.sendq[0]
		t.sendq[0] = nil
		t.sendq = t.sendq[1:]
		t.mu.Unlock()

		n, err := conn.Write(chunk)

		t.mu.Lock()
		t.queued -= len(chunk)
		if t.queued < 0 {
			t.queued = 0
		}
		state := t.state
		t.mu.Unlock()

		if n > 0 {
			t.post(event{kind: eventSent, n: n})
		}
		if err != nil {
			if state == tcpOpen {
				t.log.Debug("tcp: write failed", slog.Any("error", err))
				t.post(event{kind: eventError, status: StatusAborted})
			} else if state == tcpClosing {
				t.finishClose(conn)
			}
			return
		}
	}
}

// finishClose completes a graceful Close once the send queue has drained.
func (t *TCP) finishClose(conn net.Conn) {
	t.mu.Lock()
	t.state = tcpClosed
	t.conn = nil
	t.cond.Broadcast()
	t.mu.Unlock()

	conn.Close()
	t.cancel()
}

func (t *TCP) readLoop(conn net.Conn) {
	defer t.wg.Done()

	buf := make([]byte, t.config.ReadBufferSize)
	for {
		t.mu.Lock()
		for t.unconsumed >= t.config.RecvWindow && t.state == tcpOpen {
			t.cond.Wait()
		}
		if t.state != tcpOpen {
			t.mu.Unlock()
			return
		}
		room := min(t.config.RecvWindow-t.unconsumed, len(buf))
		t.mu.Unlock()

		n, err := conn.Read(buf[:room])
		if n > 0 {
			payload := make([]byte, n)
			copy(payload, buf[:n])

			t.mu.Lock()
			t.unconsumed += n
			t.mu.Unlock()

			t.post(event{kind: eventData, payload: payload})
		}
		if err != nil {
			t.mu.Lock()
			open := t.state == tcpOpen
			t.mu.Unlock()

			if !open {
				return
			}
			if errors.Is(err, io.EOF) {
				t.post(event{kind: eventData})
			} else {
				t.log.Debug("tcp: read failed", slog.Any("error", err))
				t.post(event{kind: eventError, status: StatusReset})
			}
			return
		}
	}
}
