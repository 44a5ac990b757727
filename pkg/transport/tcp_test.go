package transport

import (
	"errors"
	"io"
	"net"
	"net/netip"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is a Handler that records every event.
type recorder struct {
	connects []error
	sent     int
	received []byte
	closed   bool
	errors   []Status
	polls    int

	// refuse makes OnReceived reject payloads.
	refuse bool
	offers int
}

func (r *recorder) OnConnected(err error) { r.connects = append(r.connects, err) }
func (r *recorder) OnSent(n int)          { r.sent += n }
func (r *recorder) OnError(s Status)      { r.errors = append(r.errors, s) }
func (r *recorder) OnPoll()               { r.polls++ }

func (r *recorder) OnReceived(p []byte) error {
	r.offers++
	if len(p) == 0 {
		r.closed = true
		return nil
	}
	if r.refuse {
		return errors.New("busy")
	}
	r.received = append(r.received, p...)
	return nil
}

// pollUntil polls tr until cond holds or the deadline passes.
func pollUntil(t *testing.T, tr *TCP, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for transport events")
		}
		tr.Poll()
		time.Sleep(time.Millisecond)
	}
}

// listen starts a loopback listener and returns its address and a channel
// yielding the accepted server-side connection.
func listen(t *testing.T) (netip.AddrPort, <-chan net.Conn) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	accepted := make(chan net.Conn, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			close(accepted)
			return
		}
		accepted <- conn
	}()

	addr := ln.Addr().(*net.TCPAddr).AddrPort()
	return addr, accepted
}

func acceptConn(t *testing.T, accepted <-chan net.Conn) net.Conn {
	t.Helper()

	select {
	case conn, ok := <-accepted:
		require.True(t, ok, "accept failed")
		t.Cleanup(func() { conn.Close() })
		return conn
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for accept")
		return nil
	}
}

func newTestTCP(t *testing.T, config TCPConfig) (*TCP, *recorder) {
	t.Helper()

	tr := NewTCP(config, nil)
	rec := &recorder{}
	tr.Register(rec)
	t.Cleanup(tr.Abort)
	return tr, rec
}

func TestNewTCPAppliesDefaults(t *testing.T) {
	tr := NewTCP(TCPConfig{}, nil)
	assert.Equal(t, DefaultTCPConfig(), tr.config)
	assert.Zero(t, tr.SendWindow())
	assert.Equal(t, StatusConnectionInvalid, tr.Send([]byte("x")))
	tr.Abort()
}

func TestTCPConnectRejectsBadAddress(t *testing.T) {
	tr, _ := newTestTCP(t, TCPConfig{})

	err := tr.Connect(netip.AddrPort{})
	assert.Equal(t, StatusBadArgument, StatusOf(err))

	err = tr.Connect(netip.MustParseAddrPort("127.0.0.1:0"))
	assert.Equal(t, StatusBadArgument, StatusOf(err))
}

func TestTCPExchange(t *testing.T) {
	addr, accepted := listen(t)
	tr, rec := newTestTCP(t, TCPConfig{SendBuffer: 1024})

	require.NoError(t, tr.Connect(addr))
	assert.Equal(t, StatusInProgress, StatusOf(tr.Connect(addr)))

	// Nothing is dispatched outside Poll.
	server := acceptConn(t, accepted)
	time.Sleep(10 * time.Millisecond)
	assert.Empty(t, rec.connects)

	pollUntil(t, tr, func() bool { return len(rec.connects) == 1 })
	require.NoError(t, rec.connects[0])
	assert.Equal(t, 1024, tr.SendWindow())
	assert.Equal(t, StatusConnectionInvalid, StatusOf(tr.Connect(addr)))

	assert.Equal(t, StatusOK, tr.Send([]byte("ping")))
	pollUntil(t, tr, func() bool { return rec.sent == 4 })

	buf := make([]byte, 4)
	_, err := io.ReadFull(server, buf)
	require.NoError(t, err)
	assert.Equal(t, "ping", string(buf))

	_, err = server.Write([]byte("pong"))
	require.NoError(t, err)
	pollUntil(t, tr, func() bool { return len(rec.received) == 4 })
	assert.Equal(t, "pong", string(rec.received))
	tr.Consumed(4)

	require.NoError(t, server.Close())
	pollUntil(t, tr, func() bool { return rec.closed })
	assert.Empty(t, rec.errors)
}

func TestTCPSendRespectsWindow(t *testing.T) {
	addr, accepted := listen(t)
	tr, rec := newTestTCP(t, TCPConfig{SendBuffer: 8})

	require.NoError(t, tr.Connect(addr))
	acceptConn(t, accepted)
	pollUntil(t, tr, func() bool { return len(rec.connects) == 1 })

	assert.Equal(t, StatusBadArgument, tr.Send(nil))
	assert.Equal(t, StatusResourceExhausted, tr.Send(make([]byte, 9)))
}

func TestTCPDialFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().(*net.TCPAddr).AddrPort()
	require.NoError(t, ln.Close())

	tr, rec := newTestTCP(t, TCPConfig{DialTimeout: time.Second})
	require.NoError(t, tr.Connect(addr))
	pollUntil(t, tr, func() bool { return len(rec.connects) == 1 })

	require.Error(t, rec.connects[0])
	assert.NotEqual(t, StatusOK, StatusOf(rec.connects[0]))

	// The transport can dial again.
	require.NoError(t, tr.Connect(addr))
}

func TestTCPRefusedPayloadIsRedelivered(t *testing.T) {
	addr, accepted := listen(t)
	tr, rec := newTestTCP(t, TCPConfig{})

	require.NoError(t, tr.Connect(addr))
	server := acceptConn(t, accepted)
	pollUntil(t, tr, func() bool { return len(rec.connects) == 1 })

	rec.refuse = true
	_, err := server.Write([]byte("data"))
	require.NoError(t, err)
	pollUntil(t, tr, func() bool { return rec.offers >= 1 })
	assert.Empty(t, rec.received)

	rec.refuse = false
	pollUntil(t, tr, func() bool { return len(rec.received) == 4 })
	assert.Equal(t, "data", string(rec.received))
}

func TestTCPRefusedPayloadDoesNotHoldBackAcks(t *testing.T) {
	addr, accepted := listen(t)
	tr, rec := newTestTCP(t, TCPConfig{})

	require.NoError(t, tr.Connect(addr))
	server := acceptConn(t, accepted)
	pollUntil(t, tr, func() bool { return len(rec.connects) == 1 })

	rec.refuse = true
	_, err := server.Write([]byte("data"))
	require.NoError(t, err)
	pollUntil(t, tr, func() bool { return rec.offers >= 1 })

	// The ack is queued behind the refused payload.
	require.Equal(t, StatusOK, tr.Send([]byte("ping")))
	pollUntil(t, tr, func() bool { return rec.sent == 4 })
	assert.Empty(t, rec.received)

	_, err = server.Write([]byte("more"))
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		tr.Poll()
		time.Sleep(time.Millisecond)
	}
	assert.Empty(t, rec.received, "later payloads wait behind the refused one")

	rec.refuse = false
	pollUntil(t, tr, func() bool { return len(rec.received) == 8 })
	assert.Equal(t, "datamore", string(rec.received))
}

func TestTCPReceiveWindowStopsReading(t *testing.T) {
	addr, accepted := listen(t)
	tr, rec := newTestTCP(t, TCPConfig{RecvWindow: 4, ReadBufferSize: 4})

	require.NoError(t, tr.Connect(addr))
	server := acceptConn(t, accepted)
	pollUntil(t, tr, func() bool { return len(rec.connects) == 1 })

	_, err := server.Write([]byte("abcdefgh"))
	require.NoError(t, err)
	pollUntil(t, tr, func() bool { return len(rec.received) == 4 })

	// Without Consumed the rest stays in the socket.
	for i := 0; i < 20; i++ {
		tr.Poll()
		time.Sleep(time.Millisecond)
	}
	assert.Equal(t, "abcd", string(rec.received))

	tr.Consumed(4)
	pollUntil(t, tr, func() bool { return len(rec.received) == 8 })
	assert.Equal(t, "abcdefgh", string(rec.received))
}

func TestTCPDeregisterDropsEvents(t *testing.T) {
	addr, accepted := listen(t)
	tr, rec := newTestTCP(t, TCPConfig{})

	require.NoError(t, tr.Connect(addr))
	acceptConn(t, accepted)
	time.Sleep(20 * time.Millisecond)

	tr.Deregister()
	for i := 0; i < 10; i++ {
		tr.Poll()
	}
	assert.Empty(t, rec.connects)
}

func TestTCPPollInterval(t *testing.T) {
	tr, rec := newTestTCP(t, TCPConfig{PollInterval: 10 * time.Millisecond})

	pollUntil(t, tr, func() bool { return rec.polls >= 2 })
}

func TestTCPCloseFlushesQueue(t *testing.T) {
	addr, accepted := listen(t)
	tr, rec := newTestTCP(t, TCPConfig{})

	require.NoError(t, tr.Connect(addr))
	server := acceptConn(t, accepted)
	pollUntil(t, tr, func() bool { return len(rec.connects) == 1 })

	require.Equal(t, StatusOK, tr.Send([]byte("bye")))
	require.NoError(t, tr.Close())
	require.NoError(t, tr.Close())

	require.NoError(t, server.SetReadDeadline(time.Now().Add(5*time.Second)))
	data, err := io.ReadAll(server)
	require.NoError(t, err)
	assert.Equal(t, "bye", string(data))

	assert.Zero(t, tr.SendWindow())
	assert.Equal(t, StatusClosed, StatusOf(tr.Connect(addr)))
}

func TestTCPCloseWithoutPollReachesPeer(t *testing.T) {
	addr, accepted := listen(t)
	tr, rec := newTestTCP(t, TCPConfig{EventQueueSize: 4})

	require.NoError(t, tr.Connect(addr))
	server := acceptConn(t, accepted)
	pollUntil(t, tr, func() bool { return len(rec.connects) == 1 })

	for i := 0; i < 100; i++ {
		require.Equal(t, StatusOK, tr.Send([]byte{byte(i)}))
	}
	tr.Deregister()
	require.NoError(t, tr.Close())

	// Nobody polls any more; the queued bytes and the FIN still arrive.
	require.NoError(t, server.SetReadDeadline(time.Now().Add(5*time.Second)))
	data, err := io.ReadAll(server)
	require.NoError(t, err)
	assert.Len(t, data, 100)

	done := make(chan struct{})
	go func() {
		tr.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("transport goroutines still running after Close")
	}
}

func TestTCPAbortIsIdempotent(t *testing.T) {
	addr, accepted := listen(t)
	tr, rec := newTestTCP(t, TCPConfig{})

	require.NoError(t, tr.Connect(addr))
	server := acceptConn(t, accepted)
	pollUntil(t, tr, func() bool { return len(rec.connects) == 1 })

	tr.Abort()
	tr.Abort()
	assert.Equal(t, StatusConnectionInvalid, tr.Send([]byte("x")))

	require.NoError(t, server.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, err := server.Read(make([]byte, 1))
	require.Error(t, err)
	assert.False(t, errors.Is(err, os.ErrDeadlineExceeded))
}
