package client

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mash-protocol/pollstream/pkg/transport"
	"github.com/mash-protocol/pollstream/pkg/transport/transporttest"
)

func TestConnectValidatesEndpoint(t *testing.T) {
	tests := []struct {
		name  string
		host  string
		port  int
		cause error
	}{
		{"hostname", "example.com", 80, ErrInvalidAddress},
		{"empty host", "", 80, ErrInvalidAddress},
		{"port zero", "10.0.0.5", 0, ErrInvalidPort},
		{"port too large", "10.0.0.5", 65536, ErrInvalidPort},
		{"negative port", "::1", -1, ErrInvalidPort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, fake, _ := newTestClient(t, 16)

			err := c.Connect(tt.host, tt.port)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfiguration)
			assert.ErrorIs(t, err, tt.cause)
			assert.Equal(t, StateIdle, c.State())
			assert.False(t, c.Pending())
			assert.Zero(t, fake.Registers)
		})
	}
}

func TestConnectIPv6(t *testing.T) {
	c, fake, _ := newTestClient(t, 16)

	require.NoError(t, c.Connect("fe80::1", 9000))
	require.Len(t, fake.Connects, 1)
	assert.Equal(t, "[fe80::1]:9000", fake.Connects[0].String())
}

func TestConnectFactoryFailure(t *testing.T) {
	c, err := New(Config{
		Transport: func() (transport.Transport, error) { return nil, errors.New("no memory") },
		Logger:    quietLogger(),
	})
	require.NoError(t, err)

	err = c.Connect("10.0.0.5", 4242)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrResourceExhausted)
	assert.Equal(t, StateIdle, c.State())
}

func TestConnectTransportRefuses(t *testing.T) {
	c, fake, _ := newTestClient(t, 16)
	fake.ConnectErr = transport.StatusConnectionInvalid.Err()

	err := c.Connect("10.0.0.5", 4242)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.Equal(t, StateIdle, c.State())
	assert.False(t, c.Pending())
}

func TestConnectWhileConnectedIsNoop(t *testing.T) {
	c, fake, _ := connectTestClient(t, 16)

	require.NoError(t, c.Connect("10.0.0.9", 1))
	assert.True(t, c.Connected())
	assert.Len(t, fake.Connects, 1)
	assert.Equal(t, 1, fake.Registers)
}

func TestConnectWhileConnectingIsNoop(t *testing.T) {
	c, fake, _ := newTestClient(t, 16)
	require.NoError(t, c.Connect("10.0.0.5", 4242))

	require.NoError(t, c.Connect("10.0.0.5", 4242))
	assert.Equal(t, StateConnecting, c.State())
	assert.Len(t, fake.Connects, 1)
}

func TestConnectFailureReturnsToIdle(t *testing.T) {
	c, fake, _ := newTestClient(t, 16)
	require.NoError(t, c.Connect("10.0.0.5", 4242))

	fake.CompleteConnect(transport.StatusTimeout.Err())
	assert.Equal(t, StateIdle, c.State())
	assert.False(t, c.Connected())
	assert.False(t, c.Pending())
	require.Error(t, c.Err())

	var e *Error
	require.ErrorAs(t, c.Err(), &e)
	assert.Equal(t, transport.StatusTimeout, e.Status)

	// The handle is kept for the next attempt.
	assert.NotNil(t, fake.Handler())
	require.NoError(t, c.Connect("10.0.0.5", 4242))
	assert.Len(t, fake.Connects, 2)
	assert.Equal(t, 1, fake.Registers)

	fake.CompleteConnect(nil)
	assert.True(t, c.Connected())
}

func TestUnexpectedConnectReplyIsIgnored(t *testing.T) {
	c, fake, _ := connectTestClient(t, 16)

	fake.CompleteConnect(errors.New("late"))
	assert.True(t, c.Connected())
	assert.NoError(t, c.Err())
}

func TestConnectFromClosedStartsOver(t *testing.T) {
	first := transporttest.NewFake(16)
	second := transporttest.NewFake(16)
	fakes := []*transporttest.Fake{first, second}
	c, err := New(Config{
		Transport: func() (transport.Transport, error) {
			f := fakes[0]
			fakes = fakes[1:]
			return f, nil
		},
		Logger: quietLogger(),
	})
	require.NoError(t, err)

	require.NoError(t, c.Connect("10.0.0.5", 4242))
	first.CompleteConnect(nil)
	require.NoError(t, first.Deliver([]byte("stale")))
	first.Fail(transport.StatusReset)
	require.Equal(t, StateClosed, c.State())
	require.Error(t, c.Err())

	require.NoError(t, c.Connect("10.0.0.5", 4242))
	assert.Equal(t, StateConnecting, c.State())
	assert.Zero(t, c.Available())
	assert.NoError(t, c.Err())
	assert.Equal(t, 1, second.Registers)

	second.CompleteConnect(nil)
	assert.True(t, c.Connected())
}

func TestTransportErrorTearsDown(t *testing.T) {
	c, fake, _ := connectTestClient(t, 0)
	require.NoError(t, fake.Deliver([]byte("unread")))
	_, err := c.Write([]byte("queued"))
	require.NoError(t, err)
	h := fake.Handler()

	fake.Fail(transport.StatusAborted)
	assert.Equal(t, StateClosed, c.State())
	assert.Zero(t, c.Queued())
	assert.Equal(t, 6, c.Available())
	assert.ErrorIs(t, c.Err(), ErrTransport)
	assert.Equal(t, []string{"Register", "Connect", "Deregister", "Abort"}, fake.Calls)

	// Events after teardown are ignored.
	h.OnSent(10)
	h.OnConnected(nil)
	require.NoError(t, h.OnReceived([]byte("more")))
	assert.Equal(t, StateClosed, c.State())
	assert.Equal(t, 6, c.Available())
}

func TestPeerCloseKeepsInbound(t *testing.T) {
	c, fake, _ := connectTestClient(t, 16)
	require.NoError(t, fake.Deliver([]byte("abc")))

	require.NoError(t, fake.Deliver(nil))
	assert.Equal(t, StateClosed, c.State())
	assert.Equal(t, 3, c.Available())
	assert.NoError(t, c.Err())
	assert.Equal(t, []string{"Register", "Connect", "Deregister", "Abort"}, fake.Calls)
}

func TestReceiveLimit(t *testing.T) {
	fake := transporttest.NewFake(16)
	c, err := New(Config{Transport: fake.Factory(), Logger: quietLogger(), MaxReceiveBuffered: 4})
	require.NoError(t, err)
	require.NoError(t, c.Connect("10.0.0.5", 4242))
	fake.CompleteConnect(nil)

	require.NoError(t, fake.Deliver([]byte("abc")))

	err = fake.Deliver([]byte("de"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrResourceExhausted)
	assert.Equal(t, 3, c.Available())
	assert.Equal(t, 3, fake.ConsumedBytes)

	_, _ = c.Read(make([]byte, 3))
	require.NoError(t, fake.Deliver([]byte("de")))
	assert.Equal(t, 2, c.Available())
	assert.Equal(t, 5, fake.ConsumedBytes)
}

func TestReceiveOversizedIntoEmptyBuffer(t *testing.T) {
	fake := transporttest.NewFake(16)
	c, err := New(Config{Transport: fake.Factory(), Logger: quietLogger(), MaxReceiveBuffered: 4})
	require.NoError(t, err)
	require.NoError(t, c.Connect("10.0.0.5", 4242))
	fake.CompleteConnect(nil)

	require.NoError(t, fake.Deliver([]byte("abcdefgh")))
	assert.Equal(t, 8, c.Available())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "IDLE", StateIdle.String())
	assert.Equal(t, "CONNECTING", StateConnecting.String())
	assert.Equal(t, "CONNECTED", StateConnected.String())
	assert.Equal(t, "CLOSED", StateClosed.String())
	assert.Equal(t, "UNKNOWN", State(9).String())
}
