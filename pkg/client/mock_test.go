package client

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mash-protocol/pollstream/pkg/transport"
	"github.com/mash-protocol/pollstream/pkg/transport/mocks"
)

func TestStopDeregistersBeforeAbort(t *testing.T) {
	tr := mocks.NewMockTransport(t)

	var handler transport.Handler
	tr.EXPECT().Register(mock.Anything).Run(func(h transport.Handler) {
		handler = h
	}).Once()
	tr.EXPECT().Connect(netip.MustParseAddrPort("10.0.0.5:4242")).Return(nil).Once()

	c, err := New(Config{
		Transport: func() (transport.Transport, error) { return tr, nil },
		Logger:    quietLogger(),
	})
	require.NoError(t, err)
	require.NoError(t, c.Connect("10.0.0.5", 4242))
	require.NotNil(t, handler)

	tr.EXPECT().SendWindow().Return(0).Maybe()
	handler.OnConnected(nil)
	require.True(t, c.Connected())

	deregister := tr.EXPECT().Deregister().Return().Once()
	tr.EXPECT().Abort().Return().Once().NotBefore(deregister)

	c.Stop()
	assert.Equal(t, StateClosed, c.State())
}

func TestFlushSendsWithinWindow(t *testing.T) {
	tr := mocks.NewMockTransport(t)
	tr.EXPECT().Register(mock.Anything).Return().Once()
	tr.EXPECT().Connect(mock.Anything).Return(nil).Once()

	c, err := New(Config{
		Transport: func() (transport.Transport, error) { return tr, nil },
		Logger:    quietLogger(),
	})
	require.NoError(t, err)
	require.NoError(t, c.Connect("10.0.0.5", 4242))

	_, err = c.Write([]byte("hello world"))
	require.NoError(t, err)

	tr.EXPECT().SendWindow().Return(5).Once()
	tr.EXPECT().Send([]byte("hello")).Return(transport.StatusOK).Once()
	c.connected(nil)

	assert.Equal(t, 5, c.out.inFlight)
	assert.True(t, c.out.stalled)
}
