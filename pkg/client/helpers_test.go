package client

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	pslog "github.com/mash-protocol/pollstream/pkg/log"
	"github.com/mash-protocol/pollstream/pkg/transport/transporttest"
)

// captureLogger records protocol events.
type captureLogger struct {
	events []pslog.Event
}

func (l *captureLogger) Log(ev pslog.Event) {
	l.events = append(l.events, ev)
}

func (l *captureLogger) byCategory(cat pslog.Category) []pslog.Event {
	var out []pslog.Event
	for _, ev := range l.events {
		if ev.Category == cat {
			out = append(out, ev)
		}
	}
	return out
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestClient returns a client on a fake transport with the given window.
func newTestClient(t *testing.T, window int) (*Client, *transporttest.Fake, *captureLogger) {
	t.Helper()

	fake := transporttest.NewFake(window)
	events := &captureLogger{}
	c, err := New(Config{
		Transport:      fake.Factory(),
		Logger:         quietLogger(),
		ProtocolLogger: events,
	})
	require.NoError(t, err)
	return c, fake, events
}

// connectTestClient returns a connected client.
func connectTestClient(t *testing.T, window int) (*Client, *transporttest.Fake, *captureLogger) {
	t.Helper()

	c, fake, events := newTestClient(t, window)
	require.NoError(t, c.Connect("10.0.0.5", 4242))
	fake.CompleteConnect(nil)
	require.True(t, c.Connected())
	return c, fake, events
}
