package client

import "github.com/mash-protocol/pollstream/pkg/transport"

// eventHandler receives transport events on behalf of a Client. It is
// detached before the transport handle is released, after which every
// callback is ignored.
type eventHandler struct {
	c    *Client
	live bool
}

func (h *eventHandler) OnConnected(err error) {
	if h.live {
		h.c.connected(err)
	}
}

func (h *eventHandler) OnSent(n int) {
	if h.live {
		h.c.acknowledge(n)
	}
}

func (h *eventHandler) OnReceived(p []byte) error {
	if !h.live {
		return nil
	}
	return h.c.receive(p)
}

func (h *eventHandler) OnError(status transport.Status) {
	if h.live {
		h.c.fail("transport", status, nil)
	}
}

func (h *eventHandler) OnPoll() {
	if h.live {
		h.c.retry()
	}
}

var _ transport.Handler = (*eventHandler)(nil)
