package client

import (
	"fmt"

	"github.com/mash-protocol/pollstream/pkg/buffer"
	pslog "github.com/mash-protocol/pollstream/pkg/log"
	"github.com/mash-protocol/pollstream/pkg/transport"
)

// outbound holds written bytes until the peer acknowledges them.
// Handed-off bytes always form a prefix of the chain, in flight between the
// acknowledged cursor and the mark of the node being sent.
type outbound struct {
	chain    buffer.Chain
	inFlight int
	stalled  bool
}

// unsent returns the number of queued bytes not yet handed to the transport.
func (o *outbound) unsent() int {
	return o.chain.Len() - o.inFlight
}

func (o *outbound) reset() {
	o.chain.Reset()
	o.inFlight = 0
	o.stalled = false
}

// flush hands unsent bytes to the transport, bounded by its send window.
// It returns an error only if a fatal status tore the connection down.
func (c *Client) flush() error {
	if c.state != StateConnected || c.handle == nil {
		return nil
	}

	c.out.stalled = false
	window := c.handle.SendWindow()
	moved := 0
	status := transport.StatusOK

walk:
	for n := c.out.chain.Front(); n != nil; n = n.Next() {
		span := n.Unmarked()
		if len(span) == 0 {
			continue
		}
		if window <= 0 {
			break
		}
		if len(span) > window {
			span = span[:window]
		}

		status = c.handle.Send(span)
		switch RecoveryFor(status) {
		case RecoveryContinue:
			if err := n.Mark(len(span)); err != nil {
				c.defect("flush", transport.StatusOK, err)
				break walk
			}
			c.out.inFlight += len(span)
			window -= len(span)
			moved += len(span)
		case RecoveryRetry:
			break walk
		case RecoveryReport:
			c.defect("flush", status, fmt.Errorf("%w: send of %d bytes rejected", ErrProtocolDefect, len(span)))
			c.emitFlush(moved, window, status)
			return nil
		default:
			c.emitFlush(moved, window, status)
			return c.fail("flush", status, nil)
		}
	}

	c.out.stalled = c.out.unsent() > 0
	c.emitFlush(moved, window, status)
	return nil
}

func (c *Client) emitFlush(moved, window int, status transport.Status) {
	if moved > 0 {
		c.emit(pslog.Event{
			Direction: pslog.DirectionOut,
			Category:  pslog.CategoryFlow,
			Flow:      &pslog.FlowEvent{Kind: pslog.FlowFlush, Bytes: moved, Queued: c.out.chain.Len(), Window: window},
		})
	}
	if unsent := c.out.unsent(); unsent > 0 {
		fe := &pslog.FlowEvent{Kind: pslog.FlowStall, Bytes: unsent, Queued: c.out.chain.Len(), Window: window}
		if status != transport.StatusOK {
			fe.Status = status.String()
		}
		c.emit(pslog.Event{Direction: pslog.DirectionOut, Category: pslog.CategoryFlow, Flow: fe})
	}
}

// acknowledge releases n acknowledged bytes from the head of the queue and
// continues sending. An acknowledgment can only cover bytes in flight; the
// excess is reported and ignored.
func (c *Client) acknowledge(n int) {
	if n <= 0 {
		return
	}
	if n > c.out.inFlight {
		c.defect("ack", transport.StatusOK,
			fmt.Errorf("%w: ack of %d bytes with %d in flight", ErrProtocolDefect, n, c.out.inFlight))
		n = c.out.inFlight
	}

	freed := c.out.chain.Discard(n)
	c.out.inFlight -= freed
	c.emit(pslog.Event{
		Direction: pslog.DirectionOut,
		Category:  pslog.CategoryFlow,
		Flow:      &pslog.FlowEvent{Kind: pslog.FlowAck, Bytes: freed, Queued: c.out.chain.Len()},
	})

	if c.out.unsent() > 0 {
		_ = c.flush()
	}
}

// retry resumes a flush stopped by a full send window.
func (c *Client) retry() {
	if c.out.stalled {
		_ = c.flush()
	}
}

// defect records a transport contract violation. Queued data is left as is.
func (c *Client) defect(op string, status transport.Status, cause error) {
	e := transportError(op, status, cause)
	c.err = e
	c.log.Error(op+": transport contract violated", "status", status, "error", cause)
	c.emitError(e, false)
}
