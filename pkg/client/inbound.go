package client

import (
	pslog "github.com/mash-protocol/pollstream/pkg/log"
)

// receive takes a payload delivered by the transport. An empty payload
// signals that the peer closed the stream. A payload that does not fit the
// receive limit is refused and redelivered by the transport later; an empty
// buffer always accepts a payload.
func (c *Client) receive(p []byte) error {
	if len(p) == 0 {
		c.peerClosed()
		return nil
	}

	if limit := c.config.MaxReceiveBuffered; limit > 0 && !c.in.Empty() && c.in.Len()+len(p) > limit {
		c.log.Debug("receive: buffer full", "bytes", len(p), "available", c.in.Len())
		return resourceError("receive", ErrQueueFull)
	}

	c.in.Append(p)
	if c.handle != nil {
		c.handle.Consumed(len(p))
	}

	sample, truncated := pslog.Sample(p, c.config.LogSampleSize)
	c.emit(pslog.Event{
		Direction: pslog.DirectionIn,
		Category:  pslog.CategoryData,
		Data:      &pslog.DataEvent{Size: len(p), Data: sample, Truncated: truncated},
	})
	return nil
}
