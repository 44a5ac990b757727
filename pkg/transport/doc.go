// Package transport defines the push-style transport contract consumed by the
// polling client, and a TCP implementation of it.
//
// A Transport delivers everything through a registered Handler:
//
//	OnConnected(err)   asynchronous connect finished
//	OnSent(n)          n more bytes acknowledged by the peer
//	OnReceived(p)      bytes arrived; nil or empty means the peer closed
//	OnError(status)    the connection was aborted or reset
//	OnPoll()           periodic maintenance tick
//
// Handler callbacks are only ever invoked from inside Poll, so a caller that
// drives Poll from a single loop never sees callbacks interleave with its own
// calls.
//
// # Flow Control
//
// SendWindow reports how many bytes Send will accept right now. Send copies
// the bytes it is given; the window shrinks by that amount and grows back as
// OnSent reports acknowledgments. On the receive side, bytes passed to
// OnReceived count against the receive window until the handler reports them
// with Consumed.
//
// # Teardown
//
// Deregister must be called before Close or Abort whenever the handler is
// about to go away. Events that are still queued after Deregister are
// dropped.
package transport
