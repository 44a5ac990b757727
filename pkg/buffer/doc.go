// Package buffer provides the owned byte queues that sit between a
// push-style transport and a pull-style reader or writer.
//
// A Chain is a FIFO of Nodes. Each Node owns a private copy of the bytes it
// was created with and tracks two offsets into them:
//
//	0         off        mark            Len()
//	├──────────┼──────────┼────────────────┤
//	 consumed   handed off   not yet handed
//
// off marks the prefix that has been consumed (read by the application or
// acknowledged by the peer). mark marks the prefix that has been handed to
// the transport; it is only used on the outbound side. A Node is unlinked
// from its Chain as soon as off reaches Len().
//
// The Chain keeps a running byte counter equal to the sum of the unconsumed
// bytes of all its nodes, so Len is O(1).
//
// Neither type is safe for concurrent use.
package buffer
