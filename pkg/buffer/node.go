package buffer

import "errors"

// ErrMarkOverflow is returned when a hand-off mark would move past the end of
// a node.
var ErrMarkOverflow = errors.New("buffer: mark beyond end of node")

// Node is an owned, variable-length byte range with a consumption cursor.
type Node struct {
	data []byte
	off  int
	mark int
	next *Node
}

func newNode(p []byte) *Node {
	data := make([]byte, len(p))
	copy(data, p)
	return &Node{data: data}
}

// Len returns the total length of the node.
func (n *Node) Len() int {
	return len(n.data)
}

// Remaining returns the number of bytes not yet consumed.
func (n *Node) Remaining() int {
	return len(n.data) - n.off
}

// Unmarked returns the bytes past the hand-off mark. The returned slice
// aliases the node and is only valid until the node is consumed.
func (n *Node) Unmarked() []byte {
	return n.data[n.mark:]
}

// Marked returns the number of bytes handed off but not yet consumed.
func (n *Node) Marked() int {
	return n.mark - n.off
}

// Mark advances the hand-off mark by k bytes.
func (n *Node) Mark(k int) error {
	if k < 0 || n.mark+k > len(n.data) {
		return ErrMarkOverflow
	}
	n.mark += k
	return nil
}

// Next returns the successor node, or nil at the tail.
func (n *Node) Next() *Node {
	return n.next
}

// advance consumes k bytes (k <= Remaining). The mark never trails the cursor.
func (n *Node) advance(k int) {
	n.off += k
	if n.mark < n.off {
		n.mark = n.off
	}
}

func (n *Node) done() bool {
	return n.off == len(n.data)
}
