package buffer

// Chain is an ordered FIFO of Nodes with O(1) tail append and incremental
// head consumption. The zero value is an empty chain ready to use.
type Chain struct {
	head  *Node
	tail  *Node
	size  int
	nodes int
}

// Append copies p into a new tail node and returns it. The caller keeps
// ownership of p. Appending an empty slice is a no-op and returns nil.
func (c *Chain) Append(p []byte) *Node {
	if len(p) == 0 {
		return nil
	}

	n := newNode(p)
	if c.tail == nil {
		c.head = n
	} else {
		c.tail.next = n
	}
	c.tail = n
	c.size += len(p)
	c.nodes++
	return n
}

// Consume copies up to len(dst) bytes from the head of the chain into dst,
// freeing every node it drains. It returns the number of bytes copied.
func (c *Chain) Consume(dst []byte) int {
	return c.take(len(dst), dst)
}

// Discard drops up to n bytes from the head of the chain without copying
// them. It returns the number of bytes dropped.
func (c *Chain) Discard(n int) int {
	return c.take(n, nil)
}

func (c *Chain) take(want int, dst []byte) int {
	if want > c.size {
		want = c.size
	}

	taken := 0
	for taken < want && c.head != nil {
		n := c.head
		k := min(n.Remaining(), want-taken)
		if dst != nil {
			copy(dst[taken:], n.data[n.off:n.off+k])
		}
		n.advance(k)
		taken += k
		c.size -= k

		if n.done() {
			c.unlinkHead()
		}
	}
	return taken
}

func (c *Chain) unlinkHead() {
	n := c.head
	c.head = n.next
	n.next = nil
	n.data = nil
	if c.head == nil {
		c.tail = nil
	}
	c.nodes--
}

// Len returns the number of unconsumed bytes across all nodes.
func (c *Chain) Len() int {
	return c.size
}

// Nodes returns the number of nodes in the chain.
func (c *Chain) Nodes() int {
	return c.nodes
}

// Front returns the head node, or nil when the chain is empty.
func (c *Chain) Front() *Node {
	return c.head
}

// Empty reports whether the chain holds no bytes.
func (c *Chain) Empty() bool {
	return c.head == nil
}

// Reset releases every node and zeroes the counter.
func (c *Chain) Reset() {
	for c.head != nil {
		c.unlinkHead()
	}
	c.size = 0
}
