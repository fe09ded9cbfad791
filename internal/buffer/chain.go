package buffer

import (
	"math"
	"sync/atomic"
)

// ring is one fixed-capacity chunk of a Chain.
type ring[T any] struct {
	slots *Storage[T]
	ptr   Pointers
	count int
	next  *ring[T]
}

func newRing[T any](capacity int) *ring[T] {
	return &ring[T]{
		slots: NewStorage[T](capacity),
		ptr:   NewPointers(capacity),
	}
}

func (r *ring[T]) full() bool { return r.count == r.slots.Len() }

func (r *ring[T]) push(v T) {
	r.slots.Store(r.ptr.Write(), v)
	r.ptr.AdvanceWrite()
	r.count++
}

func (r *ring[T]) pop() T {
	i := r.ptr.Read()
	v := r.slots.Load(i)
	r.slots.Clear(i)
	r.ptr.AdvanceRead()
	r.count--
	return v
}

// Chain is an unbounded FIFO made of linked fixed-capacity rings.
// A ring that drains while it is the only chunk keeps being reused, so a
// steady producer/consumer pair stops allocating once it reaches its working size.
// Designed for single-producer single-consumer use; callers serialize access.
type Chain[T any] struct {
	head *ring[T] // read position
	tail *ring[T] // write position

	maxCap int

	writes atomic.Uint64
	reads  atomic.Uint64
}

// NewChain creates a Chain with initial and max chunk capacity.
func NewChain[T any](initCap, maxCap int) *Chain[T] {
	if initCap <= 0 {
		initCap = 16
	}
	if maxCap < initCap {
		maxCap = initCap
	}
	chunk := newRing[T](initCap)
	return &Chain[T]{
		head:   chunk,
		tail:   chunk,
		maxCap: maxCap,
	}
}

// Len returns approximate unread count.
func (c *Chain[T]) Len() uint64 {
	w, r := c.writes.Load(), c.reads.Load()
	if w >= r {
		return w - r
	}
	return math.MaxUint64 - r + w + 1
}

// Write appends a value, linking a new chunk when the tail ring is full.
func (c *Chain[T]) Write(v T) {
	if c.tail.full() {
		chunk := newRing[T](c.nextCap())
		c.tail.next = chunk
		c.tail = chunk
	}
	c.tail.push(v)
	c.writes.Add(1)
}

// Read retrieves the oldest value. Returns ErrEmpty if the chain is empty.
func (c *Chain[T]) Read() (T, error) {
	for c.head.count == 0 {
		if c.head.next == nil {
			var zero T
			return zero, ErrEmpty
		}
		// Drop the drained chunk
		old := c.head
		c.head = c.head.next
		old.next = nil
	}
	v := c.head.pop()
	c.reads.Add(1)
	return v, nil
}

// nextCap calculates next chunk capacity with growth strategy.
func (c *Chain[T]) nextCap() int {
	cur := c.tail.slots.Len()
	if cur < 1024 {
		return min(cur*2, c.maxCap)
	}
	return min(cur+cur/2, c.maxCap)
}
