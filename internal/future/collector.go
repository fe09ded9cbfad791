package future

import (
	"context"
	"errors"
	"sync"
)

// CollectorResolver resolves one slot of a Collector by index.
// A non-nil error fails the whole collection.
type CollectorResolver[V any] func(index int, value V, err error)

// errCollected is the cancellation cause once every slot has resolved.
var errCollected = errors.New("collected")

// collectFailure wraps a slot error to distinguish it from external cancellation.
type collectFailure struct{ err error }

func (e *collectFailure) Error() string { return e.err.Error() }

// Collector gathers a fixed number of results and returns them ordered by index.
// It completes when every slot has resolved, on the first slot error, or when
// the parent context is canceled.
type Collector[V any] struct {
	ctx       context.Context
	cancel    context.CancelCauseFunc
	mu        sync.Mutex
	values    []V
	set       []bool
	remaining int
}

// NewCollector creates a Collector expecting n results, bound to the parent context.
// The resolver must be called at most once per index in [0, n).
func NewCollector[V any](parent context.Context, n int) (*Collector[V], CollectorResolver[V]) {
	ctx, cancel := context.WithCancelCause(parent)
	c := &Collector[V]{
		ctx:       ctx,
		cancel:    cancel,
		values:    make([]V, n),
		set:       make([]bool, n),
		remaining: n,
	}
	if n == 0 {
		cancel(errCollected)
	}
	return c, c.resolve
}

// Len returns the number of expected results.
func (c *Collector[V]) Len() int {
	return len(c.values)
}

// Done returns a channel closed on completion, failure or cancellation.
func (c *Collector[V]) Done() <-chan struct{} {
	return c.ctx.Done()
}

// Wait blocks until the Collector completes and returns the values in index
// order. Slots that never resolved hold the zero value.
func (c *Collector[V]) Wait() ([]V, error) {
	<-c.ctx.Done()

	c.mu.Lock()
	defer c.mu.Unlock()

	vals := make([]V, len(c.values))
	copy(vals, c.values)

	cause := context.Cause(c.ctx)
	if cause == errCollected || c.remaining == 0 {
		return vals, nil
	}
	if f, ok := cause.(*collectFailure); ok {
		return vals, f.err
	}
	return vals, cause
}

// Cancel stops the Collector with the given cause.
func (c *Collector[V]) Cancel(cause error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancel(cause)
}

func (c *Collector[V]) resolve(index int, value V, err error) {
	if index < 0 || index >= len(c.values) {
		panic("collector: index out of range")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if context.Cause(c.ctx) != nil || c.set[index] {
		return
	}
	if err != nil {
		c.cancel(&collectFailure{err: err})
		return
	}

	c.values[index] = value
	c.set[index] = true
	c.remaining--
	if c.remaining == 0 {
		c.cancel(errCollected)
	}
}
