package future

import "context"

// Resolver completes a Future. Call with nil for success, non-nil for failure.
type Resolver func(err error)

// Future is a ValueFuture that carries no value, only completion and an error.
type Future struct {
	v *ValueFuture[struct{}]
}

// NewFuture creates a Future bound to the parent context.
func NewFuture(parent context.Context) (*Future, Resolver) {
	v, resolve := NewValueFuture[struct{}](parent)
	return &Future{v: v}, func(err error) {
		resolve(struct{}{}, err)
	}
}

// Done returns a channel closed when the Future resolves or the parent context cancels.
func (f *Future) Done() <-chan struct{} {
	return f.v.Done()
}

// Wait blocks until resolution and returns nil on success, the resolver's
// error on failure, or the parent's cause if canceled externally.
func (f *Future) Wait() error {
	_, err := f.v.Wait()
	return err
}

// Resolved reports whether the Future completed via its resolver.
func (f *Future) Resolved() bool {
	return f.v.Resolved()
}
