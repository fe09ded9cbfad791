package future

import "context"

// ValueResolver completes a ValueFuture with a value and optional error.
// Must be called exactly once; subsequent calls are no-ops.
type ValueResolver[V any] func(value V, err error)

// resolution wraps the result to distinguish it from parent context cancellation.
type resolution[V any] struct {
	value V
	err   error
}

func (r *resolution[V]) Error() string {
	if r.err != nil {
		return r.err.Error()
	}
	return "resolved"
}

// ValueFuture is an asynchronous result carrying a value and an error.
// When the parent context is canceled before resolution, the future is also canceled.
type ValueFuture[V any] struct {
	ctx context.Context
}

// NewValueFuture creates a ValueFuture bound to the parent context.
// Returns the future and a resolver that must be called exactly once.
func NewValueFuture[V any](parent context.Context) (*ValueFuture[V], ValueResolver[V]) {
	ctx, cancel := context.WithCancelCause(parent)
	return &ValueFuture[V]{ctx: ctx}, func(value V, err error) {
		cancel(&resolution[V]{value: value, err: err})
	}
}

// Done returns a channel closed when the future resolves or the parent context cancels.
func (f *ValueFuture[V]) Done() <-chan struct{} {
	return f.ctx.Done()
}

// Wait blocks until resolution and returns the value and error.
// On external cancel it returns the zero value and the parent's cause.
func (f *ValueFuture[V]) Wait() (V, error) {
	<-f.ctx.Done()
	cause := context.Cause(f.ctx)
	if r, ok := cause.(*resolution[V]); ok {
		return r.value, r.err
	}
	var zero V
	return zero, cause
}

// Resolved reports whether the future completed via its resolver (not external cancellation).
func (f *ValueFuture[V]) Resolved() bool {
	select {
	case <-f.ctx.Done():
		_, ok := context.Cause(f.ctx).(*resolution[V])
		return ok
	default:
		return false
	}
}
