package fifo

import "github.com/qntx/fifo/internal/future"

// Batch is a run of ticks applied back to back on the owner goroutine.
// No other request interleaves with the ticks of one batch.
type Batch[T any] struct {
	collector *future.Collector[Output[T]]
}

// Len returns the number of ticks in the batch.
func (b *Batch[T]) Len() int { return b.collector.Len() }

// Done returns a channel closed when every tick has been applied or the batch failed.
func (b *Batch[T]) Done() <-chan struct{} { return b.collector.Done() }

// Wait blocks until the batch completes and returns the outputs in input order.
func (b *Batch[T]) Wait() ([]Output[T], error) { return b.collector.Wait() }

// Batch submits inputs as one request; they are stepped in order without interleaving.
func (o *Owner[T]) Batch(inputs ...Input[T]) *Batch[T] {
	c, resolve := future.NewCollector[Output[T]](o.ctx, len(inputs))
	b := &Batch[T]{collector: c}
	if len(inputs) == 0 {
		return b
	}

	err := o.submit(func() {
		for i, in := range inputs {
			resolve(i, o.fifo.Step(in), nil)
		}
	}, o.nonBlocking)
	if err != nil {
		c.Cancel(err)
	}
	return b
}
