package fifo

import (
	"context"
	"math"
	"sync"
	"sync/atomic"

	"golang.org/x/sys/cpu"

	"github.com/qntx/fifo/internal/buffer"
	"github.com/qntx/fifo/internal/future"
	"github.com/qntx/fifo/internal/logging"
)

const (
	Unbounded          = math.MaxInt // Unbounded pending-request queue
	DefaultQueueSize   = Unbounded
	DefaultNonBlocking = false
	ChainInitialSize   = 64
	ChainMaxCapacity   = 64 * 1024
)

// Task is the completion handle of a request that produces no Output.
type Task interface {
	// Done returns a channel closed when the request completes or is canceled.
	Done() <-chan struct{}
	// Wait blocks until completion and returns the request's error.
	Wait() error
	// Resolved reports whether the request ran to completion.
	Resolved() bool
}

// Tick is the completion handle of one submitted Step.
type Tick[T any] interface {
	Done() <-chan struct{}
	// Wait blocks until the tick has been applied and returns its Output.
	Wait() (Output[T], error)
	Resolved() bool
}

// OwnerOption configures an Owner.
type OwnerOption func(*ownerConfig)

type ownerConfig struct {
	ctx         context.Context
	queueSize   int
	nonBlocking bool
}

// WithContext sets the context for the owner. Canceling it stops the owner.
func WithContext(ctx context.Context) OwnerOption {
	return func(c *ownerConfig) { c.ctx = ctx }
}

// WithQueueSize bounds the number of requests waiting behind the one in progress.
func WithQueueSize(size int) OwnerOption {
	return func(c *ownerConfig) { c.queueSize = size }
}

// WithNonBlocking makes submissions fail with ErrQueueFull instead of waiting
// when the queue is full.
func WithNonBlocking(nonBlocking bool) OwnerOption {
	return func(c *ownerConfig) { c.nonBlocking = nonBlocking }
}

// Owner gives goroutines serialized access to one FIFO.
//
// Every request runs on a single owner goroutine, one at a time, in the order
// the submissions were accepted. The goroutine is started on demand and exits
// when the queue drains.
type Owner[T any] struct {
	mutex           sync.Mutex
	fifo            *FIFO[T]
	ctx             context.Context
	cancel          context.CancelCauseFunc
	nonBlocking     bool
	queueSize       int
	running         bool // guarded by mutex
	closed          atomic.Bool
	workerWaitGroup sync.WaitGroup
	submitWaiters   chan struct{}
	requests        *buffer.Chain[func()]

	_              cpu.CacheLinePad
	submittedCount atomic.Uint64
	completedCount atomic.Uint64
	droppedCount   atomic.Uint64
}

// NewOwner takes ownership of f. f must not be used directly afterwards.
func NewOwner[T any](f *FIFO[T], options ...OwnerOption) *Owner[T] {
	cfg := ownerConfig{
		ctx:         context.Background(),
		queueSize:   DefaultQueueSize,
		nonBlocking: DefaultNonBlocking,
	}
	for _, opt := range options {
		opt(&cfg)
	}

	o := &Owner[T]{
		fifo:          f,
		nonBlocking:   cfg.nonBlocking,
		queueSize:     cfg.queueSize,
		submitWaiters: make(chan struct{}, 1), // buffer 1 to prevent deadlock
		requests:      buffer.NewChain[func()](ChainInitialSize, ChainMaxCapacity),
	}
	o.ctx, o.cancel = context.WithCancelCause(cfg.ctx)
	return o
}

func (o *Owner[T]) Context() context.Context { return o.ctx }
func (o *Owner[T]) Stopped() bool            { return o.closed.Load() || o.ctx.Err() != nil }
func (o *Owner[T]) QueueSize() int           { return o.queueSize }
func (o *Owner[T]) NonBlocking() bool        { return o.nonBlocking }
func (o *Owner[T]) Submitted() uint64        { return o.submittedCount.Load() }
func (o *Owner[T]) Completed() uint64        { return o.completedCount.Load() }
func (o *Owner[T]) Dropped() uint64          { return o.droppedCount.Load() }

// Waiting returns the number of queued requests not yet started.
func (o *Owner[T]) Waiting() uint64 {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	return o.requests.Len()
}

// Step submits one tick.
func (o *Owner[T]) Step(in Input[T]) Tick[T] {
	t, _ := o.step(in, o.nonBlocking)
	return t
}

// TryStep submits one tick without blocking. Returns false if it was not queued.
func (o *Owner[T]) TryStep(in Input[T]) (Tick[T], bool) {
	return o.step(in, true)
}

// Push submits a write-only tick.
func (o *Owner[T]) Push(v T) Tick[T] {
	return o.Step(Input[T]{Write: true, Data: v})
}

// Pop submits a read-only tick.
func (o *Owner[T]) Pop() Tick[T] {
	return o.Step(Input[T]{Read: true})
}

// Reset submits a reset tick.
func (o *Owner[T]) Reset() Tick[T] {
	return o.Step(Input[T]{Reset: true})
}

func (o *Owner[T]) step(in Input[T], nonBlocking bool) (Tick[T], bool) {
	f, resolve := future.NewValueFuture[Output[T]](o.ctx)
	err := o.submit(func() {
		resolve(o.fifo.Step(in), nil)
	}, nonBlocking)
	if err != nil {
		resolve(Output[T]{}, err)
		return f, false
	}
	return f, true
}

// Do runs fn with exclusive access to the FIFO. A panic in fn is returned as ErrPanic.
func (o *Owner[T]) Do(fn func(*FIFO[T]) error) Task {
	f, resolve := future.NewFuture(o.ctx)
	err := o.submit(func() {
		resolve(invoke(fn, o.fifo))
	}, o.nonBlocking)
	if err != nil {
		resolve(err)
	}
	return f
}

func (o *Owner[T]) submit(req func(), nonBlocking bool) error {
	o.submittedCount.Add(1)
	var err error
	if nonBlocking {
		err = o.trySubmit(req)
	} else {
		err = o.blockingTrySubmit(req)
	}
	if err != nil {
		o.droppedCount.Add(1)
		logging.Debug(logging.ComponentOwner, "request dropped", "error", err)
	}
	return err
}

func (o *Owner[T]) blockingTrySubmit(req func()) error {
	for {
		if err := o.trySubmit(req); err != ErrQueueFull {
			return err
		}
		select {
		case <-o.ctx.Done():
			return o.ctx.Err()
		case <-o.submitWaiters:
			if o.ctx.Err() != nil {
				return o.ctx.Err()
			}
		}
	}
}

func (o *Owner[T]) trySubmit(req func()) error {
	o.mutex.Lock()
	if o.Stopped() {
		o.mutex.Unlock()
		return ErrOwnerStopped
	}

	if o.running {
		if int(o.requests.Len()) >= o.queueSize {
			o.mutex.Unlock()
			return ErrQueueFull
		}
		o.requests.Write(req)
		o.mutex.Unlock()
		return nil
	}

	// Not running means the queue is empty, so req is next in order
	o.running = true
	o.workerWaitGroup.Add(1)
	o.mutex.Unlock()

	go o.worker(req)
	return nil
}

func (o *Owner[T]) worker(req func()) {
	for ok := true; ok; req, ok = o.next() {
		req()
		o.completedCount.Add(1)
	}
}

// next hands the worker its next request, or retires it when the queue is
// empty or the owner's context is done.
func (o *Owner[T]) next() (func(), bool) {
	o.mutex.Lock()

	if o.ctx.Err() != nil || o.requests.Len() == 0 {
		o.running = false
		o.workerWaitGroup.Done()
		o.mutex.Unlock()
		o.notifySubmitWaiter()
		return nil, false
	}

	req, _ := o.requests.Read()
	o.mutex.Unlock()
	o.notifySubmitWaiter()
	return req, true
}

func (o *Owner[T]) notifySubmitWaiter() {
	select {
	case o.submitWaiters <- struct{}{}:
	default:
	}
}

// Stop rejects new requests, lets queued ones finish, then cancels the
// owner's context. The returned Task resolves once the worker has exited.
func (o *Owner[T]) Stop() Task {
	f, resolve := future.NewFuture(context.Background())
	go func() {
		o.mutex.Lock()
		o.closed.Store(true)
		o.mutex.Unlock()
		o.workerWaitGroup.Wait()
		o.cancel(ErrOwnerStopped)
		logging.Debug(logging.ComponentOwner, "stopped",
			"completed", o.completedCount.Load(), "dropped", o.droppedCount.Load())
		resolve(nil)
	}()
	return f
}

// StopAndWait stops the owner and waits for queued requests to finish.
func (o *Owner[T]) StopAndWait() { _ = o.Stop().Wait() }
