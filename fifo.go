package fifo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/qntx/fifo/internal/buffer"
	"github.com/qntx/fifo/internal/logging"
)

// Status is the occupancy view of a FIFO after a tick.
type Status = buffer.Status

// Input holds the requests sampled for one tick.
type Input[T any] struct {
	Reset bool // Clear the FIFO; overrides Write and Read
	Write bool // Request to store Data
	Data  T    // Ignored unless the write is accepted
	Read  bool // Request to remove the oldest value
}

// Output is the result of one tick.
type Output[T any] struct {
	// Data is the read-data register. It is updated only by an accepted read
	// and holds its previous value otherwise, including on reset ticks.
	Data          T
	WriteAccepted bool
	ReadAccepted  bool
	Status
}

// Stats counts tick outcomes since construction. Reset does not clear them.
type Stats struct {
	Ticks      uint64 // Step calls, reset ticks included
	Writes     uint64 // Accepted writes
	Reads      uint64 // Accepted reads
	Overflows  uint64 // Write requests rejected because the FIFO was full
	Underflows uint64 // Read requests rejected because the FIFO was empty
	Resets     uint64 // Reset ticks
}

// FIFO is a bounded synchronous first-in-first-out buffer driven one tick at a
// time through Step.
//
// Each tick samples reset, write and read requests at once. Reset wins over
// everything else. Otherwise a read is accepted when the FIFO holds a value,
// and a write is accepted when there is a free slot or when the same tick's
// read frees one. Rejected requests are not errors; they show up as false
// acceptance flags in the Output.
//
// A FIFO is not safe for concurrent use. Wrap it in an Owner to share it
// between goroutines.
type FIFO[T any] struct {
	slots    *buffer.Storage[T]
	ptr      buffer.Pointers
	count    int
	readData T
	stats    Stats
	logger   *slog.Logger
}

// New creates a FIFO holding up to capacity values.
// It returns an error wrapping ErrInvalidCapacity when capacity < 1.
func New[T any](capacity int, options ...Option) (*FIFO[T], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}

	cfg := config{}
	for _, opt := range options {
		opt(&cfg)
	}

	logger := logging.For(cfg.logger, logging.ComponentFIFO)
	if cfg.name != "" {
		logger = logger.With("fifo", cfg.name)
	}

	return &FIFO[T]{
		slots:  buffer.NewStorage[T](capacity),
		ptr:    buffer.NewPointers(capacity),
		logger: logger,
	}, nil
}

// Step applies one tick and returns its outputs.
func (f *FIFO[T]) Step(in Input[T]) Output[T] {
	f.stats.Ticks++
	prev := f.Status()

	if in.Reset {
		f.reset()
		f.stats.Resets++
		f.report(prev, in, false, false)
		return Output[T]{Data: f.readData, Status: f.Status()}
	}

	read := in.Read && f.count > 0
	write := in.Write && (f.count < f.slots.Len() || read)

	// The read goes first: on a full FIFO both requests address the same slot,
	// and the read must return the value stored before this tick.
	if read {
		i := f.ptr.Read()
		f.readData = f.slots.Load(i)
		f.slots.Clear(i)
		f.ptr.AdvanceRead()
		f.count--
		f.stats.Reads++
	} else if in.Read {
		f.stats.Underflows++
	}

	if write {
		f.slots.Store(f.ptr.Write(), in.Data)
		f.ptr.AdvanceWrite()
		f.count++
		f.stats.Writes++
	} else if in.Write {
		f.stats.Overflows++
	}

	f.report(prev, in, write, read)
	return Output[T]{
		Data:          f.readData,
		WriteAccepted: write,
		ReadAccepted:  read,
		Status:        f.Status(),
	}
}

func (f *FIFO[T]) reset() {
	f.slots.ClearAll()
	f.ptr.Reset()
	f.count = 0
}

// report logs status transitions and rejected requests at debug level.
func (f *FIFO[T]) report(prev Status, in Input[T], wrote, read bool) {
	if !f.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	if in.Reset {
		f.logger.Debug("reset", "dropped", prev.Count)
		return
	}
	cur := f.Status()
	if in.Write && !wrote {
		f.logger.Debug("write rejected", "count", cur.Count)
	}
	if in.Read && !read {
		f.logger.Debug("read rejected", "count", cur.Count)
	}
	if cur.Full && !prev.Full {
		f.logger.Debug("full", "count", cur.Count)
	}
	if cur.Empty && !prev.Empty {
		f.logger.Debug("empty")
	}
}

// Cap returns the capacity fixed at construction.
func (f *FIFO[T]) Cap() int { return f.slots.Len() }

// Len returns the number of stored values.
func (f *FIFO[T]) Len() int { return f.count }

// Full reports whether every slot is occupied.
func (f *FIFO[T]) Full() bool { return f.count == f.slots.Len() }

// Empty reports whether no value is stored.
func (f *FIFO[T]) Empty() bool { return f.count == 0 }

// Status returns the current occupancy view.
func (f *FIFO[T]) Status() Status { return buffer.Evaluate(f.count, f.slots.Len()) }

// ReadData returns the read-data register as left by the most recent tick.
func (f *FIFO[T]) ReadData() T { return f.readData }

// Stats returns the tick counters.
func (f *FIFO[T]) Stats() Stats { return f.stats }
