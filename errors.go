package fifo

import "errors"

var (
	// ErrInvalidCapacity is returned by New when the capacity is less than 1.
	ErrInvalidCapacity = errors.New("capacity must be at least 1")

	// ErrQueueFull is returned when an owner's pending-request queue is full
	// and the submission is non-blocking.
	ErrQueueFull = errors.New("owner queue is full")

	// ErrOwnerStopped is returned for requests submitted after Stop.
	ErrOwnerStopped = errors.New("owner stopped")

	// ErrPanic is returned when a closure passed to Owner.Do panics.
	ErrPanic = errors.New("owner task panicked")
)
