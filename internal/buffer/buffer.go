package buffer

import "errors"

// ErrEmpty is returned when a read finds no stored elements.
var ErrEmpty = errors.New("buffer empty")

// Storage is a fixed array of slots addressed by pre-wrapped indices.
// Indices are produced by Pointers and are never bounds-checked here beyond
// what the runtime does. Not thread-safe.
type Storage[T any] struct {
	slots []T
	zero  T // zero value for clearing released slots
}

// NewStorage creates storage with n zeroed slots.
func NewStorage[T any](n int) *Storage[T] {
	return &Storage[T]{
		slots: make([]T, n),
	}
}

// Len returns the number of slots.
func (s *Storage[T]) Len() int {
	return len(s.slots)
}

// Load returns the value held in slot i.
func (s *Storage[T]) Load(i int) T {
	return s.slots[i]
}

// Store writes v into slot i.
func (s *Storage[T]) Store(i int, v T) {
	s.slots[i] = v
}

// Clear drops the reference held in slot i so large payloads can be collected.
func (s *Storage[T]) Clear(i int) {
	s.slots[i] = s.zero
}

// ClearAll zeroes every slot.
func (s *Storage[T]) ClearAll() {
	clear(s.slots)
}
