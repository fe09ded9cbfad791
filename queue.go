package fifo

// TryPush stores v in one tick with no read request.
// It returns false when the FIFO is full.
func (f *FIFO[T]) TryPush(v T) bool {
	return f.Step(Input[T]{Write: true, Data: v}).WriteAccepted
}

// TryPop removes the oldest value in one tick with no write request.
// It returns false when the FIFO is empty.
func (f *FIFO[T]) TryPop() (T, bool) {
	out := f.Step(Input[T]{Read: true})
	if !out.ReadAccepted {
		var zero T
		return zero, false
	}
	return out.Data, true
}

// TryPushPop requests a write of v and a read in the same tick.
// On a full FIFO both are accepted; on an empty one only the write is.
func (f *FIFO[T]) TryPushPop(v T) (popped T, pushed, ok bool) {
	out := f.Step(Input[T]{Write: true, Data: v, Read: true})
	if out.ReadAccepted {
		popped = out.Data
	}
	return popped, out.WriteAccepted, out.ReadAccepted
}

// Reset empties the FIFO in one tick.
func (f *FIFO[T]) Reset() {
	f.Step(Input[T]{Reset: true})
}
