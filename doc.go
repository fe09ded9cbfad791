// Package fifo implements a bounded synchronous FIFO whose state advances one
// tick at a time.
//
// A tick samples a reset request, a write request with its data, and a read
// request together, and applies them atomically:
//
//	f, err := fifo.New[int](4)
//	if err != nil {
//		return err
//	}
//	out := f.Step(fifo.Input[int]{Write: true, Data: 1, Read: true})
//	if !out.WriteAccepted {
//		// full, and no read freed a slot this tick
//	}
//
// TryPush, TryPop and TryPushPop wrap Step for queue-style use. A FIFO is not
// safe for concurrent use; Owner serializes access from many goroutines on a
// single owner goroutine.
package fifo
