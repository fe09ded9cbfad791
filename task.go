package fifo

import (
	"fmt"
	"runtime/debug"
)

func invoke[T any](fn func(*FIFO[T]) error, f *FIFO[T]) (err error) {
	defer func() {
		if p := recover(); p != nil {
			if e, ok := p.(error); ok {
				err = fmt.Errorf("%w: %w\n%s", ErrPanic, e, debug.Stack())
			} else {
				err = fmt.Errorf("%w: %v\n%s", ErrPanic, p, debug.Stack())
			}
		}
	}()
	return fn(f)
}
