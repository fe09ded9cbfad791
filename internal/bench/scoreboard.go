package bench

import (
	"github.com/pkg/errors"

	"github.com/qntx/fifo"
)

// ErrMismatch is wrapped by every scoreboard failure.
var ErrMismatch = errors.New("scoreboard mismatch")

// Scoreboard is a reference model of the FIFO. Check predicts each tick from
// the model and compares the prediction with what the FIFO produced.
type Scoreboard struct {
	capacity int
	model    []int
}

// NewScoreboard creates an empty model of the given capacity.
func NewScoreboard(capacity int) *Scoreboard {
	return &Scoreboard{capacity: capacity}
}

// Len returns the modelled occupancy.
func (s *Scoreboard) Len() int { return len(s.model) }

// Check advances the model by one tick and compares it with out.
func (s *Scoreboard) Check(cycle uint64, in fifo.Input[int], out fifo.Output[int]) error {
	if err := s.invariants(cycle, out); err != nil {
		return err
	}

	if in.Reset {
		s.model = s.model[:0]
		if out.WriteAccepted || out.ReadAccepted {
			return errors.Wrapf(ErrMismatch, "cycle %d: reset tick accepted a request", cycle)
		}
		return s.occupancy(cycle, out)
	}

	read := in.Read && len(s.model) > 0
	write := in.Write && (len(s.model) < s.capacity || read)

	if out.ReadAccepted != read {
		return errors.Wrapf(ErrMismatch, "cycle %d: read accepted = %v, want %v", cycle, out.ReadAccepted, read)
	}
	if out.WriteAccepted != write {
		return errors.Wrapf(ErrMismatch, "cycle %d: write accepted = %v, want %v", cycle, out.WriteAccepted, write)
	}

	if read {
		head := s.model[0]
		s.model = s.model[1:]
		if out.Data != head {
			return errors.Wrapf(ErrMismatch, "cycle %d: read %d, want %d", cycle, out.Data, head)
		}
	}
	if write {
		s.model = append(s.model, in.Data)
	}
	return s.occupancy(cycle, out)
}

func (s *Scoreboard) occupancy(cycle uint64, out fifo.Output[int]) error {
	if out.Count != len(s.model) {
		return errors.Wrapf(ErrMismatch, "cycle %d: count %d, want %d", cycle, out.Count, len(s.model))
	}
	return nil
}

// invariants checks properties that hold for any reachable state.
func (s *Scoreboard) invariants(cycle uint64, out fifo.Output[int]) error {
	switch {
	case out.Count < 0 || out.Count > s.capacity:
		return errors.Wrapf(ErrMismatch, "cycle %d: count %d outside [0, %d]", cycle, out.Count, s.capacity)
	case out.Full && out.Empty:
		return errors.Wrapf(ErrMismatch, "cycle %d: full and empty both set", cycle)
	case out.Full != (out.Count == s.capacity):
		return errors.Wrapf(ErrMismatch, "cycle %d: full = %v with count %d", cycle, out.Full, out.Count)
	case out.Empty != (out.Count == 0):
		return errors.Wrapf(ErrMismatch, "cycle %d: empty = %v with count %d", cycle, out.Empty, out.Count)
	}
	return nil
}
