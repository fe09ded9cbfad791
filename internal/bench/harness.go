package bench

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/qntx/fifo"
	"github.com/qntx/fifo/internal/buffer"
	"github.com/qntx/fifo/internal/logging"
)

// Hook positions invoked by the Harness. Every hook receives an Event as Item.
var (
	HookPosTick      = &sim.HookPos{Name: "FIFO Tick"}
	HookPosOverflow  = &sim.HookPos{Name: "FIFO Overflow"}
	HookPosUnderflow = &sim.HookPos{Name: "FIFO Underflow"}
	HookPosReset     = &sim.HookPos{Name: "FIFO Reset"}
)

// ErrStimulusExhausted is returned by Tick when no stimulus is queued.
var ErrStimulusExhausted = errors.New("stimulus exhausted")

// Event describes one applied tick.
type Event struct {
	Cycle  uint64
	Input  fifo.Input[int]
	Output fifo.Output[int]
}

// Report summarizes a run.
type Report struct {
	Cycles     uint64
	Stats      fifo.Stats
	Reads      []int // Values returned by accepted reads, in order
	Mismatches int
}

// Harness drives a FIFO from a queue of stimulus, one entry per cycle,
// checking every tick against a Scoreboard.
type Harness struct {
	sim.HookableBase

	dut        *fifo.FIFO[int]
	stimulus   *buffer.Chain[fifo.Input[int]]
	scoreboard *Scoreboard
	cycle      uint64
	reads      []int
	mismatches int
	logger     *slog.Logger
}

// NewHarness creates a harness around a new FIFO of the given capacity.
func NewHarness(capacity int, logger *slog.Logger) (*Harness, error) {
	dut, err := fifo.New[int](capacity, fifo.WithLogger(logger), fifo.WithName("dut"))
	if err != nil {
		return nil, errors.Wrap(err, "create dut")
	}
	return &Harness{
		dut:        dut,
		stimulus:   buffer.NewChain[fifo.Input[int]](64, 4096),
		scoreboard: NewScoreboard(capacity),
		logger:     logging.For(logger, logging.ComponentBench),
	}, nil
}

// Load queues stimulus behind anything already queued.
func (h *Harness) Load(inputs ...fifo.Input[int]) {
	for _, in := range inputs {
		h.stimulus.Write(in)
	}
}

// Pending returns the number of queued stimulus entries.
func (h *Harness) Pending() uint64 { return h.stimulus.Len() }

// Cycle returns the number of applied ticks.
func (h *Harness) Cycle() uint64 { return h.cycle }

// Tick applies the next stimulus entry. A scoreboard mismatch is returned
// alongside the Event; the harness stays usable after one.
func (h *Harness) Tick() (Event, error) {
	in, err := h.stimulus.Read()
	if err != nil {
		return Event{}, ErrStimulusExhausted
	}

	out := h.dut.Step(in)
	ev := Event{Cycle: h.cycle, Input: in, Output: out}
	h.cycle++

	if out.ReadAccepted {
		h.reads = append(h.reads, out.Data)
	}
	h.notify(ev)

	if err := h.scoreboard.Check(ev.Cycle, in, out); err != nil {
		h.mismatches++
		h.logger.Error("mismatch", "cycle", ev.Cycle, "error", err)
		return ev, err
	}
	return ev, nil
}

// Run ticks until the stimulus is exhausted or ctx is done. It returns the
// report and the first mismatch, if any.
func (h *Harness) Run(ctx context.Context) (Report, error) {
	var first error
	for h.stimulus.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return h.Report(), err
		}
		if _, err := h.Tick(); err != nil && first == nil {
			first = err
		}
	}
	r := h.Report()
	h.logger.Info("run complete",
		"cycles", r.Cycles,
		"writes", r.Stats.Writes,
		"reads", r.Stats.Reads,
		"overflows", r.Stats.Overflows,
		"underflows", r.Stats.Underflows,
		"resets", r.Stats.Resets,
		"mismatches", r.Mismatches,
	)
	return r, first
}

// Report returns the summary so far.
func (h *Harness) Report() Report {
	reads := make([]int, len(h.reads))
	copy(reads, h.reads)
	return Report{
		Cycles:     h.cycle,
		Stats:      h.dut.Stats(),
		Reads:      reads,
		Mismatches: h.mismatches,
	}
}

func (h *Harness) notify(ev Event) {
	if h.NumHooks() == 0 {
		return
	}

	h.InvokeHook(sim.HookCtx{Domain: h, Pos: HookPosTick, Item: ev})

	if ev.Input.Reset {
		h.InvokeHook(sim.HookCtx{Domain: h, Pos: HookPosReset, Item: ev})
		return
	}
	if ev.Input.Write && !ev.Output.WriteAccepted {
		h.InvokeHook(sim.HookCtx{Domain: h, Pos: HookPosOverflow, Item: ev})
	}
	if ev.Input.Read && !ev.Output.ReadAccepted {
		h.InvokeHook(sim.HookCtx{Domain: h, Pos: HookPosUnderflow, Item: ev})
	}
}
