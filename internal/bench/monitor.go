package bench

import (
	"log/slog"
	"sync"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/qntx/fifo"
	"github.com/qntx/fifo/internal/logging"
)

// Monitor is a hook that logs status changes and rejected requests.
// It only observes; nothing it does feeds back into the harness.
type Monitor struct {
	logger *slog.Logger

	mu      sync.Mutex
	seen    bool
	last    fifo.Status
	changes int
	counts  map[*sim.HookPos]int
}

// NewMonitor creates a Monitor logging to logger, or the default logger when nil.
func NewMonitor(logger *slog.Logger) *Monitor {
	return &Monitor{
		logger: logging.For(logger, logging.ComponentBench),
		counts: make(map[*sim.HookPos]int),
	}
}

// Func implements sim.Hook.
func (m *Monitor) Func(ctx sim.HookCtx) {
	ev, ok := ctx.Item.(Event)
	if !ok {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[ctx.Pos]++

	switch ctx.Pos {
	case HookPosTick:
		s := ev.Output.Status
		if m.seen && s == m.last {
			return
		}
		m.seen = true
		m.last = s
		m.changes++
		m.logger.Info("status",
			"cycle", ev.Cycle, "count", s.Count, "full", s.Full, "empty", s.Empty)
	case HookPosOverflow:
		m.logger.Info("write rejected", "cycle", ev.Cycle, "data", ev.Input.Data)
	case HookPosUnderflow:
		m.logger.Info("read rejected", "cycle", ev.Cycle)
	case HookPosReset:
		m.logger.Info("reset", "cycle", ev.Cycle)
	}
}

// Count returns how many times the hook fired at pos.
func (m *Monitor) Count(pos *sim.HookPos) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[pos]
}

// Changes returns the number of distinct status changes logged.
func (m *Monitor) Changes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.changes
}
