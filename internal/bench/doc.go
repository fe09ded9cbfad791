// Package bench is the testbench around the FIFO core: a Harness that applies
// one stimulus entry per cycle, a Scoreboard reference model that checks every
// tick, and a Monitor that logs status changes.
//
// Stimulus comes from Random, from ParseScript, or from the predefined
// scenarios. Observers attach to the Harness as akita sim.Hooks:
//
//	h, _ := bench.NewHarness(4, nil)
//	h.AcceptHook(bench.NewMonitor(nil))
//	h.Load(bench.Random(rng, bench.DefaultRandomConfig())...)
//	report, err := h.Run(ctx)
package bench
