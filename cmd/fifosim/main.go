// Command fifosim drives a FIFO through a scenario, a script or randomized
// stimulus, checks every cycle against a reference model and logs a summary.
//
// Usage:
//
//	fifosim [options]
//
// Options:
//
//	-capacity N      FIFO capacity (default 4; ignored by fixed scenarios)
//	-scenario NAME   a, b or random (default random)
//	-script FILE     read stimulus from FILE; overrides -scenario
//	-cycles N        cycles of random stimulus (default 1000)
//	-seed N          random seed (default 1)
//	-write-prob P    probability of a write request per cycle (default 0.5)
//	-read-prob P     probability of a read request per cycle (default 0.5)
//	-reset-prob P    probability of a reset per cycle (default 0.01)
//	-v               attach the monitor and enable debug logging
//	-json            use JSON log format
//
// The exit status is 1 on a configuration error or any mismatch.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/qntx/fifo"
	"github.com/qntx/fifo/internal/bench"
	"github.com/qntx/fifo/internal/logging"
)

// component identifies this executable for structured logging.
const component = logging.ComponentCLI

var errUnexpectedReads = errors.New("read sequence differs from scenario")

type options struct {
	capacity  int
	scenario  string
	script    string
	seed      uint64
	random    bench.RandomConfig
	verbose   bool
	jsonLog   bool
	logOutput io.Writer
}

func parseFlags(args []string) (options, error) {
	opts := options{random: bench.DefaultRandomConfig(), logOutput: os.Stderr}

	fs := flag.NewFlagSet("fifosim", flag.ContinueOnError)
	fs.IntVar(&opts.capacity, "capacity", 4, "FIFO capacity")
	fs.StringVar(&opts.scenario, "scenario", "random", "scenario: a, b or random")
	fs.StringVar(&opts.script, "script", "", "stimulus script file (overrides -scenario)")
	fs.IntVar(&opts.random.Cycles, "cycles", opts.random.Cycles, "cycles of random stimulus")
	fs.Uint64Var(&opts.seed, "seed", 1, "random seed")
	fs.Float64Var(&opts.random.WriteProb, "write-prob", opts.random.WriteProb, "write request probability")
	fs.Float64Var(&opts.random.ReadProb, "read-prob", opts.random.ReadProb, "read request probability")
	fs.Float64Var(&opts.random.ResetProb, "reset-prob", opts.random.ResetProb, "reset probability")
	fs.BoolVar(&opts.verbose, "v", false, "attach the monitor and enable debug logging")
	fs.BoolVar(&opts.jsonLog, "json", false, "use JSON log format")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if opts.random.Cycles < 0 {
		return opts, fmt.Errorf("cycles must be non-negative, got %d", opts.random.Cycles)
	}
	for name, p := range map[string]float64{
		"write-prob": opts.random.WriteProb,
		"read-prob":  opts.random.ReadProb,
		"reset-prob": opts.random.ResetProb,
	} {
		if p < 0 || p > 1 {
			return opts, fmt.Errorf("%s must be in [0, 1], got %v", name, p)
		}
	}
	return opts, nil
}

// stimulus resolves the options into a capacity, inputs and, for fixed
// scenarios, the expected read sequence.
func stimulus(opts options) (int, []fifo.Input[int], []int, error) {
	if opts.script != "" {
		f, err := os.Open(opts.script)
		if err != nil {
			return 0, nil, nil, err
		}
		defer f.Close()
		inputs, err := bench.ParseScript(f)
		return opts.capacity, inputs, nil, err
	}

	if opts.scenario == "random" {
		rng := rand.New(rand.NewPCG(opts.seed, opts.seed^0x9e3779b97f4a7c15))
		return opts.capacity, bench.Random(rng, opts.random), nil, nil
	}

	s, ok := bench.Lookup(opts.scenario)
	if !ok {
		return 0, nil, nil, fmt.Errorf("unknown scenario %q", opts.scenario)
	}
	inputs, err := s.Inputs()
	return s.Capacity, inputs, s.Reads, err
}

func run(ctx context.Context, opts options) (bench.Report, error) {
	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	hopts := &slog.HandlerOptions{Level: level}
	logger := logging.New(opts.logOutput, hopts)
	if opts.jsonLog {
		logger = logging.NewJSON(opts.logOutput, hopts)
	}
	logging.SetLogger(logger)

	capacity, inputs, wantReads, err := stimulus(opts)
	if err != nil {
		return bench.Report{}, err
	}

	h, err := bench.NewHarness(capacity, logger)
	if err != nil {
		return bench.Report{}, err
	}
	if opts.verbose {
		h.AcceptHook(bench.NewMonitor(logger))
	}
	h.Load(inputs...)

	report, err := h.Run(ctx)
	if err != nil {
		return report, err
	}
	if wantReads != nil && !slices.Equal(report.Reads, wantReads) {
		return report, fmt.Errorf("%w: got %v, want %v", errUnexpectedReads, report.Reads, wantReads)
	}
	return report, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		logging.Error(component, "invalid options", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := run(ctx, opts)
	if err != nil {
		logging.Error(component, "simulation failed", "error", err, "cycles", report.Cycles, "mismatches", report.Mismatches)
		stop()
		os.Exit(1)
	}

	logging.Info(component, "simulation passed", "cycles", report.Cycles, "reads", len(report.Reads))
}
