package bench_test

import (
	"bytes"
	"context"
	"log/slog"
	"math/rand/v2"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/qntx/fifo"
	"github.com/qntx/fifo/internal/bench"
)

var _ = Describe("Harness", func() {
	var (
		logs    *bytes.Buffer
		logger  *slog.Logger
		harness *bench.Harness
	)

	newHarness := func(capacity int) *bench.Harness {
		h, err := bench.NewHarness(capacity, logger)
		Expect(err).NotTo(HaveOccurred())
		return h
	}

	BeforeEach(func() {
		logs = &bytes.Buffer{}
		logger = slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelInfo}))
	})

	It("should reject an invalid capacity", func() {
		_, err := bench.NewHarness(0, logger)
		Expect(err).To(MatchError(fifo.ErrInvalidCapacity))
	})

	Context("when no stimulus is queued", func() {
		It("should report exhaustion", func() {
			harness = newHarness(2)
			_, err := harness.Tick()
			Expect(err).To(MatchError(bench.ErrStimulusExhausted))
			Expect(harness.Cycle()).To(BeZero())
		})
	})

	for _, scenario := range []bench.Scenario{bench.ScenarioA, bench.ScenarioB} {
		Context("when running scenario "+scenario.Name, func() {
			It("should produce the expected reads with no mismatches", func() {
				inputs, err := scenario.Inputs()
				Expect(err).NotTo(HaveOccurred())

				harness = newHarness(scenario.Capacity)
				harness.Load(inputs...)
				Expect(harness.Pending()).To(Equal(uint64(len(inputs))))

				report, err := harness.Run(context.Background())
				Expect(err).NotTo(HaveOccurred())
				Expect(report.Reads).To(Equal(scenario.Reads))
				Expect(report.Mismatches).To(BeZero())
				Expect(report.Cycles).To(Equal(uint64(len(inputs))))
				Expect(harness.Pending()).To(BeZero())
			})
		})
	}

	Context("when scenario a overflows", func() {
		It("should count exactly one rejected write", func() {
			inputs, err := bench.ScenarioA.Inputs()
			Expect(err).NotTo(HaveOccurred())

			harness = newHarness(bench.ScenarioA.Capacity)
			harness.Load(inputs...)
			report, err := harness.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Stats.Overflows).To(Equal(uint64(1)))
			Expect(report.Stats.Writes).To(Equal(uint64(5)))
			Expect(report.Stats.Reads).To(Equal(uint64(5)))
		})
	})

	DescribeTable("randomized runs against the scoreboard",
		func(capacity int) {
			harness = newHarness(capacity)
			cfg := bench.DefaultRandomConfig()
			cfg.Cycles = 10000
			harness.Load(bench.Random(rand.New(rand.NewPCG(uint64(capacity), 7)), cfg)...)

			report, err := harness.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Mismatches).To(BeZero())
			Expect(report.Cycles).To(Equal(uint64(10000)))
			Expect(report.Stats.Writes).To(BeNumerically(">", 0))
			Expect(report.Stats.Reads).To(BeNumerically(">", 0))
		},
		Entry("capacity 1", 1),
		Entry("capacity 2", 2),
		Entry("capacity 3", 3),
		Entry("capacity 4", 4),
		Entry("capacity 7", 7),
		Entry("capacity 16", 16),
	)

	Context("when the context is canceled", func() {
		It("should stop and return the context error", func() {
			harness = newHarness(4)
			harness.Load(fifo.Input[int]{Write: true, Data: 1}, fifo.Input[int]{Read: true})

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			report, err := harness.Run(ctx)
			Expect(err).To(MatchError(context.Canceled))
			Expect(report.Cycles).To(BeZero())
			Expect(harness.Pending()).To(Equal(uint64(2)))
		})
	})

	Context("with a monitor attached", func() {
		It("should fire hooks for ticks, rejections and resets", func() {
			harness = newHarness(1)
			monitor := bench.NewMonitor(logger)
			harness.AcceptHook(monitor)

			harness.Load(
				fifo.Input[int]{Write: true, Data: 1},
				fifo.Input[int]{Write: true, Data: 2},
				fifo.Input[int]{Read: true},
				fifo.Input[int]{Read: true},
				fifo.Input[int]{Reset: true, Write: true},
			)
			_, err := harness.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())

			Expect(monitor.Count(bench.HookPosTick)).To(Equal(5))
			Expect(monitor.Count(bench.HookPosOverflow)).To(Equal(1))
			Expect(monitor.Count(bench.HookPosUnderflow)).To(Equal(1))
			Expect(monitor.Count(bench.HookPosReset)).To(Equal(1))
			// full, still full, empty, still empty, still empty
			Expect(monitor.Changes()).To(Equal(2))

			Expect(logs.String()).To(ContainSubstring("write rejected"))
			Expect(logs.String()).To(ContainSubstring("read rejected"))
			Expect(logs.String()).To(ContainSubstring("run complete"))
		})
	})
})
