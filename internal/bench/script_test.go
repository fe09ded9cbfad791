package bench_test

import (
	"math/rand/v2"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/qntx/fifo"
	"github.com/qntx/fifo/internal/bench"
)

var _ = Describe("ParseScript", func() {
	parse := func(script string) ([]fifo.Input[int], error) {
		return bench.ParseScript(strings.NewReader(script))
	}

	It("should parse every command", func() {
		inputs, err := parse(`
# comment line
push 3
PUSHPOP -4   # trailing comment
pop
idle
idle 2
reset
`)
		Expect(err).NotTo(HaveOccurred())
		Expect(inputs).To(Equal([]fifo.Input[int]{
			{Write: true, Data: 3},
			{Write: true, Data: -4, Read: true},
			{Read: true},
			{},
			{},
			{},
			{Reset: true},
		}))
	})

	It("should return nothing for an empty script", func() {
		inputs, err := parse("\n   \n# only comments\n")
		Expect(err).NotTo(HaveOccurred())
		Expect(inputs).To(BeEmpty())
	})

	DescribeTable("rejecting malformed lines",
		func(script, message string) {
			_, err := parse(script)
			Expect(err).To(MatchError(bench.ErrSyntax))
			Expect(err.Error()).To(ContainSubstring(message))
		},
		Entry("unknown command", "push 1\njump 2", `line 2: unknown command "jump"`),
		Entry("missing value", "push", "line 1: push takes one value"),
		Entry("bad value", "pushpop x", `line 1: bad value "x"`),
		Entry("extra argument", "pop 1", "line 1: pop takes no arguments"),
		Entry("bad idle count", "idle 0", `line 1: bad idle count "0"`),
		Entry("too many idle counts", "idle 1 2", "line 1: idle takes at most one count"),
	)
})

var _ = Describe("Scenarios", func() {
	It("should look up scenarios case-insensitively", func() {
		s, ok := bench.Lookup("A")
		Expect(ok).To(BeTrue())
		Expect(s.Capacity).To(Equal(4))

		_, ok = bench.Lookup("z")
		Expect(ok).To(BeFalse())
	})

	It("should parse scenario b into three cycles", func() {
		inputs, err := bench.ScenarioB.Inputs()
		Expect(err).NotTo(HaveOccurred())
		Expect(inputs).To(HaveLen(3))
		Expect(inputs[1]).To(Equal(fifo.Input[int]{Write: true, Data: 8, Read: true}))
	})
})

var _ = Describe("Random", func() {
	It("should be reproducible for a seed", func() {
		cfg := bench.DefaultRandomConfig()
		a := bench.Random(rand.New(rand.NewPCG(1, 2)), cfg)
		b := bench.Random(rand.New(rand.NewPCG(1, 2)), cfg)
		Expect(a).To(HaveLen(cfg.Cycles))
		Expect(a).To(Equal(b))
	})

	It("should number write data from 1 without gaps", func() {
		inputs := bench.Random(rand.New(rand.NewPCG(3, 4)), bench.DefaultRandomConfig())
		next := 1
		for _, in := range inputs {
			if in.Write {
				Expect(in.Data).To(Equal(next))
				next++
			} else {
				Expect(in.Data).To(BeZero())
			}
		}
	})

	It("should honor probabilities of zero and one", func() {
		inputs := bench.Random(rand.New(rand.NewPCG(5, 6)), bench.RandomConfig{Cycles: 50, WriteProb: 1})
		for _, in := range inputs {
			Expect(in.Write).To(BeTrue())
			Expect(in.Read).To(BeFalse())
			Expect(in.Reset).To(BeFalse())
		}
	})
})
