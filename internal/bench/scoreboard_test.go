package bench_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/qntx/fifo"
	"github.com/qntx/fifo/internal/bench"
)

var _ = Describe("Scoreboard", func() {
	var sb *bench.Scoreboard

	status := func(count, capacity int) fifo.Status {
		return fifo.Status{Count: count, Full: count == capacity, Empty: count == 0}
	}

	BeforeEach(func() {
		sb = bench.NewScoreboard(2)
	})

	It("should accept a correct write then read", func() {
		err := sb.Check(0,
			fifo.Input[int]{Write: true, Data: 5},
			fifo.Output[int]{WriteAccepted: true, Status: status(1, 2)})
		Expect(err).NotTo(HaveOccurred())
		Expect(sb.Len()).To(Equal(1))

		err = sb.Check(1,
			fifo.Input[int]{Read: true},
			fifo.Output[int]{Data: 5, ReadAccepted: true, Status: status(0, 2)})
		Expect(err).NotTo(HaveOccurred())
		Expect(sb.Len()).To(BeZero())
	})

	It("should flag a wrong read value", func() {
		Expect(sb.Check(0,
			fifo.Input[int]{Write: true, Data: 5},
			fifo.Output[int]{WriteAccepted: true, Status: status(1, 2)})).To(Succeed())

		err := sb.Check(1,
			fifo.Input[int]{Read: true},
			fifo.Output[int]{Data: 6, ReadAccepted: true, Status: status(0, 2)})
		Expect(err).To(MatchError(bench.ErrMismatch))
		Expect(err.Error()).To(ContainSubstring("cycle 1: read 6, want 5"))
	})

	It("should flag a read accepted on an empty FIFO", func() {
		err := sb.Check(0,
			fifo.Input[int]{Read: true},
			fifo.Output[int]{ReadAccepted: true, Status: status(0, 2)})
		Expect(err).To(MatchError(bench.ErrMismatch))
	})

	It("should flag a write dropped while a same-cycle read frees a slot", func() {
		for i := range 2 {
			Expect(sb.Check(uint64(i),
				fifo.Input[int]{Write: true, Data: i},
				fifo.Output[int]{WriteAccepted: true, Status: status(i+1, 2)})).To(Succeed())
		}

		err := sb.Check(2,
			fifo.Input[int]{Write: true, Data: 9, Read: true},
			fifo.Output[int]{Data: 0, ReadAccepted: true, Status: status(1, 2)})
		Expect(err).To(MatchError(bench.ErrMismatch))
		Expect(err.Error()).To(ContainSubstring("write accepted = false, want true"))
	})

	It("should flag inconsistent status flags", func() {
		err := sb.Check(0, fifo.Input[int]{}, fifo.Output[int]{Status: fifo.Status{Full: true, Empty: true}})
		Expect(err).To(MatchError(bench.ErrMismatch))

		err = sb.Check(0, fifo.Input[int]{}, fifo.Output[int]{Status: fifo.Status{Count: 3}})
		Expect(err).To(MatchError(bench.ErrMismatch))
	})

	It("should clear the model on reset and flag accepted requests", func() {
		Expect(sb.Check(0,
			fifo.Input[int]{Write: true, Data: 1},
			fifo.Output[int]{WriteAccepted: true, Status: status(1, 2)})).To(Succeed())

		Expect(sb.Check(1,
			fifo.Input[int]{Reset: true, Write: true},
			fifo.Output[int]{Status: status(0, 2)})).To(Succeed())
		Expect(sb.Len()).To(BeZero())

		err := sb.Check(2,
			fifo.Input[int]{Reset: true, Read: true},
			fifo.Output[int]{ReadAccepted: true, Status: status(0, 2)})
		Expect(err).To(MatchError(bench.ErrMismatch))
	})
})
