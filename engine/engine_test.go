package engine_test

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/r10ksim/engine"
	"github.com/sarchlab/r10ksim/state"
)

// runToDrain feeds lines through a fresh Engine and Processor until the
// simulation drains or the cycle cap is hit, returning the final Processor,
// the Engine (for Stats inspection) and the number of cycles run.
func runToDrain(lines []string, cycleCap uint64) (*state.Processor, *engine.Engine, int) {
	config := engine.DefaultConfig()
	config.CycleCap = cycleCap

	e := engine.New(config)
	stream := engine.NewStream(lines)
	prev := state.New()

	cycles := 0
	for uint64(cycles) < config.CycleCap {
		next := e.Propagate(prev, stream)
		cycles++
		prev = next
		if prev.Drained(stream.Exhausted()) {
			break
		}
	}

	return prev, e, cycles
}

// registerValue reads the committed value of a logical register from a
// drained (or in-flight) Processor snapshot.
func registerValue(p *state.Processor, logical uint8) uint64 {
	return p.PhysicalRegisterFile[p.RegisterMapTable[logical]]
}

var _ = Describe("Engine", func() {
	Describe("an empty program", func() {
		It("drains immediately with no side effects", func() {
			final, _, cycles := runToDrain(nil, 100)

			Expect(cycles).To(BeNumerically(">", 0))
			Expect(final.ActiveList).To(BeEmpty())
			Expect(final.IntegerQueue).To(BeEmpty())
			Expect(final.Exception.ExceptionMode).To(BeFalse())
		})
	})

	Describe("a single addi with constant operands", func() {
		It("commits the computed value to the renamed destination", func() {
			final, _, _ := runToDrain([]string{"addi x1, x0, 5"}, 1000)

			Expect(final.Drained(true)).To(BeTrue())
			Expect(registerValue(final, 1)).To(Equal(uint64(5)))
			Expect(final.ActiveList).To(BeEmpty())
			Expect(final.FreeList.Len()).To(Equal(32))
		})
	})

	Describe("a RAW hazard resolved by forwarding", func() {
		It("lets a dependent instruction consume a forwarded result", func() {
			final, _, _ := runToDrain([]string{
				"addi x1, x0, 7",
				"add x2, x1, x1",
			}, 1000)

			Expect(final.Drained(true)).To(BeTrue())
			Expect(registerValue(final, 1)).To(Equal(uint64(7)))
			Expect(registerValue(final, 2)).To(Equal(uint64(14)))
		})
	})

	Describe("divide by zero", func() {
		It("enters and clears Exception Mode, rolling back the rename", func() {
			final, e, _ := runToDrain([]string{"divu x1, x0, x0"}, 1000)

			Expect(final.Drained(true)).To(BeTrue())
			Expect(final.Exception.ExceptionMode).To(BeFalse())
			Expect(final.Exception.ExceptionPC).To(Equal(uint64(0)))
			Expect(final.PC).To(Equal(uint64(state.ExceptionResetPC)))
			Expect(final.RegisterMapTable[1]).To(Equal(uint8(1)))
			Expect(e.Stats.Exceptions).To(Equal(uint64(1)))
		})
	})

	Describe("subtract underflow", func() {
		It("excepts when the minuend is smaller than the subtrahend", func() {
			final, e, _ := runToDrain([]string{
				"addi x2, x0, 5",
				"sub x1, x0, x2",
			}, 1000)

			Expect(final.Drained(true)).To(BeTrue())
			Expect(final.Exception.ExceptionMode).To(BeFalse())
			Expect(final.Exception.ExceptionPC).To(Equal(uint64(1)))
			Expect(final.PC).To(Equal(uint64(state.ExceptionResetPC)))
			Expect(e.Stats.Exceptions).To(Equal(uint64(1)))
			// x2's addi retired before the exception rolled back, so its
			// rename survives; x1's sub never committed.
			Expect(registerValue(final, 2)).To(Equal(uint64(5)))
			Expect(final.RegisterMapTable[1]).To(Equal(uint8(1)))
		})
	})

	Describe("backpressure under a long independent stream", func() {
		It("never grows the Active List by more than the per-cycle width or overfills either queue, and eventually retires everything", func() {
			lines := make([]string, 40)
			for i := range lines {
				lines[i] = fmt.Sprintf("addi x1, x0, %d", i+1)
			}

			config := engine.DefaultConfig()
			e := engine.New(config)
			stream := engine.NewStream(lines)
			prev := state.New()

			maxActiveListGrowth := 0
			for i := 0; i < 200; i++ {
				next := e.Propagate(prev, stream)

				growth := len(next.ActiveList) - len(prev.ActiveList)
				if growth > maxActiveListGrowth {
					maxActiveListGrowth = growth
				}
				Expect(len(next.ActiveList)).To(BeNumerically("<=", state.MaxActiveList))
				Expect(len(next.IntegerQueue)).To(BeNumerically("<=", state.MaxIntegerQueue))

				prev = next
				if prev.Drained(stream.Exhausted()) {
					break
				}
			}

			Expect(maxActiveListGrowth).To(BeNumerically("<=", state.MaxPerCycleWidth))
			Expect(prev.Drained(true)).To(BeTrue())
			Expect(registerValue(prev, 1)).To(Equal(uint64(40)))
			Expect(e.Stats.Retired).To(Equal(uint64(40)))
		})
	})
})
