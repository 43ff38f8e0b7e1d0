package state_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/r10ksim/state"
)

var _ = Describe("New", func() {
	It("maps logical registers to themselves", func() {
		p := state.New()
		for i := uint8(0); i < state.NumLogicalRegisters; i++ {
			Expect(p.RegisterMapTable[i]).To(Equal(i))
		}
	})

	It("populates the free list with physical registers 32..63", func() {
		p := state.New()
		Expect(p.FreeList.Len()).To(Equal(32))
		got := p.FreeList.Snapshot()
		for i, id := range got {
			Expect(id).To(Equal(uint8(32 + i)))
		}
	})

	It("starts with empty Active List and Integer Queue", func() {
		p := state.New()
		Expect(p.ActiveList).To(BeEmpty())
		Expect(p.IntegerQueue).To(BeEmpty())
	})

	It("starts with PC zero and no exception pending", func() {
		p := state.New()
		Expect(p.PC).To(BeZero())
		Expect(p.Exception.ExceptionMode).To(BeFalse())
	})
})

var _ = Describe("Processor.Clone", func() {
	It("produces an independent deep copy", func() {
		p := state.New()
		p.ActiveList = append(p.ActiveList, state.ActiveListEntry{PC: 1})
		p.IntegerQueue = append(p.IntegerQueue, state.IntegerQueueEntry{PC: 1})

		next := p.Clone()
		next.ActiveList[0].Done = true
		next.FreeList.PopFront()

		Expect(p.ActiveList[0].Done).To(BeFalse())
		Expect(p.FreeList.Len()).To(Equal(32))
		Expect(next.FreeList.Len()).To(Equal(31))
	})
})

var _ = Describe("Processor.Drained", func() {
	It("is false while the Active List is non-empty", func() {
		p := state.New()
		p.ActiveList = append(p.ActiveList, state.ActiveListEntry{})
		Expect(p.Drained(true)).To(BeFalse())
	})

	It("is false while Exception Mode is set", func() {
		p := state.New()
		p.Exception.ExceptionMode = true
		Expect(p.Drained(true)).To(BeFalse())
	})

	It("is true once the stream is exhausted and the Active List is empty", func() {
		p := state.New()
		Expect(p.Drained(true)).To(BeTrue())
		Expect(p.Drained(false)).To(BeFalse())
	})
})

var _ = Describe("FreeList", func() {
	It("pops in FIFO order", func() {
		f := state.NewFreeList(5, 6, 7)
		Expect(f.PopFront()).To(Equal(uint8(5)))
		Expect(f.PopFront()).To(Equal(uint8(6)))
		f.PushBack(8)
		Expect(f.PopFront()).To(Equal(uint8(7)))
		Expect(f.PopFront()).To(Equal(uint8(8)))
	})

	It("panics when popping an empty list", func() {
		f := state.NewFreeList()
		Expect(func() { f.PopFront() }).To(Panic())
	})
})
