package alu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/r10ksim/alu"
	"github.com/sarchlab/r10ksim/insts"
)

var _ = Describe("Unit", func() {
	var u *alu.Unit

	BeforeEach(func() {
		u = alu.New()
	})

	Describe("idle unit", func() {
		It("deasserts forwarding", func() {
			Expect(u.Forwarding().Asserted).To(BeFalse())
			Expect(u.Stage1Busy()).To(BeFalse())
		})
	})

	Describe("Latch", func() {
		It("occupies stage 1", func() {
			u.Latch(alu.Operand{OpCode: insts.OpAdd, OpAValue: 1, OpBValue: 2})
			Expect(u.Stage1Busy()).To(BeTrue())
		})

		It("panics when stage 1 is already busy", func() {
			u.Latch(alu.Operand{OpCode: insts.OpAdd})
			Expect(func() { u.Latch(alu.Operand{OpCode: insts.OpAdd}) }).To(Panic())
		})
	})

	Describe("Execute", func() {
		It("does not assert forwarding the cycle it is latched", func() {
			u.Latch(alu.Operand{OpCode: insts.OpAdd, OpAValue: 2, OpBValue: 3, DestRegister: 9, PC: 10})
			Expect(u.Forwarding().Asserted).To(BeFalse())
		})

		It("asserts forwarding one cycle after latch (stage1->stage2)", func() {
			u.Latch(alu.Operand{OpCode: insts.OpAdd, OpAValue: 2, OpBValue: 3, DestRegister: 9, PC: 10})
			u.Execute() // stage1 -> stage2; forwarding is asserted as soon as stage 2 is occupied
			fwd := u.Forwarding()
			Expect(fwd.Asserted).To(BeTrue())
			Expect(fwd.Value).To(Equal(uint64(5)))
			Expect(fwd.DestRegister).To(Equal(uint8(9)))
			Expect(fwd.PC).To(Equal(uint64(10)))
			Expect(fwd.Exception).To(BeFalse())
		})

		It("frees stage 1 after advancing", func() {
			u.Latch(alu.Operand{OpCode: insts.OpAdd})
			u.Execute()
			Expect(u.Stage1Busy()).To(BeFalse())
		})

		It("deasserts forwarding once stage 2 drains with nothing behind it", func() {
			u.Latch(alu.Operand{OpCode: insts.OpAdd})
			u.Execute()
			u.Execute()
			Expect(u.Forwarding().Asserted).To(BeFalse())
		})
	})

	DescribeTable("compute semantics",
		func(op insts.Op, a, b uint64, wantValue uint64, wantException bool) {
			u.Latch(alu.Operand{OpCode: op, OpAValue: a, OpBValue: b})
			u.Execute()
			fwd := u.Forwarding()
			Expect(fwd.Value).To(Equal(wantValue))
			Expect(fwd.Exception).To(Equal(wantException))
		},
		Entry("add", insts.OpAdd, uint64(4), uint64(5), uint64(9), false),
		Entry("sub no underflow", insts.OpSub, uint64(5), uint64(3), uint64(2), false),
		Entry("sub underflow", insts.OpSub, uint64(3), uint64(5), uint64(0), true),
		Entry("mulu", insts.OpMulu, uint64(6), uint64(7), uint64(42), false),
		Entry("divu", insts.OpDivu, uint64(10), uint64(3), uint64(3), false),
		Entry("divu by zero", insts.OpDivu, uint64(10), uint64(0), uint64(0), true),
		Entry("remu", insts.OpRemu, uint64(10), uint64(3), uint64(1), false),
		Entry("remu by zero", insts.OpRemu, uint64(10), uint64(0), uint64(0), true),
	)

	Describe("Reset", func() {
		It("clears both stages and deasserts forwarding", func() {
			u.Latch(alu.Operand{OpCode: insts.OpAdd, OpAValue: 1, OpBValue: 1})
			u.Execute()
			Expect(u.Forwarding().Asserted).To(BeTrue())

			u.Reset()
			Expect(u.Forwarding().Asserted).To(BeFalse())
			Expect(u.Stage1Busy()).To(BeFalse())
		})
	})
})
