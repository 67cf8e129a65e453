package translate

import (
	"github.com/ezrec/rvjit/decode"
	"github.com/ezrec/rvjit/hart"
	"github.com/ezrec/rvjit/ir"
)

var branchConds = map[decode.Kind]ir.Cond{
	decode.BEQ:  ir.COND_EQ,
	decode.BNE:  ir.COND_NE,
	decode.BLT:  ir.COND_LT,
	decode.BGE:  ir.COND_GE,
	decode.BLTU: ir.COND_LTU,
	decode.BGEU: ir.COND_GEU,
}

// aligned reports whether target is a valid instruction address under the
// current flag set. With compressed instructions enabled any halfword
// boundary is legal; the decoder guarantees bit 0 is clear.
func (ctx *Context) aligned(target uint64) bool {
	return ctx.Flags.Has(hart.FLAG_RVC) || target&0x3 == 0
}

// raiseMisalignedTarget reports a control transfer to a misaligned address.
// The faulting PC is the transfer instruction; the target goes to badaddr.
func (ctx *Context) raiseMisalignedTarget(target ir.Value) {
	ctx.B.Mov(ir.BadAddr, target)
	ctx.raise(hart.CAUSE_MISALIGNED_FETCH)
}

func genJAL(ctx *Context, in decode.Insn) {
	target := ctx.PCNext + uint64(in.Imm)

	// Statically misaligned: the trap replaces the jump entirely, before
	// the link register is touched.
	if !ctx.aligned(target) {
		ctx.raiseMisalignedTarget(ctx.B.ConstI(target))
		return
	}

	ctx.Set(in.Rd, ctx.B.ConstI(ctx.PCSucc))
	ctx.gotoTB(target)
	ctx.Status = STATUS_NO_RETURN
}

func genJALR(ctx *Context, in decode.Insn) {
	b := ctx.B

	t := ctx.Get(in.Rs1)
	b.AddI(t, t, in.Imm)
	b.AndI(t, t, ^uint64(1))
	b.Mov(ir.PC, t)

	misaligned := ir.Label(-1)
	if !ctx.Flags.Has(hart.FLAG_RVC) {
		misaligned = b.NewLabel()
		low := b.NewTemp()
		b.AndI(low, t, 0x2)
		b.Brcond(ir.COND_NE, low, b.ConstI(0), misaligned)
	}

	ctx.Set(in.Rd, b.ConstI(ctx.PCSucc))
	ctx.exitIndirect()

	if misaligned >= 0 {
		b.SetLabel(misaligned)
		ctx.raiseMisalignedTarget(t)
	}
	ctx.Status = STATUS_NO_RETURN
}

func genBranch(ctx *Context, in decode.Insn) {
	b := ctx.B
	cond := branchConds[in.Kind]
	target := ctx.PCNext + uint64(in.Imm)

	a := ctx.Get(in.Rs1)
	y := ctx.Get(in.Rs2)

	taken := b.NewLabel()
	b.Brcond(cond, a, y, taken)
	ctx.gotoTB(ctx.PCSucc)

	b.SetLabel(taken)
	if !ctx.aligned(target) {
		// Misalignment traps only when the branch is taken.
		ctx.raiseMisalignedTarget(b.ConstI(target))
	} else {
		ctx.gotoTB(target)
	}
	ctx.Status = STATUS_NO_RETURN
}
