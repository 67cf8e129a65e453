package translate

import (
	"github.com/ezrec/rvjit/decode"
	"github.com/ezrec/rvjit/hart"
	"github.com/ezrec/rvjit/ir"
)

func genECALL(ctx *Context, in decode.Insn) {
	ctx.raise(hart.CAUSE_ECALL_U)
}

func genEBREAK(ctx *Context, in decode.Insn) {
	ctx.raise(hart.CAUSE_BREAKPOINT)
}

// genFENCE: a single hart with a coherent data view needs no ordering ops.
func genFENCE(ctx *Context, in decode.Insn) {
}

// genFENCEI orders the instruction stream against prior stores: the block
// ends and control returns to the dispatcher, which observes updated memory
// when it translates the successor.
func genFENCEI(ctx *Context, in decode.Insn) {
	ctx.B.MovI(ir.PC, ctx.PCSucc)
	ctx.B.Exit()
	ctx.Status = STATUS_NO_RETURN
}

var csrHelpers = map[decode.Kind]ir.Helper{
	decode.CSRRW:  ir.HELPER_CSRRW,
	decode.CSRRS:  ir.HELPER_CSRRS,
	decode.CSRRC:  ir.HELPER_CSRRC,
	decode.CSRRWI: ir.HELPER_CSRRW,
	decode.CSRRSI: ir.HELPER_CSRRS,
	decode.CSRRCI: ir.HELPER_CSRRC,
}

// genCSR lowers all six forms onto three helpers; the immediate forms pass
// their zimm as the source value. A CSR access can change translation-
// relevant state (rounding mode, feature bits), so the block always ends
// through the dispatcher.
func genCSR(ctx *Context, in decode.Insn) {
	b := ctx.B

	// The helper may raise; the PC must name this instruction.
	b.MovI(ir.PC, ctx.PCNext)

	// The set/clear forms leave the CSR untouched when the source is the
	// zero register (or a zero immediate); that depends on the encoding,
	// not the runtime value, so it is resolved here as a write-enable.
	wen := uint64(1)
	var src ir.Value
	switch in.Kind {
	case decode.CSRRWI, decode.CSRRSI, decode.CSRRCI:
		src = b.ConstI(uint64(in.Imm))
		if in.Kind != decode.CSRRWI && in.Imm == 0 {
			wen = 0
		}
	default:
		src = ctx.Get(in.Rs1)
		if in.Kind != decode.CSRRW && in.Rs1 == 0 {
			wen = 0
		}
	}

	t := b.NewTemp()
	b.Call(csrHelpers[in.Kind], t, b.ConstI(uint64(in.CSR)), src, b.ConstI(wen))
	ctx.Set(in.Rd, t)

	b.MovI(ir.PC, ctx.PCSucc)
	ctx.exitIndirect()
	ctx.Status = STATUS_NO_RETURN
}
