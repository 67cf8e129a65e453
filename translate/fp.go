package translate

import (
	"github.com/ezrec/rvjit/decode"
	"github.com/ezrec/rvjit/ir"
)

// Floating-point arithmetic goes through runtime helpers; only the sign
// manipulations and bit moves are inlined. Register bits are passed raw.

type fpSpec struct {
	helper ir.Helper
	rm     bool // installs the instruction's rounding mode first
	nargs  int
	intSrc bool // operand comes from an integer register
	intDst bool // result goes to an integer register
}

var fpSpecs = map[decode.Kind]fpSpec{
	decode.FADD_S:  {helper: ir.HELPER_FADD_S, rm: true, nargs: 2},
	decode.FSUB_S:  {helper: ir.HELPER_FSUB_S, rm: true, nargs: 2},
	decode.FMUL_S:  {helper: ir.HELPER_FMUL_S, rm: true, nargs: 2},
	decode.FDIV_S:  {helper: ir.HELPER_FDIV_S, rm: true, nargs: 2},
	decode.FSQRT_S: {helper: ir.HELPER_FSQRT_S, rm: true, nargs: 1},
	decode.FMIN_S:  {helper: ir.HELPER_FMIN_S, nargs: 2},
	decode.FMAX_S:  {helper: ir.HELPER_FMAX_S, nargs: 2},
	decode.FEQ_S:   {helper: ir.HELPER_FEQ_S, nargs: 2, intDst: true},
	decode.FLT_S:   {helper: ir.HELPER_FLT_S, nargs: 2, intDst: true},
	decode.FLE_S:   {helper: ir.HELPER_FLE_S, nargs: 2, intDst: true},

	decode.FADD_D:  {helper: ir.HELPER_FADD_D, rm: true, nargs: 2},
	decode.FSUB_D:  {helper: ir.HELPER_FSUB_D, rm: true, nargs: 2},
	decode.FMUL_D:  {helper: ir.HELPER_FMUL_D, rm: true, nargs: 2},
	decode.FDIV_D:  {helper: ir.HELPER_FDIV_D, rm: true, nargs: 2},
	decode.FSQRT_D: {helper: ir.HELPER_FSQRT_D, rm: true, nargs: 1},
	decode.FMIN_D:  {helper: ir.HELPER_FMIN_D, nargs: 2},
	decode.FMAX_D:  {helper: ir.HELPER_FMAX_D, nargs: 2},
	decode.FEQ_D:   {helper: ir.HELPER_FEQ_D, nargs: 2, intDst: true},
	decode.FLT_D:   {helper: ir.HELPER_FLT_D, nargs: 2, intDst: true},
	decode.FLE_D:   {helper: ir.HELPER_FLE_D, nargs: 2, intDst: true},

	decode.FCVT_W_S:  {helper: ir.HELPER_FCVT_W_S, rm: true, nargs: 1, intDst: true},
	decode.FCVT_WU_S: {helper: ir.HELPER_FCVT_WU_S, rm: true, nargs: 1, intDst: true},
	decode.FCVT_L_S:  {helper: ir.HELPER_FCVT_L_S, rm: true, nargs: 1, intDst: true},
	decode.FCVT_LU_S: {helper: ir.HELPER_FCVT_LU_S, rm: true, nargs: 1, intDst: true},
	decode.FCVT_S_W:  {helper: ir.HELPER_FCVT_S_W, rm: true, nargs: 1, intSrc: true},
	decode.FCVT_S_WU: {helper: ir.HELPER_FCVT_S_WU, rm: true, nargs: 1, intSrc: true},
	decode.FCVT_S_L:  {helper: ir.HELPER_FCVT_S_L, rm: true, nargs: 1, intSrc: true},
	decode.FCVT_S_LU: {helper: ir.HELPER_FCVT_S_LU, rm: true, nargs: 1, intSrc: true},

	decode.FCVT_W_D:  {helper: ir.HELPER_FCVT_W_D, rm: true, nargs: 1, intDst: true},
	decode.FCVT_WU_D: {helper: ir.HELPER_FCVT_WU_D, rm: true, nargs: 1, intDst: true},
	decode.FCVT_L_D:  {helper: ir.HELPER_FCVT_L_D, rm: true, nargs: 1, intDst: true},
	decode.FCVT_LU_D: {helper: ir.HELPER_FCVT_LU_D, rm: true, nargs: 1, intDst: true},
	decode.FCVT_D_W:  {helper: ir.HELPER_FCVT_D_W, rm: true, nargs: 1, intSrc: true},
	decode.FCVT_D_WU: {helper: ir.HELPER_FCVT_D_WU, rm: true, nargs: 1, intSrc: true},
	decode.FCVT_D_L:  {helper: ir.HELPER_FCVT_D_L, rm: true, nargs: 1, intSrc: true},
	decode.FCVT_D_LU: {helper: ir.HELPER_FCVT_D_LU, rm: true, nargs: 1, intSrc: true},

	decode.FCVT_S_D: {helper: ir.HELPER_FCVT_S_D, rm: true, nargs: 1},
	decode.FCVT_D_S: {helper: ir.HELPER_FCVT_D_S, rm: true, nargs: 1},
}

func genFP(ctx *Context, in decode.Insn) {
	s := fpSpecs[in.Kind]
	b := ctx.B

	if s.rm {
		ctx.setRM(in.Rm)
	}

	var a ir.Value
	if s.intSrc {
		a = ctx.Get(in.Rs1)
	} else {
		a = ctx.GetF(in.Rs1)
	}

	t := b.NewTemp()
	if s.nargs == 2 {
		b.Call(s.helper, t, a, ctx.GetF(in.Rs2))
	} else {
		b.Call(s.helper, t, a)
	}

	if s.intDst {
		ctx.Set(in.Rd, t)
		return
	}
	ctx.SetF(in.Rd, t)
}

// genFSGNJ composes the magnitude of rs1 with a sign derived from rs2,
// entirely in integer bit operations.
func genFSGNJ(ctx *Context, in decode.Insn) {
	b := ctx.B

	signBit := uint64(1) << 31
	switch in.Kind {
	case decode.FSGNJ_D, decode.FSGNJN_D, decode.FSGNJX_D:
		signBit = 1 << 63
	}

	a := ctx.GetF(in.Rs1)
	y := ctx.GetF(in.Rs2)
	t := b.NewTemp()

	switch in.Kind {
	case decode.FSGNJ_S, decode.FSGNJ_D:
		b.AndI(a, a, ^signBit)
		b.AndI(y, y, signBit)
		b.Or(t, a, y)
	case decode.FSGNJN_S, decode.FSGNJN_D:
		b.AndI(a, a, ^signBit)
		b.Xor(y, y, b.ConstI(signBit))
		b.AndI(y, y, signBit)
		b.Or(t, a, y)
	case decode.FSGNJX_S, decode.FSGNJX_D:
		b.AndI(y, y, signBit)
		b.Xor(t, a, y)
	}
	ctx.SetF(in.Rd, t)
}

// genFMV moves raw bits between the register files. The 32-bit moves narrow:
// to the integer side sign extended, to the float side zero extended.
func genFMV(ctx *Context, in decode.Insn) {
	b := ctx.B

	switch in.Kind {
	case decode.FMV_X_W:
		t := ctx.GetF(in.Rs1)
		b.ExtSW(t, t)
		ctx.Set(in.Rd, t)
	case decode.FMV_W_X:
		t := ctx.Get(in.Rs1)
		b.ExtUW(t, t)
		ctx.SetF(in.Rd, t)
	case decode.FMV_X_D:
		ctx.Set(in.Rd, ctx.GetF(in.Rs1))
	case decode.FMV_D_X:
		ctx.SetF(in.Rd, ctx.Get(in.Rs1))
	}
}
