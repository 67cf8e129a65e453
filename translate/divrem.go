package translate

import (
	"github.com/ezrec/rvjit/decode"
	"github.com/ezrec/rvjit/ir"
)

// Division never traps: the architectural results for divide-by-zero and
// signed overflow are produced branchlessly by steering the operands with
// conditional moves before one unconditional divide.

func genDivRem(ctx *Context, in decode.Insn) {
	b := ctx.B
	a := ctx.Get(in.Rs1)
	y := ctx.Get(in.Rs2)
	t := b.NewTemp()

	switch in.Kind {
	case decode.DIVW, decode.REMW:
		b.ExtSW(a, a)
		b.ExtSW(y, y)
	case decode.DIVUW, decode.REMUW:
		b.ExtUW(a, a)
		b.ExtUW(y, y)
	}

	word := true
	switch in.Kind {
	case decode.DIV, decode.DIVU, decode.REM, decode.REMU:
		word = false
	}

	switch in.Kind {
	case decode.DIV, decode.DIVW:
		emitDiv(b, t, a, y)
	case decode.DIVU, decode.DIVUW:
		emitDivu(b, t, a, y)
	case decode.REM, decode.REMW:
		emitRem(b, t, a, y)
	case decode.REMU, decode.REMUW:
		emitRemu(b, t, a, y)
	}

	if word {
		b.ExtSW(t, t)
	}
	ctx.Set(in.Rd, t)
}

// emitDiv: quotient -1 on divide by zero; the minimum value on signed
// overflow (min / -1). Overflow from 32-bit operands cannot arise here: they
// arrive sign extended, and the 64-bit divide of min32 / -1 is exact.
func emitDiv(b *ir.Block, ret, a, y ir.Value) {
	zero := b.ConstI(0)
	one := b.ConstI(1)
	minusOne := b.ConstI(^uint64(0))
	min := b.ConstI(1 << 63)

	overflow := b.NewTemp()
	cond := b.NewTemp()
	b.Setcond(ir.COND_EQ, overflow, a, min)
	b.Setcond(ir.COND_EQ, cond, y, minusOne)
	b.And(overflow, overflow, cond)

	divZero := b.NewTemp()
	b.Setcond(ir.COND_EQ, divZero, y, zero)

	// Dividend -1 when dividing by zero; divisor 1 on either special case.
	b.Movcond(ir.COND_EQ, a, divZero, zero, a, minusOne)
	b.Or(overflow, overflow, divZero)
	b.Movcond(ir.COND_EQ, y, overflow, zero, y, one)
	b.Div(ret, a, y)
}

// emitDivu: quotient all-ones on divide by zero.
func emitDivu(b *ir.Block, ret, a, y ir.Value) {
	zero := b.ConstI(0)
	one := b.ConstI(1)
	allOnes := b.ConstI(^uint64(0))

	divZero := b.NewTemp()
	b.Setcond(ir.COND_EQ, divZero, y, zero)
	b.Movcond(ir.COND_EQ, a, divZero, zero, a, allOnes)
	b.Movcond(ir.COND_EQ, y, divZero, zero, y, one)
	b.Divu(ret, a, y)
}

// emitRem: remainder is the dividend on divide by zero, 0 on signed
// overflow (min % 1 produces it without a special path).
func emitRem(b *ir.Block, ret, a, y ir.Value) {
	zero := b.ConstI(0)
	one := b.ConstI(1)
	minusOne := b.ConstI(^uint64(0))
	min := b.ConstI(1 << 63)

	special := b.NewTemp()
	cond := b.NewTemp()
	b.Setcond(ir.COND_EQ, special, a, min)
	b.Setcond(ir.COND_EQ, cond, y, minusOne)
	b.And(special, special, cond)

	divZero := b.NewTemp()
	b.Setcond(ir.COND_EQ, divZero, y, zero)
	b.Or(special, special, divZero)

	b.Movcond(ir.COND_EQ, y, special, zero, y, one)
	rem := b.NewTemp()
	b.Rem(rem, a, y)
	b.Movcond(ir.COND_EQ, ret, divZero, zero, rem, a)
}

// emitRemu: remainder is the dividend on divide by zero.
func emitRemu(b *ir.Block, ret, a, y ir.Value) {
	zero := b.ConstI(0)
	one := b.ConstI(1)

	divZero := b.NewTemp()
	b.Setcond(ir.COND_EQ, divZero, y, zero)
	b.Movcond(ir.COND_EQ, y, divZero, zero, y, one)
	rem := b.NewTemp()
	b.Remu(rem, a, y)
	b.Movcond(ir.COND_EQ, ret, divZero, zero, rem, a)
}

// genMULHSU: unsigned high product corrected for the one signed operand by
// subtracting (a < 0 ? y : 0) from the high half.
func genMULHSU(ctx *Context, in decode.Insn) {
	b := ctx.B
	a := ctx.Get(in.Rs1)
	y := ctx.Get(in.Rs2)

	high := b.NewTemp()
	b.Mulhu(high, a, y)

	sign := b.NewTemp()
	b.SarI(sign, a, 63)
	b.And(sign, sign, y)

	t := b.NewTemp()
	b.Sub(t, high, sign)
	ctx.Set(in.Rd, t)
}
