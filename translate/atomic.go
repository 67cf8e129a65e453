package translate

import (
	"github.com/ezrec/rvjit/decode"
	"github.com/ezrec/rvjit/ir"
)

// amoSize gives the access width of an atomic; the .w forms operate on
// sign-extended 32-bit values.
func amoSize(k decode.Kind) int {
	switch k {
	case decode.LR_W, decode.SC_W, decode.AMOSWAP_W, decode.AMOADD_W,
		decode.AMOXOR_W, decode.AMOAND_W, decode.AMOOR_W,
		decode.AMOMIN_W, decode.AMOMAX_W, decode.AMOMINU_W,
		decode.AMOMAXU_W:
		return 4
	}
	return 8
}

// genLR records the reservation address and the value observed, so a later
// store-conditional can detect intervening writes.
func genLR(ctx *Context, in decode.Insn) {
	b := ctx.B

	addr := ctx.Get(in.Rs1)
	t := b.NewTemp()
	b.Load(t, addr, 0, amoSize(in.Kind), true)
	b.Mov(ir.LoadRes, addr)
	b.Mov(ir.LoadVal, t)
	ctx.Set(in.Rd, t)
}

// genSC succeeds only against a reservation on the same address. Either way
// the reservation is consumed.
func genSC(ctx *Context, in decode.Insn) {
	b := ctx.B

	addr := ctx.Get(in.Rs1)
	v := ctx.Get(in.Rs2)

	fail := b.NewLabel()
	done := b.NewLabel()

	b.Brcond(ir.COND_NE, ir.LoadRes, addr, fail)
	b.Store(addr, 0, v, amoSize(in.Kind))
	ctx.Set(in.Rd, b.ConstI(0))
	b.Br(done)

	b.SetLabel(fail)
	ctx.Set(in.Rd, b.ConstI(1))

	b.SetLabel(done)
	b.MovI(ir.LoadRes, ir.ResInvalid)
}

// genAMO loads the old value, combines it with rs2 and stores the result;
// rd receives the old value. The .w forms compare and combine on the
// sign-extended 32-bit values.
func genAMO(ctx *Context, in decode.Insn) {
	b := ctx.B
	size := amoSize(in.Kind)

	addr := ctx.Get(in.Rs1)
	v := ctx.Get(in.Rs2)
	if size == 4 {
		b.ExtSW(v, v)
	}

	old := b.NewTemp()
	b.Load(old, addr, 0, size, true)

	t := b.NewTemp()
	switch in.Kind {
	case decode.AMOSWAP_W, decode.AMOSWAP_D:
		b.Mov(t, v)
	case decode.AMOADD_W, decode.AMOADD_D:
		b.Add(t, old, v)
	case decode.AMOXOR_W, decode.AMOXOR_D:
		b.Xor(t, old, v)
	case decode.AMOAND_W, decode.AMOAND_D:
		b.And(t, old, v)
	case decode.AMOOR_W, decode.AMOOR_D:
		b.Or(t, old, v)
	case decode.AMOMIN_W, decode.AMOMIN_D:
		b.Movcond(ir.COND_LT, t, old, v, old, v)
	case decode.AMOMAX_W, decode.AMOMAX_D:
		b.Movcond(ir.COND_LT, t, old, v, v, old)
	case decode.AMOMINU_W, decode.AMOMINU_D:
		b.Movcond(ir.COND_LTU, t, old, v, old, v)
	case decode.AMOMAXU_W, decode.AMOMAXU_D:
		b.Movcond(ir.COND_LTU, t, old, v, v, old)
	}

	b.Store(addr, 0, t, size)
	ctx.Set(in.Rd, old)
}
