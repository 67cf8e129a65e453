package translate

import (
	"github.com/ezrec/rvjit/decode"
	"github.com/ezrec/rvjit/ir"
)

type memSpec struct {
	size   int
	signed bool
	fp     bool
}

var loadSpecs = map[decode.Kind]memSpec{
	decode.LB:  {size: 1, signed: true},
	decode.LH:  {size: 2, signed: true},
	decode.LW:  {size: 4, signed: true},
	decode.LD:  {size: 8, signed: true},
	decode.LBU: {size: 1},
	decode.LHU: {size: 2},
	decode.LWU: {size: 4},
	decode.FLW: {size: 4, fp: true},
	decode.FLD: {size: 8, fp: true},
}

var storeSpecs = map[decode.Kind]memSpec{
	decode.SB:  {size: 1},
	decode.SH:  {size: 2},
	decode.SW:  {size: 4},
	decode.SD:  {size: 8},
	decode.FSW: {size: 4, fp: true},
	decode.FSD: {size: 8, fp: true},
}

func genLoad(ctx *Context, in decode.Insn) {
	s := loadSpecs[in.Kind]
	b := ctx.B

	addr := ctx.Get(in.Rs1)
	t := b.NewTemp()
	b.Load(t, addr, in.Imm, s.size, s.signed)
	if s.fp {
		ctx.SetF(in.Rd, t)
		return
	}
	ctx.Set(in.Rd, t)
}

func genStore(ctx *Context, in decode.Insn) {
	s := storeSpecs[in.Kind]
	b := ctx.B

	addr := ctx.Get(in.Rs1)
	var v ir.Value
	if s.fp {
		v = ctx.GetF(in.Rs2)
	} else {
		v = ctx.Get(in.Rs2)
	}
	b.Store(addr, in.Imm, v, s.size)
}
