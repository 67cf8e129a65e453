package translate

import (
	"github.com/ezrec/rvjit/decode"
	"github.com/ezrec/rvjit/ir"
)

// Operand widening applied before a word-sized operation.
const (
	extNone = iota
	extU
	extS
)

type aluSpec struct {
	op    ir.Op
	cond  ir.Cond
	setcc bool // comparison producing 0/1
	word  bool // 32-bit variant: sign-extend the result
	shift bool // mask the register shift amount
	ext   int  // operand widening for word shifts
}

var aluSpecs = map[decode.Kind]aluSpec{
	decode.ADD:    {op: ir.OP_ADD},
	decode.SUB:    {op: ir.OP_SUB},
	decode.SLL:    {op: ir.OP_SHL, shift: true},
	decode.SLT:    {setcc: true, cond: ir.COND_LT},
	decode.SLTU:   {setcc: true, cond: ir.COND_LTU},
	decode.XOR:    {op: ir.OP_XOR},
	decode.SRL:    {op: ir.OP_SHR, shift: true},
	decode.SRA:    {op: ir.OP_SAR, shift: true},
	decode.OR:     {op: ir.OP_OR},
	decode.AND:    {op: ir.OP_AND},
	decode.ADDW:   {op: ir.OP_ADD, word: true},
	decode.SUBW:   {op: ir.OP_SUB, word: true},
	decode.SLLW:   {op: ir.OP_SHL, word: true, shift: true},
	decode.SRLW:   {op: ir.OP_SHR, word: true, shift: true, ext: extU},
	decode.SRAW:   {op: ir.OP_SAR, word: true, shift: true, ext: extS},
	decode.MUL:    {op: ir.OP_MUL},
	decode.MULH:   {op: ir.OP_MULH},
	decode.MULHU:  {op: ir.OP_MULHU},
	decode.MULW:   {op: ir.OP_MUL, word: true},
	decode.ADDI:   {op: ir.OP_ADD},
	decode.SLTI:   {setcc: true, cond: ir.COND_LT},
	decode.SLTIU:  {setcc: true, cond: ir.COND_LTU},
	decode.XORI:   {op: ir.OP_XOR},
	decode.ORI:    {op: ir.OP_OR},
	decode.ANDI:   {op: ir.OP_AND},
	decode.SLLI:   {op: ir.OP_SHL},
	decode.SRLI:   {op: ir.OP_SHR},
	decode.SRAI:   {op: ir.OP_SAR},
	decode.ADDIW:  {op: ir.OP_ADD, word: true},
	decode.SLLIW:  {op: ir.OP_SHL, word: true},
	decode.SRLIW:  {op: ir.OP_SHR, word: true, ext: extU},
	decode.SRAIW:  {op: ir.OP_SAR, word: true, ext: extS},
}

func genLUI(ctx *Context, in decode.Insn) {
	ctx.Set(in.Rd, ctx.B.ConstI(uint64(in.Imm)))
}

func genAUIPC(ctx *Context, in decode.Insn) {
	ctx.Set(in.Rd, ctx.B.ConstI(ctx.PCNext+uint64(in.Imm)))
}

// genALU handles the register-register forms; the shift amount of the
// register shifts is masked to the operand width.
func genALU(ctx *Context, in decode.Insn) {
	s := aluSpecs[in.Kind]
	y := ctx.Get(in.Rs2)
	if s.shift {
		mask := uint64(63)
		if s.word {
			mask = 31
		}
		ctx.B.AndI(y, y, mask)
	}
	genArith(ctx, in, s, y)
}

// genALUImm handles the immediate forms; decode already bounded shift
// amounts.
func genALUImm(ctx *Context, in decode.Insn) {
	s := aluSpecs[in.Kind]
	genArith(ctx, in, s, ctx.B.ConstI(uint64(in.Imm)))
}

func genArith(ctx *Context, in decode.Insn, s aluSpec, y ir.Value) {
	b := ctx.B
	a := ctx.Get(in.Rs1)
	t := b.NewTemp()

	if s.setcc {
		b.Setcond(s.cond, t, a, y)
		ctx.Set(in.Rd, t)
		return
	}

	switch s.ext {
	case extU:
		b.ExtUW(a, a)
	case extS:
		b.ExtSW(a, a)
	}
	b.Op3(s.op, t, a, y)
	if s.word {
		b.ExtSW(t, t)
	}
	ctx.Set(in.Rd, t)
}
