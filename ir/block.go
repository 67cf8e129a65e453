package ir

import (
	"fmt"
	"strings"
)

// Label names a jump target local to one block.
type Label int

// Insn is a single recorded IR operation. Unused operand slots hold NoValue.
type Insn struct {
	Op     Op
	Cond   Cond    // SETCOND, MOVCOND, BRCOND
	Dst    Value   //
	A, B   Value   // sources
	T, F   Value   // MOVCOND selected sources
	Imm    int64   // MOVI value, LOAD/STORE offset, label, chain address
	Size   int     // LOAD/STORE width in bytes (1, 2, 4, 8)
	Signed bool    // sign-extending LOAD
	Helper Helper  // CALL target
	Args   []Value // CALL arguments
}

// Block is the recorded translation of one straight-line run of guest
// instructions. Once handed to the backend it must not be modified.
type Block struct {
	Start uint64 // guest address of the first instruction
	End   uint64 // guest address just past the covered range
	Insns []Insn

	ntemp  int
	nlabel int
}

// NewBlock starts recording a block at the given guest address.
func NewBlock(start uint64) *Block {
	return &Block{Start: start, End: start}
}

// NumTemps returns the number of temporaries allocated so far.
func (b *Block) NumTemps() int {
	return b.ntemp
}

// NumLabels returns the number of labels allocated so far.
func (b *Block) NumLabels() int {
	return b.nlabel
}

// NewTemp allocates a fresh block-local temporary.
func (b *Block) NewTemp() (v Value) {
	v = Value(NumGlobals + b.ntemp)
	b.ntemp++
	return
}

// NewLabel allocates a fresh label. Place it with SetLabel.
func (b *Block) NewLabel() (l Label) {
	l = Label(b.nlabel)
	b.nlabel++
	return
}

func (b *Block) emit(in Insn) {
	b.Insns = append(b.Insns, in)
}

// MovI sets dst to a constant.
func (b *Block) MovI(dst Value, imm uint64) {
	b.emit(Insn{Op: OP_MOVI, Dst: dst, A: NoValue, B: NoValue, Imm: int64(imm)})
}

// ConstI allocates a temporary holding a constant.
func (b *Block) ConstI(imm uint64) (v Value) {
	v = b.NewTemp()
	b.MovI(v, imm)
	return
}

// Mov copies src into dst.
func (b *Block) Mov(dst, src Value) {
	b.emit(Insn{Op: OP_MOV, Dst: dst, A: src, B: NoValue})
}

// Op3 records a three-operand operation. The named conveniences below cover
// the common cases; table-driven callers pass the opcode directly.
func (b *Block) Op3(op Op, dst, a, y Value) {
	b.emit(Insn{Op: op, Dst: dst, A: a, B: y})
}

func (b *Block) Add(dst, a, y Value)   { b.Op3(OP_ADD, dst, a, y) }
func (b *Block) Sub(dst, a, y Value)   { b.Op3(OP_SUB, dst, a, y) }
func (b *Block) And(dst, a, y Value)   { b.Op3(OP_AND, dst, a, y) }
func (b *Block) Or(dst, a, y Value)    { b.Op3(OP_OR, dst, a, y) }
func (b *Block) Xor(dst, a, y Value)   { b.Op3(OP_XOR, dst, a, y) }
func (b *Block) Shl(dst, a, y Value)   { b.Op3(OP_SHL, dst, a, y) }
func (b *Block) Shr(dst, a, y Value)   { b.Op3(OP_SHR, dst, a, y) }
func (b *Block) Sar(dst, a, y Value)   { b.Op3(OP_SAR, dst, a, y) }
func (b *Block) Mul(dst, a, y Value)   { b.Op3(OP_MUL, dst, a, y) }
func (b *Block) Mulh(dst, a, y Value)  { b.Op3(OP_MULH, dst, a, y) }
func (b *Block) Mulhu(dst, a, y Value) { b.Op3(OP_MULHU, dst, a, y) }
func (b *Block) Div(dst, a, y Value)   { b.Op3(OP_DIV, dst, a, y) }
func (b *Block) Divu(dst, a, y Value)  { b.Op3(OP_DIVU, dst, a, y) }
func (b *Block) Rem(dst, a, y Value)   { b.Op3(OP_REM, dst, a, y) }
func (b *Block) Remu(dst, a, y Value)  { b.Op3(OP_REMU, dst, a, y) }

// Immediate-operand conveniences; the second source becomes a constant
// temporary.
func (b *Block) AddI(dst, a Value, imm int64)  { b.Add(dst, a, b.ConstI(uint64(imm))) }
func (b *Block) AndI(dst, a Value, imm uint64) { b.And(dst, a, b.ConstI(imm)) }
func (b *Block) ShlI(dst, a Value, imm uint64) { b.Shl(dst, a, b.ConstI(imm)) }
func (b *Block) ShrI(dst, a Value, imm uint64) { b.Shr(dst, a, b.ConstI(imm)) }
func (b *Block) SarI(dst, a Value, imm uint64) { b.Sar(dst, a, b.ConstI(imm)) }

// Setcond sets dst to 1 when (a cond y) holds, 0 otherwise.
func (b *Block) Setcond(c Cond, dst, a, y Value) {
	b.emit(Insn{Op: OP_SETCOND, Cond: c, Dst: dst, A: a, B: y})
}

func (b *Block) SetcondI(c Cond, dst, a Value, imm uint64) {
	b.Setcond(c, dst, a, b.ConstI(imm))
}

// Movcond sets dst to t when (a cond y) holds, f otherwise. This is the
// branchless select primitive.
func (b *Block) Movcond(c Cond, dst, a, y, t, f Value) {
	b.emit(Insn{Op: OP_MOVCOND, Cond: c, Dst: dst, A: a, B: y, T: t, F: f})
}

// ExtSW sign-extends the low 32 bits of a into dst.
func (b *Block) ExtSW(dst, a Value) {
	b.emit(Insn{Op: OP_EXTSW, Dst: dst, A: a, B: NoValue})
}

// ExtUW zero-extends the low 32 bits of a into dst.
func (b *Block) ExtUW(dst, a Value) {
	b.emit(Insn{Op: OP_EXTUW, Dst: dst, A: a, B: NoValue})
}

// Load reads size bytes at addr+off into dst.
func (b *Block) Load(dst, addr Value, off int64, size int, signed bool) {
	b.emit(Insn{Op: OP_LOAD, Dst: dst, A: addr, B: NoValue, Imm: off, Size: size, Signed: signed})
}

// Store writes the low size bytes of val to addr+off.
func (b *Block) Store(addr Value, off int64, val Value, size int) {
	b.emit(Insn{Op: OP_STORE, Dst: NoValue, A: addr, B: val, Imm: off, Size: size})
}

// Call invokes a runtime helper. Pass NoValue for dst when the helper has no
// result.
func (b *Block) Call(h Helper, dst Value, args ...Value) {
	b.emit(Insn{Op: OP_CALL, Dst: dst, A: NoValue, B: NoValue, Helper: h, Args: args})
}

// SetLabel places a previously allocated label at the current position.
func (b *Block) SetLabel(l Label) {
	b.emit(Insn{Op: OP_LABEL, Dst: NoValue, A: NoValue, B: NoValue, Imm: int64(l)})
}

// Br jumps unconditionally to a label.
func (b *Block) Br(l Label) {
	b.emit(Insn{Op: OP_BR, Dst: NoValue, A: NoValue, B: NoValue, Imm: int64(l)})
}

// Brcond jumps to a label when (a cond y) holds.
func (b *Block) Brcond(c Cond, a, y Value, l Label) {
	b.emit(Insn{Op: OP_BRCOND, Cond: c, Dst: NoValue, A: a, B: y, Imm: int64(l)})
}

// InsnStart marks the start of the guest instruction at pc.
func (b *Block) InsnStart(pc uint64) {
	b.emit(Insn{Op: OP_INSN_START, Dst: NoValue, A: NoValue, B: NoValue, Imm: int64(pc)})
}

// Chain exits the block, chained to the block starting at guest address dest.
// The guest PC must already hold dest.
func (b *Block) Chain(dest uint64) {
	b.emit(Insn{Op: OP_CHAIN, Dst: NoValue, A: NoValue, B: NoValue, Imm: int64(dest)})
}

// Exit leaves the block through the dispatcher. The guest PC must already
// hold the next address.
func (b *Block) Exit() {
	b.emit(Insn{Op: OP_EXIT, Dst: NoValue, A: NoValue, B: NoValue})
}

// CallCount returns the number of calls to one helper, used by tests that
// count emitted side effects.
func (b *Block) CallCount(h Helper) (count int) {
	for _, in := range b.Insns {
		if in.Op == OP_CALL && in.Helper == h {
			count++
		}
	}
	return
}

// String returns the recorded operation listing.
func (in Insn) String() string {
	switch in.Op {
	case OP_MOVI:
		return fmt.Sprintf("%v %v, %#x", in.Op, in.Dst, uint64(in.Imm))
	case OP_MOV, OP_EXTSW, OP_EXTUW:
		return fmt.Sprintf("%v %v, %v", in.Op, in.Dst, in.A)
	case OP_SETCOND:
		return fmt.Sprintf("%v.%v %v, %v, %v", in.Op, in.Cond, in.Dst, in.A, in.B)
	case OP_MOVCOND:
		return fmt.Sprintf("%v.%v %v, %v, %v, %v, %v", in.Op, in.Cond, in.Dst, in.A, in.B, in.T, in.F)
	case OP_LOAD:
		sign := "u"
		if in.Signed {
			sign = "s"
		}
		return fmt.Sprintf("%v%d%s %v, [%v%+d]", in.Op, in.Size*8, sign, in.Dst, in.A, in.Imm)
	case OP_STORE:
		return fmt.Sprintf("%v%d [%v%+d], %v", in.Op, in.Size*8, in.A, in.Imm, in.B)
	case OP_CALL:
		args := make([]string, len(in.Args))
		for n, arg := range in.Args {
			args[n] = arg.String()
		}
		return fmt.Sprintf("%v %v, %v(%v)", in.Op, in.Dst, in.Helper, strings.Join(args, ", "))
	case OP_LABEL, OP_BR:
		return fmt.Sprintf("%v L%d", in.Op, in.Imm)
	case OP_BRCOND:
		return fmt.Sprintf("%v.%v %v, %v, L%d", in.Op, in.Cond, in.A, in.B, in.Imm)
	case OP_CHAIN, OP_INSN_START:
		return fmt.Sprintf("%v %#x", in.Op, uint64(in.Imm))
	case OP_EXIT:
		return in.Op.String()
	default:
		return fmt.Sprintf("%v %v, %v, %v", in.Op, in.Dst, in.A, in.B)
	}
}

// String returns the whole block listing, one operation per line.
func (b *Block) String() (text string) {
	text = fmt.Sprintf("block %#x..%#x\n", b.Start, b.End)
	for _, in := range b.Insns {
		text += "  " + in.String() + "\n"
	}
	return
}
