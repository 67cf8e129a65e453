package engine

import (
	"math/bits"

	"github.com/ezrec/rvjit/hart"
	"github.com/ezrec/rvjit/ir"
)

// exec evaluates one block. Globals are bound from the hart on entry and
// written back on every exit path, including traps.
func (e *Engine) exec(b *ir.Block, h *hart.Hart) (trap *hart.Trap, err error) {
	vals := make([]uint64, ir.NumGlobals+b.NumTemps())
	loadGlobals(vals, h)

	labels := make([]int, b.NumLabels())
	for n, in := range b.Insns {
		if in.Op == ir.OP_LABEL {
			labels[in.Imm] = n
		}
	}

	curPC := b.Start

	for n := 0; n < len(b.Insns); n++ {
		in := b.Insns[n]
		switch in.Op {
		case ir.OP_INSN_START:
			curPC = uint64(in.Imm)
		case ir.OP_MOVI:
			vals[in.Dst] = uint64(in.Imm)
		case ir.OP_MOV:
			vals[in.Dst] = vals[in.A]
		case ir.OP_ADD:
			vals[in.Dst] = vals[in.A] + vals[in.B]
		case ir.OP_SUB:
			vals[in.Dst] = vals[in.A] - vals[in.B]
		case ir.OP_AND:
			vals[in.Dst] = vals[in.A] & vals[in.B]
		case ir.OP_OR:
			vals[in.Dst] = vals[in.A] | vals[in.B]
		case ir.OP_XOR:
			vals[in.Dst] = vals[in.A] ^ vals[in.B]
		case ir.OP_SHL:
			vals[in.Dst] = vals[in.A] << (vals[in.B] & 63)
		case ir.OP_SHR:
			vals[in.Dst] = vals[in.A] >> (vals[in.B] & 63)
		case ir.OP_SAR:
			vals[in.Dst] = uint64(int64(vals[in.A]) >> (vals[in.B] & 63))
		case ir.OP_MUL:
			vals[in.Dst] = vals[in.A] * vals[in.B]
		case ir.OP_MULH:
			vals[in.Dst] = mulhS(vals[in.A], vals[in.B])
		case ir.OP_MULHU:
			vals[in.Dst] = mulhU(vals[in.A], vals[in.B])
		case ir.OP_DIV:
			vals[in.Dst] = uint64(int64(vals[in.A]) / int64(vals[in.B]))
		case ir.OP_DIVU:
			vals[in.Dst] = vals[in.A] / vals[in.B]
		case ir.OP_REM:
			vals[in.Dst] = uint64(int64(vals[in.A]) % int64(vals[in.B]))
		case ir.OP_REMU:
			vals[in.Dst] = vals[in.A] % vals[in.B]
		case ir.OP_SETCOND:
			if condHolds(in.Cond, vals[in.A], vals[in.B]) {
				vals[in.Dst] = 1
			} else {
				vals[in.Dst] = 0
			}
		case ir.OP_MOVCOND:
			if condHolds(in.Cond, vals[in.A], vals[in.B]) {
				vals[in.Dst] = vals[in.T]
			} else {
				vals[in.Dst] = vals[in.F]
			}
		case ir.OP_EXTSW:
			vals[in.Dst] = uint64(int64(int32(vals[in.A])))
		case ir.OP_EXTUW:
			vals[in.Dst] = uint64(uint32(vals[in.A]))
		case ir.OP_LOAD:
			addr := vals[in.A] + uint64(in.Imm)
			v, lerr := e.Mem.Load(addr, in.Size)
			if lerr != nil {
				storeGlobals(h, vals)
				h.PC, h.BadAddr = curPC, addr
				return &hart.Trap{Cause: hart.CAUSE_LOAD_ACCESS, Tval: addr}, nil
			}
			if in.Signed {
				v = signExtend(v, in.Size)
			}
			vals[in.Dst] = v
		case ir.OP_STORE:
			addr := vals[in.A] + uint64(in.Imm)
			if serr := e.Mem.Store(addr, in.Size, vals[in.B]); serr != nil {
				storeGlobals(h, vals)
				h.PC, h.BadAddr = curPC, addr
				return &hart.Trap{Cause: hart.CAUSE_STORE_ACCESS, Tval: addr}, nil
			}
		case ir.OP_CALL:
			trap, err = e.call(h, vals, in, curPC)
			if trap != nil || err != nil {
				storeGlobals(h, vals)
				if trap != nil {
					h.PC = vals[ir.PC]
					h.BadAddr = vals[ir.BadAddr]
				}
				return
			}
		case ir.OP_LABEL:
			// jump target only
		case ir.OP_BR:
			n = labels[in.Imm]
		case ir.OP_BRCOND:
			if condHolds(in.Cond, vals[in.A], vals[in.B]) {
				n = labels[in.Imm]
			}
		case ir.OP_CHAIN, ir.OP_EXIT:
			storeGlobals(h, vals)
			return nil, nil
		}
	}

	storeGlobals(h, vals)
	return nil, ErrNoExit(b.Start)
}

// call dispatches a runtime helper. Traps returned here carry the right PC:
// either the translator flushed it (HELPER_RAISE) or the helper patches in
// the current instruction address before raising.
func (e *Engine) call(h *hart.Hart, vals []uint64, in ir.Insn, curPC uint64) (*hart.Trap, error) {
	arg := func(n int) uint64 { return vals[in.Args[n]] }

	switch in.Helper {
	case ir.HELPER_RAISE:
		cause := hart.Cause(arg(0))
		var tval uint64
		switch cause {
		case hart.CAUSE_MISALIGNED_FETCH, hart.CAUSE_FETCH_ACCESS:
			tval = vals[ir.BadAddr]
		case hart.CAUSE_BREAKPOINT:
			tval = vals[ir.PC]
		}
		return &hart.Trap{Cause: cause, Tval: tval}, nil

	case ir.HELPER_SET_RM:
		rm := int(arg(0))
		if rm == hart.RM_DYN {
			rm = h.Frm
		}
		if rm > hart.RM_RMM {
			vals[ir.PC] = curPC
			return &hart.Trap{Cause: hart.CAUSE_ILLEGAL_INSN}, nil
		}
		h.RoundMode = rm

	case ir.HELPER_CSRRW:
		old := h.ReadCSR(uint16(arg(0)))
		if arg(2) != 0 {
			h.WriteCSR(uint16(arg(0)), arg(1))
		}
		vals[in.Dst] = old
	case ir.HELPER_CSRRS:
		old := h.ReadCSR(uint16(arg(0)))
		if arg(2) != 0 {
			h.WriteCSR(uint16(arg(0)), old|arg(1))
		}
		vals[in.Dst] = old
	case ir.HELPER_CSRRC:
		old := h.ReadCSR(uint16(arg(0)))
		if arg(2) != 0 {
			h.WriteCSR(uint16(arg(0)), old&^arg(1))
		}
		vals[in.Dst] = old

	default:
		v, ok := fpCall(h, in.Helper, in.Args, vals)
		if !ok {
			return nil, ErrBadHelper(in.Helper)
		}
		vals[in.Dst] = v
	}
	return nil, nil
}

func loadGlobals(vals []uint64, h *hart.Hart) {
	vals[ir.PC] = h.PC
	vals[ir.BadAddr] = h.BadAddr
	if h.ResValid {
		vals[ir.LoadRes] = h.ResAddr
	} else {
		vals[ir.LoadRes] = ir.ResInvalid
	}
	vals[ir.LoadVal] = h.ResVal
	for n := 1; n < 32; n++ {
		vals[ir.GPR(n)] = h.X[n]
	}
	for n := range 32 {
		vals[ir.FPR(n)] = h.F[n]
	}
}

func storeGlobals(h *hart.Hart, vals []uint64) {
	h.PC = vals[ir.PC]
	h.BadAddr = vals[ir.BadAddr]
	if vals[ir.LoadRes] == ir.ResInvalid {
		h.ResValid = false
	} else {
		h.ResValid = true
		h.ResAddr = vals[ir.LoadRes]
	}
	h.ResVal = vals[ir.LoadVal]
	for n := 1; n < 32; n++ {
		h.X[n] = vals[ir.GPR(n)]
	}
	for n := range 32 {
		h.F[n] = vals[ir.FPR(n)]
	}
}

func condHolds(c ir.Cond, a, y uint64) bool {
	switch c {
	case ir.COND_EQ:
		return a == y
	case ir.COND_NE:
		return a != y
	case ir.COND_LT:
		return int64(a) < int64(y)
	case ir.COND_GE:
		return int64(a) >= int64(y)
	case ir.COND_LTU:
		return a < y
	default:
		return a >= y
	}
}

func signExtend(v uint64, size int) uint64 {
	shift := 64 - 8*size
	return uint64(int64(v<<shift) >> shift)
}

func mulhU(a, y uint64) (high uint64) {
	high, _ = bits.Mul64(a, y)
	return
}

func mulhS(a, y uint64) uint64 {
	high := mulhU(a, y)
	// correct for each negative operand
	high -= uint64(int64(a)>>63) & y
	high -= uint64(int64(y)>>63) & a
	return high
}
