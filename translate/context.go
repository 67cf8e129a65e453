package translate

import (
	"github.com/ezrec/rvjit/hart"
	"github.com/ezrec/rvjit/ir"
)

// Status tracks how translation of the current block may continue.
type Status int

const (
	STATUS_NEXT      = Status(iota) // next
	STATUS_TOO_MANY                 // too-many
	STATUS_NO_RETURN                // no-return
)

var statusNames = [...]string{
	STATUS_NEXT:      "next",
	STATUS_TOO_MANY:  "too-many",
	STATUS_NO_RETURN: "no-return",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "status?"
	}
	return statusNames[s]
}

// Key identifies a translated block. Two harts may share a block only when
// every field matches their current state.
type Key struct {
	PC         uint64
	Flags      hart.Flags
	MemIdx     int
	SingleStep bool
}

// KeyFor samples the block key for the hart's current state.
func KeyFor(h *hart.Hart) Key {
	return Key{PC: h.PC, Flags: h.Flags, MemIdx: h.MemIdx, SingleStep: h.SingleStep}
}

// Context carries the per-block translation state the semantic generators
// consult and update.
type Context struct {
	B *ir.Block

	PCFirst uint64 // address of the block's first instruction
	PCNext  uint64 // address of the instruction being translated
	PCSucc  uint64 // address of its sequential successor

	// Rounding mode last installed within this block; -1 when unknown.
	// Valid only inside one block: the runtime mode at entry is arbitrary.
	Frm int

	MemIdx     int
	Flags      hart.Flags
	SingleStep bool

	Status Status
}

// Get reads integer register n into a fresh temporary. Register 0 reads as
// the constant 0.
func (ctx *Context) Get(n int) (v ir.Value) {
	v = ctx.B.NewTemp()
	if n == 0 {
		ctx.B.MovI(v, 0)
		return
	}
	ctx.B.Mov(v, ir.GPR(n))
	return
}

// Set writes v to integer register n. Writes to register 0 vanish.
func (ctx *Context) Set(n int, v ir.Value) {
	if n != 0 {
		ctx.B.Mov(ir.GPR(n), v)
	}
}

// GetF reads the raw bits of floating register n into a fresh temporary.
func (ctx *Context) GetF(n int) (v ir.Value) {
	v = ctx.B.NewTemp()
	ctx.B.Mov(v, ir.FPR(n))
	return
}

// SetF writes the raw bits of floating register n.
func (ctx *Context) SetF(n int, v ir.Value) {
	ctx.B.Mov(ir.FPR(n), v)
}

// raise flushes the guest PC to the current instruction and generates the
// exception. Nothing may be emitted for this instruction afterwards.
func (ctx *Context) raise(cause hart.Cause) {
	ctx.B.MovI(ir.PC, ctx.PCNext)
	ctx.B.Call(ir.HELPER_RAISE, ir.NoValue, ctx.B.ConstI(uint64(cause)))
	ctx.Status = STATUS_NO_RETURN
}

// gotoTB transfers control to a statically known guest address: chained when
// the destination shares the block's page, through the dispatcher otherwise.
// Single-stepping turns every transfer into a debug trap.
func (ctx *Context) gotoTB(dest uint64) {
	ctx.B.MovI(ir.PC, dest)
	switch {
	case ctx.SingleStep:
		ctx.B.Call(ir.HELPER_RAISE, ir.NoValue, ctx.B.ConstI(uint64(hart.CAUSE_DEBUG)))
	case dest&^(PageSize-1) == ctx.PCFirst&^(PageSize-1):
		ctx.B.Chain(dest)
	default:
		ctx.B.Exit()
	}
}

// exitIndirect leaves the block with the guest PC already computed at
// runtime; the destination is never chained.
func (ctx *Context) exitIndirect() {
	if ctx.SingleStep {
		ctx.B.Call(ir.HELPER_RAISE, ir.NoValue, ctx.B.ConstI(uint64(hart.CAUSE_DEBUG)))
		return
	}
	ctx.B.Exit()
}

// setRM installs the floating-point rounding mode, skipping the call when rm
// is already installed for this block. The dynamic mode always participates:
// it reads the frm CSR, which cannot change inside a block.
func (ctx *Context) setRM(rm int) {
	if rm == ctx.Frm {
		return
	}
	ctx.Frm = rm
	ctx.B.Call(ir.HELPER_SET_RM, ir.NoValue, ctx.B.ConstI(uint64(rm)))
}
