package ir

import (
	"fmt"
)

// Value is an opaque handle to an IR operand: one of the fixed globals bound
// to architectural state, or a block-local temporary.
type Value int32

// NoValue marks an unused operand slot.
const NoValue = Value(-1)

// Fixed global values. Guest integer register x0 has no handle; the register
// accessors substitute a literal zero for reads and discard writes.
const (
	PC      = Value(0) // guest program counter
	BadAddr = Value(1) // fault address of the last addressing trap
	LoadRes = Value(2) // load reservation address, all-ones when invalid
	LoadVal = Value(3) // value observed by the reserving load

	gprBase = Value(4)     // x1 .. x31
	fprBase = gprBase + 31 // f0 .. f31

	// NumGlobals is the first temporary handle.
	NumGlobals = int(fprBase) + 32
)

// ResInvalid is the LoadRes sentinel for "no reservation held".
const ResInvalid = ^uint64(0)

// GPR returns the global handle for integer register n (1..31).
func GPR(n int) Value {
	if n < 1 || n > 31 {
		panic(fmt.Sprintf("ir: no global for x%d", n))
	}
	return gprBase + Value(n-1)
}

// FPR returns the global handle for floating register n (0..31).
func FPR(n int) Value {
	if n < 0 || n > 31 {
		panic(fmt.Sprintf("ir: no global for f%d", n))
	}
	return fprBase + Value(n)
}

// Global reports whether v is bound to architectural state.
func (v Value) Global() bool {
	return v >= 0 && int(v) < NumGlobals
}

// String returns the operand name used in IR listings.
func (v Value) String() string {
	switch {
	case v == NoValue:
		return "-"
	case v == PC:
		return "pc"
	case v == BadAddr:
		return "badaddr"
	case v == LoadRes:
		return "load_res"
	case v == LoadVal:
		return "load_val"
	case v >= gprBase && v < fprBase:
		return fmt.Sprintf("x%d", int(v-gprBase)+1)
	case v >= fprBase && int(v) < NumGlobals:
		return fmt.Sprintf("f%d", int(v-fprBase))
	default:
		return fmt.Sprintf("t%d", int(v)-NumGlobals)
	}
}
