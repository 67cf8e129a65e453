// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package hart

import (
	"fmt"
	"iter"
	"maps"

	"github.com/ezrec/rvjit/internal"
)

// Floating-point rounding mode field values. RM_DYN defers to the frm CSR.
const (
	RM_RNE = 0 // round to nearest, ties to even
	RM_RTZ = 1 // round toward zero
	RM_RDN = 2 // round down
	RM_RUP = 3 // round up
	RM_RMM = 4 // round to nearest, ties away
	RM_DYN = 7 // use the frm CSR
)

// CSR numbers the hart knows natively; everything else lives in the generic
// Csr map as an extension point.
const (
	CSR_FFLAGS = uint16(0x001)
	CSR_FRM    = uint16(0x002)
	CSR_FCSR   = uint16(0x003)
)

var _cause_defines = map[string]string{
	"CAUSE_ILLEGAL":    fmt.Sprintf("%d", CAUSE_ILLEGAL_INSN),
	"CAUSE_BREAKPOINT": fmt.Sprintf("%d", CAUSE_BREAKPOINT),
	"CAUSE_ECALL_U":    fmt.Sprintf("%d", CAUSE_ECALL_U),
}

var _csr_defines = map[string]string{
	"CSR_FFLAGS": fmt.Sprintf("%d", CSR_FFLAGS),
	"CSR_FRM":    fmt.Sprintf("%d", CSR_FRM),
	"CSR_FCSR":   fmt.Sprintf("%d", CSR_FCSR),
}

// Hart is one guest hardware thread's architectural state. It outlives any
// single translated block; blocks for different harts never share one.
type Hart struct {
	X  [32]uint64 // integer registers; X[0] is never read directly
	F  [32]uint64 // floating registers, raw bits
	PC uint64

	BadAddr uint64 // fault address of the last addressing trap

	// Load reservation, set by load-reserved and consumed by
	// store-conditional.
	ResAddr  uint64
	ResValid bool
	ResVal   uint64

	Frm       int // frm CSR value
	RoundMode int // rounding mode last installed into the FP runtime

	Csr map[uint16]uint64 // uninterpreted CSR store

	Flags  Flags
	MemIdx int

	SingleStep  bool
	Breakpoints map[uint64]bool
}

// New creates a hart with the full RV64GC feature set, running in machine
// mode at address 0.
func New() *Hart {
	return &Hart{
		Flags:  FLAGS_RVGC,
		MemIdx: MEM_IDX_MACHINE,
		Csr:    map[uint16]uint64{},
	}
}

// Defines for the hart, fed to the assembler's predefined equates.
func (h *Hart) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_cause_defines), maps.All(_csr_defines))
}

// GetReg reads an integer register. Register 0 always yields 0.
func (h *Hart) GetReg(n int) uint64 {
	if n == 0 {
		return 0
	}
	return h.X[n]
}

// SetReg writes an integer register. Writes to register 0 are discarded.
func (h *Hart) SetReg(n int, value uint64) {
	if n != 0 {
		h.X[n] = value
	}
}

// GetFReg reads the raw bits of a floating register. No index is hardwired.
func (h *Hart) GetFReg(n int) uint64 {
	return h.F[n]
}

// SetFReg writes the raw bits of a floating register.
func (h *Hart) SetFReg(n int, value uint64) {
	h.F[n] = value
}

// Reserve records a load reservation on addr.
func (h *Hart) Reserve(addr uint64, value uint64) {
	h.ResAddr = addr
	h.ResVal = value
	h.ResValid = true
}

// ClearReservation invalidates any held reservation.
func (h *Hart) ClearReservation() {
	h.ResValid = false
}

// ReservationMatches reports whether a valid reservation covers addr.
func (h *Hart) ReservationMatches(addr uint64) bool {
	return h.ResValid && h.ResAddr == addr
}

// ReadCSR reads a CSR, giving the floating-point ones their architectural
// views. Unknown CSRs read from the generic store.
func (h *Hart) ReadCSR(csr uint16) uint64 {
	switch csr {
	case CSR_FRM:
		return uint64(h.Frm)
	case CSR_FCSR:
		return h.Csr[CSR_FFLAGS]&0x1f | uint64(h.Frm)<<5
	default:
		return h.Csr[csr]
	}
}

// WriteCSR writes a CSR. Unknown CSRs go to the generic store.
func (h *Hart) WriteCSR(csr uint16, value uint64) {
	switch csr {
	case CSR_FRM:
		h.Frm = int(value & 0x7)
	case CSR_FCSR:
		h.Csr[CSR_FFLAGS] = value & 0x1f
		h.Frm = int(value>>5) & 0x7
	default:
		h.Csr[csr] = value
	}
}

// SetBreakpoint registers a debugger breakpoint at a guest address.
func (h *Hart) SetBreakpoint(addr uint64) {
	if h.Breakpoints == nil {
		h.Breakpoints = map[uint64]bool{}
	}
	h.Breakpoints[addr] = true
}

// ClearBreakpoint removes a breakpoint.
func (h *Hart) ClearBreakpoint(addr uint64) {
	delete(h.Breakpoints, addr)
}

// HasBreakpoint reports whether a breakpoint is registered at addr.
func (h *Hart) HasBreakpoint(addr uint64) bool {
	return h.Breakpoints[addr]
}
