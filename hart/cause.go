package hart

import (
	"fmt"
)

// Cause is a guest exception cause code, numbered per the privileged
// architecture. CAUSE_DEBUG is out of band: it reports a host debugger trap,
// never a guest-architectural exception.
type Cause int

const (
	CAUSE_MISALIGNED_FETCH = Cause(0)
	CAUSE_FETCH_ACCESS     = Cause(1)
	CAUSE_ILLEGAL_INSN     = Cause(2)
	CAUSE_BREAKPOINT       = Cause(3)
	CAUSE_MISALIGNED_LOAD  = Cause(4)
	CAUSE_LOAD_ACCESS      = Cause(5)
	CAUSE_MISALIGNED_STORE = Cause(6)
	CAUSE_STORE_ACCESS     = Cause(7)
	CAUSE_ECALL_U          = Cause(8)

	CAUSE_DEBUG = Cause(0x10000)
)

var causeNames = map[Cause]string{
	CAUSE_MISALIGNED_FETCH: "misaligned fetch",
	CAUSE_FETCH_ACCESS:     "fetch access fault",
	CAUSE_ILLEGAL_INSN:     "illegal instruction",
	CAUSE_BREAKPOINT:       "breakpoint",
	CAUSE_MISALIGNED_LOAD:  "misaligned load",
	CAUSE_LOAD_ACCESS:      "load access fault",
	CAUSE_MISALIGNED_STORE: "misaligned store",
	CAUSE_STORE_ACCESS:     "store access fault",
	CAUSE_ECALL_U:          "environment call from U-mode",
	CAUSE_DEBUG:            "debug trap",
}

func (c Cause) String() string {
	name, ok := causeNames[c]
	if !ok {
		return fmt.Sprintf("cause %d", int(c))
	}
	return name
}

// Trap is a guest-observable exception: part of normal guest execution, not
// a host error.
type Trap struct {
	Cause Cause
	Tval  uint64 // faulting address when the cause records one
}

func (t Trap) String() string {
	return fmt.Sprintf("%v (tval=%#x)", t.Cause, t.Tval)
}
