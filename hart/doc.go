// Package hart holds the per-hart architectural state the translator reads
// and the executed blocks mutate: integer and floating register files, guest
// PC, the load reservation, the fault address, a small CSR store, feature
// flags, and the debugger's breakpoint set.
//
// Integer register x0 is hardwired to zero: reads always yield 0, writes are
// discarded. All access goes through GetReg/SetReg, which encode that rule.
package hart
