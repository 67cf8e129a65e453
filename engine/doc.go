// Package engine drives translated blocks against a hart.
//
// The engine owns the block cache: blocks are translated on first use for a
// given (pc, flags, privilege, single-step) key and reused until flushed.
// Execution evaluates the block's IR directly, binding the IR globals to the
// hart's architectural state on entry and writing them back on every exit
// path, so a trap observes exactly the state the guest would.
package engine
