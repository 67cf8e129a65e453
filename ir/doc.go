// Package ir is the intermediate representation consumed by the execution
// backend.
//
// A Block records the ordered operations lowered from one straight-line run
// of guest instructions. Operands are opaque Value handles: a fixed set of
// globals bound to per-hart architectural state (guest PC, fault address,
// load reservation, integer and floating registers) plus block-local
// temporaries. Control flow inside a block uses labels and conditional
// branches; a block leaves through a chain to a known guest address or an
// exit to the dispatcher.
package ir
