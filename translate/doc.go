// Package translate turns runs of guest RISC-V instructions into IR blocks.
//
// Translate walks the instruction stream from a starting address, decoding
// and dispatching each instruction to a semantic generator that appends IR
// to the block under construction. A block ends at the first instruction
// that diverts control flow (branches, jumps, traps, anything that touches
// CSR state), at a page boundary, or at the instruction count cap. Blocks
// are pure code: all architectural state lives in the IR globals, so a block
// translated once may execute any number of times.
//
// A block is keyed by more than its address: the extension flags, memory
// privilege index and single-step state it was translated under are part of
// its identity, and the cache must never serve a block to a hart whose
// current state differs.
package translate
