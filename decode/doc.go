// Package decode pattern-matches raw RISC-V opcode words against the RV64
// encoding tables and produces normalized Insn values for the semantic
// translators.
//
// The 32-bit set is a priority-ordered structural match over a data-described
// table of {mask, match, kind, format} patterns; the patterns are mutually
// exclusive by construction of the ISA encoding (a property test checks
// this), so ordering affects lookup speed only. The 16-bit compressed set is
// an independent quadrant table that rewrites each instruction into its
// 32-bit equivalent before reusing the standard table; compressed register
// fields and scaled immediates are widened during the rewrite.
package decode
