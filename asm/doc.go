// Package asm is a small two-pass RISC-V assembler, enough to express test
// programs and guest images without an external toolchain.
//
// It accepts the integer, multiply, atomic and CSR mnemonics with ABI or
// numeric register names, labels, a handful of pseudo-instructions, and
// compile-time $(...) expressions evaluated with Starlark against the
// equate table. Raw words escape the mnemonic table for anything else.
package asm
