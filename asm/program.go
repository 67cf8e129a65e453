package asm

import (
	"encoding/binary"
	"iter"
)

// Opcode is one assembled statement: the source line it came from, the
// address it was placed at, and the instruction words it produced.
type Opcode struct {
	LineNo    int      // Line number of the source statement.
	Addr      uint64   // Address of the first word.
	Words     []string // Source words, after substitution.
	Insns     []uint32 // Encoded instruction words.
	LinkLabel string   // Label to patch into the final word, if any.

	format format
}

// Program is the assembled output.
type Program struct {
	Org     uint64 // Load address of the first word.
	Opcodes []Opcode
}

// Codes yields each instruction word with its address.
func (prog *Program) Codes() iter.Seq2[uint64, uint32] {
	return func(yield func(addr uint64, word uint32) bool) {
		for _, op := range prog.Opcodes {
			for n, word := range op.Insns {
				if !yield(op.Addr+uint64(n)*4, word) {
					return
				}
			}
		}
	}
}

// Binary renders the program as little-endian bytes starting at Org.
// Gaps left by .org are zero filled.
func (prog *Program) Binary() (bins []byte) {
	for addr, word := range prog.Codes() {
		offset := int(addr - prog.Org)
		for len(bins) < offset {
			bins = append(bins, 0)
		}
		bins = binary.LittleEndian.AppendUint32(bins, word)
	}

	return
}
