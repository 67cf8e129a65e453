package translate

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/rvjit/hart"
	"github.com/ezrec/rvjit/ir"
)

// loadWords places instruction words contiguously at addr.
func loadWords(mem *hart.RAM, addr uint64, insns ...uint32) {
	for n, word := range insns {
		binary.LittleEndian.PutUint32(mem.Data[addr-mem.Base+uint64(n)*4:], word)
	}
}

func lastOp(b *ir.Block) ir.Op {
	return b.Insns[len(b.Insns)-1].Op
}

func TestTranslateChainsSamePage(t *testing.T) {
	assert := assert.New(t)

	h := hart.New()
	mem := hart.NewRAM(0, 8192)
	loadWords(mem, 0x100,
		0x02a00293, // addi t0, x0, 42
		0xff9ff06f, // jal x0, -8
	)

	b := Translate(h, mem, 0x100)

	assert.Equal(uint64(0x100), b.Start)
	assert.Equal(uint64(0x108), b.End)
	assert.Equal(ir.OP_CHAIN, lastOp(b))
	assert.Equal(int64(0xfc), b.Insns[len(b.Insns)-1].Imm)
	assert.Equal(0, b.CallCount(ir.HELPER_RAISE))
}

func TestTranslateExitsAcrossPages(t *testing.T) {
	assert := assert.New(t)

	h := hart.New()
	mem := hart.NewRAM(0, 8192)
	loadWords(mem, 0x100,
		0x0000106f, // jal x0, +4096
	)

	b := Translate(h, mem, 0x100)

	// The destination is outside the starting page, so the block leaves
	// through the dispatcher instead of chaining.
	assert.Equal(ir.OP_EXIT, lastOp(b))
	assert.Equal(0, b.CallCount(ir.HELPER_RAISE))
}

func TestTranslateStopsAtPageBoundary(t *testing.T) {
	assert := assert.New(t)

	h := hart.New()
	mem := hart.NewRAM(0, 8192)
	loadWords(mem, 0xff8,
		0x00000013, // nop
		0x00000013, // nop
		0x00000013, // nop, next page
	)

	b := Translate(h, mem, 0xff8)

	assert.Equal(uint64(0x1000), b.End)
	assert.Equal(ir.OP_EXIT, lastOp(b))
}

func TestTranslateBranchChainsBothPaths(t *testing.T) {
	assert := assert.New(t)

	h := hart.New()
	mem := hart.NewRAM(0, 8192)
	loadWords(mem, 0x100,
		0xfff50513, // addi a0, a0, -1
		0xfe051ee3, // bne a0, x0, -4
	)

	b := Translate(h, mem, 0x100)

	chains := 0
	for _, in := range b.Insns {
		if in.Op == ir.OP_CHAIN {
			chains++
		}
	}
	assert.Equal(2, chains)
	assert.Equal(uint64(0x108), b.End)
}

func TestTranslateIndirectJumpExits(t *testing.T) {
	assert := assert.New(t)

	h := hart.New()
	mem := hart.NewRAM(0, 8192)
	loadWords(mem, 0x100,
		0x00008067, // jalr x0, 0(ra)
	)

	b := Translate(h, mem, 0x100)

	assert.Equal(uint64(0x104), b.End)
	assert.Equal(ir.OP_EXIT, lastOp(b))
}

func TestTranslateSingleStep(t *testing.T) {
	assert := assert.New(t)

	h := hart.New()
	h.SingleStep = true
	mem := hart.NewRAM(0, 8192)
	loadWords(mem, 0x100,
		0x00000013, // nop
		0x00000013, // nop
	)

	b := Translate(h, mem, 0x100)

	// One instruction per block, ending in a debug trap.
	assert.Equal(uint64(0x104), b.End)
	assert.Equal(1, b.CallCount(ir.HELPER_RAISE))
	assert.Equal(ir.OP_CALL, lastOp(b))
}

func TestTranslateBreakpoint(t *testing.T) {
	assert := assert.New(t)

	h := hart.New()
	h.SetBreakpoint(0x104)
	mem := hart.NewRAM(0, 8192)
	loadWords(mem, 0x100,
		0x00000013, // nop
		0x00000013, // nop, breakpointed
	)

	b := Translate(h, mem, 0x100)

	// The breakpointed address is covered by the block.
	assert.Equal(uint64(0x108), b.End)
	assert.Equal(1, b.CallCount(ir.HELPER_RAISE))
}

func TestTranslateFetchFault(t *testing.T) {
	assert := assert.New(t)

	h := hart.New()
	mem := hart.NewRAM(0, 8192)

	b := Translate(h, mem, 0x3000)

	assert.Equal(1, b.CallCount(ir.HELPER_RAISE))
	assert.Equal(ir.OP_CALL, lastOp(b))
}

func TestTranslateIllegalWord(t *testing.T) {
	assert := assert.New(t)

	h := hart.New()
	mem := hart.NewRAM(0, 8192)
	loadWords(mem, 0x100,
		0x00000000, // reserved encoding
	)

	b := Translate(h, mem, 0x100)

	assert.Equal(1, b.CallCount(ir.HELPER_RAISE))
}

func TestTranslateCompressedNeedsRVC(t *testing.T) {
	assert := assert.New(t)

	h := hart.New()
	mem := hart.NewRAM(0, 8192)
	loadWords(mem, 0x100,
		0x00010001, // two c.nop
		0xffdff06f, // jal x0, -4
	)

	b := Translate(h, mem, 0x100)
	assert.Equal(0, b.CallCount(ir.HELPER_RAISE))
	assert.Equal(uint64(0x108), b.End)

	h.Flags &^= hart.FLAG_RVC
	b = Translate(h, mem, 0x100)
	assert.Equal(1, b.CallCount(ir.HELPER_RAISE))
	assert.Equal(uint64(0x102), b.End)
}

func TestTranslateMissingExtension(t *testing.T) {
	assert := assert.New(t)

	h := hart.New()
	h.Flags &^= hart.FLAG_RVM
	mem := hart.NewRAM(0, 8192)
	loadWords(mem, 0x100,
		0x023100b3, // mul ra, sp, gp
	)

	b := Translate(h, mem, 0x100)

	assert.Equal(1, b.CallCount(ir.HELPER_RAISE))
}

func TestTranslateRoundingModeCached(t *testing.T) {
	assert := assert.New(t)

	h := hart.New()
	mem := hart.NewRAM(0, 8192)
	loadWords(mem, 0x100,
		0x003100d3, // fadd.s f1, f2, f3, rne
		0x003100d3, // fadd.s f1, f2, f3, rne
		0x00000073, // ecall
	)

	b := Translate(h, mem, 0x100)
	assert.Equal(1, b.CallCount(ir.HELPER_SET_RM))
	assert.Equal(2, b.CallCount(ir.HELPER_FADD_S))

	loadWords(mem, 0x200,
		0x003100d3, // fadd.s f1, f2, f3, rne
		0x003110d3, // fadd.s f1, f2, f3, rtz
		0x00000073, // ecall
	)

	b = Translate(h, mem, 0x200)
	assert.Equal(2, b.CallCount(ir.HELPER_SET_RM))
}

func TestTranslateCSREndsBlock(t *testing.T) {
	assert := assert.New(t)

	h := hart.New()
	mem := hart.NewRAM(0, 8192)
	loadWords(mem, 0x100,
		0x0021d573, // csrrwi a0, frm, 3
		0x00000013, // nop, not reached
	)

	b := Translate(h, mem, 0x100)

	// CSR writes may change translation-relevant state, so the block ends.
	assert.Equal(uint64(0x104), b.End)
	assert.Equal(ir.OP_EXIT, lastOp(b))
	assert.Equal(1, b.CallCount(ir.HELPER_CSRRW))
}

func TestTranslateKey(t *testing.T) {
	assert := assert.New(t)

	h := hart.New()
	h.PC = 0x100
	key := KeyFor(h)
	assert.Equal(Key{PC: 0x100, Flags: hart.FLAGS_RVGC, MemIdx: hart.MEM_IDX_MACHINE}, key)

	h.SingleStep = true
	assert.NotEqual(key, KeyFor(h))
}
