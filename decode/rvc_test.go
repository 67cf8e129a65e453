package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode16(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		name string
		half uint16
		want Insn
	}{
		{"c.nop", 0x0001, Insn{Kind: ADDI, Rd: 0, Rs1: 0, Imm: 0}},
		{"c.addi s0, 1", 0x0405, Insn{Kind: ADDI, Rd: 8, Rs1: 8, Imm: 1}},
		{"c.li a0, -1", 0x557d, Insn{Kind: ADDI, Rd: 10, Rs1: 0, Imm: -1}},
		{"c.lui a1, 0x1f", 0x65fd, Insn{Kind: LUI, Rd: 11, Imm: 0x1f000}},
		{"c.addi16sp -32", 0x713d, Insn{Kind: ADDI, Rd: 2, Rs1: 2, Imm: -32}},
		{"c.addi4spn a0, 16", 0x0808, Insn{Kind: ADDI, Rd: 10, Rs1: 2, Imm: 16}},
		{"c.lw a2, 0(a0)", 0x4110, Insn{Kind: LW, Rd: 12, Rs1: 10, Imm: 0}},
		{"c.ld a2, 8(a0)", 0x6510, Insn{Kind: LD, Rd: 12, Rs1: 10, Imm: 8}},
		{"c.sw a2, 0(a0)", 0xc110, Insn{Kind: SW, Rs1: 10, Rs2: 12, Imm: 0}},
		{"c.sd a2, 8(a0)", 0xe510, Insn{Kind: SD, Rs1: 10, Rs2: 12, Imm: 8}},
		{"c.lwsp a0, 0(sp)", 0x4502, Insn{Kind: LW, Rd: 10, Rs1: 2, Imm: 0}},
		{"c.sdsp ra, 8(sp)", 0xe406, Insn{Kind: SD, Rs1: 2, Rs2: 1, Imm: 8}},
		{"c.mv a0, a1", 0x852e, Insn{Kind: ADD, Rd: 10, Rs1: 0, Rs2: 11}},
		{"c.add a0, a1", 0x952e, Insn{Kind: ADD, Rd: 10, Rs1: 10, Rs2: 11}},
		{"c.sub a0, a1", 0x8d0d, Insn{Kind: SUB, Rd: 10, Rs1: 10, Rs2: 11}},
		{"c.addw a0, a1", 0x9d2d, Insn{Kind: ADDW, Rd: 10, Rs1: 10, Rs2: 11}},
		{"c.jr ra", 0x8082, Insn{Kind: JALR, Rd: 0, Rs1: 1, Imm: 0}},
		{"c.jalr a0", 0x9502, Insn{Kind: JALR, Rd: 1, Rs1: 10, Imm: 0}},
		{"c.j .", 0xa001, Insn{Kind: JAL, Rd: 0, Imm: 0}},
		{"c.beqz a0, +8", 0xc501, Insn{Kind: BEQ, Rs1: 10, Rs2: 0, Imm: 8}},
		{"c.bnez a0, +8", 0xe501, Insn{Kind: BNE, Rs1: 10, Rs2: 0, Imm: 8}},
		{"c.slli a0, 4", 0x0512, Insn{Kind: SLLI, Rd: 10, Rs1: 10, Imm: 4}},
		{"c.srai a5, 1", 0x8785, Insn{Kind: SRAI, Rd: 15, Rs1: 15, Imm: 1}},
		{"c.andi a0, 15", 0x893d, Insn{Kind: ANDI, Rd: 10, Rs1: 10, Imm: 15}},
		{"c.addiw a0, -1", 0x357d, Insn{Kind: ADDIW, Rd: 10, Rs1: 10, Imm: -1}},
		{"c.ebreak", 0x9002, Insn{Kind: EBREAK}},
		{"c.fld fa2, 8(a0)", 0x2510, Insn{Kind: FLD, Rd: 12, Rs1: 10, Imm: 8}},
		{"c.fsd fa2, 8(a0)", 0xa510, Insn{Kind: FSD, Rs1: 10, Rs2: 12, Imm: 8}},
	}

	for _, tt := range tests {
		in, err := Decode16(tt.half)
		if !assert.NoErrorf(err, "%s (0x%04x)", tt.name, tt.half) {
			continue
		}
		assert.Equalf(uint64(2), in.Len, "%s: length", tt.name)
		in.Raw, in.Len = 0, 0
		assert.Equalf(tt.want, in, "%s (0x%04x)", tt.name, tt.half)
	}
}

func TestDecode16Reserved(t *testing.T) {
	assert := assert.New(t)

	reserved := []uint16{
		0x0000, // defined illegal
		0x0004, // c.addi4spn with zero immediate
		0x8000, // quadrant-0 funct 100
		0x9d41, // quadrant-1 funct 100, width selector with no encoding
		0x2001, // c.addiw with rd = 0
		0x8002, // c.jr with rs1 = 0
	}
	for _, half := range reserved {
		_, err := Decode16(half)
		assert.Errorf(err, "0x%04x", half)
	}
}

// Decode on a full word containing a compressed instruction in its low half
// must ignore the upper half.
func TestDecodeDispatch(t *testing.T) {
	assert := assert.New(t)

	in, err := Decode(0xffff4502) // c.lwsp a0, 0(sp); garbage above
	assert.NoError(err)
	assert.Equal(LW, in.Kind)
	assert.Equal(uint64(2), in.Len)

	in, err = Decode(0x02a00293)
	assert.NoError(err)
	assert.Equal(ADDI, in.Kind)
	assert.Equal(uint64(4), in.Len)
}
