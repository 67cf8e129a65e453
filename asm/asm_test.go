package asm

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assemble(t *testing.T, lines ...string) *Program {
	t.Helper()

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(lines, "\n")))
	if err != nil {
		t.Fatal(err)
	}

	return prog
}

func words(prog *Program) (out []uint32) {
	for _, word := range prog.Codes() {
		out = append(out, word)
	}

	return
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Opcodes))

	assert.Equal("0", asm.Equate["LINENO"])
}

func TestAssemblerEncodings(t *testing.T) {
	assert := assert.New(t)

	// Hand-assembled reference words.
	table := [](struct {
		source string
		word   uint32
	}){
		{"addi t0, x0, 42", 0x02a00293},
		{"lui ra, 0x12345", 0x123450b7},
		{"ld gp, -8(tp)", 0xff823183},
		{"sw x2, 8(x1)", 0x0020a423},
		{"mul ra, sp, gp", 0x023100b3},
		{"srai ra, sp, 63", 0x43f15093},
		{"lr.w t0, (a0)", 0x100522af},
		{"sc.w t1, t2, (a0)", 0x1875232f},
		{"csrrw ra, fcsr, sp", 0x003110f3},
		{"csrrw ra, 3, sp", 0x003110f3},
		{"bne a0, x0, -4", 0xfe051ee3},
		{"jal x0, 8", 0x0080006f},
		{"nop", 0x00000013},
		{"ecall", 0x00000073},
		{"ebreak", 0x00100073},
		{"ret", 0x00008067},
		{".word 0xdeadbeef", 0xdeadbeef},
	}

	for _, entry := range table {
		prog := assemble(t, entry.source)
		assert.Equal([]uint32{entry.word}, words(prog), entry.source)
	}
}

func TestAssemblerPseudo(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		"li a0, 42",
		"li a1, 0x12345678",
		"mv a2, a0",
		"neg a3, a0",
		"not a4, a0",
		"j 8",
		"jr ra",
		"beqz a0, -4",
	)

	expected := []uint32{
		0x02a00513, // addi a0, x0, 42
		0x123455b7, // lui a1, 0x12345
		0x6785859b, // addiw a1, a1, 0x678
		0x00050613, // addi a2, a0, 0
		0x40a006b3, // sub a3, x0, a0
		0xfff54713, // xori a4, a0, -1
		0x0080006f, // jal x0, 8
		0x00008067, // jalr x0, 0(ra)
		0xfe050ee3, // beq a0, x0, -4
	}

	assert.Equal(expected, words(prog))
}

func TestAssemblerLabels(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		"loop: addi a0, a0, -1",
		"bnez a0, loop",
		"j done",
		"nop",
		"done: ecall",
	)

	expected := []uint32{
		0xfff50513, // addi a0, a0, -1
		0xfe051ee3, // bne a0, x0, -4
		0x0080006f, // jal x0, +8
		0x00000013,
		0x00000073,
	}

	assert.Equal(expected, words(prog))
	assert.Equal(uint64(0), prog.Opcodes[0].Addr)
	assert.Equal(uint64(16), prog.Opcodes[4].Addr)
}

func TestAssemblerEqu(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		".equ COUNT 10",
		"li a0, COUNT",
		"li a1, $(COUNT * 4 + 2)",
		".equ DOUBLE $(COUNT + COUNT)",
		"addi a2, x0, DOUBLE",
	)

	expected := []uint32{
		0x00a00513, // addi a0, x0, 10
		0x02a00593, // addi a1, x0, 42
		0x01400613, // addi a2, x0, 20
	}

	assert.Equal(expected, words(prog))
}

func TestAssemblerPredefine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("BASE", "0x100")

	prog, err := asm.Parse(strings.NewReader("addi a0, x0, BASE"))
	assert.NoError(err)

	assert.Equal([]uint32{encI(0x13, 0, 10, 0, 0x100)}, words(prog))
}

func TestAssemblerOrgBinary(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		".org 0x1000",
		"here: j here",
		".word 0x01020304",
	)

	assert.Equal(uint64(0x1000), prog.Org)
	assert.Equal([]uint32{0x0000006f, 0x01020304}, words(prog))

	bins := prog.Binary()
	assert.Equal([]byte{0x6f, 0x00, 0x00, 0x00, 0x04, 0x03, 0x02, 0x01}, bins)
}

func TestAssemblerComments(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		"; full line comment",
		"# another",
		"nop ; trailing",
		"ecall # trailing",
		"",
	)

	assert.Equal([]uint32{0x00000013, 0x00000073}, words(prog))
	assert.Equal(3, prog.Opcodes[0].LineNo)
	assert.Equal(4, prog.Opcodes[1].LineNo)
}

func TestAssemblerErrSyntax(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	// Various syntax errors
	table := [](struct {
		prog string
		line int
		err  error
	}){
		{"DUP:\nDUP:\n", 2, ErrLabelDuplicate},
		{"bogus a0\n", 1, ErrMnemonic("bogus")},
		{"addi a0 a0\n", 1, ErrOperandCount},
		{"addi a0 a0 0 0\n", 1, ErrOperandCount},
		{"addi a0 a0 5000\n", 1, ErrImmRange(5000)},
		{"addi q0 a0 0\n", 1, ErrRegister("q0")},
		{"slli a0 a0 64\n", 1, ErrImmRange(64)},
		{"slliw a0 a0 32\n", 1, ErrImmRange(32)},
		{"lw a0 a1\n", 1, ErrRegister("a1")},
		{"lw a0 0x1000(sp)\n", 1, ErrImmRange(0x1000)},
		{"lr.w a0 8(a1)\n", 1, ErrImmRange(8)},
		{"csrrwi a0 frm 32\n", 1, ErrImmRange(32)},
		{"csrrw a0 0x1001 a1\n", 1, ErrImmRange(0x1001)},
		{"lui a0 0x100000\n", 1, ErrImmRange(0x100000)},
		{"li a0 0x100000000\n", 1, ErrImmRange(0x100000000)},
		{"li a0 nine\n", 1, ErrParseNumber("nine")},
		{"li a0 $(\"aaa\")\n", 1, ErrParseExpression("\"aaa\"")},
		{"beq a0 a1 nowhere\n", 1, ErrLabelMissing("nowhere")},
		{"beq a0 a1 3\n", 1, ErrImmRange(3)},
		{"jal ra 0x200000\n", 1, ErrImmRange(0x200000)},
		{".equ\n", 1, ErrEquateSyntax},
		{".equ A\n", 1, ErrEquateSyntax},
		{".equ A 1\n.equ A 2\n", 2, ErrEquateDuplicate},
		{".org\n", 1, ErrOperandCount},
		{".word\n", 1, ErrOperandCount},
		{"nop bad\n", 1, ErrOperandCount},
	}

	for _, entry := range table {
		_, err := asm.Parse(strings.NewReader(entry.prog))
		var se *ErrSyntax
		assert.NotNil(err, entry.prog)
		if err != nil {
			assert.True(errors.As(err, &se), entry.prog)
			assert.Equal(entry.line, se.LineNo, entry.prog)
			if entry.err != nil {
				assert.ErrorIs(err, entry.err, entry.prog)
			}
		}
	}
}
