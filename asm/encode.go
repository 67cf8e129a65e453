package asm

import (
	"strconv"
)

// Instruction word builders, one per encoding format.

func encR(op, f3, f7 uint32, rd, rs1, rs2 int) uint32 {
	return f7<<25 | uint32(rs2)<<20 | uint32(rs1)<<15 | f3<<12 | uint32(rd)<<7 | op
}

func encI(op, f3 uint32, rd, rs1 int, imm int64) uint32 {
	return uint32(imm&0xfff)<<20 | uint32(rs1)<<15 | f3<<12 | uint32(rd)<<7 | op
}

func encS(op, f3 uint32, rs1, rs2 int, imm int64) uint32 {
	return uint32(imm>>5&0x7f)<<25 | uint32(rs2)<<20 | uint32(rs1)<<15 |
		f3<<12 | uint32(imm&0x1f)<<7 | op
}

func encB(op, f3 uint32, rs1, rs2 int, imm int64) uint32 {
	return uint32(imm>>12&0x1)<<31 | uint32(imm>>5&0x3f)<<25 |
		uint32(rs2)<<20 | uint32(rs1)<<15 | f3<<12 |
		uint32(imm>>1&0xf)<<8 | uint32(imm>>11&0x1)<<7 | op
}

func encU(op uint32, rd int, imm int64) uint32 {
	return uint32(imm)&0xfffff000 | uint32(rd)<<7 | op
}

func encJ(op uint32, rd int, imm int64) uint32 {
	return uint32(imm>>20&0x1)<<31 | uint32(imm>>1&0x3ff)<<21 |
		uint32(imm>>11&0x1)<<20 | uint32(imm>>12&0xff)<<12 |
		uint32(rd)<<7 | op
}

// format selects the operand syntax and word builder for a mnemonic.
type format int

const (
	fmtR      format = iota // rd, rs1, rs2
	fmtI                    // rd, rs1, imm
	fmtShift                // rd, rs1, shamt
	fmtLoad                 // rd, off(rs1)
	fmtStore                // rs2, off(rs1)
	fmtBranch               // rs1, rs2, target
	fmtU                    // rd, imm20
	fmtJal                  // rd, target
	fmtJalr                 // rd, off(rs1)
	fmtLr                   // rd, (rs1)
	fmtAmo                  // rd, rs2, (rs1)
	fmtCsr                  // rd, csr, rs1
	fmtCsrI                 // rd, csr, zimm
	fmtFixed                // complete word, no operands
)

type mnemonic struct {
	format format
	op     uint32
	f3     uint32
	f7     uint32 // also the shamt high bits and the amo funct5
	word   uint32 // fmtFixed
}

var mnemonics = map[string]mnemonic{
	"lui":   {format: fmtU, op: 0x37},
	"auipc": {format: fmtU, op: 0x17},
	"jal":   {format: fmtJal, op: 0x6f},
	"jalr":  {format: fmtJalr, op: 0x67},

	"beq":  {format: fmtBranch, op: 0x63, f3: 0},
	"bne":  {format: fmtBranch, op: 0x63, f3: 1},
	"blt":  {format: fmtBranch, op: 0x63, f3: 4},
	"bge":  {format: fmtBranch, op: 0x63, f3: 5},
	"bltu": {format: fmtBranch, op: 0x63, f3: 6},
	"bgeu": {format: fmtBranch, op: 0x63, f3: 7},

	"lb":  {format: fmtLoad, op: 0x03, f3: 0},
	"lh":  {format: fmtLoad, op: 0x03, f3: 1},
	"lw":  {format: fmtLoad, op: 0x03, f3: 2},
	"ld":  {format: fmtLoad, op: 0x03, f3: 3},
	"lbu": {format: fmtLoad, op: 0x03, f3: 4},
	"lhu": {format: fmtLoad, op: 0x03, f3: 5},
	"lwu": {format: fmtLoad, op: 0x03, f3: 6},

	"sb": {format: fmtStore, op: 0x23, f3: 0},
	"sh": {format: fmtStore, op: 0x23, f3: 1},
	"sw": {format: fmtStore, op: 0x23, f3: 2},
	"sd": {format: fmtStore, op: 0x23, f3: 3},

	"addi":  {format: fmtI, op: 0x13, f3: 0},
	"slti":  {format: fmtI, op: 0x13, f3: 2},
	"sltiu": {format: fmtI, op: 0x13, f3: 3},
	"xori":  {format: fmtI, op: 0x13, f3: 4},
	"ori":   {format: fmtI, op: 0x13, f3: 6},
	"andi":  {format: fmtI, op: 0x13, f3: 7},
	"addiw": {format: fmtI, op: 0x1b, f3: 0},

	"slli":  {format: fmtShift, op: 0x13, f3: 1},
	"srli":  {format: fmtShift, op: 0x13, f3: 5},
	"srai":  {format: fmtShift, op: 0x13, f3: 5, f7: 0x20},
	"slliw": {format: fmtShift, op: 0x1b, f3: 1},
	"srliw": {format: fmtShift, op: 0x1b, f3: 5},
	"sraiw": {format: fmtShift, op: 0x1b, f3: 5, f7: 0x20},

	"add":  {format: fmtR, op: 0x33, f3: 0},
	"sub":  {format: fmtR, op: 0x33, f3: 0, f7: 0x20},
	"sll":  {format: fmtR, op: 0x33, f3: 1},
	"slt":  {format: fmtR, op: 0x33, f3: 2},
	"sltu": {format: fmtR, op: 0x33, f3: 3},
	"xor":  {format: fmtR, op: 0x33, f3: 4},
	"srl":  {format: fmtR, op: 0x33, f3: 5},
	"sra":  {format: fmtR, op: 0x33, f3: 5, f7: 0x20},
	"or":   {format: fmtR, op: 0x33, f3: 6},
	"and":  {format: fmtR, op: 0x33, f3: 7},
	"addw": {format: fmtR, op: 0x3b, f3: 0},
	"subw": {format: fmtR, op: 0x3b, f3: 0, f7: 0x20},
	"sllw": {format: fmtR, op: 0x3b, f3: 1},
	"srlw": {format: fmtR, op: 0x3b, f3: 5},
	"sraw": {format: fmtR, op: 0x3b, f3: 5, f7: 0x20},

	"mul":    {format: fmtR, op: 0x33, f3: 0, f7: 1},
	"mulh":   {format: fmtR, op: 0x33, f3: 1, f7: 1},
	"mulhsu": {format: fmtR, op: 0x33, f3: 2, f7: 1},
	"mulhu":  {format: fmtR, op: 0x33, f3: 3, f7: 1},
	"div":    {format: fmtR, op: 0x33, f3: 4, f7: 1},
	"divu":   {format: fmtR, op: 0x33, f3: 5, f7: 1},
	"rem":    {format: fmtR, op: 0x33, f3: 6, f7: 1},
	"remu":   {format: fmtR, op: 0x33, f3: 7, f7: 1},
	"mulw":   {format: fmtR, op: 0x3b, f3: 0, f7: 1},
	"divw":   {format: fmtR, op: 0x3b, f3: 4, f7: 1},
	"divuw":  {format: fmtR, op: 0x3b, f3: 5, f7: 1},
	"remw":   {format: fmtR, op: 0x3b, f3: 6, f7: 1},
	"remuw":  {format: fmtR, op: 0x3b, f3: 7, f7: 1},

	"lr.w":      {format: fmtLr, op: 0x2f, f3: 2, f7: 0x08},
	"lr.d":      {format: fmtLr, op: 0x2f, f3: 3, f7: 0x08},
	"sc.w":      {format: fmtAmo, op: 0x2f, f3: 2, f7: 0x0c},
	"sc.d":      {format: fmtAmo, op: 0x2f, f3: 3, f7: 0x0c},
	"amoswap.w": {format: fmtAmo, op: 0x2f, f3: 2, f7: 0x04},
	"amoswap.d": {format: fmtAmo, op: 0x2f, f3: 3, f7: 0x04},
	"amoadd.w":  {format: fmtAmo, op: 0x2f, f3: 2, f7: 0x00},
	"amoadd.d":  {format: fmtAmo, op: 0x2f, f3: 3, f7: 0x00},
	"amoxor.w":  {format: fmtAmo, op: 0x2f, f3: 2, f7: 0x10},
	"amoxor.d":  {format: fmtAmo, op: 0x2f, f3: 3, f7: 0x10},
	"amoand.w":  {format: fmtAmo, op: 0x2f, f3: 2, f7: 0x30},
	"amoand.d":  {format: fmtAmo, op: 0x2f, f3: 3, f7: 0x30},
	"amoor.w":   {format: fmtAmo, op: 0x2f, f3: 2, f7: 0x20},
	"amoor.d":   {format: fmtAmo, op: 0x2f, f3: 3, f7: 0x20},
	"amomin.w":  {format: fmtAmo, op: 0x2f, f3: 2, f7: 0x40},
	"amomin.d":  {format: fmtAmo, op: 0x2f, f3: 3, f7: 0x40},
	"amomax.w":  {format: fmtAmo, op: 0x2f, f3: 2, f7: 0x50},
	"amomax.d":  {format: fmtAmo, op: 0x2f, f3: 3, f7: 0x50},
	"amominu.w": {format: fmtAmo, op: 0x2f, f3: 2, f7: 0x60},
	"amominu.d": {format: fmtAmo, op: 0x2f, f3: 3, f7: 0x60},
	"amomaxu.w": {format: fmtAmo, op: 0x2f, f3: 2, f7: 0x70},
	"amomaxu.d": {format: fmtAmo, op: 0x2f, f3: 3, f7: 0x70},

	"csrrw":  {format: fmtCsr, op: 0x73, f3: 1},
	"csrrs":  {format: fmtCsr, op: 0x73, f3: 2},
	"csrrc":  {format: fmtCsr, op: 0x73, f3: 3},
	"csrrwi": {format: fmtCsrI, op: 0x73, f3: 5},
	"csrrsi": {format: fmtCsrI, op: 0x73, f3: 6},
	"csrrci": {format: fmtCsrI, op: 0x73, f3: 7},

	"fence":   {format: fmtFixed, word: 0x0ff0000f},
	"fence.i": {format: fmtFixed, word: 0x0000100f},
	"ecall":   {format: fmtFixed, word: 0x00000073},
	"ebreak":  {format: fmtFixed, word: 0x00100073},
	"nop":     {format: fmtFixed, word: 0x00000013},
	"ret":     {format: fmtFixed, word: 0x00008067},
}

// intRegs maps numeric and ABI register names to indices.
var intRegs = map[string]int{
	"zero": 0, "ra": 1, "sp": 2, "gp": 3, "tp": 4,
	"t0": 5, "t1": 6, "t2": 7,
	"s0": 8, "fp": 8, "s1": 9,
	"a0": 10, "a1": 11, "a2": 12, "a3": 13,
	"a4": 14, "a5": 15, "a6": 16, "a7": 17,
	"s2": 18, "s3": 19, "s4": 20, "s5": 21, "s6": 22, "s7": 23,
	"s8": 24, "s9": 25, "s10": 26, "s11": 27,
	"t3": 28, "t4": 29, "t5": 30, "t6": 31,
}

func init() {
	for n := range 32 {
		intRegs["x"+strconv.Itoa(n)] = n
	}
}
