package decode

// format selects which fields Decode32 extracts from the matched word.
type format int

const (
	fmtR      format = iota // rd, rs1, rs2
	fmtI                    // rd, rs1, imm[11:0] sign extended
	fmtShift                // rd, rs1, 6-bit shift amount
	fmtShiftW               // rd, rs1, 5-bit shift amount
	fmtS                    // rs1, rs2, split store immediate
	fmtB                    // rs1, rs2, scrambled branch offset
	fmtU                    // rd, imm[31:12] shifted up
	fmtJ                    // rd, scrambled jump offset
	fmtAmo                  // rd, rs1, rs2; aq/rl ignored
	fmtFp                   // rd, rs1, rs2, rm from funct3
	fmtFp1                  // rd, rs1, rm from funct3; rs2 is a function code
	fmtCSR                  // rd, rs1, csr number
	fmtCSRI                 // rd, zimm in Imm, csr number
	fmtNone                 // no fields
)

// Field masks shared by the patterns. A pattern claims a word when
// word&mask == match; every fixed bit of the encoding is in the mask, so the
// table is order independent.
const (
	maskOp     = 0x0000007f // opcode only
	maskOpF3   = 0x0000707f // opcode + funct3
	maskOpF3F7 = 0xfe00707f // opcode + funct3 + funct7
	maskShift  = 0xfc00707f // opcode + funct3 + funct6 (64-bit shamt)
	maskAmo    = 0xf800707f // opcode + funct3 + funct5
	maskLr     = 0xf9f0707f // amo mask + rs2 = 0
	maskFp     = 0xfe00007f // opcode + funct7 (rm free)
	maskFpF3   = 0xfe00707f // opcode + funct3 + funct7
	maskFp1    = 0xfff0007f // opcode + funct7 + rs2 (rm free)
	maskFpMv   = 0xfff0707f // opcode + funct3 + funct7 + rs2
	maskFull   = 0xffffffff
)

type pattern struct {
	mask   uint32
	match  uint32
	kind   Kind
	format format
}

// patterns is the RV64IMAFD + Zicsr + Zifencei encoding table. Grouped by
// extension; within a group, by major opcode.
var patterns = []pattern{
	// RV64I
	{maskOp, 0x00000037, LUI, fmtU},
	{maskOp, 0x00000017, AUIPC, fmtU},
	{maskOp, 0x0000006f, JAL, fmtJ},
	{maskOpF3, 0x00000067, JALR, fmtI},
	{maskOpF3, 0x00000063, BEQ, fmtB},
	{maskOpF3, 0x00001063, BNE, fmtB},
	{maskOpF3, 0x00004063, BLT, fmtB},
	{maskOpF3, 0x00005063, BGE, fmtB},
	{maskOpF3, 0x00006063, BLTU, fmtB},
	{maskOpF3, 0x00007063, BGEU, fmtB},
	{maskOpF3, 0x00000003, LB, fmtI},
	{maskOpF3, 0x00001003, LH, fmtI},
	{maskOpF3, 0x00002003, LW, fmtI},
	{maskOpF3, 0x00003003, LD, fmtI},
	{maskOpF3, 0x00004003, LBU, fmtI},
	{maskOpF3, 0x00005003, LHU, fmtI},
	{maskOpF3, 0x00006003, LWU, fmtI},
	{maskOpF3, 0x00000023, SB, fmtS},
	{maskOpF3, 0x00001023, SH, fmtS},
	{maskOpF3, 0x00002023, SW, fmtS},
	{maskOpF3, 0x00003023, SD, fmtS},
	{maskOpF3, 0x00000013, ADDI, fmtI},
	{maskOpF3, 0x00002013, SLTI, fmtI},
	{maskOpF3, 0x00003013, SLTIU, fmtI},
	{maskOpF3, 0x00004013, XORI, fmtI},
	{maskOpF3, 0x00006013, ORI, fmtI},
	{maskOpF3, 0x00007013, ANDI, fmtI},
	{maskShift, 0x00001013, SLLI, fmtShift},
	{maskShift, 0x00005013, SRLI, fmtShift},
	{maskShift, 0x40005013, SRAI, fmtShift},
	{maskOpF3F7, 0x00000033, ADD, fmtR},
	{maskOpF3F7, 0x40000033, SUB, fmtR},
	{maskOpF3F7, 0x00001033, SLL, fmtR},
	{maskOpF3F7, 0x00002033, SLT, fmtR},
	{maskOpF3F7, 0x00003033, SLTU, fmtR},
	{maskOpF3F7, 0x00004033, XOR, fmtR},
	{maskOpF3F7, 0x00005033, SRL, fmtR},
	{maskOpF3F7, 0x40005033, SRA, fmtR},
	{maskOpF3F7, 0x00006033, OR, fmtR},
	{maskOpF3F7, 0x00007033, AND, fmtR},
	{maskOpF3, 0x0000001b, ADDIW, fmtI},
	{maskOpF3F7, 0x0000101b, SLLIW, fmtShiftW},
	{maskOpF3F7, 0x0000501b, SRLIW, fmtShiftW},
	{maskOpF3F7, 0x4000501b, SRAIW, fmtShiftW},
	{maskOpF3F7, 0x0000003b, ADDW, fmtR},
	{maskOpF3F7, 0x4000003b, SUBW, fmtR},
	{maskOpF3F7, 0x0000103b, SLLW, fmtR},
	{maskOpF3F7, 0x0000503b, SRLW, fmtR},
	{maskOpF3F7, 0x4000503b, SRAW, fmtR},
	{maskOpF3, 0x0000000f, FENCE, fmtNone},
	{maskOpF3, 0x0000100f, FENCE_I, fmtNone},
	{maskFull, 0x00000073, ECALL, fmtNone},
	{maskFull, 0x00100073, EBREAK, fmtNone},
	{maskOpF3, 0x00001073, CSRRW, fmtCSR},
	{maskOpF3, 0x00002073, CSRRS, fmtCSR},
	{maskOpF3, 0x00003073, CSRRC, fmtCSR},
	{maskOpF3, 0x00005073, CSRRWI, fmtCSRI},
	{maskOpF3, 0x00006073, CSRRSI, fmtCSRI},
	{maskOpF3, 0x00007073, CSRRCI, fmtCSRI},

	// RV64M
	{maskOpF3F7, 0x02000033, MUL, fmtR},
	{maskOpF3F7, 0x02001033, MULH, fmtR},
	{maskOpF3F7, 0x02002033, MULHSU, fmtR},
	{maskOpF3F7, 0x02003033, MULHU, fmtR},
	{maskOpF3F7, 0x02004033, DIV, fmtR},
	{maskOpF3F7, 0x02005033, DIVU, fmtR},
	{maskOpF3F7, 0x02006033, REM, fmtR},
	{maskOpF3F7, 0x02007033, REMU, fmtR},
	{maskOpF3F7, 0x0200003b, MULW, fmtR},
	{maskOpF3F7, 0x0200403b, DIVW, fmtR},
	{maskOpF3F7, 0x0200503b, DIVUW, fmtR},
	{maskOpF3F7, 0x0200603b, REMW, fmtR},
	{maskOpF3F7, 0x0200703b, REMUW, fmtR},

	// RV64A
	{maskLr, 0x1000202f, LR_W, fmtAmo},
	{maskAmo, 0x1800202f, SC_W, fmtAmo},
	{maskAmo, 0x0800202f, AMOSWAP_W, fmtAmo},
	{maskAmo, 0x0000202f, AMOADD_W, fmtAmo},
	{maskAmo, 0x2000202f, AMOXOR_W, fmtAmo},
	{maskAmo, 0x6000202f, AMOAND_W, fmtAmo},
	{maskAmo, 0x4000202f, AMOOR_W, fmtAmo},
	{maskAmo, 0x8000202f, AMOMIN_W, fmtAmo},
	{maskAmo, 0xa000202f, AMOMAX_W, fmtAmo},
	{maskAmo, 0xc000202f, AMOMINU_W, fmtAmo},
	{maskAmo, 0xe000202f, AMOMAXU_W, fmtAmo},
	{maskLr, 0x1000302f, LR_D, fmtAmo},
	{maskAmo, 0x1800302f, SC_D, fmtAmo},
	{maskAmo, 0x0800302f, AMOSWAP_D, fmtAmo},
	{maskAmo, 0x0000302f, AMOADD_D, fmtAmo},
	{maskAmo, 0x2000302f, AMOXOR_D, fmtAmo},
	{maskAmo, 0x6000302f, AMOAND_D, fmtAmo},
	{maskAmo, 0x4000302f, AMOOR_D, fmtAmo},
	{maskAmo, 0x8000302f, AMOMIN_D, fmtAmo},
	{maskAmo, 0xa000302f, AMOMAX_D, fmtAmo},
	{maskAmo, 0xc000302f, AMOMINU_D, fmtAmo},
	{maskAmo, 0xe000302f, AMOMAXU_D, fmtAmo},

	// RV64F
	{maskOpF3, 0x00002007, FLW, fmtI},
	{maskOpF3, 0x00002027, FSW, fmtS},
	{maskFp, 0x00000053, FADD_S, fmtFp},
	{maskFp, 0x08000053, FSUB_S, fmtFp},
	{maskFp, 0x10000053, FMUL_S, fmtFp},
	{maskFp, 0x18000053, FDIV_S, fmtFp},
	{maskFp1, 0x58000053, FSQRT_S, fmtFp1},
	{maskFpF3, 0x20000053, FSGNJ_S, fmtR},
	{maskFpF3, 0x20001053, FSGNJN_S, fmtR},
	{maskFpF3, 0x20002053, FSGNJX_S, fmtR},
	{maskFpF3, 0x28000053, FMIN_S, fmtR},
	{maskFpF3, 0x28001053, FMAX_S, fmtR},
	{maskFpF3, 0xa0002053, FEQ_S, fmtR},
	{maskFpF3, 0xa0001053, FLT_S, fmtR},
	{maskFpF3, 0xa0000053, FLE_S, fmtR},
	{maskFp1, 0xc0000053, FCVT_W_S, fmtFp1},
	{maskFp1, 0xc0100053, FCVT_WU_S, fmtFp1},
	{maskFp1, 0xc0200053, FCVT_L_S, fmtFp1},
	{maskFp1, 0xc0300053, FCVT_LU_S, fmtFp1},
	{maskFp1, 0xd0000053, FCVT_S_W, fmtFp1},
	{maskFp1, 0xd0100053, FCVT_S_WU, fmtFp1},
	{maskFp1, 0xd0200053, FCVT_S_L, fmtFp1},
	{maskFp1, 0xd0300053, FCVT_S_LU, fmtFp1},
	{maskFpMv, 0xe0000053, FMV_X_W, fmtR},
	{maskFpMv, 0xf0000053, FMV_W_X, fmtR},

	// RV64D
	{maskOpF3, 0x00003007, FLD, fmtI},
	{maskOpF3, 0x00003027, FSD, fmtS},
	{maskFp, 0x02000053, FADD_D, fmtFp},
	{maskFp, 0x0a000053, FSUB_D, fmtFp},
	{maskFp, 0x12000053, FMUL_D, fmtFp},
	{maskFp, 0x1a000053, FDIV_D, fmtFp},
	{maskFp1, 0x5a000053, FSQRT_D, fmtFp1},
	{maskFpF3, 0x22000053, FSGNJ_D, fmtR},
	{maskFpF3, 0x22001053, FSGNJN_D, fmtR},
	{maskFpF3, 0x22002053, FSGNJX_D, fmtR},
	{maskFpF3, 0x2a000053, FMIN_D, fmtR},
	{maskFpF3, 0x2a001053, FMAX_D, fmtR},
	{maskFpF3, 0xa2002053, FEQ_D, fmtR},
	{maskFpF3, 0xa2001053, FLT_D, fmtR},
	{maskFpF3, 0xa2000053, FLE_D, fmtR},
	{maskFp1, 0xc2000053, FCVT_W_D, fmtFp1},
	{maskFp1, 0xc2100053, FCVT_WU_D, fmtFp1},
	{maskFp1, 0xc2200053, FCVT_L_D, fmtFp1},
	{maskFp1, 0xc2300053, FCVT_LU_D, fmtFp1},
	{maskFp1, 0xd2000053, FCVT_D_W, fmtFp1},
	{maskFp1, 0xd2100053, FCVT_D_WU, fmtFp1},
	{maskFp1, 0xd2200053, FCVT_D_L, fmtFp1},
	{maskFp1, 0xd2300053, FCVT_D_LU, fmtFp1},
	{maskFp1, 0x40100053, FCVT_S_D, fmtFp1},
	{maskFp1, 0x42000053, FCVT_D_S, fmtFp1},
	{maskFpMv, 0xe2000053, FMV_X_D, fmtR},
	{maskFpMv, 0xf2000053, FMV_D_X, fmtR},
}
