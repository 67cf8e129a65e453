package decode

// Kind identifies one instruction of the RV64IMAFDC sets after decoding.
// Compressed instructions decode to the kind of their 32-bit equivalent.
type Kind int

const (
	KIND_INVALID Kind = iota

	// RV64I
	LUI
	AUIPC
	JAL
	JALR
	BEQ
	BNE
	BLT
	BGE
	BLTU
	BGEU
	LB
	LH
	LW
	LD
	LBU
	LHU
	LWU
	SB
	SH
	SW
	SD
	ADDI
	SLTI
	SLTIU
	XORI
	ORI
	ANDI
	SLLI
	SRLI
	SRAI
	ADD
	SUB
	SLL
	SLT
	SLTU
	XOR
	SRL
	SRA
	OR
	AND
	ADDIW
	SLLIW
	SRLIW
	SRAIW
	ADDW
	SUBW
	SLLW
	SRLW
	SRAW
	FENCE
	FENCE_I
	ECALL
	EBREAK
	CSRRW
	CSRRS
	CSRRC
	CSRRWI
	CSRRSI
	CSRRCI

	// RV64M
	MUL
	MULH
	MULHSU
	MULHU
	DIV
	DIVU
	REM
	REMU
	MULW
	DIVW
	DIVUW
	REMW
	REMUW

	// RV64A
	LR_W
	SC_W
	AMOSWAP_W
	AMOADD_W
	AMOXOR_W
	AMOAND_W
	AMOOR_W
	AMOMIN_W
	AMOMAX_W
	AMOMINU_W
	AMOMAXU_W
	LR_D
	SC_D
	AMOSWAP_D
	AMOADD_D
	AMOXOR_D
	AMOAND_D
	AMOOR_D
	AMOMIN_D
	AMOMAX_D
	AMOMINU_D
	AMOMAXU_D

	// RV64F / RV64D
	FLW
	FSW
	FLD
	FSD
	FADD_S
	FSUB_S
	FMUL_S
	FDIV_S
	FSQRT_S
	FSGNJ_S
	FSGNJN_S
	FSGNJX_S
	FMIN_S
	FMAX_S
	FEQ_S
	FLT_S
	FLE_S
	FADD_D
	FSUB_D
	FMUL_D
	FDIV_D
	FSQRT_D
	FSGNJ_D
	FSGNJN_D
	FSGNJX_D
	FMIN_D
	FMAX_D
	FEQ_D
	FLT_D
	FLE_D
	FCVT_W_S
	FCVT_WU_S
	FCVT_L_S
	FCVT_LU_S
	FCVT_S_W
	FCVT_S_WU
	FCVT_S_L
	FCVT_S_LU
	FCVT_W_D
	FCVT_WU_D
	FCVT_L_D
	FCVT_LU_D
	FCVT_D_W
	FCVT_D_WU
	FCVT_D_L
	FCVT_D_LU
	FCVT_S_D
	FCVT_D_S
	FMV_X_W
	FMV_W_X
	FMV_X_D
	FMV_D_X

	KIND_MAX
)

var kindNames = [KIND_MAX]string{
	KIND_INVALID: "invalid",
	LUI:          "lui",
	AUIPC:        "auipc",
	JAL:          "jal",
	JALR:         "jalr",
	BEQ:          "beq",
	BNE:          "bne",
	BLT:          "blt",
	BGE:          "bge",
	BLTU:         "bltu",
	BGEU:         "bgeu",
	LB:           "lb",
	LH:           "lh",
	LW:           "lw",
	LD:           "ld",
	LBU:          "lbu",
	LHU:          "lhu",
	LWU:          "lwu",
	SB:           "sb",
	SH:           "sh",
	SW:           "sw",
	SD:           "sd",
	ADDI:         "addi",
	SLTI:         "slti",
	SLTIU:        "sltiu",
	XORI:         "xori",
	ORI:          "ori",
	ANDI:         "andi",
	SLLI:         "slli",
	SRLI:         "srli",
	SRAI:         "srai",
	ADD:          "add",
	SUB:          "sub",
	SLL:          "sll",
	SLT:          "slt",
	SLTU:         "sltu",
	XOR:          "xor",
	SRL:          "srl",
	SRA:          "sra",
	OR:           "or",
	AND:          "and",
	ADDIW:        "addiw",
	SLLIW:        "slliw",
	SRLIW:        "srliw",
	SRAIW:        "sraiw",
	ADDW:         "addw",
	SUBW:         "subw",
	SLLW:         "sllw",
	SRLW:         "srlw",
	SRAW:         "sraw",
	FENCE:        "fence",
	FENCE_I:      "fence.i",
	ECALL:        "ecall",
	EBREAK:       "ebreak",
	CSRRW:        "csrrw",
	CSRRS:        "csrrs",
	CSRRC:        "csrrc",
	CSRRWI:       "csrrwi",
	CSRRSI:       "csrrsi",
	CSRRCI:       "csrrci",
	MUL:          "mul",
	MULH:         "mulh",
	MULHSU:       "mulhsu",
	MULHU:        "mulhu",
	DIV:          "div",
	DIVU:         "divu",
	REM:          "rem",
	REMU:         "remu",
	MULW:         "mulw",
	DIVW:         "divw",
	DIVUW:        "divuw",
	REMW:         "remw",
	REMUW:        "remuw",
	LR_W:         "lr.w",
	SC_W:         "sc.w",
	AMOSWAP_W:    "amoswap.w",
	AMOADD_W:     "amoadd.w",
	AMOXOR_W:     "amoxor.w",
	AMOAND_W:     "amoand.w",
	AMOOR_W:      "amoor.w",
	AMOMIN_W:     "amomin.w",
	AMOMAX_W:     "amomax.w",
	AMOMINU_W:    "amominu.w",
	AMOMAXU_W:    "amomaxu.w",
	LR_D:         "lr.d",
	SC_D:         "sc.d",
	AMOSWAP_D:    "amoswap.d",
	AMOADD_D:     "amoadd.d",
	AMOXOR_D:     "amoxor.d",
	AMOAND_D:     "amoand.d",
	AMOOR_D:      "amoor.d",
	AMOMIN_D:     "amomin.d",
	AMOMAX_D:     "amomax.d",
	AMOMINU_D:    "amominu.d",
	AMOMAXU_D:    "amomaxu.d",
	FLW:          "flw",
	FSW:          "fsw",
	FLD:          "fld",
	FSD:          "fsd",
	FADD_S:       "fadd.s",
	FSUB_S:       "fsub.s",
	FMUL_S:       "fmul.s",
	FDIV_S:       "fdiv.s",
	FSQRT_S:      "fsqrt.s",
	FSGNJ_S:      "fsgnj.s",
	FSGNJN_S:     "fsgnjn.s",
	FSGNJX_S:     "fsgnjx.s",
	FMIN_S:       "fmin.s",
	FMAX_S:       "fmax.s",
	FEQ_S:        "feq.s",
	FLT_S:        "flt.s",
	FLE_S:        "fle.s",
	FADD_D:       "fadd.d",
	FSUB_D:       "fsub.d",
	FMUL_D:       "fmul.d",
	FDIV_D:       "fdiv.d",
	FSQRT_D:      "fsqrt.d",
	FSGNJ_D:      "fsgnj.d",
	FSGNJN_D:     "fsgnjn.d",
	FSGNJX_D:     "fsgnjx.d",
	FMIN_D:       "fmin.d",
	FMAX_D:       "fmax.d",
	FEQ_D:        "feq.d",
	FLT_D:        "flt.d",
	FLE_D:        "fle.d",
	FCVT_W_S:     "fcvt.w.s",
	FCVT_WU_S:    "fcvt.wu.s",
	FCVT_L_S:     "fcvt.l.s",
	FCVT_LU_S:    "fcvt.lu.s",
	FCVT_S_W:     "fcvt.s.w",
	FCVT_S_WU:    "fcvt.s.wu",
	FCVT_S_L:     "fcvt.s.l",
	FCVT_S_LU:    "fcvt.s.lu",
	FCVT_W_D:     "fcvt.w.d",
	FCVT_WU_D:    "fcvt.wu.d",
	FCVT_L_D:     "fcvt.l.d",
	FCVT_LU_D:    "fcvt.lu.d",
	FCVT_D_W:     "fcvt.d.w",
	FCVT_D_WU:    "fcvt.d.wu",
	FCVT_D_L:     "fcvt.d.l",
	FCVT_D_LU:    "fcvt.d.lu",
	FCVT_S_D:     "fcvt.s.d",
	FCVT_D_S:     "fcvt.d.s",
	FMV_X_W:      "fmv.x.w",
	FMV_W_X:      "fmv.w.x",
	FMV_X_D:      "fmv.x.d",
	FMV_D_X:      "fmv.d.x",
}

func (k Kind) String() string {
	if k < 0 || k >= KIND_MAX {
		return f("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Insn is one decoded instruction in normalized form: register indices and
// the immediate are extracted per the pattern's format, already sign extended
// and scaled where the encoding calls for it.
type Insn struct {
	Raw  uint32 // original opcode word (expanded form for compressed)
	Len  uint64 // bytes occupied in the instruction stream, 2 or 4
	Kind Kind

	Rd  int
	Rs1 int
	Rs2 int
	Imm int64

	Rm  int    // rounding-mode field of floating-point formats
	CSR uint16 // CSR number of the Zicsr formats
}

func (in Insn) String() string {
	return f("%s rd=%d rs1=%d rs2=%d imm=%d", in.Kind, in.Rd, in.Rs1, in.Rs2, in.Imm)
}
