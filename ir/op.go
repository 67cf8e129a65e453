package ir

// Op is an IR operation code.
type Op int

const (
	OP_MOVI    = Op(iota) // dst = imm
	OP_MOV                // dst = a
	OP_ADD                // dst = a + b
	OP_SUB                // dst = a - b
	OP_AND                // dst = a & b
	OP_OR                 // dst = a | b
	OP_XOR                // dst = a ^ b
	OP_SHL                // dst = a << b
	OP_SHR                // dst = a >> b (logical)
	OP_SAR                // dst = a >> b (arithmetic)
	OP_MUL                // dst = low64(a * b)
	OP_MULH               // dst = high64(a * b), both signed
	OP_MULHU              // dst = high64(a * b), both unsigned
	OP_DIV                // dst = a / b, signed
	OP_DIVU               // dst = a / b, unsigned
	OP_REM                // dst = a % b, signed
	OP_REMU               // dst = a % b, unsigned
	OP_SETCOND            // dst = (a cond b) ? 1 : 0
	OP_MOVCOND            // dst = (a cond b) ? t : f
	OP_EXTSW              // dst = sign-extend low 32 bits of a
	OP_EXTUW              // dst = zero-extend low 32 bits of a
	OP_LOAD               // dst = mem[a + imm]
	OP_STORE              // mem[a + imm] = b
	OP_CALL               // dst = helper(args...)
	OP_LABEL              // label imm
	OP_BR                 // goto label imm
	OP_BRCOND             // if (a cond b) goto label imm
	OP_CHAIN              // exit, chained to the block at guest address imm
	OP_EXIT               // exit to the dispatcher

	// OP_INSN_START marks the boundary of one guest instruction; imm is its
	// address. The backend uses it to recover the faulting PC when an
	// operation traps mid-block.
	OP_INSN_START
)

var opNames = [...]string{
	OP_MOVI:       "movi",
	OP_MOV:        "mov",
	OP_ADD:        "add",
	OP_SUB:        "sub",
	OP_AND:        "and",
	OP_OR:         "or",
	OP_XOR:        "xor",
	OP_SHL:        "shl",
	OP_SHR:        "shr",
	OP_SAR:        "sar",
	OP_MUL:        "mul",
	OP_MULH:       "mulh",
	OP_MULHU:      "mulhu",
	OP_DIV:        "div",
	OP_DIVU:       "divu",
	OP_REM:        "rem",
	OP_REMU:       "remu",
	OP_SETCOND:    "setcond",
	OP_MOVCOND:    "movcond",
	OP_EXTSW:      "ext32s",
	OP_EXTUW:      "ext32u",
	OP_LOAD:       "load",
	OP_STORE:      "store",
	OP_CALL:       "call",
	OP_LABEL:      "label",
	OP_BR:         "br",
	OP_BRCOND:     "brcond",
	OP_CHAIN:      "chain",
	OP_EXIT:       "exit",
	OP_INSN_START: "insn_start",
}

func (op Op) String() string {
	if op < 0 || int(op) >= len(opNames) {
		return "op?"
	}
	return opNames[op]
}

// Cond is a comparison condition for setcond, movcond and brcond.
type Cond int

//go:generate go tool stringer -linecomment -type=Cond
const (
	COND_EQ  = Cond(0) // eq
	COND_NE  = Cond(1) // ne
	COND_LT  = Cond(2) // lt
	COND_GE  = Cond(3) // ge
	COND_LTU = Cond(4) // ltu
	COND_GEU = Cond(5) // geu
)

// Helper identifies a runtime support routine reachable through OP_CALL.
type Helper int

const (
	HELPER_RAISE  = Helper(iota) // raise guest exception (arg: cause)
	HELPER_SET_RM                // install rounding mode (arg: rm field)
	HELPER_CSRRW                 // swap CSR (args: csr, value, write-enable)
	HELPER_CSRRS                 // set CSR bits (args: csr, mask, write-enable)
	HELPER_CSRRC                 // clear CSR bits (args: csr, mask, write-enable)

	HELPER_FADD_S
	HELPER_FSUB_S
	HELPER_FMUL_S
	HELPER_FDIV_S
	HELPER_FSQRT_S
	HELPER_FMIN_S
	HELPER_FMAX_S
	HELPER_FEQ_S
	HELPER_FLT_S
	HELPER_FLE_S

	HELPER_FADD_D
	HELPER_FSUB_D
	HELPER_FMUL_D
	HELPER_FDIV_D
	HELPER_FSQRT_D
	HELPER_FMIN_D
	HELPER_FMAX_D
	HELPER_FEQ_D
	HELPER_FLT_D
	HELPER_FLE_D

	HELPER_FCVT_W_S
	HELPER_FCVT_WU_S
	HELPER_FCVT_L_S
	HELPER_FCVT_LU_S
	HELPER_FCVT_S_W
	HELPER_FCVT_S_WU
	HELPER_FCVT_S_L
	HELPER_FCVT_S_LU

	HELPER_FCVT_W_D
	HELPER_FCVT_WU_D
	HELPER_FCVT_L_D
	HELPER_FCVT_LU_D
	HELPER_FCVT_D_W
	HELPER_FCVT_D_WU
	HELPER_FCVT_D_L
	HELPER_FCVT_D_LU

	HELPER_FCVT_S_D
	HELPER_FCVT_D_S
)

var helperNames = map[Helper]string{
	HELPER_RAISE:     "raise_exception",
	HELPER_SET_RM:    "set_rounding_mode",
	HELPER_CSRRW:     "csrrw",
	HELPER_CSRRS:     "csrrs",
	HELPER_CSRRC:     "csrrc",
	HELPER_FADD_S:    "fadd_s",
	HELPER_FSUB_S:    "fsub_s",
	HELPER_FMUL_S:    "fmul_s",
	HELPER_FDIV_S:    "fdiv_s",
	HELPER_FSQRT_S:   "fsqrt_s",
	HELPER_FMIN_S:    "fmin_s",
	HELPER_FMAX_S:    "fmax_s",
	HELPER_FEQ_S:     "feq_s",
	HELPER_FLT_S:     "flt_s",
	HELPER_FLE_S:     "fle_s",
	HELPER_FADD_D:    "fadd_d",
	HELPER_FSUB_D:    "fsub_d",
	HELPER_FMUL_D:    "fmul_d",
	HELPER_FDIV_D:    "fdiv_d",
	HELPER_FSQRT_D:   "fsqrt_d",
	HELPER_FMIN_D:    "fmin_d",
	HELPER_FMAX_D:    "fmax_d",
	HELPER_FEQ_D:     "feq_d",
	HELPER_FLT_D:     "flt_d",
	HELPER_FLE_D:     "fle_d",
	HELPER_FCVT_W_S:  "fcvt_w_s",
	HELPER_FCVT_WU_S: "fcvt_wu_s",
	HELPER_FCVT_L_S:  "fcvt_l_s",
	HELPER_FCVT_LU_S: "fcvt_lu_s",
	HELPER_FCVT_S_W:  "fcvt_s_w",
	HELPER_FCVT_S_WU: "fcvt_s_wu",
	HELPER_FCVT_S_L:  "fcvt_s_l",
	HELPER_FCVT_S_LU: "fcvt_s_lu",
	HELPER_FCVT_W_D:  "fcvt_w_d",
	HELPER_FCVT_WU_D: "fcvt_wu_d",
	HELPER_FCVT_L_D:  "fcvt_l_d",
	HELPER_FCVT_LU_D: "fcvt_lu_d",
	HELPER_FCVT_D_W:  "fcvt_d_w",
	HELPER_FCVT_D_WU: "fcvt_d_wu",
	HELPER_FCVT_D_L:  "fcvt_d_l",
	HELPER_FCVT_D_LU: "fcvt_d_lu",
	HELPER_FCVT_S_D:  "fcvt_s_d",
	HELPER_FCVT_D_S:  "fcvt_d_s",
}

func (h Helper) String() string {
	name, ok := helperNames[h]
	if !ok {
		return "helper?"
	}
	return name
}
