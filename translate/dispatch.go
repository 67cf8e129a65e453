package translate

import (
	"github.com/ezrec/rvjit/decode"
	"github.com/ezrec/rvjit/hart"
)

type handler struct {
	fn   func(*Context, decode.Insn)
	need hart.Flags
}

func base(fn func(*Context, decode.Insn)) handler {
	return handler{fn: fn, need: hart.FLAG_RVI}
}

func ext(fn func(*Context, decode.Insn), need hart.Flags) handler {
	return handler{fn: fn, need: need}
}

var handlers map[decode.Kind]handler

func init() {
	handlers = map[decode.Kind]handler{
		decode.LUI:   base(genLUI),
		decode.AUIPC: base(genAUIPC),
		decode.JAL:   base(genJAL),
		decode.JALR:  base(genJALR),

		decode.ECALL:   base(genECALL),
		decode.EBREAK:  base(genEBREAK),
		decode.FENCE:   base(genFENCE),
		decode.FENCE_I: base(genFENCEI),
	}

	for _, k := range []decode.Kind{
		decode.BEQ, decode.BNE, decode.BLT,
		decode.BGE, decode.BLTU, decode.BGEU,
	} {
		handlers[k] = base(genBranch)
	}
	for _, k := range []decode.Kind{
		decode.LB, decode.LH, decode.LW, decode.LD,
		decode.LBU, decode.LHU, decode.LWU,
	} {
		handlers[k] = base(genLoad)
	}
	for _, k := range []decode.Kind{
		decode.SB, decode.SH, decode.SW, decode.SD,
	} {
		handlers[k] = base(genStore)
	}
	for _, k := range []decode.Kind{
		decode.ADDI, decode.SLTI, decode.SLTIU, decode.XORI, decode.ORI,
		decode.ANDI, decode.SLLI, decode.SRLI, decode.SRAI,
		decode.ADDIW, decode.SLLIW, decode.SRLIW, decode.SRAIW,
	} {
		handlers[k] = base(genALUImm)
	}
	for _, k := range []decode.Kind{
		decode.ADD, decode.SUB, decode.SLL, decode.SLT, decode.SLTU,
		decode.XOR, decode.SRL, decode.SRA, decode.OR, decode.AND,
		decode.ADDW, decode.SUBW, decode.SLLW, decode.SRLW, decode.SRAW,
	} {
		handlers[k] = base(genALU)
	}
	for _, k := range []decode.Kind{
		decode.CSRRW, decode.CSRRS, decode.CSRRC,
		decode.CSRRWI, decode.CSRRSI, decode.CSRRCI,
	} {
		handlers[k] = base(genCSR)
	}

	for _, k := range []decode.Kind{
		decode.MUL, decode.MULH, decode.MULHU, decode.MULW,
	} {
		handlers[k] = ext(genALU, hart.FLAG_RVM)
	}
	handlers[decode.MULHSU] = ext(genMULHSU, hart.FLAG_RVM)
	for _, k := range []decode.Kind{
		decode.DIV, decode.DIVU, decode.REM, decode.REMU,
		decode.DIVW, decode.DIVUW, decode.REMW, decode.REMUW,
	} {
		handlers[k] = ext(genDivRem, hart.FLAG_RVM)
	}

	handlers[decode.LR_W] = ext(genLR, hart.FLAG_RVA)
	handlers[decode.LR_D] = ext(genLR, hart.FLAG_RVA)
	handlers[decode.SC_W] = ext(genSC, hart.FLAG_RVA)
	handlers[decode.SC_D] = ext(genSC, hart.FLAG_RVA)
	for _, k := range []decode.Kind{
		decode.AMOSWAP_W, decode.AMOADD_W, decode.AMOXOR_W,
		decode.AMOAND_W, decode.AMOOR_W, decode.AMOMIN_W,
		decode.AMOMAX_W, decode.AMOMINU_W, decode.AMOMAXU_W,
		decode.AMOSWAP_D, decode.AMOADD_D, decode.AMOXOR_D,
		decode.AMOAND_D, decode.AMOOR_D, decode.AMOMIN_D,
		decode.AMOMAX_D, decode.AMOMINU_D, decode.AMOMAXU_D,
	} {
		handlers[k] = ext(genAMO, hart.FLAG_RVA)
	}

	handlers[decode.FLW] = ext(genLoad, hart.FLAG_RVF)
	handlers[decode.FSW] = ext(genStore, hart.FLAG_RVF)
	handlers[decode.FLD] = ext(genLoad, hart.FLAG_RVD)
	handlers[decode.FSD] = ext(genStore, hart.FLAG_RVD)

	for _, k := range []decode.Kind{
		decode.FADD_S, decode.FSUB_S, decode.FMUL_S, decode.FDIV_S,
		decode.FSQRT_S, decode.FMIN_S, decode.FMAX_S,
		decode.FEQ_S, decode.FLT_S, decode.FLE_S,
		decode.FCVT_W_S, decode.FCVT_WU_S, decode.FCVT_L_S, decode.FCVT_LU_S,
		decode.FCVT_S_W, decode.FCVT_S_WU, decode.FCVT_S_L, decode.FCVT_S_LU,
	} {
		handlers[k] = ext(genFP, hart.FLAG_RVF)
	}
	for _, k := range []decode.Kind{
		decode.FADD_D, decode.FSUB_D, decode.FMUL_D, decode.FDIV_D,
		decode.FSQRT_D, decode.FMIN_D, decode.FMAX_D,
		decode.FEQ_D, decode.FLT_D, decode.FLE_D,
		decode.FCVT_W_D, decode.FCVT_WU_D, decode.FCVT_L_D, decode.FCVT_LU_D,
		decode.FCVT_D_W, decode.FCVT_D_WU, decode.FCVT_D_L, decode.FCVT_D_LU,
	} {
		handlers[k] = ext(genFP, hart.FLAG_RVD)
	}
	handlers[decode.FCVT_S_D] = ext(genFP, hart.FLAG_RVF|hart.FLAG_RVD)
	handlers[decode.FCVT_D_S] = ext(genFP, hart.FLAG_RVF|hart.FLAG_RVD)

	handlers[decode.FSGNJ_S] = ext(genFSGNJ, hart.FLAG_RVF)
	handlers[decode.FSGNJN_S] = ext(genFSGNJ, hart.FLAG_RVF)
	handlers[decode.FSGNJX_S] = ext(genFSGNJ, hart.FLAG_RVF)
	handlers[decode.FSGNJ_D] = ext(genFSGNJ, hart.FLAG_RVD)
	handlers[decode.FSGNJN_D] = ext(genFSGNJ, hart.FLAG_RVD)
	handlers[decode.FSGNJX_D] = ext(genFSGNJ, hart.FLAG_RVD)

	handlers[decode.FMV_X_W] = ext(genFMV, hart.FLAG_RVF)
	handlers[decode.FMV_W_X] = ext(genFMV, hart.FLAG_RVF)
	handlers[decode.FMV_X_D] = ext(genFMV, hart.FLAG_RVD)
	handlers[decode.FMV_D_X] = ext(genFMV, hart.FLAG_RVD)
}
