package decode

// InsnLen reports the byte length an instruction starting with word occupies:
// 2 for the compressed quadrants, 4 for standard encodings. Only the low 16
// bits of word are consulted.
func InsnLen(word uint32) uint64 {
	if word&0x3 == 0x3 {
		return 4
	}
	return 2
}

// Decode decodes the instruction starting at word, dispatching on its length.
// Compressed instructions are expanded to their 32-bit equivalent first, so
// the returned Insn always carries a standard Kind; Len still reports 2.
func Decode(word uint32) (in Insn, err error) {
	if InsnLen(word) == 2 {
		return Decode16(uint16(word))
	}
	return Decode32(word)
}

// Decode32 matches a 32-bit opcode word against the standard encoding table
// and extracts its fields.
func Decode32(raw uint32) (in Insn, err error) {
	for _, p := range patterns {
		if raw&p.mask == p.match {
			in = extract(raw, p)
			return
		}
	}
	err = ErrDecode(raw)
	return
}

// Decode16 expands a compressed instruction and decodes the expansion.
func Decode16(half uint16) (in Insn, err error) {
	raw, ok := expand(half)
	if !ok {
		err = ErrDecode(uint32(half))
		return
	}
	in, err = Decode32(raw)
	in.Len = 2
	return
}

// extract populates only the fields the matched format defines; bits that
// belong to an immediate never leak into a register index.
func extract(raw uint32, p pattern) (in Insn) {
	in = Insn{Raw: raw, Len: 4, Kind: p.kind}

	rd := int(raw >> 7 & 0x1f)
	rs1 := int(raw >> 15 & 0x1f)
	rs2 := int(raw >> 20 & 0x1f)

	switch p.format {
	case fmtNone:
	case fmtR, fmtAmo:
		in.Rd, in.Rs1, in.Rs2 = rd, rs1, rs2
	case fmtI:
		in.Rd, in.Rs1 = rd, rs1
		in.Imm = int64(int32(raw)) >> 20
	case fmtShift:
		in.Rd, in.Rs1 = rd, rs1
		in.Imm = int64(raw >> 20 & 0x3f)
	case fmtShiftW:
		in.Rd, in.Rs1 = rd, rs1
		in.Imm = int64(raw >> 20 & 0x1f)
	case fmtS:
		in.Rs1, in.Rs2 = rs1, rs2
		in.Imm = int64(int32(raw))>>25<<5 |
			int64(raw>>7&0x1f)
	case fmtB:
		in.Rs1, in.Rs2 = rs1, rs2
		in.Imm = int64(int32(raw))>>31<<12 |
			int64(raw>>7&0x1)<<11 |
			int64(raw>>25&0x3f)<<5 |
			int64(raw>>8&0xf)<<1
	case fmtU:
		in.Rd = rd
		in.Imm = int64(int32(raw & 0xfffff000))
	case fmtJ:
		in.Rd = rd
		in.Imm = int64(int32(raw))>>31<<20 |
			int64(raw>>12&0xff)<<12 |
			int64(raw>>20&0x1)<<11 |
			int64(raw>>21&0x3ff)<<1
	case fmtFp, fmtFp1:
		in.Rd, in.Rs1, in.Rs2 = rd, rs1, rs2
		in.Rm = int(raw >> 12 & 0x7)
	case fmtCSR:
		in.Rd, in.Rs1 = rd, rs1
		in.CSR = uint16(raw >> 20 & 0xfff)
	case fmtCSRI:
		in.Rd = rd
		in.Imm = int64(rs1) // zimm, zero extended
		in.CSR = uint16(raw >> 20 & 0xfff)
	}
	return
}
