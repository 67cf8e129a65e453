package decode

// RV64C expansion. Each compressed instruction is rewritten into its 32-bit
// equivalent word, which then decodes through the standard table. The 3-bit
// register fields of the quadrant-0/1 forms address x8..x15 (f8..f15).

func sext(v uint32, bits int) int64 {
	return int64(int32(v<<(32-bits))) >> (32 - bits)
}

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

// expand rewrites a 16-bit instruction into its 32-bit equivalent. ok is
// false for the all-zeros word and the reserved encodings.
func expand(half uint16) (raw uint32, ok bool) {
	if half == 0 {
		return 0, false
	}

	h := uint32(half)
	f3 := h >> 13 & 0x7
	rc1 := 8 + int(h>>7&0x7) // rs1'/rd' of the three-bit forms
	rc2 := 8 + int(h>>2&0x7) // rs2'/rd' of the three-bit forms
	rd := int(h >> 7 & 0x1f) // full-width rd/rs1 of quadrants 1 and 2
	rs2 := int(h >> 2 & 0x1f)

	switch h & 0x3 {
	case 0: // quadrant 0: wide-immediate and three-bit memory forms
		switch f3 {
		case 0: // c.addi4spn
			imm := int64(h>>7&0xf)<<6 | int64(h>>11&0x3)<<4 |
				int64(h>>5&0x1)<<3 | int64(h>>6&0x1)<<2
			if imm == 0 {
				return 0, false
			}
			return encI(0x13, 0, rc2, 2, imm), true
		case 1: // c.fld
			imm := int64(h>>10&0x7)<<3 | int64(h>>5&0x3)<<6
			return encI(0x07, 3, rc2, rc1, imm), true
		case 2: // c.lw
			imm := int64(h>>10&0x7)<<3 | int64(h>>6&0x1)<<2 | int64(h>>5&0x1)<<6
			return encI(0x03, 2, rc2, rc1, imm), true
		case 3: // c.ld
			imm := int64(h>>10&0x7)<<3 | int64(h>>5&0x3)<<6
			return encI(0x03, 3, rc2, rc1, imm), true
		case 5: // c.fsd
			imm := int64(h>>10&0x7)<<3 | int64(h>>5&0x3)<<6
			return encS(0x27, 3, rc1, rc2, imm), true
		case 6: // c.sw
			imm := int64(h>>10&0x7)<<3 | int64(h>>6&0x1)<<2 | int64(h>>5&0x1)<<6
			return encS(0x23, 2, rc1, rc2, imm), true
		case 7: // c.sd
			imm := int64(h>>10&0x7)<<3 | int64(h>>5&0x3)<<6
			return encS(0x23, 3, rc1, rc2, imm), true
		}
		return 0, false

	case 1: // quadrant 1: immediates, control flow, three-bit ALU forms
		imm6 := sext((h>>12&0x1)<<5|h>>2&0x1f, 6)
		switch f3 {
		case 0: // c.addi / c.nop
			return encI(0x13, 0, rd, rd, imm6), true
		case 1: // c.addiw
			if rd == 0 {
				return 0, false
			}
			return encI(0x1b, 0, rd, rd, imm6), true
		case 2: // c.li
			return encI(0x13, 0, rd, 0, imm6), true
		case 3:
			if rd == 2 { // c.addi16sp
				imm := sext((h>>12&0x1)<<9|(h>>6&0x1)<<4|(h>>5&0x1)<<6|
					(h>>3&0x3)<<7|(h>>2&0x1)<<5, 10)
				if imm == 0 {
					return 0, false
				}
				return encI(0x13, 0, 2, 2, imm), true
			}
			// c.lui
			imm := sext((h>>12&0x1)<<17|(h>>2&0x1f)<<12, 18)
			if rd == 0 || imm == 0 {
				return 0, false
			}
			return encU(0x37, rd, imm), true
		case 4:
			switch h >> 10 & 0x3 {
			case 0: // c.srli
				return encI(0x13, 5, rc1, rc1, imm6&0x3f), true
			case 1: // c.srai
				return encI(0x13, 5, rc1, rc1, 0x400|imm6&0x3f), true
			case 2: // c.andi
				return encI(0x13, 7, rc1, rc1, imm6), true
			}
			if h>>12&0x1 == 0 {
				switch h >> 5 & 0x3 {
				case 0: // c.sub
					return encR(0x33, 0, 0x20, rc1, rc1, rc2), true
				case 1: // c.xor
					return encR(0x33, 4, 0, rc1, rc1, rc2), true
				case 2: // c.or
					return encR(0x33, 6, 0, rc1, rc1, rc2), true
				case 3: // c.and
					return encR(0x33, 7, 0, rc1, rc1, rc2), true
				}
			}
			switch h >> 5 & 0x3 {
			case 0: // c.subw
				return encR(0x3b, 0, 0x20, rc1, rc1, rc2), true
			case 1: // c.addw
				return encR(0x3b, 0, 0, rc1, rc1, rc2), true
			}
			return 0, false
		case 5: // c.j
			imm := sext((h>>12&0x1)<<11|(h>>11&0x1)<<4|(h>>9&0x3)<<8|
				(h>>8&0x1)<<10|(h>>7&0x1)<<6|(h>>6&0x1)<<7|
				(h>>3&0x7)<<1|(h>>2&0x1)<<5, 12)
			return encJ(0x6f, 0, imm), true
		case 6, 7: // c.beqz / c.bnez
			imm := sext((h>>12&0x1)<<8|(h>>10&0x3)<<3|(h>>5&0x3)<<6|
				(h>>3&0x3)<<1|(h>>2&0x1)<<5, 9)
			return encB(0x63, f3&0x1, rc1, 0, imm), true
		}
		return 0, false

	default: // quadrant 2: stack-relative memory and full-width ALU forms
		switch f3 {
		case 0: // c.slli
			return encI(0x13, 1, rd, rd, int64((h>>12&0x1)<<5|h>>2&0x1f)), true
		case 1: // c.fldsp
			imm := int64(h>>12&0x1)<<5 | int64(h>>5&0x3)<<3 | int64(h>>2&0x7)<<6
			return encI(0x07, 3, rd, 2, imm), true
		case 2: // c.lwsp
			if rd == 0 {
				return 0, false
			}
			imm := int64(h>>12&0x1)<<5 | int64(h>>4&0x7)<<2 | int64(h>>2&0x3)<<6
			return encI(0x03, 2, rd, 2, imm), true
		case 3: // c.ldsp
			if rd == 0 {
				return 0, false
			}
			imm := int64(h>>12&0x1)<<5 | int64(h>>5&0x3)<<3 | int64(h>>2&0x7)<<6
			return encI(0x03, 3, rd, 2, imm), true
		case 4:
			if h>>12&0x1 == 0 {
				if rs2 == 0 { // c.jr
					if rd == 0 {
						return 0, false
					}
					return encI(0x67, 0, 0, rd, 0), true
				}
				// c.mv
				return encR(0x33, 0, 0, rd, 0, rs2), true
			}
			if rs2 == 0 {
				if rd == 0 { // c.ebreak
					return 0x00100073, true
				}
				// c.jalr
				return encI(0x67, 0, 1, rd, 0), true
			}
			// c.add
			return encR(0x33, 0, 0, rd, rd, rs2), true
		case 5: // c.fsdsp
			imm := int64(h>>10&0x7)<<3 | int64(h>>7&0x7)<<6
			return encS(0x27, 3, 2, rs2, imm), true
		case 6: // c.swsp
			imm := int64(h>>9&0xf)<<2 | int64(h>>7&0x3)<<6
			return encS(0x23, 2, 2, rs2, imm), true
		default: // c.sdsp
			imm := int64(h>>10&0x7)<<3 | int64(h>>7&0x7)<<6
			return encS(0x23, 3, 2, rs2, imm), true
		}
	}
}
