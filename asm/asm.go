package asm

import (
	"bufio"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates.
var sysEquate = map[string]string{
	"LINENO": "0",
}

// Assembler is a two pass assembler for RV64 text.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string // Predefines
	Label     map[string]uint64 // Map of labels to addresses.
	Equate    map[string]string // Map of equates.

	addr uint64 // placement cursor
	org  uint64 // program origin
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	value, err = strconv.ParseInt(word, 0, 64)
	if err != nil {
		// Large hex literals land above int64; accept the full
		// unsigned range too.
		uvalue, uerr := strconv.ParseUint(word, 0, 64)
		if uerr != nil {
			err = ErrParseNumber(word)
			return
		}
		value, err = int64(uvalue), nil
	}

	return
}

// regOf returns the index of an integer register by numeric or ABI name.
func (asm *Assembler) regOf(word string) (reg int, err error) {
	reg, ok := intRegs[word]
	if !ok {
		err = ErrRegister(word)
	}

	return
}

// csr names the assembler accepts beyond plain numbers.
var csrNames = map[string]int64{
	"fflags":  0x001,
	"frm":     0x002,
	"fcsr":    0x003,
	"cycle":   0xc00,
	"time":    0xc01,
	"instret": 0xc02,
}

func (asm *Assembler) csrOf(word string) (csr int64, err error) {
	csr, ok := csrNames[word]
	if ok {
		return
	}
	csr, err = asm.valueOf(word)
	if err != nil {
		return
	}
	if csr < 0 || csr > 0xfff {
		err = ErrImmRange(csr)
	}

	return
}

// memOf splits an off(reg) operand. The offset may be empty.
func (asm *Assembler) memOf(word string) (off int64, reg int, err error) {
	open := strings.IndexByte(word, '(')
	if open < 0 || !strings.HasSuffix(word, ")") {
		err = ErrRegister(word)
		return
	}
	if open > 0 {
		off, err = asm.valueOf(word[:open])
		if err != nil {
			return
		}
	}
	reg, err = asm.regOf(word[open+1 : len(word)-1])

	return
}

// immFits reports whether a value is representable as a signed
// immediate of the given width.
func immFits(value int64, bits int) bool {
	return value >= -1<<(bits-1) && value < 1<<(bits-1)
}

// parenEval does compile-time $(...) evaluations.
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		value64, verr := asm.valueOf(str)
		if verr != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt64(value64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
	}

	return
}

// parseLine substitutes expressions and equates and splits a line into words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = strconv.Itoa(lineno)

	// Do $() evaluations before commas are stripped, so expressions
	// may contain argument lists.
	re := regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return strconv.FormatInt(value, 10)
	})
	if err != nil {
		return
	}

	line = strings.ReplaceAll(line, ",", " ")
	line = strings.ReplaceAll(line, "\t", " ")

	words = slices.DeleteFunc(strings.Split(line, " "), func(a string) bool { return len(a) == 0 })

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]uint64, 16)
		}
		asm.Label[label] = asm.addr
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Opcode = asm.Opcode[:0]
	asm.addr = 0
	asm.org = 0
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		if n := strings.IndexAny(text, ";#"); n >= 0 {
			text = text[:n]
		}
		line = strings.TrimSpace(text)

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	// Final linking of branch and jump labels.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		if len(op.LinkLabel) == 0 {
			continue
		}
		addr, ok := asm.Label[op.LinkLabel]
		if !ok {
			err = ErrLabelMissing(op.LinkLabel)
			return
		}
		disp := int64(addr - op.Addr)
		switch op.format {
		case fmtBranch:
			if disp&1 != 0 || !immFits(disp, 13) {
				err = ErrImmRange(disp)
				return
			}
			op.Insns[0] |= encB(0, 0, 0, 0, disp)
		case fmtJal:
			if disp&1 != 0 || !immFits(disp, 21) {
				err = ErrImmRange(disp)
				return
			}
			op.Insns[0] |= encJ(0, 0, disp)
		}
	}

	prog = &Program{
		Org:     asm.org,
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var insns []uint32
	var label string
	var mform format

	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := words

	defer func() {
		if len(insns) == 0 {
			return
		}
		opcode := Opcode{LineNo: lineno, Addr: asm.addr, Words: initial_words,
			Insns: insns, LinkLabel: label, format: mform}
		asm.Opcode = append(asm.Opcode, opcode)
		asm.addr += uint64(len(insns)) * 4
	}()

	// Directives first.
	switch words[0] {
	case ".org":
		if len(words) != 2 {
			err = ErrOperandCount
			return
		}
		var org int64
		org, err = asm.valueOf(words[1])
		if err != nil {
			return
		}
		asm.org = uint64(org)
		asm.addr = uint64(org)
		return
	case ".word":
		if len(words) < 2 {
			err = ErrOperandCount
			return
		}
		for _, word := range words[1:] {
			var value int64
			value, err = asm.valueOf(word)
			if err != nil {
				return
			}
			insns = append(insns, uint32(value))
		}
		return
	}

	// Pseudo-instruction substitutions.
	switch {
	case words[0] == "li":
		return asm.parseLi(words, lineno)
	case words[0] == "mv" && len(words) == 3:
		words = []string{"addi", words[1], words[2], "0"}
	case words[0] == "not" && len(words) == 3:
		words = []string{"xori", words[1], words[2], "-1"}
	case words[0] == "neg" && len(words) == 3:
		words = []string{"sub", words[1], "x0", words[2]}
	case words[0] == "j" && len(words) == 2:
		words = []string{"jal", "x0", words[1]}
	case words[0] == "jr" && len(words) == 2:
		words = []string{"jalr", "x0", "0(" + words[1] + ")"}
	case words[0] == "beqz" && len(words) == 3:
		words = []string{"beq", words[1], "x0", words[2]}
	case words[0] == "bnez" && len(words) == 3:
		words = []string{"bne", words[1], "x0", words[2]}
	default:
		// unchanged
	}

	m, ok := mnemonics[words[0]]
	if !ok {
		err = ErrMnemonic(words[0])
		return
	}
	mform = m.format

	operands := len(words) - 1
	var word uint32

	switch m.format {
	case fmtFixed:
		if operands != 0 {
			err = ErrOperandCount
			return
		}
		word = m.word

	case fmtR:
		var rd, rs1, rs2 int
		if rd, rs1, rs2, err = asm.threeRegs(words); err != nil {
			return
		}
		word = encR(m.op, m.f3, m.f7, rd, rs1, rs2)

	case fmtI:
		if operands != 3 {
			err = ErrOperandCount
			return
		}
		var rd, rs1 int
		var imm int64
		if rd, err = asm.regOf(words[1]); err != nil {
			return
		}
		if rs1, err = asm.regOf(words[2]); err != nil {
			return
		}
		if imm, err = asm.valueOf(words[3]); err != nil {
			return
		}
		if !immFits(imm, 12) {
			err = ErrImmRange(imm)
			return
		}
		word = encI(m.op, m.f3, rd, rs1, imm)

	case fmtShift:
		if operands != 3 {
			err = ErrOperandCount
			return
		}
		var rd, rs1 int
		var shamt int64
		if rd, err = asm.regOf(words[1]); err != nil {
			return
		}
		if rs1, err = asm.regOf(words[2]); err != nil {
			return
		}
		if shamt, err = asm.valueOf(words[3]); err != nil {
			return
		}
		max := int64(63)
		if m.op == 0x1b {
			max = 31
		}
		if shamt < 0 || shamt > max {
			err = ErrImmRange(shamt)
			return
		}
		word = encI(m.op, m.f3, rd, rs1, int64(m.f7)<<5|shamt)

	case fmtLoad, fmtJalr:
		if operands != 2 {
			err = ErrOperandCount
			return
		}
		var rd, rs1 int
		var off int64
		if rd, err = asm.regOf(words[1]); err != nil {
			return
		}
		if off, rs1, err = asm.memOf(words[2]); err != nil {
			return
		}
		if !immFits(off, 12) {
			err = ErrImmRange(off)
			return
		}
		word = encI(m.op, m.f3, rd, rs1, off)

	case fmtStore:
		if operands != 2 {
			err = ErrOperandCount
			return
		}
		var rs1, rs2 int
		var off int64
		if rs2, err = asm.regOf(words[1]); err != nil {
			return
		}
		if off, rs1, err = asm.memOf(words[2]); err != nil {
			return
		}
		if !immFits(off, 12) {
			err = ErrImmRange(off)
			return
		}
		word = encS(m.op, m.f3, rs1, rs2, off)

	case fmtBranch:
		if operands != 3 {
			err = ErrOperandCount
			return
		}
		var rs1, rs2 int
		if rs1, err = asm.regOf(words[1]); err != nil {
			return
		}
		if rs2, err = asm.regOf(words[2]); err != nil {
			return
		}
		var disp int64
		disp, label, err = asm.targetOf(words[3], 13)
		if err != nil {
			return
		}
		word = encB(m.op, m.f3, rs1, rs2, disp)

	case fmtU:
		if operands != 2 {
			err = ErrOperandCount
			return
		}
		var rd int
		var imm int64
		if rd, err = asm.regOf(words[1]); err != nil {
			return
		}
		if imm, err = asm.valueOf(words[2]); err != nil {
			return
		}
		if imm < -0x80000 || imm > 0xfffff {
			err = ErrImmRange(imm)
			return
		}
		word = encU(m.op, rd, imm<<12)

	case fmtJal:
		if operands != 2 {
			err = ErrOperandCount
			return
		}
		var rd int
		if rd, err = asm.regOf(words[1]); err != nil {
			return
		}
		var disp int64
		disp, label, err = asm.targetOf(words[2], 21)
		if err != nil {
			return
		}
		word = encJ(m.op, rd, disp)

	case fmtLr:
		if operands != 2 {
			err = ErrOperandCount
			return
		}
		var rd, rs1 int
		var off int64
		if rd, err = asm.regOf(words[1]); err != nil {
			return
		}
		if off, rs1, err = asm.memOf(words[2]); err != nil {
			return
		}
		if off != 0 {
			err = ErrImmRange(off)
			return
		}
		word = encR(m.op, m.f3, m.f7, rd, rs1, 0)

	case fmtAmo:
		if operands != 3 {
			err = ErrOperandCount
			return
		}
		var rd, rs1, rs2 int
		var off int64
		if rd, err = asm.regOf(words[1]); err != nil {
			return
		}
		if rs2, err = asm.regOf(words[2]); err != nil {
			return
		}
		if off, rs1, err = asm.memOf(words[3]); err != nil {
			return
		}
		if off != 0 {
			err = ErrImmRange(off)
			return
		}
		word = encR(m.op, m.f3, m.f7, rd, rs1, rs2)

	case fmtCsr:
		if operands != 3 {
			err = ErrOperandCount
			return
		}
		var rd, rs1 int
		var csr int64
		if rd, err = asm.regOf(words[1]); err != nil {
			return
		}
		if csr, err = asm.csrOf(words[2]); err != nil {
			return
		}
		if rs1, err = asm.regOf(words[3]); err != nil {
			return
		}
		word = encI(m.op, m.f3, rd, rs1, csr)

	case fmtCsrI:
		if operands != 3 {
			err = ErrOperandCount
			return
		}
		var rd int
		var csr, zimm int64
		if rd, err = asm.regOf(words[1]); err != nil {
			return
		}
		if csr, err = asm.csrOf(words[2]); err != nil {
			return
		}
		if zimm, err = asm.valueOf(words[3]); err != nil {
			return
		}
		if zimm < 0 || zimm > 31 {
			err = ErrImmRange(zimm)
			return
		}
		word = encI(m.op, m.f3, rd, int(zimm), csr)
	}

	insns = append(insns, word)

	return
}

// threeRegs parses the rd, rs1, rs2 operand form.
func (asm *Assembler) threeRegs(words []string) (rd, rs1, rs2 int, err error) {
	if len(words) != 4 {
		err = ErrOperandCount
		return
	}
	if rd, err = asm.regOf(words[1]); err != nil {
		return
	}
	if rs1, err = asm.regOf(words[2]); err != nil {
		return
	}
	rs2, err = asm.regOf(words[3])

	return
}

// targetOf resolves a branch or jump target: a numeric displacement is
// encoded directly, anything else links against the label table later.
func (asm *Assembler) targetOf(word string, bits int) (disp int64, label string, err error) {
	disp, verr := asm.valueOf(word)
	if verr != nil {
		label = word
		disp = 0
		return
	}
	if disp&1 != 0 || !immFits(disp, bits) {
		err = ErrImmRange(disp)
	}

	return
}

// parseLi expands the li pseudo-instruction. Values that fit twelve bits
// become a single addi; 32-bit values a lui and addiw pair.
func (asm *Assembler) parseLi(words []string, lineno int) (err error) {
	if len(words) != 3 {
		err = ErrOperandCount
		return
	}
	var imm int64
	if _, err = asm.regOf(words[1]); err != nil {
		return
	}
	if imm, err = asm.valueOf(words[2]); err != nil {
		return
	}

	switch {
	case immFits(imm, 12):
		return asm.parseWords([]string{"addi", words[1], "x0", words[2]}, lineno)
	case immFits(imm, 32):
		hi := (imm + 0x800) >> 12
		lo := imm - hi<<12
		err = asm.parseWords([]string{"lui", words[1], strconv.FormatInt(hi, 10)}, lineno)
		if err != nil {
			return
		}
		return asm.parseWords([]string{"addiw", words[1], words[1], strconv.FormatInt(lo, 10)}, lineno)
	}

	err = ErrImmRange(imm)

	return
}
