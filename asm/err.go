package asm

import (
	"errors"

	"github.com/ezrec/rvjit/localize"
)

var f = localize.From

var (
	ErrEquateSyntax    = errors.New(f("expected: .equ NAME VALUE"))
	ErrEquateDuplicate = errors.New(f("equate redefined"))
	ErrLabelDuplicate  = errors.New(f("label redefined"))
	ErrOperandCount    = errors.New(f("wrong number of operands"))
)

// ErrSyntax wraps any parse error with its source position.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %v: %v: %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrMnemonic reports an unknown instruction mnemonic.
type ErrMnemonic string

func (err ErrMnemonic) Error() string {
	return f("unknown mnemonic %q", string(err))
}

func (err ErrMnemonic) Is(other error) (ok bool) {
	_, ok = other.(ErrMnemonic)
	return
}

// ErrRegister reports an unknown register name.
type ErrRegister string

func (err ErrRegister) Error() string {
	return f("unknown register %q", string(err))
}

func (err ErrRegister) Is(other error) (ok bool) {
	_, ok = other.(ErrRegister)
	return
}

// ErrParseNumber reports an unparseable numeric literal.
type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("cannot parse number %q", string(err))
}

func (err ErrParseNumber) Is(other error) (ok bool) {
	_, ok = other.(ErrParseNumber)
	return
}

// ErrParseExpression reports a $() expression that did not evaluate to an
// integer.
type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("cannot evaluate expression %q", string(err))
}

func (err ErrParseExpression) Is(other error) (ok bool) {
	_, ok = other.(ErrParseExpression)
	return
}

// ErrImmRange reports an immediate or offset outside its encodable range.
type ErrImmRange int64

func (err ErrImmRange) Error() string {
	return f("immediate %v out of range", int64(err))
}

func (err ErrImmRange) Is(other error) (ok bool) {
	_, ok = other.(ErrImmRange)
	return
}

// ErrLabelMissing reports a reference to an undefined label.
type ErrLabelMissing string

func (err ErrLabelMissing) Error() string {
	return f("undefined label %q", string(err))
}

func (err ErrLabelMissing) Is(other error) (ok bool) {
	_, ok = other.(ErrLabelMissing)
	return
}
