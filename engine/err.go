package engine

import (
	"errors"

	"github.com/ezrec/rvjit/ir"
	"github.com/ezrec/rvjit/localize"
)

var f = localize.From

// ErrHalt may be returned by an environment-call handler to stop Run without
// reporting a failure.
var ErrHalt = errors.New("halt")

// ErrNoExit reports a block that ran past its last operation without an
// exit. Translation always terminates blocks; this is an internal defect.
type ErrNoExit uint64

func (err ErrNoExit) Error() string {
	return f("block %#x ended without an exit", uint64(err))
}

func (err ErrNoExit) Is(other error) (ok bool) {
	_, ok = other.(ErrNoExit)
	return
}

// ErrBadEcall reports an environment-call number the handler does not
// implement.
type ErrBadEcall uint64

func (err ErrBadEcall) Error() string {
	return f("unsupported environment call %d", uint64(err))
}

func (err ErrBadEcall) Is(other error) (ok bool) {
	_, ok = other.(ErrBadEcall)
	return
}

// ErrBadHelper reports a helper call the engine does not implement.
type ErrBadHelper ir.Helper

func (err ErrBadHelper) Error() string {
	return f("no runtime implementation for helper %v", ir.Helper(err))
}

func (err ErrBadHelper) Is(other error) (ok bool) {
	_, ok = other.(ErrBadHelper)
	return
}
