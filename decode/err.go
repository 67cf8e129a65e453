package decode

import (
	"github.com/ezrec/rvjit/localize"
)

var f = localize.From

// ErrDecode reports an opcode word matching no encoding pattern. The block
// driver converts this into an illegal-instruction trap; it is never a host
// failure.
type ErrDecode uint32

func (err ErrDecode) Error() string {
	return f("no encoding matches opcode 0x%08x", uint32(err))
}

func (err ErrDecode) Is(other error) (ok bool) {
	_, ok = other.(ErrDecode)
	return
}
