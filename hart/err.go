package hart

import (
	"github.com/ezrec/rvjit/localize"
)

var f = localize.From

// ErrMemRange reports a guest address outside the mapped memory window.
type ErrMemRange uint64

func (err ErrMemRange) Error() string {
	return f("address 0x%x out of range", uint64(err))
}

func (err ErrMemRange) Is(other error) (ok bool) {
	_, ok = other.(ErrMemRange)
	return
}
