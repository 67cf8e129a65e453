package hart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterZero(t *testing.T) {
	assert := assert.New(t)

	h := New()

	h.SetReg(0, 42)
	assert.Equal(uint64(0), h.GetReg(0))
	assert.Equal(uint64(0), h.X[0])

	h.SetReg(5, 42)
	assert.Equal(uint64(42), h.GetReg(5))

	h.SetFReg(0, 42)
	assert.Equal(uint64(42), h.GetFReg(0), "f0 is not hardwired")
}

func TestReservation(t *testing.T) {
	assert := assert.New(t)

	h := New()
	assert.False(h.ReservationMatches(0x100))

	h.Reserve(0x100, 7)
	assert.True(h.ReservationMatches(0x100))
	assert.False(h.ReservationMatches(0x108))
	assert.Equal(uint64(7), h.ResVal)

	h.ClearReservation()
	assert.False(h.ReservationMatches(0x100))
}

func TestCSRViews(t *testing.T) {
	assert := assert.New(t)

	h := New()

	h.WriteCSR(CSR_FRM, 3)
	assert.Equal(3, h.Frm)
	assert.Equal(uint64(3), h.ReadCSR(CSR_FRM))

	h.WriteCSR(CSR_FFLAGS, 0x1f)
	assert.Equal(uint64(0x1f), h.ReadCSR(CSR_FFLAGS))

	// fcsr composes fflags and frm.
	assert.Equal(uint64(0x1f|3<<5), h.ReadCSR(CSR_FCSR))

	h.WriteCSR(CSR_FCSR, 2<<5|0x4)
	assert.Equal(2, h.Frm)
	assert.Equal(uint64(0x4), h.ReadCSR(CSR_FFLAGS))

	// Unknown CSRs go through the generic store.
	h.WriteCSR(0x800, 99)
	assert.Equal(uint64(99), h.ReadCSR(0x800))
}

func TestBreakpoints(t *testing.T) {
	assert := assert.New(t)

	h := New()
	assert.False(h.HasBreakpoint(0x100))

	h.SetBreakpoint(0x100)
	assert.True(h.HasBreakpoint(0x100))

	h.ClearBreakpoint(0x100)
	assert.False(h.HasBreakpoint(0x100))
}

func TestFlags(t *testing.T) {
	assert := assert.New(t)

	assert.True(FLAGS_RVGC.Has(FLAG_RVA | FLAG_RVC))
	assert.False((FLAGS_RVGC &^ FLAG_RVM).Has(FLAG_RVM))
}

func TestRAM(t *testing.T) {
	assert := assert.New(t)

	m := NewRAM(0x1000, 0x100)

	assert.NoError(m.Store(0x1000, 8, 0x0102030405060708))
	value, err := m.Load(0x1000, 8)
	assert.NoError(err)
	assert.Equal(uint64(0x0102030405060708), value)

	// Little endian, zero extended.
	value, err = m.Load(0x1000, 2)
	assert.NoError(err)
	assert.Equal(uint64(0x0708), value)

	// Out of range on both sides.
	_, err = m.Load(0xfff, 1)
	assert.ErrorIsf(err, ErrMemRange(0xfff), "%v", err)
	_, err = m.Load(0x10fd, 4)
	assert.ErrorIsf(err, ErrMemRange(0x10fd), "%v", err)
	assert.Error(m.Store(0x1100, 1, 0))
}

func TestRAMFetchTail(t *testing.T) {
	assert := assert.New(t)

	m := NewRAM(0, 0x100)

	assert.NoError(m.Store(0xfc, 4, 0x1234abcd))
	word, err := m.Fetch32(0xfc)
	assert.NoError(err)
	assert.Equal(uint32(0x1234abcd), word)

	// Only the final halfword is mapped: the fetch window narrows.
	word, err = m.Fetch32(0xfe)
	assert.NoError(err)
	assert.Equal(uint32(0x1234), word)

	_, err = m.Fetch32(0x100)
	assert.Error(err)
}

func TestRAMWriteBytes(t *testing.T) {
	assert := assert.New(t)

	m := NewRAM(0, 0x10)

	assert.NoError(m.WriteBytes(4, []byte{1, 2, 3}))
	value, err := m.Load(4, 4)
	assert.NoError(err)
	assert.Equal(uint64(0x00030201), value)

	assert.Error(m.WriteBytes(0xe, []byte{1, 2, 3}))
}
