package hart

import (
	"encoding/binary"
)

// Memory is the guest memory contract the translator and the executed blocks
// consume. Implementations return ErrMemRange for addresses outside the
// mapped window; the caller converts that into the matching guest fault.
type Memory interface {
	// Fetch32 reads an instruction window at addr. When only the first
	// halfword is mapped, the upper half is zero; the decoder only trusts
	// the low 16 bits for compressed instructions anyway.
	Fetch32(addr uint64) (uint32, error)
	// Load reads size bytes (1, 2, 4 or 8), little endian, zero extended.
	Load(addr uint64, size int) (uint64, error)
	// Store writes the low size bytes of value, little endian.
	Store(addr uint64, size int, value uint64) error
}

// RAM is a flat little-endian memory window, enough for tests and the CLI.
type RAM struct {
	Base uint64
	Data []byte
}

// NewRAM allocates size bytes of guest memory at base.
func NewRAM(base uint64, size int) *RAM {
	return &RAM{Base: base, Data: make([]byte, size)}
}

func (m *RAM) offset(addr uint64, size int) (off uint64, err error) {
	off = addr - m.Base
	if addr < m.Base || off+uint64(size) > uint64(len(m.Data)) {
		err = ErrMemRange(addr)
	}
	return
}

// Fetch32 reads an instruction window.
func (m *RAM) Fetch32(addr uint64) (word uint32, err error) {
	off, err := m.offset(addr, 4)
	if err == nil {
		word = binary.LittleEndian.Uint32(m.Data[off:])
		return
	}

	// A 16-bit instruction may sit on the last halfword of the window.
	off, err = m.offset(addr, 2)
	if err != nil {
		return
	}
	word = uint32(binary.LittleEndian.Uint16(m.Data[off:]))
	return
}

// Load reads size bytes, little endian, zero extended.
func (m *RAM) Load(addr uint64, size int) (value uint64, err error) {
	off, err := m.offset(addr, size)
	if err != nil {
		return
	}
	for n := size - 1; n >= 0; n-- {
		value = value<<8 | uint64(m.Data[off+uint64(n)])
	}
	return
}

// Store writes the low size bytes of value, little endian.
func (m *RAM) Store(addr uint64, size int, value uint64) (err error) {
	off, err := m.offset(addr, size)
	if err != nil {
		return
	}
	for n := range size {
		m.Data[off+uint64(n)] = byte(value >> (8 * n))
	}
	return
}

// WriteBytes copies a guest image into memory at addr.
func (m *RAM) WriteBytes(addr uint64, data []byte) (err error) {
	off, err := m.offset(addr, len(data))
	if err != nil {
		return
	}
	copy(m.Data[off:], data)
	return
}
