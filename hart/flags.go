package hart

// Flags is the extension/feature bit set sampled when a block starts
// translating. A block is only valid for the exact flag set it was built
// with; the bit positions follow the misa register letters.
type Flags uint32

const (
	FLAG_RVA = Flags(1 << 0)  // atomics
	FLAG_RVC = Flags(1 << 2)  // compressed instructions
	FLAG_RVD = Flags(1 << 3)  // double-precision floating point
	FLAG_RVF = Flags(1 << 5)  // single-precision floating point
	FLAG_RVI = Flags(1 << 8)  // base integer set
	FLAG_RVM = Flags(1 << 12) // multiply/divide
)

// FLAGS_RVGC is the full supported set.
const FLAGS_RVGC = FLAG_RVI | FLAG_RVM | FLAG_RVA | FLAG_RVF | FLAG_RVD | FLAG_RVC

// Has reports whether every bit of ext is present.
func (f Flags) Has(ext Flags) bool {
	return f&ext == ext
}

// Memory-access privilege modes, used as the MMU index for fetches.
const (
	MEM_IDX_USER       = 0
	MEM_IDX_SUPERVISOR = 1
	MEM_IDX_MACHINE    = 3
)
