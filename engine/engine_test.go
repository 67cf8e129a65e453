package engine

import (
	"math"
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"

	"github.com/ezrec/rvjit/asm"
	"github.com/ezrec/rvjit/hart"
)

type fixture struct {
	h   *hart.Hart
	mem *hart.RAM
	eng *Engine
}

// build assembles a guest program into fresh memory with an engine that
// halts on the first environment call.
func build(t *testing.T, lines ...string) *fixture {
	t.Helper()

	a := &asm.Assembler{}
	prog, err := a.Parse(strings.NewReader(strings.Join(lines, "\n")))
	if err != nil {
		t.Fatal(err)
	}

	mem := hart.NewRAM(0, 65536)
	if err := mem.WriteBytes(prog.Org, prog.Binary()); err != nil {
		t.Fatal(err)
	}

	h := hart.New()
	h.PC = prog.Org

	eng := New(mem)
	eng.OnEcall = func(*hart.Hart) error { return ErrHalt }

	return &fixture{h: h, mem: mem, eng: eng}
}

// run executes until the halting ecall, failing the test on any trap.
func (fx *fixture) run(t *testing.T) {
	t.Helper()

	trap, err := fx.eng.Run(fx.h)
	if err != nil {
		t.Fatal(err)
	}
	if trap != nil {
		t.Fatalf("unexpected trap: %v", trap)
	}
}

func TestRunArithmetic(t *testing.T) {
	assert := assert.New(t)

	fx := build(t,
		"li a0, 6",
		"li a1, 7",
		"mul a2, a0, a1",
		"add a3, a2, a0",
		"sub a4, x0, a3",
		"ecall",
	)
	fx.run(t)

	assert.Equal(uint64(42), fx.h.X[12])
	assert.Equal(uint64(48), fx.h.X[13])
	assert.Equal(^uint64(47), fx.h.X[14])
	assert.Equal(uint64(20), fx.h.PC)
}

func TestRunX0Hardwired(t *testing.T) {
	assert := assert.New(t)

	fx := build(t,
		"addi x0, x0, 5",
		"li a0, 7",
		"add a1, x0, a0",
		"ecall",
	)
	fx.run(t)

	assert.Equal(uint64(0), fx.h.X[0])
	assert.Equal(uint64(7), fx.h.X[11])
}

func TestRunBranchLoop(t *testing.T) {
	assert := assert.New(t)

	fx := build(t,
		"li a0, 0",
		"li a1, 10",
		"loop: add a0, a0, a1",
		"addi a1, a1, -1",
		"bnez a1, loop",
		"ecall",
	)
	fx.run(t)

	assert.Equal(uint64(55), fx.h.X[10])
	assert.Equal(uint64(0), fx.h.X[11])
}

func TestRunDivRemEdges(t *testing.T) {
	assert := assert.New(t)

	fx := build(t,
		"div a2, a0, a1",
		"rem a3, a0, a1",
		"divu a4, a0, a1",
		"remu a5, a0, a1",
		"ecall",
	)

	minInt64 := uint64(1) << 63

	table := [](struct {
		a, b                 uint64
		div, rem, divu, remu uint64
	}){
		{7, 2, 3, 1, 3, 1},
		{^uint64(6), 2, ^uint64(2), ^uint64(0),
			(math.MaxUint64 - 6) / 2, 1},
		{5, 0, math.MaxUint64, 5, math.MaxUint64, 5},
		{minInt64, math.MaxUint64, minInt64, 0, 0, minInt64},
	}

	for _, entry := range table {
		fx.h.PC = 0
		fx.h.X[10], fx.h.X[11] = entry.a, entry.b
		fx.run(t)

		assert.Equal(entry.div, fx.h.X[12], "div %#x/%#x", entry.a, entry.b)
		assert.Equal(entry.rem, fx.h.X[13], "rem %#x/%#x", entry.a, entry.b)
		assert.Equal(entry.divu, fx.h.X[14], "divu %#x/%#x", entry.a, entry.b)
		assert.Equal(entry.remu, fx.h.X[15], "remu %#x/%#x", entry.a, entry.b)
	}
}

func TestRunDivRemWord(t *testing.T) {
	assert := assert.New(t)

	fx := build(t,
		"divw a2, a0, a1",
		"remw a3, a0, a1",
		"divuw a4, a0, a1",
		"remuw a5, a0, a1",
		"ecall",
	)

	int32Min := uint64(0xffffffff80000000)

	table := [](struct {
		a, b                     uint64
		divw, remw, divuw, remuw uint64
	}){
		{int32Min, math.MaxUint64, int32Min, 0, 0, int32Min},
		{7, 0, math.MaxUint64, 7, math.MaxUint64, 7},
		{100, 7, 14, 2, 14, 2},
	}

	for _, entry := range table {
		fx.h.PC = 0
		fx.h.X[10], fx.h.X[11] = entry.a, entry.b
		fx.run(t)

		assert.Equal(entry.divw, fx.h.X[12], "divw %#x/%#x", entry.a, entry.b)
		assert.Equal(entry.remw, fx.h.X[13], "remw %#x/%#x", entry.a, entry.b)
		assert.Equal(entry.divuw, fx.h.X[14], "divuw %#x/%#x", entry.a, entry.b)
		assert.Equal(entry.remuw, fx.h.X[15], "remuw %#x/%#x", entry.a, entry.b)
	}
}

// refMulhu computes the reference upper product via 256-bit arithmetic.
func refMulhu(a, b uint64) uint64 {
	p := new(uint256.Int).Mul(uint256.NewInt(a), uint256.NewInt(b))
	return p.Rsh(p, 64).Uint64()
}

func refMulh(a, b uint64) (high uint64) {
	high = refMulhu(a, b)
	if int64(a) < 0 {
		high -= b
	}
	if int64(b) < 0 {
		high -= a
	}
	return
}

func refMulhsu(a, b uint64) (high uint64) {
	high = refMulhu(a, b)
	if int64(a) < 0 {
		high -= b
	}
	return
}

func TestRunMulHigh(t *testing.T) {
	assert := assert.New(t)

	fx := build(t,
		"mulh a2, a0, a1",
		"mulhu a3, a0, a1",
		"mulhsu a4, a0, a1",
		"ecall",
	)

	table := [](struct{ a, b uint64 }){
		{0xdeadbeef12345678, 0xfeedfacecafebabe},
		{math.MaxUint64, 5},
		{1 << 63, math.MaxInt64},
		{0x123456789abcdef0, 0x0fedcba987654321},
		{math.MaxUint64, math.MaxUint64},
	}

	for _, entry := range table {
		fx.h.PC = 0
		fx.h.X[10], fx.h.X[11] = entry.a, entry.b
		fx.run(t)

		assert.Equal(refMulh(entry.a, entry.b), fx.h.X[12], "mulh %#x*%#x", entry.a, entry.b)
		assert.Equal(refMulhu(entry.a, entry.b), fx.h.X[13], "mulhu %#x*%#x", entry.a, entry.b)
		assert.Equal(refMulhsu(entry.a, entry.b), fx.h.X[14], "mulhsu %#x*%#x", entry.a, entry.b)
	}
}

func TestRunLoadStore(t *testing.T) {
	assert := assert.New(t)

	fx := build(t,
		"li a0, 0x300",
		"li a1, -2",
		"sw a1, 0(a0)",
		"lw a2, 0(a0)",
		"lwu a3, 0(a0)",
		"lhu a4, 0(a0)",
		"lb a5, 0(a0)",
		"sd a1, 8(a0)",
		"ld a6, 8(a0)",
		"ecall",
	)
	fx.run(t)

	assert.Equal(^uint64(1), fx.h.X[12])
	assert.Equal(uint64(0xfffffffe), fx.h.X[13])
	assert.Equal(uint64(0xfffe), fx.h.X[14])
	assert.Equal(^uint64(1), fx.h.X[15])
	assert.Equal(^uint64(1), fx.h.X[16])
}

func TestRunLrSc(t *testing.T) {
	assert := assert.New(t)

	fx := build(t,
		"li a0, 0x200",
		"li t2, 77",
		"lr.w t0, (a0)",
		"sc.w t1, t2, (a0)",
		"sc.w t3, t2, (a0)",
		"ecall",
	)
	if err := fx.mem.Store(0x200, 4, 0x1234); err != nil {
		t.Fatal(err)
	}
	fx.run(t)

	assert.Equal(uint64(0x1234), fx.h.X[5])
	assert.Equal(uint64(0), fx.h.X[6], "first sc succeeds")
	assert.Equal(uint64(1), fx.h.X[28], "second sc fails, reservation gone")
	assert.False(fx.h.ResValid)

	value, err := fx.mem.Load(0x200, 4)
	assert.NoError(err)
	assert.Equal(uint64(77), value)
}

func TestRunAmo(t *testing.T) {
	assert := assert.New(t)

	fx := build(t,
		"li a0, 0x200",
		"li a1, 5",
		"amoadd.w t0, a1, (a0)",
		"amomax.w t1, a1, (a0)",
		"amoswap.w t2, a1, (a0)",
		"ecall",
	)
	if err := fx.mem.Store(0x200, 4, 10); err != nil {
		t.Fatal(err)
	}
	fx.run(t)

	assert.Equal(uint64(10), fx.h.X[5])
	assert.Equal(uint64(15), fx.h.X[6])
	assert.Equal(uint64(15), fx.h.X[7])

	value, err := fx.mem.Load(0x200, 4)
	assert.NoError(err)
	assert.Equal(uint64(5), value)
}

func TestRunLoadFaultMidBlock(t *testing.T) {
	assert := assert.New(t)

	fx := build(t,
		"nop",
		"nop",
		"li a0, 0x20000",
		"ld a1, 0(a0)",
		"ecall",
	)

	trap, err := fx.eng.Run(fx.h)
	assert.NoError(err)
	if assert.NotNil(trap) {
		assert.Equal(hart.CAUSE_LOAD_ACCESS, trap.Cause)
		assert.Equal(uint64(0x20000), trap.Tval)
	}
	// PC points at the faulting load, not the block start.
	assert.Equal(uint64(16), fx.h.PC)
	assert.Equal(uint64(0x20000), fx.h.BadAddr)
}

func TestRunMisalignedBranch(t *testing.T) {
	assert := assert.New(t)

	fx := build(t,
		"beq x0, x0, 2",
	)
	fx.h.Flags &^= hart.FLAG_RVC

	trap, err := fx.eng.Run(fx.h)
	assert.NoError(err)
	if assert.NotNil(trap) {
		assert.Equal(hart.CAUSE_MISALIGNED_FETCH, trap.Cause)
		assert.Equal(uint64(2), trap.Tval)
	}
	assert.Equal(uint64(0), fx.h.PC)
}

func TestRunEcallResume(t *testing.T) {
	assert := assert.New(t)

	fx := build(t,
		"addi a0, a0, 1",
		"ecall",
		"addi a0, a0, 1",
		"ecall",
		"ecall",
	)

	calls := 0
	fx.eng.OnEcall = func(*hart.Hart) error {
		calls++
		if calls == 3 {
			return ErrHalt
		}
		return nil
	}

	fx.run(t)

	assert.Equal(3, calls)
	assert.Equal(uint64(2), fx.h.X[10])
	assert.Equal(uint64(16), fx.h.PC)
}

func TestRunBreakpoint(t *testing.T) {
	assert := assert.New(t)

	fx := build(t,
		"addi a0, a0, 1",
		"addi a0, a0, 1",
		"ecall",
	)
	fx.h.SetBreakpoint(4)

	trap, err := fx.eng.Run(fx.h)
	assert.NoError(err)
	if assert.NotNil(trap) {
		assert.Equal(hart.CAUSE_DEBUG, trap.Cause)
	}
	assert.Equal(uint64(4), fx.h.PC)
	assert.Equal(uint64(1), fx.h.X[10])
}

func TestRunSingleStep(t *testing.T) {
	assert := assert.New(t)

	fx := build(t,
		"addi a0, a0, 1",
		"addi a0, a0, 1",
		"ecall",
	)
	fx.h.SingleStep = true

	trap, err := fx.eng.Run(fx.h)
	assert.NoError(err)
	if assert.NotNil(trap) {
		assert.Equal(hart.CAUSE_DEBUG, trap.Cause)
	}
	assert.Equal(uint64(4), fx.h.PC)
	assert.Equal(uint64(1), fx.h.X[10])

	trap, err = fx.eng.Run(fx.h)
	assert.NoError(err)
	if assert.NotNil(trap) {
		assert.Equal(hart.CAUSE_DEBUG, trap.Cause)
	}
	assert.Equal(uint64(8), fx.h.PC)
	assert.Equal(uint64(2), fx.h.X[10])
}

func TestRunCSR(t *testing.T) {
	assert := assert.New(t)

	fx := build(t,
		"csrrwi x0, frm, 2",
		"csrrs a0, frm, x0",
		"csrrwi a1, fflags, 5",
		"csrrci a2, fflags, 1",
		"csrrs a3, fcsr, x0",
		"ecall",
	)
	fx.run(t)

	assert.Equal(2, fx.h.Frm)
	assert.Equal(uint64(2), fx.h.X[10])
	assert.Equal(uint64(0), fx.h.X[11])
	assert.Equal(uint64(5), fx.h.X[12])
	assert.Equal(uint64(4|2<<5), fx.h.X[13])
}

func TestRunFloat(t *testing.T) {
	assert := assert.New(t)

	fx := build(t,
		".word 0xf20500d3", // fmv.d.x f1, a0
		".word 0x02108153", // fadd.d f2, f1, f1
		".word 0xe20105d3", // fmv.x.d a1, f2
		".word 0xc2011653", // fcvt.w.d a2, f2, rtz
		"ecall",
	)
	fx.h.X[10] = math.Float64bits(1.5)
	fx.run(t)

	assert.Equal(math.Float64bits(3.0), fx.h.X[11])
	assert.Equal(uint64(3), fx.h.X[12])
	assert.Equal(math.Float64bits(3.0), fx.h.F[2])
}

func TestFlushRetranslates(t *testing.T) {
	assert := assert.New(t)

	fx := build(t,
		"li a0, 1",
		"ecall",
	)
	fx.run(t)
	assert.Equal(uint64(1), fx.h.X[10])

	// Patch the guest code; the stale block must be flushed to take
	// effect.
	a := &asm.Assembler{}
	prog, err := a.Parse(strings.NewReader("li a0, 9\necall"))
	assert.NoError(err)
	assert.NoError(fx.mem.WriteBytes(0, prog.Binary()))

	fx.h.PC = 0
	fx.run(t)
	assert.Equal(uint64(1), fx.h.X[10], "cached block still runs")

	fx.eng.Flush()
	fx.h.PC = 0
	fx.run(t)
	assert.Equal(uint64(9), fx.h.X[10])
}
