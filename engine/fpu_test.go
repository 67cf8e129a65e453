package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/rvjit/hart"
)

func TestRoundModes(t *testing.T) {
	assert := assert.New(t)

	h := hart.New()

	table := [](struct {
		mode int
		in   float64
		out  float64
	}){
		{hart.RM_RNE, 2.5, 2},
		{hart.RM_RNE, 3.5, 4},
		{hart.RM_RTZ, 2.9, 2},
		{hart.RM_RTZ, -2.9, -2},
		{hart.RM_RDN, 2.9, 2},
		{hart.RM_RDN, -2.1, -3},
		{hart.RM_RUP, 2.1, 3},
		{hart.RM_RUP, -2.9, -2},
		{hart.RM_RMM, 2.5, 3},
		{hart.RM_RMM, -2.5, -3},
	}

	for _, entry := range table {
		h.RoundMode = entry.mode
		assert.Equal(entry.out, round(h, entry.in), "mode %v of %v", entry.mode, entry.in)
	}
}

func TestCvtToInt(t *testing.T) {
	assert := assert.New(t)

	h := hart.New()
	h.RoundMode = hart.RM_RTZ

	assert.Equal(uint64(3), cvtToInt(h, 3.7, math.MinInt32, math.MaxInt32))
	assert.Equal(^uint64(2), cvtToInt(h, -3.7, math.MinInt32, math.MaxInt32))

	// Saturation, and NaN to the maximum.
	assert.Equal(uint64(math.MaxInt32), cvtToInt(h, 1e12, math.MinInt32, math.MaxInt32))
	assert.Equal(uint64(math.MaxInt32), cvtToInt(h, math.NaN(), math.MinInt32, math.MaxInt32))
	assert.Equal(uint64(0xffffffff80000000), cvtToInt(h, -1e12, math.MinInt32, math.MaxInt32))
	assert.Equal(uint64(math.MaxInt64), cvtToInt(h, 1e30, math.MinInt64, math.MaxInt64))

	// Rounding happens before the range check.
	h.RoundMode = hart.RM_RUP
	assert.Equal(uint64(math.MaxInt32), cvtToInt(h, 2147483647.5, math.MinInt32, math.MaxInt32))
	h.RoundMode = hart.RM_RTZ
	assert.Equal(uint64(math.MaxInt32), cvtToInt(h, 2147483647.5, math.MinInt32, math.MaxInt32))
}

func TestCvtToUint(t *testing.T) {
	assert := assert.New(t)

	h := hart.New()
	h.RoundMode = hart.RM_RTZ

	assert.Equal(uint64(3), cvtToUint(h, 3.7, math.MaxUint32, false))
	assert.Equal(uint64(0), cvtToUint(h, -0.7, math.MaxUint32, false))
	assert.Equal(uint64(0), cvtToUint(h, -5, math.MaxUint32, false))
	assert.Equal(uint64(math.MaxUint32), cvtToUint(h, 1e12, math.MaxUint32, false))
	assert.Equal(uint64(math.MaxUint64), cvtToUint(h, math.NaN(), math.MaxUint64, false))

	// Word results come back sign extended.
	assert.Equal(uint64(0xffffffffffffffff), cvtToUint(h, 4294967295.0, math.MaxUint32, true))
}

func TestFminFmax(t *testing.T) {
	assert := assert.New(t)

	one := b64(1.0)
	two := b64(2.0)
	nan := b64(math.NaN())
	negZero := b64(math.Copysign(0, -1))
	posZero := b64(0.0)

	assert.Equal(one, fminmax64(one, two, false))
	assert.Equal(two, fminmax64(one, two, true))

	// A single NaN loses; two NaNs canonicalize.
	assert.Equal(one, fminmax64(nan, one, false))
	assert.Equal(one, fminmax64(one, nan, true))
	assert.Equal(canonicalNaN64, fminmax64(nan, nan, false))

	// Zero signs are distinguished.
	assert.Equal(negZero, fminmax64(negZero, posZero, false))
	assert.Equal(posZero, fminmax64(negZero, posZero, true))

	f1 := b32(float32(1))
	fnan := uint64(math.Float32bits(float32(math.NaN())))
	assert.Equal(f1, fminmax32(fnan, f1, false))
	assert.Equal(canonicalNaN32, fminmax32(fnan, fnan, true))
}

func TestMulHighPrimitives(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(uint64(0), mulhU(3, 5))
	assert.Equal(uint64(1), mulhU(1<<32, 1<<32))
	assert.Equal(^uint64(0), mulhS(^uint64(0), 5), "-1 * 5")
	assert.Equal(uint64(0), mulhS(^uint64(0), ^uint64(0)), "-1 * -1")
}
