package engine

import (
	"math"

	"github.com/ezrec/rvjit/hart"
	"github.com/ezrec/rvjit/ir"
)

// Floating-point helper implementations. Arithmetic uses the host's
// round-to-nearest-even; the installed rounding mode is honored where Go
// gives control, which is the float-to-integer conversions.

const (
	canonicalNaN32 = uint64(0x7fc00000)
	canonicalNaN64 = uint64(0x7ff8000000000000)
)

func f32(bits uint64) float32 { return math.Float32frombits(uint32(bits)) }
func b32(v float32) uint64    { return uint64(math.Float32bits(v)) }
func f64(bits uint64) float64 { return math.Float64frombits(bits) }
func b64(v float64) uint64    { return math.Float64bits(v) }
func boolBit(v bool) uint64 {
	if v {
		return 1
	}
	return 0
}

func fpCall(h *hart.Hart, helper ir.Helper, args []ir.Value, vals []uint64) (uint64, bool) {
	arg := func(n int) uint64 { return vals[args[n]] }

	switch helper {
	case ir.HELPER_FADD_S:
		return b32(f32(arg(0)) + f32(arg(1))), true
	case ir.HELPER_FSUB_S:
		return b32(f32(arg(0)) - f32(arg(1))), true
	case ir.HELPER_FMUL_S:
		return b32(f32(arg(0)) * f32(arg(1))), true
	case ir.HELPER_FDIV_S:
		return b32(f32(arg(0)) / f32(arg(1))), true
	case ir.HELPER_FSQRT_S:
		return b32(float32(math.Sqrt(float64(f32(arg(0)))))), true
	case ir.HELPER_FMIN_S:
		return fminmax32(arg(0), arg(1), false), true
	case ir.HELPER_FMAX_S:
		return fminmax32(arg(0), arg(1), true), true
	case ir.HELPER_FEQ_S:
		return boolBit(f32(arg(0)) == f32(arg(1))), true
	case ir.HELPER_FLT_S:
		return boolBit(f32(arg(0)) < f32(arg(1))), true
	case ir.HELPER_FLE_S:
		return boolBit(f32(arg(0)) <= f32(arg(1))), true

	case ir.HELPER_FADD_D:
		return b64(f64(arg(0)) + f64(arg(1))), true
	case ir.HELPER_FSUB_D:
		return b64(f64(arg(0)) - f64(arg(1))), true
	case ir.HELPER_FMUL_D:
		return b64(f64(arg(0)) * f64(arg(1))), true
	case ir.HELPER_FDIV_D:
		return b64(f64(arg(0)) / f64(arg(1))), true
	case ir.HELPER_FSQRT_D:
		return b64(math.Sqrt(f64(arg(0)))), true
	case ir.HELPER_FMIN_D:
		return fminmax64(arg(0), arg(1), false), true
	case ir.HELPER_FMAX_D:
		return fminmax64(arg(0), arg(1), true), true
	case ir.HELPER_FEQ_D:
		return boolBit(f64(arg(0)) == f64(arg(1))), true
	case ir.HELPER_FLT_D:
		return boolBit(f64(arg(0)) < f64(arg(1))), true
	case ir.HELPER_FLE_D:
		return boolBit(f64(arg(0)) <= f64(arg(1))), true

	case ir.HELPER_FCVT_W_S:
		return cvtToInt(h, float64(f32(arg(0))), math.MinInt32, math.MaxInt32), true
	case ir.HELPER_FCVT_WU_S:
		return cvtToUint(h, float64(f32(arg(0))), math.MaxUint32, true), true
	case ir.HELPER_FCVT_L_S:
		return cvtToInt(h, float64(f32(arg(0))), math.MinInt64, math.MaxInt64), true
	case ir.HELPER_FCVT_LU_S:
		return cvtToUint(h, float64(f32(arg(0))), math.MaxUint64, false), true
	case ir.HELPER_FCVT_S_W:
		return b32(float32(int32(arg(0)))), true
	case ir.HELPER_FCVT_S_WU:
		return b32(float32(uint32(arg(0)))), true
	case ir.HELPER_FCVT_S_L:
		return b32(float32(int64(arg(0)))), true
	case ir.HELPER_FCVT_S_LU:
		return b32(float32(arg(0))), true

	case ir.HELPER_FCVT_W_D:
		return cvtToInt(h, f64(arg(0)), math.MinInt32, math.MaxInt32), true
	case ir.HELPER_FCVT_WU_D:
		return cvtToUint(h, f64(arg(0)), math.MaxUint32, true), true
	case ir.HELPER_FCVT_L_D:
		return cvtToInt(h, f64(arg(0)), math.MinInt64, math.MaxInt64), true
	case ir.HELPER_FCVT_LU_D:
		return cvtToUint(h, f64(arg(0)), math.MaxUint64, false), true
	case ir.HELPER_FCVT_D_W:
		return b64(float64(int32(arg(0)))), true
	case ir.HELPER_FCVT_D_WU:
		return b64(float64(uint32(arg(0)))), true
	case ir.HELPER_FCVT_D_L:
		return b64(float64(int64(arg(0)))), true
	case ir.HELPER_FCVT_D_LU:
		return b64(float64(arg(0))), true

	case ir.HELPER_FCVT_S_D:
		return b32(float32(f64(arg(0)))), true
	case ir.HELPER_FCVT_D_S:
		return b64(float64(f32(arg(0)))), true
	}
	return 0, false
}

func fminmax32(x, y uint64, max bool) uint64 {
	a, b := f32(x), f32(y)
	switch {
	case isNaN32(a) && isNaN32(b):
		return canonicalNaN32
	case isNaN32(a):
		return y
	case isNaN32(b):
		return x
	}
	// distinguish the zero signs the way the comparison cannot
	if a == 0 && b == 0 {
		if (x&(1<<31) != 0) != max {
			return x
		}
		return y
	}
	if (a < b) != max {
		return x
	}
	return y
}

func fminmax64(x, y uint64, max bool) uint64 {
	a, b := f64(x), f64(y)
	switch {
	case math.IsNaN(a) && math.IsNaN(b):
		return canonicalNaN64
	case math.IsNaN(a):
		return y
	case math.IsNaN(b):
		return x
	}
	if a == 0 && b == 0 {
		if (x&(1<<63) != 0) != max {
			return x
		}
		return y
	}
	if (a < b) != max {
		return x
	}
	return y
}

func isNaN32(v float32) bool {
	return v != v
}

// round applies the installed rounding mode.
func round(h *hart.Hart, v float64) float64 {
	switch h.RoundMode {
	case hart.RM_RTZ:
		return math.Trunc(v)
	case hart.RM_RDN:
		return math.Floor(v)
	case hart.RM_RUP:
		return math.Ceil(v)
	case hart.RM_RMM:
		return math.Round(v)
	default:
		return math.RoundToEven(v)
	}
}

// cvtToInt converts to a signed integer, saturating out-of-range values and
// mapping NaN to the maximum. Word-sized results come back sign extended.
func cvtToInt(h *hart.Hart, v float64, min, max int64) uint64 {
	if math.IsNaN(v) {
		return uint64(max)
	}
	v = round(h, v)
	switch {
	case v >= -float64(min): // 2^31 or 2^63, exactly representable
		return uint64(max)
	case v < float64(min):
		return uint64(min)
	}
	return uint64(int64(v))
}

// cvtToUint converts to an unsigned integer, saturating below zero and above
// the type range; NaN maps to the maximum. When word is set the 32-bit
// result is sign extended, matching the register convention.
func cvtToUint(h *hart.Hart, v float64, max uint64, word bool) uint64 {
	var r uint64
	if !math.IsNaN(v) {
		v = round(h, v)
	}
	switch {
	case math.IsNaN(v):
		r = max
	case v >= float64(max)+1:
		r = max
	case v < 0:
		r = 0
	default:
		r = uint64(v)
	}
	if word {
		r = uint64(int64(int32(r)))
	}
	return r
}
