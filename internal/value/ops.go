package value

import (
	"math"
	"math/bits"

	"github.com/wasmi-go/wasmi/internal/moremath"
	"github.com/wasmi-go/wasmi/internal/wasmruntime"
)

// This file implements the Wasm numeric operator set over Untyped cells.
// Fallible operations trigger a trap (wasmruntime.Trigger) instead of
// returning an error, matching the panic/recover trap propagation used
// throughout the interpreter (see internal/wasmruntime doc comment).

// I32Add, I32Sub, I32Mul are total (never trap).
func I32Add(a, b Untyped) Untyped { return From32(a.I32() + b.I32()) }
func I32Sub(a, b Untyped) Untyped { return From32(a.I32() - b.I32()) }
func I32Mul(a, b Untyped) Untyped { return From32(a.I32() * b.I32()) }

func I64Add(a, b Untyped) Untyped { return From64(a.I64() + b.I64()) }
func I64Sub(a, b Untyped) Untyped { return From64(a.I64() - b.I64()) }
func I64Mul(a, b Untyped) Untyped { return From64(a.I64() * b.I64()) }

// I32DivS traps IntegerDivisionByZero on zero divisor and IntegerOverflow on
// MinInt32 / -1.
func I32DivS(a, b Untyped) Untyped {
	n, d := int32(a.I32()), int32(b.I32())
	if d == 0 {
		wasmruntime.Trigger(wasmruntime.TrapIntegerDivisionByZero)
	}
	if n == math.MinInt32 && d == -1 {
		wasmruntime.Trigger(wasmruntime.TrapIntegerOverflow)
	}
	return From32(uint32(n / d))
}

func I32DivU(a, b Untyped) Untyped {
	n, d := a.I32(), b.I32()
	if d == 0 {
		wasmruntime.Trigger(wasmruntime.TrapIntegerDivisionByZero)
	}
	return From32(n / d)
}

// I32RemS: rem by -1 never overflows (returns 0).
func I32RemS(a, b Untyped) Untyped {
	n, d := int32(a.I32()), int32(b.I32())
	if d == 0 {
		wasmruntime.Trigger(wasmruntime.TrapIntegerDivisionByZero)
	}
	if d == -1 {
		return From32(0)
	}
	return From32(uint32(n % d))
}

func I32RemU(a, b Untyped) Untyped {
	n, d := a.I32(), b.I32()
	if d == 0 {
		wasmruntime.Trigger(wasmruntime.TrapIntegerDivisionByZero)
	}
	return From32(n % d)
}

func I64DivS(a, b Untyped) Untyped {
	n, d := int64(a.I64()), int64(b.I64())
	if d == 0 {
		wasmruntime.Trigger(wasmruntime.TrapIntegerDivisionByZero)
	}
	if n == math.MinInt64 && d == -1 {
		wasmruntime.Trigger(wasmruntime.TrapIntegerOverflow)
	}
	return From64(uint64(n / d))
}

func I64DivU(a, b Untyped) Untyped {
	n, d := a.I64(), b.I64()
	if d == 0 {
		wasmruntime.Trigger(wasmruntime.TrapIntegerDivisionByZero)
	}
	return From64(n / d)
}

func I64RemS(a, b Untyped) Untyped {
	n, d := int64(a.I64()), int64(b.I64())
	if d == 0 {
		wasmruntime.Trigger(wasmruntime.TrapIntegerDivisionByZero)
	}
	if d == -1 {
		return From64(0)
	}
	return From64(uint64(n % d))
}

func I64RemU(a, b Untyped) Untyped {
	n, d := a.I64(), b.I64()
	if d == 0 {
		wasmruntime.Trigger(wasmruntime.TrapIntegerDivisionByZero)
	}
	return From64(n % d)
}

// Bitwise ops. Shifts mask the shift count to width-1 bits.

func I32And(a, b Untyped) Untyped { return From32(a.I32() & b.I32()) }
func I32Or(a, b Untyped) Untyped  { return From32(a.I32() | b.I32()) }
func I32Xor(a, b Untyped) Untyped { return From32(a.I32() ^ b.I32()) }
func I32Shl(a, b Untyped) Untyped { return From32(a.I32() << (b.I32() % 32)) }
func I32ShrU(a, b Untyped) Untyped {
	return From32(a.I32() >> (b.I32() % 32))
}
func I32ShrS(a, b Untyped) Untyped {
	return From32(uint32(int32(a.I32()) >> (b.I32() % 32)))
}
func I32Rotl(a, b Untyped) Untyped { return From32(bits.RotateLeft32(a.I32(), int(b.I32()%32))) }
func I32Rotr(a, b Untyped) Untyped { return From32(bits.RotateLeft32(a.I32(), -int(b.I32()%32))) }

func I64And(a, b Untyped) Untyped { return From64(a.I64() & b.I64()) }
func I64Or(a, b Untyped) Untyped  { return From64(a.I64() | b.I64()) }
func I64Xor(a, b Untyped) Untyped { return From64(a.I64() ^ b.I64()) }
func I64Shl(a, b Untyped) Untyped { return From64(a.I64() << (b.I64() % 64)) }
func I64ShrU(a, b Untyped) Untyped {
	return From64(a.I64() >> (b.I64() % 64))
}
func I64ShrS(a, b Untyped) Untyped {
	return From64(uint64(int64(a.I64()) >> (b.I64() % 64)))
}
func I64Rotl(a, b Untyped) Untyped { return From64(bits.RotateLeft64(a.I64(), int(b.I64()%64))) }
func I64Rotr(a, b Untyped) Untyped { return From64(bits.RotateLeft64(a.I64(), -int(b.I64()%64))) }

func I32Clz(a Untyped) Untyped    { return From32(uint32(bits.LeadingZeros32(a.I32()))) }
func I32Ctz(a Untyped) Untyped    { return From32(uint32(bits.TrailingZeros32(a.I32()))) }
func I32Popcnt(a Untyped) Untyped { return From32(uint32(bits.OnesCount32(a.I32()))) }
func I64Clz(a Untyped) Untyped    { return From64(uint64(bits.LeadingZeros64(a.I64()))) }
func I64Ctz(a Untyped) Untyped    { return From64(uint64(bits.TrailingZeros64(a.I64()))) }
func I64Popcnt(a Untyped) Untyped { return From64(uint64(bits.OnesCount64(a.I64()))) }

func I32Eqz(a Untyped) Untyped { return boolU32(a.I32() == 0) }
func I64Eqz(a Untyped) Untyped { return boolU32(a.I64() == 0) }

func boolU32(b bool) Untyped {
	if b {
		return From32(1)
	}
	return From32(0)
}

// Comparisons return i32 0/1.

func I32Eq(a, b Untyped) Untyped  { return boolU32(a.I32() == b.I32()) }
func I32Ne(a, b Untyped) Untyped  { return boolU32(a.I32() != b.I32()) }
func I32LtS(a, b Untyped) Untyped { return boolU32(int32(a.I32()) < int32(b.I32())) }
func I32LtU(a, b Untyped) Untyped { return boolU32(a.I32() < b.I32()) }
func I32GtS(a, b Untyped) Untyped { return boolU32(int32(a.I32()) > int32(b.I32())) }
func I32GtU(a, b Untyped) Untyped { return boolU32(a.I32() > b.I32()) }
func I32LeS(a, b Untyped) Untyped { return boolU32(int32(a.I32()) <= int32(b.I32())) }
func I32LeU(a, b Untyped) Untyped { return boolU32(a.I32() <= b.I32()) }
func I32GeS(a, b Untyped) Untyped { return boolU32(int32(a.I32()) >= int32(b.I32())) }
func I32GeU(a, b Untyped) Untyped { return boolU32(a.I32() >= b.I32()) }

func I64Eq(a, b Untyped) Untyped  { return boolU32(a.I64() == b.I64()) }
func I64Ne(a, b Untyped) Untyped  { return boolU32(a.I64() != b.I64()) }
func I64LtS(a, b Untyped) Untyped { return boolU32(int64(a.I64()) < int64(b.I64())) }
func I64LtU(a, b Untyped) Untyped { return boolU32(a.I64() < b.I64()) }
func I64GtS(a, b Untyped) Untyped { return boolU32(int64(a.I64()) > int64(b.I64())) }
func I64GtU(a, b Untyped) Untyped { return boolU32(a.I64() > b.I64()) }
func I64LeS(a, b Untyped) Untyped { return boolU32(int64(a.I64()) <= int64(b.I64())) }
func I64LeU(a, b Untyped) Untyped { return boolU32(a.I64() <= b.I64()) }
func I64GeS(a, b Untyped) Untyped { return boolU32(int64(a.I64()) >= int64(b.I64())) }
func I64GeU(a, b Untyped) Untyped { return boolU32(a.I64() >= b.I64()) }

// Float helpers.

func f32(v Untyped) float32   { return math.Float32frombits(v.F32Bits()) }
func f32v(f float32) Untyped  { return From32(math.Float32bits(f)) }
func f64(v Untyped) float64   { return math.Float64frombits(v.F64Bits()) }
func f64v(f float64) Untyped  { return From64(math.Float64bits(f)) }

func F32Add(a, b Untyped) Untyped { return f32v(f32(a) + f32(b)) }
func F32Sub(a, b Untyped) Untyped { return f32v(f32(a) - f32(b)) }
func F32Mul(a, b Untyped) Untyped { return f32v(f32(a) * f32(b)) }
func F32Div(a, b Untyped) Untyped { return f32v(f32(a) / f32(b)) }
func F32Abs(a Untyped) Untyped    { return f32v(float32(math.Abs(float64(f32(a))))) }
func F32Neg(a Untyped) Untyped    { return f32v(-f32(a)) }
func F32Ceil(a Untyped) Untyped   { return f32v(float32(math.Ceil(float64(f32(a))))) }
func F32Floor(a Untyped) Untyped  { return f32v(float32(math.Floor(float64(f32(a))))) }
func F32Trunc(a Untyped) Untyped  { return f32v(float32(math.Trunc(float64(f32(a))))) }
func F32Nearest(a Untyped) Untyped {
	return f32v(float32(math.RoundToEven(float64(f32(a)))))
}
func F32Sqrt(a Untyped) Untyped { return f32v(float32(math.Sqrt(float64(f32(a))))) }

// F32Min/Max canonicalize NaN and prefer -0 for min, +0 for max, computed
// in float64 via moremath.WasmCompatMin/Max and narrowed back to float32.
func F32Min(a, b Untyped) Untyped {
	return f32v(float32(moremath.WasmCompatMin(float64(f32(a)), float64(f32(b)))))
}
func F32Max(a, b Untyped) Untyped {
	return f32v(float32(moremath.WasmCompatMax(float64(f32(a)), float64(f32(b)))))
}
func F32Copysign(a, b Untyped) Untyped {
	return f32v(float32(math.Copysign(float64(f32(a)), float64(f32(b)))))
}

func F64Add(a, b Untyped) Untyped { return f64v(f64(a) + f64(b)) }
func F64Sub(a, b Untyped) Untyped { return f64v(f64(a) - f64(b)) }
func F64Mul(a, b Untyped) Untyped { return f64v(f64(a) * f64(b)) }
func F64Div(a, b Untyped) Untyped { return f64v(f64(a) / f64(b)) }
func F64Abs(a Untyped) Untyped    { return f64v(math.Abs(f64(a))) }
func F64Neg(a Untyped) Untyped    { return f64v(-f64(a)) }
func F64Ceil(a Untyped) Untyped   { return f64v(math.Ceil(f64(a))) }
func F64Floor(a Untyped) Untyped  { return f64v(math.Floor(f64(a))) }
func F64Trunc(a Untyped) Untyped  { return f64v(math.Trunc(f64(a))) }
func F64Nearest(a Untyped) Untyped {
	return f64v(math.RoundToEven(f64(a)))
}
func F64Sqrt(a Untyped) Untyped        { return f64v(math.Sqrt(f64(a))) }
func F64Min(a, b Untyped) Untyped      { return f64v(moremath.WasmCompatMin(f64(a), f64(b))) }
func F64Max(a, b Untyped) Untyped      { return f64v(moremath.WasmCompatMax(f64(a), f64(b))) }
func F64Copysign(a, b Untyped) Untyped { return f64v(math.Copysign(f64(a), f64(b))) }

func F32Eq(a, b Untyped) Untyped { return boolU32(f32(a) == f32(b)) }
func F32Ne(a, b Untyped) Untyped { return boolU32(f32(a) != f32(b)) }
func F32Lt(a, b Untyped) Untyped { return boolU32(f32(a) < f32(b)) }
func F32Gt(a, b Untyped) Untyped { return boolU32(f32(a) > f32(b)) }
func F32Le(a, b Untyped) Untyped { return boolU32(f32(a) <= f32(b)) }
func F32Ge(a, b Untyped) Untyped { return boolU32(f32(a) >= f32(b)) }

func F64Eq(a, b Untyped) Untyped { return boolU32(f64(a) == f64(b)) }
func F64Ne(a, b Untyped) Untyped { return boolU32(f64(a) != f64(b)) }
func F64Lt(a, b Untyped) Untyped { return boolU32(f64(a) < f64(b)) }
func F64Gt(a, b Untyped) Untyped { return boolU32(f64(a) > f64(b)) }
func F64Le(a, b Untyped) Untyped { return boolU32(f64(a) <= f64(b)) }
func F64Ge(a, b Untyped) Untyped { return boolU32(f64(a) >= f64(b)) }

// Conversions.

func I32WrapI64(a Untyped) Untyped   { return From32(uint32(a.I64())) }
func I64ExtendI32S(a Untyped) Untyped { return From64(uint64(int64(int32(a.I32())))) }
func I64ExtendI32U(a Untyped) Untyped { return From64(uint64(a.I32())) }
func F32DemoteF64(a Untyped) Untyped  { return f32v(float32(f64(a))) }
func F64PromoteF32(a Untyped) Untyped { return f64v(float64(f32(a))) }
func F32ConvertI32S(a Untyped) Untyped { return f32v(float32(int32(a.I32()))) }
func F32ConvertI32U(a Untyped) Untyped { return f32v(float32(a.I32())) }
func F32ConvertI64S(a Untyped) Untyped { return f32v(float32(int64(a.I64()))) }
func F32ConvertI64U(a Untyped) Untyped { return f32v(float32(a.I64())) }
func F64ConvertI32S(a Untyped) Untyped { return f64v(float64(int32(a.I32()))) }
func F64ConvertI32U(a Untyped) Untyped { return f64v(float64(a.I32())) }
func F64ConvertI64S(a Untyped) Untyped { return f64v(float64(int64(a.I64()))) }
func F64ConvertI64U(a Untyped) Untyped { return f64v(float64(a.I64())) }

func I32ReinterpretF32(a Untyped) Untyped { return a }
func F32ReinterpretI32(a Untyped) Untyped { return a }
func I64ReinterpretF64(a Untyped) Untyped { return a }
func F64ReinterpretI64(a Untyped) Untyped { return a }

// Sign-extension ops (the sign-extension-ops proposal).

func I32Extend8S(a Untyped) Untyped  { return From32(uint32(int32(int8(a.I32())))) }
func I32Extend16S(a Untyped) Untyped { return From32(uint32(int32(int16(a.I32())))) }
func I64Extend8S(a Untyped) Untyped  { return From64(uint64(int64(int8(a.I64())))) }
func I64Extend16S(a Untyped) Untyped { return From64(uint64(int64(int16(a.I64())))) }
func I64Extend32S(a Untyped) Untyped { return From64(uint64(int64(int32(a.I64())))) }

// Trapping trunc (non-saturating): traps BadConversionToInteger on NaN,
// IntegerOverflow if the result is out of the target integer's range.

func I32TruncF32S(a Untyped) Untyped { return From32(uint32(truncS(float64(f32(a)), -2147483648, 2147483647))) }
func I32TruncF32U(a Untyped) Untyped { return From32(uint32(truncU(float64(f32(a)), 4294967295))) }
func I32TruncF64S(a Untyped) Untyped { return From32(uint32(truncS(f64(a), -2147483648, 2147483647))) }
func I32TruncF64U(a Untyped) Untyped { return From32(uint32(truncU(f64(a), 4294967295))) }
func I64TruncF32S(a Untyped) Untyped { return From64(uint64(truncS64(float64(f32(a)), math.MinInt64, math.MaxInt64))) }
func I64TruncF32U(a Untyped) Untyped { return From64(truncU64(float64(f32(a)), math.MaxUint64)) }
func I64TruncF64S(a Untyped) Untyped { return From64(uint64(truncS64(f64(a), math.MinInt64, math.MaxInt64))) }
func I64TruncF64U(a Untyped) Untyped { return From64(truncU64(f64(a), math.MaxUint64)) }

func truncS(f float64, min, max int64) int64 {
	if math.IsNaN(f) {
		wasmruntime.Trigger(wasmruntime.TrapBadConversionToInteger)
	}
	t := math.Trunc(f)
	if t < float64(min) || t > float64(max) {
		wasmruntime.Trigger(wasmruntime.TrapIntegerOverflow)
	}
	return int64(t)
}

func truncU(f float64, max uint64) uint64 {
	if math.IsNaN(f) {
		wasmruntime.Trigger(wasmruntime.TrapBadConversionToInteger)
	}
	t := math.Trunc(f)
	if t < 0 || t > float64(max) {
		wasmruntime.Trigger(wasmruntime.TrapIntegerOverflow)
	}
	return uint64(t)
}

// truncS64/truncU64 special-case the 64-bit boundaries since math.MaxInt64
// is not exactly representable in float64.
func truncS64(f float64, min, max int64) int64 {
	if math.IsNaN(f) {
		wasmruntime.Trigger(wasmruntime.TrapBadConversionToInteger)
	}
	t := math.Trunc(f)
	if t < -9223372036854775808.0 || t >= 9223372036854775808.0 {
		wasmruntime.Trigger(wasmruntime.TrapIntegerOverflow)
	}
	return int64(t)
}

func truncU64(f float64, _ uint64) uint64 {
	if math.IsNaN(f) {
		wasmruntime.Trigger(wasmruntime.TrapBadConversionToInteger)
	}
	t := math.Trunc(f)
	if t < 0 || t >= 18446744073709551616.0 {
		wasmruntime.Trigger(wasmruntime.TrapIntegerOverflow)
	}
	return uint64(t)
}

// Saturating trunc (the saturating-float-to-int proposal): never traps.
// NaN -> 0, out-of-range -> nearest representable.

func I32TruncSatF32S(a Untyped) Untyped { return From32(uint32(satS(float64(f32(a)), math.MinInt32, math.MaxInt32))) }
func I32TruncSatF32U(a Untyped) Untyped { return From32(uint32(satU(float64(f32(a)), math.MaxUint32))) }
func I32TruncSatF64S(a Untyped) Untyped { return From32(uint32(satS(f64(a), math.MinInt32, math.MaxInt32))) }
func I32TruncSatF64U(a Untyped) Untyped { return From32(uint32(satU(f64(a), math.MaxUint32))) }
func I64TruncSatF32S(a Untyped) Untyped { return From64(uint64(satS64(float64(f32(a))))) }
func I64TruncSatF32U(a Untyped) Untyped { return From64(satU64(float64(f32(a)))) }
func I64TruncSatF64S(a Untyped) Untyped { return From64(uint64(satS64(f64(a)))) }
func I64TruncSatF64U(a Untyped) Untyped { return From64(satU64(f64(a))) }

func satS(f float64, min, max int64) int64 {
	if math.IsNaN(f) {
		return 0
	}
	t := math.Trunc(f)
	switch {
	case t < float64(min):
		return min
	case t > float64(max):
		return max
	default:
		return int64(t)
	}
}

func satU(f float64, max uint64) uint64 {
	if math.IsNaN(f) {
		return 0
	}
	t := math.Trunc(f)
	switch {
	case t < 0:
		return 0
	case t > float64(max):
		return max
	default:
		return uint64(t)
	}
}

func satS64(f float64) int64 {
	if math.IsNaN(f) {
		return 0
	}
	t := math.Trunc(f)
	switch {
	case t < -9223372036854775808.0:
		return math.MinInt64
	case t >= 9223372036854775808.0:
		return math.MaxInt64
	default:
		return int64(t)
	}
}

func satU64(f float64) uint64 {
	if math.IsNaN(f) {
		return 0
	}
	t := math.Trunc(f)
	switch {
	case t < 0:
		return 0
	case t >= 18446744073709551616.0:
		return math.MaxUint64
	default:
		return uint64(t)
	}
}
