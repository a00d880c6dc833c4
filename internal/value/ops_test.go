package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wasmi-go/wasmi/internal/wasmruntime"
)

func i32(v int32) Untyped  { return From32(uint32(v)) }
func i64v(v int64) Untyped { return From64(uint64(v)) }

func requireTrap(t *testing.T, code wasmruntime.TrapCode, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a trap panic")
		c, ok := wasmruntime.Recover(r)
		require.True(t, ok, "recovered value was not a trap panic: %v", r)
		require.Equal(t, code, c)
	}()
	f()
}

func TestI32Arithmetic(t *testing.T) {
	require.Equal(t, i32(3), I32Add(i32(1), i32(2)))
	require.Equal(t, i32(-1), I32Sub(i32(1), i32(2)))
	require.Equal(t, i32(6), I32Mul(i32(2), i32(3)))
}

func TestI32DivS(t *testing.T) {
	require.Equal(t, i32(-3), I32DivS(i32(-7), i32(2)))
	requireTrap(t, wasmruntime.TrapIntegerDivisionByZero, func() { I32DivS(i32(1), i32(0)) })
	requireTrap(t, wasmruntime.TrapIntegerOverflow, func() { I32DivS(i32(math.MinInt32), i32(-1)) })
}

func TestI32RemS(t *testing.T) {
	require.Equal(t, i32(-1), I32RemS(i32(-7), i32(2)))
	// rem by -1 never overflows even at MinInt32.
	require.Equal(t, i32(0), I32RemS(i32(math.MinInt32), i32(-1)))
	requireTrap(t, wasmruntime.TrapIntegerDivisionByZero, func() { I32RemS(i32(1), i32(0)) })
}

func TestI64DivS(t *testing.T) {
	requireTrap(t, wasmruntime.TrapIntegerOverflow, func() { I64DivS(i64v(math.MinInt64), i64v(-1)) })
}

func TestShiftsMaskCount(t *testing.T) {
	// Shift amounts wrap modulo the operand width.
	require.Equal(t, I32Shl(i32(1), i32(1)), I32Shl(i32(1), i32(33)))
	require.Equal(t, I64Shl(i64v(1), i64v(1)), I64Shl(i64v(1), i64v(65)))
}

func TestRotate(t *testing.T) {
	require.Equal(t, i32(int32(0x80000000)), I32Rotl(i32(1), i32(31)))
	require.Equal(t, i32(1), I32Rotr(i32(int32(0x80000000)), i32(31)))
}

func TestComparisons(t *testing.T) {
	require.Equal(t, i32(1), I32LtS(i32(-1), i32(0)))
	require.Equal(t, i32(0), I32LtU(i32(-1), i32(0))) // -1 as unsigned is huge
	require.Equal(t, i32(1), I32Eq(i32(5), i32(5)))
}

func TestF32MinMaxNaN(t *testing.T) {
	nan := f32v(float32(math.NaN()))
	one := f32v(1)
	require.True(t, math.IsNaN(float64(f32(F32Min(nan, one)))))
	require.True(t, math.IsNaN(float64(f32(F32Max(one, nan)))))
}

func TestF32MinPrefersNegativeZero(t *testing.T) {
	negZero := f32v(float32(math.Copysign(0, -1)))
	posZero := f32v(0)
	got := F32Min(negZero, posZero)
	require.True(t, math.Signbit(float64(f32(got))))
}

func TestReinterpretIsBitIdentity(t *testing.T) {
	v := f32v(3.14)
	require.Equal(t, v, F32ReinterpretI32(I32ReinterpretF32(v)))
}

func TestTruncTraps(t *testing.T) {
	requireTrap(t, wasmruntime.TrapBadConversionToInteger, func() {
		I32TruncF32S(f32v(float32(math.NaN())))
	})
	requireTrap(t, wasmruntime.TrapIntegerOverflow, func() {
		I32TruncF64S(f64v(1e18))
	})
}

func TestTruncSatNeverTraps(t *testing.T) {
	require.Equal(t, i32(0), I32TruncSatF32S(f32v(float32(math.NaN()))))
	require.Equal(t, i32(math.MaxInt32), I32TruncSatF64S(f64v(1e18)))
	require.Equal(t, i32(math.MinInt32), I32TruncSatF64S(f64v(-1e18)))
}

func TestSignExtension(t *testing.T) {
	require.Equal(t, i32(-1), I32Extend8S(i32(0xff)))
	require.Equal(t, i32(127), I32Extend8S(i32(0x7f)))
	require.Equal(t, i64v(-1), I64Extend32S(i64v(0xffffffff)))
}
