package moremath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWasmCompatMin(t *testing.T) {
	require.True(t, math.IsNaN(WasmCompatMin(math.NaN(), 1)))
	require.True(t, math.IsNaN(WasmCompatMin(1, math.NaN())))
	require.Equal(t, math.Inf(-1), WasmCompatMin(math.Inf(-1), 1))
	require.Equal(t, float64(1), WasmCompatMin(1, 2))
	require.Equal(t, float64(1), WasmCompatMin(2, 1))

	negZero := math.Copysign(0, -1)
	require.Equal(t, negZero, WasmCompatMin(negZero, 0))
	require.Equal(t, negZero, WasmCompatMin(0, negZero))
}

func TestWasmCompatMax(t *testing.T) {
	require.True(t, math.IsNaN(WasmCompatMax(math.NaN(), 1)))
	require.True(t, math.IsNaN(WasmCompatMax(1, math.NaN())))
	require.Equal(t, math.Inf(1), WasmCompatMax(math.Inf(1), 1))
	require.Equal(t, float64(2), WasmCompatMax(1, 2))
	require.Equal(t, float64(2), WasmCompatMax(2, 1))

	negZero := math.Copysign(0, -1)
	require.Equal(t, float64(0), WasmCompatMax(negZero, 0))
	require.Equal(t, float64(0), WasmCompatMax(0, negZero))
}
