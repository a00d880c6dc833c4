package ir

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConstRegRoundTrip(t *testing.T) {
	for i := 0; i < 5; i++ {
		r := ConstReg(i)
		require.True(t, r.IsConst())
		require.Equal(t, i, r.ConstIndex())
	}
}

func TestRegIsConstForNonNegative(t *testing.T) {
	require.False(t, Reg(0).IsConst())
	require.False(t, Reg(7).IsConst())
}

func TestRegSpanAt(t *testing.T) {
	s := RegSpan{First: Reg(3), Len: 4}
	require.Equal(t, Reg(3), s.At(0))
	require.Equal(t, Reg(6), s.At(3))
}

func TestFitsBranchOffset16(t *testing.T) {
	require.True(t, FitsBranchOffset16(0))
	require.True(t, FitsBranchOffset16(32767))
	require.True(t, FitsBranchOffset16(-32768))
	require.False(t, FitsBranchOffset16(32768))
	require.False(t, FitsBranchOffset16(-32769))
}

func TestComparatorNegateIsInvolution(t *testing.T) {
	cmps := []Comparator{
		CmpI32Eq, CmpI32Ne, CmpI32LtS, CmpI32LtU, CmpI32GtS, CmpI32GtU,
		CmpI32LeS, CmpI32LeU, CmpI32GeS, CmpI32GeU, CmpI32And, CmpI32AndEqz,
		CmpI64Eq, CmpI64Ne, CmpI64LtS, CmpI64LtU, CmpI64GtS, CmpI64GtU,
		CmpI64LeS, CmpI64LeU, CmpI64GeS, CmpI64GeU,
		CmpF32Eq, CmpF32Ne, CmpF64Eq, CmpF64Ne,
	}
	for _, c := range cmps {
		require.Equal(t, c, c.Negate().Negate(), "Negate(Negate(%v)) != %v", c, c)
		require.NotEqual(t, c, c.Negate(), "%v.Negate() should differ from itself", c)
	}
}

func TestComparatorNegateSpecificPairs(t *testing.T) {
	require.Equal(t, CmpI32GeS, CmpI32LtS.Negate())
	require.Equal(t, CmpI32Ne, CmpI32Eq.Negate())
	require.Equal(t, CmpI32AndEqz, CmpI32And.Negate())
}
