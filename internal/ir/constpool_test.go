package ir

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wasmi-go/wasmi/internal/value"
)

func TestConstPoolDedup(t *testing.T) {
	p := NewConstPool()
	r1 := p.Intern(value.From32(42))
	r2 := p.Intern(value.From32(42))
	r3 := p.Intern(value.From32(7))

	require.Equal(t, r1, r2)
	require.NotEqual(t, r1, r3)
	require.Equal(t, 2, p.Len())
	require.Equal(t, []value.Untyped{value.From32(42), value.From32(7)}, p.Values())
}

func TestConstPoolRegAddressesPool(t *testing.T) {
	p := NewConstPool()
	r := p.Intern(value.From32(1))
	require.True(t, r.IsConst())
}

func TestCompiledFuncConstAt(t *testing.T) {
	p := NewConstPool()
	r := p.Intern(value.From32(99))
	f := &CompiledFunc{Consts: p.Values()}

	v, ok := f.ConstAt(r)
	require.True(t, ok)
	require.Equal(t, value.From32(99), v)

	_, ok = f.ConstAt(Reg(0))
	require.False(t, ok)

	_, ok = f.ConstAt(ConstReg(5))
	require.False(t, ok)
}
