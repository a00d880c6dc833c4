package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypeString(t *testing.T) {
	cases := map[Type]string{
		I32: "i32", I64: "i64", F32: "f32", F64: "f64",
		FuncRef: "funcref", ExternRef: "externref",
	}
	for ty, want := range cases {
		require.Equal(t, want, ty.String())
	}
	require.Equal(t, "unknown(0x1)", Type(0x01).String())
}

func TestTypeIsReference(t *testing.T) {
	for _, ty := range []Type{FuncRef, ExternRef} {
		require.True(t, ty.IsReference())
	}
	for _, ty := range []Type{I32, I64, F32, F64} {
		require.False(t, ty.IsReference())
	}
}

func TestFrom32RoundTrip(t *testing.T) {
	v := From32(0xdeadbeef)
	require.Equal(t, uint32(0xdeadbeef), v.I32())
	require.Equal(t, Untyped(0xdeadbeef), v)
}

func TestFrom64RoundTrip(t *testing.T) {
	v := From64(0x0102030405060708)
	require.Equal(t, uint64(0x0102030405060708), v.I64())
}

func TestIsNullRef(t *testing.T) {
	require.True(t, IsNullRef(NullRef))
	require.False(t, IsNullRef(From32(1)))
}
