package compilationcache

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wasmi-go/wasmi/internal/ir"
	"github.com/wasmi-go/wasmi/internal/value"
)

func TestEncodeDecodeFuncs_RoundTrip(t *testing.T) {
	fns := []*ir.CompiledFunc{
		{
			Instrs:       []ir.Instruction{ir.NewInstr(ir.OpI32Add, 0, 1, 2, 0), ir.NewInstr(ir.OpReturnReg, 0, 0, 0, 0)},
			Consts:       []value.Untyped{value.From32(42)},
			LenRegisters: 3,
			LenParams:    2,
			LenResults:   1,
		},
	}

	data, err := EncodeFuncs(fns)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	decoded, err := DecodeFuncs(data)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	require.Equal(t, fns[0].Instrs, decoded[0].Instrs)
	require.Equal(t, fns[0].Consts, decoded[0].Consts)
	require.Equal(t, fns[0].LenRegisters, decoded[0].LenRegisters)
}

func TestDecodeFuncs_InvalidData(t *testing.T) {
	_, err := DecodeFuncs([]byte{0xff, 0xff, 0xff})
	require.Error(t, err)
}
