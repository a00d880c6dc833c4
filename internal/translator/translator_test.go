package translator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wasmi-go/wasmi/internal/interpreter"
	"github.com/wasmi-go/wasmi/internal/translator"
	"github.com/wasmi-go/wasmi/internal/value"
	"github.com/wasmi-go/wasmi/internal/wasm"
)

// callExported builds a one-function module from body, instantiates it, and
// calls its sole export, returning the call's results.
func callExported(t *testing.T, sig wasm.FuncType, body []translator.Op, args ...value.Untyped) []value.Untyped {
	t.Helper()
	m := &wasm.Module{
		Name:    "m",
		Types:   []wasm.FuncType{sig},
		Funcs:   []wasm.FuncDef{{TypeIndex: 0, Body: body, Name: "f"}},
		Exports: []wasm.ExportDef{{Name: "f", Kind: wasm.ExportFunc, Index: 0}},
	}
	s := wasm.NewStore()
	inst, err := s.Instantiate(m, "i", nil, false)
	require.NoError(t, err)

	results, err := interpreter.Call(context.Background(), inst, inst.Func(0), args)
	require.NoError(t, err)
	return results
}

func TestRefNullIsNull(t *testing.T) {
	sig := wasm.FuncType{Results: []value.Type{value.I32}}
	body := []translator.Op{
		{Kind: translator.OpRefNull, RefType: value.FuncRef},
		{Kind: translator.OpRefIsNull},
		{Kind: translator.OpReturn},
		{Kind: translator.OpEnd},
	}
	results := callExported(t, sig, body)
	require.Equal(t, int32(1), int32(results[0].I32()))
}

func TestRefFuncIsNotNull(t *testing.T) {
	sig := wasm.FuncType{Results: []value.Type{value.I32}}
	body := []translator.Op{
		{Kind: translator.OpRefFunc, Idx: 0},
		{Kind: translator.OpRefIsNull},
		{Kind: translator.OpReturn},
		{Kind: translator.OpEnd},
	}
	results := callExported(t, sig, body)
	require.Equal(t, int32(0), int32(results[0].I32()))
}

func TestRefFuncEncodingMatchesEncodeFuncRef(t *testing.T) {
	sig := wasm.FuncType{Results: []value.Type{value.FuncRef}}
	body := []translator.Op{
		{Kind: translator.OpRefFunc, Idx: 3},
		{Kind: translator.OpReturn},
		{Kind: translator.OpEnd},
	}
	results := callExported(t, sig, body)
	require.Equal(t, wasm.EncodeFuncRef(3), results[0])
}

func TestBlockWrappingStraightLineCode(t *testing.T) {
	sig := wasm.FuncType{
		Params:  []value.Type{value.I32, value.I32},
		Results: []value.Type{value.I32},
	}
	body := []translator.Op{
		{Kind: translator.OpBlock, Block: translator.BlockType{Results: []value.Type{value.I32}}},
		{Kind: translator.OpLocalGet, Idx: 0},
		{Kind: translator.OpLocalGet, Idx: 1},
		{Kind: translator.OpNumericBinary, Num: translator.NumI32Mul},
		{Kind: translator.OpEnd}, // ends the block
		{Kind: translator.OpReturn},
		{Kind: translator.OpEnd}, // ends the function
	}
	results := callExported(t, sig, body, value.From32(6), value.From32(7))
	require.Equal(t, int32(42), int32(results[0].I32()))
}

func TestGlobalGetReflectsInitialValue(t *testing.T) {
	m := &wasm.Module{
		Name:  "g",
		Types: []wasm.FuncType{{Results: []value.Type{value.I64}}},
		Globals: []wasm.GlobalDef{
			{Type: wasm.GlobalType{Type: value.I64}, Init: value.From64(7)},
		},
		Funcs: []wasm.FuncDef{{
			TypeIndex: 0,
			Name:      "f",
			Body: []translator.Op{
				{Kind: translator.OpGlobalGet, Idx: 0},
				{Kind: translator.OpReturn},
				{Kind: translator.OpEnd},
			},
		}},
		Exports: []wasm.ExportDef{{Name: "f", Kind: wasm.ExportFunc, Index: 0}},
	}
	s := wasm.NewStore()
	inst, err := s.Instantiate(m, "i", nil, false)
	require.NoError(t, err)

	results, err := interpreter.Call(context.Background(), inst, inst.Func(0), nil)
	require.NoError(t, err)
	require.Equal(t, uint64(7), results[0].I64())
}
