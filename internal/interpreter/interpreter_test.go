package interpreter_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wasmi-go/wasmi/internal/interpreter"
	"github.com/wasmi-go/wasmi/internal/translator"
	"github.com/wasmi-go/wasmi/internal/value"
	"github.com/wasmi-go/wasmi/internal/wasm"
	"github.com/wasmi-go/wasmi/internal/wasmruntime"
)

func instantiate(t *testing.T, m *wasm.Module) *wasm.Instance {
	t.Helper()
	s := wasm.NewStore()
	inst, err := s.Instantiate(m, "i", nil, false)
	require.NoError(t, err)
	return inst
}

func TestCallAddViaLocals(t *testing.T) {
	m := &wasm.Module{
		Name:  "m",
		Types: []wasm.FuncType{{Params: []value.Type{value.I32, value.I32}, Results: []value.Type{value.I32}}},
		Funcs: []wasm.FuncDef{{
			TypeIndex: 0,
			Name:      "add",
			Body: []translator.Op{
				{Kind: translator.OpLocalGet, Idx: 0},
				{Kind: translator.OpLocalGet, Idx: 1},
				{Kind: translator.OpNumericBinary, Num: translator.NumI32Add},
				{Kind: translator.OpReturn},
				{Kind: translator.OpEnd},
			},
		}},
	}
	inst := instantiate(t, m)
	results, err := interpreter.Call(context.Background(), inst, inst.Func(0),
		[]value.Untyped{value.From32(2), value.From32(40)})
	require.NoError(t, err)
	require.Equal(t, uint32(42), results[0].I32())
}

func requireTrapCode(t *testing.T, err error, want wasmruntime.TrapCode) {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, err, want)
}

func TestDivisionOverflowTraps(t *testing.T) {
	m := &wasm.Module{
		Name:  "m",
		Types: []wasm.FuncType{{Results: []value.Type{value.I32}}},
		Funcs: []wasm.FuncDef{{
			TypeIndex: 0,
			Name:      "divOverflow",
			Body: []translator.Op{
				{Kind: translator.OpI32Const, I32: math.MinInt32},
				{Kind: translator.OpI32Const, I32: -1},
				{Kind: translator.OpNumericBinary, Num: translator.NumI32DivS},
				{Kind: translator.OpReturn},
				{Kind: translator.OpEnd},
			},
		}},
	}
	inst := instantiate(t, m)
	_, err := interpreter.Call(context.Background(), inst, inst.Func(0), nil)
	requireTrapCode(t, err, wasmruntime.TrapIntegerOverflow)
}

func TestF32MinWithNaNPropagatesNaN(t *testing.T) {
	m := &wasm.Module{
		Name:  "m",
		Types: []wasm.FuncType{{Results: []value.Type{value.F32}}},
		Funcs: []wasm.FuncDef{{
			TypeIndex: 0,
			Name:      "f32min",
			Body: []translator.Op{
				{Kind: translator.OpF32Const, F32: float32(math.NaN())},
				{Kind: translator.OpF32Const, F32: 1},
				{Kind: translator.OpNumericBinary, Num: translator.NumF32Min},
				{Kind: translator.OpReturn},
				{Kind: translator.OpEnd},
			},
		}},
	}
	inst := instantiate(t, m)
	results, err := interpreter.Call(context.Background(), inst, inst.Func(0), nil)
	require.NoError(t, err)
	require.True(t, math.IsNaN(float64(math.Float32frombits(results[0].F32Bits()))))
}

func TestF32MinCanonicalizesNaNWhenEnabled(t *testing.T) {
	m := &wasm.Module{
		Name:  "m",
		Types: []wasm.FuncType{{Results: []value.Type{value.F32}}},
		Funcs: []wasm.FuncDef{{
			TypeIndex: 0,
			Name:      "f32min",
			Body: []translator.Op{
				// A NaN with a non-canonical payload (sign bit + an
				// arbitrary non-zero mantissa besides the quiet bit).
				{Kind: translator.OpF32Const, F32: math.Float32frombits(0xffc00001)},
				{Kind: translator.OpF32Const, F32: 1},
				{Kind: translator.OpNumericBinary, Num: translator.NumF32Min},
				{Kind: translator.OpReturn},
				{Kind: translator.OpEnd},
			},
		}},
	}
	inst := instantiate(t, m)
	results, err := interpreter.Call(context.Background(), inst, inst.Func(0), nil,
		interpreter.WithCanonicalizeNaN(true))
	require.NoError(t, err)
	require.Equal(t, math.Float32bits(float32(math.NaN())), results[0].F32Bits())
}

func TestMemoryStoreAndLoadRoundTrip(t *testing.T) {
	m := &wasm.Module{
		Name:     "m",
		Types:    []wasm.FuncType{{Results: []value.Type{value.I32}}},
		Memories: []wasm.MemoryType{{Min: 1}},
		Funcs: []wasm.FuncDef{{
			TypeIndex: 0,
			Name:      "storeLoad",
			Body: []translator.Op{
				{Kind: translator.OpI32Const, I32: 8},
				{Kind: translator.OpI32Const, I32: 42},
				{Kind: translator.OpI32Store},
				{Kind: translator.OpI32Const, I32: 8},
				{Kind: translator.OpI32Load},
				{Kind: translator.OpReturn},
				{Kind: translator.OpEnd},
			},
		}},
	}
	inst := instantiate(t, m)
	results, err := interpreter.Call(context.Background(), inst, inst.Func(0), nil)
	require.NoError(t, err)
	require.Equal(t, uint32(42), results[0].I32())
}

func TestMemoryLoadOneBytePastEndTraps(t *testing.T) {
	m := &wasm.Module{
		Name:     "m",
		Types:    []wasm.FuncType{{Results: []value.Type{value.I32}}},
		Memories: []wasm.MemoryType{{Min: 1}},
		Funcs: []wasm.FuncDef{{
			TypeIndex: 0,
			Name:      "oob",
			Body: []translator.Op{
				// An i32 load is 4 bytes; starting at PageSize-3 reads one
				// byte past the single-page memory's end.
				{Kind: translator.OpI32Const, I32: int32(wasm.PageSize) - 3},
				{Kind: translator.OpI32Load},
				{Kind: translator.OpReturn},
				{Kind: translator.OpEnd},
			},
		}},
	}
	inst := instantiate(t, m)
	_, err := interpreter.Call(context.Background(), inst, inst.Func(0), nil)
	requireTrapCode(t, err, wasmruntime.TrapMemoryOutOfBounds)
}

func TestResumableHostCallSuspendsAndResumes(t *testing.T) {
	hostFn := &wasm.Func{
		Kind: wasm.FuncKindHost,
		Type: wasm.FuncType{Results: []value.Type{value.I32}},
		Host: func(ctx context.Context, args []value.Untyped) ([]value.Untyped, error) {
			return nil, wasmruntime.ErrHostSuspend
		},
	}
	m := &wasm.Module{
		Name:    "m",
		Types:   []wasm.FuncType{{Results: []value.Type{value.I32}}},
		Imports: []wasm.Import{{Module: "env", Name: "suspend", Kind: wasm.ImportFunc}},
		Funcs: []wasm.FuncDef{{
			TypeIndex: 0,
			Name:      "callHost",
			Body: []translator.Op{
				{Kind: translator.OpCall, Idx: 0},
				{Kind: translator.OpReturn},
				{Kind: translator.OpEnd},
			},
		}},
	}
	s := wasm.NewStore()
	inst, err := s.Instantiate(m, "i", wasm.HostImports{"env.suspend": hostFn}, false)
	require.NoError(t, err)

	results, resumable, err := interpreter.CallResumable(context.Background(), inst, inst.Func(1), nil)
	require.NoError(t, err)
	require.Nil(t, results)
	require.NotNil(t, resumable)
	require.Equal(t, []value.Type{value.I32}, resumable.ResultTypes())

	results, resumable, err = resumable.Resume(context.Background(), []value.Untyped{value.From32(99)})
	require.NoError(t, err)
	require.Nil(t, resumable)
	require.Equal(t, uint32(99), results[0].I32())
}
