package wasmi

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wasmi-go/wasmi/internal/value"
	"github.com/wasmi-go/wasmi/internal/wasm"
)

func TestHostModuleBuilderExportsFunctionsInAddOrder(t *testing.T) {
	engine := NewEngine(nil)
	store := engine.NewStore()

	host := store.NewHostModuleBuilder("env").
		WithFunc("first", FuncType{}, func(ctx context.Context, args []Value) ([]Value, error) { return nil, nil }).
		WithFunc("second", FuncType{}, func(ctx context.Context, args []Value) ([]Value, error) { return nil, nil }).
		Instantiate()

	first, ok := host.raw.Exports["first"]
	require.True(t, ok)
	require.Equal(t, uint32(0), first.Index)

	second, ok := host.raw.Exports["second"]
	require.True(t, ok)
	require.Equal(t, uint32(1), second.Index)
}

func TestHostModuleBuilderExportedFunctionIsDirectlyCallable(t *testing.T) {
	engine := NewEngine(nil)
	store := engine.NewStore()

	host := store.NewHostModuleBuilder("env").
		WithFunc("answer", FuncType{Results: []ValueType{value.I32}},
			func(ctx context.Context, args []Value) ([]Value, error) {
				return []Value{ValueI32(42)}, nil
			}).
		Instantiate()

	fn := host.ExportedFunction("answer")
	require.NotNil(t, fn)
	results, err := fn.Call(context.Background())
	require.NoError(t, err)
	require.Equal(t, int32(42), AsI32(results[0]))
}

func TestHostModuleBuilderExportMemory(t *testing.T) {
	engine := NewEngine(nil)
	store := engine.NewStore()

	host := store.NewHostModuleBuilder("env").ExportMemory(1, 2).Instantiate()

	exp, ok := host.raw.Exports["memory"]
	require.True(t, ok)
	require.Equal(t, wasm.ExportMemory, exp.Kind)
	require.Len(t, host.raw.Memories, 1)
	require.Equal(t, uint32(wasm.PageSize), uint32(len(host.raw.Memories[0].Data)))
}

func TestHostModuleFuncRegistersForImportResolution(t *testing.T) {
	engine := NewEngine(nil)
	store := engine.NewStore()
	store.NewHostModuleBuilder("env").
		WithFunc("noop", FuncType{}, func(ctx context.Context, args []Value) ([]Value, error) { return nil, nil }).
		Instantiate()

	m := &Module{
		Imports: []wasm.Import{{Module: "env", Name: "noop", Kind: wasm.ImportFunc}},
	}
	inst, err := store.Instantiate(context.Background(), m, "consumer", nil)
	require.NoError(t, err)
	require.Len(t, inst.raw.Funcs, 1)
}
