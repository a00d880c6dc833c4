package wasmi

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wasmi-go/wasmi/internal/translator"
	"github.com/wasmi-go/wasmi/internal/value"
	"github.com/wasmi-go/wasmi/internal/wasm"
)

func addModule(name string) *Module {
	sig := wasm.FuncType{
		Params:  []value.Type{value.I32, value.I32},
		Results: []value.Type{value.I32},
	}
	body := []translator.Op{
		{Kind: translator.OpLocalGet, Idx: 0},
		{Kind: translator.OpLocalGet, Idx: 1},
		{Kind: translator.OpNumericBinary, Num: translator.NumI32Add},
		{Kind: translator.OpReturn},
		{Kind: translator.OpEnd},
	}
	return &Module{
		Name:    name,
		Types:   []wasm.FuncType{sig},
		Funcs:   []wasm.FuncDef{{TypeIndex: 0, Body: body, Name: "add"}},
		Exports: []wasm.ExportDef{{Name: "add", Kind: wasm.ExportFunc, Index: 0}},
	}
}

func TestStoreInstantiateAndCallAdd(t *testing.T) {
	engine := NewEngine(nil)
	store := engine.NewStore()

	inst, err := store.Instantiate(context.Background(), addModule("m"), "m1", nil)
	require.NoError(t, err)

	add := inst.ExportedFunction("add")
	require.NotNil(t, add)

	results, err := add.Call(context.Background(), ValueI32(2), ValueI32(40))
	require.NoError(t, err)
	require.Equal(t, int32(42), AsI32(results[0]))
}

func TestExportedFunctionMissingNameIsNil(t *testing.T) {
	engine := NewEngine(nil)
	store := engine.NewStore()
	inst, err := store.Instantiate(context.Background(), addModule("m"), "m1", nil)
	require.NoError(t, err)
	require.Nil(t, inst.ExportedFunction("missing"))
}

func TestDiskCachePersistsAcrossEngines(t *testing.T) {
	dir := t.TempDir()

	cache1 := NewCache()
	require.NoError(t, cache1.WithCompilationCacheDirName(dir))
	engine1 := NewEngine(nil).WithCache(cache1)
	store1 := engine1.NewStore()

	inst1, err := store1.Instantiate(context.Background(), addModule("cached"), "inst1", nil)
	require.NoError(t, err)
	results, err := inst1.ExportedFunction("add").Call(context.Background(), ValueI32(1), ValueI32(2))
	require.NoError(t, err)
	require.Equal(t, int32(3), AsI32(results[0]))

	// A fresh Engine pointed at the same on-disk cache directory should pick
	// up the previously translated function without needing its own
	// in-memory compile first.
	cache2 := NewCache()
	require.NoError(t, cache2.WithCompilationCacheDirName(dir))
	engine2 := NewEngine(nil).WithCache(cache2)
	store2 := engine2.NewStore()

	inst2, err := store2.Instantiate(context.Background(), addModule("cached"), "inst2", nil)
	require.NoError(t, err)
	results, err = inst2.ExportedFunction("add").Call(context.Background(), ValueI32(5), ValueI32(6))
	require.NoError(t, err)
	require.Equal(t, int32(11), AsI32(results[0]))
}

func TestFuelExhaustionTraps(t *testing.T) {
	cfg := NewRuntimeConfig().WithFuel(0)
	engine := NewEngine(cfg)
	store := engine.NewStore()

	inst, err := store.Instantiate(context.Background(), addModule("m"), "m1", nil)
	require.NoError(t, err)

	_, err = inst.ExportedFunction("add").Call(context.Background(), ValueI32(1), ValueI32(2))
	require.Error(t, err)
}

func TestHostFunctionImportIsCallable(t *testing.T) {
	engine := NewEngine(nil)
	store := engine.NewStore()

	host := store.NewHostModuleBuilder("env").
		WithFunc("double", FuncType{Params: []ValueType{value.I32}, Results: []ValueType{value.I32}},
			func(ctx context.Context, args []Value) ([]Value, error) {
				return []Value{ValueI32(AsI32(args[0]) * 2)}, nil
			}).
		Instantiate()
	require.NotNil(t, host)

	m := &Module{
		Name:  "importer",
		Types: []wasm.FuncType{{Params: []value.Type{value.I32}, Results: []value.Type{value.I32}}},
		Imports: []wasm.Import{
			{Module: "env", Name: "double", Kind: wasm.ImportFunc, TypeIndex: 0},
		},
		Exports: []wasm.ExportDef{{Name: "double", Kind: wasm.ExportFunc, Index: 0}},
	}
	inst, err := store.Instantiate(context.Background(), m, "importer1", nil)
	require.NoError(t, err)

	results, err := inst.ExportedFunction("double").Call(context.Background(), ValueI32(21))
	require.NoError(t, err)
	require.Equal(t, int32(42), AsI32(results[0]))
}
