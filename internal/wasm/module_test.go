package wasm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wasmi-go/wasmi/internal/value"
)

func addSig() FuncType {
	return FuncType{Params: []value.Type{value.I32, value.I32}, Results: []value.Type{value.I32}}
}

func TestFuncSignatureCombinesImportsAndLocals(t *testing.T) {
	m := &Module{
		Types: []FuncType{addSig(), {Results: []value.Type{value.F64}}},
		Imports: []Import{
			{Module: "env", Name: "imported", Kind: ImportFunc, TypeIndex: 1},
		},
		Funcs: []FuncDef{{TypeIndex: 0, Name: "local"}},
	}

	params, results, imported := m.FuncSignature(0)
	require.True(t, imported)
	require.Nil(t, params)
	require.Equal(t, []value.Type{value.F64}, results)

	params, results, imported = m.FuncSignature(1)
	require.False(t, imported)
	require.Equal(t, []value.Type{value.I32, value.I32}, params)
	require.Equal(t, []value.Type{value.I32}, results)
}

func TestTypeSignature(t *testing.T) {
	m := &Module{Types: []FuncType{addSig()}}
	params, results := m.TypeSignature(0)
	require.Equal(t, []value.Type{value.I32, value.I32}, params)
	require.Equal(t, []value.Type{value.I32}, results)
}

func TestGlobalTypeCombinesImportsAndLocals(t *testing.T) {
	m := &Module{
		Imports: []Import{
			{Module: "env", Name: "g", Kind: ImportGlobal, GlobalType: GlobalType{Type: value.I64, Mutable: true}},
		},
		Globals: []GlobalDef{{Type: GlobalType{Type: value.F32}}},
	}

	require.Equal(t, value.I64, m.GlobalType(0))
	require.Equal(t, value.F32, m.GlobalType(1))
}

func TestImportCountOnlyCountsMatchingKind(t *testing.T) {
	m := &Module{
		Imports: []Import{
			{Kind: ImportFunc},
			{Kind: ImportMemory},
			{Kind: ImportFunc},
			{Kind: ImportGlobal},
		},
	}
	require.Equal(t, uint32(2), m.importCount(ImportFunc))
	require.Equal(t, uint32(1), m.importCount(ImportMemory))
	require.Equal(t, uint32(1), m.importCount(ImportGlobal))
	require.Equal(t, uint32(0), m.importCount(ImportTable))
}

func TestNthFuncImportSkipsOtherKinds(t *testing.T) {
	m := &Module{
		Imports: []Import{
			{Kind: ImportMemory},
			{Module: "env", Name: "first", Kind: ImportFunc},
			{Kind: ImportTable},
			{Module: "env", Name: "second", Kind: ImportFunc},
		},
	}
	require.Equal(t, "first", m.nthFuncImport(0).Name)
	require.Equal(t, "second", m.nthFuncImport(1).Name)
}

func TestNthFuncImportOutOfRangePanics(t *testing.T) {
	m := &Module{}
	require.Panics(t, func() { m.nthFuncImport(0) })
}
