package wasm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wasmi-go/wasmi/internal/translator"
	"github.com/wasmi-go/wasmi/internal/value"
)

func addModule(name string) *Module {
	return &Module{
		Name:  name,
		Types: []FuncType{addSig()},
		Funcs: []FuncDef{{
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
		Exports: []ExportDef{{Name: "add", Kind: ExportFunc, Index: 0}},
	}
}

func TestInstantiateTranslatesAndCaches(t *testing.T) {
	s := NewStore()
	m := addModule("m")

	inst, err := s.Instantiate(m, "m1", nil, false)
	require.NoError(t, err)
	require.Len(t, inst.Funcs, 1)
	require.Equal(t, FuncKindInternal, inst.Funcs[0].Kind)
	require.NotNil(t, inst.Funcs[0].Compiled)
	require.Equal(t, 1, s.CompiledModuleCount())

	exp, ok := inst.Exports["add"]
	require.True(t, ok)
	require.Equal(t, ExportFunc, exp.Kind)

	_, cacheHit := s.LookupCompiled("m")
	require.True(t, cacheHit)

	// A second instantiation of the same module name reuses the cached
	// translation rather than compiling again.
	inst2, err := s.Instantiate(m, "m2", nil, false)
	require.NoError(t, err)
	require.Same(t, inst.Funcs[0].Compiled, inst2.Funcs[0].Compiled)
}

func TestInstantiateResolvesFunctionImportFromHost(t *testing.T) {
	s := NewStore()
	hostFn := &Func{Kind: FuncKindHost, Type: addSig()}
	host := HostImports{"env.add": hostFn}

	m := &Module{
		Name:  "importer",
		Types: []FuncType{addSig()},
		Imports: []Import{
			{Module: "env", Name: "add", Kind: ImportFunc, TypeIndex: 0},
		},
	}

	inst, err := s.Instantiate(m, "importer1", host, false)
	require.NoError(t, err)
	require.Len(t, inst.Funcs, 1)
	require.Same(t, hostFn, inst.Funcs[0])
}

func TestInstantiateResolvesFunctionImportFromRegisteredInstance(t *testing.T) {
	s := NewStore()
	_, err := s.Instantiate(addModule("provider"), "provider", nil, false)
	require.NoError(t, err)

	m := &Module{
		Name: "consumer",
		Imports: []Import{
			{Module: "provider", Name: "add", Kind: ImportFunc},
		},
	}
	inst, err := s.Instantiate(m, "consumer1", nil, false)
	require.NoError(t, err)
	require.Equal(t, "add", inst.Funcs[0].DebugName)
}

func TestInstantiateUnresolvedFunctionImportErrors(t *testing.T) {
	s := NewStore()
	m := &Module{
		Imports: []Import{{Module: "env", Name: "missing", Kind: ImportFunc}},
	}
	_, err := s.Instantiate(m, "x", nil, false)
	require.Error(t, err)
}

func TestInstantiateMemoryImportAliasesSameMemory(t *testing.T) {
	s := NewStore()
	provider := &Module{
		Name:     "provider",
		Memories: []MemoryType{{Min: 1}},
		Exports:  []ExportDef{{Name: "mem", Kind: ExportMemory, Index: 0}},
	}
	providerInst, err := s.Instantiate(provider, "provider", nil, false)
	require.NoError(t, err)

	consumer := &Module{
		Imports: []Import{{Module: "provider", Name: "mem", Kind: ImportMemory}},
	}
	consumerInst, err := s.Instantiate(consumer, "consumer", nil, false)
	require.NoError(t, err)

	require.Same(t, providerInst.Memories[0], consumerInst.Memories[0])

	// Writes through one instance's view are visible through the other's,
	// since both point at the same underlying *Memory.
	providerInst.Memories[0].Data[0] = 0x42
	require.Equal(t, byte(0x42), consumerInst.Memories[0].Data[0])
}

func TestInstantiateAppliesActiveDataSegment(t *testing.T) {
	s := NewStore()
	m := &Module{
		Memories: []MemoryType{{Min: 1}},
		DataSegments: []DataSegmentDef{
			{Active: true, MemoryIndex: 0, Offset: 8, Data: []byte{1, 2, 3}},
		},
	}
	inst, err := s.Instantiate(m, "x", nil, false)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, inst.Memories[0].Data[8:11])
}

func TestInstantiateAppliesActiveElementSegment(t *testing.T) {
	s := NewStore()
	m := &Module{
		Tables: []TableType{{Type: value.FuncRef, Min: 4}},
		ElementSegments: []ElementSegmentDef{
			{Active: true, TableIndex: 0, Offset: 1, Elems: []value.Untyped{EncodeFuncRef(0)}},
		},
	}
	inst, err := s.Instantiate(m, "x", nil, false)
	require.NoError(t, err)
	require.Equal(t, EncodeFuncRef(0), inst.Tables[0].Elems[1])
}
