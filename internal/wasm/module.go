package wasm

import (
	"github.com/wasmi-go/wasmi/internal/translator"
	"github.com/wasmi-go/wasmi/internal/value"
)

// ImportKind identifies what an Import resolves to.
type ImportKind byte

const (
	ImportFunc ImportKind = iota
	ImportMemory
	ImportTable
	ImportGlobal
)

// Import names one entity a Module expects its instantiator to supply,
// identified by the two-level module.name scheme the binary format uses.
type Import struct {
	Module, Name string
	Kind         ImportKind

	TypeIndex  uint32 // ImportFunc: index into Module.Types
	MemoryType MemoryType
	TableType  TableType
	GlobalType GlobalType
}

// MemoryType is a memory's declared size limits, in pages.
type MemoryType struct {
	Min, Max uint32
}

// TableType is a table's element type and declared size limits.
type TableType struct {
	Type     value.Type
	Min, Max uint32
}

// GlobalType is a global's value type and mutability.
type GlobalType struct {
	Type    value.Type
	Mutable bool
}

// FuncDef is one module-defined (non-imported) function: its signature (by
// type index), its declared locals beyond the parameters, and its body as an
// operator stream from the decoder/validator.
type FuncDef struct {
	TypeIndex uint32
	Locals    []value.Type
	Body      []translator.Op
	Name      string
}

// GlobalDef is one module-defined global. Init is the already-evaluated
// constant expression the binary format allows as a global initializer
// (i32/i64/f32/f64 const, ref.null, ref.func, or another imported global's
// value); evaluating that expression is the decoder/validator's job, not
// this package's.
type GlobalDef struct {
	Type GlobalType
	Init value.Untyped
}

// DataSegmentDef is one data segment. Active segments carry the (already
// constant-folded) memory offset they are copied to at instantiation time;
// passive segments are only ever used via memory.init.
type DataSegmentDef struct {
	Active     bool
	MemoryIndex uint32
	Offset     uint32
	Data       []byte
}

// ElementSegmentDef is one element segment, analogous to DataSegmentDef for
// tables. Elems are already encoded the way Table.Elems stores them (null =
// 0, funcref = 1+funcIdx via EncodeFuncRef).
type ElementSegmentDef struct {
	Active     bool
	TableIndex uint32
	Offset     uint32
	Elems      []value.Untyped
}

// ExportDef names one of a Module's functions, memories, tables or globals,
// in the module's own (imports-then-locals) index space.
type ExportDef struct {
	Name  string
	Kind  ExportKind
	Index uint32
}

// Module is a decoded, validated Wasm module: the minimal contract the
// translator and instantiation logic need from an external decoder/validator
// (see internal/translator.Op's package doc). A binary format parser is out
// of scope for this package; Module is built directly by whatever decodes
// the wire format, or by hand in tests.
type Module struct {
	Name string

	Types   []FuncType
	Imports []Import
	Funcs   []FuncDef

	Memories []MemoryType
	Tables   []TableType
	Globals  []GlobalDef

	DataSegments    []DataSegmentDef
	ElementSegments []ElementSegmentDef

	Exports []ExportDef

	// Start, if non-nil, names a function (in the combined index space)
	// run automatically once instantiation finishes.
	Start *uint32
}

// importCount returns how many of Module's imports are of kind k, which is
// also the index at which kind k's module-defined entries begin in the
// combined index space.
func (m *Module) importCount(k ImportKind) uint32 {
	var n uint32
	for _, imp := range m.Imports {
		if imp.Kind == k {
			n++
		}
	}
	return n
}

// FuncSignature implements translator.Resolver: funcIdx is resolved across
// the combined (imports then locals) function index space.
func (m *Module) FuncSignature(funcIdx uint32) (params, results []value.Type, imported bool) {
	importedCount := m.importCount(ImportFunc)
	if funcIdx < importedCount {
		typeIdx := m.nthFuncImport(funcIdx).TypeIndex
		t := m.Types[typeIdx]
		return t.Params, t.Results, true
	}
	def := m.Funcs[funcIdx-importedCount]
	t := m.Types[def.TypeIndex]
	return t.Params, t.Results, false
}

// TypeSignature implements translator.Resolver.
func (m *Module) TypeSignature(typeIdx uint32) (params, results []value.Type) {
	t := m.Types[typeIdx]
	return t.Params, t.Results
}

// GlobalType implements translator.Resolver.
func (m *Module) GlobalType(idx uint32) value.Type {
	importedCount := m.importCount(ImportGlobal)
	if idx < importedCount {
		return m.nthGlobalImport(idx).GlobalType.Type
	}
	return m.Globals[idx-importedCount].Type.Type
}

func (m *Module) nthFuncImport(n uint32) Import {
	var i uint32
	for _, imp := range m.Imports {
		if imp.Kind != ImportFunc {
			continue
		}
		if i == n {
			return imp
		}
		i++
	}
	panic("wasm: func import index out of range")
}

func (m *Module) nthGlobalImport(n uint32) Import {
	var i uint32
	for _, imp := range m.Imports {
		if imp.Kind != ImportGlobal {
			continue
		}
		if i == n {
			return imp
		}
		i++
	}
	panic("wasm: global import index out of range")
}
