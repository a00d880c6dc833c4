package wasm

// Instance is one instantiated module: its own functions, memories, tables,
// globals, and the data/element segments available to bulk-memory/table
// instructions. Imports are resolved at instantiation time by placing the
// imported Func/Memory/Table/Global directly into these slices, so the
// interpreter never special-cases an imported index.
type Instance struct {
	Name string

	Types    []FuncType
	Funcs    []*Func
	Memories []*Memory
	Tables   []*Table
	Globals  []*Global

	DataSegments    []*DataSegment
	ElementSegments []*ElementSegment

	Exports map[string]Export
}

// ExportKind identifies what an Export refers to.
type ExportKind byte

const (
	ExportFunc ExportKind = iota
	ExportMemory
	ExportTable
	ExportGlobal
)

// Export names one of an Instance's functions, memories, tables or globals.
type Export struct {
	Kind  ExportKind
	Index uint32
}

// Func looks up a function by index, trusting the caller (indices are
// validated once at translation time, not on every call).
func (i *Instance) Func(idx uint32) *Func { return i.Funcs[idx] }

func (i *Instance) Memory(idx uint32) *Memory { return i.Memories[idx] }

func (i *Instance) Table(idx uint32) *Table { return i.Tables[idx] }

func (i *Instance) Global(idx uint32) *Global { return i.Globals[idx] }

func (i *Instance) DataSegment(idx uint32) *DataSegment { return i.DataSegments[idx] }

func (i *Instance) ElementSegment(idx uint32) *ElementSegment { return i.ElementSegments[idx] }
