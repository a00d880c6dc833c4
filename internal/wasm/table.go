package wasm

import (
	"github.com/wasmi-go/wasmi/internal/value"
	"github.com/wasmi-go/wasmi/internal/wasmruntime"
)

// Table is one reference-typed table instance (funcref or externref). A
// funcref element is stored as 1+funcIdx (0 is the null reference) indexing
// Owner.Funcs; Owner is set once by the instance that declares the table, so
// call_indirect can resolve an element without the table itself growing a
// pointer field that would need GC-unsafe encoding.
type Table struct {
	Elems []value.Untyped
	Type  value.Type
	Max   uint32 // 0 means unbounded
	Owner *Instance
}

// NewTable allocates a table of min elements, all null.
func NewTable(ty value.Type, min, max uint32) *Table {
	return &Table{Elems: make([]value.Untyped, min), Type: ty, Max: max}
}

func (t *Table) Size() uint32 { return uint32(len(t.Elems)) }

func (t *Table) bounds(idx uint32) {
	if idx >= uint32(len(t.Elems)) {
		wasmruntime.Trigger(wasmruntime.TrapTableOutOfBounds)
	}
}

func (t *Table) Get(idx uint32) value.Untyped {
	t.bounds(idx)
	return t.Elems[idx]
}

func (t *Table) Set(idx uint32, v value.Untyped) {
	t.bounds(idx)
	t.Elems[idx] = v
}

// FuncAt resolves a funcref table element to the Func it encodes, or nil for
// a null reference. Only meaningful when t.Type is value.FuncRef.
func (t *Table) FuncAt(idx uint32) *Func {
	funcIdx, ok := DecodeFuncRef(t.Get(idx))
	if !ok {
		return nil
	}
	return t.Owner.Funcs[funcIdx]
}

// Grow attempts to grow the table by delta elements filled with init,
// returning the previous size. Returns ok=false without mutating t if the
// growth would exceed Max (when declared).
func (t *Table) Grow(delta uint32, init value.Untyped) (previous uint32, ok bool) {
	previous = t.Size()
	newSize := uint64(previous) + uint64(delta)
	if t.Max != 0 && newSize > uint64(t.Max) {
		return previous, false
	}
	grown := make([]value.Untyped, newSize)
	copy(grown, t.Elems)
	for i := previous; uint64(i) < newSize; i++ {
		grown[i] = init
	}
	t.Elems = grown
	return previous, true
}

func (t *Table) Fill(dst uint32, val value.Untyped, n uint32) {
	end := uint64(dst) + uint64(n)
	if end > uint64(len(t.Elems)) {
		wasmruntime.Trigger(wasmruntime.TrapTableOutOfBounds)
	}
	for i := dst; uint64(i) < end; i++ {
		t.Elems[i] = val
	}
}

// Copy moves n elements from src to dst, possibly within the same table
// (handled via Go's overlap-safe copy) or between two tables.
func Copy(dst *Table, dstIdx uint32, src *Table, srcIdx uint32, n uint32) {
	if uint64(dstIdx)+uint64(n) > uint64(len(dst.Elems)) || uint64(srcIdx)+uint64(n) > uint64(len(src.Elems)) {
		wasmruntime.Trigger(wasmruntime.TrapTableOutOfBounds)
	}
	copy(dst.Elems[dstIdx:dstIdx+n], src.Elems[srcIdx:srcIdx+n])
}

// Init copies n elements from elems[srcOffset:] into the table at dst.
func (t *Table) Init(dst uint32, elems []value.Untyped, srcOffset, n uint32) {
	if uint64(dst)+uint64(n) > uint64(len(t.Elems)) {
		wasmruntime.Trigger(wasmruntime.TrapTableOutOfBounds)
	}
	if uint64(srcOffset)+uint64(n) > uint64(len(elems)) {
		wasmruntime.Trigger(wasmruntime.TrapTableOutOfBounds)
	}
	copy(t.Elems[dst:dst+n], elems[srcOffset:srcOffset+n])
}
