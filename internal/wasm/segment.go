package wasm

import "github.com/wasmi-go/wasmi/internal/value"

// DataSegment backs memory.init/data.drop. Dropped segments retain their
// slice (so indices stay stable) but Data is treated as empty.
type DataSegment struct {
	Data    []byte
	Dropped bool
}

// Bytes returns the segment's payload, or nil if it has been dropped.
func (d *DataSegment) Bytes() []byte {
	if d.Dropped {
		return nil
	}
	return d.Data
}

// ElementSegment backs table.init/elem.drop.
type ElementSegment struct {
	Elems   []value.Untyped
	Dropped bool
}

// Elements returns the segment's payload, or nil if it has been dropped.
func (e *ElementSegment) Elements() []value.Untyped {
	if e.Dropped {
		return nil
	}
	return e.Elems
}
