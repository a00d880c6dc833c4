// Package value implements the Wasm numeric value model: the untyped 64-bit
// cell every register slot stores, the small set of value types, and the
// typed pair used only at the embedding boundary.
package value

import "fmt"

// Untyped is the raw 64-bit cell backing every register, local, constant-pool
// entry, and value-stack slot. i32/f32 occupy the low 32 bits; i64/f64/FuncRef/
// ExternRef occupy the full 64 bits.
type Untyped uint64

// Type is a Wasm value type.
type Type byte

const (
	I32       Type = 0x7f
	I64       Type = 0x7e
	F32       Type = 0x7d
	F64       Type = 0x7c
	FuncRef   Type = 0x70
	ExternRef Type = 0x6f
)

// String implements fmt.Stringer, matching the Wasm text format names.
func (t Type) String() string {
	switch t {
	case I32:
		return "i32"
	case I64:
		return "i64"
	case F32:
		return "f32"
	case F64:
		return "f64"
	case FuncRef:
		return "funcref"
	case ExternRef:
		return "externref"
	default:
		return fmt.Sprintf("unknown(%#x)", byte(t))
	}
}

// IsReference reports whether t is FuncRef or ExternRef.
func (t Type) IsReference() bool {
	return t == FuncRef || t == ExternRef
}

// Typed pairs an Untyped cell with its Type. The wasmi embedding boundary
// passes bare Untyped values (Function.Call), and the interpreter's hot path
// never carries a Type alongside a value.
type Typed struct {
	Value Untyped
	Type  Type
}

// NullRef is the canonical null bit pattern for FuncRef/ExternRef; every
// conversion of a null reference normalizes to this value.
const NullRef Untyped = 0

// IsNullRef reports whether v is the canonical null reference value.
func IsNullRef(v Untyped) bool {
	return v == NullRef
}

// From32 packs the low 32 bits of a uint32 into an Untyped cell. The upper 32
// bits are always zeroed: i32 values never carry garbage in the high word,
// since some instructions (e.g. comparisons) compare full 64-bit cells.
func From32(v uint32) Untyped { return Untyped(v) }

// From64 packs a uint64 into an Untyped cell.
func From64(v uint64) Untyped { return Untyped(v) }

// I32 extracts the low 32 bits as uint32.
func (v Untyped) I32() uint32 { return uint32(v) }

// I64 extracts the full 64 bits as uint64.
func (v Untyped) I64() uint64 { return uint64(v) }

// F32Bits extracts the low 32 bits as raw float32 bits.
func (v Untyped) F32Bits() uint32 { return uint32(v) }

// F64Bits extracts the full 64 bits as raw float64 bits.
func (v Untyped) F64Bits() uint64 { return uint64(v) }
