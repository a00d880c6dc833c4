// Package translator lowers a stream of validated Wasm operators into
// wasmi-go's register-machine IR (internal/ir). The decoder/validator that
// produces the operator stream is an external collaborator; this package
// consumes it through the Op/OpKind contract in this file, which a binary
// decoder (or, as in this module's own tests, a hand-built operator slice)
// feeds in source order.
package translator

import "github.com/wasmi-go/wasmi/internal/value"

// OpKind enumerates the Wasm operators the translator understands: MVP,
// sign-extension, saturating-float-to-int, bulk-memory, reference-types,
// tail-call, and multi-value. It is not exhaustive of the whole Wasm
// opcode space.
type OpKind int

const (
	OpUnreachable OpKind = iota
	OpNop
	OpBlock
	OpLoop
	OpIf
	OpElse
	OpEnd
	OpBr
	OpBrIf
	OpBrTable
	OpReturn
	OpCall
	OpCallIndirect
	OpReturnCall
	OpReturnCallIndirect
	OpDrop
	OpSelect
	OpLocalGet
	OpLocalSet
	OpLocalTee
	OpGlobalGet
	OpGlobalSet
	OpI32Const
	OpI64Const
	OpF32Const
	OpF64Const
	OpRefNull
	OpRefFunc
	OpRefIsNull

	// Memory.
	OpI32Load
	OpI64Load
	OpF32Load
	OpF64Load
	OpI32Load8S
	OpI32Load8U
	OpI32Load16S
	OpI32Load16U
	OpI64Load8S
	OpI64Load8U
	OpI64Load16S
	OpI64Load16U
	OpI64Load32S
	OpI64Load32U
	OpI32Store
	OpI64Store
	OpF32Store
	OpF64Store
	OpI32Store8
	OpI32Store16
	OpI64Store8
	OpI64Store16
	OpI64Store32
	OpMemorySize
	OpMemoryGrow
	OpMemoryFill
	OpMemoryCopy
	OpMemoryInit
	OpDataDrop

	// Table.
	OpTableGet
	OpTableSet
	OpTableSize
	OpTableGrow
	OpTableFill
	OpTableCopy
	OpTableInit
	OpElemDrop

	// Numeric — the binary/unary op kind carries a Numeric tag (below)
	// rather than one OpKind per Wasm mnemonic, since every numeric
	// operator shares the same operand-stack shape (pop N push 1).
	OpNumericUnary
	OpNumericBinary
)

// Numeric identifies a specific numeric operator when Kind is
// OpNumericUnary/OpNumericBinary. Names match the Wasm mnemonic.
type Numeric int

const (
	NumI32Add Numeric = iota
	NumI32Sub
	NumI32Mul
	NumI32DivS
	NumI32DivU
	NumI32RemS
	NumI32RemU
	NumI32And
	NumI32Or
	NumI32Xor
	NumI32Shl
	NumI32ShrS
	NumI32ShrU
	NumI32Rotl
	NumI32Rotr
	NumI32Clz
	NumI32Ctz
	NumI32Popcnt
	NumI32Eqz
	NumI32Eq
	NumI32Ne
	NumI32LtS
	NumI32LtU
	NumI32GtS
	NumI32GtU
	NumI32LeS
	NumI32LeU
	NumI32GeS
	NumI32GeU

	NumI64Add
	NumI64Sub
	NumI64Mul
	NumI64DivS
	NumI64DivU
	NumI64RemS
	NumI64RemU
	NumI64And
	NumI64Or
	NumI64Xor
	NumI64Shl
	NumI64ShrS
	NumI64ShrU
	NumI64Rotl
	NumI64Rotr
	NumI64Clz
	NumI64Ctz
	NumI64Popcnt
	NumI64Eqz
	NumI64Eq
	NumI64Ne
	NumI64LtS
	NumI64LtU
	NumI64GtS
	NumI64GtU
	NumI64LeS
	NumI64LeU
	NumI64GeS
	NumI64GeU

	NumF32Add
	NumF32Sub
	NumF32Mul
	NumF32Div
	NumF32Abs
	NumF32Neg
	NumF32Ceil
	NumF32Floor
	NumF32Trunc
	NumF32Nearest
	NumF32Sqrt
	NumF32Min
	NumF32Max
	NumF32Copysign
	NumF32Eq
	NumF32Ne
	NumF32Lt
	NumF32Gt
	NumF32Le
	NumF32Ge

	NumF64Add
	NumF64Sub
	NumF64Mul
	NumF64Div
	NumF64Abs
	NumF64Neg
	NumF64Ceil
	NumF64Floor
	NumF64Trunc
	NumF64Nearest
	NumF64Sqrt
	NumF64Min
	NumF64Max
	NumF64Copysign
	NumF64Eq
	NumF64Ne
	NumF64Lt
	NumF64Gt
	NumF64Le
	NumF64Ge

	NumI32WrapI64
	NumI64ExtendI32S
	NumI64ExtendI32U
	NumF32DemoteF64
	NumF64PromoteF32
	NumF32ConvertI32S
	NumF32ConvertI32U
	NumF32ConvertI64S
	NumF32ConvertI64U
	NumF64ConvertI32S
	NumF64ConvertI32U
	NumF64ConvertI64S
	NumF64ConvertI64U
	NumI32ReinterpretF32
	NumF32ReinterpretI32
	NumI64ReinterpretF64
	NumF64ReinterpretI64
	NumI32Extend8S
	NumI32Extend16S
	NumI64Extend8S
	NumI64Extend16S
	NumI64Extend32S
	NumI32TruncF32S
	NumI32TruncF32U
	NumI32TruncF64S
	NumI32TruncF64U
	NumI64TruncF32S
	NumI64TruncF32U
	NumI64TruncF64S
	NumI64TruncF64U
	NumI32TruncSatF32S
	NumI32TruncSatF32U
	NumI32TruncSatF64S
	NumI32TruncSatF64U
	NumI64TruncSatF32S
	NumI64TruncSatF32U
	NumI64TruncSatF64S
	NumI64TruncSatF64U
)

// BlockType describes a block/loop/if's parameter and result types.
type BlockType struct {
	Params  []value.Type
	Results []value.Type
}

// MemArg is a load/store's static offset (the alignment hint is not
// load-bearing for the interpreter and is dropped at this boundary).
type MemArg struct {
	Offset uint32
}

// Op is one decoded Wasm operator, as delivered by the external
// decoder/validator. Exactly one of the payload fields is meaningful per
// Kind.
type Op struct {
	Kind OpKind
	Num  Numeric

	Idx   uint32 // local/global/func/table/type/data/elem index
	Idx2  uint32 // second index (e.g. call_indirect's table idx, table.copy's src table)
	Depth uint32 // br/br_if relative depth

	Targets []uint32 // br_table arm targets
	Default uint32   // br_table default target

	Block BlockType
	Mem   MemArg

	I32 int32
	I64 int64
	F32 float32
	F64 float64

	RefType value.Type // ref.null's type operand, and typed select's operand type
}
