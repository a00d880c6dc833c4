package interpreter

import (
	"math"

	"github.com/wasmi-go/wasmi/internal/ir"
	"github.com/wasmi-go/wasmi/internal/value"
)

// binaryOps and unaryOps are declarative opcode-to-semantics tables, mirroring
// internal/translator/numtable.go's mapping from Numeric operator to Opcode:
// most of the arithmetic/logic/comparison/conversion opcode space reduces to
// "look up the function, apply it to the operand registers" rather than a
// hand-written case per opcode.

var binaryOps = map[ir.Opcode]func(a, b value.Untyped) value.Untyped{
	ir.OpI32Add: value.I32Add, ir.OpI32Sub: value.I32Sub, ir.OpI32Mul: value.I32Mul,
	ir.OpI32DivS: value.I32DivS, ir.OpI32DivU: value.I32DivU,
	ir.OpI32RemS: value.I32RemS, ir.OpI32RemU: value.I32RemU,
	ir.OpI32And: value.I32And, ir.OpI32Or: value.I32Or, ir.OpI32Xor: value.I32Xor,
	ir.OpI32Shl: value.I32Shl, ir.OpI32ShrS: value.I32ShrS, ir.OpI32ShrU: value.I32ShrU,
	ir.OpI32Rotl: value.I32Rotl, ir.OpI32Rotr: value.I32Rotr,

	ir.OpI64Add: value.I64Add, ir.OpI64Sub: value.I64Sub, ir.OpI64Mul: value.I64Mul,
	ir.OpI64DivS: value.I64DivS, ir.OpI64DivU: value.I64DivU,
	ir.OpI64RemS: value.I64RemS, ir.OpI64RemU: value.I64RemU,
	ir.OpI64And: value.I64And, ir.OpI64Or: value.I64Or, ir.OpI64Xor: value.I64Xor,
	ir.OpI64Shl: value.I64Shl, ir.OpI64ShrS: value.I64ShrS, ir.OpI64ShrU: value.I64ShrU,
	ir.OpI64Rotl: value.I64Rotl, ir.OpI64Rotr: value.I64Rotr,

	ir.OpF32Add: value.F32Add, ir.OpF32Sub: value.F32Sub, ir.OpF32Mul: value.F32Mul, ir.OpF32Div: value.F32Div,
	ir.OpF32Min: value.F32Min, ir.OpF32Max: value.F32Max, ir.OpF32Copysign: value.F32Copysign,

	ir.OpF64Add: value.F64Add, ir.OpF64Sub: value.F64Sub, ir.OpF64Mul: value.F64Mul, ir.OpF64Div: value.F64Div,
	ir.OpF64Min: value.F64Min, ir.OpF64Max: value.F64Max, ir.OpF64Copysign: value.F64Copysign,

	ir.OpI32Eq: value.I32Eq, ir.OpI32Ne: value.I32Ne,
	ir.OpI32LtS: value.I32LtS, ir.OpI32LtU: value.I32LtU, ir.OpI32GtS: value.I32GtS, ir.OpI32GtU: value.I32GtU,
	ir.OpI32LeS: value.I32LeS, ir.OpI32LeU: value.I32LeU, ir.OpI32GeS: value.I32GeS, ir.OpI32GeU: value.I32GeU,

	ir.OpI64Eq: value.I64Eq, ir.OpI64Ne: value.I64Ne,
	ir.OpI64LtS: value.I64LtS, ir.OpI64LtU: value.I64LtU, ir.OpI64GtS: value.I64GtS, ir.OpI64GtU: value.I64GtU,
	ir.OpI64LeS: value.I64LeS, ir.OpI64LeU: value.I64LeU, ir.OpI64GeS: value.I64GeS, ir.OpI64GeU: value.I64GeU,

	ir.OpF32Eq: value.F32Eq, ir.OpF32Ne: value.F32Ne, ir.OpF32Lt: value.F32Lt, ir.OpF32Gt: value.F32Gt,
	ir.OpF32Le: value.F32Le, ir.OpF32Ge: value.F32Ge,

	ir.OpF64Eq: value.F64Eq, ir.OpF64Ne: value.F64Ne, ir.OpF64Lt: value.F64Lt, ir.OpF64Gt: value.F64Gt,
	ir.OpF64Le: value.F64Le, ir.OpF64Ge: value.F64Ge,
}

var unaryOps = map[ir.Opcode]func(a value.Untyped) value.Untyped{
	ir.OpI32Clz: value.I32Clz, ir.OpI32Ctz: value.I32Ctz, ir.OpI32Popcnt: value.I32Popcnt, ir.OpI32Eqz: value.I32Eqz,
	ir.OpI64Clz: value.I64Clz, ir.OpI64Ctz: value.I64Ctz, ir.OpI64Popcnt: value.I64Popcnt, ir.OpI64Eqz: value.I64Eqz,

	ir.OpF32Abs: value.F32Abs, ir.OpF32Neg: value.F32Neg, ir.OpF32Ceil: value.F32Ceil, ir.OpF32Floor: value.F32Floor,
	ir.OpF32Trunc: value.F32Trunc, ir.OpF32Nearest: value.F32Nearest, ir.OpF32Sqrt: value.F32Sqrt,

	ir.OpF64Abs: value.F64Abs, ir.OpF64Neg: value.F64Neg, ir.OpF64Ceil: value.F64Ceil, ir.OpF64Floor: value.F64Floor,
	ir.OpF64Trunc: value.F64Trunc, ir.OpF64Nearest: value.F64Nearest, ir.OpF64Sqrt: value.F64Sqrt,

	ir.OpI32WrapI64: value.I32WrapI64, ir.OpI64ExtendI32S: value.I64ExtendI32S, ir.OpI64ExtendI32U: value.I64ExtendI32U,
	ir.OpF32DemoteF64: value.F32DemoteF64, ir.OpF64PromoteF32: value.F64PromoteF32,
	ir.OpF32ConvertI32S: value.F32ConvertI32S, ir.OpF32ConvertI32U: value.F32ConvertI32U,
	ir.OpF32ConvertI64S: value.F32ConvertI64S, ir.OpF32ConvertI64U: value.F32ConvertI64U,
	ir.OpF64ConvertI32S: value.F64ConvertI32S, ir.OpF64ConvertI32U: value.F64ConvertI32U,
	ir.OpF64ConvertI64S: value.F64ConvertI64S, ir.OpF64ConvertI64U: value.F64ConvertI64U,
	ir.OpI32ReinterpretF32: value.I32ReinterpretF32, ir.OpF32ReinterpretI32: value.F32ReinterpretI32,
	ir.OpI64ReinterpretF64: value.I64ReinterpretF64, ir.OpF64ReinterpretI64: value.F64ReinterpretI64,
	ir.OpI32Extend8S: value.I32Extend8S, ir.OpI32Extend16S: value.I32Extend16S,
	ir.OpI64Extend8S: value.I64Extend8S, ir.OpI64Extend16S: value.I64Extend16S, ir.OpI64Extend32S: value.I64Extend32S,

	ir.OpI32TruncF32S: value.I32TruncF32S, ir.OpI32TruncF32U: value.I32TruncF32U,
	ir.OpI32TruncF64S: value.I32TruncF64S, ir.OpI32TruncF64U: value.I32TruncF64U,
	ir.OpI64TruncF32S: value.I64TruncF32S, ir.OpI64TruncF32U: value.I64TruncF32U,
	ir.OpI64TruncF64S: value.I64TruncF64S, ir.OpI64TruncF64U: value.I64TruncF64U,

	ir.OpI32TruncSatF32S: value.I32TruncSatF32S, ir.OpI32TruncSatF32U: value.I32TruncSatF32U,
	ir.OpI32TruncSatF64S: value.I32TruncSatF64S, ir.OpI32TruncSatF64U: value.I32TruncSatF64U,
	ir.OpI64TruncSatF32S: value.I64TruncSatF32S, ir.OpI64TruncSatF32U: value.I64TruncSatF32U,
	ir.OpI64TruncSatF64S: value.I64TruncSatF64S, ir.OpI64TruncSatF64U: value.I64TruncSatF64U,
}

// f32Results/f64Results name the opcodes whose Untyped result cell is a
// float bit pattern that canonicalizeNaN (see callEngine.canonicalizeNaN)
// may need to normalize. Reinterpret opcodes are deliberately excluded: by
// spec they pass an i32/i64 bit pattern through unchanged, so forcing a NaN
// payload on them would make the reinterpret lossy. Comparisons are
// excluded too: their result is an i32 boolean, never a float bit pattern.
var f32Results = map[ir.Opcode]bool{
	ir.OpF32Add: true, ir.OpF32Sub: true, ir.OpF32Mul: true, ir.OpF32Div: true,
	ir.OpF32Min: true, ir.OpF32Max: true, ir.OpF32Copysign: true,
	ir.OpF32Abs: true, ir.OpF32Neg: true, ir.OpF32Ceil: true, ir.OpF32Floor: true,
	ir.OpF32Trunc: true, ir.OpF32Nearest: true, ir.OpF32Sqrt: true,
	ir.OpF32DemoteF64: true,
	ir.OpF32ConvertI32S: true, ir.OpF32ConvertI32U: true,
	ir.OpF32ConvertI64S: true, ir.OpF32ConvertI64U: true,
}

var f64Results = map[ir.Opcode]bool{
	ir.OpF64Add: true, ir.OpF64Sub: true, ir.OpF64Mul: true, ir.OpF64Div: true,
	ir.OpF64Min: true, ir.OpF64Max: true, ir.OpF64Copysign: true,
	ir.OpF64Abs: true, ir.OpF64Neg: true, ir.OpF64Ceil: true, ir.OpF64Floor: true,
	ir.OpF64Trunc: true, ir.OpF64Nearest: true, ir.OpF64Sqrt: true,
	ir.OpF64PromoteF32: true,
	ir.OpF64ConvertI32S: true, ir.OpF64ConvertI32U: true,
	ir.OpF64ConvertI64S: true, ir.OpF64ConvertI64U: true,
}

// canonicalizeNaN forces v to the single-bit-pattern quiet NaN for its
// float width if op produces a float result and v is any NaN, leaving
// every other value untouched.
func canonicalizeNaN(op ir.Opcode, v value.Untyped) value.Untyped {
	if f32Results[op] {
		if f := math.Float32frombits(v.F32Bits()); f != f {
			return value.From32(math.Float32bits(float32(math.NaN())))
		}
	} else if f64Results[op] {
		if f := math.Float64frombits(v.F64Bits()); f != f {
			return value.From64(math.Float64bits(math.NaN()))
		}
	}
	return v
}

// imm16 sign-extends a 16-bit immediate (carried in Instruction.Imm's low
// bits, or the whole Imm field for the plain Imm16 fused ops) to a full
// Untyped i32 cell.
func imm16(v int32) value.Untyped { return value.From32(uint32(int32(int16(v)))) }
