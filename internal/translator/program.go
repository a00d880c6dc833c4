package translator

import (
	"math"

	"github.com/wasmi-go/wasmi/internal/ir"
	"github.com/wasmi-go/wasmi/internal/value"
)

// Resolver supplies the signature information an Op stream references by
// index but does not carry inline (the decoder/validator already has it
// from the module's type/function sections).
type Resolver interface {
	// FuncSignature reports funcIdx's parameter/result types and whether it
	// is an import (so VisitCall/VisitReturnCall can pick the imported vs.
	// internal opcode).
	FuncSignature(funcIdx uint32) (params, results []value.Type, imported bool)
	// TypeSignature reports a type section entry's parameter/result types,
	// used by call_indirect.
	TypeSignature(typeIdx uint32) (params, results []value.Type)
	// GlobalType reports a global's value type, used by global.get.
	GlobalType(idx uint32) value.Type
}

// Translate drives a fully-decoded operator stream through a fresh
// Translator, in source order, and returns the finished CompiledFunc. ops is
// everything between a function's locals declaration and its final `end`,
// inclusive of that closing `end` (which VisitEnd treats as the function
// body's own block terminator).
func Translate(params, locals, results []value.Type, fuelEnabled bool, ops []Op, res Resolver) (*ir.CompiledFunc, error) {
	t := New(params, locals, results, fuelEnabled)
	for _, op := range ops {
		if err := dispatch(t, op, res); err != nil {
			return nil, err
		}
	}
	return t.Finalize(), nil
}

func dispatch(t *Translator, op Op, res Resolver) error {
	switch op.Kind {
	case OpUnreachable:
		return t.VisitUnreachable()
	case OpNop:
		return nil
	case OpBlock:
		return t.VisitBlock(op.Block)
	case OpLoop:
		return t.VisitLoop(op.Block)
	case OpIf:
		return t.VisitIf(op.Block)
	case OpElse:
		return t.VisitElse()
	case OpEnd:
		return t.VisitEnd()
	case OpBr:
		return t.VisitBr(op.Depth)
	case OpBrIf:
		return t.VisitBrIf(op.Depth)
	case OpBrTable:
		return t.VisitBrTable(op.Targets, op.Default)
	case OpReturn:
		return t.VisitReturn()
	case OpCall:
		params, results, imported := res.FuncSignature(op.Idx)
		return t.VisitCall(op.Idx, imported, params, results)
	case OpCallIndirect:
		params, results := res.TypeSignature(op.Idx)
		return t.VisitCallIndirect(op.Idx, op.Idx2, params, results)
	case OpReturnCall:
		params, _, imported := res.FuncSignature(op.Idx)
		return t.VisitReturnCall(op.Idx, imported, params)
	case OpReturnCallIndirect:
		params, _ := res.TypeSignature(op.Idx)
		return t.VisitReturnCallIndirect(op.Idx, op.Idx2, params)
	case OpDrop:
		return t.VisitDrop()
	case OpSelect:
		return t.VisitSelect(op.RefType)
	case OpLocalGet:
		return t.VisitLocalGet(op.Idx)
	case OpLocalSet:
		return t.VisitLocalSet(op.Idx)
	case OpLocalTee:
		return t.VisitLocalTee(op.Idx)
	case OpGlobalGet:
		return t.VisitGlobalGet(op.Idx, res.GlobalType(op.Idx))
	case OpGlobalSet:
		return t.VisitGlobalSet(op.Idx)
	case OpI32Const:
		return t.VisitI32Const(op.I32)
	case OpI64Const:
		return t.VisitI64Const(op.I64)
	case OpF32Const:
		return t.VisitF32Const(math.Float32bits(op.F32))
	case OpF64Const:
		return t.VisitF64Const(math.Float64bits(op.F64))
	case OpRefNull:
		return t.VisitRefNull(op.RefType)
	case OpRefFunc:
		return t.VisitRefFunc(op.Idx)
	case OpRefIsNull:
		return t.VisitRefIsNull()

	case OpI32Load:
		return t.VisitI32Load(op.Mem.Offset)
	case OpI64Load:
		return t.VisitI64Load(op.Mem.Offset)
	case OpF32Load:
		return t.VisitF32Load(op.Mem.Offset)
	case OpF64Load:
		return t.VisitF64Load(op.Mem.Offset)
	case OpI32Load8S:
		return t.VisitI32Load8S(op.Mem.Offset)
	case OpI32Load8U:
		return t.VisitI32Load8U(op.Mem.Offset)
	case OpI32Load16S:
		return t.VisitI32Load16S(op.Mem.Offset)
	case OpI32Load16U:
		return t.VisitI32Load16U(op.Mem.Offset)
	case OpI64Load8S:
		return t.VisitI64Load8S(op.Mem.Offset)
	case OpI64Load8U:
		return t.VisitI64Load8U(op.Mem.Offset)
	case OpI64Load16S:
		return t.VisitI64Load16S(op.Mem.Offset)
	case OpI64Load16U:
		return t.VisitI64Load16U(op.Mem.Offset)
	case OpI64Load32S:
		return t.VisitI64Load32S(op.Mem.Offset)
	case OpI64Load32U:
		return t.VisitI64Load32U(op.Mem.Offset)
	case OpI32Store:
		return t.VisitI32Store(op.Mem.Offset)
	case OpI64Store:
		return t.VisitI64Store(op.Mem.Offset)
	case OpF32Store:
		return t.VisitF32Store(op.Mem.Offset)
	case OpF64Store:
		return t.VisitF64Store(op.Mem.Offset)
	case OpI32Store8:
		return t.VisitI32Store8(op.Mem.Offset)
	case OpI32Store16:
		return t.VisitI32Store16(op.Mem.Offset)
	case OpI64Store8:
		return t.VisitI64Store8(op.Mem.Offset)
	case OpI64Store16:
		return t.VisitI64Store16(op.Mem.Offset)
	case OpI64Store32:
		return t.VisitI64Store32(op.Mem.Offset)
	case OpMemorySize:
		return t.VisitMemorySize()
	case OpMemoryGrow:
		return t.VisitMemoryGrow()
	case OpMemoryFill:
		return t.VisitMemoryFill()
	case OpMemoryCopy:
		return t.VisitMemoryCopy()
	case OpMemoryInit:
		return t.VisitMemoryInit(op.Idx)
	case OpDataDrop:
		return t.VisitDataDrop(op.Idx)

	case OpTableGet:
		return t.VisitTableGet(op.Idx)
	case OpTableSet:
		return t.VisitTableSet(op.Idx)
	case OpTableSize:
		return t.VisitTableSize(op.Idx)
	case OpTableGrow:
		return t.VisitTableGrow(op.Idx)
	case OpTableFill:
		return t.VisitTableFill(op.Idx)
	case OpTableCopy:
		return t.VisitTableCopy(op.Idx, op.Idx2)
	case OpTableInit:
		return t.VisitTableInit(op.Idx, op.Idx2)
	case OpElemDrop:
		return t.VisitElemDrop(op.Idx)

	case OpNumericUnary, OpNumericBinary:
		return t.VisitNumeric(op.Num, numericResultType(op.Num))

	default:
		return nil
	}
}

// numericResultType reports the value type a Numeric operator leaves on the
// stack (comparisons are normalized to I32 by VisitNumeric itself). The
// arithmetic families sit in contiguous iota runs per operand type in
// operator.go; conversions change type by definition and are named
// explicitly.
func numericResultType(n Numeric) value.Type {
	switch {
	case n >= NumI32Add && n <= NumI32GeU:
		return value.I32
	case n >= NumI64Add && n <= NumI64GeU:
		return value.I64
	case n >= NumF32Add && n <= NumF32Ge:
		return value.F32
	case n >= NumF64Add && n <= NumF64Ge:
		return value.F64
	}
	switch n {
	case NumI32WrapI64, NumI32ReinterpretF32,
		NumI32Extend8S, NumI32Extend16S,
		NumI32TruncF32S, NumI32TruncF32U, NumI32TruncF64S, NumI32TruncF64U,
		NumI32TruncSatF32S, NumI32TruncSatF32U, NumI32TruncSatF64S, NumI32TruncSatF64U:
		return value.I32
	case NumI64ExtendI32S, NumI64ExtendI32U, NumI64ReinterpretF64,
		NumI64Extend8S, NumI64Extend16S, NumI64Extend32S,
		NumI64TruncF32S, NumI64TruncF32U, NumI64TruncF64S, NumI64TruncF64U,
		NumI64TruncSatF32S, NumI64TruncSatF32U, NumI64TruncSatF64S, NumI64TruncSatF64U:
		return value.I64
	case NumF32DemoteF64, NumF32ReinterpretI32,
		NumF32ConvertI32S, NumF32ConvertI32U, NumF32ConvertI64S, NumF32ConvertI64U:
		return value.F32
	case NumF64PromoteF32, NumF64ReinterpretI64,
		NumF64ConvertI32S, NumF64ConvertI32U, NumF64ConvertI64S, NumF64ConvertI64U:
		return value.F64
	default:
		return value.I32
	}
}
