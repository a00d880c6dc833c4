package ir

// Opcode tags an Instruction. The table below is a declarative "one row per
// opcode" definition, the kind normally generated from a table (opcode
// name, operand schema, semantic function) rather than hand-written in
// full; this module implements a representative subset spanning every
// group (data movement, control flow, arithmetic/logic, comparison,
// conversion, memory, table, call), sized so each group is real and
// extensible rather than exhaustively enumerated. See DESIGN.md for the
// scope decision.
type Opcode uint16

const (
	OpNop Opcode = iota

	// --- Data movement ---
	OpCopy       // dst, src
	OpCopyImm32  // dst, imm32 (low 32 bits of an i32/f32 constant, inlined to skip the const pool)
	OpCopyI64Imm32 // dst, imm32 sign-extended to i64
	OpCopySpan   // dst RegSpan, src RegSpan (same length)
	OpReturn     // no operands: zero results
	OpReturnReg  // src: single register result
	OpReturnReg2 // src0, src1: two register results
	OpReturnReg3 // src0, src1, src2: three register results
	OpReturnSpan // results RegSpan: >3 results, follow-on word carries span
	OpReturnImm32 // imm32: single constant 32-bit result (i32, f32 or reference)
	OpGlobalGet  // dst, globalIdx (follow-on word)
	OpGlobalSet  // src, globalIdx (follow-on word)
	OpSelect     // dst, condReg, ifTrue, ifFalse
	OpSelectImm  // dst, condReg, ifTrue reg (C), ifFalse imm32 (Imm)

	// --- Control flow ---
	OpBranch          // offset (full BranchOffset in Imm)
	OpBranchCmp       // cmp (Comparator), lhs, rhs; Imm holds the full 32-bit offset -- fused compare+branch, register rhs
	OpBranchCmpImm16  // cmp, lhs; Imm packs rhsImm16 in the low half and offset16 in the high half -- fused compare+branch, 16-bit immediate rhs
	OpBranchCmpFallback // cmp, lhs, rhs -- follow-on word holds the full 32-bit offset; the translator does not emit this form
	OpBranchTable     // index reg; follow-on words: len, then one BranchOffset per arm + default
	OpTrap            // trapCode (byte, packed in Imm)
	OpConsumeFuel     // amount (uint32 in Imm), backfilled during translation

	// --- Arithmetic / logic (one opcode per typed binary/unary op; see ops.go for the semantic table) ---
	OpI32Add
	OpI32AddImm16
	OpI32Sub
	OpI32SubImm16Lhs // dst, rhsReg; lhs is the 16-bit immediate: dst = immLhs - rhs
	OpI32Mul
	OpI32DivS
	OpI32DivSImm16Rhs // divisor is a compile-time-known non-zero 16-bit immediate
	OpI32DivU
	OpI32RemS
	OpI32RemU
	OpI32And
	OpI32AndEqz // dst = (a & b) == 0, fused comparison
	OpI32Or
	OpI32Xor
	OpI32Shl
	OpI32ShlBy // shift amount known at compile time
	OpI32ShrS
	OpI32ShrU
	OpI32Rotl
	OpI32Rotr
	OpI32Clz
	OpI32Ctz
	OpI32Popcnt
	OpI32Eqz

	OpI64Add
	OpI64Sub
	OpI64Mul
	OpI64DivS
	OpI64DivU
	OpI64RemS
	OpI64RemU
	OpI64And
	OpI64Or
	OpI64Xor
	OpI64Shl
	OpI64ShrS
	OpI64ShrU
	OpI64Rotl
	OpI64Rotr
	OpI64Clz
	OpI64Ctz
	OpI64Popcnt
	OpI64Eqz

	OpF32Add
	OpF32Sub
	OpF32Mul
	OpF32Div
	OpF32Abs
	OpF32Neg
	OpF32Ceil
	OpF32Floor
	OpF32Trunc
	OpF32Nearest
	OpF32Sqrt
	OpF32Min
	OpF32Max
	OpF32Copysign

	OpF64Add
	OpF64Sub
	OpF64Mul
	OpF64Div
	OpF64Abs
	OpF64Neg
	OpF64Ceil
	OpF64Floor
	OpF64Trunc
	OpF64Nearest
	OpF64Sqrt
	OpF64Min
	OpF64Max
	OpF64Copysign

	// --- Comparison (i32-result producing, non-fused form) ---
	OpI32Eq
	OpI32EqImm16
	OpI32Ne
	OpI32LtS
	OpI32LtU
	OpI32GtS
	OpI32GtU
	OpI32LeS
	OpI32LeU
	OpI32GeS
	OpI32GeU

	OpI64Eq
	OpI64Ne
	OpI64LtS
	OpI64LtU
	OpI64GtS
	OpI64GtU
	OpI64LeS
	OpI64LeU
	OpI64GeS
	OpI64GeU

	OpF32Eq
	OpF32Ne
	OpF32Lt
	OpF32Gt
	OpF32Le
	OpF32Ge

	OpF64Eq
	OpF64Ne
	OpF64Lt
	OpF64Gt
	OpF64Le
	OpF64Ge

	// --- Conversion ---
	OpI32WrapI64
	OpI64ExtendI32S
	OpI64ExtendI32U
	OpF32DemoteF64
	OpF64PromoteF32
	OpF32ConvertI32S
	OpF32ConvertI32U
	OpF32ConvertI64S
	OpF32ConvertI64U
	OpF64ConvertI32S
	OpF64ConvertI32U
	OpF64ConvertI64S
	OpF64ConvertI64U
	OpI32ReinterpretF32
	OpF32ReinterpretI32
	OpI64ReinterpretF64
	OpF64ReinterpretI64
	OpI32Extend8S
	OpI32Extend16S
	OpI64Extend8S
	OpI64Extend16S
	OpI64Extend32S
	OpI32TruncF32S
	OpI32TruncF32U
	OpI32TruncF64S
	OpI32TruncF64U
	OpI64TruncF32S
	OpI64TruncF32U
	OpI64TruncF64S
	OpI64TruncF64U
	OpI32TruncSatF32S
	OpI32TruncSatF32U
	OpI32TruncSatF64S
	OpI32TruncSatF64U
	OpI64TruncSatF32S
	OpI64TruncSatF32U
	OpI64TruncSatF64S
	OpI64TruncSatF64U

	// --- Memory ---
	OpI32Load     // dst, addrReg; follow-on word: offset u32
	OpI32LoadAt   // dst; follow-on word: statically-resolved absolute address
	OpI32LoadOffset16 // dst, addrReg, offset16 -- offset fits in 16 bits, no follow-on word
	OpI64Load
	OpI64LoadAt
	OpI64LoadOffset16
	OpF32Load
	OpF32LoadAt
	OpF64Load
	OpF64LoadAt
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
	OpI32Store     // addrReg, valueReg; follow-on word: offset u32
	OpI32StoreImm16 // addrReg, valueImm16; follow-on word: offset u32
	OpI32Store8
	OpI32Store16
	OpI64Store
	OpI64Store8
	OpI64Store16
	OpI64Store32
	OpF32Store
	OpF64Store
	OpMemorySize
	OpMemoryGrow
	OpMemoryFill     // dst(addr), val, len registers
	OpMemoryCopy     // dst(addr), src(addr), len registers
	OpMemoryInit     // dst(addr), src(offset into data), len registers; follow-on word: DataSegmentIdx
	OpDataDrop       // follow-on word: DataSegmentIdx

	// --- Table ---
	OpTableGet  // dst, idxReg; follow-on word: TableIdx
	OpTableSet  // idxReg, valReg; follow-on word: TableIdx
	OpTableSize // dst; follow-on word: TableIdx
	OpTableGrow // dst, deltaReg, valReg; follow-on word: TableIdx
	OpTableFill // idxReg, valReg, lenReg; follow-on word: TableIdx
	OpTableCopy // dstReg, srcReg, lenReg; follow-on word: dstTableIdx, srcTableIdx
	OpTableInit // dstReg, srcReg, lenReg; follow-on word: TableIdx, ElementSegmentIdx
	OpElemDrop  // follow-on word: ElementSegmentIdx

	// --- Call ---
	OpCallInternal0     // results RegSpan; follow-on word: FuncIdx
	OpCallInternal      // results RegSpan; follow-on word: FuncIdx, then a CallParams word (params RegSpan)
	OpCallImported0     // results RegSpan; follow-on word: FuncIdx
	OpCallImported      // results RegSpan; follow-on word: FuncIdx, then CallParams
	OpCallIndirect0     // results RegSpan, tableIdxReg; follow-on word: TypeIdx, TableIdx
	OpCallIndirect      // results RegSpan, tableIdxReg; follow-on word: TypeIdx, TableIdx, then CallParams
	OpReturnCallInternal // follow-on word: FuncIdx, then CallParams
	OpReturnCallImported // follow-on word: FuncIdx, then CallParams
	OpReturnCallIndirect // tableIdxReg; follow-on word: TypeIdx, TableIdx, then CallParams

	opcodeCount
)

// followOnWords reports how many Instruction words immediately follow the
// primary opcode word to carry operands that don't fit three Reg fields
// plus a 32-bit immediate: call argument lists, branch tables, 64-bit
// immediates, full 32-bit memory offsets, segment/table indices. Indexed by
// Opcode.
var followOnWords = [opcodeCount]uint16{
	OpGlobalGet:          1,
	OpGlobalSet:          1,
	OpBranch:             0, // offset packed into Imm32 of the primary word
	OpBranchCmpFallback:  1,
	OpBranchTable:        0, // variable-length; interpreter reads the count from the follow-on word after the primary word, then walks arms
	OpI32Load:            1,
	OpI32LoadAt:          1,
	OpI64Load:            1,
	OpI64LoadAt:          1,
	OpF32Load:            1,
	OpF32LoadAt:          1,
	OpF64Load:            1,
	OpF64LoadAt:          1,
	OpI32Load8S:          1,
	OpI32Load8U:          1,
	OpI32Load16S:         1,
	OpI32Load16U:         1,
	OpI64Load8S:          1,
	OpI64Load8U:          1,
	OpI64Load16S:         1,
	OpI64Load16U:         1,
	OpI64Load32S:         1,
	OpI64Load32U:         1,
	OpI32Store:           1,
	OpI32StoreImm16:      1,
	OpI32Store8:          1,
	OpI32Store16:         1,
	OpI64Store:           1,
	OpI64Store8:          1,
	OpI64Store16:         1,
	OpI64Store32:         1,
	OpF32Store:           1,
	OpF64Store:           1,
	OpMemoryInit:         1,
	OpDataDrop:           1,
	OpTableGet:           1,
	OpTableSet:           1,
	OpTableSize:          1,
	OpTableGrow:          1,
	OpTableFill:          1,
	OpTableCopy:          1,
	OpTableInit:          1,
	OpElemDrop:           1,
	OpCallInternal0:      1,
	OpCallInternal:       2,
	OpCallImported0:      1,
	OpCallImported:       2,
	OpCallIndirect0:      1,
	OpCallIndirect:       2,
	OpReturnCallInternal: 2,
	OpReturnCallImported: 2,
	OpReturnCallIndirect: 2,
	OpReturnSpan:         1,
}

// FollowOnWords returns how many Instruction words after this opcode's
// primary word carry extra operand data.
func (op Opcode) FollowOnWords() uint16 { return followOnWords[op] }
