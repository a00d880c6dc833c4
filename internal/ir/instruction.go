package ir

import "github.com/wasmi-go/wasmi/internal/value"

// Instruction is one word of the register machine's flat instruction
// vector. Most opcodes need only this single word (an opcode tag, up to
// three Reg operands, and a 32-bit immediate); opcodes whose
// Opcode.FollowOnWords() is non-zero are followed by that many additional
// Instruction words, reinterpreted by the interpreter according to the
// opcode (see the AsIndex/AsRegSpan/First/Second accessors below). Variants that need more operands
// than fit in one word span multiple consecutive instruction words; the
// interpreter fetches follow-on words at a fixed offset from the primary
// opcode.
type Instruction struct {
	Op      Opcode
	A, B, C Reg
	Imm     int32
}

// Dst/Src/Cond provide readable accessors matching each opcode's operand
// schema comment in opcode.go; most call sites just use A/B/C/Imm directly,
// these exist for the handful of instructions whose meaning benefits from a
// name (e.g. a condition register).
func (i Instruction) Dst() Reg  { return i.A }
func (i Instruction) Src() Reg  { return i.B }
func (i Instruction) Cond() Reg { return i.A }

// Imm32 reinterprets Imm as the low 32 bits of an untyped constant (used by
// OpCopyImm32, OpReturnImm32 and OpSelectImm's ifFalse; OpBranchCmpImm16's
// rhs is read via Imm16Pair instead).
func (i Instruction) Imm32() uint32 { return uint32(i.Imm) }

// ImmI64 sign-extends Imm to an i64 constant (OpCopyI64Imm32).
func (i Instruction) ImmI64() uint64 { return uint64(int64(i.Imm)) }

// BranchOffset reinterprets Imm as a BranchOffset (OpBranch).
func (i Instruction) BranchOffset() BranchOffset { return BranchOffset(i.Imm) }

// TrapCode reinterprets Imm as a trap code (OpTrap).
func (i Instruction) TrapCode() byte { return byte(i.Imm) }

// FuelAmount reinterprets Imm as a fuel charge (OpConsumeFuel).
func (i Instruction) FuelAmount() uint32 { return uint32(i.Imm) }

// Comparator reinterprets A as a Comparator tag for BranchCmp* instructions.
func (i Instruction) Comparator() Comparator { return Comparator(i.A) }

// Imm16Pair splits Imm into its low and high 16-bit halves, used by
// OpBranchCmpImm16 to carry a 16-bit rhs immediate (low) and a 16-bit branch
// offset (high) in a single word.
func (i Instruction) Imm16Pair() (lo, hi int16) {
	return int16(uint32(i.Imm)), int16(uint32(i.Imm) >> 16)
}

// ResultSpan reinterprets A/B as a RegSpan (first register, length) for
// multi-value results/call params carried inline in three-Reg instructions
// (e.g. OpReturnReg2/3 use A/B/C directly instead; OpCallInternal0's results
// span is packed this way since it has a spare Reg slot).
func (i Instruction) ResultSpan() RegSpan { return RegSpan{First: i.A, Len: uint16(i.B)} }

// NewInstr builds a single-word Instruction; C defaults to zero when unused.
func NewInstr(op Opcode, a, b, c Reg, imm int32) Instruction {
	return Instruction{Op: op, A: a, B: b, C: c, Imm: imm}
}

// ConstWord packages an arbitrary 32-bit payload as a follow-on word,
// read back via AsIndex. Used for GlobalIdx/TableIdx/FuncIdx/etc.
// operands, branch-table arm counts and offsets, and CallParams spans.
func ConstWord(payload int32) Instruction {
	return Instruction{Imm: payload}
}

func (i Instruction) AsIndex() uint32 { return uint32(i.Imm) }

// CallParamsWord packs a RegSpan describing a call's argument registers.
func CallParamsWord(params RegSpan) Instruction {
	return Instruction{A: params.First, Imm: int32(params.Len)}
}

func (i Instruction) AsRegSpan() RegSpan {
	return RegSpan{First: i.A, Len: uint16(i.Imm)}
}

// TwoIndexWord packs two uint16 indices into one follow-on word (e.g.
// TableCopy's dst/src table indices, CallIndirect's TypeIdx+TableIdx).
func TwoIndexWord(first, second uint32) Instruction {
	return Instruction{Imm: int32(first), A: Reg(second)}
}

func (i Instruction) First() uint32  { return uint32(i.Imm) }
func (i Instruction) Second() uint32 { return uint32(i.A) }

// CompiledFunc is the translator's output for one Wasm function.
type CompiledFunc struct {
	Instrs []Instruction
	Consts []value.Untyped
	// LenRegisters is the total register-window size: parameters, locals,
	// dynamic temporaries, and preserved locals. Constants are addressed
	// negatively and are not counted here.
	LenRegisters uint16
	LenParams    uint16
	LenResults   uint16
	// No per-function stack height is recorded: the StackOverflow trap comes
	// from the interpreter's flat call-depth ceiling (maxCallStackDepth in
	// internal/interpreter).
}

// ConstAt resolves a constant-pool Reg to its Untyped value, reporting false
// for a register-window Reg. The interpreter does not call it: its frames
// resolve constant Regs themselves (callFrame.get checks IsConst).
func (f *CompiledFunc) ConstAt(r Reg) (value.Untyped, bool) {
	if !r.IsConst() {
		return 0, false
	}
	idx := r.ConstIndex()
	if idx < 0 || idx >= len(f.Consts) {
		return 0, false
	}
	return f.Consts[idx], true
}
