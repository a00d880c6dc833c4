// Package ir defines wasmi-go's register-machine intermediate representation:
// the instruction set, its operand encodings, and the compiled-function
// shape produced by internal/translator and consumed by internal/interpreter.
//
// This is pure data-layout code with no ecosystem library to reach for: no
// third-party package models a bespoke register-IR encoding, so this stays
// on the standard library by necessity, not by omission (see DESIGN.md).
package ir

import "fmt"

// Reg is a signed 16-bit register index. Non-negative values index a slot in
// the current function's register window (parameter, local, temporary, or
// preserved register). Negative values index the function's constant pool:
// Reg(-n) refers to the n-th entry (1-based) of CompiledFunc.Consts. The
// interpreter tells the two apart with IsConst when it reads an operand
// (see internal/interpreter/frame.go).
type Reg int16

// ConstReg returns the Reg that addresses the given zero-based constant-pool
// index.
func ConstReg(constIndex int) Reg {
	return Reg(-(constIndex + 1))
}

// IsConst reports whether r addresses the constant pool rather than a
// register slot.
func (r Reg) IsConst() bool { return r < 0 }

// ConstIndex returns the zero-based constant-pool index r addresses. Only
// valid when r.IsConst().
func (r Reg) ConstIndex() int { return int(-r) - 1 }

func (r Reg) String() string {
	if r.IsConst() {
		return fmt.Sprintf("const[%d]", r.ConstIndex())
	}
	return fmt.Sprintf("r%d", int16(r))
}

// RegSpan is a contiguous run of registers, identified by its first Reg and
// length. Used for multi-value call arguments/results and branch/return
// value-copy payloads.
type RegSpan struct {
	First Reg
	Len   uint16
}

// At returns the i-th register in the span (0-based). Spans never address
// the constant pool, so callers may assume First+i stays within the
// register window.
func (s RegSpan) At(i uint16) Reg {
	return s.First + Reg(i)
}

func (s RegSpan) String() string {
	if s.Len == 0 {
		return "[]"
	}
	return fmt.Sprintf("%s..+%d", s.First, s.Len)
}

// BranchOffset is a signed 32-bit relative instruction-word offset from a
// branch instruction to its target. A narrow 16-bit form exists
// (BranchOffset16); an OpBranchCmpImm16 whose offset overflows it is widened
// to OpBranchCmp, with its rhs in the constant pool and the full offset in
// Imm.
type BranchOffset int32

// BranchOffset16 is the narrow form used when the branch target is within
// ±32767 instruction words.
type BranchOffset16 int16

const (
	branchOffset16Min = -32768
	branchOffset16Max = 32767
)

// FitsBranchOffset16 reports whether off fits in the narrow encoding.
func FitsBranchOffset16(off BranchOffset) bool {
	return off >= branchOffset16Min && off <= branchOffset16Max
}

// Comparator selects the comparison performed by a fused BranchCmp*
// instruction or a BranchCmpFallback.
type Comparator byte

const (
	CmpI32Eq Comparator = iota
	CmpI32Ne
	CmpI32LtS
	CmpI32LtU
	CmpI32GtS
	CmpI32GtU
	CmpI32LeS
	CmpI32LeU
	CmpI32GeS
	CmpI32GeU
	CmpI32And // fused (a&b) != 0 used as a branch condition
	CmpI32AndEqz
	CmpI64Eq
	CmpI64Ne
	CmpI64LtS
	CmpI64LtU
	CmpI64GtS
	CmpI64GtU
	CmpI64LeS
	CmpI64LeU
	CmpI64GeS
	CmpI64GeU
	CmpF32Eq
	CmpF32Ne
	CmpF32Lt
	CmpF32Gt
	CmpF32Le
	CmpF32Ge
	CmpF64Eq
	CmpF64Ne
	CmpF64Lt
	CmpF64Gt
	CmpF64Le
	CmpF64Ge
)

// Negate returns the logical negation of c, used to lower `if` into a
// negated compare+branch to the else/end label.
func (c Comparator) Negate() Comparator {
	switch c {
	case CmpI32Eq:
		return CmpI32Ne
	case CmpI32Ne:
		return CmpI32Eq
	case CmpI32LtS:
		return CmpI32GeS
	case CmpI32LtU:
		return CmpI32GeU
	case CmpI32GtS:
		return CmpI32LeS
	case CmpI32GtU:
		return CmpI32LeU
	case CmpI32LeS:
		return CmpI32GtS
	case CmpI32LeU:
		return CmpI32GtU
	case CmpI32GeS:
		return CmpI32LtS
	case CmpI32GeU:
		return CmpI32LtU
	case CmpI64Eq:
		return CmpI64Ne
	case CmpI64Ne:
		return CmpI64Eq
	case CmpI64LtS:
		return CmpI64GeS
	case CmpI64LtU:
		return CmpI64GeU
	case CmpI64GtS:
		return CmpI64LeS
	case CmpI64GtU:
		return CmpI64LeU
	case CmpI64LeS:
		return CmpI64GtS
	case CmpI64LeU:
		return CmpI64GtU
	case CmpI64GeS:
		return CmpI64LtS
	case CmpI64GeU:
		return CmpI64LtU
	case CmpI32And:
		return CmpI32AndEqz
	case CmpI32AndEqz:
		return CmpI32And
	// Float comparisons negate into an "unordered or" form in general; since
	// this engine does not fuse float compare+branch when NaN-sensitivity
	// would change the fused form's meaning, float comparators below are
	// only ever fused when the translator already proved total ordering
	// doesn't matter (equality/inequality).
	case CmpF32Eq:
		return CmpF32Ne
	case CmpF32Ne:
		return CmpF32Eq
	case CmpF64Eq:
		return CmpF64Ne
	case CmpF64Ne:
		return CmpF64Eq
	default:
		return c
	}
}
