package translator

import (
	"github.com/wasmi-go/wasmi/internal/ir"
	"github.com/wasmi-go/wasmi/internal/value"
)

// providerKind tags what a provider on the operand stack currently holds:
// a reference to a local's register, a temporary already computed into a
// register, or a compile-time-known immediate not yet materialized into
// any register. Dynamic and preserved temporaries collapse into one "Temp"
// kind carrying an ir.Reg, since the register allocator (regalloc.go)
// already distinguishes the two regions by index range.
type providerKind int

const (
	providerLocal providerKind = iota
	providerTemp
	providerImmediate
)

// provider is one entry of the translator's simulated Wasm operand stack:
// either a reference to a local, a temporary holding a register and
// (optionally) the instruction that produced it, or an immediate constant.
type provider struct {
	kind providerKind
	ty   value.Type

	// valid when kind == providerLocal
	localIdx uint32

	// valid when kind == providerTemp
	reg ir.Reg
	// instrIdx indexes into the instruction buffer at the point this temp's
	// value was produced; -1 if the temp did not originate from a single
	// fusable instruction (e.g. a function parameter or a call result).
	// Used by the br_if/select fusion heuristics to check whether the
	// producing instruction's result is otherwise unused by looking at
	// whether instrIdx's instruction is still the last emitted one and
	// this is the only reference to its destination register.
	instrIdx int
	// cmp is set when the producing instruction at instrIdx was itself a
	// comparison, allowing compare+branch / compare+select fusion without
	// re-deriving the comparator from the opcode.
	cmp    ir.Comparator
	hasCmp bool
	cmpLHS ir.Reg
	cmpRHS ir.Reg
	cmpRHSIsImm bool
	cmpRHSImm   int32

	// valid when kind == providerImmediate
	imm value.Untyped
}

func localProvider(idx uint32, ty value.Type) provider {
	return provider{kind: providerLocal, localIdx: idx, ty: ty}
}

func tempProvider(reg ir.Reg, ty value.Type) provider {
	return provider{kind: providerTemp, reg: reg, ty: ty, instrIdx: -1}
}

func immProvider(v value.Untyped, ty value.Type) provider {
	return provider{kind: providerImmediate, imm: v, ty: ty}
}

func (p provider) isLocal(idx uint32) bool {
	return p.kind == providerLocal && p.localIdx == idx
}
