package translator

import (
	"github.com/wasmi-go/wasmi/internal/ir"
	"github.com/wasmi-go/wasmi/internal/value"
)

// frameKind distinguishes the Wasm control-flow constructs tracked on the
// control stack: Block/Loop/If opens a frame, an optional Else transitions
// an If frame, and End closes back to the parent frame.
type frameKind int

const (
	frameBlock frameKind = iota
	frameLoop
	frameIf
	frameElse
	frameUnreachable
)

// ifReachability tracks whether an `if`'s then/else arm is statically known
// dead: a constant-true condition eliminates the else arm, a constant-false
// condition eliminates the then arm, otherwise both are reachable.
type ifReachability int

const (
	ifBoth ifReachability = iota
	ifOnlyThen
	ifOnlyElse
)

// pendingBranch records an unresolved forward branch into this frame's
// target instruction, patched once the frame's label is resolved (block/if
// "end", loop's own entry is already known so loop branches need no
// patching).
type pendingBranch struct {
	// instrIdx is the index of the branch instruction whose offset must be
	// rewritten once the target is known.
	instrIdx int
	// isFallback and constIdx are not set by the translator: every pending
	// branch is patched through its own instruction word (patchOffset).
	isFallback bool
	constIdx   int
}

// controlFrame is one entry of the translator's control stack, mirroring
// Wasm's block/loop/if/else/end nesting.
type controlFrame struct {
	kind frameKind

	blockType BlockType

	// label is the target instruction index this frame's "branch to this
	// frame" resolves to: for Loop, the frame's first instruction (the
	// loop header, for backward branches); for Block/If/Else, unknown
	// until `end` closes the frame (forward branch, recorded in
	// pendingBranches and patched then).
	label int

	// stackHeightAtEntry is the operand-stack height when this frame was
	// entered, used to validate/trim the stack on `end`.
	stackHeightAtEntry int

	pendingBranches []pendingBranch

	// reachable is false once the translator has seen unreachable/br/return
	// /br_table inside this frame and hasn't yet seen the matching
	// else/end — subsequent operators are validated-but-not-emitted.
	reachable bool

	ifReach ifReachability

	// elseBranchInstrIdx is set for an `if` frame: the instruction index the
	// negated compare+branch targets (the `else` branch, or `end` if there
	// is no explicit else). Patched the same way as pendingBranches.
	elseBranchInstrIdx int
	hasElseBranch      bool

	// resultRegs is the contiguous register span every branch into this
	// frame (and its own fallthrough) copies its values into, reserved on
	// first use via the dynamic allocator and cached here so every path
	// that reaches this frame's end agrees on where the result lives.
	resultRegs []ir.Reg

	// paramSnapshot pins an `if`'s incoming params into dedicated registers
	// before the then-arm runs. Wasm requires params == results for an if
	// with no else, so if none appears, the negated branch needs these to
	// pass through as the result; unused (and left nil) whenever an
	// explicit else is present.
	paramSnapshot []ir.Reg
}

func newBlockFrame(kind frameKind, bt BlockType, stackHeight int) controlFrame {
	return controlFrame{kind: kind, blockType: bt, stackHeightAtEntry: stackHeight, reachable: true, ifReach: ifBoth}
}

// branchResultTypes returns the value types produced when branching out of
// (or falling off the end of) this frame. For a Loop, a branch targets the
// loop entry (a backward branch) and so carries the block's *parameter*
// types instead of its results.
func (f *controlFrame) branchResultTypes() []value.Type {
	if f.kind == frameLoop {
		return f.blockType.Params
	}
	return f.blockType.Results
}
