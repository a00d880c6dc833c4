package interpreter

import (
	"github.com/wasmi-go/wasmi/internal/ir"
	"github.com/wasmi-go/wasmi/internal/value"
	"github.com/wasmi-go/wasmi/internal/wasm"
)

// maxCallStackDepth bounds recursion; exceeding it traps StackOverflow
// instead of exhausting the Go stack the interpreter itself runs on.
const maxCallStackDepth = 2048

// callFrame is one activation record: a function's register window plus its
// program counter into Compiled.Instrs. Frames live on callEngine.frames
// rather than the Go call stack, so tail calls replace the top frame in
// place and a suspended host call can leave the whole stack parked between
// CallResumable and ResumableInvocation.Resume.
type callFrame struct {
	fn       *wasm.Func
	instance *wasm.Instance
	regs     []value.Untyped
	pc       int
	// resultDest is where this frame's return values land in the caller's
	// register window; the outermost frame has a zero Len and its results
	// are handed back by popReturn as callEngine.run's results.
	resultDest ir.RegSpan
}

// callEngine holds everything shared across one Call/CallResumable
// invocation and any number of nested calls it makes.
type callEngine struct {
	frames []*callFrame

	fuelEnabled bool
	fuel        int64

	canonicalizeNaN bool
}

func newCallFrame(fn *wasm.Func, inst *wasm.Instance, dest ir.RegSpan) *callFrame {
	return &callFrame{
		fn:         fn,
		instance:   inst,
		regs:       make([]value.Untyped, fn.Compiled.LenRegisters),
		resultDest: dest,
	}
}

func (f *callFrame) get(r ir.Reg) value.Untyped {
	if r.IsConst() {
		return f.fn.Compiled.Consts[r.ConstIndex()]
	}
	return f.regs[r]
}

func (f *callFrame) set(r ir.Reg, v value.Untyped) {
	f.regs[r] = v
}

func (f *callFrame) instrs() []ir.Instruction { return f.fn.Compiled.Instrs }
