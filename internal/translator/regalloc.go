package translator

import (
	"math"

	"github.com/wasmi-go/wasmi/internal/ir"
	"github.com/wasmi-go/wasmi/internal/wasmruntime"
)

// regAllocPhase tracks the allocator's init/alloc/defrag phases:
//
//	| inputs | locals | dynamics | preservations |
//
// dynamics grow upward from len_locals; preservations shrink downward from
// the top of the 16-bit index space. After allocation, preservations are
// defragmented to sit immediately above dynamics, forming one contiguous
// register window.
type regAllocPhase int

const (
	phaseInit regAllocPhase = iota
	phaseAlloc
	phaseDefrag
)

// maxReg is the highest index a register allocation may use before
// colliding with the reserved top of the 16-bit space; the preserved region
// grows down from here.
const maxReg = math.MaxInt16 - 1

// registerAlloc tracks register-window growth for one function during
// translation.
type registerAlloc struct {
	phase regAllocPhase

	lenLocals ir.Reg // function inputs + registered locals

	nextDynamic ir.Reg // next register to hand out in the dynamic region
	maxDynamic  ir.Reg // high-water mark of the dynamic region

	nextPreserve ir.Reg // next register to hand out in the preserved region (shrinks)
	minPreserve  ir.Reg // low-water mark of the preserved region

	defragOffset ir.Reg // computed at finalize(): preserved_reg - defragOffset = final slot
}

func newRegisterAlloc() *registerAlloc {
	return &registerAlloc{nextPreserve: maxReg, minPreserve: maxReg}
}

// registerLocals finishes the init phase: `count` locals/params occupy
// registers [0, count).
func (a *registerAlloc) registerLocals(count int) {
	a.lenLocals = ir.Reg(count)
	a.nextDynamic = a.lenLocals
	a.maxDynamic = a.lenLocals
	a.phase = phaseAlloc
}

// pushDynamic allocates the next dynamic register (a new Temp pushed onto
// the operand stack that isn't a preserved local).
func (a *registerAlloc) pushDynamic() (ir.Reg, error) {
	r := a.nextDynamic
	a.nextDynamic++
	if a.nextDynamic > a.maxDynamic {
		a.maxDynamic = a.nextDynamic
	}
	if a.nextDynamic >= a.nextPreserve {
		return 0, wasmruntime.NewTranslatorError(wasmruntime.ErrAllocatedTooManyRegisters, "")
	}
	return r, nil
}

// popDynamic releases the most-recently allocated dynamic register; callers
// must pop in LIFO order matching the operand stack discipline the
// translator enforces (values are only ever consumed from the top).
func (a *registerAlloc) popDynamic() {
	if a.nextDynamic > a.lenLocals {
		a.nextDynamic--
	}
}

// pushPreserve allocates a new preservation register used to hold a local's
// prior value while it is still referenced on the operand stack.
func (a *registerAlloc) pushPreserve() (ir.Reg, error) {
	if a.nextPreserve <= a.nextDynamic {
		return 0, wasmruntime.NewTranslatorError(wasmruntime.ErrAllocatedTooManyRegisters, "")
	}
	a.nextPreserve--
	if a.nextPreserve < a.minPreserve {
		a.minPreserve = a.nextPreserve
	}
	return a.nextPreserve, nil
}

// popPreserve releases the most-recently allocated preservation register,
// once the Temp referencing it has been consumed.
func (a *registerAlloc) popPreserve() {
	if a.nextPreserve < maxReg {
		a.nextPreserve++
	}
}

// finalize computes the defragmentation offset and the function's total
// register-window size. The caller rewrites every instruction word,
// offsetting preservation registers by -defragOffset so the final layout
// is contiguous.
func (a *registerAlloc) finalize() (lenRegisters uint16, defragOffset ir.Reg) {
	if a.minPreserve == maxReg {
		// No preservation registers were ever allocated.
		return uint16(a.maxDynamic), 0
	}
	a.defragOffset = a.minPreserve - a.maxDynamic
	total := a.maxDynamic + (maxReg - a.minPreserve)
	a.phase = phaseDefrag
	return uint16(total), a.defragOffset
}

// remapPreserved rewrites a preserved-region register to its final,
// defragmented slot. No-op for dynamic/local registers or constants.
func (a *registerAlloc) remapPreserved(r ir.Reg) ir.Reg {
	if r.IsConst() || r < a.minPreserve {
		return r
	}
	return r - a.defragOffset
}
