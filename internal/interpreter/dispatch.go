package interpreter

import (
	"context"
	"fmt"
	"math"

	"github.com/wasmi-go/wasmi/internal/ir"
	"github.com/wasmi-go/wasmi/internal/value"
	"github.com/wasmi-go/wasmi/internal/wasm"
	"github.com/wasmi-go/wasmi/internal/wasmruntime"
)

// run drives ce.frames' top frame until the call stack empties (normal
// return) or a host call suspends. Traps and host errors unwind via
// panic/recover, caught at the Call/CallResumable/ResumableInvocation.Resume
// boundary, so
// nothing here needs an error return.
func (ce *callEngine) run(ctx context.Context) (results []value.Untyped, suspend *ResumableInvocation) {
	for len(ce.frames) > 0 {
		frame := ce.frames[len(ce.frames)-1]
		instrs := frame.instrs()
		instr := instrs[frame.pc]

		switch instr.Op {
		case ir.OpNop:
			frame.pc++

		// --- Data movement ---
		case ir.OpCopy:
			frame.set(instr.A, frame.get(instr.B))
			frame.pc++
		case ir.OpCopyImm32:
			frame.set(instr.A, value.From32(instr.Imm32()))
			frame.pc++
		case ir.OpCopyI64Imm32:
			frame.set(instr.A, value.From64(instr.ImmI64()))
			frame.pc++
		case ir.OpCopySpan:
			n := int(instr.C)
			for i := 0; i < n; i++ {
				frame.set(instr.A+ir.Reg(i), frame.get(instr.B+ir.Reg(i)))
			}
			frame.pc++
		case ir.OpSelect:
			var v value.Untyped
			if frame.get(instr.B).I32() != 0 {
				v = frame.get(instr.C)
			} else {
				v = frame.get(ir.Reg(int16(instr.Imm)))
			}
			frame.set(instr.A, v)
			frame.pc++
		case ir.OpSelectImm:
			var v value.Untyped
			if frame.get(instr.B).I32() != 0 {
				v = frame.get(instr.C)
			} else {
				v = value.From32(instr.Imm32())
			}
			frame.set(instr.A, v)
			frame.pc++
		case ir.OpGlobalGet:
			idx := instrs[frame.pc+1].AsIndex()
			frame.set(instr.A, frame.instance.Global(idx).Value)
			frame.pc += 2
		case ir.OpGlobalSet:
			idx := instrs[frame.pc+1].AsIndex()
			frame.instance.Global(idx).Value = frame.get(instr.A)
			frame.pc += 2

		// --- Control flow ---
		case ir.OpBranch:
			frame.pc += int(instr.BranchOffset())
		case ir.OpBranchCmp:
			if evalComparator(ir.Comparator(instr.A), frame.get(instr.B), frame.get(instr.C)) {
				frame.pc += int(instr.Imm)
			} else {
				frame.pc++
			}
		case ir.OpBranchCmpImm16:
			lo, hi := instr.Imm16Pair()
			if evalComparator(ir.Comparator(instr.A), frame.get(instr.B), imm16(int32(lo))) {
				frame.pc += int(hi)
			} else {
				frame.pc++
			}
		case ir.OpBranchCmpFallback:
			off := instrs[frame.pc+1].AsIndex()
			if evalComparator(ir.Comparator(instr.A), frame.get(instr.B), frame.get(instr.C)) {
				frame.pc += int(int32(off))
			} else {
				frame.pc += 2
			}
		case ir.OpBranchTable:
			count := int(instrs[frame.pc+1].AsIndex())
			idx := int(frame.get(instr.A).I32())
			var armIdx int
			if idx < 0 || idx >= count {
				armIdx = frame.pc + 2 + count // default arm
			} else {
				armIdx = frame.pc + 2 + idx
			}
			frame.pc = armIdx + int(instrs[armIdx].BranchOffset())
		case ir.OpTrap:
			wasmruntime.Trigger(wasmruntime.TrapCode(instr.TrapCode()))
		case ir.OpConsumeFuel:
			if ce.fuelEnabled {
				ce.fuel -= int64(instr.FuelAmount())
				if ce.fuel < 0 {
					wasmruntime.Trigger(wasmruntime.TrapOutOfFuel)
				}
			}
			frame.pc++

		// --- Fused 16-bit-immediate arithmetic ---
		case ir.OpI32AddImm16:
			frame.set(instr.A, value.I32Add(frame.get(instr.B), imm16(instr.Imm)))
			frame.pc++
		case ir.OpI32SubImm16Lhs:
			frame.set(instr.A, value.I32Sub(imm16(instr.Imm), frame.get(instr.B)))
			frame.pc++
		case ir.OpI32DivSImm16Rhs:
			frame.set(instr.A, value.I32DivS(frame.get(instr.B), imm16(instr.Imm)))
			frame.pc++
		case ir.OpI32EqImm16:
			frame.set(instr.A, value.I32Eq(frame.get(instr.B), imm16(instr.Imm)))
			frame.pc++
		case ir.OpI32AndEqz:
			v := value.I32And(frame.get(instr.B), frame.get(instr.C))
			frame.set(instr.A, value.I32Eqz(v))
			frame.pc++
		case ir.OpI32ShlBy:
			frame.set(instr.A, value.I32Shl(frame.get(instr.B), value.From32(uint32(instr.Imm))))
			frame.pc++

		// --- Returns ---
		case ir.OpReturn:
			if done, final := ce.popReturn(nil); done {
				return final, nil
			}
		case ir.OpReturnReg:
			if done, final := ce.popReturn([]value.Untyped{frame.get(instr.A)}); done {
				return final, nil
			}
		case ir.OpReturnReg2:
			if done, final := ce.popReturn([]value.Untyped{frame.get(instr.A), frame.get(instr.B)}); done {
				return final, nil
			}
		case ir.OpReturnReg3:
			if done, final := ce.popReturn([]value.Untyped{frame.get(instr.A), frame.get(instr.B), frame.get(instr.C)}); done {
				return final, nil
			}
		case ir.OpReturnImm32:
			if done, final := ce.popReturn([]value.Untyped{value.From32(instr.Imm32())}); done {
				return final, nil
			}
		case ir.OpReturnSpan:
			span := instrs[frame.pc+1].AsRegSpan()
			vs := make([]value.Untyped, span.Len)
			for i := range vs {
				vs[i] = frame.get(span.At(uint16(i)))
			}
			if done, final := ce.popReturn(vs); done {
				return final, nil
			}

		// --- Memory ---
		case ir.OpI32Load, ir.OpI64Load, ir.OpF32Load, ir.OpF64Load,
			ir.OpI32Load8S, ir.OpI32Load8U, ir.OpI32Load16S, ir.OpI32Load16U,
			ir.OpI64Load8S, ir.OpI64Load8U, ir.OpI64Load16S, ir.OpI64Load16U, ir.OpI64Load32S, ir.OpI64Load32U:
			offset := instrs[frame.pc+1].AsIndex()
			ea, ok := effectiveAddr(frame.get(instr.B).I32(), offset)
			if !ok {
				wasmruntime.Trigger(wasmruntime.TrapMemoryOutOfBounds)
			}
			frame.set(instr.A, loadMemory(instr.Op, frame.instance.Memory(0), ea))
			frame.pc += 2
		case ir.OpI32LoadAt, ir.OpI64LoadAt, ir.OpF32LoadAt, ir.OpF64LoadAt:
			ea := instrs[frame.pc+1].AsIndex()
			frame.set(instr.A, loadMemory(instr.Op, frame.instance.Memory(0), ea))
			frame.pc += 2
		case ir.OpI32LoadOffset16, ir.OpI64LoadOffset16:
			ea, ok := effectiveAddr(frame.get(instr.B).I32(), uint32(uint16(instr.C)))
			if !ok {
				wasmruntime.Trigger(wasmruntime.TrapMemoryOutOfBounds)
			}
			if instr.Op == ir.OpI32LoadOffset16 {
				frame.set(instr.A, frame.instance.Memory(0).LoadI32(ea))
			} else {
				frame.set(instr.A, frame.instance.Memory(0).LoadI64(ea))
			}
			frame.pc++
		case ir.OpI32Store, ir.OpI64Store, ir.OpF32Store, ir.OpF64Store,
			ir.OpI32Store8, ir.OpI32Store16, ir.OpI64Store8, ir.OpI64Store16, ir.OpI64Store32:
			offset := instrs[frame.pc+1].AsIndex()
			ea, ok := effectiveAddr(frame.get(instr.A).I32(), offset)
			if !ok {
				wasmruntime.Trigger(wasmruntime.TrapMemoryOutOfBounds)
			}
			storeMemory(instr.Op, frame.instance.Memory(0), ea, frame.get(instr.B))
			frame.pc += 2
		case ir.OpI32StoreImm16:
			offset := instrs[frame.pc+1].AsIndex()
			ea, ok := effectiveAddr(frame.get(instr.A).I32(), offset)
			if !ok {
				wasmruntime.Trigger(wasmruntime.TrapMemoryOutOfBounds)
			}
			frame.instance.Memory(0).StoreI32(ea, imm16(int32(instr.B)))
			frame.pc += 2
		case ir.OpMemorySize:
			frame.set(instr.A, value.From32(frame.instance.Memory(0).Size()))
			frame.pc++
		case ir.OpMemoryGrow:
			prev, ok := frame.instance.Memory(0).Grow(frame.get(instr.B).I32())
			if !ok {
				frame.set(instr.A, value.From32(math.MaxUint32))
			} else {
				frame.set(instr.A, value.From32(prev))
			}
			frame.pc++
		case ir.OpMemoryFill:
			frame.instance.Memory(0).Fill(frame.get(instr.A).I32(), frame.get(instr.B).I32(), frame.get(instr.C).I32())
			frame.pc++
		case ir.OpMemoryCopy:
			frame.instance.Memory(0).Copy(frame.get(instr.A).I32(), frame.get(instr.B).I32(), frame.get(instr.C).I32())
			frame.pc++
		case ir.OpMemoryInit:
			dataIdx := instrs[frame.pc+1].AsIndex()
			seg := frame.instance.DataSegment(dataIdx)
			frame.instance.Memory(0).Init(frame.get(instr.A).I32(), seg.Bytes(), frame.get(instr.B).I32(), frame.get(instr.C).I32())
			frame.pc += 2
		case ir.OpDataDrop:
			dataIdx := instrs[frame.pc+1].AsIndex()
			frame.instance.DataSegment(dataIdx).Dropped = true
			frame.pc += 2

		// --- Table ---
		case ir.OpTableGet:
			tableIdx := instrs[frame.pc+1].AsIndex()
			frame.set(instr.A, frame.instance.Table(tableIdx).Get(frame.get(instr.B).I32()))
			frame.pc += 2
		case ir.OpTableSet:
			tableIdx := instrs[frame.pc+1].AsIndex()
			frame.instance.Table(tableIdx).Set(frame.get(instr.A).I32(), frame.get(instr.B))
			frame.pc += 2
		case ir.OpTableSize:
			tableIdx := instrs[frame.pc+1].AsIndex()
			frame.set(instr.A, value.From32(frame.instance.Table(tableIdx).Size()))
			frame.pc += 2
		case ir.OpTableGrow:
			tableIdx := instrs[frame.pc+1].AsIndex()
			prev, ok := frame.instance.Table(tableIdx).Grow(frame.get(instr.B).I32(), frame.get(instr.C))
			if !ok {
				frame.set(instr.A, value.From32(math.MaxUint32))
			} else {
				frame.set(instr.A, value.From32(prev))
			}
			frame.pc += 2
		case ir.OpTableFill:
			tableIdx := instrs[frame.pc+1].AsIndex()
			frame.instance.Table(tableIdx).Fill(frame.get(instr.A).I32(), frame.get(instr.B), frame.get(instr.C).I32())
			frame.pc += 2
		case ir.OpTableCopy:
			word := instrs[frame.pc+1]
			dstTable, srcTable := word.First(), word.Second()
			wasm.Copy(frame.instance.Table(dstTable), frame.get(instr.A).I32(), frame.instance.Table(srcTable), frame.get(instr.B).I32(), frame.get(instr.C).I32())
			frame.pc += 2
		case ir.OpTableInit:
			word := instrs[frame.pc+1]
			tableIdx, elemIdx := word.First(), word.Second()
			seg := frame.instance.ElementSegment(elemIdx)
			frame.instance.Table(tableIdx).Init(frame.get(instr.A).I32(), seg.Elements(), frame.get(instr.B).I32(), frame.get(instr.C).I32())
			frame.pc += 2
		case ir.OpElemDrop:
			elemIdx := instrs[frame.pc+1].AsIndex()
			frame.instance.ElementSegment(elemIdx).Dropped = true
			frame.pc += 2

		// --- Calls ---
		case ir.OpCallInternal0, ir.OpCallInternal, ir.OpCallImported0, ir.OpCallImported:
			resSpan := ir.RegSpan{First: instr.A, Len: uint16(instr.B)}
			width := 1 + int(instr.Op.FollowOnWords())
			funcIdx := instrs[frame.pc+1].AsIndex()
			var args ir.RegSpan
			if instr.Op == ir.OpCallInternal || instr.Op == ir.OpCallImported {
				args = instrs[frame.pc+2].AsRegSpan()
			}
			frame.pc += width
			target := frame.instance.Func(funcIdx)
			if s := ce.dispatchCall(ctx, frame, target, args, frame, resSpan); s != nil {
				return nil, s
			}
		case ir.OpCallIndirect0, ir.OpCallIndirect:
			resSpan := ir.RegSpan{First: instr.A, Len: uint16(instr.B)}
			word := instrs[frame.pc+1]
			typeIdx, tableIdx := word.First(), word.Second()
			width := 1 + int(instr.Op.FollowOnWords())
			var args ir.RegSpan
			if instr.Op == ir.OpCallIndirect {
				args = instrs[frame.pc+2].AsRegSpan()
			}
			target := resolveIndirect(frame.instance, tableIdx, typeIdx, frame.get(instr.C).I32())
			frame.pc += width
			if s := ce.dispatchCall(ctx, frame, target, args, frame, resSpan); s != nil {
				return nil, s
			}

		case ir.OpReturnCallInternal, ir.OpReturnCallImported:
			funcIdx := instrs[frame.pc+1].AsIndex()
			args := instrs[frame.pc+2].AsRegSpan()
			target := frame.instance.Func(funcIdx)
			if done, final, s := ce.dispatchTailCall(ctx, frame, target, args); s != nil {
				return nil, s
			} else if done {
				return final, nil
			}
		case ir.OpReturnCallIndirect:
			word := instrs[frame.pc+1]
			typeIdx, tableIdx := word.First(), word.Second()
			args := instrs[frame.pc+2].AsRegSpan()
			target := resolveIndirect(frame.instance, tableIdx, typeIdx, frame.get(instr.A).I32())
			if done, final, s := ce.dispatchTailCall(ctx, frame, target, args); s != nil {
				return nil, s
			} else if done {
				return final, nil
			}

		default:
			if fn, ok := binaryOps[instr.Op]; ok {
				res := fn(frame.get(instr.B), frame.get(instr.C))
				if ce.canonicalizeNaN {
					res = canonicalizeNaN(instr.Op, res)
				}
				frame.set(instr.A, res)
				frame.pc++
				continue
			}
			if fn, ok := unaryOps[instr.Op]; ok {
				res := fn(frame.get(instr.B))
				if ce.canonicalizeNaN {
					res = canonicalizeNaN(instr.Op, res)
				}
				frame.set(instr.A, res)
				frame.pc++
				continue
			}
			panic(fmt.Sprintf("interpreter: unhandled opcode %v", instr.Op))
		}
	}
	return nil, nil
}

// popReturn pops the current (returning) frame and, if a caller remains,
// copies results into its resultDest and leaves it as the new top frame.
// done reports whether the whole call completed (frames now empty).
func (ce *callEngine) popReturn(results []value.Untyped) (done bool, final []value.Untyped) {
	callee := ce.frames[len(ce.frames)-1]
	ce.frames = ce.frames[:len(ce.frames)-1]
	if len(ce.frames) == 0 {
		return true, results
	}
	caller := ce.frames[len(ce.frames)-1]
	for i, v := range results {
		caller.set(callee.resultDest.At(uint16(i)), v)
	}
	return false, nil
}

// dispatchCall performs a non-tail call: push a new frame for an internal
// target, or synchronously invoke a host target writing results (or the
// suspend signal) back into destFrame.
func (ce *callEngine) dispatchCall(ctx context.Context, argsFrame *callFrame, target *wasm.Func, args ir.RegSpan, destFrame *callFrame, dest ir.RegSpan) *ResumableInvocation {
	switch target.Kind {
	case wasm.FuncKindInternal:
		if len(ce.frames) >= maxCallStackDepth {
			wasmruntime.Trigger(wasmruntime.TrapStackOverflow)
		}
		nf := newCallFrame(target, target.Owner, dest)
		for i := uint16(0); i < args.Len; i++ {
			nf.regs[i] = argsFrame.get(args.At(i))
		}
		ce.frames = append(ce.frames, nf)
		return nil
	default:
		argVals := make([]value.Untyped, args.Len)
		for i := range argVals {
			argVals[i] = argsFrame.get(args.At(uint16(i)))
		}
		results, err := target.Host(ctx, argVals)
		if err != nil {
			if wasmruntime.IsHostSuspend(err) {
				return &ResumableInvocation{ce: ce, destFrame: destFrame, dest: dest, resultTypes: target.Type.Results}
			}
			wasmruntime.TriggerHostError(err)
		}
		for i, v := range results {
			destFrame.set(dest.At(uint16(i)), v)
		}
		return nil
	}
}

// dispatchTailCall replaces the current frame with target: reads args from
// the outgoing frame, pops it, then either pushes target as the new top
// frame (internal) or invokes it synchronously (host), in both cases
// reusing the popped frame's resultDest.
func (ce *callEngine) dispatchTailCall(ctx context.Context, outgoing *callFrame, target *wasm.Func, args ir.RegSpan) (done bool, final []value.Untyped, suspend *ResumableInvocation) {
	argVals := make([]value.Untyped, args.Len)
	for i := range argVals {
		argVals[i] = outgoing.get(args.At(uint16(i)))
	}
	dest := outgoing.resultDest
	ce.frames = ce.frames[:len(ce.frames)-1]

	if target.Kind == wasm.FuncKindInternal {
		if len(ce.frames) >= maxCallStackDepth {
			wasmruntime.Trigger(wasmruntime.TrapStackOverflow)
		}
		nf := newCallFrame(target, target.Owner, dest)
		copy(nf.regs, argVals)
		ce.frames = append(ce.frames, nf)
		return false, nil, nil
	}

	results, err := target.Host(ctx, argVals)
	if err != nil {
		if wasmruntime.IsHostSuspend(err) {
			if len(ce.frames) == 0 {
				return false, nil, &ResumableInvocation{ce: ce, destFrame: nil, dest: ir.RegSpan{Len: uint16(len(target.Type.Results))}, resultTypes: target.Type.Results, finalDest: true}
			}
			return false, nil, &ResumableInvocation{ce: ce, destFrame: ce.frames[len(ce.frames)-1], dest: dest, resultTypes: target.Type.Results}
		}
		wasmruntime.TriggerHostError(err)
	}
	if len(ce.frames) == 0 {
		return true, results, nil
	}
	caller := ce.frames[len(ce.frames)-1]
	for i, v := range results {
		caller.set(dest.At(uint16(i)), v)
	}
	return false, nil, nil
}

func resolveIndirect(inst *wasm.Instance, tableIdx, typeIdx, elemIdx uint32) *wasm.Func {
	target := inst.Table(tableIdx).FuncAt(elemIdx)
	if target == nil {
		wasmruntime.Trigger(wasmruntime.TrapIndirectCallToNull)
	}
	if !target.Type.Equal(inst.Types[typeIdx]) {
		wasmruntime.Trigger(wasmruntime.TrapBadSignature)
	}
	return target
}

func evalComparator(c ir.Comparator, a, b value.Untyped) bool {
	switch c {
	case ir.CmpI32Eq:
		return value.I32Eq(a, b).I32() != 0
	case ir.CmpI32Ne:
		return value.I32Ne(a, b).I32() != 0
	case ir.CmpI32LtS:
		return value.I32LtS(a, b).I32() != 0
	case ir.CmpI32LtU:
		return value.I32LtU(a, b).I32() != 0
	case ir.CmpI32GtS:
		return value.I32GtS(a, b).I32() != 0
	case ir.CmpI32GtU:
		return value.I32GtU(a, b).I32() != 0
	case ir.CmpI32LeS:
		return value.I32LeS(a, b).I32() != 0
	case ir.CmpI32LeU:
		return value.I32LeU(a, b).I32() != 0
	case ir.CmpI32GeS:
		return value.I32GeS(a, b).I32() != 0
	case ir.CmpI32GeU:
		return value.I32GeU(a, b).I32() != 0
	case ir.CmpI32And:
		return value.I32And(a, b).I32() != 0
	case ir.CmpI32AndEqz:
		return value.I32And(a, b).I32() == 0
	case ir.CmpI64Eq:
		return value.I64Eq(a, b).I32() != 0
	case ir.CmpI64Ne:
		return value.I64Ne(a, b).I32() != 0
	case ir.CmpI64LtS:
		return value.I64LtS(a, b).I32() != 0
	case ir.CmpI64LtU:
		return value.I64LtU(a, b).I32() != 0
	case ir.CmpI64GtS:
		return value.I64GtS(a, b).I32() != 0
	case ir.CmpI64GtU:
		return value.I64GtU(a, b).I32() != 0
	case ir.CmpI64LeS:
		return value.I64LeS(a, b).I32() != 0
	case ir.CmpI64LeU:
		return value.I64LeU(a, b).I32() != 0
	case ir.CmpI64GeS:
		return value.I64GeS(a, b).I32() != 0
	case ir.CmpI64GeU:
		return value.I64GeU(a, b).I32() != 0
	case ir.CmpF32Eq:
		return value.F32Eq(a, b).I32() != 0
	case ir.CmpF32Ne:
		return value.F32Ne(a, b).I32() != 0
	case ir.CmpF32Lt:
		return value.F32Lt(a, b).I32() != 0
	case ir.CmpF32Gt:
		return value.F32Gt(a, b).I32() != 0
	case ir.CmpF32Le:
		return value.F32Le(a, b).I32() != 0
	case ir.CmpF32Ge:
		return value.F32Ge(a, b).I32() != 0
	case ir.CmpF64Eq:
		return value.F64Eq(a, b).I32() != 0
	case ir.CmpF64Ne:
		return value.F64Ne(a, b).I32() != 0
	case ir.CmpF64Lt:
		return value.F64Lt(a, b).I32() != 0
	case ir.CmpF64Gt:
		return value.F64Gt(a, b).I32() != 0
	case ir.CmpF64Le:
		return value.F64Le(a, b).I32() != 0
	case ir.CmpF64Ge:
		return value.F64Ge(a, b).I32() != 0
	default:
		panic(fmt.Sprintf("interpreter: unhandled comparator %v", c))
	}
}

// effectiveAddr adds offset to addr in 64 bits so an overflowing sum traps
// rather than silently wrapping back into bounds.
func effectiveAddr(addr, offset uint32) (uint32, bool) {
	ea := uint64(addr) + uint64(offset)
	if ea > math.MaxUint32 {
		return 0, false
	}
	return uint32(ea), true
}

func loadMemory(op ir.Opcode, mem *wasm.Memory, addr uint32) value.Untyped {
	switch op {
	case ir.OpI32Load, ir.OpI32LoadAt:
		return mem.LoadI32(addr)
	case ir.OpI64Load, ir.OpI64LoadAt:
		return mem.LoadI64(addr)
	case ir.OpF32Load, ir.OpF32LoadAt:
		return mem.LoadF32(addr)
	case ir.OpF64Load, ir.OpF64LoadAt:
		return mem.LoadF64(addr)
	case ir.OpI32Load8S:
		return mem.LoadI32_8S(addr)
	case ir.OpI32Load8U:
		return mem.LoadI32_8U(addr)
	case ir.OpI32Load16S:
		return mem.LoadI32_16S(addr)
	case ir.OpI32Load16U:
		return mem.LoadI32_16U(addr)
	case ir.OpI64Load8S:
		return mem.LoadI64_8S(addr)
	case ir.OpI64Load8U:
		return mem.LoadI64_8U(addr)
	case ir.OpI64Load16S:
		return mem.LoadI64_16S(addr)
	case ir.OpI64Load16U:
		return mem.LoadI64_16U(addr)
	case ir.OpI64Load32S:
		return mem.LoadI64_32S(addr)
	case ir.OpI64Load32U:
		return mem.LoadI64_32U(addr)
	default:
		panic(fmt.Sprintf("interpreter: unhandled load opcode %v", op))
	}
}

func storeMemory(op ir.Opcode, mem *wasm.Memory, addr uint32, v value.Untyped) {
	switch op {
	case ir.OpI32Store:
		mem.StoreI32(addr, v)
	case ir.OpI64Store:
		mem.StoreI64(addr, v)
	case ir.OpF32Store:
		mem.StoreF32(addr, v)
	case ir.OpF64Store:
		mem.StoreF64(addr, v)
	case ir.OpI32Store8:
		mem.StoreI32_8(addr, v)
	case ir.OpI32Store16:
		mem.StoreI32_16(addr, v)
	case ir.OpI64Store8:
		mem.StoreI64_8(addr, v)
	case ir.OpI64Store16:
		mem.StoreI64_16(addr, v)
	case ir.OpI64Store32:
		mem.StoreI64_32(addr, v)
	default:
		panic(fmt.Sprintf("interpreter: unhandled store opcode %v", op))
	}
}
