// Package translator lowers a stream of validated Wasm operators into
// wasmi-go's register-machine IR (internal/ir). The decoder/validator that
// produces the operator stream is an external collaborator; this package
// consumes it as the Op/OpKind operator stream defined in operator.go and
// fed to Translate (program.go), which a binary decoder (or, as in this
// module's own tests, a hand-built operator slice) supplies in source order.
package translator

import (
	"github.com/wasmi-go/wasmi/internal/ir"
	"github.com/wasmi-go/wasmi/internal/value"
	"github.com/wasmi-go/wasmi/internal/wasmruntime"
)

// Translator lowers one function body at a time. Create one per function;
// it is not safe for concurrent use.
type Translator struct {
	params  []value.Type
	locals  []value.Type // params followed by declared locals, indexed by Wasm local index
	results []value.Type

	regs    *registerAlloc
	consts  *ir.ConstPool
	instrs  []ir.Instruction
	stack   []provider
	control []controlFrame

	localRegs []ir.Reg // Wasm local index -> assigned register

	fuelEnabled  bool
	fuelPending  int // index of the most recent OpConsumeFuel placeholder, -1 if none pending
	fuelAmount   uint32

	unreachableDepth int // >0 while skipping operators inside dead code
}

// New creates a translator for a function with the given parameter, local,
// and result types (locals are declared separately from params by the
// binary format but share one contiguous register range here).
func New(params, locals, results []value.Type, fuelEnabled bool) *Translator {
	t := &Translator{
		params:      params,
		results:     results,
		regs:        newRegisterAlloc(),
		consts:      ir.NewConstPool(),
		fuelEnabled: fuelEnabled,
		fuelPending: -1,
	}
	t.locals = make([]value.Type, 0, len(params)+len(locals))
	t.locals = append(t.locals, params...)
	t.locals = append(t.locals, locals...)
	t.localRegs = make([]ir.Reg, len(t.locals))
	for i := range t.localRegs {
		t.localRegs[i] = ir.Reg(i)
	}
	t.regs.registerLocals(len(t.locals))
	// The function body is an implicit outermost block with the function's
	// result types.
	t.control = append(t.control, newBlockFrame(frameBlock, BlockType{Results: results}, 0))
	if fuelEnabled {
		t.emitConsumeFuel()
	}
	return t
}

// emit appends i. Each primary instruction word charges one fuel unit to the
// pending OpConsumeFuel placeholder; follow-on words (OpNop) and the
// placeholders themselves are free.
func (t *Translator) emit(i ir.Instruction) int {
	if i.Op != ir.OpConsumeFuel && i.Op != ir.OpNop {
		t.chargeFuel(1)
	}
	t.instrs = append(t.instrs, i)
	return len(t.instrs) - 1
}

func (t *Translator) emitConsumeFuel() {
	t.fuelPending = t.emit(ir.NewInstr(ir.OpConsumeFuel, 0, 0, 0, 0))
	t.fuelAmount = 0
}

func (t *Translator) chargeFuel(n uint32) {
	if !t.fuelEnabled {
		return
	}
	if t.fuelPending < 0 {
		t.emitConsumeFuel()
	}
	t.fuelAmount += n
	t.instrs[t.fuelPending].Imm = int32(t.fuelAmount)
}

// currentFrame is the innermost control frame.
func (t *Translator) currentFrame() *controlFrame {
	return &t.control[len(t.control)-1]
}

func (t *Translator) isUnreachable() bool {
	return !t.currentFrame().reachable
}

func (t *Translator) push(p provider) {
	t.stack = append(t.stack, p)
}

func (t *Translator) pop() provider {
	n := len(t.stack)
	p := t.stack[n-1]
	t.stack = t.stack[:n-1]
	if p.kind == providerTemp {
		if p.reg >= t.regs.lenLocals {
			if p.reg >= t.regs.minPreserve && t.regs.minPreserve != maxReg {
				t.regs.popPreserve()
			} else {
				t.regs.popDynamic()
			}
		}
	}
	return p
}

// materialize resolves a provider to a Reg usable directly as an
// instruction operand: a register slot for Local/Temp, or a constant-pool
// Reg for Immediate. The dual Reg encoding means no Copy instruction is
// needed just to use an immediate as an operand.
func (t *Translator) materialize(p provider) ir.Reg {
	switch p.kind {
	case providerLocal:
		return t.localRegs[p.localIdx]
	case providerTemp:
		return p.reg
	default:
		return t.consts.Intern(p.imm)
	}
}

// fits16 reports whether an untyped i32 payload round-trips through a
// signed 16-bit immediate, the precondition for using a fused *Imm16 form
// instead of spilling the constant into the pool.
func fits16(v value.Untyped, ty value.Type) (int16, bool) {
	if ty != value.I32 {
		return 0, false
	}
	n := int32(v.I32())
	if n >= -32768 && n <= 32767 {
		return int16(n), true
	}
	return 0, false
}

// preserveLocal scans the live operand stack for any provider still
// referring to local index idx and rewrites it to a Temp holding a
// preserved copy, emitting the copy instruction before the local's
// register is overwritten by a subsequent local.set/tee.
func (t *Translator) preserveLocal(idx uint32) error {
	for i := range t.stack {
		p := &t.stack[i]
		if !p.isLocal(idx) {
			continue
		}
		reg, err := t.regs.pushPreserve()
		if err != nil {
			return err
		}
		t.emit(ir.NewInstr(ir.OpCopy, reg, t.localRegs[idx], 0, 0))
		*p = tempProvider(reg, p.ty)
	}
	return nil
}

// VisitLocalGet pushes a reference to local idx. No instruction is emitted
// — the value is read lazily when the provider is materialized.
func (t *Translator) VisitLocalGet(idx uint32) error {
	if t.isUnreachable() {
		return nil
	}
	t.push(localProvider(idx, t.locals[idx]))
	return nil
}

// VisitLocalSet writes the top-of-stack value into local idx, first
// preserving any copy of that local's old value still live on the operand
// stack.
func (t *Translator) VisitLocalSet(idx uint32) error {
	if t.isUnreachable() {
		return nil
	}
	v := t.pop()
	return t.storeLocal(idx, v)
}

// VisitLocalTee is VisitLocalSet without consuming the value: the local's
// new value is also left on the operand stack.
func (t *Translator) VisitLocalTee(idx uint32) error {
	if t.isUnreachable() {
		return nil
	}
	v := t.stack[len(t.stack)-1]
	if err := t.storeLocal(idx, v); err != nil {
		return err
	}
	return nil
}

func (t *Translator) storeLocal(idx uint32, v provider) error {
	if v.kind == providerLocal && v.localIdx == idx {
		return nil
	}
	if err := t.preserveLocal(idx); err != nil {
		return err
	}
	dst := t.localRegs[idx]
	ty := t.locals[idx]
	switch {
	case v.kind == providerImmediate && ty == value.I64 && int64(int32(v.imm)) == int64(v.imm):
		t.emit(ir.NewInstr(ir.OpCopyI64Imm32, dst, 0, 0, int32(v.imm)))
	case v.kind == providerImmediate && ty != value.I64 && ty != value.F64:
		t.emit(ir.NewInstr(ir.OpCopyImm32, dst, 0, 0, int32(v.imm)))
	default:
		t.emit(ir.NewInstr(ir.OpCopy, dst, t.materialize(v), 0, 0))
	}
	return nil
}

func (t *Translator) VisitI32Const(v int32) error {
	if t.isUnreachable() {
		return nil
	}
	t.push(immProvider(value.From32(uint32(v)), value.I32))
	return nil
}

func (t *Translator) VisitI64Const(v int64) error {
	if t.isUnreachable() {
		return nil
	}
	t.push(immProvider(value.From64(uint64(v)), value.I64))
	return nil
}

func (t *Translator) VisitF32Const(v uint32) error {
	if t.isUnreachable() {
		return nil
	}
	t.push(immProvider(value.From32(v), value.F32))
	return nil
}

func (t *Translator) VisitF64Const(v uint64) error {
	if t.isUnreachable() {
		return nil
	}
	t.push(immProvider(value.From64(v), value.F64))
	return nil
}

// VisitRefNull pushes the canonical null reference for ty (FuncRef or
// ExternRef).
func (t *Translator) VisitRefNull(ty value.Type) error {
	if t.isUnreachable() {
		return nil
	}
	t.push(immProvider(value.NullRef, ty))
	return nil
}

// VisitRefFunc pushes a non-null FuncRef for funcIdx, encoded the same way
// wasm.EncodeFuncRef packs table elements (0 stays null, so every real
// index is offset by one).
func (t *Translator) VisitRefFunc(funcIdx uint32) error {
	if t.isUnreachable() {
		return nil
	}
	t.push(immProvider(value.From32(funcIdx+1), value.FuncRef))
	return nil
}

// VisitRefIsNull pops a reference and pushes 1 if it is the null reference,
// 0 otherwise; reusing i32.eqz since references and i32 share the same
// untyped 32-bit-compare representation at register width.
func (t *Translator) VisitRefIsNull() error {
	return t.VisitNumeric(NumI32Eqz, value.I32)
}

func (t *Translator) VisitDrop() error {
	if t.isUnreachable() {
		return nil
	}
	t.pop()
	return nil
}

func (t *Translator) VisitSelect(ty value.Type) error {
	if t.isUnreachable() {
		return nil
	}
	cond := t.pop()
	ifFalse := t.pop()
	ifTrue := t.pop()
	dst, err := t.regs.pushDynamic()
	if err != nil {
		return err
	}
	// select does not fuse a preceding comparison: it always tests the
	// materialized condition register, using OpSelectImm when both arms are
	// 32-bit constants and OpSelect otherwise.
	condReg := t.materialize(cond)
	if ifFalse.kind == providerImmediate && ifTrue.kind == providerImmediate && ty != value.I64 && ty != value.F64 {
		t.emit(ir.Instruction{Op: ir.OpSelectImm, A: dst, B: condReg, C: t.materialize(ifTrue), Imm: int32(ifFalse.imm)})
	} else {
		// Four operands (dst, cond, ifTrue, ifFalse) don't fit three Reg
		// fields, so the register form rides ifFalse in Imm rather than
		// spending a follow-on word on the common case.
		t.emit(ir.Instruction{Op: ir.OpSelect, A: dst, B: condReg, C: t.materialize(ifTrue), Imm: int32(t.materialize(ifFalse))})
	}
	t.push(tempProvider(dst, ty))
	return nil
}

func (t *Translator) VisitGlobalGet(idx uint32, ty value.Type) error {
	if t.isUnreachable() {
		return nil
	}
	dst, err := t.regs.pushDynamic()
	if err != nil {
		return err
	}
	instrIdx := t.emit(ir.NewInstr(ir.OpGlobalGet, dst, 0, 0, 0))
	t.emit(ir.ConstWord(int32(idx)))
	p := tempProvider(dst, ty)
	p.instrIdx = instrIdx
	t.push(p)
	return nil
}

func (t *Translator) VisitGlobalSet(idx uint32) error {
	if t.isUnreachable() {
		return nil
	}
	v := t.pop()
	t.emit(ir.NewInstr(ir.OpGlobalSet, t.materialize(v), 0, 0, 0))
	t.emit(ir.ConstWord(int32(idx)))
	return nil
}

// emitBinary lowers a binary Numeric operator, using a fused 16-bit
// immediate form for the handful of opcodes that have one when one operand
// is a compile-time constant that fits, and falling back to the general
// register-register form (with the immediate routed through the constant
// pool) otherwise.
func (t *Translator) emitBinary(n Numeric, ty value.Type) error {
	rhs := t.pop()
	lhs := t.pop()
	dst, err := t.regs.pushDynamic()
	if err != nil {
		return err
	}
	resultTy := ty
	if n.isComparison() {
		resultTy = value.I32
	}

	if imm, ok := fits16(rhs.imm, rhs.ty); ok && rhs.kind == providerImmediate {
		if op, ok := imm16BinaryOp(n, false); ok {
			t.emit(ir.Instruction{Op: op, A: dst, B: t.materialize(lhs), Imm: int32(imm)})
			t.push(tempProvider(dst, resultTy))
			return nil
		}
	}
	if imm, ok := fits16(lhs.imm, lhs.ty); ok && lhs.kind == providerImmediate {
		if op, ok := imm16BinaryOp(n, true); ok {
			t.emit(ir.Instruction{Op: op, A: dst, B: t.materialize(rhs), Imm: int32(imm)})
			t.push(tempProvider(dst, resultTy))
			return nil
		}
	}

	info, ok := numericTable[n]
	if !ok {
		return wasmruntime.NewTranslatorError(wasmruntime.ErrUnsupportedOperator, "")
	}
	instrIdx := t.emit(ir.NewInstr(info.op, dst, t.materialize(lhs), t.materialize(rhs), 0))
	p := tempProvider(dst, resultTy)
	p.instrIdx = instrIdx
	if cmp, ok := comparatorFor(n); ok {
		p.hasCmp = true
		p.cmp = cmp
		p.cmpLHS = t.materialize(lhs)
		if imm, ok := fits16(rhs.imm, rhs.ty); ok && rhs.kind == providerImmediate {
			p.cmpRHSIsImm = true
			p.cmpRHSImm = int32(imm)
		} else {
			p.cmpRHS = t.materialize(rhs)
		}
	}
	t.push(p)
	return nil
}

// imm16BinaryOp returns the fused-immediate opcode for the handful of
// binary operators this translator specializes (add/sub/div_s/eq on i32),
// and whether the immediate occupies the lhs or rhs position.
func imm16BinaryOp(n Numeric, immIsLhs bool) (ir.Opcode, bool) {
	switch n {
	case NumI32Add:
		if !immIsLhs {
			return ir.OpI32AddImm16, true
		}
		return ir.OpI32AddImm16, true // addition commutes
	case NumI32Sub:
		if immIsLhs {
			return ir.OpI32SubImm16Lhs, true
		}
	case NumI32DivS:
		if !immIsLhs {
			return ir.OpI32DivSImm16Rhs, true
		}
	case NumI32Eq:
		return ir.OpI32EqImm16, true
	}
	return 0, false
}

func (t *Translator) emitUnary(n Numeric, ty value.Type) error {
	v := t.pop()
	dst, err := t.regs.pushDynamic()
	if err != nil {
		return err
	}
	info, ok := numericTable[n]
	if !ok {
		return wasmruntime.NewTranslatorError(wasmruntime.ErrUnsupportedOperator, "")
	}
	resultTy := ty
	if n.isComparison() {
		resultTy = value.I32
	}
	t.emit(ir.NewInstr(info.op, dst, t.materialize(v), 0, 0))
	t.push(tempProvider(dst, resultTy))
	return nil
}

// VisitNumeric dispatches a numeric operator by its arity, as reported by
// the table in numtable.go.
func (t *Translator) VisitNumeric(n Numeric, resultTy value.Type) error {
	if t.isUnreachable() {
		return nil
	}
	info, ok := numericTable[n]
	if !ok {
		return wasmruntime.NewTranslatorError(wasmruntime.ErrUnsupportedOperator, "")
	}
	if info.unary {
		return t.emitUnary(n, resultTy)
	}
	return t.emitBinary(n, resultTy)
}

// --- Control flow ---

func (t *Translator) VisitBlock(bt BlockType) error {
	if t.isUnreachable() {
		t.control = append(t.control, newBlockFrame(frameUnreachable, bt, len(t.stack)))
		return nil
	}
	t.control = append(t.control, newBlockFrame(frameBlock, bt, len(t.stack)))
	return nil
}

func (t *Translator) VisitLoop(bt BlockType) error {
	if t.isUnreachable() {
		t.control = append(t.control, newBlockFrame(frameUnreachable, bt, len(t.stack)))
		return nil
	}
	f := newBlockFrame(frameLoop, bt, len(t.stack))
	f.label = len(t.instrs)
	t.control = append(t.control, f)
	if t.fuelEnabled {
		t.emitConsumeFuel()
	}
	return nil
}

// VisitIf pops the condition and opens an If frame, emitting a fused
// compare+branch (or a plain branch on the materialized condition) to the
// else/end target, patched once that target is known. A compile-time
// constant condition skips the runtime test entirely: the dead arm's
// operators are still visited (so nested control-frame bookkeeping and
// label indices stay in sync) but discarded, since the frame starts
// unreachable.
func (t *Translator) VisitIf(bt BlockType) error {
	if t.isUnreachable() {
		t.control = append(t.control, newBlockFrame(frameUnreachable, bt, len(t.stack)))
		return nil
	}
	cond := t.pop()
	f := newBlockFrame(frameIf, bt, len(t.stack))

	if cond.kind == providerImmediate {
		if cond.imm.I32() != 0 {
			f.ifReach = ifOnlyThen
		} else {
			f.ifReach = ifOnlyElse
			f.reachable = false
		}
		t.control = append(t.control, f)
		return nil
	}

	var instrIdx int
	if cond.hasCmp {
		neg := cond.cmp.Negate()
		if cond.cmpRHSIsImm {
			instrIdx = t.emit(ir.Instruction{Op: ir.OpBranchCmpImm16, A: ir.Reg(neg), B: cond.cmpLHS, Imm: cond.cmpRHSImm})
		} else {
			instrIdx = t.emit(ir.Instruction{Op: ir.OpBranchCmp, A: ir.Reg(neg), B: cond.cmpLHS, C: cond.cmpRHS})
		}
	} else {
		instrIdx = t.emit(ir.Instruction{Op: ir.OpBranchCmpImm16, A: ir.Reg(ir.CmpI32Eq), B: t.materialize(cond), Imm: 0})
	}
	f.elseBranchInstrIdx = instrIdx
	f.hasElseBranch = true

	// Pin the incoming params before the then-arm can overwrite a local
	// they still reference: an if with no else requires params == results,
	// and by the time End discovers there was no else, the then-arm has
	// already run and the operand stack no longer holds these values.
	if n := len(bt.Params); n > 0 && n == len(bt.Results) {
		base := len(t.stack) - n
		f.paramSnapshot = make([]ir.Reg, n)
		for i := 0; i < n; i++ {
			r, err := t.regs.pushDynamic()
			if err != nil {
				return err
			}
			t.emit(ir.NewInstr(ir.OpCopy, r, t.materialize(t.stack[base+i]), 0, 0))
			f.paramSnapshot[i] = r
		}
	}

	t.control = append(t.control, f)
	return nil
}

// VisitElse closes the then-arm (copying any live fallthrough value into
// the if frame's result span, the same as a branch to `end` would) and
// opens the else-arm. A statically-known condition needs no runtime branch
// at all: the live arm already ran (or the dead one was skipped), so the
// other arm just starts out unreachable or reachable accordingly.
func (t *Translator) VisitElse() error {
	f := &t.control[len(t.control)-1]
	if f.kind == frameUnreachable {
		return nil
	}
	if err := t.closeArm(f); err != nil {
		return err
	}

	switch f.ifReach {
	case ifOnlyThen:
		f.kind = frameElse
		f.reachable = false
		return nil
	case ifOnlyElse:
		f.kind = frameElse
		f.reachable = true
		return nil
	}

	// Branch over the else block from the end of the then block, patched at End.
	endBranch := t.emit(ir.NewInstr(ir.OpBranch, 0, 0, 0, 0))
	if f.hasElseBranch {
		t.patchOffset(f.elseBranchInstrIdx, len(t.instrs))
	}
	f.pendingBranches = append(f.pendingBranches, pendingBranch{instrIdx: endBranch})
	f.kind = frameElse
	f.reachable = true
	return nil
}

// patchOffset backfills a branch instruction's target once it is known.
// OpBranchCmpImm16 packs its rhs immediate into Imm's low 16 bits at emit
// time (see VisitIf/VisitBrIf), so here it gets only the high 16 bits; an
// offset that does not fit them widens the instruction to OpBranchCmp, with
// the rhs moved into the constant pool and the full offset in Imm. Every
// other branch form has the whole Imm word free for the offset.
func (t *Translator) patchOffset(branchInstrIdx, targetInstrIdx int) {
	off := targetInstrIdx - branchInstrIdx
	instr := &t.instrs[branchInstrIdx]
	if instr.Op == ir.OpBranchCmpImm16 {
		if !ir.FitsBranchOffset16(ir.BranchOffset(off)) {
			rhs, _ := instr.Imm16Pair()
			instr.Op = ir.OpBranchCmp
			instr.C = t.consts.Intern(value.From32(uint32(int32(rhs))))
			instr.Imm = int32(off)
			return
		}
		instr.Imm = (instr.Imm & 0xffff) | int32(int16(off))<<16
		return
	}
	instr.Imm = int32(ir.BranchOffset(off))
}

// VisitEnd closes the innermost frame. The live arm's fallthrough value (if
// any) is copied into the frame's result span exactly like a branch to this
// point would be, the operand stack is cut back to the frame's entry height,
// and the frame's results are pushed as fresh temporaries referencing that
// span, so a taken branch and a straight fallthrough agree on both the
// stack shape and the register the result lives in.
func (t *Translator) VisitEnd() error {
	idx := len(t.control) - 1
	f := t.control[idx]
	t.control = t.control[:idx]

	if f.kind == frameUnreachable {
		return nil
	}
	if f.kind == frameLoop {
		return t.closeLoopEnd(&f)
	}

	if f.kind == frameIf && f.ifReach == ifOnlyElse {
		// The then-arm was statically dead and no else appeared: the
		// params, never consumed, pass through as the if's results.
		f.reachable = true
	}
	if err := t.closeArm(&f); err != nil {
		return err
	}

	if f.kind == frameIf && f.hasElseBranch {
		// No explicit else: the negated branch lands here, after the
		// then-arm's own copy. An if with no else requires params ==
		// results, so splice the pinned params into the same span.
		t.patchOffset(f.elseBranchInstrIdx, len(t.instrs))
		if len(f.paramSnapshot) > 0 {
			regs, err := t.ensureResultRegs(&f, f.branchResultTypes())
			if err != nil {
				return err
			}
			for i, r := range f.paramSnapshot {
				t.emit(ir.NewInstr(ir.OpCopy, regs[i], r, 0, 0))
			}
		}
	}
	for _, pb := range f.pendingBranches {
		t.patchOffset(pb.instrIdx, len(t.instrs))
	}

	for i, r := range f.resultRegs {
		t.push(tempProvider(r, f.blockType.Results[i]))
	}
	return nil
}

// closeArm finalizes one arm of a block/if/else, at an Else or an End: a
// live fallthrough value is materialized before anything is released, the
// operand stack is cut back to the frame's entry height (adjusted for the
// construct's own param count, which is never re-pushed), and only then is
// the frame's result span allocated (or reused, if some branch already
// reserved it) and the value copied in. Allocating after the cut, not
// before, keeps the dynamic allocator's LIFO bookkeeping correct: the cut
// frees registers above the arm's entry height, and the result span must
// sit at or below the newly freed top, never above it.
func (t *Translator) closeArm(f *controlFrame) error {
	types := f.branchResultTypes()
	target := f.stackHeightAtEntry - len(f.blockType.Params)

	var srcs []ir.Reg
	if f.reachable && len(types) > 0 {
		srcs = make([]ir.Reg, len(types))
		for i, p := range t.stack[len(t.stack)-len(types):] {
			srcs[i] = t.materialize(p)
		}
	}
	for len(t.stack) > target {
		t.pop()
	}
	if len(types) == 0 {
		return nil
	}
	regs, err := t.ensureResultRegs(f, types)
	if err != nil {
		return err
	}
	if srcs != nil {
		for i, r := range regs {
			t.emit(ir.NewInstr(ir.OpCopy, r, srcs[i], 0, 0))
		}
	}
	return nil
}

// closeLoopEnd finalizes a loop frame at `end`. Unlike Block/If/Else, a
// loop's own end is reached only by falling through: branches to a loop
// target its header (branchResultTypes' Params), never this point, so
// there is no reserved span to agree with. The live top-of-stack values
// simply are the loop's declared results and are rehomed to fresh registers
// before the cut releases their old ones.
func (t *Translator) closeLoopEnd(f *controlFrame) error {
	results := f.blockType.Results
	target := f.stackHeightAtEntry - len(f.blockType.Params)

	var srcs []ir.Reg
	if f.reachable && len(results) > 0 {
		srcs = make([]ir.Reg, len(results))
		for i, p := range t.stack[len(t.stack)-len(results):] {
			srcs[i] = t.materialize(p)
		}
	}
	for len(t.stack) > target {
		t.pop()
	}
	for i, ty := range results {
		dst, err := t.regs.pushDynamic()
		if err != nil {
			return err
		}
		if srcs != nil {
			t.emit(ir.NewInstr(ir.OpCopy, dst, srcs[i], 0, 0))
		}
		t.push(tempProvider(dst, ty))
	}
	return nil
}

// ensureResultRegs reserves (once per frame, cached on f) the register span
// every copy into f is written to, allocating via the ordinary dynamic
// allocator at whatever point it is first needed.
func (t *Translator) ensureResultRegs(f *controlFrame, types []value.Type) ([]ir.Reg, error) {
	if f.resultRegs != nil {
		return f.resultRegs, nil
	}
	regs := make([]ir.Reg, len(types))
	for i := range regs {
		r, err := t.regs.pushDynamic()
		if err != nil {
			return nil, err
		}
		regs[i] = r
	}
	f.resultRegs = regs
	return regs, nil
}

func (t *Translator) VisitUnreachable() error {
	if t.isUnreachable() {
		return nil
	}
	t.emit(ir.Instruction{Op: ir.OpTrap, Imm: int32(wasmruntime.TrapUnreachable)})
	t.currentFrame().reachable = false
	return nil
}

// branchFrame returns the control frame `depth` levels up from the
// innermost (0 == innermost).
func (t *Translator) branchFrame(depth uint32) *controlFrame {
	return &t.control[len(t.control)-1-int(depth)]
}

// emitBranchValues copies the top N operand-stack values (N = the target
// frame's branch arity) into its reserved result span immediately before a
// branch, per the value-copy semantics a register machine needs in place of
// a stack machine's implicit value passing. The source values are read, not
// popped: a conditional branch may fall through and keep using them.
func (t *Translator) emitBranchValues(target *controlFrame) error {
	types := target.branchResultTypes()
	if len(types) == 0 {
		return nil
	}
	regs, err := t.ensureResultRegs(target, types)
	if err != nil {
		return err
	}
	srcs := t.stack[len(t.stack)-len(types):]
	for i, r := range regs {
		t.emit(ir.NewInstr(ir.OpCopy, r, t.materialize(srcs[i]), 0, 0))
	}
	return nil
}

func (t *Translator) VisitBr(depth uint32) error {
	if t.isUnreachable() {
		return nil
	}
	target := t.branchFrame(depth)
	if err := t.emitBranchValues(target); err != nil {
		return err
	}
	instrIdx := t.emit(ir.NewInstr(ir.OpBranch, 0, 0, 0, 0))
	if target.kind == frameLoop {
		t.patchOffset(instrIdx, target.label)
	} else {
		target.pendingBranches = append(target.pendingBranches, pendingBranch{instrIdx: instrIdx})
	}
	t.currentFrame().reachable = false
	return nil
}

func (t *Translator) VisitBrIf(depth uint32) error {
	if t.isUnreachable() {
		return nil
	}
	cond := t.pop()
	target := t.branchFrame(depth)
	if err := t.emitBranchValues(target); err != nil {
		return err
	}

	var instrIdx int
	if cond.hasCmp {
		if cond.cmpRHSIsImm {
			instrIdx = t.emit(ir.Instruction{Op: ir.OpBranchCmpImm16, A: ir.Reg(cond.cmp), B: cond.cmpLHS, Imm: cond.cmpRHSImm})
		} else {
			instrIdx = t.emit(ir.Instruction{Op: ir.OpBranchCmp, A: ir.Reg(cond.cmp), B: cond.cmpLHS, C: cond.cmpRHS})
		}
	} else {
		instrIdx = t.emit(ir.Instruction{Op: ir.OpBranchCmpImm16, A: ir.Reg(ir.CmpI32Ne), B: t.materialize(cond), Imm: 0})
	}
	if target.kind == frameLoop {
		t.patchOffset(instrIdx, target.label)
	} else {
		target.pendingBranches = append(target.pendingBranches, pendingBranch{instrIdx: instrIdx})
	}
	return nil
}

func (t *Translator) VisitBrTable(targets []uint32, def uint32) error {
	if t.isUnreachable() {
		return nil
	}
	idx := t.pop()

	// Every target (including the default) shares the same branch arity by
	// validation; copy the live values into each distinct target frame's
	// span once before the dispatch, since only one arm runs at runtime and
	// which one isn't known until then.
	seen := make(map[*controlFrame]bool, len(targets)+1)
	for _, depth := range append(append([]uint32{}, targets...), def) {
		target := t.branchFrame(depth)
		if seen[target] {
			continue
		}
		seen[target] = true
		if err := t.emitBranchValues(target); err != nil {
			return err
		}
	}

	instrIdx := t.emit(ir.NewInstr(ir.OpBranchTable, t.materialize(idx), 0, 0, 0))
	t.emit(ir.ConstWord(int32(len(targets))))
	for _, depth := range targets {
		target := t.branchFrame(depth)
		pIdx := t.emit(ir.NewInstr(ir.OpNop, 0, 0, 0, 0))
		if target.kind == frameLoop {
			t.patchOffset(pIdx, target.label)
		} else {
			target.pendingBranches = append(target.pendingBranches, pendingBranch{instrIdx: pIdx})
		}
	}
	defTarget := t.branchFrame(def)
	pIdx := t.emit(ir.NewInstr(ir.OpNop, 0, 0, 0, 0))
	if defTarget.kind == frameLoop {
		t.patchOffset(pIdx, defTarget.label)
	} else {
		defTarget.pendingBranches = append(defTarget.pendingBranches, pendingBranch{instrIdx: pIdx})
	}
	_ = instrIdx
	t.currentFrame().reachable = false
	return nil
}

func (t *Translator) VisitReturn() error {
	if t.isUnreachable() {
		return nil
	}
	n := len(t.results)
	switch {
	case n == 0:
		t.emit(ir.NewInstr(ir.OpReturn, 0, 0, 0, 0))
	case n == 1:
		v := t.pop()
		if v.kind == providerImmediate && v.ty != value.I64 && v.ty != value.F64 {
			t.emit(ir.NewInstr(ir.OpReturnImm32, 0, 0, 0, int32(v.imm)))
		} else {
			t.emit(ir.NewInstr(ir.OpReturnReg, t.materialize(v), 0, 0, 0))
		}
	case n == 2:
		b := t.pop()
		a := t.pop()
		t.emit(ir.NewInstr(ir.OpReturnReg2, t.materialize(a), t.materialize(b), 0, 0))
	case n == 3:
		c := t.pop()
		b := t.pop()
		a := t.pop()
		t.emit(ir.NewInstr(ir.OpReturnReg3, t.materialize(a), t.materialize(b), t.materialize(c), 0))
	default:
		vs := make([]provider, n)
		for i := n - 1; i >= 0; i-- {
			vs[i] = t.pop()
		}
		instrIdx := t.emit(ir.NewInstr(ir.OpReturnSpan, 0, 0, 0, 0))
		_ = instrIdx
		t.emit(ir.CallParamsWord(ir.RegSpan{First: t.materialize(vs[0]), Len: uint16(n)}))
	}
	t.currentFrame().reachable = false
	return nil
}

// --- Memory ---

func (t *Translator) visitLoad(generalOp, atOp ir.Opcode, offset uint32, resultTy value.Type) error {
	addr := t.pop()
	dst, err := t.regs.pushDynamic()
	if err != nil {
		return err
	}
	if addr.kind == providerImmediate && uint64(addr.imm.I32())+uint64(offset) <= 0xFFFFFFFF {
		abs := addr.imm.I32() + offset
		t.emit(ir.NewInstr(atOp, dst, 0, 0, 0))
		t.emit(ir.ConstWord(int32(abs)))
	} else {
		t.emit(ir.NewInstr(generalOp, dst, t.materialize(addr), 0, 0))
		t.emit(ir.ConstWord(int32(offset)))
	}
	t.push(tempProvider(dst, resultTy))
	return nil
}

func (t *Translator) VisitI32Load(offset uint32) error {
	if t.isUnreachable() {
		return nil
	}
	return t.visitLoad(ir.OpI32Load, ir.OpI32LoadAt, offset, value.I32)
}

func (t *Translator) VisitI64Load(offset uint32) error {
	if t.isUnreachable() {
		return nil
	}
	return t.visitLoad(ir.OpI64Load, ir.OpI64LoadAt, offset, value.I64)
}

func (t *Translator) VisitF32Load(offset uint32) error {
	if t.isUnreachable() {
		return nil
	}
	return t.visitLoad(ir.OpF32Load, ir.OpF32LoadAt, offset, value.F32)
}

func (t *Translator) VisitF64Load(offset uint32) error {
	if t.isUnreachable() {
		return nil
	}
	return t.visitLoad(ir.OpF64Load, ir.OpF64LoadAt, offset, value.F64)
}

// visitNarrowLoad covers the sign/zero-extending narrow loads
// (i32.load8_s, i64.load16_u, ...), which have no *At fast path in this
// module's opcode set and always carry the offset as a follow-on word.
func (t *Translator) visitNarrowLoad(op ir.Opcode, offset uint32, resultTy value.Type) error {
	addr := t.pop()
	dst, err := t.regs.pushDynamic()
	if err != nil {
		return err
	}
	t.emit(ir.NewInstr(op, dst, t.materialize(addr), 0, 0))
	t.emit(ir.ConstWord(int32(offset)))
	t.push(tempProvider(dst, resultTy))
	return nil
}

func (t *Translator) VisitI32Load8S(offset uint32) error {
	if t.isUnreachable() {
		return nil
	}
	return t.visitNarrowLoad(ir.OpI32Load8S, offset, value.I32)
}
func (t *Translator) VisitI32Load8U(offset uint32) error {
	if t.isUnreachable() {
		return nil
	}
	return t.visitNarrowLoad(ir.OpI32Load8U, offset, value.I32)
}
func (t *Translator) VisitI32Load16S(offset uint32) error {
	if t.isUnreachable() {
		return nil
	}
	return t.visitNarrowLoad(ir.OpI32Load16S, offset, value.I32)
}
func (t *Translator) VisitI32Load16U(offset uint32) error {
	if t.isUnreachable() {
		return nil
	}
	return t.visitNarrowLoad(ir.OpI32Load16U, offset, value.I32)
}
func (t *Translator) VisitI64Load8S(offset uint32) error {
	if t.isUnreachable() {
		return nil
	}
	return t.visitNarrowLoad(ir.OpI64Load8S, offset, value.I64)
}
func (t *Translator) VisitI64Load8U(offset uint32) error {
	if t.isUnreachable() {
		return nil
	}
	return t.visitNarrowLoad(ir.OpI64Load8U, offset, value.I64)
}
func (t *Translator) VisitI64Load16S(offset uint32) error {
	if t.isUnreachable() {
		return nil
	}
	return t.visitNarrowLoad(ir.OpI64Load16S, offset, value.I64)
}
func (t *Translator) VisitI64Load16U(offset uint32) error {
	if t.isUnreachable() {
		return nil
	}
	return t.visitNarrowLoad(ir.OpI64Load16U, offset, value.I64)
}
func (t *Translator) VisitI64Load32S(offset uint32) error {
	if t.isUnreachable() {
		return nil
	}
	return t.visitNarrowLoad(ir.OpI64Load32S, offset, value.I64)
}
func (t *Translator) VisitI64Load32U(offset uint32) error {
	if t.isUnreachable() {
		return nil
	}
	return t.visitNarrowLoad(ir.OpI64Load32U, offset, value.I64)
}

func (t *Translator) visitStore(op ir.Opcode, offset uint32) error {
	val := t.pop()
	addr := t.pop()
	t.emit(ir.NewInstr(op, t.materialize(addr), t.materialize(val), 0, 0))
	t.emit(ir.ConstWord(int32(offset)))
	return nil
}

func (t *Translator) VisitI32Store(offset uint32) error {
	if t.isUnreachable() {
		return nil
	}
	return t.visitStore(ir.OpI32Store, offset)
}
func (t *Translator) VisitI64Store(offset uint32) error {
	if t.isUnreachable() {
		return nil
	}
	return t.visitStore(ir.OpI64Store, offset)
}
func (t *Translator) VisitF32Store(offset uint32) error {
	if t.isUnreachable() {
		return nil
	}
	return t.visitStore(ir.OpF32Store, offset)
}
func (t *Translator) VisitF64Store(offset uint32) error {
	if t.isUnreachable() {
		return nil
	}
	return t.visitStore(ir.OpF64Store, offset)
}
func (t *Translator) VisitI32Store8(offset uint32) error {
	if t.isUnreachable() {
		return nil
	}
	return t.visitStore(ir.OpI32Store8, offset)
}
func (t *Translator) VisitI32Store16(offset uint32) error {
	if t.isUnreachable() {
		return nil
	}
	return t.visitStore(ir.OpI32Store16, offset)
}
func (t *Translator) VisitI64Store8(offset uint32) error {
	if t.isUnreachable() {
		return nil
	}
	return t.visitStore(ir.OpI64Store8, offset)
}
func (t *Translator) VisitI64Store16(offset uint32) error {
	if t.isUnreachable() {
		return nil
	}
	return t.visitStore(ir.OpI64Store16, offset)
}
func (t *Translator) VisitI64Store32(offset uint32) error {
	if t.isUnreachable() {
		return nil
	}
	return t.visitStore(ir.OpI64Store32, offset)
}

func (t *Translator) VisitMemorySize() error {
	if t.isUnreachable() {
		return nil
	}
	dst, err := t.regs.pushDynamic()
	if err != nil {
		return err
	}
	t.emit(ir.NewInstr(ir.OpMemorySize, dst, 0, 0, 0))
	t.push(tempProvider(dst, value.I32))
	return nil
}

func (t *Translator) VisitMemoryGrow() error {
	if t.isUnreachable() {
		return nil
	}
	delta := t.pop()
	dst, err := t.regs.pushDynamic()
	if err != nil {
		return err
	}
	t.emit(ir.NewInstr(ir.OpMemoryGrow, dst, t.materialize(delta), 0, 0))
	t.push(tempProvider(dst, value.I32))
	return nil
}

func (t *Translator) VisitMemoryFill() error {
	if t.isUnreachable() {
		return nil
	}
	n := t.pop()
	val := t.pop()
	dst := t.pop()
	t.emit(ir.NewInstr(ir.OpMemoryFill, t.materialize(dst), t.materialize(val), t.materialize(n), 0))
	return nil
}

func (t *Translator) VisitMemoryCopy() error {
	if t.isUnreachable() {
		return nil
	}
	n := t.pop()
	src := t.pop()
	dst := t.pop()
	t.emit(ir.NewInstr(ir.OpMemoryCopy, t.materialize(dst), t.materialize(src), t.materialize(n), 0))
	return nil
}

func (t *Translator) VisitMemoryInit(dataIdx uint32) error {
	if t.isUnreachable() {
		return nil
	}
	n := t.pop()
	src := t.pop()
	dst := t.pop()
	t.emit(ir.NewInstr(ir.OpMemoryInit, t.materialize(dst), t.materialize(src), t.materialize(n), 0))
	t.emit(ir.ConstWord(int32(dataIdx)))
	return nil
}

func (t *Translator) VisitDataDrop(dataIdx uint32) error {
	if t.isUnreachable() {
		return nil
	}
	t.emit(ir.NewInstr(ir.OpDataDrop, 0, 0, 0, 0))
	t.emit(ir.ConstWord(int32(dataIdx)))
	return nil
}

// --- Table ---

func (t *Translator) VisitTableGet(tableIdx uint32) error {
	if t.isUnreachable() {
		return nil
	}
	idx := t.pop()
	dst, err := t.regs.pushDynamic()
	if err != nil {
		return err
	}
	t.emit(ir.NewInstr(ir.OpTableGet, dst, t.materialize(idx), 0, 0))
	t.emit(ir.ConstWord(int32(tableIdx)))
	t.push(tempProvider(dst, value.FuncRef))
	return nil
}

func (t *Translator) VisitTableSet(tableIdx uint32) error {
	if t.isUnreachable() {
		return nil
	}
	val := t.pop()
	idx := t.pop()
	t.emit(ir.NewInstr(ir.OpTableSet, t.materialize(idx), t.materialize(val), 0, 0))
	t.emit(ir.ConstWord(int32(tableIdx)))
	return nil
}

func (t *Translator) VisitTableSize(tableIdx uint32) error {
	if t.isUnreachable() {
		return nil
	}
	dst, err := t.regs.pushDynamic()
	if err != nil {
		return err
	}
	t.emit(ir.NewInstr(ir.OpTableSize, dst, 0, 0, 0))
	t.emit(ir.ConstWord(int32(tableIdx)))
	t.push(tempProvider(dst, value.I32))
	return nil
}

func (t *Translator) VisitTableGrow(tableIdx uint32) error {
	if t.isUnreachable() {
		return nil
	}
	delta := t.pop()
	val := t.pop()
	dst, err := t.regs.pushDynamic()
	if err != nil {
		return err
	}
	t.emit(ir.NewInstr(ir.OpTableGrow, dst, t.materialize(delta), t.materialize(val), 0))
	t.emit(ir.ConstWord(int32(tableIdx)))
	t.push(tempProvider(dst, value.I32))
	return nil
}

func (t *Translator) VisitTableFill(tableIdx uint32) error {
	if t.isUnreachable() {
		return nil
	}
	n := t.pop()
	val := t.pop()
	idx := t.pop()
	t.emit(ir.NewInstr(ir.OpTableFill, t.materialize(idx), t.materialize(val), t.materialize(n), 0))
	t.emit(ir.ConstWord(int32(tableIdx)))
	return nil
}

func (t *Translator) VisitTableCopy(dstTable, srcTable uint32) error {
	if t.isUnreachable() {
		return nil
	}
	n := t.pop()
	src := t.pop()
	dst := t.pop()
	t.emit(ir.NewInstr(ir.OpTableCopy, t.materialize(dst), t.materialize(src), t.materialize(n), 0))
	t.emit(ir.TwoIndexWord(dstTable, srcTable))
	return nil
}

func (t *Translator) VisitTableInit(tableIdx, elemIdx uint32) error {
	if t.isUnreachable() {
		return nil
	}
	n := t.pop()
	src := t.pop()
	dst := t.pop()
	t.emit(ir.NewInstr(ir.OpTableInit, t.materialize(dst), t.materialize(src), t.materialize(n), 0))
	t.emit(ir.TwoIndexWord(tableIdx, elemIdx))
	return nil
}

func (t *Translator) VisitElemDrop(elemIdx uint32) error {
	if t.isUnreachable() {
		return nil
	}
	t.emit(ir.NewInstr(ir.OpElemDrop, 0, 0, 0, 0))
	t.emit(ir.ConstWord(int32(elemIdx)))
	return nil
}

// --- Calls ---

func (t *Translator) popArgs(n int) ir.RegSpan {
	if n == 0 {
		return ir.RegSpan{}
	}
	args := make([]provider, n)
	for i := n - 1; i >= 0; i-- {
		args[i] = t.pop()
	}
	// Arguments must occupy a contiguous register span for the callee's
	// window; each is copied into a fresh dynamic register in order.
	first, err := t.regs.pushDynamic()
	if err != nil {
		first = 0
	}
	t.emit(ir.NewInstr(ir.OpCopy, first, t.materialize(args[0]), 0, 0))
	for i := 1; i < n; i++ {
		r, _ := t.regs.pushDynamic()
		t.emit(ir.NewInstr(ir.OpCopy, r, t.materialize(args[i]), 0, 0))
	}
	return ir.RegSpan{First: first, Len: uint16(n)}
}

func (t *Translator) pushResults(n int, ty []value.Type) ir.RegSpan {
	if n == 0 {
		return ir.RegSpan{}
	}
	first, _ := t.regs.pushDynamic()
	for i := 1; i < n; i++ {
		t.regs.pushDynamic()
	}
	for i := 0; i < n; i++ {
		t.push(tempProvider(first+ir.Reg(i), ty[i]))
	}
	return ir.RegSpan{First: first, Len: uint16(n)}
}

func (t *Translator) VisitCall(funcIdx uint32, imported bool, params, results []value.Type) error {
	if t.isUnreachable() {
		return nil
	}
	args := t.popArgs(len(params))
	resSpan := t.pushResults(len(results), results)
	op, op0 := ir.OpCallInternal, ir.OpCallInternal0
	if imported {
		op, op0 = ir.OpCallImported, ir.OpCallImported0
	}
	if len(params) == 0 {
		t.emit(ir.Instruction{Op: op0, A: resSpan.First, B: ir.Reg(resSpan.Len)})
		t.emit(ir.ConstWord(int32(funcIdx)))
	} else {
		t.emit(ir.Instruction{Op: op, A: resSpan.First, B: ir.Reg(resSpan.Len)})
		t.emit(ir.ConstWord(int32(funcIdx)))
		t.emit(ir.CallParamsWord(args))
	}
	t.chargeFuel(1)
	return nil
}

func (t *Translator) VisitCallIndirect(typeIdx, tableIdx uint32, params, results []value.Type) error {
	if t.isUnreachable() {
		return nil
	}
	idx := t.pop()
	idxReg := t.materialize(idx)
	args := t.popArgs(len(params))
	resSpan := t.pushResults(len(results), results)
	if len(params) == 0 {
		t.emit(ir.Instruction{Op: ir.OpCallIndirect0, A: resSpan.First, B: ir.Reg(resSpan.Len), C: idxReg})
		t.emit(ir.TwoIndexWord(typeIdx, tableIdx))
	} else {
		t.emit(ir.Instruction{Op: ir.OpCallIndirect, A: resSpan.First, B: ir.Reg(resSpan.Len), C: idxReg})
		t.emit(ir.TwoIndexWord(typeIdx, tableIdx))
		t.emit(ir.CallParamsWord(args))
	}
	t.chargeFuel(1)
	return nil
}

func (t *Translator) VisitReturnCall(funcIdx uint32, imported bool, params []value.Type) error {
	if t.isUnreachable() {
		return nil
	}
	args := t.popArgs(len(params))
	op := ir.OpReturnCallInternal
	if imported {
		op = ir.OpReturnCallImported
	}
	t.emit(ir.NewInstr(op, 0, 0, 0, 0))
	t.emit(ir.ConstWord(int32(funcIdx)))
	t.emit(ir.CallParamsWord(args))
	t.currentFrame().reachable = false
	return nil
}

func (t *Translator) VisitReturnCallIndirect(typeIdx, tableIdx uint32, params []value.Type) error {
	if t.isUnreachable() {
		return nil
	}
	idx := t.pop()
	idxReg := t.materialize(idx)
	args := t.popArgs(len(params))
	t.emit(ir.NewInstr(ir.OpReturnCallIndirect, idxReg, 0, 0, 0))
	t.emit(ir.TwoIndexWord(typeIdx, tableIdx))
	t.emit(ir.CallParamsWord(args))
	t.currentFrame().reachable = false
	return nil
}

// Finalize runs the register-allocator's defragmentation pass and returns
// the completed CompiledFunc. The Translator must not be used afterward.
func (t *Translator) Finalize() *ir.CompiledFunc {
	lenRegisters, defragOffset := t.regs.finalize()
	if defragOffset != 0 {
		for i := range t.instrs {
			in := &t.instrs[i]
			in.A = t.regs.remapPreserved(in.A)
			in.B = t.regs.remapPreserved(in.B)
			in.C = t.regs.remapPreserved(in.C)
		}
	}
	return &ir.CompiledFunc{
		Instrs:       t.instrs,
		Consts:       t.consts.Values(),
		LenRegisters: lenRegisters,
		LenParams:    uint16(len(t.params)),
		LenResults:   uint16(len(t.results)),
	}
}
