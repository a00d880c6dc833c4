package wasm

import (
	"context"

	"github.com/wasmi-go/wasmi/internal/ir"
	"github.com/wasmi-go/wasmi/internal/value"
)

// EncodeFuncRef packs a function index into a table element value; 0 stays
// the null reference, so every real index is offset by one.
func EncodeFuncRef(funcIdx uint32) value.Untyped { return value.From32(funcIdx + 1) }

// DecodeFuncRef reverses EncodeFuncRef, reporting ok=false for a null ref.
func DecodeFuncRef(v value.Untyped) (funcIdx uint32, ok bool) {
	if value.IsNullRef(v) {
		return 0, false
	}
	return v.I32() - 1, true
}

// FuncType is a function signature.
type FuncType struct {
	Params  []value.Type
	Results []value.Type
}

// Equal reports whether t and o describe the same signature, used to check
// call_indirect's type against the table entry's actual signature.
func (t FuncType) Equal(o FuncType) bool {
	if len(t.Params) != len(o.Params) || len(t.Results) != len(o.Results) {
		return false
	}
	for i, p := range t.Params {
		if p != o.Params[i] {
			return false
		}
	}
	for i, r := range t.Results {
		if r != o.Results[i] {
			return false
		}
	}
	return true
}

// FuncKind distinguishes a function backed by translated IR from one backed
// by a Go trampoline (an import supplied by the embedder).
type FuncKind int

const (
	FuncKindInternal FuncKind = iota
	FuncKindHost
)

// HostFunction is the trampoline signature for an imported function.
// Returning ErrHostSuspend (or an error wrapping it) pauses the invocation;
// see ResumableInvocation.
type HostFunction func(ctx context.Context, args []value.Untyped) ([]value.Untyped, error)

// Func is one function instance, either internal (compiled to IR) or a host
// import.
type Func struct {
	Kind      FuncKind
	Type      FuncType
	Compiled  *ir.CompiledFunc
	Host      HostFunction
	DebugName string
	// Owner is the instance this function is defined in (used to recover
	// the correct memory/table/global set when a function is called
	// indirectly through an imported table entry).
	Owner *Instance
}
