package interpreter

import (
	"context"

	"github.com/wasmi-go/wasmi/internal/ir"
	"github.com/wasmi-go/wasmi/internal/value"
	"github.com/wasmi-go/wasmi/internal/wasm"
	"github.com/wasmi-go/wasmi/internal/wasmdebug"
	"github.com/wasmi-go/wasmi/internal/wasmruntime"
)

// CallOption configures one Call/CallResumable invocation.
type CallOption func(*callEngine)

// WithFuel enables fuel metering for the invocation with the given starting
// budget; OpConsumeFuel instructions decrement it and trap with
// wasmruntime.TrapOutOfFuel once it goes negative.
func WithFuel(fuel int64) CallOption {
	return func(ce *callEngine) {
		ce.fuelEnabled = true
		ce.fuel = fuel
	}
}

// WithCanonicalizeNaN forces every float result with a NaN bit pattern to a
// single canonical quiet NaN for the invocation, trading a small per-op cost
// for replay determinism across hosts whose float units may otherwise leave
// different NaN payloads through.
func WithCanonicalizeNaN(enabled bool) CallOption {
	return func(ce *callEngine) {
		ce.canonicalizeNaN = enabled
	}
}

// Call invokes fn (a function belonging to inst) with args, running it to
// completion. A trap, a host-function error, or an unexpected panic
// unwinds via recover and comes back as a *wasmdebug.Error carrying a
// frame-by-frame backtrace.
//
// If fn (or anything it calls, transitively) suspends via
// wasmruntime.ErrHostSuspend, Call itself fails: callers that need to
// support suspension must use CallResumable.
func Call(ctx context.Context, inst *wasm.Instance, fn *wasm.Func, args []value.Untyped, opts ...CallOption) (results []value.Untyped, err error) {
	results, resumable, err := CallResumable(ctx, inst, fn, args, opts...)
	if err != nil {
		return nil, err
	}
	if resumable != nil {
		return nil, &wasmdebug.Error{Err: errUnexpectedSuspend}
	}
	return results, nil
}

var errUnexpectedSuspend = suspendError{}

type suspendError struct{}

func (suspendError) Error() string {
	return "call suspended on a resumable host function; use CallResumable"
}

// CallResumable is like Call but returns a non-nil *ResumableInvocation
// instead of erroring when a host function suspends. The caller resumes it
// with ResumableInvocation.Resume once it has override results in hand.
func CallResumable(ctx context.Context, inst *wasm.Instance, fn *wasm.Func, args []value.Untyped, opts ...CallOption) (results []value.Untyped, resumable *ResumableInvocation, err error) {
	ce := &callEngine{}
	for _, opt := range opts {
		opt(ce)
	}
	builder := wasmdebug.NewErrorBuilder()

	defer func() {
		if r := recover(); r != nil {
			for i := len(ce.frames) - 1; i >= 0; i-- {
				f := ce.frames[i]
				builder.AddFrame(f.fn.DebugName, f.fn.Type.Params, f.fn.Type.Results)
			}
			err = builder.FromRecovered(r)
			results, resumable = nil, nil
		}
	}()

	if fn.Kind != wasm.FuncKindInternal {
		hostResults, herr := fn.Host(ctx, args)
		if herr != nil {
			if wasmruntime.IsHostSuspend(herr) {
				return nil, &ResumableInvocation{ce: ce, finalDest: true, resultTypes: fn.Type.Results}, nil
			}
			return nil, nil, &wasmdebug.Error{Err: herr}
		}
		return hostResults, nil, nil
	}

	root := newCallFrame(fn, inst, ir.RegSpan{})
	copy(root.regs, args)
	ce.frames = append(ce.frames, root)

	results, suspend := ce.run(ctx)
	return results, suspend, nil
}

// ResumableInvocation captures a call stack parked mid-flight by a
// suspended host function. The embedder supplies override results for the
// call that suspended; Resume splices them in and continues execution.
type ResumableInvocation struct {
	ce          *callEngine
	destFrame   *callFrame
	dest        ir.RegSpan
	resultTypes []value.Type
	finalDest   bool
}

// ResultTypes reports the suspended host call's declared result types, so
// the embedder knows how many override values of what shape to supply.
func (r *ResumableInvocation) ResultTypes() []value.Type { return r.resultTypes }

// Resume splices overrideResults in for the suspended host call's results
// and continues running the call stack. It may itself return another
// *ResumableInvocation if a later host call also suspends.
func (r *ResumableInvocation) Resume(ctx context.Context, overrideResults []value.Untyped) (results []value.Untyped, resumable *ResumableInvocation, err error) {
	builder := wasmdebug.NewErrorBuilder()
	defer func() {
		if rec := recover(); rec != nil {
			for i := len(r.ce.frames) - 1; i >= 0; i-- {
				f := r.ce.frames[i]
				builder.AddFrame(f.fn.DebugName, f.fn.Type.Params, f.fn.Type.Results)
			}
			err = builder.FromRecovered(rec)
			results, resumable = nil, nil
		}
	}()

	// finalDest means the call stack was already empty when this invocation
	// suspended (a direct host call, or a tail call out of the outermost
	// frame): there is no frame left to splice results into, so the
	// override results are simply the call's final results.
	if r.finalDest {
		return overrideResults, nil, nil
	}
	for i, v := range overrideResults {
		r.destFrame.set(r.dest.At(uint16(i)), v)
	}
	results, resumable = r.ce.run(ctx)
	return results, resumable, nil
}
