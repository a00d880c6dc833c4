// Package wasmdebug turns a recovered panic from the interpreter's call
// stack into a user-facing error carrying a frame-by-frame backtrace.
package wasmdebug

import (
	"fmt"
	"strings"

	"github.com/wasmi-go/wasmi/internal/value"
	"github.com/wasmi-go/wasmi/internal/wasmruntime"
)

// Frame is one entry of a captured backtrace, innermost call first.
type Frame struct {
	DebugName string
	Params    []value.Type
	Results   []value.Type
}

func (f Frame) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.String()
	}
	results := make([]string, len(f.Results))
	for i, r := range f.Results {
		results[i] = r.String()
	}
	return fmt.Sprintf("%s(%s) (%s)", f.DebugName, strings.Join(params, ", "), strings.Join(results, ", "))
}

// Error is returned from a Call/CallResumable that unwound via panic. Trap is
// non-zero when the panic was a trap; otherwise Err holds a host-function or
// unexpected Go error.
type Error struct {
	Trap   wasmruntime.TrapCode
	Err    error
	Frames []Frame
}

func (e *Error) Error() string {
	var msg string
	if e.Trap != 0 {
		msg = e.Trap.String()
	} else {
		msg = e.Err.Error()
	}
	if len(e.Frames) == 0 {
		return msg
	}
	lines := make([]string, len(e.Frames))
	for i, f := range e.Frames {
		lines[i] = "\t" + f.String()
	}
	return fmt.Sprintf("%s\nwasm backtrace:\n%s", msg, strings.Join(lines, "\n"))
}

func (e *Error) Unwrap() error {
	if e.Trap != 0 {
		return e.Trap
	}
	return e.Err
}

// ErrorBuilder accumulates call frames while unwinding a panic, innermost
// frame added first (the order the call stack is popped in).
type ErrorBuilder struct {
	frames []Frame
}

// NewErrorBuilder returns an empty builder.
func NewErrorBuilder() *ErrorBuilder { return &ErrorBuilder{} }

// AddFrame records one call frame, innermost-first.
func (b *ErrorBuilder) AddFrame(debugName string, params, results []value.Type) {
	b.frames = append(b.frames, Frame{DebugName: debugName, Params: params, Results: results})
}

// FromRecovered converts a value recovered from panic() into an *Error
// carrying the frames accumulated so far. Any panic value is accepted: a
// trap triggered via wasmruntime.Trigger, a host function error, or an
// unexpected Go panic (a programming bug surfaced the same way rather than
// crashing the embedder's process).
func (b *ErrorBuilder) FromRecovered(recovered any) error {
	e := &Error{Frames: b.frames}
	if code, ok := wasmruntime.Recover(recovered); ok {
		e.Trap = code
		return e
	}
	if hostErr, ok := recovered.(*wasmruntime.HostFunctionError); ok {
		e.Err = hostErr
		return e
	}
	if err, ok := recovered.(error); ok {
		e.Err = err
		return e
	}
	e.Err = fmt.Errorf("unexpected panic: %v", recovered)
	return e
}
