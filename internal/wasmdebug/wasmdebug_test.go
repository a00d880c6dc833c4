package wasmdebug

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wasmi-go/wasmi/internal/value"
	"github.com/wasmi-go/wasmi/internal/wasmruntime"
)

func TestErrorStringWithTrap(t *testing.T) {
	e := &Error{Trap: wasmruntime.TrapIntegerDivisionByZero}
	require.Equal(t, wasmruntime.TrapIntegerDivisionByZero.String(), e.Error())
}

func TestErrorStringWithFrames(t *testing.T) {
	e := &Error{
		Trap: wasmruntime.TrapIntegerOverflow,
		Frames: []Frame{
			{DebugName: "inner", Params: []value.Type{value.I32}, Results: []value.Type{value.I32}},
			{DebugName: "outer", Results: []value.Type{value.I32}},
		},
	}
	got := e.Error()
	require.Contains(t, got, "wasm backtrace:")
	require.Contains(t, got, "inner(i32) (i32)")
	require.Contains(t, got, "outer() (i32)")
}

func TestErrorUnwrap(t *testing.T) {
	trapErr := &Error{Trap: wasmruntime.TrapUnreachable}
	require.Equal(t, wasmruntime.TrapUnreachable, trapErr.Unwrap())

	other := errors.New("boom")
	goErr := &Error{Err: other}
	require.Equal(t, other, goErr.Unwrap())
	require.Equal(t, "boom", goErr.Error())
}

func TestErrorBuilderFromRecoveredTrap(t *testing.T) {
	b := NewErrorBuilder()
	b.AddFrame("f", nil, []value.Type{value.I32})

	var recovered any
	func() {
		defer func() { recovered = recover() }()
		wasmruntime.Trigger(wasmruntime.TrapMemoryOutOfBounds)
	}()

	err := b.FromRecovered(recovered)
	var wasmErr *Error
	require.True(t, errors.As(err, &wasmErr))
	require.Equal(t, wasmruntime.TrapMemoryOutOfBounds, wasmErr.Trap)
	require.Len(t, wasmErr.Frames, 1)
}

func TestErrorBuilderFromRecoveredHostFunctionError(t *testing.T) {
	b := NewErrorBuilder()
	hostErr := &wasmruntime.HostFunctionError{Err: errors.New("host failed")}

	err := b.FromRecovered(hostErr)
	var wasmErr *Error
	require.True(t, errors.As(err, &wasmErr))
	require.Equal(t, hostErr, wasmErr.Err)
}

func TestErrorBuilderFromRecoveredUnexpectedPanic(t *testing.T) {
	b := NewErrorBuilder()
	err := b.FromRecovered("unexpected string panic")
	require.ErrorContains(t, err, "unexpected panic")
}
