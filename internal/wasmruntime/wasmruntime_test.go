package wasmruntime

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTriggerAndRecover(t *testing.T) {
	var recovered any
	func() {
		defer func() { recovered = recover() }()
		Trigger(TrapIntegerOverflow)
	}()

	code, ok := Recover(recovered)
	require.True(t, ok)
	require.Equal(t, TrapIntegerOverflow, code)
}

func TestRecoverRejectsNonTrapPanic(t *testing.T) {
	_, ok := Recover("not a trap")
	require.False(t, ok)
}

func TestTrapCodeStringKnownAndUnknown(t *testing.T) {
	require.Equal(t, "integer divide by zero", TrapIntegerDivisionByZero.String())
	require.Equal(t, fmt.Sprintf("unknown trap code %d", 200), TrapCode(200).String())
}

func TestTranslatorErrorMessages(t *testing.T) {
	err := NewTranslatorError(ErrConstantPoolOverflow, "")
	require.Equal(t, "function's constant pool overflowed the 16-bit index space", err.Error())

	withCtx := NewTranslatorError(ErrUnsupportedOperator, "opcode 0xFF")
	require.Equal(t, "unsupported operator: opcode 0xFF", withCtx.Error())
}

func TestHostFunctionErrorWrapsAndUnwraps(t *testing.T) {
	inner := errors.New("boom")
	e := &HostFunctionError{Err: inner}
	require.Equal(t, "boom", e.Error())
	require.Equal(t, inner, e.Unwrap())
}

func TestIsHostSuspend(t *testing.T) {
	require.True(t, IsHostSuspend(ErrHostSuspend))
	require.True(t, IsHostSuspend(fmt.Errorf("wrapped: %w", ErrHostSuspend)))
	require.False(t, IsHostSuspend(errors.New("unrelated")))
	require.False(t, IsHostSuspend(nil))
}

func TestTriggerHostErrorPropagatesAsPanic(t *testing.T) {
	var recovered any
	func() {
		defer func() { recovered = recover() }()
		TriggerHostError(errors.New("host failed"))
	}()

	hostErr, ok := recovered.(*HostFunctionError)
	require.True(t, ok)
	require.Equal(t, "host failed", hostErr.Error())
}
