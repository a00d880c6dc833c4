package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wasmi-go/wasmi/internal/wasmruntime"
)

func newObserved() (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return NewLogger(zap.New(core)), logs
}

func TestLogger_Translated(t *testing.T) {
	l, logs := newObserved()
	l.Translated("mymod", 3, true)

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "translated module", entries[0].Message)
	assert.Equal(t, "mymod", entries[0].ContextMap()["module"])
	assert.EqualValues(t, 3, entries[0].ContextMap()["functions"])
	assert.Equal(t, true, entries[0].ContextMap()["cache_hit"])
}

func TestLogger_Trapped(t *testing.T) {
	l, logs := newObserved()
	l.Trapped("inst", "run", wasmruntime.TrapIntegerDivisionByZero)

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "call trapped", entries[0].Message)
	assert.Equal(t, "integer divide by zero", entries[0].ContextMap()["trap"])
}

func TestLogger_NilIsNoop(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() {
		l.Translated("mymod", 1, false)
		l.Instantiated("mymod", "inst")
		l.Trapped("inst", "run", wasmruntime.TrapUnreachable)
		l.Suspended("inst", "run")
		l.Closed("cache", "mymod")
	})
}

func TestNoop(t *testing.T) {
	l := Noop()
	assert.NotPanics(t, func() { l.Instantiated("a", "b") })
}
