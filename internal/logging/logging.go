// Package logging provides the structured, zap-backed logging used across
// engine lifecycle events: module translation, instantiation, and traps.
// Kept as its own package (rather than folded into wasmi or
// internal/interpreter) to avoid a dependency cycle between those two and
// whatever wants to log about both.
package logging

import (
	"go.uber.org/zap"

	"github.com/wasmi-go/wasmi/internal/wasmruntime"
)

// Logger wraps a *zap.Logger with the handful of lifecycle events the engine
// reports; a nil *Logger is valid and logs nothing, so callers never need a
// guard before calling through it.
type Logger struct {
	z *zap.Logger
}

// NewLogger wraps z. Passing a nil z yields a no-op Logger.
func NewLogger(z *zap.Logger) *Logger {
	return &Logger{z: z}
}

// Noop returns a Logger that discards everything, the default when an
// embedder never configures one.
func Noop() *Logger { return &Logger{z: zap.NewNop()} }

func (l *Logger) logger() *zap.Logger {
	if l == nil || l.z == nil {
		return zap.NewNop()
	}
	return l.z
}

// Translated reports that a module's functions finished lowering to
// register IR, how many functions, and whether the result came from the
// compiled-module cache.
func (l *Logger) Translated(moduleName string, funcCount int, cacheHit bool) {
	l.logger().Info("translated module",
		zap.String("module", moduleName),
		zap.Int("functions", funcCount),
		zap.Bool("cache_hit", cacheHit),
	)
}

// Instantiated reports a successful instantiation.
func (l *Logger) Instantiated(moduleName, instanceName string) {
	l.logger().Info("instantiated module",
		zap.String("module", moduleName),
		zap.String("instance", instanceName),
	)
}

// Trapped reports a trap that unwound a call, naming the instance and
// function where it originated.
func (l *Logger) Trapped(instanceName, funcName string, code wasmruntime.TrapCode) {
	l.logger().Warn("call trapped",
		zap.String("instance", instanceName),
		zap.String("func", funcName),
		zap.String("trap", code.String()),
	)
}

// Suspended reports a host call suspending an invocation for later resume.
func (l *Logger) Suspended(instanceName, funcName string) {
	l.logger().Debug("host call suspended",
		zap.String("instance", instanceName),
		zap.String("func", funcName),
	)
}

// Closed reports an instance or cache being torn down.
func (l *Logger) Closed(what, name string) {
	l.logger().Debug("closed", zap.String("kind", what), zap.String("name", name))
}
