package wasmi

import (
	"context"

	"github.com/wasmi-go/wasmi/internal/logging"
)

// RuntimeConfig controls engine-wide behavior: the default context used to
// invoke a start function, a recorded linear-memory ceiling (see
// WithMemoryMaxPages), fuel metering, and NaN canonicalization. The zero-value-avoiding constructor is
// NewRuntimeConfig; every With* method returns a clone, so a RuntimeConfig
// can be built up and reused across NewEngine calls without aliasing.
type RuntimeConfig struct {
	ctx context.Context

	memoryMaxPages uint32

	fuelEnabled bool
	fuel        int64

	// canonicalizeNaN, when true, forces every float result with a NaN bit
	// pattern to math.{Float32,Float64}bits(math.NaN()) rather than letting
	// whichever NaN payload the operation happened to produce through. Off
	// by default, matching plain IEEE-754 hardware float ops rather than a
	// deterministic-replay requirement.
	canonicalizeNaN bool

	logger *logging.Logger
}

// defaultConfig helps avoid copy/pasting the wrong defaults into clone's
// zero-value fallbacks.
var defaultConfig = &RuntimeConfig{
	ctx:            context.Background(),
	memoryMaxPages: defaultMemoryMaxPages,
}

// defaultMemoryMaxPages is 4GiB of linear memory, the largest a 32-bit
// memory index can address.
const defaultMemoryMaxPages = 65536

// NewRuntimeConfig returns a RuntimeConfig with engine defaults: no fuel
// limit, non-canonicalizing NaNs, a recorded 4GiB memory ceiling, and a
// no-op logger.
func NewRuntimeConfig() *RuntimeConfig {
	return defaultConfig.clone()
}

// clone ensures all fields are copied even if zero-valued, so a With* call
// never mutates the receiver it was called on.
func (c *RuntimeConfig) clone() *RuntimeConfig {
	ret := *c
	return &ret
}

// WithContext sets the context used to run a module's start function, and
// as the default passed to Function.Call when the caller passes nil.
// Defaults to context.Background if ctx is nil.
func (c *RuntimeConfig) WithContext(ctx context.Context) *RuntimeConfig {
	if ctx == nil {
		ctx = context.Background()
	}
	ret := c.clone()
	ret.ctx = ctx
	return ret
}

// WithMemoryMaxPages records a linear memory ceiling (in 64KiB pages) on the
// config. Instantiation does not read it: a memory grows up to its own
// declared maximum, or wasm.MaxPages when it declares none.
func (c *RuntimeConfig) WithMemoryMaxPages(memoryMaxPages uint32) *RuntimeConfig {
	ret := c.clone()
	ret.memoryMaxPages = memoryMaxPages
	return ret
}

// WithFuel enables fuel metering with the given starting budget for every
// call made through this config's Engine; OpConsumeFuel instructions in the
// compiled IR decrement it, trapping once it runs out. A call with no fuel
// configured runs unmetered.
func (c *RuntimeConfig) WithFuel(fuel int64) *RuntimeConfig {
	ret := c.clone()
	ret.fuelEnabled = true
	ret.fuel = fuel
	return ret
}

// WithCanonicalizeNaN enables canonicalizing every NaN float result to a
// single bit pattern, trading a small amount of performance for
// deterministic replay across hosts whose float units may otherwise leave
// different NaN payloads.
func (c *RuntimeConfig) WithCanonicalizeNaN(enabled bool) *RuntimeConfig {
	ret := c.clone()
	ret.canonicalizeNaN = enabled
	return ret
}

// WithLogger attaches l for lifecycle logging (translation, instantiation,
// traps). A nil l is equivalent to not calling WithLogger: lifecycle events
// are discarded.
func (c *RuntimeConfig) WithLogger(l *logging.Logger) *RuntimeConfig {
	ret := c.clone()
	ret.logger = l
	return ret
}
