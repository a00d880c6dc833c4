// Package wasmi wraps the translator/interpreter execution core
// (internal/translator, internal/interpreter, internal/wasm) in the
// functional-options, Engine/Store/Instance embedding surface familiar from
// the library this module's package layout is descended from. It adds no
// behavior of its own beyond wiring: a binary decoder/validator is out of
// scope (see internal/wasm.Module's doc comment), so callers construct a
// Module directly (or generate one) and pass it to Store.Instantiate.
package wasmi

import (
	"bytes"
	"context"
	"crypto/sha256"
	"io"
	"math"

	"github.com/wasmi-go/wasmi/internal/compilationcache"
	"github.com/wasmi-go/wasmi/internal/interpreter"
	"github.com/wasmi-go/wasmi/internal/logging"
	"github.com/wasmi-go/wasmi/internal/value"
	"github.com/wasmi-go/wasmi/internal/wasm"
)

// Value is one untyped 64-bit register cell: the common currency for
// function arguments and results at this package's boundary, same as
// internal/value.Untyped. Use the ValueI32/ValueI64/ValueF32/ValueF64
// constructors and the AsI32/AsI64/AsF32/AsF64 accessors to cross to and
// from Go's native numeric types.
type Value = value.Untyped

// ValueType is a Wasm value type (I32, I64, F32, F64, FuncRef, ExternRef).
type ValueType = value.Type

// FuncType is a function signature.
type FuncType = wasm.FuncType

// HostFunction is the Go-side implementation of an imported function.
// Returning an error wrapping wasmruntime.ErrHostSuspend pauses the
// invocation; see Function.CallResumable.
type HostFunction = wasm.HostFunction

// Module is a decoded, validated Wasm module, built directly by an embedder
// or an external decoder rather than this package (see wasm.Module).
type Module = wasm.Module

// HostImports supplies function imports a Store.Instantiate cannot resolve
// against another registered Instance's exports, keyed by "module.name".
type HostImports = wasm.HostImports

func ValueI32(v int32) Value  { return value.From32(uint32(v)) }
func ValueI64(v int64) Value  { return value.From64(uint64(v)) }
func ValueF32(v float32) Value { return value.From32(math.Float32bits(v)) }
func ValueF64(v float64) Value { return value.From64(math.Float64bits(v)) }

func AsI32(v Value) int32   { return int32(v.I32()) }
func AsI64(v Value) int64   { return int64(v.I64()) }
func AsF32(v Value) float32 { return math.Float32frombits(v.F32Bits()) }
func AsF64(v Value) float64 { return math.Float64frombits(v.F64Bits()) }

// Engine owns the configuration and (optional) compiled-function Cache
// shared by any number of Stores; Store is the cheap, per-linking-unit
// module registry. Splitting the two lets an embedder share translated code
// across many short-lived Stores instead of retranslating per Store.
type Engine struct {
	config *RuntimeConfig
	cache  *Cache
	logger *logging.Logger
}

// NewEngine returns an Engine configured by config, or engine defaults if
// config is nil.
func NewEngine(config *RuntimeConfig) *Engine {
	if config == nil {
		config = NewRuntimeConfig()
	}
	logger := config.logger
	if logger == nil {
		logger = logging.Noop()
	}
	return &Engine{config: config, logger: logger}
}

// WithCache attaches a compiled-function Cache to e, for chaining at
// construction time: wasmi.NewEngine(cfg).WithCache(wasmi.NewCache()).
func (e *Engine) WithCache(c *Cache) *Engine {
	e.cache = c
	return e
}

// NewStore returns a fresh module registry backed by e's configuration.
func (e *Engine) NewStore() *Store {
	return &Store{engine: e, raw: wasm.NewStore()}
}

// Store registers instantiated modules (Instance) and the compiled
// functions behind them, scoped to one linking unit — e.g. one embedder
// session that instantiates a handful of mutually-importing modules.
type Store struct {
	engine *Engine
	raw    *wasm.Store
}

// Instantiate translates m's locally-defined functions (or reuses a cached
// translation keyed by m.Name; see internal/wasm.Store.CacheCompiled),
// resolves m's imports against instances already registered in s and
// against host, builds the Instance, registers it under name, and finally
// runs m's start function if declared.
func (s *Store) Instantiate(ctx context.Context, m *Module, name string, host HostImports) (*Instance, error) {
	if ctx == nil {
		ctx = s.engine.config.ctx
	}

	_, hadMemoryHit := s.raw.LookupCompiled(m.Name)
	if !hadMemoryHit {
		s.seedFromDiskCache(m)
	}

	raw, err := s.raw.Instantiate(m, name, host, s.engine.config.fuelEnabled)
	if err != nil {
		return nil, err
	}
	s.engine.logger.Translated(m.Name, len(m.Funcs), hadMemoryHit)
	s.engine.logger.Instantiated(m.Name, name)

	if !hadMemoryHit {
		s.persistToDiskCache(m)
	}

	inst := &Instance{store: s, raw: raw}
	if m.Start != nil {
		if _, err := inst.funcAt(*m.Start).Call(ctx); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// diskCacheKey derives a compilationcache.Key from a module name. A content
// hash of the original Wasm binary would be the stronger key (it survives a
// module being renamed, and catches a name reused for different bytes), but
// this package's Module is built directly by the embedder rather than
// decoded from bytes it retains; the module name is the only stable
// identifier available here.
func diskCacheKey(moduleName string) compilationcache.Key {
	return sha256.Sum256([]byte(moduleName))
}

// seedFromDiskCache pre-populates s.raw's in-memory compiled-func cache from
// e.cache's on-disk store, if attached and if it holds an entry for m.Name,
// so the upcoming s.raw.Instantiate call sees a cache hit instead of
// re-translating.
func (s *Store) seedFromDiskCache(m *Module) {
	c := s.engine.cache
	if c == nil || c.fileCache == nil {
		return
	}
	content, ok, err := c.fileCache.Get(diskCacheKey(m.Name))
	if err != nil || !ok {
		return
	}
	defer content.Close()

	data, err := io.ReadAll(content)
	if err != nil {
		return
	}
	fns, err := compilationcache.DecodeFuncs(data)
	if err != nil {
		// A corrupt or foreign-format entry: evict it so the next run
		// doesn't keep paying the failed decode.
		_ = c.fileCache.Delete(diskCacheKey(m.Name))
		return
	}
	s.raw.CacheCompiled(m.Name, fns)
}

// persistToDiskCache writes m's just-translated functions to e.cache's
// on-disk store, if attached, so a later process run can skip translation.
func (s *Store) persistToDiskCache(m *Module) {
	c := s.engine.cache
	if c == nil || c.fileCache == nil {
		return
	}
	fns, ok := s.raw.LookupCompiled(m.Name)
	if !ok {
		return
	}
	data, err := compilationcache.EncodeFuncs(fns)
	if err != nil {
		return
	}
	_ = c.fileCache.Add(diskCacheKey(m.Name), bytes.NewReader(data))
}

// Instance is one instantiated module, ready to have its exports called.
type Instance struct {
	store *Store
	raw   *wasm.Instance
}

// ExportedFunction looks up an exported function by name, returning nil if
// name does not export a function.
func (i *Instance) ExportedFunction(name string) *Function {
	exp, ok := i.raw.Exports[name]
	if !ok || exp.Kind != wasm.ExportFunc {
		return nil
	}
	return i.funcAt(exp.Index)
}

func (i *Instance) funcAt(idx uint32) *Function {
	return &Function{store: i.store, inst: i.raw, fn: i.raw.Func(idx)}
}

// Function is one callable export or (if obtained via a host module) one
// Go-side implementation.
type Function struct {
	store *Store
	inst  *wasm.Instance
	fn    *wasm.Func
}

func (f *Function) callOpts() []interpreter.CallOption {
	cfg := f.store.engine.config
	var opts []interpreter.CallOption
	if cfg.fuelEnabled {
		opts = append(opts, interpreter.WithFuel(cfg.fuel))
	}
	if cfg.canonicalizeNaN {
		opts = append(opts, interpreter.WithCanonicalizeNaN(true))
	}
	return opts
}

// Call invokes the function with args, running to completion. A nil ctx
// defaults to the owning Engine's configured context.
func (f *Function) Call(ctx context.Context, args ...Value) ([]Value, error) {
	if ctx == nil {
		ctx = f.store.engine.config.ctx
	}
	if f.fn.Kind != wasm.FuncKindInternal {
		return f.fn.Host(ctx, args)
	}
	return interpreter.Call(ctx, f.inst, f.fn, args, f.callOpts()...)
}

// CallResumable is like Call but returns a non-nil *ResumableInvocation
// instead of an error when a host function suspends mid-call.
func (f *Function) CallResumable(ctx context.Context, args ...Value) ([]Value, *ResumableInvocation, error) {
	if ctx == nil {
		ctx = f.store.engine.config.ctx
	}
	results, resumable, err := interpreter.CallResumable(ctx, f.inst, f.fn, args, f.callOpts()...)
	if resumable == nil {
		return results, nil, err
	}
	return results, &ResumableInvocation{store: f.store, raw: resumable}, err
}

// ResumableInvocation wraps a call stack parked by a suspended host call;
// see Function.CallResumable.
type ResumableInvocation struct {
	store *Store
	raw   *interpreter.ResumableInvocation
}

// ResultTypes reports the suspended host call's declared result types.
func (r *ResumableInvocation) ResultTypes() []ValueType { return r.raw.ResultTypes() }

// Resume splices overrideResults in for the suspended call's results and
// continues execution; it may itself return another *ResumableInvocation.
func (r *ResumableInvocation) Resume(ctx context.Context, overrideResults []Value) ([]Value, *ResumableInvocation, error) {
	if ctx == nil {
		ctx = r.store.engine.config.ctx
	}
	results, resumable, err := r.raw.Resume(ctx, overrideResults)
	if resumable == nil {
		return results, nil, err
	}
	return results, &ResumableInvocation{store: r.store, raw: resumable}, err
}
