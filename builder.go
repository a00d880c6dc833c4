package wasmi

import "github.com/wasmi-go/wasmi/internal/wasm"

// HostModuleBuilder builds a synthetic Instance made of Go-implemented
// functions (and, optionally, a memory), for registration as an import
// source under a chosen module name. Mirrors a common host-module-builder
// pattern (NewHostModuleBuilder/WithFunc/Export), simplified: callers supply
// a HostFunction and its FuncType directly rather than a reflected Go
// function, since this package does not own a decoder-side type-marshaling
// layer to generalize from.
type HostModuleBuilder struct {
	store  *Store
	name   string
	order  []string
	funcs  map[string]*wasm.Func
	memory *wasm.Memory
}

// NewHostModuleBuilder starts building a host module that will be
// registered in s under moduleName once Instantiate is called.
func (s *Store) NewHostModuleBuilder(moduleName string) *HostModuleBuilder {
	return &HostModuleBuilder{store: s, name: moduleName, funcs: map[string]*wasm.Func{}}
}

// WithFunc adds fn, callable by imports as moduleName.exportName with the
// given signature.
func (b *HostModuleBuilder) WithFunc(exportName string, sig FuncType, fn HostFunction) *HostModuleBuilder {
	if _, exists := b.funcs[exportName]; !exists {
		b.order = append(b.order, exportName)
	}
	b.funcs[exportName] = &wasm.Func{
		Kind:      wasm.FuncKindHost,
		Type:      sig,
		Host:      fn,
		DebugName: b.name + "." + exportName,
	}
	return b
}

// ExportMemory gives the host module a linear memory, exported as "memory",
// so wasm modules can import it the way they import any other memory.
func (b *HostModuleBuilder) ExportMemory(minPages, maxPages uint32) *HostModuleBuilder {
	b.memory = wasm.NewMemory(minPages, maxPages)
	return b
}

// Instantiate registers the built functions (and memory, if any) as an
// Instance under the builder's module name, returning it so the caller can
// also invoke its exports directly.
func (b *HostModuleBuilder) Instantiate() *Instance {
	raw := &wasm.Instance{Name: b.name, Exports: map[string]wasm.Export{}}
	for _, name := range b.order {
		raw.Funcs = append(raw.Funcs, b.funcs[name])
		raw.Exports[name] = wasm.Export{Kind: wasm.ExportFunc, Index: uint32(len(raw.Funcs) - 1)}
	}
	if b.memory != nil {
		raw.Memories = append(raw.Memories, b.memory)
		raw.Exports["memory"] = wasm.Export{Kind: wasm.ExportMemory, Index: 0}
	}
	b.store.raw.Register(raw)
	return &Instance{store: b.store, raw: raw}
}
