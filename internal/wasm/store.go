package wasm

import (
	"sync"

	"github.com/wasmi-go/wasmi/internal/ir"
)

// Store is the runtime-wide registry of instantiated modules plus the
// engine's compiled-IR cache, so two instantiations of the same module
// (e.g. under wasmi.Cache) skip translation. All fields are guarded by mux,
// mirroring the instantiation-time-write/call-time-read access pattern of a
// typical embedding (many concurrent calls, occasional instantiate).
type Store struct {
	mux sync.RWMutex

	instances map[string]*Instance
	compiled  map[string][]*ir.CompiledFunc
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		instances: map[string]*Instance{},
		compiled:  map[string][]*ir.CompiledFunc{},
	}
}

// Register makes inst lookupable by name, e.g. for cross-instance imports.
func (s *Store) Register(inst *Instance) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.instances[inst.Name] = inst
}

// Unregister removes a previously registered instance.
func (s *Store) Unregister(name string) {
	s.mux.Lock()
	defer s.mux.Unlock()
	delete(s.instances, name)
}

// Instance looks up a registered instance by name.
func (s *Store) Instance(name string) (*Instance, bool) {
	s.mux.RLock()
	defer s.mux.RUnlock()
	inst, ok := s.instances[name]
	return inst, ok
}

// CacheCompiled stores the translated functions for a module keyed by key
// (Instantiate uses the module name), so a later instantiation of a module
// with that name can skip the translator.
func (s *Store) CacheCompiled(key string, fns []*ir.CompiledFunc) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.compiled[key] = fns
}

// LookupCompiled returns the cached translated functions for key, if any.
func (s *Store) LookupCompiled(key string) ([]*ir.CompiledFunc, bool) {
	s.mux.RLock()
	defer s.mux.RUnlock()
	fns, ok := s.compiled[key]
	return fns, ok
}

// DeleteCompiled evicts a module's cached translation, e.g. when its Cache
// is closed.
func (s *Store) DeleteCompiled(key string) {
	s.mux.Lock()
	defer s.mux.Unlock()
	delete(s.compiled, key)
}

// CompiledModuleCount reports how many distinct modules have cached
// translations, mirroring the embedding-facing Engine.CompiledModuleCount.
func (s *Store) CompiledModuleCount() int {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return len(s.compiled)
}
