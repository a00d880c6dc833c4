package wasm

import (
	"fmt"

	"github.com/wasmi-go/wasmi/internal/ir"
	"github.com/wasmi-go/wasmi/internal/translator"
	"github.com/wasmi-go/wasmi/internal/value"
)

// HostImports supplies function imports an instantiation cannot resolve
// against another registered Instance's exports, keyed by "module.name".
type HostImports map[string]*Func

// Instantiate builds one *Instance from m: it resolves every import (first
// against an Instance already registered in s under the import's module
// name, falling back to host for function imports), allocates the
// module-defined memories/tables/globals, translates the module-defined
// functions (or reuses a cached translation keyed by name, see
// Store.CacheCompiled), applies active data/element segments, and registers
// the finished instance in s under name.
//
// The start function, if declared, is not run here: running it requires
// internal/interpreter.Call, and wasm must not import interpreter (the
// dependency already runs the other way). The caller invokes it after
// Instantiate returns, using m.Start and the returned Instance.
func (s *Store) Instantiate(m *Module, name string, host HostImports, fuelEnabled bool) (*Instance, error) {
	inst := &Instance{
		Name:    name,
		Types:   m.Types,
		Exports: make(map[string]Export, len(m.Exports)),
	}

	if err := resolveImports(s, m, host, inst); err != nil {
		return nil, err
	}

	for _, mt := range m.Memories {
		inst.Memories = append(inst.Memories, NewMemory(mt.Min, mt.Max))
	}
	for _, tt := range m.Tables {
		tbl := NewTable(tt.Type, tt.Min, tt.Max)
		tbl.Owner = inst
		inst.Tables = append(inst.Tables, tbl)
	}
	for _, g := range m.Globals {
		inst.Globals = append(inst.Globals, &Global{Value: g.Init, Type: g.Type.Type, Mutable: g.Type.Mutable})
	}

	fns, cacheHit := s.LookupCompiled(m.Name)
	if !cacheHit {
		translated, err := translateFuncs(m, fuelEnabled)
		if err != nil {
			return nil, fmt.Errorf("wasm: translate %s: %w", name, err)
		}
		fns = translated
		s.CacheCompiled(m.Name, fns)
	}
	for i, def := range m.Funcs {
		inst.Funcs = append(inst.Funcs, &Func{
			Kind:      FuncKindInternal,
			Type:      m.Types[def.TypeIndex],
			Compiled:  fns[i],
			DebugName: def.Name,
			Owner:     inst,
		})
	}

	for _, seg := range m.DataSegments {
		inst.DataSegments = append(inst.DataSegments, &DataSegment{Data: seg.Data})
	}
	for _, seg := range m.ElementSegments {
		inst.ElementSegments = append(inst.ElementSegments, &ElementSegment{
			Elems: append([]value.Untyped(nil), seg.Elems...),
		})
	}
	for i, seg := range m.DataSegments {
		if seg.Active {
			mem := inst.Memory(seg.MemoryIndex)
			copy(mem.Data[seg.Offset:], inst.DataSegments[i].Data)
		}
	}
	for i, seg := range m.ElementSegments {
		if seg.Active {
			tbl := inst.Table(seg.TableIndex)
			copy(tbl.Elems[seg.Offset:], inst.ElementSegments[i].Elems)
		}
	}

	for _, exp := range m.Exports {
		inst.Exports[exp.Name] = Export{Kind: exp.Kind, Index: exp.Index}
	}

	s.Register(inst)
	return inst, nil
}

// translateFuncs lowers every module-defined function body to IR, in
// declaration order, so the result lines up 1:1 with m.Funcs for both the
// fresh-compile and cache-hit paths.
func translateFuncs(m *Module, fuelEnabled bool) ([]*ir.CompiledFunc, error) {
	fns := make([]*ir.CompiledFunc, len(m.Funcs))
	for i, def := range m.Funcs {
		t := m.Types[def.TypeIndex]
		fn, err := translator.Translate(t.Params, def.Locals, t.Results, fuelEnabled, def.Body, m)
		if err != nil {
			return nil, fmt.Errorf("func %d (%s): %w", i, def.Name, err)
		}
		fns[i] = fn
	}
	return fns, nil
}

func resolveImports(s *Store, m *Module, host HostImports, inst *Instance) error {
	for _, imp := range m.Imports {
		switch imp.Kind {
		case ImportFunc:
			fn, err := resolveFuncImport(s, imp, host)
			if err != nil {
				return err
			}
			inst.Funcs = append(inst.Funcs, fn)
		case ImportMemory:
			src, ok := s.Instance(imp.Module)
			if !ok {
				return fmt.Errorf("wasm: unresolved memory import %s.%s", imp.Module, imp.Name)
			}
			exp, ok := src.Exports[imp.Name]
			if !ok || exp.Kind != ExportMemory {
				return fmt.Errorf("wasm: unresolved memory import %s.%s", imp.Module, imp.Name)
			}
			inst.Memories = append(inst.Memories, src.Memory(exp.Index))
		case ImportTable:
			src, ok := s.Instance(imp.Module)
			if !ok {
				return fmt.Errorf("wasm: unresolved table import %s.%s", imp.Module, imp.Name)
			}
			exp, ok := src.Exports[imp.Name]
			if !ok || exp.Kind != ExportTable {
				return fmt.Errorf("wasm: unresolved table import %s.%s", imp.Module, imp.Name)
			}
			inst.Tables = append(inst.Tables, src.Table(exp.Index))
		case ImportGlobal:
			src, ok := s.Instance(imp.Module)
			if !ok {
				return fmt.Errorf("wasm: unresolved global import %s.%s", imp.Module, imp.Name)
			}
			exp, ok := src.Exports[imp.Name]
			if !ok || exp.Kind != ExportGlobal {
				return fmt.Errorf("wasm: unresolved global import %s.%s", imp.Module, imp.Name)
			}
			inst.Globals = append(inst.Globals, src.Global(exp.Index))
		}
	}
	return nil
}

func resolveFuncImport(s *Store, imp Import, host HostImports) (*Func, error) {
	if src, ok := s.Instance(imp.Module); ok {
		if exp, ok := src.Exports[imp.Name]; ok && exp.Kind == ExportFunc {
			return src.Func(exp.Index), nil
		}
	}
	if fn, ok := host[imp.Module+"."+imp.Name]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("wasm: unresolved function import %s.%s", imp.Module, imp.Name)
}
