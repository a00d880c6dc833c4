package ir

import "github.com/wasmi-go/wasmi/internal/value"

// ConstPool interns Untyped constants during translation of one function,
// returning a negative Reg for each distinct value. Duplicate constants
// share one pool slot.
type ConstPool struct {
	values []value.Untyped
	index  map[value.Untyped]Reg
}

// NewConstPool returns an empty pool.
func NewConstPool() *ConstPool {
	return &ConstPool{index: make(map[value.Untyped]Reg)}
}

// Intern returns the Reg for v, allocating a new pool slot if v hasn't been
// seen yet in this function.
func (p *ConstPool) Intern(v value.Untyped) Reg {
	if r, ok := p.index[v]; ok {
		return r
	}
	r := ConstReg(len(p.values))
	p.values = append(p.values, v)
	p.index[v] = r
	return r
}

// Len returns the number of distinct constants interned so far.
func (p *ConstPool) Len() int { return len(p.values) }

// Values returns the finalized constant slice, ready to become
// CompiledFunc.Consts. The slice must not be mutated by the caller.
func (p *ConstPool) Values() []value.Untyped { return p.values }
