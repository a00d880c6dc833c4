package wasm

import (
	"github.com/wasmi-go/wasmi/internal/value"
	"github.com/wasmi-go/wasmi/internal/wasmruntime"
)

// PageSize is the size in bytes of one unit of linear memory growth.
const PageSize = 65536

// MaxPages is the largest page count a 32-bit linear memory may reach.
const MaxPages = 65536

// Memory is one linear memory instance.
type Memory struct {
	Data []byte
	Min  uint32 // pages
	Max  uint32 // pages; 0 means MaxPages (unbounded by declaration)
}

// NewMemory allocates a memory instance at its minimum size.
func NewMemory(min, max uint32) *Memory {
	m := &Memory{Min: min, Max: max}
	m.Data = make([]byte, uint64(min)*PageSize)
	return m
}

// Size returns the current size in pages.
func (m *Memory) Size() uint32 { return uint32(len(m.Data) / PageSize) }

func (m *Memory) maxPages() uint32 {
	if m.Max == 0 {
		return MaxPages
	}
	return m.Max
}

// Grow attempts to grow the memory by delta pages, returning the previous
// size in pages. Returns ok=false (without mutating m) if the growth would
// exceed the declared maximum or MaxPages.
func (m *Memory) Grow(delta uint32) (previous uint32, ok bool) {
	previous = m.Size()
	newSize := uint64(previous) + uint64(delta)
	if newSize > uint64(m.maxPages()) {
		return previous, false
	}
	grown := make([]byte, newSize*PageSize)
	copy(grown, m.Data)
	m.Data = grown
	return previous, true
}

// bounds checks that [addr, addr+n) lies within m.Data, trapping
// MemoryOutOfBounds otherwise.
func (m *Memory) bounds(addr, n uint32) {
	end := uint64(addr) + uint64(n)
	if end > uint64(len(m.Data)) {
		wasmruntime.Trigger(wasmruntime.TrapMemoryOutOfBounds)
	}
}

func (m *Memory) slice(addr, n uint32) []byte {
	m.bounds(addr, n)
	return m.Data[addr : addr+n]
}

func (m *Memory) LoadI32(addr uint32) value.Untyped  { return value.LoadI32(m.slice(addr, 4)) }
func (m *Memory) LoadI64(addr uint32) value.Untyped  { return value.LoadI64(m.slice(addr, 8)) }
func (m *Memory) LoadF32(addr uint32) value.Untyped  { return value.LoadF32(m.slice(addr, 4)) }
func (m *Memory) LoadF64(addr uint32) value.Untyped  { return value.LoadF64(m.slice(addr, 8)) }
func (m *Memory) LoadI32_8S(addr uint32) value.Untyped  { return value.LoadI32_8S(m.slice(addr, 1)) }
func (m *Memory) LoadI32_8U(addr uint32) value.Untyped  { return value.LoadI32_8U(m.slice(addr, 1)) }
func (m *Memory) LoadI32_16S(addr uint32) value.Untyped { return value.LoadI32_16S(m.slice(addr, 2)) }
func (m *Memory) LoadI32_16U(addr uint32) value.Untyped { return value.LoadI32_16U(m.slice(addr, 2)) }
func (m *Memory) LoadI64_8S(addr uint32) value.Untyped  { return value.LoadI64_8S(m.slice(addr, 1)) }
func (m *Memory) LoadI64_8U(addr uint32) value.Untyped  { return value.LoadI64_8U(m.slice(addr, 1)) }
func (m *Memory) LoadI64_16S(addr uint32) value.Untyped { return value.LoadI64_16S(m.slice(addr, 2)) }
func (m *Memory) LoadI64_16U(addr uint32) value.Untyped { return value.LoadI64_16U(m.slice(addr, 2)) }
func (m *Memory) LoadI64_32S(addr uint32) value.Untyped { return value.LoadI64_32S(m.slice(addr, 4)) }
func (m *Memory) LoadI64_32U(addr uint32) value.Untyped { return value.LoadI64_32U(m.slice(addr, 4)) }

func (m *Memory) StoreI32(addr uint32, v value.Untyped) { value.StoreI32(m.slice(addr, 4), v) }
func (m *Memory) StoreI64(addr uint32, v value.Untyped) { value.StoreI64(m.slice(addr, 8), v) }
func (m *Memory) StoreF32(addr uint32, v value.Untyped) { value.StoreF32(m.slice(addr, 4), v) }
func (m *Memory) StoreF64(addr uint32, v value.Untyped) { value.StoreF64(m.slice(addr, 8), v) }
func (m *Memory) StoreI32_8(addr uint32, v value.Untyped)  { value.StoreI32_8(m.slice(addr, 1), v) }
func (m *Memory) StoreI32_16(addr uint32, v value.Untyped) { value.StoreI32_16(m.slice(addr, 2), v) }
func (m *Memory) StoreI64_8(addr uint32, v value.Untyped)  { value.StoreI64_8(m.slice(addr, 1), v) }
func (m *Memory) StoreI64_16(addr uint32, v value.Untyped) { value.StoreI64_16(m.slice(addr, 2), v) }
func (m *Memory) StoreI64_32(addr uint32, v value.Untyped) { value.StoreI64_32(m.slice(addr, 4), v) }

// Fill sets n bytes starting at dst to the low byte of val.
func (m *Memory) Fill(dst, val, n uint32) {
	m.bounds(dst, n)
	b := byte(val)
	region := m.Data[dst : dst+n]
	for i := range region {
		region[i] = b
	}
}

// Copy moves n bytes from src to dst, correctly handling overlap.
func (m *Memory) Copy(dst, src, n uint32) {
	m.bounds(dst, n)
	m.bounds(src, n)
	copy(m.Data[dst:dst+n], m.Data[src:src+n])
}

// Init copies n bytes from data[srcOffset:] into the memory at dst.
func (m *Memory) Init(dst uint32, data []byte, srcOffset, n uint32) {
	m.bounds(dst, n)
	if uint64(srcOffset)+uint64(n) > uint64(len(data)) {
		wasmruntime.Trigger(wasmruntime.TrapMemoryOutOfBounds)
	}
	copy(m.Data[dst:dst+n], data[srcOffset:srcOffset+n])
}
