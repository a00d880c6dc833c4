package value

import "encoding/binary"

// LoadI32/LoadI64/LoadF32/LoadF64 decode a little-endian value from b,
// which must already have been bounds-checked by the caller (internal/wasm
// performs that check before calling these).

func LoadI32(b []byte) Untyped { return From32(binary.LittleEndian.Uint32(b)) }
func LoadI64(b []byte) Untyped { return From64(binary.LittleEndian.Uint64(b)) }
func LoadF32(b []byte) Untyped { return From32(binary.LittleEndian.Uint32(b)) }
func LoadF64(b []byte) Untyped { return From64(binary.LittleEndian.Uint64(b)) }

func LoadI32_8S(b []byte) Untyped  { return From32(uint32(int32(int8(b[0])))) }
func LoadI32_8U(b []byte) Untyped  { return From32(uint32(b[0])) }
func LoadI32_16S(b []byte) Untyped { return From32(uint32(int32(int16(binary.LittleEndian.Uint16(b))))) }
func LoadI32_16U(b []byte) Untyped { return From32(uint32(binary.LittleEndian.Uint16(b))) }

func LoadI64_8S(b []byte) Untyped  { return From64(uint64(int64(int8(b[0])))) }
func LoadI64_8U(b []byte) Untyped  { return From64(uint64(b[0])) }
func LoadI64_16S(b []byte) Untyped { return From64(uint64(int64(int16(binary.LittleEndian.Uint16(b))))) }
func LoadI64_16U(b []byte) Untyped { return From64(uint64(binary.LittleEndian.Uint16(b))) }
func LoadI64_32S(b []byte) Untyped { return From64(uint64(int64(int32(binary.LittleEndian.Uint32(b))))) }
func LoadI64_32U(b []byte) Untyped { return From64(uint64(binary.LittleEndian.Uint32(b))) }

// StoreI32/StoreI64/StoreF32/StoreF64 encode v's low 32 (or all 64) bits
// little-endian into b.

func StoreI32(b []byte, v Untyped) { binary.LittleEndian.PutUint32(b, v.I32()) }
func StoreI64(b []byte, v Untyped) { binary.LittleEndian.PutUint64(b, v.I64()) }
func StoreF32(b []byte, v Untyped) { binary.LittleEndian.PutUint32(b, v.F32Bits()) }
func StoreF64(b []byte, v Untyped) { binary.LittleEndian.PutUint64(b, v.F64Bits()) }

func StoreI32_8(b []byte, v Untyped)  { b[0] = byte(v.I32()) }
func StoreI32_16(b []byte, v Untyped) { binary.LittleEndian.PutUint16(b, uint16(v.I32())) }
func StoreI64_8(b []byte, v Untyped)  { b[0] = byte(v.I64()) }
func StoreI64_16(b []byte, v Untyped) { binary.LittleEndian.PutUint16(b, uint16(v.I64())) }
func StoreI64_32(b []byte, v Untyped) { binary.LittleEndian.PutUint32(b, uint32(v.I64())) }
