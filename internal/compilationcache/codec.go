package compilationcache

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/wasmi-go/wasmi/internal/ir"
)

// EncodeFuncs serializes a module's translated functions for storage in a
// Cache. gob is used rather than a third-party format: the register-IR
// types are plain structs/slices internal to this module with no need for
// cross-language interop or schema evolution, which is what a format like
// protobuf or msgpack would buy over the standard library's own codec.
func EncodeFuncs(fns []*ir.CompiledFunc) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(fns); err != nil {
		return nil, fmt.Errorf("compilationcache: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeFuncs reverses EncodeFuncs.
func DecodeFuncs(data []byte) ([]*ir.CompiledFunc, error) {
	var fns []*ir.CompiledFunc
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&fns); err != nil {
		return nil, fmt.Errorf("compilationcache: decode: %w", err)
	}
	return fns, nil
}
