package wasm

import "github.com/wasmi-go/wasmi/internal/value"

// Global is one mutable or immutable global variable instance.
type Global struct {
	Value   value.Untyped
	Type    value.Type
	Mutable bool
}
