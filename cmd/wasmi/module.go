package main

import (
	"github.com/wasmi-go/wasmi/internal/translator"
	"github.com/wasmi-go/wasmi/internal/value"
	"github.com/wasmi-go/wasmi/internal/wasm"
)

// demoModule hand-builds a one-function module exporting "add", an (i32,
// i32) -> i32 function computing its two parameters' sum. There is no
// binary decoder in this module (see wasm.Module's doc comment), so this is
// the same way a test constructs one: directly, as a decoder would after
// parsing and validating a real .wasm file.
func demoModule() *wasm.Module {
	sig := wasm.FuncType{
		Params:  []value.Type{value.I32, value.I32},
		Results: []value.Type{value.I32},
	}
	body := []translator.Op{
		{Kind: translator.OpLocalGet, Idx: 0},
		{Kind: translator.OpLocalGet, Idx: 1},
		{Kind: translator.OpNumericBinary, Num: translator.NumI32Add},
		{Kind: translator.OpReturn},
		{Kind: translator.OpEnd},
	}
	return &wasm.Module{
		Name:  "demo",
		Types: []wasm.FuncType{sig},
		Funcs: []wasm.FuncDef{{TypeIndex: 0, Body: body, Name: "add"}},
		Exports: []wasm.ExportDef{
			{Name: "add", Kind: wasm.ExportFunc, Index: 0},
		},
	}
}
