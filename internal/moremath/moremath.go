// Package moremath provides floating-point helpers whose semantics differ
// from the Go standard library's math package in the ways WebAssembly's
// numeric operators require.
package moremath

import "math"

// WasmCompatMin mirrors math.Min except that if either operand is NaN the
// result is always NaN (math.Min returns NaN only for some NaN/Inf
// combinations).
func WasmCompatMin(x, y float64) float64 {
	switch {
	case math.IsNaN(x) || math.IsNaN(y):
		return math.NaN()
	case math.IsInf(x, -1) || math.IsInf(y, -1):
		return math.Inf(-1)
	case x == 0 && x == y:
		if math.Signbit(x) {
			return x
		}
		return y
	}
	if x < y {
		return x
	}
	return y
}

// WasmCompatMax is the max counterpart of WasmCompatMin.
func WasmCompatMax(x, y float64) float64 {
	switch {
	case math.IsNaN(x) || math.IsNaN(y):
		return math.NaN()
	case math.IsInf(x, 1) || math.IsInf(y, 1):
		return math.Inf(1)
	case x == 0 && x == y:
		if math.Signbit(x) {
			return y
		}
		return x
	}
	if x > y {
		return x
	}
	return y
}
