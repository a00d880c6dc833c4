// Command wasmi is a smoke-test driver for the execution core: it builds a
// small built-in module by hand (this module has no binary decoder; see
// internal/wasm.Module's doc comment), instantiates it, calls its exported
// function, and prints the result. Useful for exercising the engine/cache
// wiring end to end without a real .wasm file on hand.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/wasmi-go/wasmi"
)

func main() {
	cacheDir := flag.String("cache-dir", "", "on-disk compiled-function cache directory (default: in-memory only)")
	fuel := flag.Int64("fuel", 0, "fuel budget for the call; 0 disables metering")
	flag.Parse()

	if err := run(*cacheDir, *fuel); err != nil {
		fmt.Fprintln(os.Stderr, "wasmi:", err)
		os.Exit(1)
	}
}

func run(cacheDir string, fuel int64) error {
	cfg := wasmi.NewRuntimeConfig()
	if fuel > 0 {
		cfg = cfg.WithFuel(fuel)
	}
	engine := wasmi.NewEngine(cfg)

	if cacheDir != "" {
		cache := wasmi.NewCache()
		if err := cache.WithCompilationCacheDirName(cacheDir); err != nil {
			return fmt.Errorf("configure cache: %w", err)
		}
		engine = engine.WithCache(cache)
	}

	store := engine.NewStore()
	inst, err := store.Instantiate(context.Background(), demoModule(), "demo", nil)
	if err != nil {
		return fmt.Errorf("instantiate: %w", err)
	}

	add := inst.ExportedFunction("add")
	results, err := add.Call(context.Background(), wasmi.ValueI32(2), wasmi.ValueI32(40))
	if err != nil {
		return fmt.Errorf("call add: %w", err)
	}

	fmt.Println(wasmi.AsI32(results[0]))
	return nil
}
