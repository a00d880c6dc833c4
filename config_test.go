package wasmi

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRuntimeConfigDefaults(t *testing.T) {
	cfg := NewRuntimeConfig()
	require.Equal(t, context.Background(), cfg.ctx)
	require.Equal(t, uint32(defaultMemoryMaxPages), cfg.memoryMaxPages)
	require.False(t, cfg.fuelEnabled)
	require.False(t, cfg.canonicalizeNaN)
}

func TestWithFuelDoesNotMutateReceiver(t *testing.T) {
	base := NewRuntimeConfig()
	withFuel := base.WithFuel(100)

	require.False(t, base.fuelEnabled)
	require.True(t, withFuel.fuelEnabled)
	require.Equal(t, int64(100), withFuel.fuel)
}

func TestWithCanonicalizeNaNDoesNotMutateReceiver(t *testing.T) {
	base := NewRuntimeConfig()
	canon := base.WithCanonicalizeNaN(true)

	require.False(t, base.canonicalizeNaN)
	require.True(t, canon.canonicalizeNaN)
}

func TestWithContextNilDefaultsToBackground(t *testing.T) {
	cfg := NewRuntimeConfig().WithContext(nil)
	require.Equal(t, context.Background(), cfg.ctx)
}

func TestWithMemoryMaxPages(t *testing.T) {
	cfg := NewRuntimeConfig().WithMemoryMaxPages(16)
	require.Equal(t, uint32(16), cfg.memoryMaxPages)
}

func TestConfigChainIsComposable(t *testing.T) {
	cfg := NewRuntimeConfig().WithFuel(50).WithCanonicalizeNaN(true).WithMemoryMaxPages(8)
	require.True(t, cfg.fuelEnabled)
	require.Equal(t, int64(50), cfg.fuel)
	require.True(t, cfg.canonicalizeNaN)
	require.Equal(t, uint32(8), cfg.memoryMaxPages)
}
