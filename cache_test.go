package wasmi

import (
	"fmt"
	"os"
	"path"
	goruntime "runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCache_WithCompilationCacheDirName(t *testing.T) {
	expectedSubdir := fmt.Sprintf("wasmi-%s-%s-%s", engineVersion, goruntime.GOARCH, goruntime.GOOS)

	t.Run("creates nested directories", func(t *testing.T) {
		tmpDir := path.Join(t.TempDir(), "1", "2", "3")
		dir := path.Join(tmpDir, "foo")

		c := NewCache()
		require.NoError(t, c.WithCompilationCacheDirName(dir))

		requireContainsDir(t, tmpDir, "foo")
		requireContainsDir(t, dir, expectedSubdir)
	})

	t.Run("base dir is not a directory", func(t *testing.T) {
		f, err := os.CreateTemp(t.TempDir(), "nondir")
		require.NoError(t, err)
		defer f.Close()

		c := NewCache()
		err = c.WithCompilationCacheDirName(f.Name())
		require.Contains(t, err.Error(), "is not a directory")
	})

	t.Run("version subdir is not a directory", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(path.Join(dir, expectedSubdir), []byte{}, 0o600))

		c := NewCache()
		err := c.WithCompilationCacheDirName(dir)
		require.Contains(t, err.Error(), "is not a directory")
	})
}

func requireContainsDir(t *testing.T, parent, dir string) {
	entries, err := os.ReadDir(parent)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, dir, entries[0].Name())
	require.True(t, entries[0].IsDir())
}
