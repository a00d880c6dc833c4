package wasmi

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	goruntime "runtime"

	"github.com/wasmi-go/wasmi/internal/compilationcache"
)

// engineVersion namespaces the on-disk cache directory so a binary built
// against a later, IR-incompatible version of this module never tries to
// decode an older version's cached functions; a decode failure within one
// version (a truncated or otherwise corrupt entry) is instead handled by
// evicting just that entry, see Store.seedFromDiskCache.
const engineVersion = "v1"

// Cache persists translated functions across process runs, keyed by module
// name. Share one Cache across Engines that will instantiate the same
// modules repeatedly (e.g. one per CLI invocation) to skip re-translating.
type Cache struct {
	fileCache compilationcache.Cache
}

// NewCache returns a Cache with no backing directory configured: compiled
// functions are cached in memory only (each Store's own compiled map), for
// the lifetime of that Store. Call WithCompilationCacheDirName to persist
// across process runs and share translations between Stores.
func NewCache() *Cache {
	return &Cache{}
}

// WithCompilationCacheDirName configures dir as the on-disk destination for
// this Cache's entries, creating it (and a version/arch/os-qualified
// subdirectory beneath it) if it doesn't exist yet.
//
// A Cache is only valid for use by one Engine at a time; concurrent Engines
// must not share a directory.
func (c *Cache) WithCompilationCacheDirName(dir string) error {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	if err := mkdir(dir); err != nil {
		return err
	}

	dirname := path.Join(dir, "wasmi-"+engineVersion+"-"+goruntime.GOARCH+"-"+goruntime.GOOS)
	if err := mkdir(dirname); err != nil {
		return err
	}

	c.fileCache = compilationcache.NewFileCache(dirname)
	return nil
}

func mkdir(dirname string) error {
	st, err := os.Stat(dirname)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := os.MkdirAll(dirname, 0o700); err != nil {
			return fmt.Errorf("create directory %s: %w", dirname, err)
		}
	case err != nil:
		return err
	case !st.IsDir():
		return fmt.Errorf("%s is not a directory", dirname)
	}
	return nil
}
