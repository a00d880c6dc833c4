package compilationcache

import (
	"crypto/sha256"
	"io"
)

// Cache persists a module's translated register-IR functions (see
// EncodeFuncs/DecodeFuncs) across process runs, keyed by a content hash of
// the module identity. The in-memory compiled-func map on each Store already
// avoids re-translating within one process; Cache is for skipping
// translation across separate runs of the same embedder, e.g. repeated CLI
// invocations against the same module.
//
// Implementations must be goroutine-safe.
type Cache interface {
	// Get returns the content previously stored under key, or ok=false if
	// nothing is stored there (not an error). The returned content's
	// Close must release any lock Get took internally.
	Get(key Key) (content io.ReadCloser, ok bool, err error)
	// Add stores content under key, replacing any existing entry.
	Add(key Key, content io.Reader) (err error)
	// Delete purges the entry under key, e.g. after Get returned content
	// that failed to decode (a corrupt or foreign-format entry).
	Delete(key Key) (err error)
}

// Key is the unique identifier assigned to a cache entry.
type Key = [sha256.Size]byte
