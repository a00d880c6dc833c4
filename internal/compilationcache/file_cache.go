package compilationcache

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"sync"
)

// shardCount is the number of stripes the per-key lock is spread over. A
// fixed small power of two keeps the lock array itself cheap while making
// collisions between unrelated keys rare in practice.
const shardCount = 32

// NewFileCache returns a Cache persisting entries as files under dir, one
// per key, hex-encoded. dir is created lazily on the first Add.
func NewFileCache(dir string) Cache {
	return newFileCache(dir)
}

func newFileCache(dir string) *fileCache {
	return &fileCache{dirPath: dir}
}

// fileCache persists entries as files under dirPath, one per key. Locking is
// striped by key rather than global: Get/Add/Delete on unrelated keys don't
// block each other, only callers that happen to hash to the same shard do.
type fileCache struct {
	dirPath string

	dirMu sync.Mutex
	dirOk bool

	shards [shardCount]sync.RWMutex
}

type fileReadCloser struct {
	*os.File
	unlock func()
}

func (f *fileReadCloser) Close() error {
	err := f.File.Close()
	f.unlock()
	return err
}

func (fc *fileCache) path(key Key) string {
	return path.Join(fc.dirPath, hex.EncodeToString(key[:]))
}

func (fc *fileCache) shard(key Key) *sync.RWMutex {
	return &fc.shards[key[0]%shardCount]
}

func (fc *fileCache) Get(key Key) (content io.ReadCloser, ok bool, err error) {
	lock := fc.shard(key)
	lock.RLock()
	f, err := os.Open(fc.path(key))
	if errors.Is(err, os.ErrNotExist) {
		lock.RUnlock()
		return nil, false, nil
	} else if err != nil {
		lock.RUnlock()
		return nil, false, err
	}
	return &fileReadCloser{File: f, unlock: lock.RUnlock}, true, nil
}

func (fc *fileCache) Add(key Key, content io.Reader) (err error) {
	if err := fc.requireDir(); err != nil {
		return err
	}

	lock := fc.shard(key)
	lock.Lock()
	defer lock.Unlock()

	file, err := os.Create(fc.path(key))
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = io.Copy(file, content)
	return err
}

func (fc *fileCache) Delete(key Key) (err error) {
	lock := fc.shard(key)
	lock.Lock()
	defer lock.Unlock()

	err = os.Remove(fc.path(key))
	if errors.Is(err, os.ErrNotExist) {
		err = nil
	}
	return err
}

// requireDir creates the configured directory on first use, caching success
// so later Add calls skip the stat. Failures aren't cached: a caller that
// fixes the problem (e.g. removes a stray file occupying dirPath) can retry
// without constructing a new fileCache.
func (fc *fileCache) requireDir() error {
	fc.dirMu.Lock()
	defer fc.dirMu.Unlock()
	if fc.dirOk {
		return nil
	}
	s, err := os.Stat(fc.dirPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := os.Mkdir(fc.dirPath, 0o700); err != nil {
			return fmt.Errorf("fileCache: couldn't create dir %s: %w", fc.dirPath, err)
		}
	case err != nil:
		return fmt.Errorf("fileCache: couldn't open dir %s: %w", fc.dirPath, err)
	case !s.IsDir():
		return fmt.Errorf("fileCache: expected dir at %s", fc.dirPath)
	}
	fc.dirOk = true
	return nil
}
