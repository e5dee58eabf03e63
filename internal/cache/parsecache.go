package cache

import (
	"crypto/sha256"
	"slices"
	"sync"

	"github.com/inoxlang/islands/internal/utils"
)

// A ParseCache caches parsing results by (path, source code) pair. Cached values may be nil.
type ParseCache[T any] struct {
	entries map[entryKey]*T
	lock    sync.Mutex
}

type entryKey struct {
	path string
	hash [32]byte
}

func NewParseCache[T any]() *ParseCache[T] {
	return &ParseCache[T]{
		entries: make(map[entryKey]*T, 0),
	}
}

func (c *ParseCache[T]) InvalidateAllEntries() {
	c.lock.Lock()
	defer c.lock.Unlock()
	clear(c.entries)
}

func (c *ParseCache[T]) Get(path, sourceCode string) (*T, bool) {
	key := entryKey{path: path, hash: sha256.Sum256(utils.StringAsBytes(sourceCode))}
	c.lock.Lock()
	defer c.lock.Unlock()
	result, ok := c.entries[key]
	return result, ok
}

func (c *ParseCache[T]) Put(path, sourceCode string, result *T) {
	key := entryKey{path: path, hash: sha256.Sum256(utils.StringAsBytes(sourceCode))}
	c.lock.Lock()
	defer c.lock.Unlock()

	//remove the entries of old versions of the file.
	for k := range c.entries {
		if k.path == path {
			delete(c.entries, k)
		}
	}
	c.entries[key] = result
}

// InvalidatePath removes the entries of the file at path.
func (c *ParseCache[T]) InvalidatePath(path string) {
	c.lock.Lock()
	defer c.lock.Unlock()

	for key := range c.entries {
		if key.path == path {
			delete(c.entries, key)
		}
	}
}

// KeepEntriesByPath removes the entries of all files not in paths.
func (c *ParseCache[T]) KeepEntriesByPath(paths ...string) {
	c.lock.Lock()
	defer c.lock.Unlock()

	for key := range c.entries {
		if !slices.Contains(paths, key.path) {
			delete(c.entries, key)
		}
	}
}

func (c *ParseCache[T]) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return len(c.entries)
}
