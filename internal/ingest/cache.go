package ingest

import (
	"io/fs"
	"sync"
	"time"
)

// TextCache remembers stitched text per path. An entry is reused only while
// the file's size and modification time are unchanged. The cache is owned by
// the caller and safe for concurrent use.
type TextCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	size    int64
	modTime time.Time
	text    string
}

// NewTextCache creates an empty cache.
func NewTextCache() *TextCache {
	return &TextCache{entries: make(map[string]cacheEntry)}
}

// Get returns the cached text for path if info still matches.
func (c *TextCache) Get(path string, info fs.FileInfo) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[path]
	if !ok || e.size != info.Size() || !e.modTime.Equal(info.ModTime()) {
		return "", false
	}
	return e.text, true
}

// Put stores text for path.
func (c *TextCache) Put(path string, info fs.FileInfo, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = cacheEntry{size: info.Size(), modTime: info.ModTime(), text: text}
}

// Len returns the number of cached entries.
func (c *TextCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
