package cellformat

import (
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/TsubasaBE/go-cellformat/numfmt"
)

// cacheEntry is the outcome of parsing one format string.  Both fields are
// immutable once stored.
type cacheEntry struct {
	format *numfmt.Format
	err    error
}

// formatCache maps format strings to parse results.  store keeps the first
// entry written for a key and returns whichever entry is resident, so
// concurrent parses of the same string converge on one value.
type formatCache interface {
	load(key string) (*cacheEntry, bool)
	store(key string, ent *cacheEntry) *cacheEntry
	len() int
}

func newFormatCache(size int) formatCache {
	if size > 0 {
		c, err := lru.New[string, *cacheEntry](size)
		if err == nil {
			return &lruCache{c: c}
		}
	}
	return &mapCache{}
}

// mapCache is the unbounded cache.
type mapCache struct {
	m sync.Map
	n atomic.Int64
}

func (c *mapCache) load(key string) (*cacheEntry, bool) {
	v, ok := c.m.Load(key)
	if !ok {
		return nil, false
	}
	return v.(*cacheEntry), true
}

func (c *mapCache) store(key string, ent *cacheEntry) *cacheEntry {
	v, loaded := c.m.LoadOrStore(key, ent)
	if !loaded {
		c.n.Add(1)
	}
	return v.(*cacheEntry)
}

func (c *mapCache) len() int { return int(c.n.Load()) }

// lruCache is the bounded cache.
type lruCache struct {
	c *lru.Cache[string, *cacheEntry]
}

func (c *lruCache) load(key string) (*cacheEntry, bool) { return c.c.Get(key) }

func (c *lruCache) store(key string, ent *cacheEntry) *cacheEntry {
	if prev, ok, _ := c.c.PeekOrAdd(key, ent); ok {
		return prev
	}
	return ent
}

func (c *lruCache) len() int { return c.c.Len() }
