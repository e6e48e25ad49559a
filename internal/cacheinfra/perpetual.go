// Package cacheinfra holds the concrete stores the decorator chains bottom
// out in: a perpetual lock-free map store and a TTL-bounded sturdyc store.
package cacheinfra

import (
	"sync"

	"github.com/goliatone/go-mapper-cache/cache"
	"github.com/puzpuzpuz/xsync/v3"
)

var _ cache.Cache = (*PerpetualCache)(nil)

// PerpetualCache is the plain hash-backed store: entries live until they are
// removed, cleared, or evicted by a decorator above it. It is backed by a
// lock-free concurrent map and needs no external locking.
type PerpetualCache struct {
	id   string
	data *xsync.MapOf[string, any]
}

// NewPerpetualCache creates an empty store for the given namespace id.
func NewPerpetualCache(id string) *PerpetualCache {
	return &PerpetualCache{
		id:   id,
		data: xsync.NewMapOf[string, any](),
	}
}

// ID returns the namespace identifier.
func (c *PerpetualCache) ID() string {
	return c.id
}

// Put inserts or overwrites the value stored under key.
func (c *PerpetualCache) Put(key string, value any) {
	c.data.Store(key, value)
}

// Get returns the value stored under key, if any.
func (c *PerpetualCache) Get(key string) (any, bool) {
	return c.data.Load(key)
}

// Remove deletes key, returning the prior value.
func (c *PerpetualCache) Remove(key string) (any, bool) {
	return c.data.LoadAndDelete(key)
}

// Clear removes every entry.
func (c *PerpetualCache) Clear() {
	c.data.Clear()
}

// Size returns the number of stored entries.
func (c *PerpetualCache) Size() int {
	return c.data.Size()
}

// ReadWriteLock returns nil; the underlying map is safe for concurrent use.
func (c *PerpetualCache) ReadWriteLock() *sync.RWMutex {
	return nil
}
