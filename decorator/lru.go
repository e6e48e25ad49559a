package decorator

import (
	"container/list"
	"sync"

	"github.com/goliatone/go-mapper-cache/cache"
)

// DefaultCapacity bounds the LRU and FIFO decorators when none is given.
const DefaultCapacity = 1024

var _ cache.Cache = (*LRU)(nil)

// LRU bounds the delegate's key set, evicting the least recently used key
// when the bound is exceeded. A Get refreshes the key's recency; a Put of a
// new key may push the coldest key out of the delegate.
type LRU struct {
	delegate cache.Cache
	capacity int

	mu    sync.Mutex
	order *list.List // front = most recently used
	keys  map[string]*list.Element
}

// NewLRU wraps delegate with a recency bound. Capacity values below 1 fall
// back to DefaultCapacity.
func NewLRU(delegate cache.Cache, capacity int) *LRU {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &LRU{
		delegate: delegate,
		capacity: capacity,
		order:    list.New(),
		keys:     make(map[string]*list.Element, capacity),
	}
}

// ID returns the delegate's namespace id.
func (c *LRU) ID() string {
	return c.delegate.ID()
}

// Put stores value and evicts the least recently used key if the bound is
// now exceeded.
func (c *LRU) Put(key string, value any) {
	c.delegate.Put(key, value)

	c.mu.Lock()
	c.touch(key)
	victim := ""
	if c.order.Len() > c.capacity {
		back := c.order.Back()
		victim = back.Value.(string)
		c.order.Remove(back)
		delete(c.keys, victim)
	}
	c.mu.Unlock()

	if victim != "" {
		c.delegate.Remove(victim)
	}
}

// Get returns the delegate's value and marks the key recently used.
func (c *LRU) Get(key string) (any, bool) {
	v, ok := c.delegate.Get(key)
	if ok {
		c.mu.Lock()
		c.touch(key)
		c.mu.Unlock()
	}
	return v, ok
}

// Remove deletes key from the delegate and the recency index.
func (c *LRU) Remove(key string) (any, bool) {
	c.mu.Lock()
	if el, ok := c.keys[key]; ok {
		c.order.Remove(el)
		delete(c.keys, key)
	}
	c.mu.Unlock()
	return c.delegate.Remove(key)
}

// Clear resets the recency index and clears the delegate.
func (c *LRU) Clear() {
	c.mu.Lock()
	c.order.Init()
	c.keys = make(map[string]*list.Element, c.capacity)
	c.mu.Unlock()
	c.delegate.Clear()
}

// Size returns the delegate's entry count.
func (c *LRU) Size() int {
	return c.delegate.Size()
}

// ReadWriteLock returns nil; the decorator guards its own index.
func (c *LRU) ReadWriteLock() *sync.RWMutex {
	return nil
}

// touch moves key to the front of the recency list, inserting it if new.
// Callers hold c.mu.
func (c *LRU) touch(key string) {
	if el, ok := c.keys[key]; ok {
		c.order.MoveToFront(el)
		return
	}
	c.keys[key] = c.order.PushFront(key)
}
