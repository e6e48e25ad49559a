package decorator

import (
	"container/list"
	"sync"

	"github.com/goliatone/go-mapper-cache/cache"
)

var _ cache.Cache = (*FIFO)(nil)

// FIFO bounds the delegate's key set in insertion order: when a Put of a new
// key exceeds the bound, the oldest inserted key is evicted regardless of
// how recently it was read.
type FIFO struct {
	delegate cache.Cache
	capacity int

	mu    sync.Mutex
	order *list.List // front = oldest insertion
	keys  map[string]struct{}
}

// NewFIFO wraps delegate with an insertion-order bound. Capacity values
// below 1 fall back to DefaultCapacity.
func NewFIFO(delegate cache.Cache, capacity int) *FIFO {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &FIFO{
		delegate: delegate,
		capacity: capacity,
		order:    list.New(),
		keys:     make(map[string]struct{}, capacity),
	}
}

// ID returns the delegate's namespace id.
func (c *FIFO) ID() string {
	return c.delegate.ID()
}

// Put stores value, evicting the oldest inserted key when the bound is
// exceeded. Overwriting an existing key keeps its original position.
func (c *FIFO) Put(key string, value any) {
	c.delegate.Put(key, value)

	c.mu.Lock()
	if _, ok := c.keys[key]; !ok {
		c.order.PushBack(key)
		c.keys[key] = struct{}{}
	}
	victim := ""
	if c.order.Len() > c.capacity {
		front := c.order.Front()
		victim = front.Value.(string)
		c.order.Remove(front)
		delete(c.keys, victim)
	}
	c.mu.Unlock()

	if victim != "" {
		c.delegate.Remove(victim)
	}
}

// Get returns the delegate's value; reads do not affect eviction order.
func (c *FIFO) Get(key string) (any, bool) {
	return c.delegate.Get(key)
}

// Remove deletes key from the delegate. The insertion index entry is left
// to age out with the queue; a dangling entry only causes a no-op eviction.
func (c *FIFO) Remove(key string) (any, bool) {
	return c.delegate.Remove(key)
}

// Clear resets the insertion index and clears the delegate.
func (c *FIFO) Clear() {
	c.mu.Lock()
	c.order.Init()
	c.keys = make(map[string]struct{}, c.capacity)
	c.mu.Unlock()
	c.delegate.Clear()
}

// Size returns the delegate's entry count.
func (c *FIFO) Size() int {
	return c.delegate.Size()
}

// ReadWriteLock returns nil; the decorator guards its own index.
func (c *FIFO) ReadWriteLock() *sync.RWMutex {
	return nil
}
