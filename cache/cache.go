package cache

import "sync"

// Cache is the namespaced key/value contract every store and decorator in
// this module implements. Implementations are expected to be freely
// composable: a decorator consumes a Cache and re-exposes the identical
// contract, so chains can be assembled in any order.
type Cache interface {
	// ID returns the namespace identifier this cache was created with.
	ID() string

	// Put inserts or overwrites the value stored under key.
	Put(key string, value any)

	// Get returns the value stored under key. The second return reports
	// whether the key was present; Get never fails for unknown keys.
	Get(key string) (any, bool)

	// Remove deletes key and returns the prior value, if any.
	Remove(key string) (any, bool)

	// Clear removes every entry. Clearing an empty cache is a no-op.
	Clear()

	// Size returns the number of live entries. Implementations may run
	// lazy cleanup before counting.
	Size() int

	// ReadWriteLock exposes a lock for callers that need to serialize
	// access externally. Implementations that manage their own
	// synchronization return nil to signal that callers need not lock.
	ReadWriteLock() *sync.RWMutex
}

// Flusher is implemented by caches that stage mutations, such as the
// transactional decorator. Commit publishes staged entries to the delegate
// and Rollback discards them.
type Flusher interface {
	Commit()
	Rollback()
}
