package decorator

import (
	"sync"

	"github.com/goliatone/go-mapper-cache/cache"
)

var _ cache.Cache = (*Synchronized)(nil)

// Synchronized serializes every operation on the chain below it through a
// single read/write mutex. It is the outermost decorator for chains whose
// inner members do not synchronize themselves, and it exposes its mutex via
// ReadWriteLock for callers that need to span several operations.
type Synchronized struct {
	delegate cache.Cache
	mu       sync.RWMutex
}

// NewSynchronized wraps delegate with blanket locking.
func NewSynchronized(delegate cache.Cache) *Synchronized {
	return &Synchronized{delegate: delegate}
}

// ID returns the delegate's namespace id.
func (s *Synchronized) ID() string {
	return s.delegate.ID()
}

// Put stores value under the write lock.
func (s *Synchronized) Put(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delegate.Put(key, value)
}

// Get reads under the read lock.
func (s *Synchronized) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.delegate.Get(key)
}

// Remove deletes under the write lock.
func (s *Synchronized) Remove(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.delegate.Remove(key)
}

// Clear clears under the write lock.
func (s *Synchronized) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delegate.Clear()
}

// Size counts under the read lock.
func (s *Synchronized) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.delegate.Size()
}

// ReadWriteLock exposes the decorator's mutex.
func (s *Synchronized) ReadWriteLock() *sync.RWMutex {
	return &s.mu
}
