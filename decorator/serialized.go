package decorator

import (
	"sync"

	"github.com/goliatone/go-mapper-cache/cache"
	"github.com/vmihailenco/msgpack/v5"
)

var _ cache.Cache = (*Serialized[struct{}])(nil)

// Serialized stores msgpack-encoded copies of its values and decodes a
// fresh copy on every read, so callers can mutate what they get back
// without corrupting the cached state. The type parameter fixes the value
// type the namespace holds; values of any other type pass through
// unencoded.
type Serialized[T any] struct {
	delegate cache.Cache
}

// NewSerialized wraps delegate with copy-on-read semantics for values of
// type T.
func NewSerialized[T any](delegate cache.Cache) *Serialized[T] {
	return &Serialized[T]{delegate: delegate}
}

// ID returns the delegate's namespace id.
func (s *Serialized[T]) ID() string {
	return s.delegate.ID()
}

// Put encodes value and stores the bytes. Values that are not a T, or fail
// to encode, are stored as-is.
func (s *Serialized[T]) Put(key string, value any) {
	v, ok := value.(T)
	if !ok {
		s.delegate.Put(key, value)
		return
	}
	data, err := msgpack.Marshal(v)
	if err != nil {
		s.delegate.Put(key, value)
		return
	}
	s.delegate.Put(key, data)
}

// Get decodes the stored bytes into a fresh T. Entries stored unencoded are
// returned as-is.
func (s *Serialized[T]) Get(key string) (any, bool) {
	raw, ok := s.delegate.Get(key)
	if !ok {
		return nil, false
	}
	data, ok := raw.([]byte)
	if !ok {
		return raw, true
	}
	var out T
	if err := msgpack.Unmarshal(data, &out); err != nil {
		return raw, true
	}
	return out, true
}

// Remove deletes key, reporting the prior value as the delegate stored it.
func (s *Serialized[T]) Remove(key string) (any, bool) {
	return s.delegate.Remove(key)
}

// Clear clears the delegate.
func (s *Serialized[T]) Clear() {
	s.delegate.Clear()
}

// Size returns the delegate's entry count.
func (s *Serialized[T]) Size() int {
	return s.delegate.Size()
}

// ReadWriteLock returns the delegate's lock unchanged.
func (s *Serialized[T]) ReadWriteLock() *sync.RWMutex {
	return s.delegate.ReadWriteLock()
}
