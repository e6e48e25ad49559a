// Package testsupport provides test doubles shared by the cache packages'
// tests, chiefly a recording in-memory Cache for asserting how decorators
// drive their delegates.
package testsupport

import (
	"fmt"
	"sort"
	"sync"
	"testing"
)

// RecorderCache is an in-memory cache.Cache that records every call made to
// it. Decorator tests use it as the delegate and assert on the recorded
// traffic.
type RecorderCache struct {
	id string

	mu    sync.Mutex
	data  map[string]any
	ops   []string
	calls map[string]int
}

// NewRecorderCache creates an empty recorder for the given namespace id.
func NewRecorderCache(id string) *RecorderCache {
	return &RecorderCache{
		id:    id,
		data:  make(map[string]any),
		calls: make(map[string]int),
	}
}

func (r *RecorderCache) record(op, key string) {
	r.calls[op]++
	if key != "" {
		op = op + ":" + key
	}
	r.ops = append(r.ops, op)
}

// ID implements cache.Cache.
func (r *RecorderCache) ID() string {
	return r.id
}

// Put implements cache.Cache.
func (r *RecorderCache) Put(key string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("Put", key)
	r.data[key] = value
}

// Get implements cache.Cache.
func (r *RecorderCache) Get(key string) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("Get", key)
	v, ok := r.data[key]
	return v, ok
}

// Remove implements cache.Cache.
func (r *RecorderCache) Remove(key string) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("Remove", key)
	v, ok := r.data[key]
	delete(r.data, key)
	return v, ok
}

// Clear implements cache.Cache.
func (r *RecorderCache) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("Clear", "")
	r.data = make(map[string]any)
}

// Size implements cache.Cache.
func (r *RecorderCache) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("Size", "")
	return len(r.data)
}

// ReadWriteLock implements cache.Cache.
func (r *RecorderCache) ReadWriteLock() *sync.RWMutex {
	return nil
}

// CallCount returns how many times op ("Put", "Get", ...) was invoked.
func (r *RecorderCache) CallCount(op string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[op]
}

// Ops returns the recorded operations in order, as "Op" or "Op:key".
func (r *RecorderCache) Ops() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.ops...)
}

// Keys returns the currently stored keys, sorted.
func (r *RecorderCache) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]string, 0, len(r.data))
	for k := range r.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Raw returns the stored value without recording a call, so tests can
// inspect wrapped handles a decorator placed in the delegate.
func (r *RecorderCache) Raw(key string) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.data[key]
	return v, ok
}

// AssertCallCount fails the test unless op was invoked want times.
func (r *RecorderCache) AssertCallCount(t *testing.T, op string, want int) {
	t.Helper()
	if got := r.CallCount(op); got != want {
		t.Errorf("expected %d %s calls, got %d", want, op, got)
	}
}

// AssertStored fails the test unless key holds want.
func (r *RecorderCache) AssertStored(t *testing.T, key string, want any) {
	t.Helper()
	v, ok := r.Raw(key)
	if !ok {
		t.Fatalf("expected key %q to be stored", key)
	}
	if fmt.Sprintf("%v", v) != fmt.Sprintf("%v", want) {
		t.Errorf("key %q: expected %v, got %v", key, want, v)
	}
}
