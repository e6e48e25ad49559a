package decorator

import (
	"sync"

	"github.com/goliatone/go-mapper-cache/cache"
)

var (
	_ cache.Cache   = (*Transactional)(nil)
	_ cache.Flusher = (*Transactional)(nil)
)

// Transactional stages mutations against the delegate until the enclosing
// transaction resolves. Puts and Removes accumulate in a staging area that
// Commit applies and Rollback discards; reads always see the delegate's
// committed state, never the staging area. Clear marks the namespace to be
// flushed on commit.
type Transactional struct {
	delegate cache.Cache

	mu            sync.Mutex
	staged        map[string]any
	removed       map[string]struct{}
	clearOnCommit bool
}

// NewTransactional wraps delegate with commit/rollback staging.
func NewTransactional(delegate cache.Cache) *Transactional {
	t := &Transactional{delegate: delegate}
	t.reset()
	return t
}

// ID returns the delegate's namespace id.
func (t *Transactional) ID() string {
	return t.delegate.ID()
}

// Put stages value for key; the delegate is untouched until Commit.
func (t *Transactional) Put(key string, value any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.removed, key)
	t.staged[key] = value
}

// Get reads the delegate's committed state. When a clear is pending the
// whole namespace reads as missing, so no longer valid data is served
// inside the transaction.
func (t *Transactional) Get(key string) (any, bool) {
	t.mu.Lock()
	cleared := t.clearOnCommit
	_, removed := t.removed[key]
	t.mu.Unlock()
	if cleared || removed {
		return nil, false
	}
	return t.delegate.Get(key)
}

// Remove stages the removal and reports the delegate's current value.
func (t *Transactional) Remove(key string) (any, bool) {
	t.mu.Lock()
	delete(t.staged, key)
	t.removed[key] = struct{}{}
	t.mu.Unlock()
	return t.delegate.Get(key)
}

// Clear discards the staging area and marks the namespace for a flush on
// commit.
func (t *Transactional) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.staged = make(map[string]any)
	t.removed = make(map[string]struct{})
	t.clearOnCommit = true
}

// Size returns the delegate's committed entry count.
func (t *Transactional) Size() int {
	return t.delegate.Size()
}

// ReadWriteLock returns nil.
func (t *Transactional) ReadWriteLock() *sync.RWMutex {
	return nil
}

// Commit applies the pending clear, removals and puts to the delegate and
// resets the staging area.
func (t *Transactional) Commit() {
	t.mu.Lock()
	staged := t.staged
	removed := t.removed
	cleared := t.clearOnCommit
	t.resetLocked()
	t.mu.Unlock()

	if cleared {
		t.delegate.Clear()
	}
	for key := range removed {
		t.delegate.Remove(key)
	}
	for key, value := range staged {
		t.delegate.Put(key, value)
	}
}

// Rollback discards everything staged since the last resolution.
func (t *Transactional) Rollback() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resetLocked()
}

func (t *Transactional) reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resetLocked()
}

func (t *Transactional) resetLocked() {
	t.staged = make(map[string]any)
	t.removed = make(map[string]struct{})
	t.clearOnCommit = false
}
