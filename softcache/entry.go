package softcache

import "sync/atomic"

// Entry wraps a single cached value in a reclaimable handle. The handle is
// what the delegate cache actually stores: the key stays a normal, strongly
// held string, only the payload is subject to reclamation.
//
// An Entry has exactly two states. It is created live and transitions to
// reclaimed at most once, at a point in time this package does not control:
// reclamation is driven by whatever Reclaimer is watching the entry, and may
// never happen at all. The transition is terminal; once the payload is gone
// only the originating key survives, reported through the reclaim queue so
// the delegate can be cleaned up.
type Entry struct {
	key   string
	value atomic.Pointer[any]
	queue *ReclaimQueue
}

// newEntry wraps value for key and registers the shared queue that will be
// notified if the payload is reclaimed. The payload is boxed so that a nil
// value stored by the caller is still distinguishable from a reclaimed one.
func newEntry(key string, value any, queue *ReclaimQueue) *Entry {
	e := &Entry{key: key, queue: queue}
	boxed := value
	e.value.Store(&boxed)
	return e
}

// Key returns the originating cache key.
func (e *Entry) Key() string {
	return e.key
}

// Value returns the payload and whether the entry is still live.
func (e *Entry) Value() (any, bool) {
	p := e.value.Load()
	if p == nil {
		return nil, false
	}
	return *p, true
}

// Live reports whether the payload has not been reclaimed.
func (e *Entry) Live() bool {
	return e.value.Load() != nil
}

// Reclaim drops the payload and posts the originating key to the reclaim
// queue. It is safe to call from any goroutine at any time; only the first
// call transitions the entry and enqueues a notification. Returns whether
// this call performed the transition.
func (e *Entry) Reclaim() bool {
	if e.value.Swap(nil) == nil {
		return false
	}
	e.queue.offer(e.key)
	return true
}
