package softcache

import "sync"

// retentionRing is a bounded buffer of strong references to recently fetched
// values. Without it a payload could be reclaimed the instant the caller's
// local reference goes out of scope; the ring keeps the most recent fetches
// pinned, approximating an LRU window over fetch events. Duplicates are
// allowed: fetching the same value twice pins it twice.
//
// All access happens under the ring's own mutex, which is never held across
// calls into the delegate cache or the reclaim queue.
type retentionRing struct {
	mu    sync.Mutex
	slots []any
	head  int // index of the most recent value when count > 0
	count int
}

func newRetentionRing(capacity int) *retentionRing {
	if capacity < 0 {
		capacity = 0
	}
	return &retentionRing{slots: make([]any, capacity)}
}

// push pins v at the head. When the ring is full the tail slot is
// overwritten, dropping the oldest strong reference.
func (r *retentionRing) push(v any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.slots) == 0 {
		return
	}
	r.head = (r.head + 1) % len(r.slots)
	r.slots[r.head] = v
	if r.count < len(r.slots) {
		r.count++
	}
}

// clear drops every pinned reference.
func (r *retentionRing) clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.slots {
		r.slots[i] = nil
	}
	r.head = 0
	r.count = 0
}

func (r *retentionRing) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

func (r *retentionRing) capacity() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.slots)
}

// resize changes the ring's capacity, keeping the most recently pinned
// values when shrinking.
func (r *retentionRing) resize(capacity int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if capacity < 0 {
		capacity = 0
	}
	kept := r.snapshotLocked()
	if len(kept) > capacity {
		kept = kept[:capacity]
	}

	r.slots = make([]any, capacity)
	r.head = 0
	r.count = 0
	// Reinsert oldest first so the head stays the most recent value.
	for i := len(kept) - 1; i >= 0; i-- {
		r.head = (r.head + 1) % capacity
		r.slots[r.head] = kept[i]
		r.count++
	}
}

// snapshot returns the pinned values, most recent first.
func (r *retentionRing) snapshot() []any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *retentionRing) snapshotLocked() []any {
	n := len(r.slots)
	out := make([]any, 0, r.count)
	for i := 0; i < r.count; i++ {
		idx := ((r.head-i)%n + n) % n
		out = append(out, r.slots[idx])
	}
	return out
}
