package softcache

import "sync"

// ReclaimQueue collects the keys of entries whose payloads have been
// reclaimed. Reclaimers post to it asynchronously; the soft cache drains it
// opportunistically before size queries, insertions, removals and clears to
// purge orphaned keys from its delegate.
//
// Drained keys come out in reclamation order, which is reclaimer-determined;
// callers must not assume FIFO by insertion time.
type ReclaimQueue struct {
	mu   sync.Mutex
	keys []string
}

// NewReclaimQueue creates an empty queue.
func NewReclaimQueue() *ReclaimQueue {
	return &ReclaimQueue{}
}

// offer appends a reclaimed key. Never blocks.
func (q *ReclaimQueue) offer(key string) {
	q.mu.Lock()
	q.keys = append(q.keys, key)
	q.mu.Unlock()
}

// Len returns the number of pending notifications.
func (q *ReclaimQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.keys)
}

// DrainTo removes every currently queued notification and invokes fn for
// each key. The backlog is swapped out under the lock and fn runs outside
// it, so handlers may call back into caches without risking the queue's
// guard being held across those calls. Nonblocking; draining an empty queue
// is a no-op.
func (q *ReclaimQueue) DrainTo(fn func(key string)) {
	q.mu.Lock()
	keys := q.keys
	q.keys = nil
	q.mu.Unlock()

	for _, key := range keys {
		fn(key)
	}
}
