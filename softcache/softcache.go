package softcache

import (
	"sync"

	"github.com/goliatone/go-mapper-cache/cache"
)

// DefaultHardLinks is the default retention ring capacity.
const DefaultHardLinks = 256

// Interface assertion to ensure SoftCache satisfies the Cache contract.
var _ cache.Cache = (*SoftCache)(nil)

// Option configures a SoftCache.
type Option func(*SoftCache)

// WithHardLinks sets the retention ring capacity.
func WithHardLinks(n int) Option {
	return func(s *SoftCache) {
		s.ring = newRetentionRing(n)
	}
}

// WithReclaimer registers the reclaimer that decides when watched entries
// lose their payloads. Defaults to NopReclaimer.
func WithReclaimer(r Reclaimer) Option {
	return func(s *SoftCache) {
		s.reclaimer = r
	}
}

// SoftCache decorates a delegate Cache with a memory-sensitive entry
// lifecycle. Values are stored in the delegate wrapped in reclaimable
// entries whose payloads an external Reclaimer may drop at any time; the
// keys of reclaimed entries surface on a shared queue that the decorator
// drains opportunistically, piggybacking eviction on normal traffic instead
// of running a sweep goroutine of its own. A bounded ring of strong
// references protects the most recently fetched values from reclamation.
//
// SoftCache manages its own synchronization and may be shared by concurrent
// callers without external locking; ReadWriteLock returns nil to say so.
// The delegate's thread safety remains the delegate's responsibility.
type SoftCache struct {
	delegate  cache.Cache
	queue     *ReclaimQueue
	ring      *retentionRing
	reclaimer Reclaimer
}

// New wraps delegate in a soft cache with a queue of its own, the default
// ring capacity and no reclamation pressure.
func New(delegate cache.Cache, opts ...Option) *SoftCache {
	s := &SoftCache{
		delegate:  delegate,
		queue:     NewReclaimQueue(),
		ring:      newRetentionRing(DefaultHardLinks),
		reclaimer: NopReclaimer{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the delegate's namespace id.
func (s *SoftCache) ID() string {
	return s.delegate.ID()
}

// Put drains pending reclamation notices, then stores value wrapped in a
// fresh reclaimable entry. Any ring pins for a previous value under this key
// are left alone; they expire naturally as newer fetches push them out.
func (s *SoftCache) Put(key string, value any) {
	s.removeReclaimedItems()
	e := newEntry(key, value, s.queue)
	s.reclaimer.Watch(e)
	s.delegate.Put(key, e)
}

// Get fetches the entry for key from the delegate and dereferences it. A
// reclaimed entry counts as a miss and its stale key is removed from the
// delegate on the spot. A live value is pinned at the head of the retention
// ring (possibly unpinning the ring's oldest value) before being returned.
func (s *SoftCache) Get(key string) (any, bool) {
	h, ok := s.delegate.Get(key)
	if !ok {
		return nil, false
	}
	e, ok := h.(*Entry)
	if !ok {
		// Delegate is assumed to be fully managed by this decorator; a
		// foreign value is passed through untouched.
		return h, true
	}
	v, live := e.Value()
	if !live {
		s.delegate.Remove(key)
		return nil, false
	}
	s.ring.push(v)
	return v, true
}

// Remove drains pending reclamation notices, then removes key from the
// delegate. The prior value is reported as the delegate stored it, without
// unwrapping.
func (s *SoftCache) Remove(key string) (any, bool) {
	s.removeReclaimedItems()
	return s.delegate.Remove(key)
}

// Clear empties the retention ring first, so no stale strong reference
// survives, then drains the queue and clears the delegate. Idempotent.
func (s *SoftCache) Clear() {
	s.ring.clear()
	s.removeReclaimedItems()
	s.delegate.Clear()
}

// Size drains pending reclamation notices and returns the delegate's count.
// Entries already reclaimed but not yet drained at the time of the call may
// still be counted; that staleness window is part of the contract.
func (s *SoftCache) Size() int {
	s.removeReclaimedItems()
	return s.delegate.Size()
}

// SetSize changes the retention ring capacity, keeping the most recently
// pinned values when shrinking.
func (s *SoftCache) SetSize(n int) {
	s.ring.resize(n)
}

// ReadWriteLock returns nil: the decorator handles its own safety.
func (s *SoftCache) ReadWriteLock() *sync.RWMutex {
	return nil
}

// removeReclaimedItems purges delegate keys whose entries were reclaimed
// since the last drain. A notice for a key that was overwritten by a newer
// Put removes the newer delegate entry too; that is an accepted
// weak-consistency race, it costs a recompute on the next lookup but never
// serves wrong data.
func (s *SoftCache) removeReclaimedItems() {
	s.queue.DrainTo(func(key string) {
		s.delegate.Remove(key)
	})
}
