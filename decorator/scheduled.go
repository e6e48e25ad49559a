package decorator

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/goliatone/go-mapper-cache/cache"
)

// DefaultClearInterval is the flush interval used when none is configured.
const DefaultClearInterval = time.Hour

var _ cache.Cache = (*Scheduled)(nil)

// Scheduled flushes the whole namespace once a clear interval has elapsed.
// The check rides on normal traffic: every operation first compares the
// time of the last flush against the interval, so no background timer is
// needed and an idle cache is simply flushed on its next use.
type Scheduled struct {
	delegate  cache.Cache
	interval  time.Duration
	lastClear atomic.Int64 // unix nanos of the last flush
	clearing  sync.Mutex
}

// NewScheduled wraps delegate with an interval-based flush. Intervals below
// or equal to zero fall back to DefaultClearInterval.
func NewScheduled(delegate cache.Cache, interval time.Duration) *Scheduled {
	if interval <= 0 {
		interval = DefaultClearInterval
	}
	s := &Scheduled{delegate: delegate, interval: interval}
	s.lastClear.Store(time.Now().UnixNano())
	return s
}

// ID returns the delegate's namespace id.
func (s *Scheduled) ID() string {
	return s.delegate.ID()
}

// Put flushes first if the interval elapsed, then stores value.
func (s *Scheduled) Put(key string, value any) {
	s.clearWhenStale()
	s.delegate.Put(key, value)
}

// Get flushes first if the interval elapsed; a flushed namespace reports a
// miss for every key.
func (s *Scheduled) Get(key string) (any, bool) {
	if s.clearWhenStale() {
		return nil, false
	}
	return s.delegate.Get(key)
}

// Remove flushes first if the interval elapsed, then removes key.
func (s *Scheduled) Remove(key string) (any, bool) {
	s.clearWhenStale()
	return s.delegate.Remove(key)
}

// Clear flushes the delegate and restarts the interval.
func (s *Scheduled) Clear() {
	s.lastClear.Store(time.Now().UnixNano())
	s.delegate.Clear()
}

// Size flushes first if the interval elapsed, then counts.
func (s *Scheduled) Size() int {
	s.clearWhenStale()
	return s.delegate.Size()
}

// ReadWriteLock returns nil.
func (s *Scheduled) ReadWriteLock() *sync.RWMutex {
	return nil
}

// clearWhenStale flushes the namespace if the interval has elapsed and
// reports whether it did. The clearing mutex keeps concurrent callers from
// flushing twice for the same deadline.
func (s *Scheduled) clearWhenStale() bool {
	now := time.Now().UnixNano()
	if now-s.lastClear.Load() <= int64(s.interval) {
		return false
	}

	s.clearing.Lock()
	defer s.clearing.Unlock()
	if now-s.lastClear.Load() <= int64(s.interval) {
		return false
	}
	s.lastClear.Store(now)
	s.delegate.Clear()
	return true
}
