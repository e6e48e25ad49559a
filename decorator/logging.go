package decorator

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/goliatone/go-mapper-cache/cache"
)

var _ cache.Cache = (*Logging)(nil)

// Logging counts cache requests and hits and reports the running hit ratio
// at debug level on every lookup. It adds no behavior beyond accounting.
type Logging struct {
	delegate cache.Cache
	log      *slog.Logger
	requests atomic.Int64
	hits     atomic.Int64
}

// NewLogging wraps delegate with hit/miss accounting. A nil logger uses
// slog.Default.
func NewLogging(delegate cache.Cache, log *slog.Logger) *Logging {
	if log == nil {
		log = slog.Default()
	}
	return &Logging{delegate: delegate, log: log}
}

// ID returns the delegate's namespace id.
func (l *Logging) ID() string {
	return l.delegate.ID()
}

// Put stores value in the delegate.
func (l *Logging) Put(key string, value any) {
	l.delegate.Put(key, value)
}

// Get reads from the delegate and records the outcome.
func (l *Logging) Get(key string) (any, bool) {
	l.requests.Add(1)
	v, ok := l.delegate.Get(key)
	if ok {
		l.hits.Add(1)
	}
	l.log.Debug("cache lookup",
		"namespace", l.delegate.ID(),
		"hit", ok,
		"hit_ratio", l.HitRatio(),
	)
	return v, ok
}

// Remove deletes key from the delegate.
func (l *Logging) Remove(key string) (any, bool) {
	return l.delegate.Remove(key)
}

// Clear clears the delegate. Counters are kept; the ratio spans the
// namespace's lifetime, not a single fill.
func (l *Logging) Clear() {
	l.delegate.Clear()
}

// Size returns the delegate's entry count.
func (l *Logging) Size() int {
	return l.delegate.Size()
}

// ReadWriteLock returns the delegate's lock unchanged.
func (l *Logging) ReadWriteLock() *sync.RWMutex {
	return l.delegate.ReadWriteLock()
}

// HitRatio returns hits over requests, zero before any request.
func (l *Logging) HitRatio() float64 {
	requests := l.requests.Load()
	if requests == 0 {
		return 0
	}
	return float64(l.hits.Load()) / float64(requests)
}

// Requests returns how many lookups were served.
func (l *Logging) Requests() int64 {
	return l.requests.Load()
}
