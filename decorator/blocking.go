package decorator

import (
	"sync"

	"github.com/goliatone/go-mapper-cache/cache"
	"github.com/puzpuzpuz/xsync/v3"
)

var _ cache.Cache = (*Blocking)(nil)

// Blocking guards each key with a latch so that only one caller recomputes
// a missing value. A Get that misses returns with the key's latch held;
// every other Get for that key blocks until the first caller Puts the
// computed value (or calls Unlock to give up), then proceeds and finds a
// hit. A Get that hits releases the latch immediately.
//
// The latch is a one-slot semaphore rather than a mutex so that releasing
// from a goroutine other than the acquirer, or releasing an idle latch, is
// harmless.
type Blocking struct {
	delegate cache.Cache
	latches  *xsync.MapOf[string, chan struct{}]
}

// NewBlocking wraps delegate with per-key miss latching.
func NewBlocking(delegate cache.Cache) *Blocking {
	return &Blocking{
		delegate: delegate,
		latches:  xsync.NewMapOf[string, chan struct{}](),
	}
}

// ID returns the delegate's namespace id.
func (b *Blocking) ID() string {
	return b.delegate.ID()
}

// Put stores value and releases the key's latch, waking callers that
// blocked on the miss.
func (b *Blocking) Put(key string, value any) {
	b.delegate.Put(key, value)
	b.release(key)
}

// Get acquires the key's latch, then reads. On a hit the latch is released
// before returning; on a miss it stays held until the caller Puts a value
// for the key or calls Unlock.
func (b *Blocking) Get(key string) (any, bool) {
	b.acquire(key)
	v, ok := b.delegate.Get(key)
	if ok {
		b.release(key)
	}
	return v, ok
}

// Remove deletes key and releases its latch.
func (b *Blocking) Remove(key string) (any, bool) {
	v, ok := b.delegate.Remove(key)
	b.release(key)
	return v, ok
}

// Clear clears the delegate. Held latches stay held; their owners are
// expected to Put or Unlock as usual.
func (b *Blocking) Clear() {
	b.delegate.Clear()
}

// Size returns the delegate's entry count.
func (b *Blocking) Size() int {
	return b.delegate.Size()
}

// ReadWriteLock returns nil.
func (b *Blocking) ReadWriteLock() *sync.RWMutex {
	return nil
}

// Unlock releases the latch for key without storing a value. Callers use it
// to abandon a recompute after a miss so waiters are not stranded.
func (b *Blocking) Unlock(key string) {
	b.release(key)
}

func (b *Blocking) acquire(key string) {
	latch, _ := b.latches.LoadOrCompute(key, func() chan struct{} {
		return make(chan struct{}, 1)
	})
	latch <- struct{}{}
}

func (b *Blocking) release(key string) {
	latch, ok := b.latches.Load(key)
	if !ok {
		return
	}
	select {
	case <-latch:
	default:
	}
}
