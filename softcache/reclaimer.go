package softcache

import (
	"errors"
	"runtime"
	"sync"
	"time"
)

// ErrReclaimerClosed is returned when a pressure reclaimer is closed twice.
var ErrReclaimerClosed = errors.New("softcache: reclaimer already closed")

// Reclaimer stands in for the memory reclaimer that, in a runtime with a
// tracing collector, would clear soft references on its own schedule. The
// soft cache hands every entry it creates to its reclaimer; when and whether
// an entry's payload is reclaimed is entirely the reclaimer's decision.
type Reclaimer interface {
	Watch(e *Entry)
}

// NopReclaimer never reclaims anything, the behavior of a collector that is
// under no memory pressure. It is the soft cache's default.
type NopReclaimer struct{}

// Watch implements Reclaimer.
func (NopReclaimer) Watch(*Entry) {}

// PressureReclaimer reclaims watched entries when heap usage crosses a
// watermark. A background goroutine samples runtime.ReadMemStats on a fixed
// interval (the same ticker-plus-close-channel shape as a cache janitor)
// and, while over the watermark, reclaims the oldest live entries first.
//
// Reclaiming here only severs this package's reference to the payload;
// memory is actually returned once the delegate's key is drained and the
// collector runs. The reclaimer is an approximation of collector behavior,
// not a faithful reproduction, and makes no timing guarantees.
type PressureReclaimer struct {
	watermark uint64
	readHeap  func() uint64 // swappable for tests

	mu      sync.Mutex
	watched []*Entry

	close     chan struct{}
	closeOnce sync.Once
}

// NewPressureReclaimer starts a reclaimer that sweeps every interval and
// reclaims the oldest half of its live entries whenever heap allocation
// exceeds watermark bytes.
func NewPressureReclaimer(watermark uint64, interval time.Duration) *PressureReclaimer {
	p := &PressureReclaimer{
		watermark: watermark,
		readHeap:  heapAlloc,
		close:     make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.Sweep()
			case <-p.close:
				return
			}
		}
	}()

	return p
}

// Watch implements Reclaimer.
func (p *PressureReclaimer) Watch(e *Entry) {
	p.mu.Lock()
	p.watched = append(p.watched, e)
	p.mu.Unlock()
}

// Sweep prunes entries that are already reclaimed and, if the heap is over
// the watermark, reclaims the oldest half of the remaining live entries.
// Returns how many entries were reclaimed by this call.
func (p *PressureReclaimer) Sweep() int {
	p.mu.Lock()
	live := p.watched[:0]
	for _, e := range p.watched {
		if e.Live() {
			live = append(live, e)
		}
	}
	p.watched = live

	if p.readHeap() <= p.watermark || len(p.watched) == 0 {
		p.mu.Unlock()
		return 0
	}

	victims := append([]*Entry(nil), p.watched[:(len(p.watched)+1)/2]...)
	p.watched = append(p.watched[:0], p.watched[len(victims):]...)
	p.mu.Unlock()

	// Reclaim outside the lock: each reclaim posts to the shared queue.
	reclaimed := 0
	for _, e := range victims {
		if e.Reclaim() {
			reclaimed++
		}
	}
	return reclaimed
}

// Watching returns the number of entries currently tracked.
func (p *PressureReclaimer) Watching() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.watched)
}

// Close stops the background sweep goroutine.
func (p *PressureReclaimer) Close() error {
	err := ErrReclaimerClosed
	p.closeOnce.Do(func() {
		close(p.close)
		err = nil
	})
	return err
}

func heapAlloc() uint64 {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return ms.HeapAlloc
}
