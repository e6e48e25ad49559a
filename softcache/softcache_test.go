package softcache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/goliatone/go-mapper-cache/pkg/testsupport"
)

// entryFor fetches the wrapped handle a SoftCache stored in its delegate.
func entryFor(t *testing.T, delegate *testsupport.RecorderCache, key string) *Entry {
	t.Helper()
	raw, ok := delegate.Raw(key)
	if !ok {
		t.Fatalf("expected delegate to hold key %q", key)
	}
	e, ok := raw.(*Entry)
	if !ok {
		t.Fatalf("delegate value for %q is %T, expected *Entry", key, raw)
	}
	return e
}

func TestSoftCache_PutThenGet(t *testing.T) {
	delegate := testsupport.NewRecorderCache("queries")
	c := New(delegate)

	c.Put("k", "value")
	v, ok := c.Get("k")
	if !ok || v != "value" {
		t.Fatalf("expected (value,true), got (%v,%v)", v, ok)
	}

	if c.ID() != "queries" {
		t.Errorf("expected delegate id, got %q", c.ID())
	}
	// The delegate stores the handle, not the raw value.
	e := entryFor(t, delegate, "k")
	if e.Key() != "k" {
		t.Errorf("entry should carry its originating key, got %q", e.Key())
	}
}

func TestSoftCache_GetAbsent(t *testing.T) {
	c := New(testsupport.NewRecorderCache("ns"))
	if v, ok := c.Get("missing"); ok || v != nil {
		t.Errorf("expected miss, got (%v,%v)", v, ok)
	}
}

func TestSoftCache_RemoveAbsentAndIdempotent(t *testing.T) {
	c := New(testsupport.NewRecorderCache("ns"))

	if _, ok := c.Remove("missing"); ok {
		t.Error("removing an absent key must report absent")
	}

	c.Put("k", 1)
	prior, ok := c.Remove("k")
	if !ok {
		t.Fatal("first remove should report the prior value")
	}
	// Removal reports the handle as the delegate stored it.
	if e, isEntry := prior.(*Entry); !isEntry || e.Key() != "k" {
		t.Errorf("expected the stored handle back, got %T", prior)
	}
	if _, ok := c.Remove("k"); ok {
		t.Error("second remove should report absent")
	}
}

func TestSoftCache_RingBoundedByHardLinks(t *testing.T) {
	delegate := testsupport.NewRecorderCache("ns")
	c := New(delegate, WithHardLinks(3))

	for i := 0; i < 5; i++ {
		key := fmt.Sprintf("k%d", i)
		c.Put(key, i)
	}
	for i := 0; i < 5; i++ {
		c.Get(fmt.Sprintf("k%d", i))
	}

	snap := c.ring.snapshot()
	if len(snap) != 3 {
		t.Fatalf("expected ring size 3, got %d", len(snap))
	}
	// Head is the most recent fetch.
	if snap[0] != 4 || snap[1] != 3 || snap[2] != 2 {
		t.Errorf("expected [4 3 2], got %v", snap)
	}
}

func TestSoftCache_ConcreteScenario(t *testing.T) {
	// Capacity 2: ring eviction does not touch delegate entries.
	delegate := testsupport.NewRecorderCache("ns")
	c := New(delegate, WithHardLinks(2))

	c.Put("A", 1)
	c.Put("B", 2)
	c.Put("C", 3)

	if v, _ := c.Get("A"); v != 1 {
		t.Fatalf("get A: expected 1, got %v", v)
	}
	if v, _ := c.Get("B"); v != 2 {
		t.Fatalf("get B: expected 2, got %v", v)
	}
	if v, _ := c.Get("C"); v != 3 {
		t.Fatalf("get C: expected 3, got %v", v)
	}

	snap := c.ring.snapshot()
	if len(snap) != 2 || snap[0] != 3 || snap[1] != 2 {
		t.Fatalf("expected ring [3 2], got %v", snap)
	}

	// "1" left the ring, but A's delegate entry is untouched.
	if v, ok := c.Get("A"); !ok || v != 1 {
		t.Errorf("get A after ring eviction: expected 1, got (%v,%v)", v, ok)
	}
}

func TestSoftCache_ReclaimedEntryIsAMiss(t *testing.T) {
	delegate := testsupport.NewRecorderCache("ns")
	c := New(delegate)

	c.Put("k", "v")
	entryFor(t, delegate, "k").Reclaim()

	// Reclaimed payload: the lookup misses and removes the stale key.
	if v, ok := c.Get("k"); ok {
		t.Fatalf("expected miss for reclaimed entry, got %v", v)
	}
	if _, stillThere := delegate.Raw("k"); stillThere {
		t.Error("stale key should have been removed from the delegate")
	}
}

func TestSoftCache_SizeDrainsReclaimed(t *testing.T) {
	delegate := testsupport.NewRecorderCache("ns")
	c := New(delegate)

	c.Put("a", 1)
	c.Put("b", 2)
	entryFor(t, delegate, "a").Reclaim()

	if got := c.Size(); got != 1 {
		t.Errorf("expected size 1 after drain, got %d", got)
	}
	if _, stillThere := delegate.Raw("a"); stillThere {
		t.Error("drained key should be gone from the delegate")
	}
}

func TestSoftCache_PutDrainsReclaimed(t *testing.T) {
	delegate := testsupport.NewRecorderCache("ns")
	c := New(delegate)

	c.Put("a", 1)
	entryFor(t, delegate, "a").Reclaim()
	c.Put("b", 2)

	if _, stillThere := delegate.Raw("a"); stillThere {
		t.Error("put should drain reclaimed keys first")
	}
}

func TestSoftCache_OverwriteThenStaleReclaimRace(t *testing.T) {
	// Accepted weak-consistency trade-off: a notification for an
	// overwritten key removes the newer entry too. The cost is a
	// recompute, never a wrong read.
	delegate := testsupport.NewRecorderCache("ns")
	c := New(delegate)

	c.Put("k", "old")
	stale := entryFor(t, delegate, "k")
	c.Put("k", "new")
	stale.Reclaim()

	if got := c.Size(); got != 0 {
		t.Errorf("expected the newer entry to be dropped by the drain, got size %d", got)
	}
	if v, ok := c.Get("k"); ok {
		t.Errorf("expected a miss after the drain, got %v", v)
	}
}

func TestSoftCache_Clear(t *testing.T) {
	delegate := testsupport.NewRecorderCache("ns")
	c := New(delegate)

	c.Put("a", 1)
	c.Put("b", 2)
	c.Get("a")

	c.Clear()
	if c.ring.len() != 0 {
		t.Error("clear should empty the retention ring")
	}
	if got := c.Size(); got != 0 {
		t.Errorf("expected empty delegate, got size %d", got)
	}
	if _, ok := c.Get("a"); ok {
		t.Error("cleared key should be absent")
	}

	// Idempotent.
	c.Clear()
	if got := c.Size(); got != 0 {
		t.Errorf("second clear should be equivalent, got size %d", got)
	}
}

func TestSoftCache_SetSize(t *testing.T) {
	c := New(testsupport.NewRecorderCache("ns"), WithHardLinks(4))
	for i := 0; i < 4; i++ {
		key := fmt.Sprintf("k%d", i)
		c.Put(key, i)
		c.Get(key)
	}

	c.SetSize(2)
	snap := c.ring.snapshot()
	if len(snap) != 2 || snap[0] != 3 || snap[1] != 2 {
		t.Errorf("expected the two most recent pins [3 2], got %v", snap)
	}
}

func TestSoftCache_ReadWriteLockIsNil(t *testing.T) {
	c := New(testsupport.NewRecorderCache("ns"))
	if c.ReadWriteLock() != nil {
		t.Error("the decorator manages its own safety and must return nil")
	}
}

func TestSoftCache_ForeignDelegateValuePassesThrough(t *testing.T) {
	delegate := testsupport.NewRecorderCache("ns")
	c := New(delegate)

	// A value that reached the delegate without going through Put.
	delegate.Put("k", "raw")
	if v, ok := c.Get("k"); !ok || v != "raw" {
		t.Errorf("expected raw passthrough, got (%v,%v)", v, ok)
	}
}

func TestSoftCache_ReclaimerSeesEveryPut(t *testing.T) {
	delegate := testsupport.NewRecorderCache("ns")
	var watched []*Entry
	var mu sync.Mutex
	c := New(delegate, WithReclaimer(reclaimerFunc(func(e *Entry) {
		mu.Lock()
		watched = append(watched, e)
		mu.Unlock()
	})))

	c.Put("a", 1)
	c.Put("b", 2)

	mu.Lock()
	defer mu.Unlock()
	if len(watched) != 2 {
		t.Fatalf("expected 2 watched entries, got %d", len(watched))
	}
}

type reclaimerFunc func(*Entry)

func (f reclaimerFunc) Watch(e *Entry) { f(e) }

func TestSoftCache_ConcurrentAccess(t *testing.T) {
	c := New(testsupport.NewRecorderCache("ns"), WithHardLinks(8))

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				key := fmt.Sprintf("k%d", i%10)
				switch i % 5 {
				case 0:
					c.Put(key, i)
				case 1, 2:
					c.Get(key)
				case 3:
					c.Remove(key)
				default:
					c.Size()
				}
			}
		}(g)
	}
	wg.Wait()
}
