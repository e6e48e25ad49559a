package softcache

import (
	"sync"
	"testing"
)

func TestReclaimQueue_DrainTo(t *testing.T) {
	q := NewReclaimQueue()
	q.offer("a")
	q.offer("b")

	var drained []string
	q.DrainTo(func(key string) {
		drained = append(drained, key)
	})

	if len(drained) != 2 {
		t.Fatalf("expected 2 drained keys, got %d", len(drained))
	}
	if q.Len() != 0 {
		t.Errorf("expected empty queue after drain, got %d", q.Len())
	}
}

func TestReclaimQueue_DrainEmptyIsNoop(t *testing.T) {
	q := NewReclaimQueue()
	called := false
	q.DrainTo(func(string) { called = true })
	if called {
		t.Error("handler should not run for an empty queue")
	}
}

func TestReclaimQueue_HandlerMayOffer(t *testing.T) {
	// The backlog is swapped out before the handler runs, so a handler
	// that enqueues again must not deadlock or be drained in this pass.
	q := NewReclaimQueue()
	q.offer("a")

	q.DrainTo(func(key string) {
		q.offer("requeued-" + key)
	})

	if q.Len() != 1 {
		t.Fatalf("expected 1 requeued key, got %d", q.Len())
	}
}

func TestReclaimQueue_ConcurrentOffers(t *testing.T) {
	q := NewReclaimQueue()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q.offer("k")
		}()
	}
	wg.Wait()

	if q.Len() != 50 {
		t.Errorf("expected 50 queued keys, got %d", q.Len())
	}
}
