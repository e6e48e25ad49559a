package cacheinfra

import (
	"fmt"
	"sync"
	"testing"
)

func TestPerpetualCache_BasicOperations(t *testing.T) {
	c := NewPerpetualCache("users")

	if c.ID() != "users" {
		t.Errorf("expected id users, got %q", c.ID())
	}

	c.Put("k1", "v1")
	c.Put("k2", 42)

	if v, ok := c.Get("k1"); !ok || v != "v1" {
		t.Errorf("expected (v1,true), got (%v,%v)", v, ok)
	}
	if got := c.Size(); got != 2 {
		t.Errorf("expected size 2, got %d", got)
	}

	prior, ok := c.Remove("k2")
	if !ok || prior != 42 {
		t.Errorf("expected (42,true), got (%v,%v)", prior, ok)
	}
	if _, ok := c.Remove("k2"); ok {
		t.Error("second remove should report absent")
	}

	c.Clear()
	if got := c.Size(); got != 0 {
		t.Errorf("expected empty cache after clear, got %d", got)
	}
}

func TestPerpetualCache_OverwriteKeepsSize(t *testing.T) {
	c := NewPerpetualCache("ns")
	c.Put("k", 1)
	c.Put("k", 2)

	if got := c.Size(); got != 1 {
		t.Errorf("expected size 1 after overwrite, got %d", got)
	}
	if v, _ := c.Get("k"); v != 2 {
		t.Errorf("expected latest value 2, got %v", v)
	}
}

func TestPerpetualCache_NilValue(t *testing.T) {
	c := NewPerpetualCache("ns")
	c.Put("k", nil)

	if v, ok := c.Get("k"); !ok || v != nil {
		t.Errorf("a stored nil is still a hit, got (%v,%v)", v, ok)
	}
}

func TestPerpetualCache_ReadWriteLockIsNil(t *testing.T) {
	c := NewPerpetualCache("ns")
	if c.ReadWriteLock() != nil {
		t.Error("expected nil lock")
	}
}

func TestPerpetualCache_ConcurrentAccess(t *testing.T) {
	c := NewPerpetualCache("ns")

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", i%20)
				c.Put(key, i)
				c.Get(key)
				if i%50 == 0 {
					c.Remove(key)
				}
			}
		}(g)
	}
	wg.Wait()
}
