package cacheinfra

import (
	"errors"
	"testing"
	"time"
)

func TestStoreConfig_Validate(t *testing.T) {
	valid := DefaultStoreConfig()
	if err := valid.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*StoreConfig)
		field  string
	}{
		{"zero capacity", func(c *StoreConfig) { c.Capacity = 0 }, "Capacity"},
		{"negative capacity", func(c *StoreConfig) { c.Capacity = -1 }, "Capacity"},
		{"zero shards", func(c *StoreConfig) { c.NumShards = 0 }, "NumShards"},
		{"zero ttl", func(c *StoreConfig) { c.TTL = 0 }, "TTL"},
		{"eviction too low", func(c *StoreConfig) { c.EvictionPercentage = 0 }, "EvictionPercentage"},
		{"eviction too high", func(c *StoreConfig) { c.EvictionPercentage = 101 }, "EvictionPercentage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultStoreConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected a validation error")
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *ConfigError, got %T", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("expected field %s, got %s", tt.field, cfgErr.Field)
			}
		})
	}
}

func TestNewSturdyStore_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultStoreConfig()
	cfg.TTL = -time.Second

	if _, err := NewSturdyStore("ns", cfg); err == nil {
		t.Fatal("expected a config error")
	}
}

func TestSturdyStore_BasicOperations(t *testing.T) {
	cfg := DefaultStoreConfig()
	cfg.TTL = time.Hour // long enough to never expire mid-test

	s, err := NewSturdyStore("orders", cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.ID() != "orders" {
		t.Errorf("expected id orders, got %q", s.ID())
	}

	s.Put("k1", "v1")
	s.Put("k2", "v2")

	if v, ok := s.Get("k1"); !ok || v != "v1" {
		t.Errorf("expected (v1,true), got (%v,%v)", v, ok)
	}
	if got := s.Size(); got != 2 {
		t.Errorf("expected size 2, got %d", got)
	}

	prior, ok := s.Remove("k1")
	if !ok || prior != "v1" {
		t.Errorf("expected (v1,true), got (%v,%v)", prior, ok)
	}
	if _, ok := s.Remove("k1"); ok {
		t.Error("second remove should report absent")
	}

	s.Clear()
	if got := s.Size(); got != 0 {
		t.Errorf("expected empty store after clear, got %d", got)
	}
}

func TestSturdyStore_EntriesExpire(t *testing.T) {
	cfg := DefaultStoreConfig()
	cfg.TTL = 10 * time.Millisecond
	cfg.EvictionInterval = 5 * time.Millisecond

	s, err := NewSturdyStore("ns", cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.Put("k", "v")
	if _, ok := s.Get("k"); !ok {
		t.Fatal("fresh entry should be present")
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, ok := s.Get("k"); !ok {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("entry should have expired")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestSturdyStore_ReadWriteLockIsNil(t *testing.T) {
	s, err := NewSturdyStore("ns", DefaultStoreConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ReadWriteLock() != nil {
		t.Error("expected nil lock")
	}
}
