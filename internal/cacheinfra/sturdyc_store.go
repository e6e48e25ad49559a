package cacheinfra

import (
	"sync"
	"time"

	"github.com/goliatone/go-mapper-cache/cache"
	"github.com/viccon/sturdyc"
)

var _ cache.Cache = (*SturdyStore)(nil)

// StoreConfig holds the settings for the TTL-bounded store.
type StoreConfig struct {
	// Capacity is the maximum number of entries. Must be greater than 0.
	Capacity int

	// NumShards determines how many shards back the client. Higher values
	// improve concurrency at some memory overhead. Must be greater than 0.
	NumShards int

	// TTL is the entry lifetime. Must be greater than 0.
	TTL time.Duration

	// EvictionPercentage is the share of entries evicted when the client
	// reaches capacity, between 1 and 100.
	EvictionPercentage int

	// EvictionInterval overrides how often expired entries are collected.
	// Zero keeps the client default.
	EvictionInterval time.Duration
}

// DefaultStoreConfig returns settings suitable for most namespaces.
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		Capacity:           10000,
		NumShards:          256,
		TTL:                5 * time.Minute,
		EvictionPercentage: 10,
	}
}

// ConfigError reports an invalid store setting.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}

// Validate checks the configuration values.
func (c StoreConfig) Validate() error {
	if c.Capacity <= 0 {
		return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
	}
	if c.NumShards <= 0 {
		return &ConfigError{Field: "NumShards", Message: "must be greater than 0"}
	}
	if c.TTL <= 0 {
		return &ConfigError{Field: "TTL", Message: "must be greater than 0"}
	}
	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		return &ConfigError{Field: "EvictionPercentage", Message: "must be between 1 and 100"}
	}
	return nil
}

// SturdyStore adapts a sturdyc client to the Cache contract, giving chains a
// scheduled-expiry bottom layer: entries age out after the configured TTL in
// addition to whatever the decorators above do.
type SturdyStore struct {
	id     string
	client *sturdyc.Client[any]
}

// NewSturdyStore validates cfg and builds the TTL-bounded store.
func NewSturdyStore(id string, cfg StoreConfig) (*SturdyStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var opts []sturdyc.Option
	if cfg.EvictionInterval > 0 {
		opts = append(opts, sturdyc.WithEvictionInterval(cfg.EvictionInterval))
	}

	client := sturdyc.New[any](
		cfg.Capacity,
		cfg.NumShards,
		cfg.TTL,
		cfg.EvictionPercentage,
		opts...,
	)
	return &SturdyStore{id: id, client: client}, nil
}

// ID returns the namespace identifier.
func (s *SturdyStore) ID() string {
	return s.id
}

// Put inserts or overwrites the value stored under key.
func (s *SturdyStore) Put(key string, value any) {
	s.client.Set(key, value)
}

// Get returns the value stored under key, if present and not expired.
func (s *SturdyStore) Get(key string) (any, bool) {
	return s.client.Get(key)
}

// Remove deletes key, returning the prior value.
func (s *SturdyStore) Remove(key string) (any, bool) {
	v, ok := s.client.Get(key)
	if !ok {
		return nil, false
	}
	s.client.Delete(key)
	return v, true
}

// Clear removes every entry.
func (s *SturdyStore) Clear() {
	for _, key := range s.client.ScanKeys() {
		s.client.Delete(key)
	}
}

// Size returns the number of live entries.
func (s *SturdyStore) Size() int {
	return s.client.Size()
}

// ReadWriteLock returns nil; the client shards its own locking.
func (s *SturdyStore) ReadWriteLock() *sync.RWMutex {
	return nil
}
