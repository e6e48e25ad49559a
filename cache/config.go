package cache

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config carries the settings used to assemble a namespace cache chain.
// Zero values fall back to the defaults documented on each field; Validate
// rejects settings that cannot be applied.
type Config struct {
	// ID is the namespace identifier. When empty the container assigns a
	// generated id.
	ID string

	// HardLinks is the capacity of the soft cache's retention ring: how
	// many recently fetched values are strongly held to protect them from
	// reclamation. Default 256.
	HardLinks int

	// Capacity bounds the number of keys retained by a bounding decorator
	// (LRU or FIFO). Zero disables the bound.
	Capacity int

	// TTL is the entry lifetime when the TTL-bounded store backs the
	// chain. Zero selects the perpetual store instead.
	TTL time.Duration

	// NumShards configures the TTL store's shard count. Default 256.
	NumShards int

	// EvictionPercentage is the share of entries the TTL store evicts when
	// full, between 1 and 100. Default 10.
	EvictionPercentage int

	// ClearInterval enables the scheduled decorator: the whole namespace
	// is flushed once the interval has elapsed. Zero disables it.
	ClearInterval time.Duration

	// HeapWatermark, in bytes, arms the pressure reclaimer: soft entries
	// are reclaimed whenever heap usage exceeds it. Zero leaves
	// reclamation entirely to explicit triggers.
	HeapWatermark uint64

	// MaxKeyLength bounds serialized key size before keys are digested.
	// Default DefaultMaxKeyLength.
	MaxKeyLength int

	// Logging enables the hit/miss accounting decorator.
	Logging bool
}

// DefaultConfig returns a Config with the defaults used by the container.
func DefaultConfig() Config {
	return Config{
		HardLinks:          256,
		Capacity:           10000,
		NumShards:          256,
		EvictionPercentage: 10,
		MaxKeyLength:       DefaultMaxKeyLength,
	}
}

// Validate checks the configuration. Malformed settings are reported here,
// before any cache is built; the caches themselves never raise on use.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.HardLinks, validation.Min(0)),
		validation.Field(&c.Capacity, validation.Min(0)),
		validation.Field(&c.TTL, validation.Min(time.Duration(0))),
		validation.Field(&c.NumShards, validation.Min(0)),
		validation.Field(&c.EvictionPercentage, validation.Min(0), validation.Max(100)),
		validation.Field(&c.ClearInterval, validation.Min(time.Duration(0))),
		validation.Field(&c.MaxKeyLength, validation.Min(0)),
	)
}
