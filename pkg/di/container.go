// Package di wires namespace cache chains from configuration and hands out
// cached repositories built on them.
package di

import (
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"

	"github.com/goliatone/go-mapper-cache/cache"
	"github.com/goliatone/go-mapper-cache/decorator"
	"github.com/goliatone/go-mapper-cache/internal/cacheinfra"
	"github.com/goliatone/go-mapper-cache/querycache"
	"github.com/goliatone/go-mapper-cache/softcache"
)

// reclaimSweepInterval is how often the shared pressure reclaimer samples
// the heap when a watermark is configured.
const reclaimSweepInterval = time.Second

// Container assembles cache chains from a validated cache.Config and keeps
// the pieces namespaces share: the key serializer and, when a heap
// watermark is configured, the pressure reclaimer.
type Container struct {
	config    cache.Config
	keys      cache.KeySerializer
	reclaimer *softcache.PressureReclaimer
}

// NewContainer validates cfg and prepares the shared components.
func NewContainer(cfg cache.Config) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		config: cfg,
		keys:   cache.NewHashedKeySerializer(cache.NewDefaultKeySerializer(), cfg.MaxKeyLength),
	}
	if cfg.HeapWatermark > 0 {
		c.reclaimer = softcache.NewPressureReclaimer(cfg.HeapWatermark, reclaimSweepInterval)
	}
	return c, nil
}

// NewContainerWithDefaults prepares a container from DefaultConfig.
func NewContainerWithDefaults() (*Container, error) {
	return NewContainer(cache.DefaultConfig())
}

// KeySerializer returns the shared key serializer.
func (c *Container) KeySerializer() cache.KeySerializer {
	return c.keys
}

// Config returns a copy of the container's configuration.
func (c *Container) Config() cache.Config {
	return c.config
}

// NewNamespace builds the decorator chain for one namespace:
//
//	store (perpetual or TTL) -> LRU -> soft -> scheduled -> logging
//
// with each layer present only when its setting enables it. An empty id
// falls back to the configured id, then to a generated one.
func (c *Container) NewNamespace(id string) (cache.Cache, error) {
	if id == "" {
		id = c.config.ID
	}
	if id == "" {
		id = uuid.NewString()
	}

	chain, err := c.newStore(id)
	if err != nil {
		return nil, err
	}

	if c.config.Capacity > 0 {
		chain = decorator.NewLRU(chain, c.config.Capacity)
	}

	opts := []softcache.Option{softcache.WithHardLinks(c.config.HardLinks)}
	if c.reclaimer != nil {
		opts = append(opts, softcache.WithReclaimer(c.reclaimer))
	}
	chain = softcache.New(chain, opts...)

	if c.config.ClearInterval > 0 {
		chain = decorator.NewScheduled(chain, c.config.ClearInterval)
	}
	if c.config.Logging {
		chain = decorator.NewLogging(chain, nil)
	}
	return chain, nil
}

func (c *Container) newStore(id string) (cache.Cache, error) {
	if c.config.TTL <= 0 {
		return cacheinfra.NewPerpetualCache(id), nil
	}
	storeCfg := cacheinfra.DefaultStoreConfig()
	storeCfg.TTL = c.config.TTL
	if c.config.Capacity > 0 {
		storeCfg.Capacity = c.config.Capacity
	}
	if c.config.NumShards > 0 {
		storeCfg.NumShards = c.config.NumShards
	}
	if c.config.EvictionPercentage > 0 {
		storeCfg.EvictionPercentage = c.config.EvictionPercentage
	}
	return cacheinfra.NewSturdyStore(id, storeCfg)
}

// Close stops the shared pressure reclaimer, if one was started.
func (c *Container) Close() error {
	if c.reclaimer == nil {
		return nil
	}
	return c.reclaimer.Close()
}

// NewCachedRepository wraps base in a cached repository whose namespace is
// derived from the model type. Methods cannot carry type parameters, so
// this is a package-level function: NewCachedRepository[User](container, baseRepo).
func NewCachedRepository[T any](container *Container, base repository.Repository[T]) (*querycache.CachedRepository[T], error) {
	ns, err := container.NewNamespace(querycache.NamespaceFor[T]())
	if err != nil {
		return nil, err
	}
	return querycache.New(base, ns, container.keys), nil
}
