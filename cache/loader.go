package cache

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// LoaderFn fetches a value from the source of truth when the cache misses.
type LoaderFn func(ctx context.Context) (any, error)

// Loader provides read-through access to a Cache. Concurrent misses for the
// same key are collapsed through a singleflight group so the loader runs
// once and every waiter receives its result.
type Loader struct {
	cache Cache
	group singleflight.Group
}

// NewLoader creates a read-through loader over c.
func NewLoader(c Cache) *Loader {
	return &Loader{cache: c}
}

// GetOrCompute returns the cached value for key, invoking loader on a miss
// and storing the result. Loader errors are returned to every caller that
// joined the flight and nothing is cached for them.
func (l *Loader) GetOrCompute(ctx context.Context, key string, loader LoaderFn) (any, error) {
	if v, ok := l.cache.Get(key); ok {
		return v, nil
	}

	v, err, _ := l.group.Do(key, func() (any, error) {
		// Re-check under the flight: another caller may have populated the
		// key between our miss and the group admitting us.
		if v, ok := l.cache.Get(key); ok {
			return v, nil
		}
		v, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		l.cache.Put(key, v)
		return v, nil
	})
	return v, err
}

// Forget drops any in-flight computation for key so the next miss reloads.
func (l *Loader) Forget(key string) {
	l.group.Forget(key)
}
