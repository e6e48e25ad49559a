// Package cache defines the namespaced Cache contract shared by every store
// and decorator in this module, together with key serialization and
// read-through loading.
//
// # Overview
//
// A Cache is a named key/value store with Put, Get, Remove, Clear and Size
// operations. Concrete stores live in internal/cacheinfra; behavior is
// layered on top with decorators (see the decorator and softcache packages)
// that each consume and re-expose the identical contract, so a chain such as
//
//	store -> LRU -> soft -> logging -> synchronized
//
// can be assembled in any order that makes sense for a namespace.
//
// # Keys
//
// Keys are strings built by a KeySerializer from a statement id and its
// arguments. The default serializer uses reflection to produce deterministic
// keys for basic types, slices, maps, structs and pointers, with a JSON
// fallback for anything else. NewHashedKeySerializer bounds key size by
// digesting oversized argument segments with xxhash while keeping the
// statement id as a readable prefix.
//
// Function-pointer arguments serialize by address and are therefore stable
// only within a single process; supply a custom KeySerializer if keys must
// survive restarts.
//
// # Read-through loading
//
// Loader.GetOrCompute consults the cache first and otherwise runs the
// supplied loader under a singleflight group, so concurrent misses for one
// key perform a single fetch:
//
//	loader := cache.NewLoader(c)
//	v, err := loader.GetOrCompute(ctx, key, func(ctx context.Context) (any, error) {
//		return repo.GetByID(ctx, id)
//	})
//
// # Configuration
//
// Config gathers the chain settings (retention ring size, capacity bound,
// TTL, scheduled flush interval, heap watermark) and validates them up
// front. Caches built from a valid Config never fail on use.
package cache
