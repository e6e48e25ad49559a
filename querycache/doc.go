// Package querycache binds the namespace cache chains to go-repository-bun
// repositories: the mapped-statement side of the module.
//
// CachedRepository wraps a base repository and serves its read operations
// (Get, GetByID, GetByIdentifier, List, Count) through a cache.Cache chain.
// Keys are built by a cache.KeySerializer from the statement name and its
// arguments, so distinct criteria and pagination windows cache separately;
// concurrent misses for the same key collapse into one fetch.
//
// Invalidation follows the second-level cache's flush-on-write rule: any
// successful write through the repository clears the whole namespace. That
// is coarser than per-key invalidation, but a flush costs recomputes and
// never serves stale rows.
//
// Transaction-scoped operations (*Tx) and raw SQL bypass the cache, keeping
// uncommitted state out of it and transaction reads consistent.
//
//	ns := cacheinfra-backed chain for querycache.NamespaceFor[User]()
//	cached := querycache.New(baseRepo, ns, cache.NewDefaultKeySerializer())
//	user, err := cached.GetByID(ctx, "user-123")
//
// pkg/di wires the chain construction.
package querycache
