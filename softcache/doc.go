// Package softcache provides the memory-sensitive cache decorator: a
// cache.Cache wrapper that holds query results for as long as memory
// pressure allows and releases them automatically when it does not.
//
// # Model
//
// In a runtime with a tracing collector this decorator would store values
// behind soft references and let the collector clear them. Go has no direct
// analogue, so the lifecycle is modeled explicitly:
//
//   - Entry is a two-state handle (live -> reclaimed) around one value,
//     carrying its originating key. The transition is performed exactly once
//     by whatever Reclaimer watches the entry and may happen at any time, or
//     never.
//   - ReclaimQueue is the notification channel reclaimed keys surface on.
//   - SoftCache drains the queue before size queries, insertions, removals
//     and clears, removing orphaned keys from its delegate. Eviction is lazy
//     and incidental: it rides on normal cache traffic, so the decorator
//     stays allocation-free in the steady state and has no sweep goroutine
//     to manage.
//   - The retention ring strongly holds the most recently fetched values
//     (256 by default, configurable via WithHardLinks or SetSize), which
//     keeps a working set of entries deterministically live no matter what
//     the reclaimer does. Values pushed out of the ring become reclaimable
//     again once nothing else references them.
//
// # Reclaimers
//
// NopReclaimer, the default, never reclaims: the cache then behaves like a
// plain delegate with wrapped values. PressureReclaimer samples heap usage
// on an interval and reclaims the oldest watched entries while usage stays
// over a watermark. Tests, and callers with their own eviction policy, can
// drive the transition directly through Entry.Reclaim.
//
// # Usage
//
//	delegate := cacheinfra.NewPerpetualCache("user-queries")
//	soft := softcache.New(delegate, softcache.WithHardLinks(512))
//
//	soft.Put(key, rows)
//	if v, ok := soft.Get(key); ok {
//		// v is pinned in the retention ring until 512 newer fetches occur
//	}
//
// SoftCache is safe for concurrent use without external locking. The only
// internal guard is the ring's mutex, held for a push or clear and never
// across calls into the delegate or the queue.
package softcache
