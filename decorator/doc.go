// Package decorator provides the composable cache decorators that surround
// a namespace's store: bounding (LRU, FIFO), scheduled flushing, hit/miss
// accounting, per-key blocking, serialized copies, transactional staging and
// blanket synchronization.
//
// Every decorator consumes a cache.Cache and re-exposes the identical
// contract, so they stack in any order; the memory-sensitive decorator in
// package softcache slots into the same chains. A typical assembly is
//
//	store -> LRU -> soft -> logging -> synchronized
//
// which pkg/di builds from a cache.Config.
package decorator
