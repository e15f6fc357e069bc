// Package cache provides a generic, thread-safe LRU cache used across the
// toolkit to bound in-memory registries.
//
// The primary consumers are the connection binder, which caches one pgx pool
// per tenant database and relies on the eviction callback to close pools that
// fall out of the working set, and the tenant middleware's in-memory tenant
// cache.
//
// # Usage
//
// Create a cache with a fixed capacity and an optional eviction callback:
//
//	pools := cache.NewLRU[string, *pgxpool.Pool](64)
//	pools.SetEvictCallback(func(name string, pool *pgxpool.Pool) {
//		pool.Close()
//	})
//
// GetOrAdd makes the cache usable as a concurrent registry without a
// check-then-act race on the caller's side:
//
//	pool, loaded := pools.GetOrAdd("tenant_acme", newPool)
//
// All operations are O(1) and safe for concurrent use.
package cache
