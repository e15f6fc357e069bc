package tenant

import (
	"context"
	"time"

	"github.com/tenantkit/tenantkit/pkg/cache"
)

// Cache is the interface for tenant caching implementations. Caching only
// short-circuits the registry lookup; provisioning and schema state keep
// their own memos.
type Cache interface {
	// Get retrieves a tenant from cache by identifier.
	Get(ctx context.Context, key string) (*Tenant, bool)

	// Set stores a tenant in cache with the given TTL.
	Set(ctx context.Context, key string, tenant *Tenant, ttl time.Duration)

	// Delete removes a tenant from cache.
	Delete(ctx context.Context, key string)
}

// DefaultCacheSize is the default maximum number of cached tenants.
const DefaultCacheSize = 1000

type memoryItem struct {
	tenant    *Tenant
	expiresAt time.Time
}

// memoryCache is the default in-process tenant cache: an LRU with per-entry
// TTL. Expired entries are dropped lazily on access; the LRU bound keeps the
// cache from growing in the meantime.
type memoryCache struct {
	items *cache.LRU[string, memoryItem]
}

// NewMemoryCache creates an in-memory tenant cache with the default size.
func NewMemoryCache() Cache {
	return NewMemoryCacheWithSize(DefaultCacheSize)
}

// NewMemoryCacheWithSize creates an in-memory tenant cache bounded to
// maxSize entries.
func NewMemoryCacheWithSize(maxSize int) Cache {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}
	return &memoryCache{items: cache.NewLRU[string, memoryItem](maxSize)}
}

func (c *memoryCache) Get(ctx context.Context, key string) (*Tenant, bool) {
	item, ok := c.items.Get(key)
	if !ok {
		return nil, false
	}
	if time.Now().After(item.expiresAt) {
		c.items.Remove(key)
		return nil, false
	}
	return item.tenant, true
}

func (c *memoryCache) Set(ctx context.Context, key string, tenant *Tenant, ttl time.Duration) {
	c.items.Put(key, memoryItem{tenant: tenant, expiresAt: time.Now().Add(ttl)})
}

func (c *memoryCache) Delete(ctx context.Context, key string) {
	c.items.Remove(key)
}

// noOpCache disables caching, useful for tests or when staleness is
// unacceptable.
type noOpCache struct{}

// NewNoOpCache creates a cache that doesn't cache.
func NewNoOpCache() Cache {
	return &noOpCache{}
}

func (n *noOpCache) Get(ctx context.Context, key string) (*Tenant, bool) { return nil, false }

func (n *noOpCache) Set(ctx context.Context, key string, tenant *Tenant, ttl time.Duration) {}

func (n *noOpCache) Delete(ctx context.Context, key string) {}
