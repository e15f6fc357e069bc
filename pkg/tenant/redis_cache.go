package tenant

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisCache shares resolved tenant records across processes, so a fleet of
// app instances resolves a given identifier against the registry database
// only once per TTL. Cache errors degrade to misses: the registry remains
// the source of truth.
type redisCache struct {
	client redis.UniversalClient
	prefix string
	log    *slog.Logger
}

// NewRedisCache creates a tenant cache on top of an existing Redis client.
// The client's lifecycle stays with the caller. keyPrefix defaults to
// "tenant:".
func NewRedisCache(client redis.UniversalClient, keyPrefix string, log *slog.Logger) Cache {
	if keyPrefix == "" {
		keyPrefix = "tenant:"
	}
	if log == nil {
		log = slog.Default()
	}
	return &redisCache{client: client, prefix: keyPrefix, log: log}
}

func (c *redisCache) Get(ctx context.Context, key string) (*Tenant, bool) {
	payload, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.WarnContext(ctx, "tenant cache get failed", "error", err)
		}
		return nil, false
	}

	var t Tenant
	if err := json.Unmarshal(payload, &t); err != nil {
		c.log.WarnContext(ctx, "tenant cache entry corrupt", "error", err)
		_ = c.client.Del(ctx, c.prefix+key).Err()
		return nil, false
	}
	return &t, true
}

func (c *redisCache) Set(ctx context.Context, key string, tenant *Tenant, ttl time.Duration) {
	payload, err := json.Marshal(tenant)
	if err != nil {
		c.log.WarnContext(ctx, "tenant cache marshal failed", "error", err)
		return
	}
	if err := c.client.Set(ctx, c.prefix+key, payload, ttl).Err(); err != nil {
		c.log.WarnContext(ctx, "tenant cache set failed", "error", err)
	}
}

func (c *redisCache) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		c.log.WarnContext(ctx, "tenant cache delete failed", "error", err)
	}
}
