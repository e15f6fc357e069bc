package tenant_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenantkit/tenantkit/pkg/tenant"
)

func TestMemoryCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("stores and retrieves tenants", func(t *testing.T) {
		t.Parallel()

		c := tenant.NewMemoryCache()
		c.Set(ctx, "acme", acme(), time.Minute)

		got, ok := c.Get(ctx, "acme")
		require.True(t, ok)
		assert.Equal(t, "tenant_acme", got.DatabaseName)
	})

	t.Run("misses unknown keys", func(t *testing.T) {
		t.Parallel()

		c := tenant.NewMemoryCache()
		_, ok := c.Get(ctx, "ghost")
		assert.False(t, ok)
	})

	t.Run("expires entries after the TTL", func(t *testing.T) {
		t.Parallel()

		c := tenant.NewMemoryCache()
		c.Set(ctx, "acme", acme(), time.Nanosecond)
		time.Sleep(5 * time.Millisecond)

		_, ok := c.Get(ctx, "acme")
		assert.False(t, ok)
	})

	t.Run("delete removes an entry", func(t *testing.T) {
		t.Parallel()

		c := tenant.NewMemoryCache()
		c.Set(ctx, "acme", acme(), time.Minute)
		c.Delete(ctx, "acme")

		_, ok := c.Get(ctx, "acme")
		assert.False(t, ok)
	})

	t.Run("evicts least recently used beyond the bound", func(t *testing.T) {
		t.Parallel()

		c := tenant.NewMemoryCacheWithSize(2)
		c.Set(ctx, "a", acme(), time.Minute)
		c.Set(ctx, "b", acme(), time.Minute)

		// Touch "a" so "b" becomes the eviction candidate.
		_, ok := c.Get(ctx, "a")
		require.True(t, ok)

		c.Set(ctx, "c", acme(), time.Minute)

		_, ok = c.Get(ctx, "b")
		assert.False(t, ok)
		_, ok = c.Get(ctx, "a")
		assert.True(t, ok)
		_, ok = c.Get(ctx, "c")
		assert.True(t, ok)
	})

	t.Run("concurrent access is safe", func(t *testing.T) {
		t.Parallel()

		c := tenant.NewMemoryCacheWithSize(16)
		done := make(chan struct{})
		for i := range 8 {
			go func(n int) {
				defer func() { done <- struct{}{} }()
				key := fmt.Sprintf("t%d", n)
				for range 100 {
					c.Set(ctx, key, acme(), time.Minute)
					c.Get(ctx, key)
					c.Delete(ctx, key)
				}
			}(i)
		}
		for range 8 {
			<-done
		}
	})
}

func TestNoOpCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := tenant.NewNoOpCache()
	c.Set(ctx, "acme", acme(), time.Minute)

	_, ok := c.Get(ctx, "acme")
	assert.False(t, ok)
}
