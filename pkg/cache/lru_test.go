package cache_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenantkit/tenantkit/pkg/cache"
)

func TestLRU_BasicOperations(t *testing.T) {
	t.Parallel()

	t.Run("get returns stored value", func(t *testing.T) {
		t.Parallel()

		c := cache.NewLRU[string, int](2)
		c.Put("a", 1)

		v, ok := c.Get("a")
		require.True(t, ok)
		assert.Equal(t, 1, v)
	})

	t.Run("get on missing key", func(t *testing.T) {
		t.Parallel()

		c := cache.NewLRU[string, int](2)
		_, ok := c.Get("missing")
		assert.False(t, ok)
	})

	t.Run("put replaces and returns previous value", func(t *testing.T) {
		t.Parallel()

		c := cache.NewLRU[string, int](2)
		c.Put("a", 1)

		old, existed := c.Put("a", 2)
		require.True(t, existed)
		assert.Equal(t, 1, old)

		v, _ := c.Get("a")
		assert.Equal(t, 2, v)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("remove deletes item", func(t *testing.T) {
		t.Parallel()

		c := cache.NewLRU[string, int](2)
		c.Put("a", 1)

		v, existed := c.Remove("a")
		require.True(t, existed)
		assert.Equal(t, 1, v)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("panics on non-positive capacity", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() { cache.NewLRU[string, int](0) })
	})
}

func TestLRU_Eviction(t *testing.T) {
	t.Parallel()

	t.Run("evicts least recently used at capacity", func(t *testing.T) {
		t.Parallel()

		c := cache.NewLRU[string, int](2)
		c.Put("a", 1)
		c.Put("b", 2)
		c.Get("a") // "b" is now the oldest
		c.Put("c", 3)

		_, ok := c.Get("b")
		assert.False(t, ok)
		_, ok = c.Get("a")
		assert.True(t, ok)
		_, ok = c.Get("c")
		assert.True(t, ok)
	})

	t.Run("eviction callback fires with evicted entry", func(t *testing.T) {
		t.Parallel()

		var evictedKey string
		var evictedValue int

		c := cache.NewLRU[string, int](1)
		c.SetEvictCallback(func(k string, v int) {
			evictedKey = k
			evictedValue = v
		})

		c.Put("a", 1)
		c.Put("b", 2)

		assert.Equal(t, "a", evictedKey)
		assert.Equal(t, 1, evictedValue)
	})

	t.Run("clear invokes callback for every item", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		closed := map[string]bool{}

		c := cache.NewLRU[string, int](4)
		c.SetEvictCallback(func(k string, _ int) {
			mu.Lock()
			closed[k] = true
			mu.Unlock()
		})

		c.Put("a", 1)
		c.Put("b", 2)
		c.Clear()

		assert.Equal(t, 0, c.Len())
		assert.True(t, closed["a"])
		assert.True(t, closed["b"])
	})
}

func TestLRU_GetOrAdd(t *testing.T) {
	t.Parallel()

	t.Run("builds once for concurrent callers", func(t *testing.T) {
		t.Parallel()

		c := cache.NewLRU[string, int](4)

		var builds int
		var wg sync.WaitGroup
		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				v, _, err := c.GetOrAdd("key", func() (int, error) {
					builds++ // guarded by the cache lock
					return 42, nil
				})
				assert.NoError(t, err)
				assert.Equal(t, 42, v)
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, builds)
	})

	t.Run("build error is not cached", func(t *testing.T) {
		t.Parallel()

		c := cache.NewLRU[string, int](4)
		boom := errors.New("boom")

		_, _, err := c.GetOrAdd("key", func() (int, error) { return 0, boom })
		require.ErrorIs(t, err, boom)
		assert.Equal(t, 0, c.Len())

		v, loaded, err := c.GetOrAdd("key", func() (int, error) { return 7, nil })
		require.NoError(t, err)
		assert.False(t, loaded)
		assert.Equal(t, 7, v)
	})
}

func TestLRU_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	c := cache.NewLRU[int, int](128)

	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := range 200 {
				c.Put(n*200+j, j)
				c.Get(n * 200)
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 128)
}
