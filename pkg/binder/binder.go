package binder

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tenantkit/tenantkit/pkg/cache"
	"github.com/tenantkit/tenantkit/pkg/provisioner"
)

// Binder maintains one bounded connection pool per tenant database and binds
// the right pool to each request's context. Pools are created lazily on
// first use, kept in an LRU so the working set of active tenants stays warm,
// and closed when evicted.
type Binder struct {
	cfg   Config
	base  *pgxpool.Config
	pools *cache.LRU[string, *pgxpool.Pool]
	log   *slog.Logger

	mu     sync.Mutex
	closed bool
}

// New creates a Binder. The base connection string is parsed once; per-tenant
// pools reuse every setting except the database name.
func New(cfg Config, log *slog.Logger) (*Binder, error) {
	if log == nil {
		log = slog.Default()
	}

	base, err := pgxpool.ParseConfig(cfg.BaseConnString)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseBaseConfig, err)
	}
	base.MaxConns = cfg.PoolMaxConns
	base.MinConns = cfg.PoolMinConns
	base.HealthCheckPeriod = cfg.HealthCheckPeriod
	base.MaxConnIdleTime = cfg.MaxConnIdleTime
	base.MaxConnLifetime = cfg.MaxConnLifetime

	maxPools := cfg.MaxPools
	if maxPools <= 0 {
		maxPools = 64
	}

	b := &Binder{cfg: cfg, base: base, log: log}
	b.pools = cache.NewLRU[string, *pgxpool.Pool](maxPools)
	b.pools.SetEvictCallback(func(name string, pool *pgxpool.Pool) {
		// Close waits for checked-out connections to come back; do it off
		// the cache lock so eviction never stalls unrelated tenants.
		go pool.Close()
		log.Info("tenant pool evicted", "database", name)
	})

	return b, nil
}

// Pool returns the connection pool for the named tenant database, creating
// it on first use. Concurrent callers for the same database get the same
// pool.
func (b *Binder) Pool(ctx context.Context, databaseName string) (*pgxpool.Pool, error) {
	if err := provisioner.ValidateDatabaseName(databaseName); err != nil {
		return nil, err
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, ErrBinderClosed
	}
	b.mu.Unlock()

	pool, _, err := b.pools.GetOrAdd(databaseName, func() (*pgxpool.Pool, error) {
		cfg := b.base.Copy()
		cfg.ConnConfig.Database = databaseName
		// Pool construction is lazy: connections are established on first
		// acquire, so building under the cache lock is cheap.
		return pgxpool.NewWithConfig(ctx, cfg)
	})
	if err != nil {
		return nil, err
	}

	// Close may have drained the cache between the flag check above and the
	// insert. Re-check and evict so no pool outlives a closed binder.
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		b.pools.Remove(databaseName)
		return nil, ErrBinderClosed
	}
	b.mu.Unlock()

	return pool, nil
}

// WithTenantConnection runs fn with the named tenant database bound to the
// context. The binding cannot outlive fn: it exists only in the derived
// context, so it is released on every exit path and never leaks into another
// unit of work.
func (b *Binder) WithTenantConnection(ctx context.Context, databaseName string, fn func(ctx context.Context) error) error {
	pool, err := b.Pool(ctx, databaseName)
	if err != nil {
		return err
	}
	return fn(withBinding(ctx, databaseName, pool))
}

// Acquire checks a connection out of the pool bound to ctx. The caller must
// Release it. An acquire that fails while the pool is saturated is reported
// as ErrPoolExhausted.
func Acquire(ctx context.Context) (*pgxpool.Conn, error) {
	pool, ok := PoolFromContext(ctx)
	if !ok {
		return nil, ErrNoBinding
	}

	conn, err := pool.Acquire(ctx)
	if err != nil {
		stat := pool.Stat()
		if stat.AcquiredConns() >= stat.MaxConns() {
			return nil, errors.Join(ErrPoolExhausted, err)
		}
		return nil, err
	}
	return conn, nil
}

// PoolCount reports how many per-database pools are currently open.
func (b *Binder) PoolCount() int {
	return b.pools.Len()
}

// Evict closes the pool for the named database and forgets it. Used after a
// database is dropped or its credentials rotate.
func (b *Binder) Evict(databaseName string) {
	b.pools.Remove(databaseName)
}

// Close drains all pools. Safe to call more than once.
func (b *Binder) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	b.mu.Unlock()

	b.pools.Clear()
}
