package binder

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// contextKey is a private type to prevent collisions with other context keys.
type contextKey struct{}

// binding ties a tenant database name to its pool for the scope of one unit
// of work. It travels only through the context; there is no process-wide
// current-database state.
type binding struct {
	databaseName string
	pool         *pgxpool.Pool
}

func withBinding(ctx context.Context, databaseName string, pool *pgxpool.Pool) context.Context {
	return context.WithValue(ctx, contextKey{}, &binding{databaseName: databaseName, pool: pool})
}

// PoolFromContext returns the pool bound to the current unit of work.
func PoolFromContext(ctx context.Context) (*pgxpool.Pool, bool) {
	b, ok := ctx.Value(contextKey{}).(*binding)
	if !ok || b == nil {
		return nil, false
	}
	return b.pool, true
}

// DatabaseFromContext returns the tenant database name bound to the current
// unit of work. Useful for logging.
func DatabaseFromContext(ctx context.Context) (string, bool) {
	b, ok := ctx.Value(contextKey{}).(*binding)
	if !ok || b == nil {
		return "", false
	}
	return b.databaseName, true
}

// MustPool returns the bound pool or panics. Use only in handlers that
// cannot run without a tenant binding (i.e. behind the tenant middleware).
func MustPool(ctx context.Context) *pgxpool.Pool {
	pool, ok := PoolFromContext(ctx)
	if !ok {
		panic("binder: no tenant database bound to context")
	}
	return pool
}
