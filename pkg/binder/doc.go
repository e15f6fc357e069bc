// Package binder scopes database connections to tenant units of work.
//
// Each tenant database gets its own bounded pgx pool, created on first use
// and kept in an LRU registry so the active tenant working set stays warm
// while idle tenants' pools are eventually closed. The binding between a
// request and its tenant database is a context value, never a global:
// concurrent requests for different tenants each see only their own pool.
//
//	err := b.WithTenantConnection(ctx, tenant.DatabaseName, func(ctx context.Context) error {
//	    pool := binder.MustPool(ctx)
//	    _, err := pool.Exec(ctx, `INSERT INTO products (name) VALUES ($1)`, name)
//	    return err
//	})
//
// Downstream code reached through the tenant middleware uses
// binder.PoolFromContext (or binder.Acquire for an explicit checkout) and by
// construction cannot address any database other than the one bound for its
// request.
package binder
