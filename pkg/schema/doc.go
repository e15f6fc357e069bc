// Package schema applies versioned, ordered migrations to per-tenant
// databases.
//
// Unlike the registry database, whose schema is managed by goose
// (pg.Migrate), tenant schemas are migrated by an explicit runner: each
// tenant database carries its own schema_migrations tracking table, every
// migration runs in its own transaction under a per-database advisory lock,
// and a version is recorded atomically with its application. This makes
// EnsureSchema idempotent, safe under concurrent first use of a new tenant,
// and safe to retry after a partial failure.
//
//	source := schema.MustSource(
//	    schema.Migration{Version: 1, Name: "create_products", UpSQL: `CREATE TABLE products (...)`},
//	    schema.Migration{Version: 2, Name: "add_sku", UpSQL: `ALTER TABLE products ADD COLUMN sku TEXT`},
//	)
//	connect := func(ctx context.Context, name string) (schema.DB, error) {
//	    return pools.Pool(ctx, name) // pools is a *binder.Binder
//	}
//	runner := schema.NewRunner(source, connect, log)
//	applied, err := runner.EnsureSchema(ctx, "tenant_acme")
package schema
