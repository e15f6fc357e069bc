// Package pg provides PostgreSQL plumbing for the tenant registry database:
// pooled connectivity via pgx/v5, goose-based schema migrations, health
// checks, and error classification helpers.
//
// The registry database is the single always-available database holding the
// tenants table. Per-tenant databases are NOT managed here (the provisioner
// package creates them and the schema package migrates them), but the error
// classifiers in this package (IsDuplicateDatabaseError,
// IsInvalidCatalogNameError, IsDuplicateKeyError) encode the SQLSTATE
// knowledge those packages depend on for their idempotence guarantees.
//
// # Usage
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, slog.Default()); err != nil {
//	    return err
//	}
//
// Configuration comes from environment variables; see the field tags on
// Config for names and defaults.
package pg
