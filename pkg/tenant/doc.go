// Package tenant resolves inbound requests to tenants and routes each
// request to its own dedicated database.
//
// The pipeline per request is: extract the tenant identifier (header,
// subdomain or path), look the tenant up in the registry, idempotently
// create its database if this is the tenant's first use, apply any pending
// schema migrations, bind a pooled connection for the tenant database to the
// request context, and hand off to business logic. Concurrent first-use by
// many requests for the same new tenant converges on one database with every
// migration applied exactly once.
//
// # Wiring
//
//	store := registry.NewPgStore(registryPool)
//	prov := provisioner.New(registryPool, log)
//	b, _ := binder.New(binderCfg, log)
//	runner := schema.NewRunner(migrations, func(ctx context.Context, name string) (schema.DB, error) {
//	    return b.Pool(ctx, name)
//	}, log)
//
//	svc := tenant.NewService(store, prov, runner, log)
//	mw := tenant.Middleware(tenant.NewHeaderResolver(""), svc, b)
//
//	r := chi.NewRouter()
//	r.Use(mw)
//	r.Get("/products", listProducts) // uses binder.PoolFromContext
//
// Handlers behind the middleware read the tenant with tenant.FromContext
// and the bound database with binder.PoolFromContext; they cannot address
// any other tenant's database.
//
// # Tenant creation
//
// Service.Create persists the registry record and synchronously provisions
// and migrates the database, so a newly created tenant is servable
// immediately:
//
//	t, err := svc.Create(ctx, "acme", "tenant_acme", nil)
//
// # Caching
//
// Resolved tenants are cached (in-memory by default, Redis-backed via
// NewRedisCache for multi-instance fleets). Database existence and schema
// currency are memoized separately by the provisioner and the runner; all
// caches are latency optimizations whose misses simply re-run idempotent
// paths.
package tenant
