// tenantd is the reference server composition: the admin API for onboarding
// tenants plus a tenant-scoped surface behind the resolution middleware,
// served with graceful shutdown. Applications embedding the toolkit follow
// the same wiring with their own routes and migration set.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/tenantkit/tenantkit/modules/admin"
	"github.com/tenantkit/tenantkit/pkg/binder"
	"github.com/tenantkit/tenantkit/pkg/config"
	"github.com/tenantkit/tenantkit/pkg/httpserver"
	"github.com/tenantkit/tenantkit/pkg/logger"
	"github.com/tenantkit/tenantkit/pkg/pg"
	"github.com/tenantkit/tenantkit/pkg/provisioner"
	"github.com/tenantkit/tenantkit/pkg/redis"
	"github.com/tenantkit/tenantkit/pkg/registry"
	"github.com/tenantkit/tenantkit/pkg/requestid"
	"github.com/tenantkit/tenantkit/pkg/schema"
	"github.com/tenantkit/tenantkit/pkg/tenant"
)

type appConfig struct {
	PG     pg.Config
	Binder binder.Config
	HTTP   httpserver.Config
	Redis  redis.Config

	// RedisCache switches the tenant cache from in-process memory to Redis,
	// for fleets where every instance should share resolution results.
	RedisCache bool `env:"TENANT_CACHE_REDIS" envDefault:"false"`
}

// tenantMigrations is the reference per-tenant schema. Real applications
// replace this with their own migration set; versions are append-only.
var tenantMigrations = schema.MustSource(
	schema.Migration{
		Version: 1,
		Name:    "create_items",
		UpSQL: `CREATE TABLE items (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	},
)

func main() {
	ctx := context.Background()

	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithProduction("tenantd"),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			tenant.LoggerExtractor(),
		),
	)
	logger.SetAsDefault(log)

	registryPool, err := pg.Connect(ctx, cfg.PG)
	if err != nil {
		log.ErrorContext(ctx, "connecting to registry database", logger.Error(err))
		os.Exit(1)
	}
	defer registryPool.Close()

	if err := pg.Migrate(ctx, registryPool, cfg.PG, log); err != nil {
		log.ErrorContext(ctx, "migrating registry schema", logger.Error(err))
		os.Exit(1)
	}

	pools, err := binder.New(cfg.Binder, log)
	if err != nil {
		log.ErrorContext(ctx, "configuring tenant pools", logger.Error(err))
		os.Exit(1)
	}

	store := registry.NewPgStore(registryPool)
	prov := provisioner.New(registryPool, log)
	runner := schema.NewRunner(tenantMigrations, func(ctx context.Context, name string) (schema.DB, error) {
		return pools.Pool(ctx, name)
	}, log)
	svc := tenant.NewService(store, prov, runner, log)

	middlewareOpts := []tenant.Option{tenant.WithLogger(log)}
	readiness := []func(context.Context) error{pg.Healthcheck(registryPool)}

	if cfg.RedisCache {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			log.ErrorContext(ctx, "connecting to redis", logger.Error(err))
			os.Exit(1)
		}
		defer client.Close()
		middlewareOpts = append(middlewareOpts, tenant.WithCache(tenant.NewRedisCache(client, "", log)))
		readiness = append(readiness, redis.Healthcheck(client))
	}

	r := chi.NewRouter()
	r.Get("/healthz", httpserver.HealthCheckHandler(ctx, log))
	r.Get("/readyz", httpserver.HealthCheckHandler(ctx, log, readiness...))
	r.Mount("/admin", admin.Router(admin.RouterOptions{
		Tenants: admin.NewTenantService(svc, log),
	}))
	r.Group(func(r chi.Router) {
		r.Use(requestid.Middleware)
		r.Use(tenant.Middleware(tenant.NewHeaderResolver(""), svc, pools, middlewareOpts...))
		r.Get("/whoami", whoami)
	})

	srv := httpserver.NewFromConfig(cfg.HTTP,
		httpserver.WithLogger(log),
		httpserver.WithStartHook(func(l *slog.Logger) {
			l.Info("listening", "addr", cfg.HTTP.Addr)
		}),
		httpserver.WithStopHook(func(l *slog.Logger) {
			pools.Close()
			l.Info("tenant pools drained")
		}),
	)

	if err := srv.Run(ctx, r); err != nil {
		log.ErrorContext(ctx, "server stopped", logger.Error(err))
		os.Exit(1)
	}
}

// whoami reports which tenant and database the request was routed to.
func whoami(w http.ResponseWriter, r *http.Request) {
	t := tenant.MustFromContext(r.Context())
	database, _ := binder.DatabaseFromContext(r.Context())

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"tenant_id": t.ID.String(),
		"name":      t.Name,
		"database":  database,
	})
}
