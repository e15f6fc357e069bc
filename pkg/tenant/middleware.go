package tenant

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// ConnectionBinder scopes a unit of work to a tenant database.
type ConnectionBinder interface {
	WithTenantConnection(ctx context.Context, databaseName string, fn func(ctx context.Context) error) error
}

// Middleware creates HTTP middleware that drives the per-request pipeline:
// resolve the tenant identifier, look the tenant up, make sure its database
// exists and is schema-current, bind the database connection to the request
// context, and hand off to the next handler.
//
// Every failure terminates the pipeline before any binding is exposed
// downstream: a missing identifier is a client error, an unknown tenant
// causes no provisioning side effects, and provisioning or migration
// failures abort the request. No step is retried within a request; the
// whole pipeline is idempotent, so the client retrying the request is the
// retry mechanism.
func Middleware(resolver Resolver, service *Service, connections ConnectionBinder, opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{
		cache:         NewMemoryCache(),
		cacheTTL:      5 * time.Minute,
		errorHandler:  defaultErrorHandler,
		requireActive: true,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, skip := range cfg.skipPaths {
				if strings.HasPrefix(r.URL.Path, skip) {
					next.ServeHTTP(w, r)
					return
				}
			}

			identifier, err := resolver(r)
			if err != nil {
				cfg.errorHandler(w, r, err)
				return
			}
			if identifier == "" {
				cfg.errorHandler(w, r, ErrMissingTenantID)
				return
			}

			t, cached := cfg.cache.Get(r.Context(), identifier)
			if !cached {
				t, err = service.Lookup(r.Context(), identifier)
				if err != nil {
					cfg.errorHandler(w, r, err)
					return
				}
				cfg.cache.Set(r.Context(), identifier, t, cfg.cacheTTL)
			}

			if cfg.requireActive && !t.Active {
				cfg.errorHandler(w, r, ErrInactiveTenant)
				return
			}

			if err := service.EnsureReady(r.Context(), t); err != nil {
				// A stale cache entry may point at a tenant whose record
				// changed; drop it so the next request re-resolves.
				cfg.cache.Delete(r.Context(), identifier)
				cfg.errorHandler(w, r, err)
				return
			}

			err = connections.WithTenantConnection(r.Context(), t.DatabaseName, func(ctx context.Context) error {
				next.ServeHTTP(w, r.WithContext(WithTenant(ctx, t)))
				return nil
			})
			if err != nil {
				cfg.logger.ErrorContext(r.Context(), "tenant connection binding failed",
					"tenant_id", t.ID, "database", t.DatabaseName, "error", err)
				cfg.errorHandler(w, r, err)
			}
		})
	}
}

// RequireTenant creates middleware that ensures a tenant is present in the
// context. Useful for routes mounted behind optional tenant resolution.
func RequireTenant(errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = defaultErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t, ok := FromContext(r.Context())
			if !ok || t == nil {
				errorHandler(w, r, ErrNoTenantInContext)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
