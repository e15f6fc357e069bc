// Package admin exposes the management HTTP surface: tenant registration and
// inspection. It sits outside the tenant resolution middleware, talking to
// the central registry rather than to any tenant database.
package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tenantkit/tenantkit/pkg/requestid"
)

type Mountable interface {
	Handle() http.Handler
}

// RouterOptions configures which services to mount in the admin module.
// Each service is optional and will only be mounted if provided.
type RouterOptions struct {
	Tenants Mountable
}

// Router creates a new admin module router with configurable services.
//
// Example:
//
//	tenantsSvc := admin.NewTenantService(svc, log)
//
//	r := chi.NewRouter()
//	r.Mount("/admin", admin.Router(admin.RouterOptions{
//	    Tenants: tenantsSvc,
//	}))
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)

	if opts.Tenants != nil {
		r.Mount("/tenants", opts.Tenants.Handle())
	}

	return r
}
