package tenant

import "github.com/tenantkit/tenantkit/pkg/registry"

// Tenant is the registry record this package resolves and routes for.
type Tenant = registry.Tenant
