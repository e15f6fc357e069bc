package registry

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Tenant is the registry record mapping a tenant identity to its dedicated
// database. DatabaseName is the single source of truth for routing; it is
// always populated on records returned by a Store (legacy records that carry
// the name only in the attributes blob are promoted at load time).
type Tenant struct {
	ID           uuid.UUID         `json:"id"`
	Name         string            `json:"name"`
	DatabaseName string            `json:"database_name"`
	Attributes   map[string]string `json:"attributes,omitempty"`
	Active       bool              `json:"active"`
	CreatedAt    time.Time         `json:"created_at"`
}

// Store is the durable tenant registry backed by the central database.
// Request-time access is read-only; writes happen only through the explicit
// tenant-creation operation.
type Store interface {
	// FindByIdentifier retrieves a tenant by any unique identifier: the
	// tenant UUID or the unique tenant name.
	// Returns ErrTenantNotFound if no tenant matches.
	FindByIdentifier(ctx context.Context, identifier string) (*Tenant, error)

	// Create persists a new tenant record. The caller is responsible for
	// validating DatabaseName before handing the record over.
	Create(ctx context.Context, tenant *Tenant) error
}
