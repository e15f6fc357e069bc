package registry

import "errors"

var (
	// ErrTenantNotFound is returned when no tenant matches the identifier.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrMissingDatabaseName is returned when a tenant record carries no
	// database name anywhere, so no database can be routed to.
	ErrMissingDatabaseName = errors.New("tenant record has no database name")

	// ErrDuplicateTenant is returned when a tenant with the same name or
	// database name already exists.
	ErrDuplicateTenant = errors.New("tenant already exists")

	// ErrStoreFailure wraps unexpected storage errors.
	ErrStoreFailure = errors.New("tenant store failure")
)
