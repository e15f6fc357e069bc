package tenant

import "errors"

var (
	// ErrMissingTenantID is returned when a request carries no tenant
	// identifier at all.
	ErrMissingTenantID = errors.New("missing tenant identifier")

	// ErrInvalidIdentifier is returned when the identifier format is invalid.
	ErrInvalidIdentifier = errors.New("invalid tenant identifier")

	// ErrTenantNotFound is returned when no routable tenant matches the
	// identifier.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrInactiveTenant is returned when trying to use an inactive tenant.
	ErrInactiveTenant = errors.New("tenant is inactive")

	// ErrProvisionFailed is returned when the tenant database could not be
	// created.
	ErrProvisionFailed = errors.New("tenant database provisioning failed")

	// ErrSchemaNotReady is returned when the tenant database schema could
	// not be brought up to date.
	ErrSchemaNotReady = errors.New("tenant database schema is not ready")

	// ErrNoTenantInContext is returned when no tenant is found in context.
	ErrNoTenantInContext = errors.New("no tenant in context")
)
