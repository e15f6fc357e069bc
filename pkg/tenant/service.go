package tenant

import (
	"context"
	"errors"
	"log/slog"

	"github.com/tenantkit/tenantkit/pkg/provisioner"
	"github.com/tenantkit/tenantkit/pkg/registry"
)

// Provisioner creates physical tenant databases.
type Provisioner interface {
	EnsureDatabase(ctx context.Context, name string) error
}

// SchemaRunner brings a tenant database schema up to date and reports how
// many migrations it applied.
type SchemaRunner interface {
	EnsureSchema(ctx context.Context, databaseName string) (int, error)
}

// Service ties the registry, the provisioner and the migration runner into
// the two operations the rest of the system needs: creating a tenant that is
// immediately servable, and making an existing tenant's database ready for a
// request.
type Service struct {
	store  registry.Store
	prov   Provisioner
	runner SchemaRunner
	log    *slog.Logger
}

// NewService creates a tenant service.
func NewService(store registry.Store, prov Provisioner, runner SchemaRunner, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{store: store, prov: prov, runner: runner, log: log}
}

// Lookup resolves an identifier to a tenant record. Registry records that
// cannot be routed (no database name anywhere) are reported as not found,
// matching what a caller can do about them.
func (s *Service) Lookup(ctx context.Context, identifier string) (*Tenant, error) {
	t, err := s.store.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, registry.ErrTenantNotFound) || errors.Is(err, registry.ErrMissingDatabaseName) {
			return nil, errors.Join(ErrTenantNotFound, err)
		}
		return nil, err
	}
	return t, nil
}

// Create registers a new tenant and synchronously provisions and migrates
// its database, so the tenant is servable the moment Create returns.
// The database name is validated before anything is persisted.
func (s *Service) Create(ctx context.Context, name, databaseName string, attributes map[string]string) (*Tenant, error) {
	if err := provisioner.ValidateDatabaseName(databaseName); err != nil {
		return nil, err
	}

	t := &Tenant{
		Name:         name,
		DatabaseName: databaseName,
		Attributes:   attributes,
		Active:       true,
	}
	if err := s.store.Create(ctx, t); err != nil {
		return nil, err
	}

	if err := s.EnsureReady(ctx, t); err != nil {
		// The registry record stays: provisioning is idempotent and the
		// next request (or a retry of this call) resumes it.
		return nil, err
	}

	s.log.InfoContext(ctx, "tenant created",
		"tenant_id", t.ID, "database", t.DatabaseName)
	return t, nil
}

// EnsureReady guarantees the tenant's database exists and is schema-current.
// Idempotent and safe under concurrent first use.
func (s *Service) EnsureReady(ctx context.Context, t *Tenant) error {
	if err := s.prov.EnsureDatabase(ctx, t.DatabaseName); err != nil {
		s.log.ErrorContext(ctx, "tenant database provisioning failed",
			"tenant_id", t.ID, "database", t.DatabaseName, "error", err)
		return errors.Join(ErrProvisionFailed, err)
	}

	applied, err := s.runner.EnsureSchema(ctx, t.DatabaseName)
	if err != nil {
		s.log.ErrorContext(ctx, "tenant schema migration failed",
			"tenant_id", t.ID, "database", t.DatabaseName, "error", err)
		return errors.Join(ErrSchemaNotReady, err)
	}
	if applied > 0 {
		s.log.InfoContext(ctx, "tenant schema updated",
			"tenant_id", t.ID, "database", t.DatabaseName, "migrations_applied", applied)
	}
	return nil
}
