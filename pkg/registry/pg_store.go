package registry

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tenantkit/tenantkit/pkg/pg"
)

// DB is the narrow pgx surface the store needs. Both *pgxpool.Pool and
// pgxmock satisfy it.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PgStore is the pgx-backed tenant registry over the central database.
type PgStore struct {
	db DB
}

// NewPgStore creates a registry store over the given connection.
func NewPgStore(db DB) *PgStore {
	return &PgStore{db: db}
}

const findTenantQuery = `SELECT id, name, database_name, attributes, active, created_at
FROM tenants WHERE id::text = $1 OR name = $1 LIMIT 1`

// FindByIdentifier loads a tenant by UUID or unique name.
//
// Legacy records stored the database name inside the attributes blob; the
// value is promoted onto the typed field here, at load time, so every
// consumer sees a single authoritative field. A record with no database name
// anywhere is unroutable and reported as ErrMissingDatabaseName.
func (s *PgStore) FindByIdentifier(ctx context.Context, identifier string) (*Tenant, error) {
	var (
		t         Tenant
		dbName    *string
		attrsJSON []byte
	)

	err := s.db.QueryRow(ctx, findTenantQuery, identifier).
		Scan(&t.ID, &t.Name, &dbName, &attrsJSON, &t.Active, &t.CreatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrTenantNotFound
		}
		return nil, errors.Join(ErrStoreFailure, err)
	}

	if len(attrsJSON) > 0 {
		if err := json.Unmarshal(attrsJSON, &t.Attributes); err != nil {
			return nil, errors.Join(ErrStoreFailure, err)
		}
	}

	if dbName != nil {
		t.DatabaseName = *dbName
	}
	if t.DatabaseName == "" {
		if legacy := t.Attributes["database_name"]; legacy != "" {
			t.DatabaseName = legacy
		} else {
			return nil, ErrMissingDatabaseName
		}
	}

	return &t, nil
}

const insertTenantQuery = `INSERT INTO tenants (id, name, database_name, attributes, active, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

// Create persists a new tenant record, generating the ID and creation
// timestamp when absent. Uniqueness of name and database name is enforced by
// the registry schema; violations surface as ErrDuplicateTenant.
func (s *PgStore) Create(ctx context.Context, tenant *Tenant) error {
	if tenant.ID == uuid.Nil {
		tenant.ID = uuid.New()
	}
	if tenant.CreatedAt.IsZero() {
		tenant.CreatedAt = time.Now().UTC()
	}

	var attrsJSON []byte
	if len(tenant.Attributes) > 0 {
		var err error
		attrsJSON, err = json.Marshal(tenant.Attributes)
		if err != nil {
			return errors.Join(ErrStoreFailure, err)
		}
	}

	_, err := s.db.Exec(ctx, insertTenantQuery,
		tenant.ID, tenant.Name, tenant.DatabaseName, attrsJSON, tenant.Active, tenant.CreatedAt)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return errors.Join(ErrDuplicateTenant, err)
		}
		return errors.Join(ErrStoreFailure, err)
	}

	return nil
}
