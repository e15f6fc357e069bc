package schema

import (
	"context"
	"errors"
	"hash/fnv"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tenantkit/tenantkit/pkg/pg"
)

// DB is the per-database connection surface the runner needs. Both
// *pgxpool.Pool and pgxmock satisfy it.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Connector resolves a connection to a named tenant database. In production
// this is backed by the binder's pool manager.
type Connector func(ctx context.Context, databaseName string) (DB, error)

// Runner applies an ordered migration set to tenant databases, tracking
// applied versions in a schema_migrations table inside each tenant database
// so every tenant's migration state is self-contained.
type Runner struct {
	source  *Source
	connect Connector
	log     *slog.Logger

	// current memoizes databases this process has already brought fully
	// up to date. Latency optimization only: a cold entry re-runs the
	// idempotent path. Set only after a complete successful run.
	current sync.Map
}

// NewRunner creates a Runner for the given migration source.
func NewRunner(source *Source, connect Connector, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{source: source, connect: connect, log: log}
}

const createTrackingTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version BIGINT PRIMARY KEY,
	name TEXT NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const (
	selectAppliedVersions = `SELECT version FROM schema_migrations`
	versionAppliedQuery   = `SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`
	insertMigrationRecord = `INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`
	advisoryXactLock      = `SELECT pg_advisory_xact_lock($1)`
)

// EnsureSchema brings the named tenant database up to the latest migration
// version and returns how many migrations this call applied.
//
// Each pending migration runs in its own transaction that first takes a
// transaction-scoped advisory lock derived from the database name, then
// re-checks the tracking table, applies the change, and records it. The lock
// serializes concurrent runs per database; the re-check plus the primary key
// on the record table make the scheme converge even across processes that
// cannot see each other's locks. A failed migration stops the run with the
// earlier migrations applied and the failing one unrecorded, so retrying the
// request resumes exactly where it stopped.
func (r *Runner) EnsureSchema(ctx context.Context, databaseName string) (int, error) {
	if _, ok := r.current.Load(databaseName); ok {
		return 0, nil
	}

	db, err := r.connect(ctx, databaseName)
	if err != nil {
		return 0, errors.Join(ErrSchemaFailure, err)
	}

	if err := r.ensureTrackingTable(ctx, db, databaseName); err != nil {
		return 0, err
	}

	applied, err := r.appliedVersions(ctx, db)
	if err != nil {
		return 0, err
	}

	var count int
	for _, m := range r.source.Migrations() {
		if applied[m.Version] {
			continue
		}

		did, err := r.applyOne(ctx, db, databaseName, m)
		if err != nil {
			return count, err
		}
		if did {
			count++
			r.log.InfoContext(ctx, "migration applied",
				"database", databaseName, "migration_version", m.Version, "migration_name", m.Name)
		}
	}

	r.current.Store(databaseName, struct{}{})
	return count, nil
}

// Forget evicts a database from the up-to-date memo, forcing the next
// EnsureSchema call to consult the tracking table again.
func (r *Runner) Forget(databaseName string) {
	r.current.Delete(databaseName)
}

// ensureTrackingTable creates schema_migrations under the advisory lock.
// CREATE TABLE IF NOT EXISTS is not fully race-free in Postgres (concurrent
// creators can collide on catalog rows), so creation is serialized the same
// way migrations are.
func (r *Runner) ensureTrackingTable(ctx context.Context, db DB, databaseName string) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return errors.Join(ErrSchemaFailure, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, advisoryXactLock, lockKey(databaseName)); err != nil {
		return errors.Join(ErrSchemaFailure, err)
	}
	if _, err := tx.Exec(ctx, createTrackingTable); err != nil {
		return errors.Join(ErrSchemaFailure, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return errors.Join(ErrSchemaFailure, err)
	}
	return nil
}

func (r *Runner) appliedVersions(ctx context.Context, db DB) (map[int64]bool, error) {
	rows, err := db.Query(ctx, selectAppliedVersions)
	if err != nil {
		return nil, errors.Join(ErrSchemaFailure, err)
	}
	defer rows.Close()

	applied := make(map[int64]bool)
	for rows.Next() {
		var version int64
		if err := rows.Scan(&version); err != nil {
			return nil, errors.Join(ErrSchemaFailure, err)
		}
		applied[version] = true
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrSchemaFailure, err)
	}
	return applied, nil
}

// applyOne applies a single migration in its own transaction and reports
// whether this call actually applied it (false when a concurrent applier
// won).
func (r *Runner) applyOne(ctx context.Context, db DB, databaseName string, m Migration) (bool, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return false, errors.Join(ErrSchemaFailure, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, advisoryXactLock, lockKey(databaseName)); err != nil {
		return false, errors.Join(ErrSchemaFailure, err)
	}

	// Re-check under the lock: another applier may have finished this
	// version while we waited.
	var exists bool
	if err := tx.QueryRow(ctx, versionAppliedQuery, m.Version).Scan(&exists); err != nil {
		return false, errors.Join(ErrSchemaFailure, err)
	}
	if exists {
		return false, tx.Rollback(ctx)
	}

	if _, err := tx.Exec(ctx, m.UpSQL); err != nil {
		return false, &MigrationError{Version: m.Version, Name: m.Name, Err: err}
	}

	if _, err := tx.Exec(ctx, insertMigrationRecord, m.Version, m.Name); err != nil {
		// A concurrent applier recorded this version first (possible when
		// advisory locks are unavailable, e.g. against a pooler). Their
		// transaction won; ours rolls back and the outcome is identical.
		if pg.IsDuplicateKeyError(err) {
			return false, tx.Rollback(ctx)
		}
		return false, &MigrationError{Version: m.Version, Name: m.Name, Err: err}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, &MigrationError{Version: m.Version, Name: m.Name, Err: err}
	}
	return true, nil
}

// lockKey derives the advisory lock key for a database name. FNV-1a keeps it
// stable across processes without any coordination table.
func lockKey(databaseName string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("tenantkit:migrate:"))
	_, _ = h.Write([]byte(databaseName))
	return int64(h.Sum64())
}
