package provisioner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tenantkit/tenantkit/pkg/pg"
)

// DB is the narrow pgx surface the provisioner needs on the admin
// connection. Both *pgxpool.Pool and pgxmock satisfy it.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Provisioner idempotently creates physical tenant databases on a single
// database server, using an admin connection to the registry database.
type Provisioner struct {
	db  DB
	log *slog.Logger

	// ensured memoizes names already provisioned by this process. It is a
	// latency optimization only: a cold entry re-runs the idempotent path.
	ensured sync.Map
}

// New creates a Provisioner on top of the given admin connection.
func New(db DB, log *slog.Logger) *Provisioner {
	if log == nil {
		log = slog.Default()
	}
	return &Provisioner{db: db, log: log}
}

const databaseExistsQuery = `SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)`

// EnsureDatabase guarantees a physical database with the given name exists.
// Calling it any number of times, from any number of goroutines or
// processes, has the same post-condition as calling it once.
//
// Postgres has no CREATE DATABASE IF NOT EXISTS, so the existence check and
// creation can race with a concurrent provisioner; the loser's
// duplicate_database error (SQLSTATE 42P04) is treated as success.
func (p *Provisioner) EnsureDatabase(ctx context.Context, name string) error {
	if err := ValidateDatabaseName(name); err != nil {
		return err
	}

	if _, ok := p.ensured.Load(name); ok {
		return nil
	}

	var exists bool
	if err := p.db.QueryRow(ctx, databaseExistsQuery, name).Scan(&exists); err != nil {
		return errors.Join(ErrProvisionFailed, err)
	}

	if !exists {
		// The name passed allow-list validation above; quoting it as an
		// identifier is safe. CREATE DATABASE cannot take bind parameters.
		stmt := fmt.Sprintf(`CREATE DATABASE %q`, name)
		if _, err := p.db.Exec(ctx, stmt); err != nil {
			if !pg.IsDuplicateDatabaseError(err) {
				return errors.Join(ErrProvisionFailed, err)
			}
			p.log.DebugContext(ctx, "database created concurrently", "database", name)
		} else {
			p.log.InfoContext(ctx, "database created", "database", name)
		}
	}

	p.ensured.Store(name, struct{}{})
	return nil
}

// Forget evicts a name from the ensured memo, forcing the next
// EnsureDatabase call to consult the server again. Intended for operational
// tooling after a database has been dropped out of band.
func (p *Provisioner) Forget(name string) {
	p.ensured.Delete(name)
}
