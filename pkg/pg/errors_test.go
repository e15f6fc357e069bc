package pg_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/tenantkit/tenantkit/pkg/pg"
)

func TestErrorClassifiers(t *testing.T) {
	t.Parallel()

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		assert.True(t, pg.IsNotFoundError(pgx.ErrNoRows))
		assert.True(t, pg.IsNotFoundError(fmt.Errorf("query: %w", pgx.ErrNoRows)))
		assert.False(t, pg.IsNotFoundError(errors.New("other")))
		assert.False(t, pg.IsNotFoundError(nil))
	})

	t.Run("duplicate key", func(t *testing.T) {
		t.Parallel()

		dup := &pgconn.PgError{Code: "23505"}
		assert.True(t, pg.IsDuplicateKeyError(dup))
		assert.True(t, pg.IsDuplicateKeyError(fmt.Errorf("insert: %w", dup)))
		assert.False(t, pg.IsDuplicateKeyError(&pgconn.PgError{Code: "23503"}))
		assert.False(t, pg.IsDuplicateKeyError(nil))
	})

	t.Run("duplicate database", func(t *testing.T) {
		t.Parallel()

		dup := &pgconn.PgError{Code: "42P04"}
		assert.True(t, pg.IsDuplicateDatabaseError(dup))
		assert.True(t, pg.IsDuplicateDatabaseError(fmt.Errorf("create database: %w", dup)))
		assert.False(t, pg.IsDuplicateDatabaseError(&pgconn.PgError{Code: "42P01"}))
	})

	t.Run("invalid catalog name", func(t *testing.T) {
		t.Parallel()

		missing := &pgconn.PgError{Code: "3D000"}
		assert.True(t, pg.IsInvalidCatalogNameError(missing))
		assert.False(t, pg.IsInvalidCatalogNameError(&pgconn.PgError{Code: "42P04"}))
		assert.False(t, pg.IsInvalidCatalogNameError(nil))
	})
}
