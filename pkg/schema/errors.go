package schema

import (
	"errors"
	"fmt"
)

// ErrSchemaFailure wraps infrastructure errors around the migration run
// itself: connecting, creating the tracking table, reading applied versions.
var ErrSchemaFailure = errors.New("schema migration run failed")

// MigrationError reports a failed migration with enough detail to identify
// it. The database is left with every earlier migration applied and this one
// unrecorded, so the run is safe to retry.
type MigrationError struct {
	Version int64
	Name    string
	Err     error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("schema: migration %d %q failed: %v", e.Version, e.Name, e.Err)
}

func (e *MigrationError) Unwrap() error {
	return e.Err
}
