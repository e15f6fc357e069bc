package provisioner

import "errors"

var (
	// ErrInvalidDatabaseName is returned when a database name fails
	// allow-list validation. No statement is ever built from such a name.
	ErrInvalidDatabaseName = errors.New("invalid database name")

	// ErrProvisionFailed wraps storage errors from database creation.
	ErrProvisionFailed = errors.New("failed to provision database")
)
