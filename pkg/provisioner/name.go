package provisioner

import (
	"fmt"
	"regexp"
)

// MaxDatabaseNameLength matches the Postgres identifier limit (NAMEDATALEN-1).
const MaxDatabaseNameLength = 63

// namePattern is a strict allow-list: letters, digits and underscores only,
// never starting with a digit. Anything else is rejected before a statement
// is constructed, which is the injection barrier for CREATE DATABASE.
var namePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// ValidateDatabaseName reports whether name is safe to use as a database
// identifier. Returns ErrInvalidDatabaseName describing the violation.
func ValidateDatabaseName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidDatabaseName)
	}
	if len(name) > MaxDatabaseNameLength {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrInvalidDatabaseName, len(name), MaxDatabaseNameLength)
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q contains characters outside [a-zA-Z0-9_]", ErrInvalidDatabaseName, name)
	}
	return nil
}
