package schema

import (
	"fmt"
	"sort"
)

// Migration is one versioned schema change unit applied to a tenant
// database. Versions form a fixed total order; a migration never reapplies
// once recorded.
type Migration struct {
	Version int64
	Name    string
	UpSQL   string
}

// Source is an ordered migration set. Construct with NewSource, which
// enforces ordering invariants once so the runner never has to.
type Source struct {
	migrations []Migration
}

// NewSource builds a Source from the given migrations, sorted by version.
// Duplicate versions, non-positive versions, and empty SQL are construction
// errors: a malformed set should fail at startup, not at request time.
func NewSource(migrations ...Migration) (*Source, error) {
	sorted := make([]Migration, len(migrations))
	copy(sorted, migrations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Version < sorted[j].Version })

	seen := make(map[int64]string, len(sorted))
	for _, m := range sorted {
		if m.Version <= 0 {
			return nil, fmt.Errorf("schema: migration %q has non-positive version %d", m.Name, m.Version)
		}
		if prev, ok := seen[m.Version]; ok {
			return nil, fmt.Errorf("schema: duplicate version %d (%q and %q)", m.Version, prev, m.Name)
		}
		if m.UpSQL == "" {
			return nil, fmt.Errorf("schema: migration %d %q has empty SQL", m.Version, m.Name)
		}
		seen[m.Version] = m.Name
	}

	return &Source{migrations: sorted}, nil
}

// MustSource is like NewSource but panics on error. Intended for package-level
// migration sets that are fixed at compile time.
func MustSource(migrations ...Migration) *Source {
	s, err := NewSource(migrations...)
	if err != nil {
		panic(err)
	}
	return s
}

// Migrations returns the ordered migration set.
func (s *Source) Migrations() []Migration {
	return s.migrations
}
