// Package registry is the durable store of tenant identity to database name
// mappings, backed by the central registry database.
//
// The registry is read-only at request time: the tenant middleware looks
// records up by identifier, and writes happen only through the explicit
// tenant-creation operation exposed by the tenant package's Service.
//
// The tenants table schema lives under migrations/registry and is applied
// with pg.Migrate.
package registry
