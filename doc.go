// Package tenantkit is a toolkit for building multi-tenant Go services where
// every tenant gets its own PostgreSQL database, created and migrated on
// demand.
//
// The moving parts, each in its own package under pkg/:
//
//   - registry: the central tenant directory. Maps an external identifier
//     (UUID or slug) to a tenant record carrying the physical database name.
//
//   - provisioner: creates tenant databases idempotently. Concurrent and
//     repeated calls for the same database converge on one CREATE DATABASE.
//
//   - schema: an embedded, versioned migration runner for tenant databases.
//     Safe under concurrent first use across processes via advisory locks.
//
//   - binder: a bounded LRU of per-tenant connection pools plus the
//     context-scoped binding that request handlers read their pool from.
//
//   - tenant: the HTTP middleware tying it together. Resolves the tenant
//     from the request, looks it up (with caching), makes its database ready
//     and binds the connection for downstream handlers.
//
// modules/admin exposes the management API for onboarding tenants, and
// pkg/httpserver runs the whole thing with graceful shutdown.
//
// See pkg/tenant for a complete wiring example.
package tenantkit
