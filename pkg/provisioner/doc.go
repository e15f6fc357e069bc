// Package provisioner idempotently creates physical per-tenant databases.
//
// Database names pass a strict allow-list ([a-zA-Z0-9_], not starting with a
// digit, at most 63 bytes) before any statement is constructed; everything
// else is rejected with ErrInvalidDatabaseName. Creation tolerates the
// duplicate_database race so that many requests hitting a brand-new tenant
// simultaneously all converge on one database with no caller seeing an
// error.
//
// Provisioned names are memoized per process so long-lived tenants do not
// pay an existence-check round trip on every request. Correctness never
// depends on the memo.
package provisioner
