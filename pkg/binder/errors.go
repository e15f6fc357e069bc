package binder

import "errors"

var (
	// ErrFailedToParseBaseConfig is returned when the base connection string
	// cannot be parsed.
	ErrFailedToParseBaseConfig = errors.New("failed to parse base connection config")

	// ErrPoolExhausted is returned when a connection cannot be acquired
	// because the tenant's pool is at capacity.
	ErrPoolExhausted = errors.New("tenant connection pool exhausted")

	// ErrNoBinding is returned when no tenant database is bound to the
	// current context.
	ErrNoBinding = errors.New("no tenant database bound to context")

	// ErrBinderClosed is returned when the binder has been closed.
	ErrBinderClosed = errors.New("binder is closed")
)
