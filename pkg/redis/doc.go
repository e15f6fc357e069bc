// Package redis wraps go-redis/v9 connection setup with retry logic and a
// health check helper.
//
// The toolkit uses Redis optionally: the tenant middleware's Redis-backed
// tenant cache (tenant.NewRedisCache) shares resolved tenant records across
// processes so that each app instance does not hit the registry database for
// every first-seen identifier.
package redis
