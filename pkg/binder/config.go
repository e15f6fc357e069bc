package binder

import "time"

type Config struct {
	BaseConnString    string        `env:"TENANT_PG_CONN_URL,required"`                    // BaseConnString is the server connection string; the database is swapped per tenant.
	MaxPools          int           `env:"TENANT_MAX_POOLS" envDefault:"64"`               // MaxPools bounds how many per-database pools are kept open at once.
	PoolMaxConns      int32         `env:"TENANT_POOL_MAX_CONNS" envDefault:"4"`           // PoolMaxConns is the per-database pool size.
	PoolMinConns      int32         `env:"TENANT_POOL_MIN_CONNS" envDefault:"0"`           // PoolMinConns is the number of idle connections kept warm per database.
	HealthCheckPeriod time.Duration `env:"TENANT_POOL_HEALTHCHECK_PERIOD" envDefault:"1m"` // HealthCheckPeriod is the period between pool health checks.
	MaxConnIdleTime   time.Duration `env:"TENANT_POOL_MAX_CONN_IDLE_TIME" envDefault:"5m"` // MaxConnIdleTime evicts connections idle longer than this.
	MaxConnLifetime   time.Duration `env:"TENANT_POOL_MAX_CONN_LIFETIME" envDefault:"30m"` // MaxConnLifetime is the maximum lifetime of a pooled connection.
}
