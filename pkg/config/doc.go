// Package config loads typed application configuration from environment
// variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11: the
// default .env file is loaded once per process (missing files are fine), then
// environment variables are parsed into any annotated struct. Each
// configuration type is parsed at most once and cached for the process
// lifetime, so packages can call Load for their own config without
// coordinating.
//
//	type Config struct {
//	    RegistryURL string `env:"TENANT_REGISTRY_URL,required"`
//	    PoolSize    int32  `env:"TENANT_POOL_SIZE" envDefault:"4"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//	    // handle error
//	}
//
// MustLoad panics on failure for configuration the process cannot start
// without.
package config
