// Package config loads application configuration from environment variables
// into tagged structs, with optional .env files.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11. Each
// config type is parsed once per process and cached; ResetCache and
// ForceReloadConfig exist for tests that mutate the environment.
//
//	type RedisConfig struct {
//		ConnectionURL string `env:"REDIS_URL,required"`
//	}
//
//	var cfg RedisConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
// Sentinel errors (ErrParsingConfig, ErrLoadingEnv, ErrNilPointer,
// ErrConfigNotLoaded) compare with errors.Is.
package config
