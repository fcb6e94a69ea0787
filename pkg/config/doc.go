// Package config provides a type-safe, generic and cached way to load
// configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11 to
// deliver a small API that:
//
//   - Optionally loads one or multiple .env files (falling back to the
//     default .env in the working directory).
//   - Parses the environment into any Go struct using `env` field tags.
//   - Caches each successfully loaded configuration type so it is parsed
//     once for the lifetime of the process, safely under concurrency.
//   - Exposes Must* helpers that panic on failure for configuration the
//     process cannot start without.
//
// # Usage
//
//	type SearchConfig struct {
//	    URL   string `env:"ES_URL,required"`
//	    Index string `env:"ES_INDEX,required"`
//	    Shards int   `env:"ES_SHARDS" envDefault:"5"`
//	}
//
//	cfg, err := config.Load[SearchConfig]()
//	if err != nil {
//	    // use errors.Is(err, config.ErrParsingConfig)
//	}
//
// Tests that mutate the environment between loads can call Reset to drop
// the per-type cache.
package config
