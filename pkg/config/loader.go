package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	mu     sync.RWMutex
	cache  = make(map[string]any)
	onces  = make(map[string]*sync.Once)
	dotenv sync.Once
)

// Load parses environment variables into a fresh value of T using the
// struct's `env` tags. Each configuration type is parsed at most once per
// process; later calls return the cached copy. The default .env file is
// loaded lazily before the first parse and is allowed to be absent.
//
// Example:
//
//	type SearchConfig struct {
//	    URL   string `env:"ES_URL,required"`
//	    Index string `env:"ES_INDEX,required"`
//	}
//
//	cfg, err := config.Load[SearchConfig]()
func Load[T any]() (T, error) {
	dotenv.Do(func() {
		// The .env file is optional; a missing file is not an error.
		_ = godotenv.Load()
	})

	var zero T
	key := typeName[T]()

	mu.RLock()
	if v, ok := cache[key]; ok {
		mu.RUnlock()
		return v.(T), nil
	}
	mu.RUnlock()

	mu.Lock()
	once, ok := onces[key]
	if !ok {
		once = new(sync.Once)
		onces[key] = once
	}
	mu.Unlock()

	var parseErr error
	once.Do(func() {
		var v T
		if err := env.Parse(&v); err != nil {
			parseErr = errors.Join(ErrParsingConfig, err)
			return
		}
		mu.Lock()
		cache[key] = v
		mu.Unlock()
	})
	if parseErr != nil {
		return zero, parseErr
	}

	mu.RLock()
	defer mu.RUnlock()
	if v, ok := cache[key]; ok {
		return v.(T), nil
	}
	// A concurrent first call failed to parse; its error was already
	// reported there.
	return zero, ErrConfigNotLoaded
}

// MustLoad works like Load but panics if parsing fails. Intended for
// configuration the process cannot start without.
func MustLoad[T any]() T {
	v, err := Load[T]()
	if err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
	return v
}

// LoadEnv loads one or more .env files into the process environment before
// any configuration is parsed. Later files override earlier ones.
func LoadEnv(paths ...string) error {
	if err := godotenv.Overload(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// MustLoadEnv works like LoadEnv but panics on failure.
func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(fmt.Sprintf("failed to load env files: %v", err))
	}
}

// Reset drops all cached configuration so the next Load parses again.
// Intended for tests that mutate the environment between loads.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	cache = make(map[string]any)
	onces = make(map[string]*sync.Once)
}

func typeName[T any]() string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return t.String()
}
