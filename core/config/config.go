package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrParsingConfig is returned when environment variables cannot be parsed into the target.
var ErrParsingConfig = errors.New("failed to parse config from environment")

var (
	loadEnvOnce sync.Once
	cacheMu     sync.Mutex
	cache       = make(map[reflect.Type]any)
)

// Load populates cfg from environment variables using env/envDefault struct tags.
// A .env file in the working directory is loaded on first use if present;
// variables already set in the process environment take precedence.
// Each configuration type is parsed once and the cached value is returned afterwards.
func Load[T any](cfg *T) error {
	loadEnvOnce.Do(func() {
		// Missing .env is the normal case outside local development
		_ = godotenv.Load()
	})

	typ := reflect.TypeFor[T]()

	cacheMu.Lock()
	defer cacheMu.Unlock()

	if cached, ok := cache[typ]; ok {
		*cfg = cached.(T)
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return errors.Join(ErrParsingConfig, fmt.Errorf("%s: %w", typ, err))
	}

	cache[typ] = *cfg
	return nil
}

// MustLoad is like Load but panics on failure. Intended for process startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// Reset drops all cached configurations so the next Load re-reads the environment.
func Reset() {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	clear(cache)
}
