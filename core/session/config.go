package session

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/sessionstore/core/logger"
)

// Config holds the store configuration. It is resolved once by NewManager and
// never mutated afterwards.
type Config struct {
	Namespace         string        `env:"SESSION_NAMESPACE" envDefault:"session"`
	Table             string        `env:"SESSION_TABLE" envDefault:"clients"`
	TTL               time.Duration `env:"SESSION_TTL" envDefault:"1h"` // store-level row TTL
	ReplicationFactor int           `env:"SESSION_REPLICATION_FACTOR" envDefault:"1"`
	BootstrapTimeout  time.Duration `env:"SESSION_BOOTSTRAP_TIMEOUT" envDefault:"30s"`
}

// DefaultConfig returns the defaults used when no options are given.
func DefaultConfig() Config {
	return Config{
		Namespace:         "session",
		Table:             "clients",
		TTL:               time.Hour,
		ReplicationFactor: 1,
		BootstrapTimeout:  30 * time.Second,
	}
}

// Validate checks names and durations.
func (c Config) Validate() error {
	if err := c.table().Validate(); err != nil {
		return err
	}
	if c.TTL < time.Second {
		return ErrInvalidTTL
	}
	if c.ReplicationFactor < 1 {
		return ErrInvalidReplicationFactor
	}
	return nil
}

// Schema returns the schema Bootstrap creates for this configuration.
func (c Config) Schema() Schema {
	return Schema{
		Table:             c.table(),
		TTL:               c.TTL,
		ReplicationFactor: c.ReplicationFactor,
	}
}

func (c Config) table() Table {
	return Table{Namespace: c.Namespace, Name: c.Table}
}

type options struct {
	cfg    Config
	logger *slog.Logger
	now    func() time.Time
}

func defaultOptions() *options {
	return &options{
		cfg:    DefaultConfig(),
		logger: logger.Discard(),
		now:    time.Now,
	}
}

// Option configures a Manager or Repository.
type Option func(*options)

// WithConfig replaces the whole configuration.
// Zero-valued fields fall back to their defaults.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		def := DefaultConfig()
		if cfg.Namespace == "" {
			cfg.Namespace = def.Namespace
		}
		if cfg.Table == "" {
			cfg.Table = def.Table
		}
		if cfg.TTL == 0 {
			cfg.TTL = def.TTL
		}
		if cfg.ReplicationFactor == 0 {
			cfg.ReplicationFactor = def.ReplicationFactor
		}
		if cfg.BootstrapTimeout == 0 {
			cfg.BootstrapTimeout = def.BootstrapTimeout
		}
		o.cfg = cfg
	}
}

// WithNamespace sets the namespace (keyspace) holding the session table.
func WithNamespace(ns string) Option {
	return func(o *options) {
		o.cfg.Namespace = ns
	}
}

// WithTable sets the session table name.
func WithTable(name string) Option {
	return func(o *options) {
		o.cfg.Table = name
	}
}

// WithTTL sets the store-level time-to-live applied to every row.
func WithTTL(ttl time.Duration) Option {
	return func(o *options) {
		o.cfg.TTL = ttl
	}
}

// WithReplicationFactor sets the replication factor used when creating the namespace.
func WithReplicationFactor(rf int) Option {
	return func(o *options) {
		o.cfg.ReplicationFactor = rf
	}
}

// WithLogger sets the diagnostic logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithClock overrides the time source used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}
