package cassandra

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/gocql/gocql"

	"github.com/dmitrymomot/sessionstore/core/logger"
)

// NewCluster translates cfg into a driver configuration. Driver logs and query
// observations go to log; nil discards them.
func NewCluster(cfg Config, log *slog.Logger) (*gocql.ClusterConfig, error) {
	hosts := make([]string, 0, len(cfg.Hosts))
	for _, h := range cfg.Hosts {
		if h = strings.TrimSpace(h); h != "" {
			hosts = append(hosts, h)
		}
	}
	if len(hosts) == 0 {
		return nil, ErrNoHosts
	}

	cluster := gocql.NewCluster(hosts...)
	if cfg.Port > 0 {
		cluster.Port = cfg.Port
	}
	if cfg.Consistency != "" {
		c, err := gocql.ParseConsistencyWrapper(cfg.Consistency)
		if err != nil {
			return nil, errors.Join(ErrInvalidConsistency, err)
		}
		cluster.Consistency = c
	}
	cluster.ProtoVersion = cfg.ProtoVersion
	if cfg.Timeout > 0 {
		cluster.Timeout = cfg.Timeout
	}
	if cfg.ConnectTimeout > 0 {
		cluster.ConnectTimeout = cfg.ConnectTimeout
	}
	if cfg.Username != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: cfg.Username,
			Password: cfg.Password,
		}
	}
	cluster.DisableInitialHostLookup = cfg.DisableInitialHostLookup

	dl := newDriverLogger(log)
	cluster.Logger = dl
	cluster.QueryObserver = dl

	return cluster, nil
}

// Connect creates a driver session, retrying with exponential backoff starting
// at cfg.RetryInterval. Waiting between attempts stops when ctx is done.
func Connect(ctx context.Context, cfg Config, log *slog.Logger) (*gocql.Session, error) {
	cluster, err := NewCluster(cfg, log)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Discard()
	}

	attempts := max(cfg.RetryAttempts, 1)
	interval := cfg.RetryInterval

	var lastErr error
	for attempt := range attempts {
		s, err := cluster.CreateSession()
		if err == nil {
			return s, nil
		}
		lastErr = err
		if attempt == attempts-1 {
			break
		}

		log.WarnContext(ctx, "cassandra session not created, retrying",
			logger.Error(err),
			logger.RetryCount(attempt+1),
			logger.Duration(interval),
		)

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrConnectionFailed, ctx.Err(), lastErr)
		case <-time.After(interval):
		}
		interval *= 2
	}

	return nil, errors.Join(ErrConnectionFailed, lastErr)
}

// Healthcheck returns a function that reads the node release version, for
// readiness probes.
func Healthcheck(s *gocql.Session) func(context.Context) error {
	return func(ctx context.Context) error {
		var version string
		if err := s.Query("SELECT release_version FROM system.local").WithContext(ctx).Scan(&version); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
