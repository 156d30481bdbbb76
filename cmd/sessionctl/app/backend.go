package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/sessionstore/core/config"
	"github.com/dmitrymomot/sessionstore/core/health"
	"github.com/dmitrymomot/sessionstore/core/session"
	"github.com/dmitrymomot/sessionstore/integration/database/cassandra"
	"github.com/dmitrymomot/sessionstore/integration/database/redis"
)

// Supported storage backends.
const (
	BackendCassandra = "cassandra"
	BackendRedis     = "redis"
	BackendMemory    = "memory"
)

// ErrUnknownBackend is returned for a --backend value outside the supported set.
var ErrUnknownBackend = errors.New("unknown storage backend")

// backend is an opened storage connection.
type backend struct {
	gateway session.Gateway
	check   health.Check
	close   func() error
}

// openFunc opens a backend. schema is the table the caller is about to use;
// backends that need the table TTL before bootstrap register it.
type openFunc func(ctx context.Context, name string, schema session.Schema, log *slog.Logger) (*backend, error)

func openBackend(ctx context.Context, name string, schema session.Schema, log *slog.Logger) (*backend, error) {
	switch name {
	case BackendCassandra:
		var cfg cassandra.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		s, err := cassandra.Connect(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		return &backend{
			gateway: cassandra.NewGateway(s, cassandra.WithLogger(log)),
			check:   health.NewCheck(BackendCassandra, cassandra.Healthcheck(s)),
			close: func() error {
				s.Close()
				return nil
			},
		}, nil

	case BackendRedis:
		var cfg redis.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		client, err := redis.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &backend{
			gateway: redis.NewGatewayFromConfig(client, cfg, redis.WithSchema(schema), redis.WithLogger(log)),
			check:   health.NewCheck(BackendRedis, redis.Healthcheck(client)),
			close:   client.Close,
		}, nil

	case BackendMemory:
		// Lives as long as the process; useful for dry runs.
		return memoryBackend(session.NewMemoryGateway()), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}

func memoryBackend(gw *session.MemoryGateway) *backend {
	return &backend{
		gateway: gw,
		check:   health.Check{Name: BackendMemory},
		close:   func() error { return nil },
	}
}
