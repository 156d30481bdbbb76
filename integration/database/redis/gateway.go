package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/sessionstore/core/logger"
	"github.com/dmitrymomot/sessionstore/core/session"
)

const defaultScanBatchSize = 1000

// Gateway stores each session as one string key with an EX expiry.
// Keys are "<prefix><namespace>:<table>:<session id>"; Redis itself plays the
// role of the store-level TTL reaper. Writes are accepted only for tables whose
// TTL is known, either from Bootstrap or from WithSchema.
type Gateway struct {
	client    redis.UniversalClient
	prefix    string
	scanBatch int64
	ttls      sync.Map // session.Table -> time.Duration
	log       *slog.Logger
}

var _ session.Gateway = (*Gateway)(nil)

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithKeyPrefix prepends prefix to every key, for sharing one database.
func WithKeyPrefix(prefix string) GatewayOption {
	return func(g *Gateway) {
		g.prefix = prefix
	}
}

// WithScanBatchSize sets the COUNT hint used when scanning keys.
func WithScanBatchSize(n int) GatewayOption {
	return func(g *Gateway) {
		if n > 0 {
			g.scanBatch = int64(n)
		}
	}
}

// WithSchema registers the table TTL up front, so writes issued before the
// background Bootstrap completes already get the configured expiry.
// Schemas with an invalid table or a TTL under one second are ignored.
func WithSchema(schema session.Schema) GatewayOption {
	return func(g *Gateway) {
		if schema.Validate() == nil && schema.TTL >= time.Second {
			g.ttls.Store(schema.Table, schema.TTL)
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) GatewayOption {
	return func(g *Gateway) {
		if l != nil {
			g.log = l
		}
	}
}

// NewGateway creates a session gateway over an existing client.
// The client is not closed by the gateway.
func NewGateway(client redis.UniversalClient, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		client:    client,
		scanBatch: defaultScanBatchSize,
		log:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewGatewayFromConfig creates a gateway using the prefix and scan batch size of cfg.
func NewGatewayFromConfig(client redis.UniversalClient, cfg Config, opts ...GatewayOption) *Gateway {
	base := []GatewayOption{
		WithKeyPrefix(cfg.KeyPrefix),
		WithScanBatchSize(cfg.ScanBatchSize),
	}
	return NewGateway(client, append(base, opts...)...)
}

// Bootstrap records the table TTL and checks connectivity.
// Redis has no schema, so the namespace exists implicitly as a key prefix.
func (g *Gateway) Bootstrap(ctx context.Context, schema session.Schema) error {
	if err := schema.Validate(); err != nil {
		return err
	}
	if schema.TTL < time.Second {
		return session.ErrInvalidTTL
	}
	if err := g.client.Ping(ctx).Err(); err != nil {
		return err
	}

	g.ttls.Store(schema.Table, schema.TTL)
	g.log.DebugContext(ctx, "redis session keyspace ready",
		logger.Namespace(g.prefix+schema.Namespace),
		logger.Table(schema.Name),
		logger.TTL(schema.TTL),
	)
	return nil
}

// Select returns the payload stored under id, or session.ErrNotFound.
func (g *Gateway) Select(ctx context.Context, t session.Table, id string) (string, error) {
	val, err := g.client.Get(ctx, g.key(t, id)).Result()
	if errors.Is(err, redis.Nil) {
		return "", session.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// Insert overwrites the key and restarts its expiry.
// It returns session.ErrTableNotFound while the table TTL is unknown.
func (g *Gateway) Insert(ctx context.Context, t session.Table, id, payload string) error {
	ttl, ok := g.ttl(t)
	if !ok {
		return fmt.Errorf("%w: %s", session.ErrTableNotFound, t)
	}
	return g.client.Set(ctx, g.key(t, id), payload, ttl).Err()
}

// Delete removes the key; a missing key is not an error.
func (g *Gateway) Delete(ctx context.Context, t session.Table, id string) error {
	return g.client.Del(ctx, g.key(t, id)).Err()
}

// Count scans the table's key space. Concurrent writes during the scan may or
// may not be counted.
func (g *Gateway) Count(ctx context.Context, t session.Table) (int64, error) {
	// SCAN may return a key more than once
	seen := make(map[string]struct{})
	err := g.scan(ctx, t, func(keys []string) error {
		for _, k := range keys {
			seen[k] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int64(len(seen)), nil
}

// Truncate deletes every key of the table in scan-sized batches.
func (g *Gateway) Truncate(ctx context.Context, t session.Table) error {
	return g.scan(ctx, t, func(keys []string) error {
		return g.client.Del(ctx, keys...).Err()
	})
}

func (g *Gateway) scan(ctx context.Context, t session.Table, fn func(keys []string) error) error {
	pattern := escapeGlob(g.tablePrefix(t)) + "*"

	var cursor uint64
	for {
		keys, next, err := g.client.Scan(ctx, cursor, pattern, g.scanBatch).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := fn(keys); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

func (g *Gateway) ttl(t session.Table) (time.Duration, bool) {
	v, ok := g.ttls.Load(t)
	if !ok {
		return 0, false
	}
	return v.(time.Duration), true
}

func (g *Gateway) tablePrefix(t session.Table) string {
	return g.prefix + t.Namespace + ":" + t.Name + ":"
}

func (g *Gateway) key(t session.Table, id string) string {
	return g.tablePrefix(t) + id
}

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

func escapeGlob(s string) string {
	return globEscaper.Replace(s)
}
