package cassandra

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gocql/gocql"

	"github.com/dmitrymomot/sessionstore/core/logger"
	"github.com/dmitrymomot/sessionstore/core/session"
)

// Gateway runs the session table operations as CQL statements.
// Rows live in "<keyspace>.<table>" with the table-level default_time_to_live
// acting as the store-level reaper.
type Gateway struct {
	exec Executor
	log  *slog.Logger
}

var _ session.Gateway = (*Gateway)(nil)

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) GatewayOption {
	return func(g *Gateway) {
		if l != nil {
			g.log = l
		}
	}
}

// NewGateway creates a gateway over an open session. The session is not closed
// by the gateway.
func NewGateway(s *gocql.Session, opts ...GatewayOption) *Gateway {
	return NewGatewayWithExecutor(SessionExecutor{Session: s}, opts...)
}

// NewGatewayWithExecutor creates a gateway over any Executor.
func NewGatewayWithExecutor(exec Executor, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		exec: exec,
		log:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Bootstrap creates the keyspace and the table if they do not exist.
// Existing objects are left untouched, including a table whose TTL differs.
func (g *Gateway) Bootstrap(ctx context.Context, schema session.Schema) error {
	if err := schema.Validate(); err != nil {
		return err
	}
	if schema.TTL < time.Second {
		return session.ErrInvalidTTL
	}
	rf := max(schema.ReplicationFactor, 1)

	start := time.Now()
	if err := g.exec.Exec(ctx, createKeyspaceStmt(schema.Namespace, rf)); err != nil {
		return err
	}
	if err := g.exec.Exec(ctx, createTableStmt(schema.Table, schema.TTLSeconds())); err != nil {
		return err
	}

	g.log.DebugContext(ctx, "cassandra session table ready",
		logger.Namespace(schema.Namespace),
		logger.Table(schema.Name),
		logger.TTL(schema.TTL),
		logger.Elapsed(start),
	)
	return nil
}

// Select returns the payload of the row keyed by id, or session.ErrNotFound.
func (g *Gateway) Select(ctx context.Context, t session.Table, id string) (string, error) {
	var payload string
	err := g.exec.Scan(ctx, selectStmt(t), []any{id}, &payload)
	if errors.Is(err, gocql.ErrNotFound) {
		return "", session.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return payload, nil
}

// Insert writes the row. CQL inserts are upserts, so an existing row is
// replaced and its TTL restarts.
func (g *Gateway) Insert(ctx context.Context, t session.Table, id, payload string) error {
	return g.exec.Exec(ctx, insertStmt(t), id, payload)
}

// Delete removes the row keyed by id.
func (g *Gateway) Delete(ctx context.Context, t session.Table, id string) error {
	return g.exec.Exec(ctx, deleteStmt(t), id)
}

// Count runs a full-table COUNT(*). Cost grows with the table size.
func (g *Gateway) Count(ctx context.Context, t session.Table) (int64, error) {
	var n int64
	if err := g.exec.Scan(ctx, countStmt(t), nil, &n); err != nil {
		return 0, err
	}
	return n, nil
}

// Truncate removes every row of the table.
func (g *Gateway) Truncate(ctx context.Context, t session.Table) error {
	return g.exec.Exec(ctx, truncateStmt(t))
}
