package cassandra

import (
	"context"

	"github.com/gocql/gocql"
)

// Executor runs parameterized CQL. Values are always bound, never interpolated.
// Scan must return gocql.ErrNotFound when the statement yields no row.
type Executor interface {
	Exec(ctx context.Context, stmt string, values ...any) error
	Scan(ctx context.Context, stmt string, values []any, dest ...any) error
}

// SessionExecutor adapts a *gocql.Session to Executor.
// gocql prepares every statement that carries bind values.
type SessionExecutor struct {
	Session *gocql.Session
}

var _ Executor = SessionExecutor{}

// Exec runs a statement that returns no rows.
func (e SessionExecutor) Exec(ctx context.Context, stmt string, values ...any) error {
	return e.Session.Query(stmt, values...).WithContext(ctx).Exec()
}

// Scan reads the first row of the result into dest.
func (e SessionExecutor) Scan(ctx context.Context, stmt string, values []any, dest ...any) error {
	return e.Session.Query(stmt, values...).WithContext(ctx).Scan(dest...)
}
