package cassandra_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionstore/core/session"
	"github.com/dmitrymomot/sessionstore/integration/database/cassandra"
)

var table = session.Table{Namespace: "session", Name: "clients"}

type execCall struct {
	stmt   string
	values []any
}

// fakeExecutor keeps rows in memory and records every statement.
type fakeExecutor struct {
	mu    sync.Mutex
	calls []execCall
	rows  map[string]string
	err   error
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{rows: make(map[string]string)}
}

func (f *fakeExecutor) Exec(_ context.Context, stmt string, values ...any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, execCall{stmt: stmt, values: values})
	if f.err != nil {
		return f.err
	}

	switch stmt {
	case "INSERT INTO session.clients (sid, session) VALUES (?, ?)":
		f.rows[values[0].(string)] = values[1].(string)
	case "DELETE FROM session.clients WHERE sid = ?":
		delete(f.rows, values[0].(string))
	case "TRUNCATE session.clients":
		clear(f.rows)
	}
	return nil
}

func (f *fakeExecutor) Scan(_ context.Context, stmt string, values []any, dest ...any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, execCall{stmt: stmt, values: values})
	if f.err != nil {
		return f.err
	}

	switch stmt {
	case "SELECT session FROM session.clients WHERE sid = ?":
		v, ok := f.rows[values[0].(string)]
		if !ok {
			return gocql.ErrNotFound
		}
		*dest[0].(*string) = v
	case "SELECT COUNT(*) FROM session.clients":
		*dest[0].(*int64) = int64(len(f.rows))
	default:
		return errors.New("unexpected statement: " + stmt)
	}
	return nil
}

func (f *fakeExecutor) statements() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.stmt
	}
	return out
}

func TestGateway_Bootstrap(t *testing.T) {
	t.Parallel()

	t.Run("creates keyspace then table", func(t *testing.T) {
		t.Parallel()
		exec := newFakeExecutor()
		gw := cassandra.NewGatewayWithExecutor(exec)

		err := gw.Bootstrap(context.Background(), session.Schema{Table: table, TTL: 90 * time.Minute, ReplicationFactor: 2})
		require.NoError(t, err)

		assert.Equal(t, []string{
			"CREATE KEYSPACE IF NOT EXISTS session WITH replication = {'class': 'SimpleStrategy', 'replication_factor': 2} AND durable_writes = true",
			"CREATE TABLE IF NOT EXISTS session.clients (sid text PRIMARY KEY, session text) WITH default_time_to_live = 5400",
		}, exec.statements())
	})

	t.Run("defaults replication factor to one", func(t *testing.T) {
		t.Parallel()
		exec := newFakeExecutor()
		gw := cassandra.NewGatewayWithExecutor(exec)

		require.NoError(t, gw.Bootstrap(context.Background(), session.Schema{Table: table, TTL: time.Hour}))
		assert.Contains(t, exec.statements()[0], "'replication_factor': 1")
	})

	t.Run("stops at keyspace failure", func(t *testing.T) {
		t.Parallel()
		exec := newFakeExecutor()
		exec.err = errors.New("unavailable")
		gw := cassandra.NewGatewayWithExecutor(exec)

		err := gw.Bootstrap(context.Background(), session.Schema{Table: table, TTL: time.Hour})
		assert.EqualError(t, err, "unavailable")
		assert.Len(t, exec.statements(), 1)
	})

	t.Run("rejects invalid schema without touching the store", func(t *testing.T) {
		t.Parallel()
		exec := newFakeExecutor()
		gw := cassandra.NewGatewayWithExecutor(exec)

		err := gw.Bootstrap(context.Background(), session.Schema{
			Table: session.Table{Namespace: "ks; DROP", Name: "t"},
			TTL:   time.Hour,
		})
		assert.ErrorIs(t, err, session.ErrInvalidIdentifier)

		err = gw.Bootstrap(context.Background(), session.Schema{Table: table, TTL: 500 * time.Millisecond})
		assert.ErrorIs(t, err, session.ErrInvalidTTL)

		assert.Empty(t, exec.statements())
	})
}

func TestGateway_Rows(t *testing.T) {
	t.Parallel()

	exec := newFakeExecutor()
	gw := cassandra.NewGatewayWithExecutor(exec)
	ctx := context.Background()

	_, err := gw.Select(ctx, table, "missing")
	assert.ErrorIs(t, err, session.ErrNotFound)

	require.NoError(t, gw.Insert(ctx, table, "a", `{"n":1}`))
	require.NoError(t, gw.Insert(ctx, table, "a", `{"n":2}`))
	require.NoError(t, gw.Insert(ctx, table, "b", `{}`))

	payload, err := gw.Select(ctx, table, "a")
	require.NoError(t, err)
	assert.Equal(t, `{"n":2}`, payload)

	n, err := gw.Count(ctx, table)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, gw.Delete(ctx, table, "a"))
	require.NoError(t, gw.Delete(ctx, table, "a"))

	n, err = gw.Count(ctx, table)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, gw.Truncate(ctx, table))
	n, err = gw.Count(ctx, table)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestGateway_BindsValues(t *testing.T) {
	t.Parallel()

	exec := newFakeExecutor()
	gw := cassandra.NewGatewayWithExecutor(exec)

	require.NoError(t, gw.Insert(context.Background(), table, "id'; --", "payload"))

	require.Len(t, exec.calls, 1)
	assert.Equal(t, []any{"id'; --", "payload"}, exec.calls[0].values)
}

func TestGateway_PropagatesErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("write timeout")
	exec := newFakeExecutor()
	exec.err = boom
	gw := cassandra.NewGatewayWithExecutor(exec)
	ctx := context.Background()

	_, err := gw.Select(ctx, table, "a")
	assert.Same(t, boom, err)
	assert.Same(t, boom, gw.Insert(ctx, table, "a", "{}"))
	assert.Same(t, boom, gw.Delete(ctx, table, "a"))
	assert.Same(t, boom, gw.Truncate(ctx, table))
	_, err = gw.Count(ctx, table)
	assert.Same(t, boom, err)
}

func TestGateway_WithManager(t *testing.T) {
	t.Parallel()

	exec := newFakeExecutor()
	gw := cassandra.NewGatewayWithExecutor(exec)
	ctx := context.Background()

	m, err := session.NewManager(gw)
	require.NoError(t, err)
	require.NoError(t, m.Bootstrapped().Await())

	exp := time.Now().Add(time.Hour)
	require.NoError(t, m.Set(ctx, "s1", session.Session{
		Cookie: session.Cookie{Expires: &exp},
		Data:   map[string]any{"user": "alice"},
	}).Await())

	got, err := m.Get(ctx, "s1").Await()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "alice", got.Data["user"])

	n, err := m.Length(ctx).Await()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
