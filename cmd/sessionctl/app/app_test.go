package app

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionstore/core/health"
	"github.com/dmitrymomot/sessionstore/core/session"
)

// sharedMemory returns an opener that hands out the same in-memory gateway to
// every command, so state survives between executions.
func sharedMemory(gw *session.MemoryGateway) openFunc {
	return func(_ context.Context, name string, _ session.Schema, _ *slog.Logger) (*backend, error) {
		if name != BackendMemory {
			return nil, ErrUnknownBackend
		}
		return memoryBackend(gw), nil
	}
}

func run(t *testing.T, open openFunc, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd(open)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--backend", BackendMemory}, args...))

	err := cmd.ExecuteContext(t.Context())
	return strings.TrimSpace(out.String()), err
}

func TestBootstrapCmd(t *testing.T) {
	t.Parallel()

	out, err := run(t, sharedMemory(session.NewMemoryGateway()), "bootstrap", "--namespace", "app", "--table", "web", "--ttl", "2h")
	require.NoError(t, err)
	assert.Equal(t, "Session table app.web ready (ttl 2h0m0s)", out)
}

func TestSessionLifecycle(t *testing.T) {
	t.Parallel()

	open := sharedMemory(session.NewMemoryGateway())

	id, err := run(t, open, "set", `{"user":"alice","cookie":{"expires":null}}`)
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err, "generated id should be a UUID")

	out, err := run(t, open, "get", id)
	require.NoError(t, err)
	got, err := session.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Data["user"])
	assert.Nil(t, got.Cookie.Expires)

	_, err = run(t, open, "touch", id, "--max-age", "30m")
	require.NoError(t, err)

	out, err = run(t, open, "get", id)
	require.NoError(t, err)
	got, err = session.Decode(out)
	require.NoError(t, err)
	assert.NotNil(t, got.Cookie.Expires)
	assert.Equal(t, "alice", got.Data["user"])

	out, err = run(t, open, "length")
	require.NoError(t, err)
	assert.Equal(t, "1", out)

	_, err = run(t, open, "destroy", id, "missing")
	require.NoError(t, err)

	_, err = run(t, open, "get", id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSetCmd_WithID(t *testing.T) {
	t.Parallel()

	open := sharedMemory(session.NewMemoryGateway())

	out, err := run(t, open, "set", "--id", "fixed", "--max-age", "1h", `{"n":1}`)
	require.NoError(t, err)
	assert.Equal(t, "fixed", out)

	out, err = run(t, open, "get", "fixed")
	require.NoError(t, err)
	assert.Contains(t, out, `"expires":"`)
}

func TestSetCmd_RejectsMalformedPayload(t *testing.T) {
	t.Parallel()

	_, err := run(t, sharedMemory(session.NewMemoryGateway()), "set", `[1,2]`)
	assert.ErrorIs(t, err, session.ErrFormat)
}

func TestLengthCmd_JSON(t *testing.T) {
	t.Parallel()

	open := sharedMemory(session.NewMemoryGateway())
	for _, id := range []string{"a", "b"} {
		_, err := run(t, open, "set", "--id", id, `{}`)
		require.NoError(t, err)
	}

	out, err := run(t, open, "length", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"table":"session.clients","length":2}`, out)
}

func TestClearCmd(t *testing.T) {
	t.Parallel()

	open := sharedMemory(session.NewMemoryGateway())
	_, err := run(t, open, "set", "--id", "a", `{}`)
	require.NoError(t, err)

	_, err = run(t, open, "clear")
	assert.ErrorIs(t, err, errClearNotConfirmed)

	_, err = run(t, open, "clear", "--yes")
	require.NoError(t, err)

	out, err := run(t, open, "length")
	require.NoError(t, err)
	assert.Equal(t, "0", out)
}

func TestRootCmd_Errors(t *testing.T) {
	t.Parallel()

	t.Run("invalid log level", func(t *testing.T) {
		t.Parallel()
		_, err := run(t, sharedMemory(session.NewMemoryGateway()), "length", "--log-level", "loud")
		assert.Error(t, err)
	})

	t.Run("invalid table name", func(t *testing.T) {
		t.Parallel()
		_, err := run(t, sharedMemory(session.NewMemoryGateway()), "length", "--table", "bad-name")
		assert.ErrorIs(t, err, session.ErrInvalidIdentifier)
	})

	t.Run("open failure", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("no route to host")
		open := func(context.Context, string, session.Schema, *slog.Logger) (*backend, error) {
			return nil, boom
		}
		_, err := run(t, open, "length")
		assert.ErrorIs(t, err, boom)
	})
}

func TestHealthCmd(t *testing.T) {
	t.Parallel()

	t.Run("memory backend is ready", func(t *testing.T) {
		t.Parallel()
		out, err := run(t, sharedMemory(session.NewMemoryGateway()), "health")
		require.NoError(t, err)
		assert.Equal(t, "READY", out)
	})

	t.Run("failing check", func(t *testing.T) {
		t.Parallel()
		down := errors.New("connection refused")
		open := func(context.Context, string, session.Schema, *slog.Logger) (*backend, error) {
			b := memoryBackend(session.NewMemoryGateway())
			b.check = health.NewCheck("cassandra", func(context.Context) error { return down })
			return b, nil
		}
		_, err := run(t, open, "health")
		assert.ErrorIs(t, err, health.ErrNotReady)
		assert.ErrorIs(t, err, down)
	})

	t.Run("open failure", func(t *testing.T) {
		t.Parallel()
		open := func(context.Context, string, session.Schema, *slog.Logger) (*backend, error) {
			return nil, errors.New("dial timeout")
		}
		_, err := run(t, open, "health")
		assert.ErrorIs(t, err, health.ErrNotReady)
	})
}

func TestOpenBackend_Unknown(t *testing.T) {
	t.Parallel()

	_, err := openBackend(context.Background(), "sqlite", session.Schema{}, slog.New(slog.DiscardHandler))
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestOpenBackend_Memory(t *testing.T) {
	t.Parallel()

	b, err := openBackend(context.Background(), BackendMemory, session.DefaultConfig().Schema(), slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	assert.IsType(t, &session.MemoryGateway{}, b.gateway)
	assert.NoError(t, b.close())
}

func TestOpenReceivesResolvedSchema(t *testing.T) {
	t.Parallel()

	var got session.Schema
	open := func(_ context.Context, _ string, schema session.Schema, _ *slog.Logger) (*backend, error) {
		got = schema
		return memoryBackend(session.NewMemoryGateway()), nil
	}

	_, err := run(t, open, "length", "--namespace", "app", "--table", "web", "--ttl", "24h")
	require.NoError(t, err)

	assert.Equal(t, session.Table{Namespace: "app", Name: "web"}, got.Table)
	assert.Equal(t, 24*time.Hour, got.TTL)
	assert.Equal(t, 1, got.ReplicationFactor)
}

func TestGetCmd_MultipleIDs(t *testing.T) {
	t.Parallel()

	open := sharedMemory(session.NewMemoryGateway())
	for _, id := range []string{"a", "b"} {
		_, err := run(t, open, "set", "--id", id, `{"owner":"`+id+`"}`)
		require.NoError(t, err)
	}

	out, err := run(t, open, "get", "a", "b")
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"owner":"a"`)
	assert.Contains(t, lines[1], `"owner":"b"`)

	out, err = run(t, open, "get", "a", "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Contains(t, err.Error(), "missing")
	assert.Contains(t, out, `"owner":"a"`)
}

// failingDeletes rejects Delete for the listed ids.
type failingDeletes struct {
	*session.MemoryGateway
	ids map[string]error
}

func (g failingDeletes) Delete(ctx context.Context, t session.Table, id string) error {
	if err, ok := g.ids[id]; ok {
		return err
	}
	return g.MemoryGateway.Delete(ctx, t, id)
}

func TestDestroyCmd_ReportsEveryFailure(t *testing.T) {
	t.Parallel()

	mem := session.NewMemoryGateway()
	errB := errors.New("write timeout")
	errC := errors.New("unavailable")
	gw := failingDeletes{MemoryGateway: mem, ids: map[string]error{"b": errB, "c": errC}}

	open := func(context.Context, string, session.Schema, *slog.Logger) (*backend, error) {
		b := memoryBackend(mem)
		b.gateway = gw
		return b, nil
	}

	cmd := newRootCmd(open)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--backend", BackendMemory, "destroy", "a", "b", "c"})

	err := cmd.ExecuteContext(t.Context())
	require.Error(t, err)
	assert.ErrorIs(t, err, errB)
	assert.ErrorIs(t, err, errC)
	assert.Contains(t, err.Error(), "b: write timeout")
	assert.Contains(t, err.Error(), "c: unavailable")

	logs := errOut.String()
	assert.Contains(t, logs, "failed to destroy sessions")
	assert.Contains(t, logs, "action=destroy")
	assert.Contains(t, logs, "errors.1=")
	assert.Contains(t, logs, "errors.2=")
	assert.NotContains(t, logs, "errors.0=")
}
