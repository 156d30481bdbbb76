package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/sessionstore/pkg/async"
)

// Manager implements Store on top of a Gateway.
// A single gateway is shared by all operations; there is no per-session locking,
// so concurrent writes to one id resolve by the storage layer's last write.
type Manager struct {
	repo  *Repository
	cfg   Config
	log   *slog.Logger
	ready *async.ExecFuture
}

var _ Store = (*Manager)(nil)

// NewManager validates the configuration, starts the schema bootstrap in the
// background and returns immediately. Bootstrap failures are logged, not
// returned; operations issued before the schema exists fail at the storage layer.
func NewManager(gw Gateway, opts ...Option) (*Manager, error) {
	if gw == nil {
		return nil, ErrNilGateway
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if err := o.cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Manager{
		repo: newRepository(gw, o),
		cfg:  o.cfg,
		log:  o.logger,
	}
	m.ready = async.Exec(context.Background(), o.cfg.Schema(), func(ctx context.Context, schema Schema) error {
		return bootstrap(ctx, gw, schema, o.cfg.BootstrapTimeout, m.log)
	})

	return m, nil
}

// Get resolves to the live session for id, or nil when it is absent or expired.
func (m *Manager) Get(ctx context.Context, id string) *async.Future[*Session] {
	return async.Async(ctx, id, m.repo.Fetch)
}

// Set writes s under id. The write is unconditional and restarts the row TTL.
func (m *Manager) Set(ctx context.Context, id string, s Session) *async.ExecFuture {
	return async.Exec(ctx, id, func(ctx context.Context, id string) error {
		return m.repo.Upsert(ctx, id, s)
	})
}

// Destroy removes the session for id.
func (m *Manager) Destroy(ctx context.Context, id string) *async.ExecFuture {
	return async.Exec(ctx, id, m.repo.Remove)
}

// Touch refreshes a live session: the stored session keeps all of its
// application fields and only its cookie is replaced by s.Cookie.
// Touching an absent or expired session is a no-op and never recreates it.
func (m *Manager) Touch(ctx context.Context, id string, s Session) *async.ExecFuture {
	return async.Exec(ctx, id, func(ctx context.Context, id string) error {
		stored, err := m.repo.Fetch(ctx, id)
		if err != nil {
			return err
		}
		if stored == nil {
			return nil
		}
		stored.Cookie = s.Cookie
		return m.repo.Upsert(ctx, id, *stored)
	})
}

// Length resolves to the storage-level row count.
func (m *Manager) Length(ctx context.Context) *async.Future[int64] {
	return async.Async(ctx, struct{}{}, func(ctx context.Context, _ struct{}) (int64, error) {
		return m.repo.Count(ctx)
	})
}

// Clear removes every session.
func (m *Manager) Clear(ctx context.Context) *async.ExecFuture {
	return async.Exec(ctx, struct{}{}, func(ctx context.Context, _ struct{}) error {
		return m.repo.TruncateAll(ctx)
	})
}

// Bootstrapped returns the future of the background schema bootstrap.
// Waiting on it is optional; its error carries ErrBootstrap.
func (m *Manager) Bootstrapped() *async.ExecFuture {
	return m.ready
}

// Repository exposes the synchronous repository behind the manager.
func (m *Manager) Repository() *Repository {
	return m.repo
}

// GetTTL returns the store-level session time-to-live.
func (m *Manager) GetTTL() time.Duration {
	return m.cfg.TTL
}

// Config returns the resolved configuration.
func (m *Manager) Config() Config {
	return m.cfg
}
