package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/sessionstore/core/logger"
)

// Repository implements session CRUD and owns the expiration policy.
// Storage errors are returned unchanged.
type Repository struct {
	gw    Gateway
	table Table
	now   func() time.Time
	log   *slog.Logger
}

// NewRepository creates a repository over gw for the configured table.
func NewRepository(gw Gateway, opts ...Option) (*Repository, error) {
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

	return newRepository(gw, o), nil
}

func newRepository(gw Gateway, o *options) *Repository {
	return &Repository{
		gw:    gw,
		table: o.cfg.table(),
		now:   o.now,
		log:   o.logger,
	}
}

// Upsert encodes s and writes it, replacing any existing row for id.
func (r *Repository) Upsert(ctx context.Context, id string, s Session) error {
	payload, err := Encode(s)
	if err != nil {
		return fmt.Errorf("session %q: %w", id, err)
	}
	return r.gw.Insert(ctx, r.table, id, payload)
}

// Fetch returns the live session for id, or nil when there is none.
// A session whose cookie expiry has passed is deleted before Fetch returns nil;
// if that delete fails its error is returned instead.
func (r *Repository) Fetch(ctx context.Context, id string) (*Session, error) {
	raw, err := r.gw.Select(ctx, r.table, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	s, err := Decode(raw)
	if err != nil {
		r.log.WarnContext(ctx, "stored session cannot be decoded",
			logger.SessionID(id),
			logger.Table(r.table.String()),
			logger.Error(err),
		)
		return nil, fmt.Errorf("session %q: %w", id, err)
	}

	if s.IsExpired(r.now()) {
		if err := r.gw.Delete(ctx, r.table, id); err != nil {
			return nil, err
		}
		r.log.DebugContext(ctx, "expired session removed", logger.SessionID(id))
		return nil, nil
	}

	return &s, nil
}

// Remove deletes the session for id. Removing a missing session succeeds.
func (r *Repository) Remove(ctx context.Context, id string) error {
	return r.gw.Delete(ctx, r.table, id)
}

// Count returns the number of rows the storage layer holds. Rows past their
// cookie expiry that have not been read since still count.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	return r.gw.Count(ctx, r.table)
}

// TruncateAll deletes every session row.
func (r *Repository) TruncateAll(ctx context.Context) error {
	return r.gw.Truncate(ctx, r.table)
}

// Table returns the table this repository operates on.
func (r *Repository) Table() Table {
	return r.table
}
