package session

import (
	"context"
	"sync"
	"time"
)

type memoryRow struct {
	payload   string
	expiresAt time.Time
}

type memoryTable struct {
	ttl  time.Duration
	rows map[string]memoryRow
}

// MemoryGateway is an in-process Gateway for tests and local development.
// It emulates the store-level TTL: rows past their TTL are invisible to reads
// and counts and are dropped on access. Tables must be bootstrapped before use,
// as on a real store.
type MemoryGateway struct {
	mu     sync.RWMutex
	tables map[Table]*memoryTable
	now    func() time.Time
}

// MemoryGatewayOption configures a MemoryGateway.
type MemoryGatewayOption func(*MemoryGateway)

// WithMemoryClock overrides the time source used for TTL reaping.
func WithMemoryClock(now func() time.Time) MemoryGatewayOption {
	return func(g *MemoryGateway) {
		if now != nil {
			g.now = now
		}
	}
}

// NewMemoryGateway creates an empty in-memory gateway.
func NewMemoryGateway(opts ...MemoryGatewayOption) *MemoryGateway {
	g := &MemoryGateway{
		tables: make(map[Table]*memoryTable),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Bootstrap creates the table if it does not exist. An existing table keeps
// its rows and TTL.
func (g *MemoryGateway) Bootstrap(ctx context.Context, schema Schema) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := schema.Validate(); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.tables[schema.Table]; !ok {
		g.tables[schema.Table] = &memoryTable{
			ttl:  schema.TTL,
			rows: make(map[string]memoryRow),
		}
	}
	return nil
}

// Select returns the payload for id or ErrNotFound.
func (g *MemoryGateway) Select(ctx context.Context, t Table, id string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	tbl, ok := g.tables[t]
	if !ok {
		return "", ErrTableNotFound
	}
	row, ok := tbl.rows[id]
	if !ok {
		return "", ErrNotFound
	}
	if !row.expiresAt.After(g.now()) {
		delete(tbl.rows, id)
		return "", ErrNotFound
	}
	return row.payload, nil
}

// Insert writes payload under id and restarts the row TTL.
func (g *MemoryGateway) Insert(ctx context.Context, t Table, id, payload string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	tbl, ok := g.tables[t]
	if !ok {
		return ErrTableNotFound
	}
	tbl.rows[id] = memoryRow{
		payload:   payload,
		expiresAt: g.now().Add(tbl.ttl),
	}
	return nil
}

// Delete removes id if present.
func (g *MemoryGateway) Delete(ctx context.Context, t Table, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	tbl, ok := g.tables[t]
	if !ok {
		return ErrTableNotFound
	}
	delete(tbl.rows, id)
	return nil
}

// Count returns the number of rows whose TTL has not elapsed.
func (g *MemoryGateway) Count(ctx context.Context, t Table) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	tbl, ok := g.tables[t]
	if !ok {
		return 0, ErrTableNotFound
	}

	now := g.now()
	var n int64
	for _, row := range tbl.rows {
		if row.expiresAt.After(now) {
			n++
		}
	}
	return n, nil
}

// Truncate removes all rows of the table.
func (g *MemoryGateway) Truncate(ctx context.Context, t Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	tbl, ok := g.tables[t]
	if !ok {
		return ErrTableNotFound
	}
	clear(tbl.rows)
	return nil
}
