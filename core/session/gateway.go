package session

import (
	"context"
	"fmt"
	"regexp"
	"time"
)

// Gateway is the storage boundary the session store runs on.
// Implementations must be safe for concurrent use; a single gateway is shared
// by every operation of a store. Errors other than ErrNotFound are returned
// to callers unchanged.
type Gateway interface {
	// Bootstrap idempotently creates the namespace and table described by schema.
	Bootstrap(ctx context.Context, schema Schema) error
	// Select returns the stored payload, or ErrNotFound when no row exists.
	Select(ctx context.Context, t Table, id string) (string, error)
	// Insert writes or fully replaces the row and restarts its store-level TTL.
	Insert(ctx context.Context, t Table, id, payload string) error
	// Delete removes the row. Deleting a missing row is not an error.
	Delete(ctx context.Context, t Table, id string) error
	// Count returns the number of rows currently present at the storage layer.
	Count(ctx context.Context, t Table) (int64, error)
	// Truncate removes every row of the table.
	Truncate(ctx context.Context, t Table) error
}

// Table identifies the session table inside its namespace.
type Table struct {
	Namespace string
	Name      string
}

// String returns the qualified "namespace.name" form.
func (t Table) String() string {
	return t.Namespace + "." + t.Name
}

// Validate checks that both parts are safe to interpolate into statements.
func (t Table) Validate() error {
	if !identifierRe.MatchString(t.Namespace) {
		return fmt.Errorf("%w: namespace %q", ErrInvalidIdentifier, t.Namespace)
	}
	if !identifierRe.MatchString(t.Name) {
		return fmt.Errorf("%w: table %q", ErrInvalidIdentifier, t.Name)
	}
	return nil
}

// Schema describes what Bootstrap must create.
type Schema struct {
	Table
	// TTL is the default store-level time-to-live of every row.
	TTL time.Duration
	// ReplicationFactor applies to namespace creation on replicated stores.
	ReplicationFactor int
}

// TTLSeconds returns the TTL in whole seconds, rounding up partial seconds.
func (s Schema) TTLSeconds() int {
	secs := s.TTL / time.Second
	if s.TTL%time.Second != 0 {
		secs++
	}
	return int(secs)
}

// Keyspace and table names in Cassandra are limited to 48 word characters.
var identifierRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]{0,47}$`)
