package session

import "errors"

var (
	// ErrNotFound is returned by a Gateway when no row exists for the session id.
	// The repository turns it into an empty result; callers of Store never see it.
	ErrNotFound = errors.New("session not found")
	// ErrFormat is returned when a stored payload cannot be decoded.
	// The malformed row is left in place.
	ErrFormat = errors.New("malformed session payload")
	// ErrBootstrap is logged when namespace or table creation fails.
	ErrBootstrap = errors.New("failed to bootstrap session schema")
	// ErrInvalidIdentifier is returned for namespace or table names unsafe to use in statements.
	ErrInvalidIdentifier = errors.New("invalid namespace or table name")
	// ErrInvalidReplicationFactor is returned when the replication factor is below 1.
	ErrInvalidReplicationFactor = errors.New("session replication factor must be at least 1")
	// ErrInvalidTTL is returned when the configured store-level TTL is not positive.
	ErrInvalidTTL = errors.New("session TTL must be positive")
	// ErrNilGateway is returned when a store is built without a storage gateway.
	ErrNilGateway = errors.New("session gateway is required")
)

// ErrTableNotFound is returned by gateways that refuse writes to a table that was never bootstrapped.
var ErrTableNotFound = errors.New("session table does not exist")
