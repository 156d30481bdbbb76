// Package session persists opaque session records in a wide-column store and
// enforces their expiry.
//
// The package sits behind the pluggable store an HTTP session middleware
// calls into (get, set, destroy, touch, length, clear). Cookie handling and
// routing stay in the middleware.
//
// # Core Components
//
//   - Session and Cookie: the in-memory session; Cookie.Expires is the
//     application-level expiry
//   - Encode, Decode, ExtractExpiry: the stored JSON form
//   - Repository: synchronous upsert, fetch-with-expiry, remove, count, truncate
//   - Manager: the asynchronous Store implementation built on a Repository
//   - Gateway: the storage boundary, implemented by MemoryGateway here and by
//     the cassandra and redis integration packages
//
// # Basic Usage
//
//	gw := cassandra.NewGateway(cqlSession, cassandra.WithLogger(log))
//
//	store, err := session.NewManager(gw,
//		session.WithNamespace("session"),
//		session.WithTable("clients"),
//		session.WithTTL(time.Hour),
//		session.WithLogger(log),
//	)
//	if err != nil {
//		log.Error("invalid session config", logger.Error(err))
//		return
//	}
//
//	expires := time.Now().Add(30 * time.Minute)
//	err = store.Set(ctx, "sid-1", session.Session{
//		Cookie: session.Cookie{Expires: &expires},
//		Data:   map[string]any{"user": "alice"},
//	}).Await()
//
//	sess, err := store.Get(ctx, "sid-1").Await()
//	if sess == nil {
//		// absent or expired
//	}
//
// # Expiry
//
// Two clocks apply to every record. The store-level TTL (Config.TTL, default one
// hour) is enforced by the storage engine and restarts on every write. The
// cookie expiry is checked on read: a session whose Cookie.Expires is at or
// before now is deleted and reported as absent, whatever its TTL. Sessions
// without Cookie.Expires only age out through the TTL. Length reports the
// storage row count, so expired but unread sessions are still counted.
//
// # Bootstrap
//
// NewManager starts creating the namespace and table in the background and
// returns at once. Failures are logged with ErrBootstrap and surface to callers
// only as storage errors on later operations. Bootstrapped returns the future
// for callers that want to wait:
//
//	if err := store.Bootstrapped().Await(); err != nil {
//		return err
//	}
//
// # Errors
//
//   - ErrFormat: a stored payload could not be decoded (the row is kept)
//   - ErrBootstrap: schema creation failed (logged only)
//   - ErrInvalidIdentifier, ErrInvalidTTL, ErrNilGateway: rejected configuration
//   - ErrNotFound: gateway-level absence, never returned by Store operations
//
// Storage errors pass through unchanged. The package does not retry.
//
// # Concurrency
//
// A Manager is safe for concurrent use. There is no per-session locking:
// concurrent Set, Touch and Destroy on the same id race at the storage layer
// and the last applied write wins.
package session
