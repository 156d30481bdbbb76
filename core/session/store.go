package session

import (
	"context"

	"github.com/dmitrymomot/sessionstore/pkg/async"
)

// Store is the pluggable session store consumed by HTTP session middleware.
// Every operation completes asynchronously: the returned future is resolved
// on another goroutine, never inside the call itself.
type Store interface {
	// Get resolves to the live session for id, or nil when there is none.
	Get(ctx context.Context, id string) *async.Future[*Session]
	// Set writes s under id, replacing any previous session.
	Set(ctx context.Context, id string, s Session) *async.ExecFuture
	// Destroy removes the session. Destroying a missing session succeeds.
	Destroy(ctx context.Context, id string) *async.ExecFuture
	// Touch replaces the stored cookie with s.Cookie if the session is live.
	Touch(ctx context.Context, id string, s Session) *async.ExecFuture
	// Length resolves to the number of stored sessions.
	Length(ctx context.Context) *async.Future[int64]
	// Clear removes every session.
	Clear(ctx context.Context) *async.ExecFuture
}
