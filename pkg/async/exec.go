package async

import (
	"context"
	"time"
)

// ExecFuture represents an asynchronous computation that only reports an error.
type ExecFuture struct {
	f *Future[struct{}]
}

// Exec executes fn asynchronously with param. It is the error-only variant of Async.
func Exec[T any](ctx context.Context, param T, fn func(context.Context, T) error) *ExecFuture {
	return &ExecFuture{
		f: Async(ctx, param, func(ctx context.Context, p T) (struct{}, error) {
			return struct{}{}, fn(ctx, p)
		}),
	}
}

// Await blocks until the computation completes and returns its error.
func (e *ExecFuture) Await() error {
	_, err := e.f.Await()
	return err
}

// AwaitWithTimeout waits at most timeout for the computation.
// Returns ErrTimeout if it is still running when the timeout elapses.
func (e *ExecFuture) AwaitWithTimeout(timeout time.Duration) error {
	_, err := e.f.AwaitWithTimeout(timeout)
	return err
}

// AwaitContext waits for the computation or for ctx to be done.
func (e *ExecFuture) AwaitContext(ctx context.Context) error {
	_, err := e.f.AwaitContext(ctx)
	return err
}

// Done returns a channel closed once the computation has finished.
func (e *ExecFuture) Done() <-chan struct{} {
	return e.f.Done()
}

// IsComplete reports whether the computation has finished without blocking.
func (e *ExecFuture) IsComplete() bool {
	return e.f.IsComplete()
}

// ExecAll waits for all futures and returns the first error in argument order.
func ExecAll(futures ...*ExecFuture) error {
	for _, future := range futures {
		if err := future.Await(); err != nil {
			return err
		}
	}
	return nil
}
