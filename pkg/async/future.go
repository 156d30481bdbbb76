package async

import (
	"context"
	"time"
)

// Future represents the result of an asynchronous computation.
// The result is delivered from a separate goroutine, never from the call
// that created the future.
type Future[U any] struct {
	value U
	err   error
	done  chan struct{}
}

// Async executes fn asynchronously with param and returns a future for its result.
// If ctx is already canceled when the goroutine starts, fn is not called and the
// future resolves with ctx.Err().
func Async[T, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		// Early exit prevents useless work when context is pre-canceled
		select {
		case <-ctx.Done():
			f.err = ctx.Err()
			return
		default:
		}

		f.value, f.err = fn(ctx, param)
	}()

	return f
}

// Await blocks until the computation completes and returns its result.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.value, f.err
}

// AwaitWithTimeout waits at most timeout for the result.
// Returns ErrTimeout if the computation is still running when the timeout elapses.
func (f *Future[U]) AwaitWithTimeout(timeout time.Duration) (U, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-f.done:
		return f.value, f.err
	case <-timer.C:
		var zero U
		return zero, ErrTimeout
	}
}

// AwaitContext waits for the result or for ctx to be done, whichever comes first.
// The computation keeps running after ctx is done; only the wait is abandoned.
func (f *Future[U]) AwaitContext(ctx context.Context) (U, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero U
		return zero, ctx.Err()
	}
}

// Done returns a channel closed once the result is available.
func (f *Future[U]) Done() <-chan struct{} {
	return f.done
}

// IsComplete reports whether the result is available without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// WaitAll waits for all futures and returns their values in order.
// The first error encountered (in argument order) is returned.
func WaitAll[U any](futures ...*Future[U]) ([]U, error) {
	results := make([]U, len(futures))
	for i, future := range futures {
		v, err := future.Await()
		if err != nil {
			return nil, err
		}
		results[i] = v
	}
	return results, nil
}
