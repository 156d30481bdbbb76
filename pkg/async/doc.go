// Package async provides futures for asynchronous operations with Go generics.
//
// A future is resolved on its own goroutine, so a caller never observes the
// result inside the call that produced the future. The session store relies on
// this to give every operation asynchronous completion without reentrancy.
//
// # Core Types
//
// Future[U] holds the result of Async. ExecFuture is the error-only variant
// returned by Exec.
//
// # Usage
//
//	future := async.Async(ctx, "sess-1", func(ctx context.Context, id string) (*session.Session, error) {
//		return repo.Fetch(ctx, id)
//	})
//
//	sess, err := future.Await()
//
// Bounded waits:
//
//	sess, err := future.AwaitWithTimeout(50 * time.Millisecond)
//	if errors.Is(err, async.ErrTimeout) {
//		log.Println("still running")
//	}
//
//	sess, err = future.AwaitContext(ctx)
//
// # Coordination
//
// WaitAll and ExecAll wait for every future and return the first error in
// argument order.
//
// # Errors
//
//   - ErrTimeout: AwaitWithTimeout elapsed before completion
//
// # Context
//
// If the context is canceled before the goroutine starts the function, the
// function is skipped and the future resolves with the context's error.
package async
