package async

import "errors"

// ErrTimeout is returned by AwaitWithTimeout when the duration elapses first.
var ErrTimeout = errors.New("async: timeout waiting for future")
