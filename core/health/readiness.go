package health

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/sessionstore/core/logger"
)

// ErrNotReady is joined into the error returned by Readiness when any check fails.
var ErrNotReady = errors.New("dependency not ready")

// Check is a named dependency probe.
type Check struct {
	Name string
	Fn   func(context.Context) error
}

// NewCheck names a probe function.
func NewCheck(name string, fn func(context.Context) error) Check {
	return Check{Name: name, Fn: fn}
}

// Readiness runs every check in order and returns nil when all succeed.
// Failures are logged at error level and joined with ErrNotReady.
// A nil log discards records.
func Readiness(ctx context.Context, log *slog.Logger, checks ...Check) error {
	if log == nil {
		log = logger.Discard()
	}

	var errs []error
	for _, c := range checks {
		if c.Fn == nil {
			continue
		}

		start := time.Now()
		if err := c.Fn(ctx); err != nil {
			log.ErrorContext(ctx, "Readiness check failed",
				logger.Component(c.Name),
				logger.Error(err),
				logger.Elapsed(start),
			)
			errs = append(errs, fmt.Errorf("%s: %w", c.Name, err))
			continue
		}
		log.DebugContext(ctx, "Readiness check passed", logger.Component(c.Name), logger.Elapsed(start))
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrNotReady}, errs...)...)
	}
	return nil
}
