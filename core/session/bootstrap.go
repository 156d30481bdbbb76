package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/sessionstore/core/logger"
)

func bootstrap(ctx context.Context, gw Gateway, schema Schema, timeout time.Duration, log *slog.Logger) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	attrs := []any{
		logger.Namespace(schema.Namespace),
		logger.Table(schema.Name),
		logger.TTL(schema.TTL),
	}

	if err := gw.Bootstrap(ctx, schema); err != nil {
		err = errors.Join(ErrBootstrap, err)
		log.ErrorContext(ctx, "session schema bootstrap failed", append(attrs, logger.Error(err))...)
		return err
	}

	log.DebugContext(ctx, "session schema ready", append(attrs, logger.Elapsed(start))...)
	return nil
}
