// Package logger provides structured logging helpers built on log/slog.
//
// New builds a text or JSON logger from functional options, and the attribute
// helpers give consistent keys to the values the session store logs:
//
//	log := logger.New(
//		logger.WithService("sessionctl"),
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithJSONFormatter(),
//	)
//
//	log.Error("session bootstrap failed",
//		logger.Namespace("session"),
//		logger.Table("clients"),
//		logger.Error(err),
//	)
//
// Helpers that take a string or error return an empty slog.Attr for the zero
// value, which slog omits from the output. Components that accept an optional
// logger fall back to Discard.
package logger
