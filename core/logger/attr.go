package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Attribute helpers use the empty Attr pattern for nil safety.
// slog drops empty attributes, so log.Info("msg", logger.Error(err)) needs no nil check.

// Group creates a group of attributes under a single key.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// ============================================================================
// Error Handling
// ============================================================================

// Errors groups multiple non-nil errors under the key "errors".
// Uses index-based keys to preserve error order. Returns empty Attr for all nil errors.
func Errors(errs ...error) slog.Attr {
	count := 0
	for _, err := range errs {
		if err != nil {
			count++
		}
	}
	if count == 0 {
		return slog.Attr{}
	}

	as := make([]slog.Attr, 0, count)
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// Returns empty Attr for nil errors.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// ============================================================================
// Timing
// ============================================================================

// Duration creates an attribute for a duration.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Elapsed calculates and logs the duration since the start time.
func Elapsed(start time.Time) slog.Attr {
	return slog.Duration("elapsed", time.Since(start))
}

// TTL creates an attribute for a time-to-live.
func TTL(d time.Duration) slog.Attr {
	return slog.Duration("ttl", d)
}

// ============================================================================
// Sessions and Storage
// ============================================================================

// SessionID creates an attribute for session identifiers.
func SessionID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("session_id", id)
}

// Namespace creates an attribute for a storage namespace (keyspace, key prefix).
func Namespace(ns string) slog.Attr {
	return slog.String("namespace", ns)
}

// Table creates an attribute for a storage table name.
func Table(name string) slog.Attr {
	return slog.String("table", name)
}

// Statement creates an attribute for a query statement.
func Statement(stmt string) slog.Attr {
	if stmt == "" {
		return slog.Attr{}
	}
	return slog.String("statement", stmt)
}

// Host creates an attribute for a storage node address.
func Host(addr string) slog.Attr {
	if addr == "" {
		return slog.Attr{}
	}
	return slog.String("host", addr)
}

// Rows creates an attribute for the number of rows affected or returned.
func Rows(n int) slog.Attr {
	return slog.Int("rows", n)
}

// ============================================================================
// Generic Metadata
// ============================================================================

// Component creates an attribute for component names.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Source creates an attribute naming the origin of a forwarded log line.
func Source(name string) slog.Attr {
	return slog.String("source", name)
}

// Action creates an attribute for action names.
func Action(action string) slog.Attr {
	return slog.String("action", action)
}

// RetryCount creates an attribute for retry attempts.
func RetryCount(count int) slog.Attr {
	return slog.Int("retry_count", count)
}

// Key creates a generic key-value attribute.
func Key(key string, value any) slog.Attr {
	if value == nil {
		return slog.Attr{}
	}
	return slog.Any(key, value)
}
