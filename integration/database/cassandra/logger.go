package cassandra

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gocql/gocql"

	"github.com/dmitrymomot/sessionstore/core/logger"
)

// driverLogger forwards gocql diagnostics to slog. It serves both as the
// driver's StdLogger and as its QueryObserver.
type driverLogger struct {
	log *slog.Logger
}

var (
	_ gocql.StdLogger     = driverLogger{}
	_ gocql.QueryObserver = driverLogger{}
)

func newDriverLogger(l *slog.Logger) driverLogger {
	if l == nil {
		l = logger.Discard()
	}
	return driverLogger{log: l.With(logger.Source("gocql"))}
}

func (d driverLogger) Print(v ...any) {
	d.log.Info(strings.TrimSpace(fmt.Sprint(v...)))
}

func (d driverLogger) Printf(format string, v ...any) {
	d.log.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (d driverLogger) Println(v ...any) {
	d.log.Info(strings.TrimSpace(fmt.Sprintln(v...)))
}

// ObserveQuery logs failed queries at warn and the rest at debug.
func (d driverLogger) ObserveQuery(ctx context.Context, q gocql.ObservedQuery) {
	attrs := []any{
		logger.Namespace(q.Keyspace),
		logger.Statement(q.Statement),
		logger.Duration(q.End.Sub(q.Start)),
		logger.Rows(q.Rows),
		logger.RetryCount(q.Attempt),
	}
	if q.Host != nil {
		attrs = append(attrs, logger.Host(q.Host.HostnameAndPort()))
	}

	if q.Err != nil {
		d.log.WarnContext(ctx, "cql query failed", append(attrs, logger.Error(q.Err))...)
		return
	}
	d.log.DebugContext(ctx, "cql query", attrs...)
}
