package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/sessionstore/core/config"
	"github.com/dmitrymomot/sessionstore/core/logger"
	"github.com/dmitrymomot/sessionstore/core/session"
)

type rootFlags struct {
	backend   string
	namespace string
	table     string
	ttl       time.Duration
	timeout   time.Duration
	logLevel  string
	jsonLog   bool
}

// NewRootCmd creates the sessionctl command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(openBackend)
}

func newRootCmd(open openFunc) *cobra.Command {
	f := &rootFlags{}

	root := &cobra.Command{
		Use:   "sessionctl",
		Short: "Administer the session store",
		Long: `sessionctl bootstraps the session schema and inspects or removes stored sessions.

Connection settings come from the environment (CASSANDRA_*, REDIS_*, SESSION_*)
or a .env file in the working directory. Flags override the SESSION_* values.`,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.backend, "backend", BackendCassandra, "Storage backend: cassandra, redis or memory")
	pf.StringVar(&f.namespace, "namespace", "", "Session namespace (keyspace); overrides SESSION_NAMESPACE")
	pf.StringVar(&f.table, "table", "", "Session table; overrides SESSION_TABLE")
	pf.DurationVar(&f.ttl, "ttl", 0, "Store-level session TTL; overrides SESSION_TTL")
	pf.DurationVar(&f.timeout, "timeout", time.Minute, "Overall command timeout")
	pf.StringVar(&f.logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
	pf.BoolVar(&f.jsonLog, "log-json", false, "Write logs as JSON")

	root.AddCommand(
		newBootstrapCmd(f, open),
		newGetCmd(f, open),
		newSetCmd(f, open),
		newTouchCmd(f, open),
		newDestroyCmd(f, open),
		newLengthCmd(f, open),
		newClearCmd(f, open),
		newHealthCmd(f, open),
	)

	return root
}

func (f *rootFlags) logger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(f.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", f.logLevel, err)
	}

	opts := []logger.Option{
		logger.WithOutput(w),
		logger.WithLevel(level),
		logger.WithService("sessionctl"),
	}
	if f.jsonLog {
		opts = append(opts, logger.WithJSONFormatter())
	}
	return logger.New(opts...), nil
}

// sessionConfig resolves SESSION_* from the environment and applies the flag overrides.
func (f *rootFlags) sessionConfig() (session.Config, error) {
	var cfg session.Config
	if err := config.Load(&cfg); err != nil {
		return session.Config{}, err
	}

	if f.namespace != "" {
		cfg.Namespace = f.namespace
	}
	if f.table != "" {
		cfg.Table = f.table
	}
	if f.ttl != 0 {
		cfg.TTL = f.ttl
	}
	if err := cfg.Validate(); err != nil {
		return session.Config{}, err
	}
	return cfg, nil
}

func (b *backend) release(log *slog.Logger) {
	if err := b.close(); err != nil {
		log.Warn("failed to close storage connection", logger.Error(err))
	}
}

// withManager opens the configured backend, waits for the schema bootstrap
// and runs fn against the resulting manager.
func withManager(cmd *cobra.Command, f *rootFlags, open openFunc, fn func(context.Context, *session.Manager, *slog.Logger) error) error {
	log, err := f.logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	cfg, err := f.sessionConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	b, err := open(ctx, f.backend, cfg.Schema(), log)
	if err != nil {
		return err
	}
	defer b.release(log)

	m, err := session.NewManager(b.gateway, session.WithConfig(cfg), session.WithLogger(log))
	if err != nil {
		return err
	}
	if err := m.Bootstrapped().AwaitContext(ctx); err != nil {
		return err
	}

	start := time.Now()
	err = fn(ctx, m, log)
	log.DebugContext(ctx, "command finished",
		logger.Action(cmd.Name()),
		logger.Group("store",
			logger.Namespace(cfg.Namespace),
			logger.Table(cfg.Table),
			logger.Key("backend", f.backend),
		),
		logger.Elapsed(start),
		logger.Error(err),
	)
	return err
}
