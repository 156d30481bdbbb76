package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/sessionstore/core/health"
	"github.com/dmitrymomot/sessionstore/core/logger"
	"github.com/dmitrymomot/sessionstore/core/session"
	"github.com/dmitrymomot/sessionstore/pkg/async"
)

// ErrSessionNotFound is returned by get when the session is absent or expired.
var ErrSessionNotFound = errors.New("session not found")

// errClearNotConfirmed guards clear against accidental runs.
var errClearNotConfirmed = errors.New("refusing to clear all sessions without --yes")

func newBootstrapCmd(f *rootFlags, open openFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "bootstrap",
		Short: "Create the session namespace and table if missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withManager(cmd, f, open, func(_ context.Context, m *session.Manager, _ *slog.Logger) error {
				cfg := m.Config()
				fmt.Fprintf(cmd.OutOrStdout(), "Session table %s ready (ttl %s)\n", cfg.Schema().Table, cfg.TTL)
				return nil
			})
		},
	}
}

func newGetCmd(f *rootFlags, open openFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "get [session-id...]",
		Short: "Print stored sessions as JSON, one per line",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withManager(cmd, f, open, func(ctx context.Context, m *session.Manager, _ *slog.Logger) error {
				futures := make([]*async.Future[*session.Session], len(args))
				for i, id := range args {
					futures[i] = m.Get(ctx, id)
				}
				sessions, err := async.WaitAll(futures...)
				if err != nil {
					return err
				}

				var missing []error
				for i, s := range sessions {
					if s == nil {
						missing = append(missing, fmt.Errorf("%w: %s", ErrSessionNotFound, args[i]))
						continue
					}
					payload, err := session.Encode(*s)
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), payload)
				}
				return errors.Join(missing...)
			})
		},
	}
}

func newSetCmd(f *rootFlags, open openFunc) *cobra.Command {
	var (
		id     string
		maxAge time.Duration
	)

	cmd := &cobra.Command{
		Use:   "set [session-json]",
		Short: "Write a session, replacing any existing one",
		Long: `Write a session from its JSON form, e.g. '{"user":"alice","cookie":{"expires":null}}'.
A random session id is generated unless --id is given; the id is printed on success.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := session.Decode(args[0])
			if err != nil {
				return err
			}
			if maxAge > 0 {
				s.Cookie = session.Cookie{OriginalMaxAge: maxAge.Milliseconds()}.ExpiresAt(time.Now().Add(maxAge))
			}
			sid := id
			if sid == "" {
				sid = uuid.NewString()
			}

			return withManager(cmd, f, open, func(ctx context.Context, m *session.Manager, _ *slog.Logger) error {
				if err := m.Set(ctx, sid, s).AwaitContext(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), sid)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Session id (default: random UUID)")
	cmd.Flags().DurationVar(&maxAge, "max-age", 0, "Set cookie.expires to now plus this duration")
	return cmd
}

func newTouchCmd(f *rootFlags, open openFunc) *cobra.Command {
	var maxAge time.Duration

	cmd := &cobra.Command{
		Use:   "touch [session-id]",
		Short: "Extend a live session's cookie expiry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if maxAge <= 0 {
				return errors.New("--max-age must be positive")
			}
			id := args[0]
			cookie := session.Cookie{OriginalMaxAge: maxAge.Milliseconds()}.ExpiresAt(time.Now().Add(maxAge))

			return withManager(cmd, f, open, func(ctx context.Context, m *session.Manager, _ *slog.Logger) error {
				return m.Touch(ctx, id, session.Session{Cookie: cookie}).AwaitContext(ctx)
			})
		},
	}

	cmd.Flags().DurationVar(&maxAge, "max-age", time.Hour, "New cookie lifetime from now")
	return cmd
}

func newDestroyCmd(f *rootFlags, open openFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "destroy [session-id...]",
		Short: "Remove sessions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withManager(cmd, f, open, func(ctx context.Context, m *session.Manager, log *slog.Logger) error {
				futures := make([]*async.ExecFuture, len(args))
				for i, id := range args {
					futures[i] = m.Destroy(ctx, id)
				}
				if async.ExecAll(futures...) == nil {
					return nil
				}

				errs := make([]error, len(futures))
				for i, fut := range futures {
					if err := fut.Await(); err != nil {
						errs[i] = fmt.Errorf("%s: %w", args[i], err)
					}
				}
				log.ErrorContext(ctx, "failed to destroy sessions", logger.Action("destroy"), logger.Errors(errs...))
				return errors.Join(errs...)
			})
		},
	}
}

func newLengthCmd(f *rootFlags, open openFunc) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "length",
		Short: "Print the number of stored sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withManager(cmd, f, open, func(ctx context.Context, m *session.Manager, _ *slog.Logger) error {
				n, err := m.Length(ctx).AwaitContext(ctx)
				if err != nil {
					return err
				}
				if asJSON {
					return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
						"table":  m.Config().Schema().Table.String(),
						"length": n,
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), n)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}

func newClearCmd(f *rootFlags, open openFunc) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errClearNotConfirmed
			}
			return withManager(cmd, f, open, func(ctx context.Context, m *session.Manager, _ *slog.Logger) error {
				return m.Clear(ctx).AwaitContext(ctx)
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm removal of all sessions")
	return cmd
}

func newHealthCmd(f *rootFlags, open openFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the storage backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := f.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if f.timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, f.timeout)
				defer cancel()
			}

			// no table is touched, so no schema is registered
			b, err := open(ctx, f.backend, session.Schema{}, log)
			if err != nil {
				return errors.Join(health.ErrNotReady, err)
			}
			defer b.release(log)

			if err := health.Readiness(ctx, log, b.check); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "READY")
			return nil
		},
	}
}
