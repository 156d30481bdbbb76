package logger

import (
	"io"
	"log/slog"
	"os"
)

type config struct {
	output  io.Writer
	level   slog.Level
	json    bool
	service string
}

// Option configures a logger built by New.
type Option func(*config)

// WithOutput sets the destination writer. Defaults to os.Stderr.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithLevel sets the minimum level. Defaults to slog.LevelInfo.
func WithLevel(level slog.Level) Option {
	return func(c *config) {
		c.level = level
	}
}

// WithJSONFormatter switches output to JSON. Text is the default.
func WithJSONFormatter() Option {
	return func(c *config) {
		c.json = true
	}
}

// WithService adds a "service" attribute to every record.
func WithService(name string) Option {
	return func(c *config) {
		c.service = name
	}
}

// New builds a slog.Logger from options.
func New(opts ...Option) *slog.Logger {
	cfg := &config{
		output: os.Stderr,
		level:  slog.LevelInfo,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	handlerOpts := &slog.HandlerOptions{Level: cfg.level}

	var h slog.Handler
	if cfg.json {
		h = slog.NewJSONHandler(cfg.output, handlerOpts)
	} else {
		h = slog.NewTextHandler(cfg.output, handlerOpts)
	}

	l := slog.New(h)
	if cfg.service != "" {
		l = l.With(slog.String("service", cfg.service))
	}
	return l
}

// Discard returns a logger that drops every record.
// Components use it when no logger is configured.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
