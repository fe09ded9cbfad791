package fifo

import "log/slog"

// Option configures a FIFO.
type Option func(*config)

type config struct {
	logger *slog.Logger
	name   string
}

// WithLogger sets the logger used to report status transitions.
// Without it the package default from internal/logging is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithName attaches a name to every log record of the FIFO.
func WithName(name string) Option {
	return func(c *config) { c.name = name }
}
