package retry

import (
	"context"
	"log/slog"

	"github.com/benbjohnson/clock"
)

// Strategy defines how a backend call is attempted
type Strategy interface {
	// Execute runs the call with the configured retry logic
	Execute(ctx context.Context, call Call) error

	// Name returns the name of the strategy for logging
	Name() string
}

// Call is a backend invocation that can be retried
type Call func(ctx context.Context) error

// NewStrategy creates a retry strategy based on configuration.
// Backoff waits are scheduled on clk so tests can drive them with a mock clock.
func NewStrategy(config Config, clk clock.Clock) Strategy {
	if !config.Enabled {
		slog.Debug("Retry disabled, using NoRetryStrategy")
		return NewNoRetryStrategy()
	}

	slog.Info("Retry enabled, using ExponentialBackoffStrategy",
		"max_retries", config.MaxRetries,
		"initial_delay", config.InitialDelay,
		"max_delay", config.MaxDelay,
	)

	return NewExponentialBackoffStrategy(
		config.MaxRetries,
		config.InitialDelay,
		config.MaxDelay,
	).WithClock(clk)
}
