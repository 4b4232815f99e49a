package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
)

// ExponentialBackoffStrategy retries recoverable failures with a doubling delay
type ExponentialBackoffStrategy struct {
	maxRetries   int
	initialDelay time.Duration
	maxDelay     time.Duration
	clock        clock.Clock
}

// NewExponentialBackoffStrategy creates a new ExponentialBackoffStrategy on the wall clock
func NewExponentialBackoffStrategy(maxRetries int, initialDelay, maxDelay time.Duration) *ExponentialBackoffStrategy {
	return &ExponentialBackoffStrategy{
		maxRetries:   maxRetries,
		initialDelay: initialDelay,
		maxDelay:     maxDelay,
		clock:        clock.New(),
	}
}

// WithClock replaces the clock used for backoff waits
func (s *ExponentialBackoffStrategy) WithClock(clk clock.Clock) *ExponentialBackoffStrategy {
	if clk != nil {
		s.clock = clk
	}
	return s
}

// Execute runs the call with exponential backoff retry logic
func (s *ExponentialBackoffStrategy) Execute(ctx context.Context, call Call) error {
	var lastErr error
	delay := s.initialDelay

	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		err := call(ctx)

		if err == nil {
			if attempt > 0 {
				slog.Info("Backend call succeeded after retry",
					"attempt", attempt+1,
					"total_attempts", s.maxRetries+1)
			}
			return nil
		}

		lastErr = err

		if !isRecoverableError(err) {
			slog.Error("Non-recoverable backend error, failing immediately",
				"error", err,
				"attempt", attempt+1)
			return err
		}

		if attempt >= s.maxRetries {
			break
		}

		slog.Warn("Backend call failed, retrying with exponential backoff",
			"attempt", attempt+1,
			"max_attempts", s.maxRetries+1,
			"retry_in", delay,
			"error", err)

		timer := s.clock.Timer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("context cancelled during retry: %w", ctx.Err())
		case <-timer.C:
			delay *= 2
			if delay > s.maxDelay {
				delay = s.maxDelay
			}
		}
	}

	return fmt.Errorf("backend call failed after %d attempts: %w", s.maxRetries+1, lastErr)
}

// Name returns the strategy name
func (s *ExponentialBackoffStrategy) Name() string {
	return "ExponentialBackoff"
}

// retryable is implemented by backend errors that know whether they are transient
type retryable interface {
	Retryable() bool
}

// isRecoverableError determines if an error is worth retrying
func isRecoverableError(err error) bool {
	if err == nil {
		return false
	}

	var r retryable
	if errors.As(err, &r) {
		return r.Retryable()
	}

	if errors.Is(err, context.Canceled) {
		return false
	}

	errStr := strings.ToLower(err.Error())

	recoverablePatterns := []string{
		"connection reset by peer",
		"connection refused",
		"timeout",
		"temporary failure",
		"network is unreachable",
		"broken pipe",
		"eof",
		"no such host",
		"dial tcp",
		"rate limit",
	}

	for _, pattern := range recoverablePatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}

	return false
}
