package retry

import (
	"context"
)

// NoRetryStrategy executes a call exactly once
type NoRetryStrategy struct{}

// NewNoRetryStrategy creates a new NoRetryStrategy
func NewNoRetryStrategy() *NoRetryStrategy {
	return &NoRetryStrategy{}
}

// Execute runs the call once without retrying
func (s *NoRetryStrategy) Execute(ctx context.Context, call Call) error {
	return call(ctx)
}

// Name returns the strategy name
func (s *NoRetryStrategy) Name() string {
	return "NoRetry"
}
