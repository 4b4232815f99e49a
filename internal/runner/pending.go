package runner

import (
	"context"
	"errors"

	"playground/internal/models"
)

// ErrNotDone is returned by Pending.Result while the operation is still in flight
var ErrNotDone = errors.New("operation still in flight")

// Pending is the future of a submitted operation
type Pending struct {
	Request *models.OperationRequest

	done   chan struct{}
	result *models.OperationResult
	err    error
	cancel context.CancelFunc
}

// Done is closed once the operation has resolved
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the operation resolves or ctx ends.
// Giving up on the wait does not cancel the operation.
func (p *Pending) Wait(ctx context.Context) (*models.OperationResult, error) {
	select {
	case <-p.done:
		return p.result, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Result returns the outcome without blocking
func (p *Pending) Result() (*models.OperationResult, error) {
	select {
	case <-p.done:
		return p.result, p.err
	default:
		return nil, ErrNotDone
	}
}

// Cancel aborts the operation if its delay has not elapsed yet
func (p *Pending) Cancel() {
	p.cancel()
}
