// Package runner executes playground operations after their simulated latency.
//
// Every submitted request gets its own timer and goroutine. Requests never share
// mutable state, so any number of them may be in flight at once. A Pending
// resolves exactly once, with either a result or an *OperationFailure.
package runner

import (
	"context"
	"log/slog"
	"time"

	"playground/internal/metrics"
	"playground/internal/models"
	"playground/internal/orchestrator"
	"playground/internal/retry"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
)

// Default simulated latencies
const (
	DefaultCompileDelay = 1500 * time.Millisecond
	DefaultDeployDelay  = 2000 * time.Millisecond
	DefaultInvokeDelay  = 1000 * time.Millisecond
)

// DefaultDelays returns the simulated latency of every operation kind
func DefaultDelays() map[models.OperationKind]time.Duration {
	return map[models.OperationKind]time.Duration{
		models.KindCompile: DefaultCompileDelay,
		models.KindDeploy:  DefaultDeployDelay,
		models.KindInvoke:  DefaultInvokeDelay,
	}
}

// Runner schedules operations on a clock and hands them to the orchestrator
type Runner struct {
	orchestrator *orchestrator.Orchestrator
	strategy     retry.Strategy
	clock        clock.Clock
	delays       map[models.OperationKind]time.Duration
}

// New creates a Runner. Kinds missing from delays complete without waiting.
func New(orch *orchestrator.Orchestrator, strategy retry.Strategy, clk clock.Clock, delays map[models.OperationKind]time.Duration) *Runner {
	if strategy == nil {
		strategy = retry.NewNoRetryStrategy()
	}
	if clk == nil {
		clk = clock.New()
	}

	d := make(map[models.OperationKind]time.Duration, len(delays))
	for kind, delay := range delays {
		d[kind] = delay
	}

	return &Runner{
		orchestrator: orch,
		strategy:     strategy,
		clock:        clk,
		delays:       d,
	}
}

// Delay returns the simulated latency for kind
func (r *Runner) Delay(kind models.OperationKind) time.Duration {
	return r.delays[kind]
}

// NewRequest issues a request stamped with a fresh ID and the current time
func (r *Runner) NewRequest(kind models.OperationKind, input, sessionID string) *models.OperationRequest {
	return &models.OperationRequest{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Kind:      kind,
		Input:     input,
		IssuedAt:  r.clock.Now().UTC(),
	}
}

// Submit starts req and returns immediately.
// Cancelling ctx or calling Pending.Cancel before the delay elapses aborts the operation.
func (r *Runner) Submit(ctx context.Context, req *models.OperationRequest) *Pending {
	opCtx, cancel := context.WithCancel(ctx)
	p := &Pending{
		Request: req,
		done:    make(chan struct{}),
		cancel:  cancel,
	}

	kind := string(req.Kind)
	delay := r.Delay(req.Kind)

	// The timer must exist before Submit returns so that a mock clock advanced
	// right after Submit fires it.
	timer := r.clock.Timer(delay)
	start := r.clock.Now()

	metrics.OperationsStarted.WithLabelValues(kind).Inc()
	metrics.OperationsInFlight.WithLabelValues(kind).Inc()

	slog.Debug("Operation submitted",
		"request_id", req.ID,
		"kind", req.Kind,
		"delay", delay,
	)

	go r.run(opCtx, p, timer, start)

	return p
}

func (r *Runner) run(ctx context.Context, p *Pending, timer *clock.Timer, start time.Time) {
	req := p.Request
	kind := string(req.Kind)

	defer p.cancel()
	defer close(p.done)
	defer metrics.OperationsInFlight.WithLabelValues(kind).Dec()

	select {
	case <-ctx.Done():
		timer.Stop()
		p.err = &OperationFailure{Kind: req.Kind, RequestID: req.ID, Err: ctx.Err()}
		metrics.OperationsFailed.WithLabelValues(kind).Inc()
		slog.Info("Operation cancelled before completion",
			"request_id", req.ID,
			"kind", req.Kind,
		)
		return
	case <-timer.C:
	}

	var payload models.Payload
	err := r.strategy.Execute(ctx, func(ctx context.Context) error {
		var err error
		payload, err = r.orchestrator.Dispatch(ctx, req)
		return err
	})
	if err != nil {
		p.err = &OperationFailure{Kind: req.Kind, RequestID: req.ID, Err: err}
		metrics.OperationsFailed.WithLabelValues(kind).Inc()
		slog.Warn("Operation failed",
			"request_id", req.ID,
			"kind", req.Kind,
			"error", err,
		)
		return
	}

	p.result = &models.OperationResult{
		RequestID:   req.ID,
		Kind:        req.Kind,
		Success:     true,
		Payload:     payload,
		CompletedAt: r.clock.Now().UTC(),
	}

	elapsed := r.clock.Since(start)
	metrics.OperationsCompleted.WithLabelValues(kind).Inc()
	metrics.OperationDuration.WithLabelValues(kind).Observe(elapsed.Seconds())

	slog.Debug("Operation completed",
		"request_id", req.ID,
		"kind", req.Kind,
		"duration_ms", elapsed.Milliseconds(),
	)
}

// Run submits req and blocks until it resolves
func (r *Runner) Run(ctx context.Context, req *models.OperationRequest) (*models.OperationResult, error) {
	p := r.Submit(ctx, req)
	<-p.Done()
	return p.Result()
}

// Compile simulates compiling source
func (r *Runner) Compile(ctx context.Context, source string) (*models.CompileResult, error) {
	return runAs[*models.CompileResult](ctx, r, models.KindCompile, source)
}

// Deploy simulates deploying source to the configured network
func (r *Runner) Deploy(ctx context.Context, source string) (*models.DeployResult, error) {
	return runAs[*models.DeployResult](ctx, r, models.KindDeploy, source)
}

// Invoke simulates running an invocation script against a deployed contract
func (r *Runner) Invoke(ctx context.Context, script string) (*models.InvokeResult, error) {
	return runAs[*models.InvokeResult](ctx, r, models.KindInvoke, script)
}

func runAs[T models.Payload](ctx context.Context, r *Runner, kind models.OperationKind, input string) (T, error) {
	var zero T

	res, err := r.Run(ctx, r.NewRequest(kind, input, ""))
	if err != nil {
		return zero, err
	}

	payload, ok := res.Payload.(T)
	if !ok {
		return zero, &OperationFailure{
			Kind:      kind,
			RequestID: res.RequestID,
			Err:       errUnexpectedPayload(res.Payload),
		}
	}
	return payload, nil
}
