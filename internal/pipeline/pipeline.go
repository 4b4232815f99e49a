// Package pipeline resolves a batch of requests in parallel and reports them in order.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"playground/internal/models"
	"playground/internal/runner"

	"golang.org/x/sync/errgroup"
)

// Pipeline fans a batch of requests out to workers
type Pipeline struct {
	config Config
	runner *runner.Runner
}

// New creates a pipeline that resolves requests on r
func New(config Config, r *runner.Runner) *Pipeline {
	return &Pipeline{
		config: config,
		runner: r,
	}
}

// Run resolves every request and calls emit once per request, in the order given.
// A failed request is emitted with Err set; Run itself only fails when emit does,
// when ctx ends, or on the first failure with FailFast.
func (p *Pipeline) Run(ctx context.Context, reqs []*models.OperationRequest, emit func(*Outcome) error) error {
	workers := p.config.WorkerCount
	if workers <= 0 || workers > len(reqs) {
		workers = len(reqs)
	}

	slog.Info("Pipeline starting",
		"requests", len(reqs),
		"workers", workers,
	)

	// Cancelled when emit fails so outstanding requests stop waiting on their delay
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	results := make(chan *Outcome, len(reqs))

	jobs := make(chan int)
	g.Go(func() error {
		defer close(jobs)
		for i := range reqs {
			select {
			case jobs <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		workerID := w
		g.Go(func() error {
			return p.work(gctx, workerID, reqs, jobs, results)
		})
	}

	go func() {
		g.Wait()
		close(results)
	}()

	orderer := NewOrderer(emit)
	var emitErr error
	for outcome := range results {
		if emitErr != nil {
			continue
		}
		if emitErr = orderer.Add(outcome); emitErr != nil {
			cancel()
		}
	}

	waitErr := g.Wait()
	if emitErr != nil {
		return emitErr
	}
	if waitErr != nil {
		return waitErr
	}

	slog.Info("Pipeline finished", "requests", len(reqs))
	return nil
}

func (p *Pipeline) work(ctx context.Context, workerID int, reqs []*models.OperationRequest, jobs <-chan int, results chan<- *Outcome) error {
	for seq := range jobs {
		start := time.Now()
		res, err := p.runner.Run(ctx, reqs[seq])

		results <- &Outcome{
			Sequence:       seq,
			Request:        reqs[seq],
			Result:         res,
			Err:            err,
			ProcessingTime: time.Since(start),
			WorkerID:       workerID,
		}

		slog.Debug("Worker resolved request",
			"worker_id", workerID,
			"sequence", seq,
			"request_id", reqs[seq].ID,
		)

		if err != nil && p.config.FailFast {
			return err
		}
	}
	return nil
}
