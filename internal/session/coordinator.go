package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"playground/internal/catalog"
	"playground/internal/metrics"
	"playground/internal/models"
	"playground/internal/runner"
	"playground/internal/storage"
)

var (
	// ErrOperationInFlight is returned when the same kind is triggered twice before it resolves
	ErrOperationInFlight = errors.New("operation already in flight")

	// ErrSessionClosed is returned when triggering on a closed session
	ErrSessionClosed = errors.New("session is closed")

	// ErrNotCompiled is returned for deploys before a successful compile, when that gate is on
	ErrNotCompiled = errors.New("contract must be compiled before it is deployed")
)

// Coordinator drives one session: it triggers operations and folds their outcomes into the Store
type Coordinator struct {
	id         string
	createdAt  time.Time
	store      *Store
	runner     *runner.Runner
	repository storage.Repository

	// ctx outlives individual triggers and ends when the session is closed
	ctx    context.Context
	cancel context.CancelFunc

	mu             sync.Mutex // serialises the in-flight check with OperationStarted
	closed         bool
	requireCompile bool
	wg     sync.WaitGroup
}

// NewCoordinator creates a Coordinator for session id
func NewCoordinator(id string, createdAt time.Time, store *Store, r *runner.Runner, repository storage.Repository) *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())

	return &Coordinator{
		id:         id,
		createdAt:  createdAt,
		store:      store,
		runner:     r,
		repository: repository,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// ID returns the session ID
func (c *Coordinator) ID() string {
	return c.id
}

// CreatedAt returns when the session was opened
func (c *Coordinator) CreatedAt() time.Time {
	return c.createdAt
}

// Store returns the session store
func (c *Coordinator) Store() *Store {
	return c.store
}

// State returns the current session snapshot
func (c *Coordinator) State() State {
	return c.store.State()
}

// Edit replaces the text of an editor. Edits are accepted while operations are in flight.
func (c *Coordinator) Edit(tab Tab, text string) (State, error) {
	if _, err := ParseTab(string(tab)); err != nil {
		return State{}, err
	}
	return c.store.Dispatch(EditorChanged{Tab: tab, Text: text}), nil
}

// LoadExample opens a catalog example in the contract editor
func (c *Coordinator) LoadExample(exampleID string) (State, error) {
	example, err := catalog.Example(exampleID)
	if err != nil {
		return State{}, err
	}
	return c.store.Dispatch(ExampleLoaded{Example: example}), nil
}

// SetRequireCompile makes deploy wait for a completed compile in this session
func (c *Coordinator) SetRequireCompile(require bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requireCompile = require
}

// Trigger starts kind using the text of its editor as input.
// At most one operation per kind is in flight; a second trigger returns ErrOperationInFlight.
func (c *Coordinator) Trigger(ctx context.Context, kind models.OperationKind) (*Handle, error) {
	if _, err := models.ParseKind(string(kind)); err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrSessionClosed
	}

	state := c.store.State()
	if state.InFlight(kind) {
		c.mu.Unlock()
		metrics.OperationsRejected.WithLabelValues(string(kind)).Inc()
		slog.Debug("Trigger ignored, operation already in flight",
			"session_id", c.id,
			"kind", kind,
		)
		return nil, fmt.Errorf("%w: %s", ErrOperationInFlight, kind)
	}

	if kind == models.KindDeploy && c.requireCompile &&
		state.Operation(models.KindCompile).Status != models.StatusCompleted {
		c.mu.Unlock()
		metrics.OperationsRejected.WithLabelValues(string(kind)).Inc()
		return nil, ErrNotCompiled
	}

	req := c.runner.NewRequest(kind, state.Editor(TabFor(kind)), c.id)
	c.store.Dispatch(OperationStarted{Request: req})
	c.wg.Add(1)
	c.mu.Unlock()

	if err := c.repository.SaveRequest(ctx, req); err != nil {
		slog.Warn("Failed to record operation request",
			"session_id", c.id,
			"request_id", req.ID,
			"error", err,
		)
	}

	slog.Info("Operation triggered",
		"session_id", c.id,
		"request_id", req.ID,
		"kind", kind,
	)

	pending := c.runner.Submit(c.ctx, req)
	handle := &Handle{Request: req, done: make(chan struct{})}
	go c.await(pending, handle)

	return handle, nil
}

func (c *Coordinator) await(pending *runner.Pending, handle *Handle) {
	defer c.wg.Done()
	defer close(handle.done)

	req := pending.Request
	<-pending.Done()
	result, err := pending.Result()

	// Recording history must not depend on the session still being open
	ctx := context.Background()

	if err != nil {
		message := runner.ErrorMessage(err)
		handle.err = err
		c.store.Dispatch(OperationFailed{Kind: req.Kind, RequestID: req.ID, Message: message})
		if saveErr := c.repository.SaveFailure(ctx, req.ID, message); saveErr != nil {
			slog.Warn("Failed to record operation failure",
				"request_id", req.ID,
				"error", saveErr,
			)
		}
		return
	}

	handle.result = result
	c.store.Dispatch(OperationCompleted{Result: result})
	if saveErr := c.repository.SaveResult(ctx, result); saveErr != nil {
		slog.Warn("Failed to record operation result",
			"request_id", req.ID,
			"error", saveErr,
		)
	}
}

// Wait blocks until every triggered operation has been folded into the store
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

// Close cancels outstanding operations and waits for them to resolve
func (c *Coordinator) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.cancel()
	c.wg.Wait()
}

// Handle tracks one triggered operation
type Handle struct {
	Request *models.OperationRequest

	done   chan struct{}
	result *models.OperationResult
	err    error
}

// Done is closed once the outcome is visible in the session state
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Result returns the outcome; only valid after Done is closed
func (h *Handle) Result() (*models.OperationResult, error) {
	return h.result, h.err
}
