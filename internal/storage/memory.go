package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"playground/internal/models"

	"github.com/benbjohnson/clock"
)

var errClosed = errors.New("repository is closed")

// MemoryRepository implements the Repository interface in process memory.
// History is lost when the process exits.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[string]*models.OperationRecord
	order   []string // request IDs, oldest first
	closed  bool
	clock   clock.Clock
}

// NewMemoryRepository creates an empty MemoryRepository stamping records with clk
func NewMemoryRepository(clk clock.Clock) *MemoryRepository {
	if clk == nil {
		clk = clock.New()
	}

	return &MemoryRepository{
		records: make(map[string]*models.OperationRecord),
		clock:   clk,
	}
}

// SaveRequest records a newly issued request as in flight
func (r *MemoryRepository) SaveRequest(ctx context.Context, req *models.OperationRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return errClosed
	}
	if _, exists := r.records[req.ID]; exists {
		return fmt.Errorf("operation already recorded: %s", req.ID)
	}

	r.records[req.ID] = &models.OperationRecord{
		Request:   req,
		Status:    models.StatusInFlight,
		UpdatedAt: r.clock.Now().UTC(),
	}
	r.order = append(r.order, req.ID)

	return nil
}

// SaveResult marks the request as completed with result
func (r *MemoryRepository) SaveResult(ctx context.Context, result *models.OperationResult) error {
	return r.update(result.RequestID, func(rec *models.OperationRecord) {
		rec.Status = models.StatusCompleted
		rec.Result = result
	})
}

// SaveFailure marks the request as failed with message
func (r *MemoryRepository) SaveFailure(ctx context.Context, requestID string, message string) error {
	return r.update(requestID, func(rec *models.OperationRecord) {
		rec.Status = models.StatusFailed
		rec.Error = message
	})
}

func (r *MemoryRepository) update(requestID string, apply func(rec *models.OperationRecord)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return errClosed
	}

	rec, ok := r.records[requestID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, requestID)
	}

	// Records handed out earlier must not change under their readers
	updated := *rec
	apply(&updated)
	updated.UpdatedAt = r.clock.Now().UTC()
	r.records[requestID] = &updated

	return nil
}

// GetOperation retrieves an operation by request ID
func (r *MemoryRepository) GetOperation(ctx context.Context, requestID string) (*models.OperationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[requestID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, requestID)
	}
	return rec, nil
}

// ListOperations lists the operations matching filter, newest first, with pagination
func (r *MemoryRepository) ListOperations(ctx context.Context, filter models.OperationFilter) ([]*models.OperationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := []*models.OperationRecord{}
	skipped := 0
	for i := len(r.order) - 1; i >= 0; i-- {
		rec := r.records[r.order[i]]
		if !filter.Matches(rec) {
			continue
		}
		if skipped < filter.Offset {
			skipped++
			continue
		}
		if filter.Limit > 0 && len(records) >= filter.Limit {
			break
		}
		records = append(records, rec)
	}

	return records, nil
}

// CountOperations returns the number of operations matching filter, ignoring pagination
func (r *MemoryRepository) CountOperations(ctx context.Context, filter models.OperationFilter) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, rec := range r.records {
		if filter.Matches(rec) {
			count++
		}
	}
	return count, nil
}

// DeleteSession drops every operation of a session
func (r *MemoryRepository) DeleteSession(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.order[:0]
	for _, id := range r.order {
		if r.records[id].Request.SessionID == sessionID {
			delete(r.records, id)
			continue
		}
		kept = append(kept, id)
	}
	r.order = kept

	return nil
}

// Ping reports whether the repository is usable
func (r *MemoryRepository) Ping(ctx context.Context) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return errClosed
	}
	return nil
}

// Close rejects further writes
func (r *MemoryRepository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	return nil
}
