package storage

import (
	"context"
	"errors"

	"playground/internal/models"
)

// ErrNotFound is returned when an operation does not exist
var ErrNotFound = errors.New("operation not found")

// Repository defines the interface for operation history storage
type Repository interface {
	// Operations
	SaveRequest(ctx context.Context, req *models.OperationRequest) error
	SaveResult(ctx context.Context, result *models.OperationResult) error
	SaveFailure(ctx context.Context, requestID string, message string) error
	GetOperation(ctx context.Context, requestID string) (*models.OperationRecord, error)
	ListOperations(ctx context.Context, filter models.OperationFilter) ([]*models.OperationRecord, error)
	CountOperations(ctx context.Context, filter models.OperationFilter) (int, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Health & Maintenance
	Ping(ctx context.Context) error
	Close() error
}
