package services

import (
	"context"

	"playground/internal/models"
)

// Service defines the interface that every operation backend must implement.
// The mock services fabricate payloads; a real backend would compile, deploy or invoke.
type Service interface {
	// Process handles a single request and returns its kind-specific payload.
	// Returned errors are surfaced to the user as a failed operation.
	Process(ctx context.Context, req *models.OperationRequest) (models.Payload, error)

	// Kind returns the operation kind this service handles
	Kind() models.OperationKind

	// Name returns the service name for logging
	Name() string
}
