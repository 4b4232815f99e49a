package orchestrator

import (
	"context"
	"fmt"
	"log/slog"

	"playground/internal/metrics"
	"playground/internal/models"
	"playground/internal/services"
)

// Orchestrator routes operation requests to the service registered for their kind
type Orchestrator struct {
	services []services.Service
	byKind   map[models.OperationKind]services.Service
}

// New creates a new Orchestrator with the given services.
// A later service replaces an earlier one registered for the same kind.
func New(svcs []services.Service) *Orchestrator {
	byKind := make(map[models.OperationKind]services.Service, len(svcs))
	for _, s := range svcs {
		byKind[s.Kind()] = s
	}

	return &Orchestrator{
		services: svcs,
		byKind:   byKind,
	}
}

// Dispatch runs a request through the service for its kind
func (o *Orchestrator) Dispatch(ctx context.Context, req *models.OperationRequest) (models.Payload, error) {
	service, ok := o.byKind[req.Kind]
	if !ok {
		return nil, fmt.Errorf("no service registered for %q operations", req.Kind)
	}

	slog.Debug("Orchestrator: Dispatching request",
		"request_id", req.ID,
		"kind", req.Kind,
		"service", service.Name(),
	)

	payload, err := service.Process(ctx, req)
	if err != nil {
		metrics.ErrorsTotal.WithLabelValues(service.Name()).Inc()
		slog.Error("Service processing failed",
			"service", service.Name(),
			"request_id", req.ID,
			"error", err,
		)
		return nil, err
	}

	return payload, nil
}

// Services returns the list of registered services (for inspection/testing)
func (o *Orchestrator) Services() []services.Service {
	return o.services
}
