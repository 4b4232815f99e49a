package services

import (
	"context"
	"log/slog"

	"playground/internal/generator"
	"playground/internal/models"

	"github.com/benbjohnson/clock"
)

// InvokeService simulates calling a function on a deployed contract
type InvokeService struct {
	generator *generator.Generator
	clock     clock.Clock
}

// NewInvokeService creates a new InvokeService instance
func NewInvokeService(gen *generator.Generator, clk clock.Clock) *InvokeService {
	return &InvokeService{
		generator: gen,
		clock:     clk,
	}
}

// Process fabricates a successful invocation of the hello world contract
func (s *InvokeService) Process(ctx context.Context, req *models.OperationRequest) (models.Payload, error) {
	result := &models.InvokeResult{
		Success:         true,
		Result:          []interface{}{"Hello", "Developer"},
		Timestamp:       models.FormatTimestamp(s.clock.Now()),
		GasUsed:         s.generator.GasUsed(),
		TransactionHash: s.generator.Hash(),
	}

	slog.Debug("InvokeService: Contract invoked",
		"request_id", req.ID,
		"gas_used", result.GasUsed,
	)

	return result, nil
}

// Kind returns the operation kind
func (s *InvokeService) Kind() models.OperationKind {
	return models.KindInvoke
}

// Name returns the service name
func (s *InvokeService) Name() string {
	return "InvokeService"
}
