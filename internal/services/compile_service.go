package services

import (
	"context"
	"log/slog"

	"playground/internal/generator"
	"playground/internal/models"

	"github.com/benbjohnson/clock"
)

// CompileService simulates compiling a contract to wasm
type CompileService struct {
	generator *generator.Generator
	clock     clock.Clock
}

// NewCompileService creates a new CompileService instance
func NewCompileService(gen *generator.Generator, clk clock.Clock) *CompileService {
	return &CompileService{
		generator: gen,
		clock:     clk,
	}
}

// Process fabricates a successful compilation. The source is not inspected.
func (s *CompileService) Process(ctx context.Context, req *models.OperationRequest) (models.Payload, error) {
	result := &models.CompileResult{
		Success:      true,
		WasmSize:     s.generator.WasmSize(),
		Timestamp:    models.FormatTimestamp(s.clock.Now()),
		ContractHash: s.generator.Hash(),
	}

	slog.Debug("CompileService: Contract compiled",
		"request_id", req.ID,
		"source_bytes", len(req.Input),
		"wasm_size", result.WasmSize,
	)

	return result, nil
}

// Kind returns the operation kind
func (s *CompileService) Kind() models.OperationKind {
	return models.KindCompile
}

// Name returns the service name
func (s *CompileService) Name() string {
	return "CompileService"
}
