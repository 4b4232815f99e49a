package services

import (
	"context"
	"log/slog"

	"playground/internal/generator"
	"playground/internal/models"

	"github.com/benbjohnson/clock"
)

// DeployService simulates deploying a compiled contract
type DeployService struct {
	generator *generator.Generator
	clock     clock.Clock
	network   string // label reported to the user, e.g. "testnet"
}

// NewDeployService creates a new DeployService instance
func NewDeployService(gen *generator.Generator, clk clock.Clock, network string) *DeployService {
	return &DeployService{
		generator: gen,
		clock:     clk,
		network:   network,
	}
}

// Process fabricates a successful deployment with a fresh contract ID
func (s *DeployService) Process(ctx context.Context, req *models.OperationRequest) (models.Payload, error) {
	result := &models.DeployResult{
		Success:         true,
		Network:         s.network,
		ContractID:      s.generator.ContractID(),
		Timestamp:       models.FormatTimestamp(s.clock.Now()),
		TransactionHash: s.generator.Hash(),
	}

	slog.Debug("DeployService: Contract deployed",
		"request_id", req.ID,
		"network", s.network,
		"contract_id", result.ContractID,
	)

	return result, nil
}

// Kind returns the operation kind
func (s *DeployService) Kind() models.OperationKind {
	return models.KindDeploy
}

// Name returns the service name
func (s *DeployService) Name() string {
	return "DeployService"
}
