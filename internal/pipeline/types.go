package pipeline

import (
	"time"

	"playground/internal/models"
)

// Outcome is one resolved request of a batch.
// Workers resolve requests in any order; the orderer emits them by Sequence.
type Outcome struct {
	Sequence int
	Request  *models.OperationRequest
	Result   *models.OperationResult
	Err      error

	// Processing metrics
	ProcessingTime time.Duration
	WorkerID       int
}

// Config contains configuration for a batch pipeline
type Config struct {
	// Requests resolved at once ( 0 means one per request )
	WorkerCount int

	// Stop emitting after the first failed request
	FailFast bool
}
