package pipeline

import (
	"log/slog"
)

// Orderer receives outcomes in completion order and emits them in submission order
type Orderer struct {
	emit func(*Outcome) error

	nextExpected int              // Next sequence we expect to emit
	pending      map[int]*Outcome // Buffered out-of-order outcomes
}

// NewOrderer creates an orderer that starts emitting at sequence 0
func NewOrderer(emit func(*Outcome) error) *Orderer {
	return &Orderer{
		emit:    emit,
		pending: make(map[int]*Outcome),
	}
}

// Add buffers an outcome and emits every outcome that is now in order
func (o *Orderer) Add(outcome *Outcome) error {
	o.pending[outcome.Sequence] = outcome

	slog.Debug("Orderer received outcome",
		"sequence", outcome.Sequence,
		"worker_id", outcome.WorkerID,
		"pending_count", len(o.pending),
		"next_expected", o.nextExpected,
	)

	for {
		data, exists := o.pending[o.nextExpected]
		if !exists {
			break
		}

		delete(o.pending, o.nextExpected)
		o.nextExpected++

		if err := o.emit(data); err != nil {
			return err
		}
	}

	return nil
}

// PendingCount returns the number of outcomes waiting for an earlier sequence
func (o *Orderer) PendingCount() int {
	return len(o.pending)
}

// NextExpected returns the sequence the orderer is waiting for
func (o *Orderer) NextExpected() int {
	return o.nextExpected
}
