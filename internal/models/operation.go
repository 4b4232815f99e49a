package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrUnknownKind is returned for operation kinds the playground does not simulate
var ErrUnknownKind = errors.New("unknown operation kind")

// OperationKind identifies one of the simulated playground operations
type OperationKind string

const (
	KindCompile OperationKind = "compile"
	KindDeploy  OperationKind = "deploy"
	KindInvoke  OperationKind = "invoke"
)

// Kinds lists every operation kind in display order
var Kinds = []OperationKind{KindCompile, KindDeploy, KindInvoke}

// ParseKind converts a string into an OperationKind
func ParseKind(s string) (OperationKind, error) {
	switch OperationKind(s) {
	case KindCompile, KindDeploy, KindInvoke:
		return OperationKind(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// OperationRequest is created when a user action fires and never changes afterwards
type OperationRequest struct {
	ID        string        `json:"id"`
	SessionID string        `json:"session_id,omitempty"`
	Kind      OperationKind `json:"kind"`
	Input     string        `json:"input"`
	IssuedAt  time.Time     `json:"issued_at"`
}

// Payload is the kind-specific body of an OperationResult
type Payload interface {
	OperationKind() OperationKind
}

// OperationResult is created exactly once per request, upon completion
type OperationResult struct {
	RequestID   string        `json:"request_id"`
	Kind        OperationKind `json:"kind"`
	Success     bool          `json:"success"`
	Payload     Payload       `json:"payload"`
	CompletedAt time.Time     `json:"completed_at"`
}

// UnmarshalJSON decodes the payload into the concrete type for Kind
func (r *OperationResult) UnmarshalJSON(data []byte) error {
	type alias OperationResult
	aux := struct {
		*alias
		Payload json.RawMessage `json:"payload"`
	}{alias: (*alias)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	r.Payload = nil
	if len(aux.Payload) == 0 || bytes.Equal(aux.Payload, []byte("null")) {
		return nil
	}

	payload, err := NewPayload(r.Kind)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(aux.Payload, payload); err != nil {
		return fmt.Errorf("failed to decode %s payload: %w", r.Kind, err)
	}
	r.Payload = payload
	return nil
}

// NewPayload returns an empty payload of the type produced by kind
func NewPayload(kind OperationKind) (Payload, error) {
	switch kind {
	case KindCompile:
		return &CompileResult{}, nil
	case KindDeploy:
		return &DeployResult{}, nil
	case KindInvoke:
		return &InvokeResult{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// CompileResult is the payload returned by compile
type CompileResult struct {
	Success      bool   `json:"success"`
	WasmSize     int    `json:"wasmSize"`
	Timestamp    string `json:"timestamp"`
	ContractHash string `json:"contractHash"`
}

func (r *CompileResult) OperationKind() OperationKind { return KindCompile }

// DeployResult is the payload returned by deploy
type DeployResult struct {
	Success         bool   `json:"success"`
	Network         string `json:"network"`
	ContractID      string `json:"contractId"`
	Timestamp       string `json:"timestamp"`
	TransactionHash string `json:"transactionHash"`
}

func (r *DeployResult) OperationKind() OperationKind { return KindDeploy }

// InvokeResult is the payload returned by invoke
type InvokeResult struct {
	Success         bool          `json:"success"`
	Result          []interface{} `json:"result"`
	Timestamp       string        `json:"timestamp"`
	GasUsed         int           `json:"gasUsed"`
	TransactionHash string        `json:"transactionHash"`
}

func (r *InvokeResult) OperationKind() OperationKind { return KindInvoke }

// TimestampLayout renders completion timestamps as ISO-8601 with millisecond precision
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTimestamp formats t in UTC using TimestampLayout
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
