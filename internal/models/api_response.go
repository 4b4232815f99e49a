package models

import (
	"time"
)

// OperationStatus is the state of one operation kind inside a session
type OperationStatus string

const (
	StatusIdle      OperationStatus = "idle"
	StatusInFlight  OperationStatus = "in_flight"
	StatusCompleted OperationStatus = "completed"
	StatusFailed    OperationStatus = "failed"
)

// OperationRecord is a request together with its eventual outcome, as kept in history
type OperationRecord struct {
	Request *OperationRequest `json:"request"`
	Status  OperationStatus   `json:"status"`
	Result  *OperationResult  `json:"result,omitempty"`
	Error   string            `json:"error,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// OperationStateResponse represents one operation kind's state for API responses
type OperationStateResponse struct {
	Kind    OperationKind     `json:"kind"`
	Status  OperationStatus   `json:"status"`
	Request *OperationRequest `json:"request,omitempty"`
	Result  *OperationResult  `json:"result,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// SessionResponse represents a playground session snapshot
type SessionResponse struct {
	SessionID  string                   `json:"session_id"`
	Editors    map[string]string        `json:"editors"`
	Output     string                   `json:"output"`
	Operations []OperationStateResponse `json:"operations"`
	Version    uint64                   `json:"version"`
	CreatedAt  time.Time                `json:"created_at"`
}

// SessionListResponse represents the list of open sessions
type SessionListResponse struct {
	Sessions []string `json:"sessions"`
	Total    int      `json:"total"`
}

// OperationAcceptedResponse is returned when an operation has been triggered
type OperationAcceptedResponse struct {
	SessionID string            `json:"session_id"`
	Request   *OperationRequest `json:"request"`
	Status    OperationStatus   `json:"status"`
}

// OperationListResponse represents a paginated operation history
type OperationListResponse struct {
	SessionID  string             `json:"session_id"`
	Operations []*OperationRecord `json:"operations"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
}

// ExampleSummary represents an example without its source for list views
type ExampleSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}
