package session

import "playground/internal/models"

// Action is a state change request handled by Reduce
type Action interface {
	actionName() string
}

// EditorChanged replaces the text of one editor
type EditorChanged struct {
	Tab  Tab
	Text string
}

// ExampleLoaded opens an example in the contract editor
type ExampleLoaded struct {
	Example models.Example
}

// OperationStarted moves a kind to InFlight
type OperationStarted struct {
	Request *models.OperationRequest
}

// OperationCompleted records the result of an in-flight request
type OperationCompleted struct {
	Result *models.OperationResult
}

// OperationFailed records the failure of an in-flight request
type OperationFailed struct {
	Kind      models.OperationKind
	RequestID string
	Message   string
}

func (EditorChanged) actionName() string      { return "editor_changed" }
func (ExampleLoaded) actionName() string      { return "example_loaded" }
func (OperationStarted) actionName() string   { return "operation_started" }
func (OperationCompleted) actionName() string { return "operation_completed" }
func (OperationFailed) actionName() string    { return "operation_failed" }
