package session

import (
	"errors"
	"fmt"

	"playground/internal/models"
)

// ErrUnknownTab is returned for editor tabs the playground does not have
var ErrUnknownTab = errors.New("unknown editor tab")

// Tab names one of the playground's editors
type Tab string

const (
	TabContract Tab = "contract"
	TabDeploy   Tab = "deploy"
	TabInvoke   Tab = "invoke"
)

// Tabs lists every editor tab in display order
var Tabs = []Tab{TabContract, TabDeploy, TabInvoke}

// ParseTab converts a string into a Tab
func ParseTab(s string) (Tab, error) {
	switch Tab(s) {
	case TabContract, TabDeploy, TabInvoke:
		return Tab(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTab, s)
}

// TabFor returns the editor whose text is the input of kind
func TabFor(kind models.OperationKind) Tab {
	switch kind {
	case models.KindDeploy:
		return TabDeploy
	case models.KindInvoke:
		return TabInvoke
	default:
		return TabContract
	}
}

// OperationState is the status of one operation kind and its latest outcome
type OperationState struct {
	Status  models.OperationStatus
	Request *models.OperationRequest
	Result  *models.OperationResult
	Error   string
}

// State is an immutable snapshot of a playground session.
// Reduce never modifies a State in place, so snapshots can be shared freely.
type State struct {
	Editors    map[Tab]string
	Output     string
	Operations map[models.OperationKind]OperationState
	Version    uint64
}

// NewState returns the state of a fresh session
func NewState(contractSource string) State {
	editors := make(map[Tab]string, len(Tabs))
	for _, tab := range Tabs {
		editors[tab] = ""
	}
	editors[TabContract] = contractSource

	ops := make(map[models.OperationKind]OperationState, len(models.Kinds))
	for _, kind := range models.Kinds {
		ops[kind] = OperationState{Status: models.StatusIdle}
	}

	return State{
		Editors:    editors,
		Operations: ops,
	}
}

// Operation returns the state of kind; unknown kinds are idle
func (s State) Operation(kind models.OperationKind) OperationState {
	op, ok := s.Operations[kind]
	if !ok {
		return OperationState{Status: models.StatusIdle}
	}
	return op
}

// InFlight reports whether kind is waiting for its outcome
func (s State) InFlight(kind models.OperationKind) bool {
	return s.Operation(kind).Status == models.StatusInFlight
}

// Editor returns the text of tab
func (s State) Editor(tab Tab) string {
	return s.Editors[tab]
}

func (s State) clone() State {
	editors := make(map[Tab]string, len(s.Editors))
	for k, v := range s.Editors {
		editors[k] = v
	}

	ops := make(map[models.OperationKind]OperationState, len(s.Operations))
	for k, v := range s.Operations {
		ops[k] = v
	}

	return State{
		Editors:    editors,
		Output:     s.Output,
		Operations: ops,
		Version:    s.Version,
	}
}
