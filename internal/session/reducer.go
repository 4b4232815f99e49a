package session

import (
	"playground/internal/models"
)

// Reduce returns the state that results from applying action to state.
// Outcomes for a request that is no longer the kind's in-flight request are ignored.
func Reduce(state State, action Action) State {
	switch a := action.(type) {
	case EditorChanged:
		if _, ok := state.Editors[a.Tab]; !ok {
			return state
		}
		next := state.clone()
		next.Editors[a.Tab] = a.Text
		next.Version++
		return next

	case ExampleLoaded:
		next := state.clone()
		next.Editors[TabContract] = a.Example.Code
		next.Version++
		return next

	case OperationStarted:
		next := state.clone()
		next.Operations[a.Request.Kind] = OperationState{
			Status:  models.StatusInFlight,
			Request: a.Request,
		}
		next.Output = Placeholder(a.Request.Kind)
		next.Version++
		return next

	case OperationCompleted:
		if !isCurrent(state, a.Result.Kind, a.Result.RequestID) {
			return state
		}
		next := state.clone()
		op := next.Operations[a.Result.Kind]
		op.Status = models.StatusCompleted
		op.Result = a.Result
		op.Error = ""
		next.Operations[a.Result.Kind] = op
		next.Output = FormatResult(a.Result)
		next.Version++
		return next

	case OperationFailed:
		if !isCurrent(state, a.Kind, a.RequestID) {
			return state
		}
		next := state.clone()
		op := next.Operations[a.Kind]
		op.Status = models.StatusFailed
		op.Result = nil
		op.Error = a.Message
		next.Operations[a.Kind] = op
		next.Output = FormatError(a.Message)
		next.Version++
		return next
	}

	return state
}

func isCurrent(state State, kind models.OperationKind, requestID string) bool {
	op := state.Operation(kind)
	return op.Status == models.StatusInFlight && op.Request != nil && op.Request.ID == requestID
}
