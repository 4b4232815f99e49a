package runner

import (
	"errors"
	"fmt"

	"playground/internal/models"
)

// OperationFailure is returned for every operation that did not produce a result
type OperationFailure struct {
	Kind      models.OperationKind
	RequestID string
	Err       error
}

func (e *OperationFailure) Error() string {
	return fmt.Sprintf("%s operation %s failed: %v", e.Kind, e.RequestID, e.Err)
}

func (e *OperationFailure) Unwrap() error {
	return e.Err
}

// ErrorMessage extracts the human-readable message shown to the user
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var failure *OperationFailure
	if errors.As(err, &failure) && failure.Err != nil {
		return failure.Err.Error()
	}
	return err.Error()
}

func errUnexpectedPayload(p models.Payload) error {
	return fmt.Errorf("unexpected payload type %T", p)
}
