package session

import (
	"encoding/json"
	"fmt"

	"playground/internal/models"
)

// Placeholder is the output shown while kind is in flight
func Placeholder(kind models.OperationKind) string {
	switch kind {
	case models.KindCompile:
		return "Compiling..."
	case models.KindDeploy:
		return "Deploying..."
	case models.KindInvoke:
		return "Invoking..."
	}
	return "Working..."
}

// FormatResult renders a result payload as indented JSON for the output panel
func FormatResult(result *models.OperationResult) string {
	b, err := json.MarshalIndent(result.Payload, "", "  ")
	if err != nil {
		return fmt.Sprintf("%s completed (result could not be rendered: %v)", result.Kind, err)
	}
	return string(b)
}

// FormatError renders a failure message for the output panel
func FormatError(message string) string {
	return "Error: " + message
}
