package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"playground/internal/models"
)

// PrintResult writes the operation result payload as indented JSON
func PrintResult(w io.Writer, result *models.OperationResult) error {
	jsonData, err := json.MarshalIndent(result.Payload, "", "  ")
	if err != nil {
		slog.Error("Failed to marshal result to JSON", "error", err)
		return err
	}

	slog.Debug("Operation result details",
		"request_id", result.RequestID,
		"kind", result.Kind,
		"json", string(jsonData),
	)

	_, err = fmt.Fprintln(w, string(jsonData))
	return err
}

// PrintFailure writes the message shown for a failed operation
func PrintFailure(w io.Writer, kind models.OperationKind, message string) error {
	slog.Debug("Operation failure details", "kind", kind, "message", message)

	_, err := fmt.Fprintf(w, "Error: %s\n", message)
	return err
}
