package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"playground/internal/catalog"
	"playground/internal/models"
	"playground/internal/session"
)

// BuildSessionResponse creates the API view of a session snapshot
func BuildSessionResponse(c *session.Coordinator, state session.State) models.SessionResponse {
	editors := make(map[string]string, len(session.Tabs))
	for _, tab := range session.Tabs {
		editors[string(tab)] = state.Editor(tab)
	}

	operations := make([]models.OperationStateResponse, len(models.Kinds))
	for i, kind := range models.Kinds {
		op := state.Operation(kind)
		operations[i] = models.OperationStateResponse{
			Kind:    kind,
			Status:  op.Status,
			Request: op.Request,
			Result:  op.Result,
			Error:   op.Error,
		}
	}

	return models.SessionResponse{
		SessionID:  c.ID(),
		Editors:    editors,
		Output:     state.Output,
		Operations: operations,
		Version:    state.Version,
		CreatedAt:  c.CreatedAt(),
	}
}

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

// parseOperationFilter reads kind, status, limit and offset.
// Limit is capped at maxPageSize and bad pagination falls back to defaults;
// an unknown kind or status is an error.
func parseOperationFilter(query url.Values) (models.OperationFilter, error) {
	filter := models.OperationFilter{Limit: defaultPageSize}

	if kind := query.Get("kind"); kind != "" {
		parsed, err := models.ParseKind(kind)
		if err != nil {
			return filter, err
		}
		filter.Kind = parsed
	}

	if status := query.Get("status"); status != "" {
		switch models.OperationStatus(status) {
		case models.StatusInFlight, models.StatusCompleted, models.StatusFailed:
			filter.Status = models.OperationStatus(status)
		default:
			return filter, fmt.Errorf("unknown operation status %q", status)
		}
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			filter.Limit = min(parsed, maxPageSize)
		}
	}

	if offsetStr := query.Get("offset"); offsetStr != "" {
		if parsed, err := strconv.Atoi(offsetStr); err == nil && parsed >= 0 {
			filter.Offset = parsed
		}
	}

	return filter, nil
}

// errorStatus maps domain errors to HTTP status codes
func errorStatus(err error) int {
	switch {
	case errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, catalog.ErrExampleNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrOperationInFlight),
		errors.Is(err, session.ErrNotCompiled):
		return http.StatusConflict
	case errors.Is(err, session.ErrSessionClosed):
		return http.StatusGone
	case errors.Is(err, session.ErrUnknownTab),
		errors.Is(err, models.ErrUnknownKind):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// sendJSON writes v as a JSON response with the given status code
func (s *Server) sendJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// sendError sends a JSON error response
func (s *Server) sendError(w http.ResponseWriter, message string, code int) {
	s.sendJSON(w, code, models.ErrorResponse{
		Error:   http.StatusText(code),
		Message: message,
		Code:    code,
	})
}
