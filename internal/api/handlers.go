package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"playground/internal/catalog"
	"playground/internal/models"
	"playground/internal/session"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// handleIndex returns basic service information
// GET / - Returns service info and available endpoints
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	info := map[string]interface{}{
		"service":     "Soroban Playground",
		"version":     "1.0.0",
		"description": "Simulated compile, deploy and invoke for Soroban smart contracts",
		"endpoints": map[string]string{
			"GET /":                                     "This page - Service information",
			"GET /health":                               "Health check endpoint",
			"GET /metrics":                              "Prometheus metrics for monitoring",
			"GET /examples":                             "List example contracts",
			"GET /examples/{id}":                        "Get an example with its source",
			"GET /contracts":                            "List saved contracts (supports ?search=)",
			"POST /sessions":                            "Open a playground session",
			"GET /sessions/{id}":                        "Get session state",
			"DELETE /sessions/{id}":                     "Close a session",
			"PUT /sessions/{id}/editors/{tab}":          "Replace editor text (contract, deploy, invoke)",
			"POST /sessions/{id}/operations/{kind}":     "Trigger compile, deploy or invoke",
			"GET /sessions/{id}/operations":             "Operation history (supports ?limit=, ?offset=)",
			"POST /sessions/{id}/examples/{example_id}": "Open an example in the contract editor",
		},
	}

	s.sendJSON(w, http.StatusOK, info)
}

// handleHealth returns health status
// GET /health - Health check for monitoring systems
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.repository.Ping(r.Context()); err != nil {
		s.sendError(w, "Repository unavailable", http.StatusServiceUnavailable)
		return
	}

	health := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   "soroban-playground",
		"sessions":  len(s.sessions.List()),
	}

	s.sendJSON(w, http.StatusOK, health)
}

// handleMetrics returns Prometheus metrics
// GET /metrics - Prometheus scraping endpoint
func (s *Server) handleMetrics() http.Handler {
	return promhttp.Handler()
}

// =============================================================================
// CATALOG ENDPOINTS
// =============================================================================

// handleListExamples lists examples without their source
// GET /examples
func (s *Server) handleListExamples(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	examples := catalog.Examples()
	summaries := make([]models.ExampleSummary, len(examples))
	for i, e := range examples {
		summaries[i] = models.ExampleSummary{ID: e.ID, Name: e.Name, Description: e.Description}
	}

	s.sendJSON(w, http.StatusOK, map[string]interface{}{
		"examples": summaries,
		"total":    len(summaries),
	})
}

// handleGetExample returns one example including its source
// GET /examples/{id}
func (s *Server) handleGetExample(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/examples/"), "/")
	example, err := catalog.Example(id)
	if err != nil {
		s.sendError(w, err.Error(), errorStatus(err))
		return
	}

	s.sendJSON(w, http.StatusOK, example)
}

// handleSearchContracts lists saved contracts filtered by name
// GET /contracts?search=token
func (s *Server) handleSearchContracts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	contracts := catalog.SearchContracts(r.URL.Query().Get("search"))
	s.sendJSON(w, http.StatusOK, map[string]interface{}{
		"contracts": contracts,
		"total":     len(contracts),
	})
}

// =============================================================================
// SESSION ENDPOINTS
// =============================================================================

// handleCreateSession opens a new session
// POST /sessions
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	c := s.sessions.Create()
	s.sendJSON(w, http.StatusCreated, BuildSessionResponse(c, c.State()))
}

// handleListSessions lists open session IDs
// GET /sessions
func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	ids := s.sessions.List()
	s.sendJSON(w, http.StatusOK, models.SessionListResponse{
		Sessions: ids,
		Total:    len(ids),
	})
}

// handleGetSession returns a session snapshot
// GET /sessions/{id}
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request, sessionID string) {
	c, err := s.sessions.Get(sessionID)
	if err != nil {
		s.sendError(w, err.Error(), errorStatus(err))
		return
	}

	s.sendJSON(w, http.StatusOK, BuildSessionResponse(c, c.State()))
}

// handleDeleteSession closes a session
// DELETE /sessions/{id}
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request, sessionID string) {
	if err := s.sessions.Close(r.Context(), sessionID); err != nil {
		status := errorStatus(err)
		if status == http.StatusInternalServerError {
			slog.Error("Failed to close session", "session_id", sessionID, "error", err)
		}
		s.sendError(w, err.Error(), status)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleUpdateEditor replaces the text of one editor
// PUT /sessions/{id}/editors/{tab}  {"text": "..."}
func (s *Server) handleUpdateEditor(w http.ResponseWriter, r *http.Request, sessionID, tabName string) {
	c, err := s.sessions.Get(sessionID)
	if err != nil {
		s.sendError(w, err.Error(), errorStatus(err))
		return
	}

	tab, err := session.ParseTab(tabName)
	if err != nil {
		s.sendError(w, err.Error(), errorStatus(err))
		return
	}

	var body struct {
		Text *string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Text == nil {
		s.sendError(w, `Body must be JSON with a "text" field`, http.StatusBadRequest)
		return
	}

	state, err := c.Edit(tab, *body.Text)
	if err != nil {
		s.sendError(w, err.Error(), errorStatus(err))
		return
	}

	s.sendJSON(w, http.StatusOK, BuildSessionResponse(c, state))
}

// handleTriggerOperation starts compile, deploy or invoke
// POST /sessions/{id}/operations/{kind}
func (s *Server) handleTriggerOperation(w http.ResponseWriter, r *http.Request, sessionID, kindName string) {
	c, err := s.sessions.Get(sessionID)
	if err != nil {
		s.sendError(w, err.Error(), errorStatus(err))
		return
	}

	kind, err := models.ParseKind(kindName)
	if err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	handle, err := c.Trigger(r.Context(), kind)
	if err != nil {
		status := errorStatus(err)
		if status == http.StatusInternalServerError {
			slog.Error("Failed to trigger operation",
				"session_id", sessionID,
				"kind", kind,
				"error", err,
			)
		}
		s.sendError(w, err.Error(), status)
		return
	}

	s.sendJSON(w, http.StatusAccepted, models.OperationAcceptedResponse{
		SessionID: sessionID,
		Request:   handle.Request,
		Status:    models.StatusInFlight,
	})
}

// handleListOperations returns the session's operation history, newest first
// GET /sessions/{id}/operations?kind=deploy&status=failed&limit=20&offset=0
func (s *Server) handleListOperations(w http.ResponseWriter, r *http.Request, sessionID string) {
	if _, err := s.sessions.Get(sessionID); err != nil {
		s.sendError(w, err.Error(), errorStatus(err))
		return
	}

	ctx := r.Context()
	filter, err := parseOperationFilter(r.URL.Query())
	if err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	filter.SessionID = sessionID

	total, err := s.repository.CountOperations(ctx, filter)
	if err != nil {
		slog.Error("Failed to count operations", "session_id", sessionID, "error", err)
		s.sendError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	operations, err := s.repository.ListOperations(ctx, filter)
	if err != nil {
		slog.Error("Failed to list operations", "session_id", sessionID, "error", err)
		s.sendError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	s.sendJSON(w, http.StatusOK, models.OperationListResponse{
		SessionID:  sessionID,
		Operations: operations,
		Total:      total,
		Page:       (filter.Offset / filter.Limit) + 1,
		PageSize:   filter.Limit,
	})
}

// handleLoadExample opens an example in the contract editor
// POST /sessions/{id}/examples/{exampleID}
func (s *Server) handleLoadExample(w http.ResponseWriter, r *http.Request, sessionID, exampleID string) {
	c, err := s.sessions.Get(sessionID)
	if err != nil {
		s.sendError(w, err.Error(), errorStatus(err))
		return
	}

	state, err := c.LoadExample(exampleID)
	if err != nil {
		s.sendError(w, err.Error(), errorStatus(err))
		return
	}

	s.sendJSON(w, http.StatusOK, BuildSessionResponse(c, state))
}
