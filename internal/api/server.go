package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"playground/internal/session"
	"playground/internal/storage"
)

// Server represents the HTTP API server
// Provides the playground endpoints, Prometheus metrics and health checks
type Server struct {
	httpServer *http.Server
	mux        *http.ServeMux
	sessions   *session.Manager
	repository storage.Repository
	port       int
}

// NewServer creates a new API server instance
func NewServer(port int, sessions *session.Manager, repository storage.Repository) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      mux,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		mux:        mux,
		sessions:   sessions,
		repository: repository,
		port:       port,
	}

	// Register all HTTP routes
	s.registerRoutes()

	return s
}

// Handler returns the root handler (used by tests)
func (s *Server) Handler() http.Handler {
	return s.mux
}

// registerRoutes sets up all HTTP routes
func (s *Server) registerRoutes() {
	// Core endpoints
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.Handle("/metrics", s.handleMetrics())

	// Catalog endpoints
	s.mux.HandleFunc("/examples", s.handleListExamples)
	s.mux.HandleFunc("/examples/", s.handleGetExample)
	s.mux.HandleFunc("/contracts", s.handleSearchContracts)

	// Session endpoints
	s.mux.HandleFunc("/sessions", s.handleSessions)
	s.mux.HandleFunc("/sessions/", s.handleSessionRoutes)
}

// handleSessions routes the session collection (without trailing slash)
func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListSessions(w, r)
	case http.MethodPost:
		s.handleCreateSession(w, r)
	default:
		s.sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleSessionRoutes routes session sub-endpoints (with trailing slash)
func (s *Server) handleSessionRoutes(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/sessions/"), "/")
	parts := strings.Split(path, "/")
	if parts[0] == "" {
		s.sendError(w, "Session ID required", http.StatusBadRequest)
		return
	}

	sessionID := parts[0]

	switch {
	// GET|DELETE /sessions/{id}
	case len(parts) == 1:
		switch r.Method {
		case http.MethodGet:
			s.handleGetSession(w, r, sessionID)
		case http.MethodDelete:
			s.handleDeleteSession(w, r, sessionID)
		default:
			s.sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		}

	// PUT /sessions/{id}/editors/{tab}
	case len(parts) == 3 && parts[1] == "editors":
		if r.Method != http.MethodPut {
			s.sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.handleUpdateEditor(w, r, sessionID, parts[2])

	// GET /sessions/{id}/operations
	case len(parts) == 2 && parts[1] == "operations":
		if r.Method != http.MethodGet {
			s.sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.handleListOperations(w, r, sessionID)

	// POST /sessions/{id}/operations/{kind}
	case len(parts) == 3 && parts[1] == "operations":
		if r.Method != http.MethodPost {
			s.sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.handleTriggerOperation(w, r, sessionID, parts[2])

	// POST /sessions/{id}/examples/{exampleID}
	case len(parts) == 3 && parts[1] == "examples":
		if r.Method != http.MethodPost {
			s.sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.handleLoadExample(w, r, sessionID, parts[2])

	default:
		s.sendError(w, "Endpoint not found", http.StatusNotFound)
	}
}

// Start starts the HTTP server in a goroutine
// Returns immediately after starting the server
func (s *Server) Start() error {
	go func() {
		slog.Info("API server starting",
			"port", s.port,
			"endpoints", []string{"/", "/health", "/metrics", "/sessions", "/examples", "/contracts"},
		)

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("API server error", "error", err)
		}
	}()

	return nil
}

// Shutdown gracefully shuts down the HTTP server
// Waits for active connections to close or context to timeout
func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("API server shutting down...")
	return s.httpServer.Shutdown(ctx)
}
