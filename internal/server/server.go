// Package server provides the local HTTP surface of the Handwave
// engine: health, runtime configuration, the action log, a live event
// stream, and an MJPEG camera preview.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/averma/handwave/internal/capture"
	"github.com/averma/handwave/internal/config"
	"github.com/averma/handwave/internal/server/api"
	"github.com/averma/handwave/internal/store"
)

// Config holds the server wiring. Nil collaborators disable their
// endpoints.
type Config struct {
	ConfigStore *config.Store
	Store       *store.Store
	Camera      capture.Camera
	Events      *EventsHandler
}

// Server is the engine's HTTP handler.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a Server with the given wiring.
func New(cfg Config) *Server {
	s := &Server{
		config: cfg,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.ConfigStore != nil {
		var settings *store.SettingsRepository
		if s.config.Store != nil {
			settings = s.config.Store.Settings()
		}
		s.mux.Handle("/api/config", api.NewConfigHandler(s.config.ConfigStore, settings))
	}

	if s.config.Store != nil {
		s.mux.Handle("/api/actions", api.NewActionsHandler(s.config.Store.ActionLog()))
	}

	if s.config.Events != nil {
		s.mux.Handle("/api/events", s.config.Events)
	}

	if s.config.Camera != nil {
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Camera))
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(s.start).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// ListenAndServe starts the server on addr.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
