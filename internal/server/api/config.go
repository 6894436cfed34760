// Package api provides the HTTP API handlers for the Handwave engine:
// the runtime gesture configuration and the dispatched-action log.
package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/averma/handwave/internal/config"
	"github.com/averma/handwave/internal/gesture"
	"github.com/averma/handwave/internal/store"
)

// ConfigHandler exposes the live gesture configuration. Changes take
// effect on the next frame and are persisted through the settings
// repository when one is attached.
type ConfigHandler struct {
	cfg      *config.Store
	settings *store.SettingsRepository
}

// NewConfigHandler creates a ConfigHandler backed by the given runtime
// config. settings may be nil when persistence is disabled.
func NewConfigHandler(cfg *config.Store, settings *store.SettingsRepository) *ConfigHandler {
	return &ConfigHandler{cfg: cfg, settings: settings}
}

type configResponse struct {
	Gestures map[string]bool `json:"gestures"`
	Paused   bool            `json:"paused"`
}

type updateConfigRequest struct {
	Gestures map[string]bool `json:"gestures"`
	Paused   *bool           `json:"paused"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// ServeHTTP routes /api/config requests.
func (h *ConfigHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.update(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *ConfigHandler) get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.snapshot())
}

// update handles PUT /api/config. Absent fields keep their current
// values.
func (h *ConfigHandler) update(w http.ResponseWriter, r *http.Request) {
	var req updateConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	known := make(map[string]bool, len(gesture.Kinds()))
	for _, kind := range gesture.Kinds() {
		known[string(kind)] = true
	}
	for name := range req.Gestures {
		if !known[name] {
			writeError(w, http.StatusBadRequest, "unknown gesture: "+name)
			return
		}
	}

	for name, enabled := range req.Gestures {
		kind := gesture.Kind(name)
		h.cfg.SetEnabled(kind, enabled)
		if h.settings != nil {
			if err := h.settings.SetGestureEnabled(kind, enabled); err != nil {
				log.Printf("persist gesture %s: %v", kind, err)
			}
		}
	}
	if req.Paused != nil {
		h.cfg.SetPaused(*req.Paused)
	}

	writeJSON(w, http.StatusOK, h.snapshot())
}

func (h *ConfigHandler) snapshot() configResponse {
	snap := h.cfg.Snapshot()
	flags := snap.Enabled()
	gestures := make(map[string]bool, len(flags))
	for kind, enabled := range flags {
		gestures[string(kind)] = enabled
	}
	return configResponse{Gestures: gestures, Paused: snap.Paused()}
}
