package api

import (
	"net/http"
	"strconv"

	"github.com/averma/handwave/internal/store"
)

const defaultActionLimit = 50

// ActionsHandler serves the dispatched-action log.
type ActionsHandler struct {
	log *store.ActionLogRepository
}

// NewActionsHandler creates an ActionsHandler backed by the given log.
func NewActionsHandler(log *store.ActionLogRepository) *ActionsHandler {
	return &ActionsHandler{log: log}
}

type actionResponse struct {
	ID        string `json:"id"`
	Action    string `json:"action"`
	Delta     int    `json:"delta,omitempty"`
	OK        bool   `json:"ok"`
	Error     string `json:"error,omitempty"`
	CreatedAt string `json:"created_at"`
}

type listActionsResponse struct {
	Actions []actionResponse `json:"actions"`
}

// ServeHTTP handles GET /api/actions with an optional limit parameter.
func (h *ActionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := defaultActionLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	entries, err := h.log.Recent(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list actions")
		return
	}

	resp := listActionsResponse{Actions: make([]actionResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Actions = append(resp.Actions, actionResponse{
			ID:        e.ID,
			Action:    string(e.Action),
			Delta:     e.Delta,
			OK:        e.OK,
			Error:     e.Error,
			CreatedAt: e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
