package api

import (
	"net/http"

	"github.com/dmcneil/frontdesk/internal/chat"
	"github.com/dmcneil/frontdesk/internal/log"
)

// SessionHandler handles session management endpoints.
type SessionHandler struct {
	engine *chat.Engine
	logger log.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(engine *chat.Engine, logger log.Logger) *SessionHandler {
	return &SessionHandler{engine: engine, logger: logger}
}

// RegisterRoutes registers session routes on the given mux.
func (h *SessionHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/sessions/{id}/reset", h.reset)
}

// reset clears one session's memory. Resetting an unknown session is
// still a 204: the outcome the caller asked for already holds.
func (h *SessionHandler) reset(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(h.logger, w, http.StatusBadRequest, "INVALID_REQUEST", "session id is required")
		return
	}

	h.engine.Reset(id)
	w.WriteHeader(http.StatusNoContent)
}
