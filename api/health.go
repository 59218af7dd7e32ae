package api

import (
	"net/http"

	"github.com/dmcneil/frontdesk/internal/chat"
	"github.com/dmcneil/frontdesk/internal/log"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	engine *chat.Engine
	logger log.Logger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(engine *chat.Engine, logger log.Logger) *HealthHandler {
	return &HealthHandler{engine: engine, logger: logger}
}

// RegisterRoutes registers health routes on the given mux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.liveness)
	mux.HandleFunc("GET /ready", h.readiness)
}

// liveness is a liveness probe endpoint.
// Returns 200 OK if the process is alive.
func (h *HealthHandler) liveness(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// readiness is a readiness probe endpoint.
// Returns 200 OK once the engine is wired with its knowledge base and
// generation client. The generation backend itself is not probed: it
// may be slow or cold, and a degraded reply path exists for it anyway.
func (h *HealthHandler) readiness(w http.ResponseWriter, _ *http.Request) {
	if h.engine == nil {
		h.logger.Error("readiness check failed: engine not configured")
		http.Error(w, "engine not configured", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
