package api

import (
	"encoding/json"
	"net/http"

	"github.com/dmcneil/frontdesk/internal/log"
)

// writeJSON encodes data as the response body with the given status.
// By the time encoding could fail the status line is already on the
// wire, so the failure is only logged; the client sees a truncated
// body at worst.
func writeJSON(logger log.Logger, w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("encoding response body", "error", err, "status", status)
	}
}

// ErrorResponse is the JSON shape of every non-2xx response: a stable
// machine-readable code plus an optional human-readable message.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// writeError writes an ErrorResponse with the given status.
func writeError(logger log.Logger, w http.ResponseWriter, status int, code string, message string) {
	writeJSON(logger, w, status, ErrorResponse{Error: code, Message: message})
}
