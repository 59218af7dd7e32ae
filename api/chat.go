package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dmcneil/frontdesk/internal/chat"
	"github.com/dmcneil/frontdesk/internal/log"
	"github.com/dmcneil/frontdesk/internal/transcribe"
)

// MaxAudioBytes bounds one voice upload. Anything larger is rejected
// before transcription.
const MaxAudioBytes = 20 << 20 // 20 MB

// ChatHandler handles text and voice chat endpoints.
//
// Endpoints:
//   - POST /api/chat       - Text turn (JSON request/response)
//   - POST /api/chat/voice - Voice turn (multipart audio upload)
//
// Both endpoints converge on the same engine handle path; voice merely
// transcribes first. A failed transcription is not an HTTP error: the
// caller gets the engine's retry prompt so the conversation continues.
type ChatHandler struct {
	engine      *chat.Engine
	transcriber transcribe.Transcriber
	logger      log.Logger
}

// NewChatHandler creates a new chat handler.
// transcriber may be nil; the voice endpoint then responds 503.
func NewChatHandler(engine *chat.Engine, transcriber transcribe.Transcriber, logger log.Logger) *ChatHandler {
	return &ChatHandler{engine: engine, transcriber: transcriber, logger: logger}
}

// RegisterRoutes registers chat routes on the given mux.
func (h *ChatHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/chat", h.handleChat)
	mux.HandleFunc("POST /api/chat/voice", h.handleVoice)
}

// ChatRequest is the JSON body for POST /api/chat.
type ChatRequest struct {
	// SessionID is optional; empty starts a fresh session.
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

// ChatResponse is the JSON body returned by both chat endpoints.
type ChatResponse struct {
	SessionID string `json:"sessionId"`
	Reply     string `json:"reply"`
	Degraded  bool   `json:"degraded,omitempty"`

	// Transcript echoes what the audio decoded to. Voice endpoint only.
	Transcript string `json:"transcript,omitempty"`
}

// handleChat handles a single text turn.
func (h *ChatHandler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(h.logger, w, http.StatusBadRequest, "INVALID_REQUEST", "invalid JSON body")
		return
	}

	reply, err := h.engine.Handle(r.Context(), req.SessionID, req.Message)
	if err != nil {
		// Only cancellation reaches here; the client is mostly gone.
		h.logger.Debug("chat request abandoned", "error", err)
		writeError(h.logger, w, http.StatusInternalServerError, "CANCELLED", "request cancelled")
		return
	}

	writeJSON(h.logger, w, http.StatusOK, ChatResponse{
		SessionID: reply.SessionID,
		Reply:     reply.Text,
		Degraded:  reply.Degraded,
	})
}

// handleVoice handles a single voice turn: multipart upload with an
// "audio" file part and an optional "sessionId" field.
func (h *ChatHandler) handleVoice(w http.ResponseWriter, r *http.Request) {
	if h.transcriber == nil {
		writeError(h.logger, w, http.StatusServiceUnavailable, "NO_TRANSCRIBER", "voice input is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxAudioBytes)
	if err := r.ParseMultipartForm(MaxAudioBytes); err != nil {
		writeError(h.logger, w, http.StatusBadRequest, "INVALID_REQUEST", "expected multipart form with an audio part")
		return
	}

	sessionID := r.FormValue("sessionId")

	file, header, err := r.FormFile("audio")
	if err != nil {
		writeError(h.logger, w, http.StatusBadRequest, "NO_AUDIO", "missing audio part")
		return
	}
	defer func() { _ = file.Close() }()

	text, err := h.transcriber.Transcribe(r.Context(), file, header.Filename)
	if err != nil {
		if errors.Is(err, transcribe.ErrNoAudio) {
			writeError(h.logger, w, http.StatusBadRequest, "NO_AUDIO", "audio part is empty")
			return
		}
		// Unusable audio keeps the conversation going: the caller hears
		// the retry prompt exactly as for a blank utterance.
		h.logger.Warn("voice turn fell back to retry prompt", "error", err)
		text = ""
	}

	reply, err := h.engine.Handle(r.Context(), sessionID, text)
	if err != nil {
		h.logger.Debug("voice request abandoned", "error", err)
		writeError(h.logger, w, http.StatusInternalServerError, "CANCELLED", "request cancelled")
		return
	}

	writeJSON(h.logger, w, http.StatusOK, ChatResponse{
		SessionID:  reply.SessionID,
		Reply:      reply.Text,
		Degraded:   reply.Degraded,
		Transcript: strings.TrimSpace(text),
	})
}
