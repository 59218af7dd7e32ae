package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionReset(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, nil)
	handler := srv.Handler()

	// Seed a session, then reset it.
	_, resp := postChat(t, handler, ChatRequest{SessionID: "s1", Message: "tell me about beta-kw"})
	assert.NotEmpty(t, resp.Reply)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/sessions/s1/reset", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	// After reset the next turn re-routes from scratch.
	_, resp = postChat(t, handler, ChatRequest{SessionID: "s1", Message: "plain question"})
	assert.NotEmpty(t, resp.Reply)
}

func TestSessionResetUnknownIsNoContent(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, nil)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/sessions/never-seen/reset", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}
