package transcribe

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmcneil/frontdesk/internal/log"
)

func newClient(t *testing.T, baseURL string) *OpenAI {
	t.Helper()
	c, err := NewOpenAI(OpenAIConfig{
		BaseURL: baseURL + "/v1",
		APIKey:  "not-needed",
		Model:   "whisper-1",
		Timeout: time.Second,
		Logger:  log.NewNop(),
	})
	if err != nil {
		t.Fatalf("NewOpenAI() error = %v", err)
	}
	return c
}

func TestTranscribeSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("expected multipart request: %v", err)
		}
		if got := r.FormValue("model"); got != "whisper-1" {
			t.Errorf("model = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"  what are your opening hours  "}`))
	}))
	defer srv.Close()

	text, err := newClient(t, srv.URL).Transcribe(context.Background(),
		strings.NewReader("RIFFfakewavdata"), "question.wav")
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if text != "what are your opening hours" {
		t.Errorf("Transcribe() = %q, want trimmed transcript", text)
	}
}

func TestTranscribeNoAudio(t *testing.T) {
	c := newClient(t, "http://127.0.0.1:0")

	if _, err := c.Transcribe(context.Background(), nil, ""); !errors.Is(err, ErrNoAudio) {
		t.Errorf("nil reader: error = %v, want ErrNoAudio", err)
	}
	if _, err := c.Transcribe(context.Background(), strings.NewReader(""), ""); !errors.Is(err, ErrNoAudio) {
		t.Errorf("empty reader: error = %v, want ErrNoAudio", err)
	}
}

func TestTranscribeBackendFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"message":"bad audio"}}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := newClient(t, srv.URL).Transcribe(context.Background(),
		strings.NewReader("not really audio"), "noise.wav")
	if !errors.Is(err, ErrUnusable) {
		t.Errorf("Transcribe() error = %v, want ErrUnusable", err)
	}
}

func TestTranscribeEmptyTranscript(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"   "}`))
	}))
	defer srv.Close()

	_, err := newClient(t, srv.URL).Transcribe(context.Background(),
		strings.NewReader("silence"), "silence.wav")
	if !errors.Is(err, ErrUnusable) {
		t.Errorf("Transcribe() error = %v, want ErrUnusable", err)
	}
}
