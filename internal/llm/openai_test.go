package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmcneil/frontdesk/internal/log"
)

// Minimal chat-completion wire shapes for the fake backend.
type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type wireChoice struct {
	Message wireMessage `json:"message"`
}

type completionResponse struct {
	Choices []wireChoice `json:"choices"`
}

func fakeBackend(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func newGateway(t *testing.T, baseURL string, timeout time.Duration) *OpenAI {
	t.Helper()
	g, err := NewOpenAI(OpenAIConfig{
		BaseURL:     baseURL + "/v1",
		APIKey:      "not-needed",
		Model:       "mistral",
		MaxTokens:   300,
		Temperature: 0.5,
		Timeout:     timeout,
		Logger:      log.NewNop(),
	})
	if err != nil {
		t.Fatalf("NewOpenAI() error = %v", err)
	}
	return g
}

func TestGenerateSuccess(t *testing.T) {
	var gotBody struct {
		Model       string        `json:"model"`
		MaxTokens   int           `json:"max_tokens"`
		Temperature float32       `json:"temperature"`
		Messages    []wireMessage `json:"messages"`
	}

	srv := fakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		resp := completionResponse{Choices: []wireChoice{
			{Message: wireMessage{Role: "assistant", Content: "  We are open 9-5.  "}},
		}}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	})

	g := newGateway(t, srv.URL, time.Second)
	reply, err := g.Generate(context.Background(), []Message{
		{Role: "system", Content: "ground truth"},
		{Role: "user", Content: "opening hours?"},
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if reply != "We are open 9-5." {
		t.Errorf("Generate() = %q, want trimmed reply", reply)
	}

	if gotBody.Model != "mistral" {
		t.Errorf("request model = %q", gotBody.Model)
	}
	if gotBody.MaxTokens != 300 {
		t.Errorf("request max_tokens = %d, want 300", gotBody.MaxTokens)
	}
	if len(gotBody.Messages) != 2 || gotBody.Messages[0].Role != "system" {
		t.Errorf("request messages = %+v", gotBody.Messages)
	}
}

func TestGenerateBackendError(t *testing.T) {
	srv := fakeBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"message":"model not loaded","type":"server_error"}}`, http.StatusInternalServerError)
	})

	g := newGateway(t, srv.URL, time.Second)
	_, err := g.Generate(context.Background(), []Message{{Role: "user", Content: "hi"}})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Generate() error = %v, want ErrUnavailable", err)
	}
}

func TestGenerateEmptyChoices(t *testing.T) {
	srv := fakeBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})

	g := newGateway(t, srv.URL, time.Second)
	_, err := g.Generate(context.Background(), []Message{{Role: "user", Content: "hi"}})
	if !errors.Is(err, ErrEmptyReply) {
		t.Errorf("Generate() error = %v, want ErrEmptyReply", err)
	}
}

func TestGenerateTimeout(t *testing.T) {
	srv := fakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(5 * time.Second):
		case <-r.Context().Done():
		}
	})

	g := newGateway(t, srv.URL, 50*time.Millisecond)
	_, err := g.Generate(context.Background(), []Message{{Role: "user", Content: "hi"}})
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("Generate() error = %v, want ErrTimeout", err)
	}
}

func TestGenerateUnreachableBackend(t *testing.T) {
	// Port 0 is never listening.
	g := newGateway(t, "http://127.0.0.1:0", time.Second)
	_, err := g.Generate(context.Background(), []Message{{Role: "user", Content: "hi"}})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Generate() error = %v, want ErrUnavailable", err)
	}
}

func TestNewOpenAIValidation(t *testing.T) {
	if _, err := NewOpenAI(OpenAIConfig{Model: "m", Logger: log.NewNop()}); err == nil {
		t.Error("missing base URL must fail")
	}
	if _, err := NewOpenAI(OpenAIConfig{BaseURL: "http://x/v1", Logger: log.NewNop()}); err == nil {
		t.Error("missing model must fail")
	}
	if _, err := NewOpenAI(OpenAIConfig{BaseURL: "http://x/v1", Model: "m"}); err == nil {
		t.Error("missing logger must fail")
	}
}
