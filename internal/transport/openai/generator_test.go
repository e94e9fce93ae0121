package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/mahendramedapati27/unimatch/internal/domain"
	"github.com/mahendramedapati27/unimatch/internal/metrics"
)

type chatRequest struct {
	Model       string  `json:"model"`
	Temperature float32 `json:"temperature"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func chatServer(t *testing.T, content string, got *chatRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got != nil {
			if err := json.NewDecoder(r.Body).Decode(got); err != nil {
				t.Errorf("decode request: %v", err)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  "llama-3.1-8b-instant",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			}},
			"usage": map[string]any{"prompt_tokens": 12, "completion_tokens": 30, "total_tokens": 42},
		})
	}))
}

func newTestGenerator(url string) *Generator {
	return NewGenerator(&GeneratorConfig{
		Config: Config{
			APIKey:   "test-key",
			BaseURL:  url,
			Model:    "llama-3.1-8b-instant",
			Provider: "groq",
			Logger:   zap.NewNop(),
		},
		Temperature: 0.7,
		MaxTokens:   500,
		Timeout:     5 * time.Second,
	})
}

func TestGenerator_Generate(t *testing.T) {
	var req chatRequest
	server := chatServer(t, "  Apply early.  ", &req)
	defer server.Close()

	text, err := newTestGenerator(server.URL).Generate(context.Background(), "You are a counselor.", "Plan for Asha")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if text != "Apply early." {
		t.Errorf("expected trimmed content, got %q", text)
	}
	if req.Model != "llama-3.1-8b-instant" {
		t.Errorf("model = %q", req.Model)
	}
	if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Content != "Plan for Asha" {
		t.Errorf("unexpected messages: %+v", req.Messages)
	}
}

func TestGenerator_NoSystemMessage(t *testing.T) {
	var req chatRequest
	server := chatServer(t, "ok", &req)
	defer server.Close()

	if _, err := newTestGenerator(server.URL).Generate(context.Background(), "", "hi"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
		t.Errorf("expected single user message, got %+v", req.Messages)
	}
}

func TestGenerator_BlankResponse(t *testing.T) {
	server := chatServer(t, "   ", nil)
	defer server.Close()

	_, err := newTestGenerator(server.URL).Generate(context.Background(), "", "hi")
	if !errors.Is(err, domain.ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestGenerator_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid api key","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	_, err := newTestGenerator(server.URL).Generate(context.Background(), "", "hi")
	if !errors.Is(err, domain.ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestGenerator_RecordsUsage(t *testing.T) {
	server := chatServer(t, "ok", nil)
	defer server.Close()

	completion := metrics.TokensTotal.WithLabelValues(metrics.OpGeneration, "groq", "llama-3.1-8b-instant", "completion")
	before := testutil.ToFloat64(completion)

	ctx, usage := domain.NewContextWithUsage(context.Background())
	if _, err := newTestGenerator(server.URL).Generate(ctx, "", "hi"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if usage.GenerationTokens != 42 || usage.GenerationCalls != 1 {
		t.Errorf("usage = %+v, want 42 tokens in 1 call", usage)
	}
	if got := testutil.ToFloat64(completion) - before; got != 30 {
		t.Errorf("expected 30 completion tokens recorded, got %v", got)
	}
}
