package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabib-chatbot/internal/config"
	"tabib-chatbot/internal/core"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *OpenAIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewOpenAIClient(config.OpenAIConfig{
		APIKey:      "sk-test",
		BaseURL:     srv.URL + "/v1",
		Temperature: 0.7,
	})
}

func writeCompletion(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":     "chatcmpl-1",
		"object": "chat.completion",
		"model":  "gpt-4",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]string{"role": "assistant", "content": content},
		}},
	})
}

var sampleTranscript = []core.Entry{
	{Role: core.RoleDirective, Content: core.DirectiveEnglish},
	{Role: core.RoleAssistant, Content: "What's your name?"},
	{Role: core.RoleUser, Content: "Ali"},
}

func TestGenerate_SendsTranscriptInOrder(t *testing.T) {
	var got openai.ChatCompletionRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeCompletion(w, "Drink fluids and rest.")
	})

	reply, err := c.Generate(context.Background(), sampleTranscript)
	require.NoError(t, err)
	assert.Equal(t, "Drink fluids and rest.", reply)

	assert.Equal(t, openai.GPT4, got.Model)
	assert.InDelta(t, 0.7, got.Temperature, 1e-6)
	require.Len(t, got.Messages, 3)
	assert.Equal(t, openai.ChatMessageRoleSystem, got.Messages[0].Role)
	assert.Equal(t, openai.ChatMessageRoleAssistant, got.Messages[1].Role)
	assert.Equal(t, openai.ChatMessageRoleUser, got.Messages[2].Role)
	assert.Equal(t, "Ali", got.Messages[2].Content)
}

func TestGenerate_ClassifiesFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":{"message":"Incorrect API key","type":"invalid_request_error","code":"invalid_api_key"}}`, core.ErrAuthenticationFailed},
		{"forbidden without json", http.StatusForbidden, `denied`, core.ErrAuthenticationFailed},
		{"server error", http.StatusInternalServerError, `{"error":{"message":"boom","type":"server_error"}}`, core.ErrServiceUnavailable},
		{"rate limited", http.StatusTooManyRequests, `{"error":{"message":"slow down","type":"rate_limit"}}`, core.ErrServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := c.Generate(context.Background(), sampleTranscript)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGenerate_EmptyChoicesIsUnavailable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[]}`))
	})
	_, err := c.Generate(context.Background(), sampleTranscript)
	require.ErrorIs(t, err, core.ErrServiceUnavailable)
}

func TestGenerate_Timeout(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Generate(ctx, sampleTranscript)
	require.ErrorIs(t, err, core.ErrGenerationTimeout)
}

func TestNewOpenAIClient_DefaultModel(t *testing.T) {
	c := NewOpenAIClient(config.OpenAIConfig{APIKey: "sk-test"})
	assert.Equal(t, openai.GPT4, c.model)

	c = NewOpenAIClient(config.OpenAIConfig{APIKey: "sk-test", Model: "gpt-4o-mini"})
	assert.Equal(t, "gpt-4o-mini", c.model)
}
