package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"tabib-chatbot/internal/config"
	"tabib-chatbot/internal/core"
)

const defaultModel = openai.GPT4

// OpenAIClient calls the OpenAI chat completion API with the whole intake
// transcript and returns the assistant's reply.
type OpenAIClient struct {
	client      *openai.Client
	model       string
	temperature float32
}

// NewOpenAIClient constructs an OpenAI-backed generator. The API key is
// validated by config.Load before this is called.
func NewOpenAIClient(cfg config.OpenAIConfig) *OpenAIClient {
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	return &OpenAIClient{
		client:      openai.NewClientWithConfig(oc),
		model:       model,
		temperature: cfg.Temperature,
	}
}

// Generate implements core.Generator.
func (c *OpenAIClient) Generate(ctx context.Context, transcript []core.Entry) (string, error) {
	if c.client == nil {
		return "", fmt.Errorf("openai client not initialized: %w", core.ErrServiceUnavailable)
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    toOpenAI(transcript),
		Temperature: c.temperature,
	})
	if err != nil {
		return "", classify(ctx, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("empty completion: %w", core.ErrServiceUnavailable)
	}
	return resp.Choices[0].Message.Content, nil
}

func toOpenAI(transcript []core.Entry) []openai.ChatCompletionMessage {
	msgs := make([]openai.ChatCompletionMessage, 0, len(transcript))
	for _, e := range transcript {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: roleFor(e.Role), Content: e.Content})
	}
	return msgs
}

func roleFor(r core.Role) string {
	switch r {
	case core.RoleDirective:
		return openai.ChatMessageRoleSystem
	case core.RoleAssistant:
		return openai.ChatMessageRoleAssistant
	default:
		return openai.ChatMessageRoleUser
	}
}

// classify maps client errors onto the core generation failures.
func classify(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", core.ErrGenerationTimeout, err)
	}
	if isAuthStatus(statusCode(err)) {
		return fmt.Errorf("%w: %v", core.ErrAuthenticationFailed, err)
	}
	return fmt.Errorf("%w: %v", core.ErrServiceUnavailable, err)
}

func statusCode(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}

func isAuthStatus(code int) bool {
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}
