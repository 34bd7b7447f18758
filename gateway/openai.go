package gateway

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/twinhq/twinforge/domain"
)

// OpenAIClient is a Completer backed by an OpenAI-compatible
// chat-completions endpoint.
type OpenAIClient struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// Ensure OpenAIClient implements Completer.
var _ Completer = (*OpenAIClient)(nil)

// NewOpenAIClient creates a gateway client. baseURL may be empty to use
// the upstream OpenAI endpoint; set it to route through a proxy or a
// compatible local server.
func NewOpenAIClient(apiKey, baseURL, model string, timeout time.Duration) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	}
	return &OpenAIClient{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		timeout: timeout,
	}
}

// Complete sends a chat completion request and returns the trimmed
// assistant text. The call is bounded by the configured timeout; expiry
// maps to domain.ErrCompletionUnavailable like any other transport
// failure.
func (c *OpenAIClient) Complete(ctx context.Context, messages []ChatMessage, maxTokens int, temperature float32) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrCompletionUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: response contained no choices", domain.ErrCompletionUnavailable)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		// A blank completion is not a valid utterance.
		return "", fmt.Errorf("%w: blank completion", domain.ErrCompletionUnavailable)
	}
	return content, nil
}
