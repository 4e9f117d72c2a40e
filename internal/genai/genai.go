// Package genai generates ad-hoc motivational messages with the OpenAI
// API. The bot works fine without it: callers fall back to the static
// glossary phrases when no client is configured.
package genai

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// chatService defines the minimal interface over chat completions so
// tests can substitute the OpenAI client.
type chatService interface {
	New(ctx context.Context, params openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// ClientInterface is what the conversation flow depends on.
type ClientInterface interface {
	GenerateMotivation(ctx context.Context, language string) (string, error)
}

// Client wraps the OpenAI chat completion service.
type Client struct {
	chat chatService
}

var _ ClientInterface = (*Client)(nil)

// NewClient initializes a client from the OPENAI_API_KEY environment
// variable.
func NewClient() (*Client, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not set")
	}
	cli := openai.NewClient(option.WithAPIKey(apiKey))
	return &Client{chat: &cli.Chat.Completions}, nil
}

const systemPrompt = "You are a supportive fitness companion inside a body-weight tracking chat bot. " +
	"Write one short motivational message, two sentences at most, encouraging the user to keep " +
	"logging their weight and working toward their goal. No hashtags, no emoji."

// GenerateMotivation returns a short motivational message in the given
// language.
func (c *Client) GenerateMotivation(ctx context.Context, language string) (string, error) {
	userPrompt := fmt.Sprintf("Answer in %s.", language)
	resp, err := c.chat.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModelGPT4oMini,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("generate motivation: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("generate motivation: no choices returned")
	}
	slog.Debug("genai motivation generated", "language", language)
	return resp.Choices[0].Message.Content, nil
}
