package genai

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type mockChat struct {
	lastParams openai.ChatCompletionNewParams
	resp       *openai.ChatCompletion
	err        error
}

func (m *mockChat) New(ctx context.Context, params openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error) {
	m.lastParams = params
	return m.resp, m.err
}

func completionWith(content string) *openai.ChatCompletion {
	return &openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: content}},
		},
	}
}

func TestGenerateMotivation(t *testing.T) {
	mock := &mockChat{resp: completionWith("Keep going, you are doing great.")}
	c := &Client{chat: mock}

	got, err := c.GenerateMotivation(context.Background(), "Русский")
	if err != nil {
		t.Fatalf("GenerateMotivation() error = %v", err)
	}
	if got != "Keep going, you are doing great." {
		t.Errorf("GenerateMotivation() = %q", got)
	}
	if len(mock.lastParams.Messages) != 2 {
		t.Fatalf("expected system + user message, got %d", len(mock.lastParams.Messages))
	}
	user := mock.lastParams.Messages[1].OfUser
	if user == nil || !strings.Contains(user.Content.OfString.Value, "Русский") {
		t.Errorf("user prompt does not name the language: %+v", mock.lastParams.Messages[1])
	}
}

func TestGenerateMotivationErrors(t *testing.T) {
	c := &Client{chat: &mockChat{err: errors.New("rate limited")}}
	if _, err := c.GenerateMotivation(context.Background(), "English"); err == nil {
		t.Error("expected error from failing chat service")
	}

	c = &Client{chat: &mockChat{resp: &openai.ChatCompletion{}}}
	if _, err := c.GenerateMotivation(context.Background(), "English"); err == nil {
		t.Error("expected error for empty choices")
	}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	os.Unsetenv("OPENAI_API_KEY")
	if _, err := NewClient(); err == nil {
		t.Error("NewClient() expected error without OPENAI_API_KEY")
	}
}
