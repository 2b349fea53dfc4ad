package llm

import (
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sandevgo/medagent/internal/core"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// Client calls an OpenAI-compatible chat completion API with a single user
// prompt and returns the generated text. This is the only suspension point
// of the diagnosis pipeline; whatever error the API returns is handed back
// to the caller untouched.
type Client struct {
	client *openai.Client
	model  string
}

func NewOpenAI(apiKey, model string) *Client {
	return &Client{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func NewOpenRouter(apiKey, model string) *Client {
	return NewCompatible(openRouterBaseURL, apiKey, model)
}

// NewCompatible targets any OpenAI-compatible endpoint, e.g. a local
// llama.cpp or vLLM server.
func NewCompatible(baseURL, apiKey, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return &Client{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c.client == nil {
		return "", errors.New("completion client not initialized")
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

var _ core.CompletionClient = (*Client)(nil)
