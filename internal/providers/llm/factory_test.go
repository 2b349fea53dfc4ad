package llm

import (
	"context"
	"testing"

	"github.com/sandevgo/medagent/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider_UnknownProvider(t *testing.T) {
	_, err := NewProvider(context.Background(), &config.LLMConfig{Provider: "banana"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown llm provider: banana")
}

func TestNewProvider_OpenAI(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")

	client, err := NewProvider(context.Background(), &config.LLMConfig{Provider: "openai", Model: "gpt-4o-mini"})
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewProvider_Custom(t *testing.T) {
	t.Setenv("LLM_BASE_URL", "http://localhost:11434/v1")
	t.Setenv("LLM_API_KEY", "")

	client, err := NewProvider(context.Background(), &config.LLMConfig{Provider: "custom", Model: "llama3"})
	require.NoError(t, err)
	assert.NotNil(t, client)
}
