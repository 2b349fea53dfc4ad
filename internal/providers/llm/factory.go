package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/medagent/internal/config"
	"github.com/sandevgo/medagent/internal/core"
	"github.com/sandevgo/medagent/pkg/log"
)

// NewProvider creates the completion client selected by configuration.
// Credential parsing is deferred to the chosen provider so a missing key
// fails fatally at startup, before any session can start.
func NewProvider(ctx context.Context, cfg *config.LLMConfig) (core.CompletionClient, error) {
	log.FromCtx(ctx).Info().
		Str("provider", cfg.Provider).
		Str("model", cfg.Model).
		Msg("starting llm provider")

	switch cfg.Provider {
	case "openai":
		return NewOpenAI(config.NewOpenAIConfig(ctx).APIKey, cfg.Model), nil
	case "openrouter":
		return NewOpenRouter(config.NewOpenRouterConfig(ctx).APIKey, cfg.Model), nil
	case "custom":
		c := config.NewCustomLLMConfig(ctx)
		return NewCompatible(c.BaseURL, c.APIKey, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
}
