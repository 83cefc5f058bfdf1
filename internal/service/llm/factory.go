package llm

import (
	"context"
	"fmt"

	"fertilitycare/internal/config"
	"fertilitycare/internal/logger"
)

// ProviderType represents the type of model provider
type ProviderType string

const (
	ProviderGemini     ProviderType = "gemini"
	ProviderOpenRouter ProviderType = "openrouter"
)

// ParseProviderType parses a string into a ProviderType
func ParseProviderType(s string) (ProviderType, error) {
	switch s {
	case "gemini", "":
		return ProviderGemini, nil
	case "openrouter":
		return ProviderOpenRouter, nil
	default:
		return "", fmt.Errorf("unknown provider type: %s", s)
	}
}

// NewProvider creates the configured model provider
func NewProvider(ctx context.Context, llmConfig *config.LLMConfig) (Provider, error) {
	providerType, err := ParseProviderType(llmConfig.Provider)
	if err != nil {
		return nil, err
	}

	switch providerType {
	case ProviderGemini:
		logger.Log.WithField("model", llmConfig.GeminiModel).Info("Creating Gemini provider")
		return NewGeminiProvider(ctx, llmConfig)
	case ProviderOpenRouter:
		logger.Log.WithField("model", llmConfig.OpenRouterModel).Info("Creating OpenRouter provider")
		return NewOpenRouterProvider(llmConfig), nil
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", providerType)
	}
}
