package factory

import (
	"fmt"

	"edubook-be/pkg/llm"
	"edubook-be/pkg/llm/ollama"
	"edubook-be/pkg/llm/openai"
)

type ProviderConfig struct {
	ProviderType  string
	ModelName     string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OllamaBaseURL string
}

func NewLLMProvider(cfg ProviderConfig) (llm.LLMProvider, error) {
	switch cfg.ProviderType {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		return openai.NewOpenAIProvider(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.ModelName), nil
	case "ollama":
		baseURL := cfg.OllamaBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, cfg.ModelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.ProviderType)
	}
}
