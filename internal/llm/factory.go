package llm

import (
	"fmt"

	"github.com/sant0-9/quill/internal/config"
)

// NewProvider creates a provider from config
func NewProvider(cfg *config.Config) (Provider, error) {
	switch cfg.Provider {
	case "gemini":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("gemini requires an API key")
		}
		p := NewGeminiProvider(cfg.APIKey, cfg.Model)
		p.baseURL = pick(cfg.BaseURL, p.baseURL)
		return p, nil

	case "ollama":
		return NewOllamaProvider(cfg.BaseURL, cfg.Model), nil

	case "groq":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("groq requires an API key")
		}
		return NewGroqProvider(cfg.APIKey, cfg.Model), nil

	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai requires an API key")
		}
		p := NewOpenAIProvider(cfg.APIKey, cfg.Model)
		p.baseURL = pick(cfg.BaseURL, p.baseURL)
		return p, nil

	case "anthropic":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("anthropic requires an API key")
		}
		p := NewAnthropicProvider(cfg.APIKey, cfg.Model)
		p.baseURL = pick(cfg.BaseURL, p.baseURL)
		return p, nil

	case "openrouter":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openrouter requires an API key")
		}
		return NewOpenRouterProvider(cfg.APIKey, cfg.Model), nil

	case "custom":
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("custom provider requires base_url")
		}
		return NewCustomProvider(cfg.BaseURL, cfg.APIKey, cfg.Model), nil

	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}
