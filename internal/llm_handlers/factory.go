package llmHandlers

import (
	"context"
	"fmt"
	"os"
)

type Provider string

const (
	ProviderVertexAnthropic Provider = "vertex_anthropic"
	ProviderLangChainOpenAI Provider = "langchain_openai"
	ProviderLangChainGroq   Provider = "langchain_groq"
	ProviderGemini          Provider = "gemini"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// Config selects a provider and carries whatever that provider needs.
type Config struct {
	Provider Provider

	Model   string
	BaseURL string
	APIKey  string

	// Tool schemas for providers that run a tool loop (Vertex Anthropic).
	Tools []map[string]interface{}
}

// New builds a chat client for the configured provider.
func New(ctx context.Context, cfg Config) (Client, error) {
	switch cfg.Provider {
	case ProviderVertexAnthropic:
		return NewVertexAnthropicClient(cfg.Tools), nil

	case ProviderLangChainOpenAI:
		return NewLangChainClient(LangChainConfig{
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
			APIKey:  cfg.APIKey,
		})

	case ProviderLangChainGroq:
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("GROQ_API_KEY")
		}
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = groqBaseURL
		}
		return NewLangChainClient(LangChainConfig{
			Model:   cfg.Model,
			BaseURL: baseURL,
			APIKey:  apiKey,
		})

	case ProviderGemini:
		return NewGenaiGeminiClient(ctx)

	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
