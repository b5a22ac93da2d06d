package llm

import (
	"context"
	"fmt"
)

const defaultOllamaBaseURL = "http://localhost:11434/v1"

// OllamaProvider implements the Provider interface for local Ollama models
// through Ollama's OpenAI-compatible API
type OllamaProvider struct {
	inner *OpenAIProvider
}

// NewOllamaProvider creates a new Ollama provider
func NewOllamaProvider(config Config) (*OllamaProvider, error) {
	if config.BaseURL == "" {
		config.BaseURL = defaultOllamaBaseURL
	}
	if config.APIKey == "" {
		// Ollama ignores the key but the client requires one
		config.APIKey = "ollama"
	}
	if config.Model == "" {
		return nil, fmt.Errorf("ollama provider requires a model name")
	}

	inner, err := NewOpenAIProvider(config)
	if err != nil {
		return nil, err
	}

	return &OllamaProvider{inner: inner}, nil
}

// Name returns the provider name
func (p *OllamaProvider) Name() string {
	return "ollama"
}

// IsAvailable checks whether the local Ollama endpoint responds
func (p *OllamaProvider) IsAvailable(ctx context.Context) bool {
	return p.inner.IsAvailable(ctx)
}

// Summarize generates a summary through the OpenAI-compatible endpoint
func (p *OllamaProvider) Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error) {
	if req.Model == "" {
		req.Model = p.inner.config.Model
	}

	resp, err := p.inner.Summarize(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("ollama: %w", err)
	}
	return resp, nil
}
