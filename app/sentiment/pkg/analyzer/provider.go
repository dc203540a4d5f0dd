package analyzer

import (
	"context"
	"fmt"
)

// ModelConfig selects and configures an LLM backend.
type ModelConfig struct {
	Provider    string // "gemini" or "openai"
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float32
}

// NewModel builds the configured backend. It returns (nil, nil) when no API
// key is set so callers can fall back to mock analysis.
func NewModel(ctx context.Context, cfg ModelConfig) (Model, error) {
	if cfg.APIKey == "" {
		return nil, nil
	}
	switch cfg.Provider {
	case "", "gemini":
		m, err := NewGemini(ctx, cfg.APIKey, cfg.Model, cfg.Temperature)
		if err != nil {
			return nil, err
		}
		return m, nil
	case "openai":
		m, err := NewOpenAI(ctx, cfg.BaseURL, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
}
