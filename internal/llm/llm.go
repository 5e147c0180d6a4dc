package llm

import (
	"context"

	"github.com/lowentech/assistant-api/internal/credentials"
)

// Provider generates text for a fully assembled prompt.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Params are the generation knobs forwarded to the model.
type Params struct {
	MaxOutputTokens int
	Temperature     float64
	TopP            float64
}

type Config struct {
	Provider   string
	Model      string
	APIKey     string
	Credential *credentials.Credential
	Location   string
	Params     Params
}

func NewProvider(cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "gemini":
		return NewGeminiProvider(GeminiConfig{
			APIKey: cfg.APIKey,
			Model:  cfg.Model,
			Params: cfg.Params,
		}), nil
	case "vertex":
		return NewVertexProvider(VertexConfig{
			Credential: cfg.Credential,
			Model:      cfg.Model,
			Location:   cfg.Location,
			Params:     cfg.Params,
		}), nil
	default:
		return nil, ErrUnsupportedProvider{Provider: cfg.Provider}
	}
}
