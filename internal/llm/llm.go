// Package llm provides the text-generation and embedding backends consumed by
// the pipeline and the knowledge index.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
)

// Generator produces one completion for one prompt. No streaming, no retry:
// a failed call is the caller's failure to surface.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Embedder maps text into the vector space used by the knowledge index.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Client is a backend that can do both.
type Client interface {
	Generator
	Embedder
}

// Config controls backend construction.
type Config struct {
	Provider        string // auto | openai | mock
	APIKey          string
	BaseURL         string
	GenerationModel string
	EmbeddingModel  string
	EmbeddingDim    int
}

// New selects a backend by provider mode. "openai" without an API key is a
// fatal configuration error; "auto" degrades to the mock backend instead so
// local development works without credentials.
func New(cfg Config) (Client, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if mode == "" {
		mode = "auto"
	}

	switch mode {
	case "auto":
		if strings.TrimSpace(cfg.APIKey) != "" {
			return newOpenAIClient(cfg)
		}
		log.Printf("llm provider: mock (no API key configured)")
		return NewMockClient(cfg.EmbeddingDim), nil
	case "openai":
		if strings.TrimSpace(cfg.APIKey) == "" {
			return nil, errors.New("llm provider is openai but no API key is configured")
		}
		return newOpenAIClient(cfg)
	case "mock":
		return NewMockClient(cfg.EmbeddingDim), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider %q (expected auto|openai|mock)", cfg.Provider)
	}
}
