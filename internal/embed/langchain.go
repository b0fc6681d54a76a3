// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package embed

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/pdiddy/reviewer-engine/pkg/types"
)

// Provider is the process-lifetime embedding handle. The underlying model
// client is initialized lazily on first use and treated as read-only
// afterwards, so concurrent queries share one handle safely.
type Provider struct {
	cfg    types.EmbeddingConfig
	logger *slog.Logger

	once     sync.Once
	embedder embeddings.Embedder
	initErr  error
}

// NewProvider builds a provider for an OpenAI-compatible embeddings
// endpoint. No connection is made until the first EmbedText call.
func NewProvider(cfg types.EmbeddingConfig) *Provider {
	return &Provider{
		cfg:    cfg,
		logger: slog.Default().With("component", "embedder"),
	}
}

// init constructs the langchaingo embedder exactly once. The "none" token
// supports local serving stacks that skip authentication.
func (p *Provider) init() {
	client, err := openai.New(
		openai.WithBaseURL(p.cfg.BaseURL),
		openai.WithToken("none"),
		openai.WithEmbeddingModel(p.cfg.Model),
	)
	if err != nil {
		p.initErr = fmt.Errorf("creating embedding client: %w", err)
		return
	}

	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		p.initErr = fmt.Errorf("creating embedder: %w", err)
		return
	}

	p.embedder = embedder
	p.logger.Debug("embedding model handle initialized", "model", p.cfg.Model)
}

// EmbedText generates a vector embedding for a single text string.
func (p *Provider) EmbedText(ctx context.Context, text string) ([]float32, error) {
	p.once.Do(p.init)
	if p.initErr != nil {
		return nil, p.initErr
	}

	vectors, err := p.embedder.EmbedDocuments(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("embedding text: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("expected 1 embedding, got %d", len(vectors))
	}
	return vectors[0], nil
}
