// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that call external
// services. All outbound calls are synchronous with short per-call timeouts;
// a failed call degrades the stage rather than retrying.
type HTTPConfig struct {
	// Timeout is the per-request timeout (default 8s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "reviewer-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// AIConfig holds settings for stages that call the Claude API. An empty
// APIKey switches those stages to their heuristic strategies; the switch is
// evaluated once at engine construction, never per call.
type AIConfig struct {
	// Model is the model identifier (e.g. "claude-sonnet-4-5-20250929").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key. Empty selects heuristic mode.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxTokens bounds each completion (default 1024 for extraction,
	// 4096 for re-ranking).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`
}

// LiveEnabled reports whether the remote strategy is configured.
func (c AIConfig) LiveEnabled() bool { return c.APIKey != "" }

// EmbeddingConfig holds settings for the query embedder.
type EmbeddingConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is an OpenAI-compatible embeddings endpoint.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Model is the embedding model name (default "all-MiniLM-L6-v2").
	Model string `json:"model" yaml:"model"`

	// Dimension is the corpus embedding dimension (default 384). Vectors
	// of any other length are rejected before retrieval.
	Dimension int `json:"dimension" yaml:"dimension"`
}

// RetrievalConfig holds settings for the retrieval layer.
type RetrievalConfig struct {
	HTTPConfig `yaml:",inline"`

	// QdrantHost and QdrantPort locate the remote vector index.
	QdrantHost string `json:"qdrant_host" yaml:"qdrant_host"`
	QdrantPort int    `json:"qdrant_port" yaml:"qdrant_port"`

	// Collection is the Qdrant collection name (default "author_embeddings").
	Collection string `json:"collection" yaml:"collection"`

	// ProbeTimeout bounds the availability probe (default 3s).
	ProbeTimeout time.Duration `json:"probe_timeout" yaml:"probe_timeout"`

	// EmbeddingsPath and MetadataPath locate the local index files used
	// when Qdrant is unreachable: a packed float32 row matrix and the
	// parallel candidate metadata JSON.
	EmbeddingsPath string `json:"embeddings_path" yaml:"embeddings_path"`
	MetadataPath   string `json:"metadata_path" yaml:"metadata_path"`

	// MinWorksCount filters out authors with too few publications
	// (default 3).
	MinWorksCount int `json:"min_works_count" yaml:"min_works_count"`
}

// ContactConfig holds settings for the contact resolver.
type ContactConfig struct {
	HTTPConfig `yaml:",inline"`

	// CorpusPath is the read-only author store (SQLite).
	CorpusPath string `json:"corpus_path" yaml:"corpus_path"`

	// OpenAlexEmail is sent as the mailto parameter for polite pool access.
	OpenAlexEmail string `json:"openalex_email,omitempty" yaml:"openalex_email,omitempty"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	AI        AIConfig        `json:"ai" yaml:"ai"`
	Embedding EmbeddingConfig `json:"embedding" yaml:"embedding"`
	Retrieval RetrievalConfig `json:"retrieval" yaml:"retrieval"`
	Contact   ContactConfig   `json:"contact" yaml:"contact"`
}

// Defaults fills zero-valued fields with the documented defaults and returns
// the adjusted copy.
func (c PipelineConfig) Defaults() PipelineConfig {
	if c.AI.Model == "" {
		c.AI.Model = "claude-sonnet-4-5-20250929"
	}
	if c.Embedding.Model == "" {
		c.Embedding.Model = "all-MiniLM-L6-v2"
	}
	if c.Embedding.Dimension <= 0 {
		c.Embedding.Dimension = 384
	}
	if c.Embedding.Timeout <= 0 {
		c.Embedding.Timeout = 8 * time.Second
	}
	if c.Retrieval.QdrantHost == "" {
		c.Retrieval.QdrantHost = "localhost"
	}
	if c.Retrieval.QdrantPort <= 0 {
		c.Retrieval.QdrantPort = 6333
	}
	if c.Retrieval.Collection == "" {
		c.Retrieval.Collection = "author_embeddings"
	}
	if c.Retrieval.ProbeTimeout <= 0 {
		c.Retrieval.ProbeTimeout = 3 * time.Second
	}
	if c.Retrieval.MinWorksCount <= 0 {
		c.Retrieval.MinWorksCount = 3
	}
	if c.Retrieval.Timeout <= 0 {
		c.Retrieval.Timeout = 8 * time.Second
	}
	if c.Contact.Timeout <= 0 {
		c.Contact.Timeout = 8 * time.Second
	}
	if c.Retrieval.UserAgent == "" {
		c.Retrieval.UserAgent = "reviewer-engine/0.1"
	}
	if c.Contact.UserAgent == "" {
		c.Contact.UserAgent = "reviewer-engine/0.1"
	}
	return c
}
