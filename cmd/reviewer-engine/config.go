// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/viper"

	"github.com/pdiddy/reviewer-engine/pkg/types"
)

// pipelineConfig assembles the pipeline configuration from viper keys and
// loaded secrets. Zero-valued fields fall through to the documented defaults
// when the pipeline applies them.
func pipelineConfig() types.PipelineConfig {
	return types.PipelineConfig{
		AI: types.AIConfig{
			Model:     viper.GetString("ai.model"),
			APIKey:    secretDefault("anthropic-api-key", viper.GetString("ai.api_key")),
			MaxTokens: viper.GetInt("ai.max_tokens"),
		},
		Embedding: types.EmbeddingConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("embedding.timeout"),
				UserAgent: viper.GetString("embedding.user_agent"),
			},
			BaseURL:   viper.GetString("embedding.base_url"),
			Model:     viper.GetString("embedding.model"),
			Dimension: viper.GetInt("embedding.dimension"),
		},
		Retrieval: types.RetrievalConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("retrieval.timeout"),
				UserAgent: viper.GetString("retrieval.user_agent"),
			},
			QdrantHost:     viper.GetString("retrieval.qdrant_host"),
			QdrantPort:     viper.GetInt("retrieval.qdrant_port"),
			Collection:     viper.GetString("retrieval.collection"),
			ProbeTimeout:   viper.GetDuration("retrieval.probe_timeout"),
			EmbeddingsPath: viper.GetString("retrieval.embeddings_path"),
			MetadataPath:   viper.GetString("retrieval.metadata_path"),
			MinWorksCount:  viper.GetInt("retrieval.min_works_count"),
		},
		Contact: types.ContactConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("contact.timeout"),
				UserAgent: viper.GetString("contact.user_agent"),
			},
			CorpusPath:    viper.GetString("contact.corpus_path"),
			OpenAlexEmail: secretDefault("openalex-email", viper.GetString("contact.openalex_email")),
		},
	}
}
