// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package embed produces the fixed-dimension, L2-normalized query vector fed
// to the retrieval layer.
package embed

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/pdiddy/reviewer-engine/pkg/types"
)

// Embedder generates a vector embedding for one text string.
// Implementations must be safe for concurrent use across overlapping
// queries.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// BuildQueryText concatenates labeled manuscript sections into the single
// blob the embedding model sees. Topic-profile domains and sub-topics are
// appended so the vector reflects extracted topics, not just raw text.
func BuildQueryText(title, abstract string, keywords []string, profile types.TopicProfile) string {
	parts := []string{
		"Title: " + title,
		"Abstract: " + abstract,
	}
	if len(keywords) > 0 {
		parts = append(parts, "Keywords: "+strings.Join(keywords, ", "))
	}
	domains := append(append([]string{}, profile.PrimaryDomains...), profile.SubTopics...)
	if len(domains) > 0 {
		parts = append(parts, "Research domains: "+strings.Join(domains, ", "))
	}
	return strings.Join(parts, "\n")
}

// EmbedQuery runs the embedder over the labeled query text, checks the
// dimension against the corpus, and L2-normalizes the result.
func EmbedQuery(ctx context.Context, e Embedder, title, abstract string, keywords []string, profile types.TopicProfile, dimension int) ([]float32, error) {
	vec, err := e.EmbedText(ctx, BuildQueryText(title, abstract, keywords, profile))
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	if dimension > 0 && len(vec) != dimension {
		return nil, fmt.Errorf("embedding dimension %d does not match corpus dimension %d", len(vec), dimension)
	}
	return Normalize(vec), nil
}

// Normalize scales the vector to unit L2 length. A zero vector is returned
// unchanged.
func Normalize(vec []float32) []float32 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return vec
	}
	norm := math.Sqrt(sum)
	out := make([]float32, len(vec))
	for i, v := range vec {
		out[i] = float32(float64(v) / norm)
	}
	return out
}
