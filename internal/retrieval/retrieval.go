// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package retrieval finds the top-K author profiles most similar to a query
// vector. Two interchangeable backends exist: a remote Qdrant index with
// server-side filtering, and a local in-memory matrix fallback that
// reproduces identical ranking semantics with post-hoc filtering.
package retrieval

import (
	"context"
	"log/slog"

	"github.com/pdiddy/reviewer-engine/pkg/types"
)

// Options holds retrieval parameters shared by both backends.
type Options struct {
	// Limit caps the number of returned candidates. Both backends may
	// return fewer; that signals a small corpus, not an error.
	Limit int

	// MinWorksCount filters out authors with fewer publications.
	MinWorksCount int

	// ExcludeAuthorIDs removes known manuscript authors before ranking.
	ExcludeAuthorIDs []string
}

// Backend retrieves candidates ordered by descending cosine similarity.
type Backend interface {
	Name() string
	Retrieve(ctx context.Context, vector []float32, opts Options) ([]types.CandidateProfile, error)
}

// Prober reports whether a remote backend is reachable. Satisfied by
// QdrantBackend; the probe runs once per pipeline invocation, not per call.
type Prober interface {
	Available(ctx context.Context) bool
}

// Select returns the remote backend when its availability probe succeeds and
// the local fallback otherwise.
func Select(ctx context.Context, remote Backend, local Backend) Backend {
	if p, ok := remote.(Prober); ok && p.Available(ctx) {
		return remote
	}
	slog.Default().With("component", "retrieval").
		Info("remote index unavailable, using local backend")
	return local
}
