// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the end-to-end reviewer-finding computation. Every
// stage degrades to a fallback rather than failing the request; input
// validation is the only fatal condition.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pdiddy/reviewer-engine/internal/coi"
	"github.com/pdiddy/reviewer-engine/internal/contact"
	"github.com/pdiddy/reviewer-engine/internal/corpus"
	"github.com/pdiddy/reviewer-engine/internal/embed"
	"github.com/pdiddy/reviewer-engine/internal/retrieval"
	"github.com/pdiddy/reviewer-engine/internal/scoring"
	"github.com/pdiddy/reviewer-engine/internal/topics"
	"github.com/pdiddy/reviewer-engine/pkg/types"
)

// Pipeline wires the stages together. Strategy selection happens once at
// construction; a Pipeline is safe for concurrent use because every stage
// either is stateless per call or guards its lazy caches internally.
type Pipeline struct {
	cfg       types.PipelineConfig
	extractor *topics.Extractor
	embedder  embed.Embedder
	remote    *retrieval.QdrantBackend
	local     *retrieval.LocalBackend
	engine    *scoring.Engine
	resolver  *contact.Resolver
	logger    *slog.Logger
}

// New builds a pipeline from configuration, filling in defaults.
func New(cfg types.PipelineConfig) *Pipeline {
	cfg = cfg.Defaults()
	store := corpus.NewStore(cfg.Contact)
	return &Pipeline{
		cfg:       cfg,
		extractor: topics.NewExtractor(cfg.AI),
		embedder:  embed.NewProvider(cfg.Embedding),
		remote:    retrieval.NewQdrantBackend(cfg.Retrieval),
		local:     retrieval.NewLocalBackend(cfg.Retrieval, cfg.Embedding.Dimension),
		engine:    scoring.NewEngine(cfg.AI),
		resolver:  contact.NewResolver(cfg.Contact, store),
		logger:    slog.Default().With("component", "pipeline"),
	}
}

// FindReviewers runs the full pipeline for one manuscript query. The returned
// error is non-nil only for invalid input; every downstream failure narrows
// the result instead.
func (p *Pipeline) FindReviewers(ctx context.Context, q types.ManuscriptQuery) (*types.ResultSet, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	q = q.Normalize()

	set := &types.ResultSet{Reviewers: []types.ScoredCandidate{}}

	if p.extractor.StrategyName() == "claude" {
		set.Steps = append(set.Steps, "Extracting research topics with Claude...")
	} else {
		set.Steps = append(set.Steps, "Extracting research topics heuristically...")
	}
	set.Topics = p.extractor.Extract(ctx, q.Title, q.Abstract, q.Keywords)

	set.Steps = append(set.Steps, "Generating query embedding...")
	vector, err := embed.EmbedQuery(ctx, p.embedder, q.Title, q.Abstract, q.Keywords, set.Topics, p.cfg.Embedding.Dimension)
	if err != nil {
		p.logger.Warn("embedding unavailable", "error", err)
		set.Steps = append(set.Steps, fmt.Sprintf("Embedding unavailable (%v); no candidates retrieved.", err))
		return set, nil
	}

	candidates, backendName := p.retrieve(ctx, vector, q, set)
	set.Metadata.CandidatesRetrieved = len(candidates)
	if len(candidates) == 0 {
		set.Steps = append(set.Steps, "No candidates found in vector search.")
		return set, nil
	}
	set.Steps = append(set.Steps, fmt.Sprintf("Found %d vector candidates (%s)", len(candidates), backendName))

	if p.engine.StrategyName() == "claude" {
		set.Steps = append(set.Steps, "Re-ranking candidates with Claude...")
	} else {
		set.Steps = append(set.Steps, "Scoring candidates heuristically...")
	}
	scored, used := p.engine.Score(ctx, q.Title, q.Abstract, q.Keywords, candidates)
	if used != p.engine.StrategyName() {
		set.Steps = append(set.Steps, fmt.Sprintf("Scoring fallback (%s)", used))
	}
	set.Metadata.CandidatesScored = len(scored)

	set.Steps = append(set.Steps, "Enriching contact information...")
	for i := range scored {
		scored[i].Contact = p.resolver.Resolve(ctx, &scored[i].CandidateProfile)
	}

	set.Steps = append(set.Steps, "Checking for conflicts of interest...")
	for i := range scored {
		flags := coi.DetectConflicts(scored[i].CandidateProfile,
			q.ExcludedAuthorNames, q.ExcludedInstitutions, q.ExcludedAuthorIDs)
		if flags == nil {
			flags = []types.COIFlag{}
		}
		scored[i].COIFlags = flags
	}

	if len(scored) > q.ResultCount {
		scored = scored[:q.ResultCount]
	}
	for i := range scored {
		scored[i].Rank = i + 1
	}
	set.Reviewers = scored
	set.Metadata.ReviewersReturned = len(scored)
	set.Steps = append(set.Steps, fmt.Sprintf("Returning %d reviewers", len(scored)))

	return set, nil
}

// retrieve probes the remote index, falls back to the local snapshot, and
// treats a failure of both as an empty result.
func (p *Pipeline) retrieve(ctx context.Context, vector []float32, q types.ManuscriptQuery, set *types.ResultSet) ([]types.CandidateProfile, string) {
	opts := retrieval.Options{
		Limit:            q.CandidatePoolSize,
		MinWorksCount:    p.cfg.Retrieval.MinWorksCount,
		ExcludeAuthorIDs: q.ExcludedAuthorIDs,
	}

	backend := retrieval.Select(ctx, p.remote, p.local)
	if backend.Name() == "qdrant" {
		set.Steps = append(set.Steps, fmt.Sprintf("Searching %d candidates in Qdrant...", q.CandidatePoolSize))
	} else {
		set.Steps = append(set.Steps, fmt.Sprintf("Searching %d candidates (in-memory)...", q.CandidatePoolSize))
	}

	candidates, err := backend.Retrieve(ctx, vector, opts)
	if err != nil && backend.Name() != "local" {
		p.logger.Warn("remote retrieval failed, trying local index", "error", err)
		set.Steps = append(set.Steps, "Qdrant search failed; retrying against the in-memory index...")
		backend = p.local
		candidates, err = backend.Retrieve(ctx, vector, opts)
	}
	if err != nil {
		p.logger.Warn("retrieval unavailable", "error", err)
		set.Steps = append(set.Steps, fmt.Sprintf("Retrieval unavailable (%v)", err))
		return nil, backend.Name()
	}
	return candidates, backend.Name()
}
