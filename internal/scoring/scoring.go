// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scoring computes per-candidate relevance scores and the ranked
// ordering. Two interchangeable strategies mirror the topic extractor: a
// bit-reproducible heuristic blend of term overlap and similarity, and a
// Claude re-ranker that falls back to the heuristic on any failure.
package scoring

import (
	"context"
	"log/slog"

	"github.com/pdiddy/reviewer-engine/pkg/types"
)

// Weights of the overall score blend.
const (
	weightTopic       = 0.35
	weightMethodology = 0.30
	weightSeniority   = 0.15
	weightRecency     = 0.20
)

// rerankCap bounds how many candidates are sent to the remote re-ranker,
// respecting completion context limits.
const rerankCap = 30

// Strategy scores candidates against the manuscript and returns them in
// descending overall-score order, ties preserving input order.
type Strategy interface {
	Name() string
	Score(ctx context.Context, title, abstract string, keywords []string, candidates []types.CandidateProfile) ([]types.ScoredCandidate, error)
}

// Engine runs the configured strategy with a guaranteed heuristic fallback.
// Construction picks the primary once from configuration presence; transport
// errors never reach the caller.
type Engine struct {
	primary  Strategy
	fallback *HeuristicStrategy
	logger   *slog.Logger
}

// NewEngine selects the Claude re-ranker when cfg carries an API key and the
// heuristic strategy otherwise.
func NewEngine(cfg types.AIConfig) *Engine {
	h := NewHeuristicStrategy()
	e := &Engine{
		primary:  h,
		fallback: h,
		logger:   slog.Default().With("component", "scoring"),
	}
	if cfg.LiveEnabled() {
		e.primary = NewClaudeStrategy(cfg)
	}
	return e
}

// StrategyName reports which strategy runs first.
func (e *Engine) StrategyName() string { return e.primary.Name() }

// Score ranks the candidates. The returned string names the strategy that
// actually produced the scores, for the pipeline's status trail.
func (e *Engine) Score(ctx context.Context, title, abstract string, keywords []string, candidates []types.CandidateProfile) ([]types.ScoredCandidate, string) {
	scored, err := e.primary.Score(ctx, title, abstract, keywords, candidates)
	if err == nil {
		return scored, e.primary.Name()
	}

	e.logger.Warn("scoring degraded to heuristic",
		"strategy", e.primary.Name(), "error", err)
	scored, _ = e.fallback.Score(ctx, title, abstract, keywords, candidates)
	return scored, e.fallback.Name()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clamp10(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}
