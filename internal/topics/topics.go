// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package topics turns manuscript text into a structured topic profile.
// Two interchangeable strategies exist: a heuristic tokenizer over fixed
// domain tables, and a Claude-backed extractor with structured output. The
// public contract never fails: any strategy error degrades to a valid
// profile rather than propagating.
package topics

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pdiddy/reviewer-engine/pkg/types"
)

// Strategy extracts a topic profile from manuscript text. Implementations
// may fail; the Extractor wrapper is what guarantees the never-fails
// contract.
type Strategy interface {
	Name() string
	Extract(ctx context.Context, title, abstract string, keywords []string) (types.TopicProfile, error)
}

// Extractor runs a primary strategy with a heuristic fallback. The primary
// is chosen once at construction based on configuration presence, never
// re-checked per call.
type Extractor struct {
	primary  Strategy
	fallback *HeuristicStrategy
	logger   *slog.Logger
}

// NewExtractor selects the Claude strategy when cfg carries an API key and
// the heuristic strategy otherwise.
func NewExtractor(cfg types.AIConfig) *Extractor {
	h := &HeuristicStrategy{}
	e := &Extractor{
		primary:  h,
		fallback: h,
		logger:   slog.Default().With("component", "topics"),
	}
	if cfg.LiveEnabled() {
		e.primary = NewClaudeStrategy(cfg)
	}
	return e
}

// StrategyName reports which strategy handles extraction first.
func (e *Extractor) StrategyName() string { return e.primary.Name() }

// Extract produces a topic profile for the manuscript. It never returns an
// error: if the primary strategy fails, the heuristic fallback runs, and the
// heuristic itself cannot fail. Empty lists are valid; the profile is never
// nil-shaped.
func (e *Extractor) Extract(ctx context.Context, title, abstract string, keywords []string) types.TopicProfile {
	profile, err := e.primary.Extract(ctx, title, abstract, keywords)
	if err == nil {
		return capProfile(profile)
	}

	e.logger.Warn("topic extraction degraded to heuristic",
		"strategy", e.primary.Name(), "error", err)

	profile, _ = e.fallback.Extract(ctx, title, abstract, keywords)
	return capProfile(profile)
}

// capProfile enforces the profile's list caps regardless of which strategy
// produced it.
func capProfile(p types.TopicProfile) types.TopicProfile {
	p.PrimaryDomains = capList(p.PrimaryDomains, 4)
	p.Methodologies = capList(p.Methodologies, 3)
	p.SubTopics = capList(p.SubTopics, 5)
	p.ExpandedTerms = capList(p.ExpandedTerms, 8)
	p.InterdisciplinaryBridges = capList(p.InterdisciplinaryBridges, 2)
	return p
}

func capList(s []string, n int) []string {
	if s == nil {
		return []string{}
	}
	if len(s) > n {
		return s[:n]
	}
	return s
}

// dedupe preserves first occurrence order.
func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	var out []string
	for _, it := range items {
		key := strings.ToLower(strings.TrimSpace(it))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, it)
	}
	return out
}
