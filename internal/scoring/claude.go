// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/reviewer-engine/internal/claude"
	"github.com/pdiddy/reviewer-engine/pkg/types"
)

// ClaudeStrategy re-ranks candidates with the Claude API. At most rerankCap
// candidates travel to the model; anything beyond that keeps its retrieval
// ordering out of the scored set.
type ClaudeStrategy struct {
	client *claude.Client
}

// NewClaudeStrategy builds the strategy from stage configuration. Re-ranking
// needs more output room than extraction, so the default token budget is
// larger.
func NewClaudeStrategy(cfg types.AIConfig) *ClaudeStrategy {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 4096
	}
	return &ClaudeStrategy{client: claude.NewClient(cfg, nil)}
}

// Name returns the strategy identifier.
func (s *ClaudeStrategy) Name() string { return "claude" }

// rerankEntry is one element of the JSON array the model returns, keyed by
// 0-based candidate index.
type rerankEntry struct {
	CandidateIndex   int     `json:"candidate_index"`
	TopicScore       float64 `json:"topic_score"`
	MethodologyScore float64 `json:"methodology_score"`
	SeniorityScore   float64 `json:"seniority_score"`
	RecencyScore     float64 `json:"recency_score"`
	OverallScore     float64 `json:"overall_score"`
	Reasoning        string  `json:"reasoning"`
}

// Score sends the manuscript plus candidate summaries and maps the returned
// index-keyed scores back to candidate identity. Any transport or parse
// failure surfaces to the Engine, which falls back to the heuristic.
func (s *ClaudeStrategy) Score(ctx context.Context, title, abstract string, keywords []string, candidates []types.CandidateProfile) ([]types.ScoredCandidate, error) {
	pool := candidates
	if len(pool) > rerankCap {
		pool = pool[:rerankCap]
	}
	if len(pool) == 0 {
		return nil, nil
	}

	text, err := s.client.Complete(ctx, buildRerankPrompt(title, abstract, keywords, pool))
	if err != nil {
		return nil, err
	}

	var entries []rerankEntry
	if err := json.Unmarshal([]byte(text), &entries); err != nil {
		return nil, fmt.Errorf("parsing re-rank response: %w", err)
	}

	scored := make([]types.ScoredCandidate, 0, len(entries))
	for _, e := range entries {
		if e.CandidateIndex < 0 || e.CandidateIndex >= len(pool) {
			continue
		}
		scored = append(scored, types.ScoredCandidate{
			CandidateProfile: pool[e.CandidateIndex],
			TopicScore:       clamp10(e.TopicScore),
			MethodologyScore: clamp10(e.MethodologyScore),
			SeniorityScore:   clamp10(e.SeniorityScore),
			RecencyScore:     clamp10(e.RecencyScore),
			OverallScore:     clamp10(e.OverallScore),
			Reasoning:        e.Reasoning,
		})
	}
	if len(scored) == 0 {
		return nil, fmt.Errorf("re-rank response matched no candidates")
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].OverallScore > scored[j].OverallScore
	})
	return scored, nil
}

func buildRerankPrompt(title, abstract string, keywords []string, pool []types.CandidateProfile) string {
	var summaries []string
	for i, c := range pool {
		topicList := c.Topics
		if len(topicList) > 8 {
			topicList = topicList[:8]
		}
		summaries = append(summaries, fmt.Sprintf(
			"Candidate %d:\n  Name: %s\n  Institution: %s\n  Topics: %s\n  H-index: %d\n  Citations: %d\n  Works: %d\n  Last publication: %s\n  Vector similarity: %.3f",
			i+1, c.Name, orUnknown(c.Institution), strings.Join(topicList, ", "),
			c.HIndex, c.CitationCount, c.WorksCount,
			orUnknown(c.LastPublicationDate), c.Similarity))
	}

	kw := "None"
	if len(keywords) > 0 {
		kw = strings.Join(keywords, ", ")
	}

	return fmt.Sprintf(`You are an expert academic editor finding peer reviewers for a paper.

PAPER:
Title: %s
Abstract: %s
Keywords: %s

CANDIDATE REVIEWERS (from semantic search):
%s

For each candidate, score them on these dimensions (0-10 scale):
- topic_score: How well their research topics align with this paper
- methodology_score: Whether they have expertise in the methods used
- seniority_score: Whether their h-index/citations suggest appropriate seniority to review
- recency_score: Whether they've published recently in this area

Then compute overall_score as a weighted average: topic(%.2f) + methodology(%.2f) + seniority(%.2f) + recency(%.2f)

Also provide a 1-2 sentence "reasoning" explaining why they would or wouldn't be a good reviewer.

Return a JSON array sorted by overall_score descending. Each element:
{"candidate_index": <int, 0-based>, "topic_score": <float>, "methodology_score": <float>, "seniority_score": <float>, "recency_score": <float>, "overall_score": <float>, "reasoning": "<string>"}

Return ONLY the JSON array, no other text. Include ALL candidates.`,
		title, abstract, kw, strings.Join(summaries, "\n\n"),
		weightTopic, weightMethodology, weightSeniority, weightRecency)
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
