// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scoring

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/pdiddy/reviewer-engine/pkg/types"
)

func pinnedStrategy(year int) *HeuristicStrategy {
	return &HeuristicStrategy{now: func() time.Time {
		return time.Date(year, time.June, 15, 0, 0, 0, 0, time.UTC)
	}}
}

func floatEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestHeuristicScoreExactValues(t *testing.T) {
	s := pinnedStrategy(2026)

	candidates := []types.CandidateProfile{
		{
			AuthorID:            "A1",
			Name:                "Strong Match",
			Similarity:          0.70,
			HIndex:              50,
			LastPublicationDate: "2026-01-10",
		},
		{
			AuthorID:   "A2",
			Name:       "Weak Match",
			Similarity: 0.0,
			HIndex:     0,
		},
	}

	scored, err := s.Score(context.Background(), "Graph neural networks", "We study graph neural networks.", nil, candidates)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if len(scored) != 2 {
		t.Fatalf("scored %d candidates, want 2", len(scored))
	}

	// Similarity 0.70 saturates both the topic floor and the methodology
	// ramp; h-index 50 and a current-year publication hit the top bands.
	top := scored[0]
	if top.AuthorID != "A1" {
		t.Fatalf("top candidate = %s, want A1", top.AuthorID)
	}
	if !floatEq(top.TopicScore, 10.0) {
		t.Errorf("TopicScore = %v, want 10.0", top.TopicScore)
	}
	if !floatEq(top.MethodologyScore, 10.0) {
		t.Errorf("MethodologyScore = %v, want 10.0", top.MethodologyScore)
	}
	if !floatEq(top.SeniorityScore, 9.8) {
		t.Errorf("SeniorityScore = %v, want 9.8", top.SeniorityScore)
	}
	if !floatEq(top.RecencyScore, 9.8) {
		t.Errorf("RecencyScore = %v, want 9.8", top.RecencyScore)
	}
	// 10*0.35 + 10*0.30 + 9.8*0.15 + 9.8*0.20 = 9.93, rounded to one place.
	if !floatEq(top.OverallScore, 9.9) {
		t.Errorf("OverallScore = %v, want 9.9", top.OverallScore)
	}

	low := scored[1]
	if !floatEq(low.TopicScore, 0.0) {
		t.Errorf("low TopicScore = %v, want 0.0", low.TopicScore)
	}
	if !floatEq(low.MethodologyScore, 0.0) {
		t.Errorf("low MethodologyScore = %v, want 0.0", low.MethodologyScore)
	}
	if !floatEq(low.SeniorityScore, 3.5) {
		t.Errorf("low SeniorityScore = %v, want 3.5", low.SeniorityScore)
	}
	if !floatEq(low.RecencyScore, 5.0) {
		t.Errorf("low RecencyScore = %v, want 5.0", low.RecencyScore)
	}
	// 3.5*0.15 + 5.0*0.20 = 1.525, rounded down.
	if !floatEq(low.OverallScore, 1.5) {
		t.Errorf("low OverallScore = %v, want 1.5", low.OverallScore)
	}
}

func TestHeuristicScoreRanges(t *testing.T) {
	s := pinnedStrategy(2026)

	candidates := []types.CandidateProfile{
		{AuthorID: "A1", Similarity: 1.5, HIndex: 200, LastPublicationDate: "2030-01-01", Topics: []string{"deep learning"}},
		{AuthorID: "A2", Similarity: -0.3, HIndex: -4, LastPublicationDate: "1990"},
		{AuthorID: "A3", Similarity: 0.42, HIndex: 14, LastPublicationDate: "2023-07-01",
			Topics: []string{"natural language processing", "transformers"}, ResearchSummary: "Transformer models for language understanding."},
	}

	scored, err := s.Score(context.Background(), "Transformer models", "Language understanding with transformers.", []string{"transformers"}, candidates)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	for _, sc := range scored {
		for name, v := range map[string]float64{
			"topic":       sc.TopicScore,
			"methodology": sc.MethodologyScore,
			"seniority":   sc.SeniorityScore,
			"recency":     sc.RecencyScore,
			"overall":     sc.OverallScore,
		} {
			if v < 0 || v > 10 {
				t.Errorf("%s: %s score %v out of [0,10]", sc.AuthorID, name, v)
			}
		}
		want := sc.TopicScore*weightTopic + sc.MethodologyScore*weightMethodology +
			sc.SeniorityScore*weightSeniority + sc.RecencyScore*weightRecency
		// Sub-scores are rounded after the weighted sum, so allow the
		// accumulated one-decimal drift.
		if math.Abs(sc.OverallScore-want) > 0.2 {
			t.Errorf("%s: overall %v too far from weighted sum %v", sc.AuthorID, sc.OverallScore, want)
		}
	}
}

func TestHeuristicScoreSortedDescendingStable(t *testing.T) {
	s := pinnedStrategy(2026)

	candidates := []types.CandidateProfile{
		{AuthorID: "A1", Similarity: 0.3, HIndex: 10, LastPublicationDate: "2024"},
		{AuthorID: "A2", Similarity: 0.3, HIndex: 10, LastPublicationDate: "2024"},
		{AuthorID: "A3", Similarity: 0.9, HIndex: 60, LastPublicationDate: "2026"},
	}

	scored, err := s.Score(context.Background(), "A title", "An abstract about something.", nil, candidates)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	for i := 1; i < len(scored); i++ {
		if scored[i-1].OverallScore < scored[i].OverallScore {
			t.Fatalf("not sorted descending at %d: %v < %v", i, scored[i-1].OverallScore, scored[i].OverallScore)
		}
	}
	if scored[0].AuthorID != "A3" {
		t.Errorf("top = %s, want A3", scored[0].AuthorID)
	}
	// A1 and A2 tie exactly; input order must survive.
	if scored[1].AuthorID != "A1" || scored[2].AuthorID != "A2" {
		t.Errorf("tie order = %s, %s, want A1, A2", scored[1].AuthorID, scored[2].AuthorID)
	}
}

func TestSeniorityFromHIndex(t *testing.T) {
	tests := []struct {
		h    int
		want float64
	}{
		{60, 9.8}, {50, 9.8}, {49, 9.5}, {40, 9.5}, {30, 9.0},
		{25, 8.5}, {18, 8.0}, {12, 7.5}, {8, 7.0}, {5, 6.0},
		{3, 5.0}, {2, 3.5}, {0, 3.5},
	}
	for _, tt := range tests {
		if got := seniorityFromHIndex(tt.h); !floatEq(got, tt.want) {
			t.Errorf("seniorityFromHIndex(%d) = %v, want %v", tt.h, got, tt.want)
		}
	}
}

func TestRecencyFromLastPublication(t *testing.T) {
	tests := []struct {
		lastPub string
		want    float64
	}{
		{"2026-03-01", 9.8},
		{"2027", 9.8},
		{"2025-12-31", 9.5},
		{"2024", 8.5},
		{"2023", 7.5},
		{"2021-06-15", 5.5},
		{"2015", 3.0},
		{"", 5.0},
		{"soon", 5.0},
		{"20", 5.0},
	}
	for _, tt := range tests {
		if got := recencyFromLastPublication(tt.lastPub, 2026); !floatEq(got, tt.want) {
			t.Errorf("recencyFromLastPublication(%q, 2026) = %v, want %v", tt.lastPub, got, tt.want)
		}
	}
}

func TestPhraseMatchRatio(t *testing.T) {
	tests := []struct {
		name     string
		keywords []string
		labels   []string
		want     float64
	}{
		{
			name:     "full phrase in label",
			keywords: []string{"graph neural networks"},
			labels:   []string{"graph neural networks"},
			want:     1.0,
		},
		{
			name:     "half the words suffice",
			keywords: []string{"deep reinforcement learning"},
			labels:   []string{"reinforcement learning"},
			want:     1.0,
		},
		{
			name:     "one of three words is not enough",
			keywords: []string{"deep reinforcement learning"},
			labels:   []string{"deep sea biology"},
			want:     0.0,
		},
		{
			name:     "one of two keywords matches",
			keywords: []string{"graph networks", "quantum chemistry"},
			labels:   []string{"graph networks"},
			want:     0.5,
		},
		{
			name:     "no keywords",
			keywords: nil,
			labels:   []string{"anything"},
			want:     0.0,
		},
	}
	for _, tt := range tests {
		if got := phraseMatchRatio(tt.keywords, tt.labels); !floatEq(got, tt.want) {
			t.Errorf("%s: phraseMatchRatio = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestBuildReasoningBands(t *testing.T) {
	sc := types.ScoredCandidate{
		TopicScore:       8.2,
		MethodologyScore: 7.1,
		RecencyScore:     9.5,
	}
	got := buildReasoning(sc, 12, 30)
	want := "Strong topic alignment (12 matching terms). Strong methodological match. Senior researcher (h-index: 30). Actively publishing."
	if got != want {
		t.Errorf("reasoning = %q, want %q", got, want)
	}

	sc = types.ScoredCandidate{TopicScore: 1.0, MethodologyScore: 2.0, RecencyScore: 5.0}
	got = buildReasoning(sc, 0, 2)
	if got != "Related domain expertise." {
		t.Errorf("reasoning = %q, want %q", got, "Related domain expertise.")
	}
}
