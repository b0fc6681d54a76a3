// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scoring

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/reviewer-engine/internal/claude"
	"github.com/pdiddy/reviewer-engine/pkg/types"
)

func claudeReply(text string) map[string]any {
	return map[string]any{
		"content": []map[string]any{{"type": "text", "text": text}},
	}
}

func rerankCandidates() []types.CandidateProfile {
	return []types.CandidateProfile{
		{AuthorID: "A1", Name: "First Author", Similarity: 0.8},
		{AuthorID: "A2", Name: "Second Author", Similarity: 0.6},
	}
}

func TestClaudeStrategyScore(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("x-api-key"))
		json.NewEncoder(w).Encode(claudeReply(`[
			{"candidate_index": 1, "topic_score": 9.0, "methodology_score": 8.0, "seniority_score": 7.0, "recency_score": 9.0, "overall_score": 8.5, "reasoning": "Close topical fit."},
			{"candidate_index": 0, "topic_score": 5.0, "methodology_score": 5.0, "seniority_score": 6.0, "recency_score": 4.0, "overall_score": 5.0, "reasoning": "Partial overlap."}
		]`))
	}))
	defer ts.Close()

	orig := claude.APIURL
	claude.APIURL = ts.URL
	defer func() { claude.APIURL = orig }()

	s := NewClaudeStrategy(types.AIConfig{APIKey: "test-key", Model: "claude-sonnet-4-5-20250929"})
	scored, err := s.Score(context.Background(), "A title", "An abstract", nil, rerankCandidates())
	require.NoError(t, err)
	require.Len(t, scored, 2)

	assert.Equal(t, "A2", scored[0].AuthorID)
	assert.Equal(t, 8.5, scored[0].OverallScore)
	assert.Equal(t, "Close topical fit.", scored[0].Reasoning)
	assert.Equal(t, "A1", scored[1].AuthorID)
}

func TestClaudeStrategyScoreClampsAndSkipsBadIndices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(claudeReply(`[
			{"candidate_index": 0, "topic_score": 14.0, "methodology_score": -2.0, "seniority_score": 5.0, "recency_score": 5.0, "overall_score": 11.0, "reasoning": "Overshoot."},
			{"candidate_index": 9, "topic_score": 1.0, "methodology_score": 1.0, "seniority_score": 1.0, "recency_score": 1.0, "overall_score": 1.0, "reasoning": "Ghost."}
		]`))
	}))
	defer ts.Close()

	orig := claude.APIURL
	claude.APIURL = ts.URL
	defer func() { claude.APIURL = orig }()

	s := NewClaudeStrategy(types.AIConfig{APIKey: "test-key"})
	scored, err := s.Score(context.Background(), "A title", "An abstract", nil, rerankCandidates())
	require.NoError(t, err)
	require.Len(t, scored, 1)

	assert.Equal(t, 10.0, scored[0].TopicScore)
	assert.Equal(t, 0.0, scored[0].MethodologyScore)
	assert.Equal(t, 10.0, scored[0].OverallScore)
}

func TestClaudeStrategyScoreMalformedJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(claudeReply("I could not decide."))
	}))
	defer ts.Close()

	orig := claude.APIURL
	claude.APIURL = ts.URL
	defer func() { claude.APIURL = orig }()

	s := NewClaudeStrategy(types.AIConfig{APIKey: "test-key"})
	_, err := s.Score(context.Background(), "A title", "An abstract", nil, rerankCandidates())
	require.Error(t, err)
}

func TestEngineFallsBackOnFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	orig := claude.APIURL
	claude.APIURL = ts.URL
	defer func() { claude.APIURL = orig }()

	e := NewEngine(types.AIConfig{APIKey: "test-key"})
	require.Equal(t, "claude", e.StrategyName())

	scored, used := e.Score(context.Background(), "A title", "An abstract about transformers.", nil, rerankCandidates())
	assert.Equal(t, "heuristic", used)
	require.Len(t, scored, 2)
	// Heuristic output still respects the retrieval similarities.
	assert.Equal(t, "A1", scored[0].AuthorID)
}

func TestEngineHeuristicWithoutKey(t *testing.T) {
	e := NewEngine(types.AIConfig{})
	assert.Equal(t, "heuristic", e.StrategyName())

	scored, used := e.Score(context.Background(), "A title", "An abstract.", nil, rerankCandidates())
	assert.Equal(t, "heuristic", used)
	assert.Len(t, scored, 2)
}

func TestClaudeStrategyCapsPool(t *testing.T) {
	var captured struct {
		prompt string
	}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)
		captured.prompt = req.Messages[0].Content
		json.NewEncoder(w).Encode(claudeReply(`[{"candidate_index": 0, "overall_score": 5.0, "topic_score": 5.0, "methodology_score": 5.0, "seniority_score": 5.0, "recency_score": 5.0, "reasoning": "ok"}]`))
	}))
	defer ts.Close()

	orig := claude.APIURL
	claude.APIURL = ts.URL
	defer func() { claude.APIURL = orig }()

	pool := make([]types.CandidateProfile, rerankCap+10)
	for i := range pool {
		pool[i] = types.CandidateProfile{AuthorID: "A" + string(rune('0'+i%10)), Name: "N"}
	}

	s := NewClaudeStrategy(types.AIConfig{APIKey: "test-key"})
	_, err := s.Score(context.Background(), "A title", "An abstract", nil, pool)
	require.NoError(t, err)
	assert.Contains(t, captured.prompt, "Candidate 30:")
	assert.NotContains(t, captured.prompt, "Candidate 31:")
}
