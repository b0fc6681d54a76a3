// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package topics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/pdiddy/reviewer-engine/internal/claude"
	"github.com/pdiddy/reviewer-engine/pkg/types"
)

// extractionPromptTmpl asks for the five profile fields as bare JSON.
var extractionPromptTmpl = template.Must(template.New("topics").Parse(`Analyze this academic paper and extract structured information for finding peer reviewers.

Title: {{.Title}}
Abstract: {{.Abstract}}
Keywords: {{.Keywords}}

Return a JSON object with these fields:
- "primary_domains": list of 2-4 primary research domains
- "methodologies": list of 1-3 methodologies used
- "sub_topics": list of 3-5 specific sub-topics
- "expanded_terms": list of 5-8 related search terms a reviewer might publish about
- "interdisciplinary_bridges": list of 0-2 fields this paper bridges

Return ONLY valid JSON, no other text.`))

// ClaudeStrategy delegates topic extraction to the Claude API with a
// structured-output prompt.
type ClaudeStrategy struct {
	client *claude.Client
}

// NewClaudeStrategy builds the strategy from stage configuration.
func NewClaudeStrategy(cfg types.AIConfig) *ClaudeStrategy {
	return &ClaudeStrategy{client: claude.NewClient(cfg, nil)}
}

// Name returns the strategy identifier.
func (s *ClaudeStrategy) Name() string { return "claude" }

// Extract sends the manuscript text and parses the returned JSON profile.
// Transport, parse, and validation errors all surface to the caller, which
// falls back to the heuristic strategy.
func (s *ClaudeStrategy) Extract(ctx context.Context, title, abstract string, keywords []string) (types.TopicProfile, error) {
	kw := "None provided"
	if len(keywords) > 0 {
		kw = strings.Join(keywords, ", ")
	}

	var buf bytes.Buffer
	err := extractionPromptTmpl.Execute(&buf, struct {
		Title, Abstract, Keywords string
	}{title, abstract, kw})
	if err != nil {
		return types.TopicProfile{}, fmt.Errorf("rendering prompt: %w", err)
	}

	text, err := s.client.Complete(ctx, buf.String())
	if err != nil {
		return types.TopicProfile{}, err
	}

	var profile types.TopicProfile
	if err := json.Unmarshal([]byte(text), &profile); err != nil {
		return types.TopicProfile{}, fmt.Errorf("parsing topic profile: %w", err)
	}

	return profile, nil
}
