// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package claude is a thin client for the Claude Messages API, shared by the
// topic-extraction and re-ranking strategies.
package claude

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/reviewer-engine/pkg/types"
)

// APIURL is the Claude Messages endpoint. Package-level var for test
// substitution.
var APIURL = "https://api.anthropic.com/v1/messages"

const anthropicVersion = "2023-06-01"

// Client calls the Claude Messages API with a single user prompt.
type Client struct {
	APIKey     string
	Model      string
	MaxTokens  int
	HTTPClient *http.Client
}

// NewClient builds a client from stage configuration.
func NewClient(cfg types.AIConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	return &Client{
		APIKey:     cfg.APIKey,
		Model:      cfg.Model,
		MaxTokens:  maxTokens,
		HTTPClient: httpClient,
	}
}

type request struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type response struct {
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Complete sends the prompt as a single user message and returns the text of
// the first content block, with any Markdown code fence stripped.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(request{
		Model:     c.Model,
		MaxTokens: c.MaxTokens,
		Messages:  []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, APIURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("Claude API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("Claude API returned HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var r response
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return "", fmt.Errorf("parsing Claude response: %w", err)
	}
	if len(r.Content) == 0 {
		return "", fmt.Errorf("Claude response has no content blocks")
	}

	return StripFence(r.Content[0].Text), nil
}

// StripFence removes a surrounding ```...``` block, if present. Models
// sometimes wrap JSON output in a fence despite instructions not to.
func StripFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[idx+1:]
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
