// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package retrieval

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/reviewer-engine/internal/httputil"
	"github.com/pdiddy/reviewer-engine/pkg/types"
)

// QdrantBackend queries a Qdrant collection over its REST API. The filter
// (works_count >= min, author_id not excluded) is evaluated server-side, so
// the returned page is already final.
type QdrantBackend struct {
	// BaseURL is "http://host:port". Kept as a plain string so tests can
	// point it at an httptest server.
	BaseURL    string
	Collection string
	Client     *http.Client

	// ProbeClient bounds the availability check with a shorter timeout
	// than search calls. Falls back to Client when nil.
	ProbeClient *http.Client
}

// NewQdrantBackend builds the backend from stage configuration.
func NewQdrantBackend(cfg types.RetrievalConfig) *QdrantBackend {
	return &QdrantBackend{
		BaseURL:     fmt.Sprintf("http://%s:%d", cfg.QdrantHost, cfg.QdrantPort),
		Collection:  cfg.Collection,
		Client:      &http.Client{Timeout: cfg.Timeout},
		ProbeClient: &http.Client{Timeout: cfg.ProbeTimeout},
	}
}

// Name returns the backend identifier.
func (b *QdrantBackend) Name() string { return "qdrant" }

// Available probes the collections endpoint with a short timeout.
func (b *QdrantBackend) Available(ctx context.Context) bool {
	client := b.ProbeClient
	if client == nil {
		client = b.Client
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.BaseURL+"/collections", nil)
	if err != nil {
		return false
	}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK
}

// Qdrant search request/response structures (REST API).
type qdrantSearchRequest struct {
	Vector      []float32     `json:"vector"`
	Limit       int           `json:"limit"`
	WithPayload bool          `json:"with_payload"`
	Filter      *qdrantFilter `json:"filter,omitempty"`
}

type qdrantFilter struct {
	Must    []qdrantCondition `json:"must,omitempty"`
	MustNot []qdrantCondition `json:"must_not,omitempty"`
}

type qdrantCondition struct {
	Key   string       `json:"key"`
	Range *qdrantRange `json:"range,omitempty"`
	Match *qdrantMatch `json:"match,omitempty"`
}

type qdrantRange struct {
	GTE float64 `json:"gte"`
}

type qdrantMatch struct {
	Value string `json:"value"`
}

type qdrantSearchResponse struct {
	Result []qdrantPoint `json:"result"`
}

type qdrantPoint struct {
	Score   float64       `json:"score"`
	Payload qdrantPayload `json:"payload"`
}

type qdrantPayload struct {
	AuthorID            string   `json:"author_id"`
	Name                string   `json:"name"`
	ORCID               string   `json:"orcid"`
	Institution         string   `json:"institution"`
	Country             string   `json:"country"`
	Topics              []string `json:"topics"`
	HIndex              int      `json:"h_index"`
	CitationCount       int      `json:"citation_count"`
	WorksCount          int      `json:"works_count"`
	LastPublicationDate string   `json:"last_publication_date"`
}

// Retrieve runs a similarity search with server-side filtering.
func (b *QdrantBackend) Retrieve(ctx context.Context, vector []float32, opts Options) ([]types.CandidateProfile, error) {
	filter := &qdrantFilter{
		Must: []qdrantCondition{
			{Key: "works_count", Range: &qdrantRange{GTE: float64(opts.MinWorksCount)}},
		},
	}
	for _, id := range opts.ExcludeAuthorIDs {
		filter.MustNot = append(filter.MustNot, qdrantCondition{
			Key: "author_id", Match: &qdrantMatch{Value: id},
		})
	}

	url := fmt.Sprintf("%s/collections/%s/points/search", b.BaseURL, b.Collection)
	searchReq := qdrantSearchRequest{
		Vector:      vector,
		Limit:       opts.Limit,
		WithPayload: true,
		Filter:      filter,
	}

	var sr qdrantSearchResponse
	if err := httputil.PostJSON(ctx, b.Client, url, nil, searchReq, &sr); err != nil {
		return nil, err
	}

	candidates := make([]types.CandidateProfile, 0, len(sr.Result))
	for _, point := range sr.Result {
		candidates = append(candidates, types.CandidateProfile{
			AuthorID:            point.Payload.AuthorID,
			Name:                point.Payload.Name,
			ORCID:               point.Payload.ORCID,
			Institution:         point.Payload.Institution,
			Country:             point.Payload.Country,
			Topics:              point.Payload.Topics,
			HIndex:              point.Payload.HIndex,
			CitationCount:       point.Payload.CitationCount,
			WorksCount:          point.Payload.WorksCount,
			LastPublicationDate: point.Payload.LastPublicationDate,
			Similarity:          point.Score,
		})
	}
	return candidates, nil
}
