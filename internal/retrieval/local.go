// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package retrieval

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sort"
	"sync"

	"github.com/pdiddy/reviewer-engine/pkg/types"
)

// indexRecord is one metadata entry parallel to a matrix row.
type indexRecord struct {
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

// localIndex holds the loaded matrix and metadata. Immutable after load;
// safe for concurrent reads.
type localIndex struct {
	rows [][]float32
	meta []indexRecord
}

// LocalBackend computes cosine similarity over an in-memory matrix of
// normalized embedding rows. The index loads lazily once per process
// lifetime and is never mutated or hot-reloaded afterwards.
type LocalBackend struct {
	EmbeddingsPath string
	MetadataPath   string
	Dimension      int

	once    sync.Once
	index   *localIndex
	loadErr error
	logger  *slog.Logger
}

// NewLocalBackend builds the backend from stage configuration. No file is
// touched until the first Retrieve call.
func NewLocalBackend(cfg types.RetrievalConfig, dimension int) *LocalBackend {
	return &LocalBackend{
		EmbeddingsPath: cfg.EmbeddingsPath,
		MetadataPath:   cfg.MetadataPath,
		Dimension:      dimension,
		logger:         slog.Default().With("component", "local-index"),
	}
}

// Name returns the backend identifier.
func (b *LocalBackend) Name() string { return "local" }

// load reads the packed float32 matrix and the parallel metadata JSON.
func (b *LocalBackend) load() {
	raw, err := os.ReadFile(b.EmbeddingsPath)
	if err != nil {
		b.loadErr = fmt.Errorf("reading embeddings %s: %w", b.EmbeddingsPath, err)
		return
	}
	if b.Dimension <= 0 {
		b.loadErr = fmt.Errorf("embedding dimension must be positive, got %d", b.Dimension)
		return
	}

	rowBytes := b.Dimension * 4
	if len(raw)%rowBytes != 0 {
		b.loadErr = fmt.Errorf("embeddings file length %d is not a multiple of row size %d", len(raw), rowBytes)
		return
	}
	n := len(raw) / rowBytes

	rows := make([][]float32, n)
	for i := 0; i < n; i++ {
		row := make([]float32, b.Dimension)
		base := i * rowBytes
		for j := 0; j < b.Dimension; j++ {
			bits := binary.LittleEndian.Uint32(raw[base+j*4 : base+j*4+4])
			row[j] = math.Float32frombits(bits)
		}
		rows[i] = row
	}

	metaRaw, err := os.ReadFile(b.MetadataPath)
	if err != nil {
		b.loadErr = fmt.Errorf("reading metadata %s: %w", b.MetadataPath, err)
		return
	}
	var meta []indexRecord
	if err := json.Unmarshal(metaRaw, &meta); err != nil {
		b.loadErr = fmt.Errorf("parsing metadata %s: %w", b.MetadataPath, err)
		return
	}
	if len(meta) != n {
		b.loadErr = fmt.Errorf("metadata has %d records but matrix has %d rows", len(meta), n)
		return
	}

	b.index = &localIndex{rows: rows, meta: meta}
	b.logger.Info("loaded in-memory index", "authors", n, "dims", b.Dimension)
}

// Retrieve computes one dense matrix-vector product, sorts indices by
// descending similarity, then applies the works-count and exclusion filters
// while scanning in score order, stopping once the limit is reached. The
// post-hoc filter scan keeps the ordering semantics identical to the remote
// backend's server-side filtering.
func (b *LocalBackend) Retrieve(_ context.Context, vector []float32, opts Options) ([]types.CandidateProfile, error) {
	b.once.Do(b.load)
	if b.loadErr != nil {
		return nil, b.loadErr
	}
	if len(vector) != b.Dimension {
		return nil, fmt.Errorf("query vector dimension %d does not match index dimension %d", len(vector), b.Dimension)
	}

	idx := b.index
	scores := make([]float64, len(idx.rows))
	for i, row := range idx.rows {
		var dot float64
		for j, v := range row {
			dot += float64(v) * float64(vector[j])
		}
		scores[i] = dot
	}

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, c int) bool { return scores[order[a]] > scores[order[c]] })

	excluded := make(map[string]bool, len(opts.ExcludeAuthorIDs))
	for _, id := range opts.ExcludeAuthorIDs {
		excluded[id] = true
	}

	var results []types.CandidateProfile
	for _, i := range order {
		m := idx.meta[i]
		if m.WorksCount < opts.MinWorksCount {
			continue
		}
		if excluded[m.AuthorID] {
			continue
		}
		results = append(results, types.CandidateProfile{
			AuthorID:            m.AuthorID,
			Name:                m.Name,
			ORCID:               m.ORCID,
			Institution:         m.Institution,
			Country:             m.Country,
			Topics:              m.Topics,
			HIndex:              m.HIndex,
			CitationCount:       m.CitationCount,
			WorksCount:          m.WorksCount,
			LastPublicationDate: m.LastPublicationDate,
			Similarity:          scores[i],
		})
		if opts.Limit > 0 && len(results) >= opts.Limit {
			break
		}
	}
	return results, nil
}
