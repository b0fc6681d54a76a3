// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the reviewer-engine
// pipeline: the manuscript query, the topic profile, candidate and scored
// reviewer records, and per-stage configuration.
package types

import (
	"fmt"
	"strings"
)

// Default and boundary values for result sizing.
const (
	DefaultResultCount       = 10
	DefaultCandidatePoolSize = 50
	MaxResultCount           = 50
	MaxCandidatePoolSize     = 200
)

// ManuscriptQuery describes one reviewer search: the manuscript's text plus
// exclusion lists for conflict handling and result sizing.
type ManuscriptQuery struct {
	// Title is the manuscript title. Required.
	Title string `json:"title" yaml:"title"`

	// Abstract is the manuscript abstract. Required.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Keywords lists author-supplied keywords in order. May be empty.
	Keywords []string `json:"keywords" yaml:"keywords"`

	// ExcludedAuthorNames are the manuscript authors' names, matched
	// case-insensitively during conflict detection.
	ExcludedAuthorNames []string `json:"excluded_author_names" yaml:"excluded_author_names"`

	// ExcludedInstitutions are the manuscript authors' institutions.
	ExcludedInstitutions []string `json:"excluded_institutions" yaml:"excluded_institutions"`

	// ExcludedAuthorIDs are corpus identifiers for the manuscript authors,
	// when known. Passed to retrieval filtering and co-authorship checks.
	ExcludedAuthorIDs []string `json:"excluded_author_ids,omitempty" yaml:"excluded_author_ids,omitempty"`

	// ResultCount is the number of reviewers to return (default 10).
	ResultCount int `json:"result_count" yaml:"result_count"`

	// CandidatePoolSize is the number of candidates pulled from vector
	// search before scoring (default 50, always >= ResultCount).
	CandidatePoolSize int `json:"candidate_pool_size" yaml:"candidate_pool_size"`
}

// Validate rejects queries that cannot enter the pipeline. Missing title or
// abstract is the only fatal input condition; everything downstream degrades
// instead of failing.
func (q ManuscriptQuery) Validate() error {
	if strings.TrimSpace(q.Title) == "" {
		return fmt.Errorf("manuscript query: title is required")
	}
	if strings.TrimSpace(q.Abstract) == "" {
		return fmt.Errorf("manuscript query: abstract is required")
	}
	return nil
}

// Normalize applies defaults and bounds to the result-sizing fields and
// returns the adjusted copy.
func (q ManuscriptQuery) Normalize() ManuscriptQuery {
	if q.ResultCount <= 0 {
		q.ResultCount = DefaultResultCount
	}
	if q.ResultCount > MaxResultCount {
		q.ResultCount = MaxResultCount
	}
	if q.CandidatePoolSize <= 0 {
		q.CandidatePoolSize = DefaultCandidatePoolSize
	}
	if q.CandidatePoolSize > MaxCandidatePoolSize {
		q.CandidatePoolSize = MaxCandidatePoolSize
	}
	if q.CandidatePoolSize < q.ResultCount {
		q.CandidatePoolSize = q.ResultCount
	}
	return q
}

// TopicProfile is the structured summary of a manuscript's research area,
// produced once per query and immutable afterward. Lists are ordered and
// capped; empty lists are valid.
type TopicProfile struct {
	// PrimaryDomains are the manuscript's main research fields (<= 4).
	PrimaryDomains []string `json:"primary_domains" yaml:"primary_domains"`

	// Methodologies are the research methods used (<= 3).
	Methodologies []string `json:"methodologies" yaml:"methodologies"`

	// SubTopics are specific sub-areas, user keywords first (<= 5).
	SubTopics []string `json:"sub_topics" yaml:"sub_topics"`

	// ExpandedTerms are related search terms a reviewer might publish
	// about (<= 8).
	ExpandedTerms []string `json:"expanded_terms" yaml:"expanded_terms"`

	// InterdisciplinaryBridges are fields the manuscript connects (<= 2).
	InterdisciplinaryBridges []string `json:"interdisciplinary_bridges" yaml:"interdisciplinary_bridges"`
}
