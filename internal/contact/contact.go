// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package contact enriches scored candidates with contact information.
// Resolution cascades from the authoritative corpus record through the
// OpenAlex and ORCID APIs down to pattern inference; each source fills only
// the fields still missing. The resolver always terminates with some address
// unless the candidate's name is unusable.
package contact

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/pdiddy/reviewer-engine/internal/corpus"
	"github.com/pdiddy/reviewer-engine/pkg/types"
)

// Resolver enriches candidates with contact data.
type Resolver struct {
	store    *corpus.Store
	openalex *openAlexClient
	orcid    *orcidClient
	logger   *slog.Logger
}

// NewResolver builds a resolver over the corpus store and the public APIs.
func NewResolver(cfg types.ContactConfig, store *corpus.Store) *Resolver {
	client := &http.Client{Timeout: cfg.Timeout}
	return &Resolver{
		store: store,
		openalex: &openAlexClient{
			Client:    client,
			Email:     cfg.OpenAlexEmail,
			UserAgent: cfg.UserAgent,
		},
		orcid: &orcidClient{
			Client:    client,
			UserAgent: cfg.UserAgent,
		},
		logger: slog.Default().With("component", "contact"),
	}
}

// Resolve fills in contact information for one candidate. The candidate's
// co-author identifiers and affiliations are refreshed from the corpus record
// as a side effect, because the conflict detector needs them downstream.
// External lookup failures degrade silently to the next cascade step.
func (r *Resolver) Resolve(ctx context.Context, c *types.CandidateProfile) types.ContactInfo {
	var info types.ContactInfo

	rec, ok, err := r.store.Lookup(ctx, c.AuthorID)
	if err != nil {
		r.logger.Warn("corpus lookup failed", "author_id", c.AuthorID, "error", err)
	}
	if ok {
		copyMissing(&info, rec.Contact)
		if len(rec.Profile.CoAuthorIDs) > 0 {
			c.CoAuthorIDs = rec.Profile.CoAuthorIDs
		}
		if len(rec.Profile.Affiliations) > 0 {
			c.Affiliations = rec.Profile.Affiliations
		}
		if c.ORCID == "" {
			c.ORCID = rec.Profile.ORCID
		}
	}

	if info.Email == "" && c.AuthorID != "" {
		oc, err := r.openalex.Fetch(ctx, c.AuthorID)
		if err != nil {
			r.logger.Debug("openalex lookup failed", "author_id", c.AuthorID, "error", err)
		} else {
			if info.InstitutionPage == "" {
				info.InstitutionPage = oc.InstitutionPage
			}
			if info.ORCIDURL == "" {
				info.ORCIDURL = oc.ORCIDURL
			}
			if c.ORCID == "" {
				c.ORCID = oc.ORCID
			}
		}
	}

	if info.Email == "" && c.ORCID != "" {
		oc, err := r.orcid.Fetch(ctx, c.ORCID)
		if err != nil {
			r.logger.Debug("orcid lookup failed", "orcid", c.ORCID, "error", err)
		} else {
			if info.Email == "" {
				info.Email = oc.Email
			}
			if info.Homepage == "" {
				info.Homepage = oc.Homepage
			}
			if info.GoogleScholar == "" {
				info.GoogleScholar = oc.GoogleScholar
			}
		}
	}

	if info.Email == "" {
		if email, ok := inferEmail(c.Name, c.Institution); ok {
			info.Email = email
			info.EmailIsInferred = markInferred(c.Name)
		}
	}

	// The profile link needs nothing but the identifier.
	if c.AuthorID != "" {
		info.OpenAlexURL = "https://openalex.org/" + bareOpenAlexID(c.AuthorID)
	}
	if info.ORCIDURL == "" && c.ORCID != "" {
		info.ORCIDURL = "https://orcid.org/" + c.ORCID
	}

	return info
}

// copyMissing fills empty fields of dst from src. Authoritative emails are
// never marked inferred.
func copyMissing(dst *types.ContactInfo, src types.ContactInfo) {
	if dst.Email == "" {
		dst.Email = src.Email
	}
	if dst.Homepage == "" {
		dst.Homepage = src.Homepage
	}
	if dst.GoogleScholar == "" {
		dst.GoogleScholar = src.GoogleScholar
	}
	if dst.InstitutionPage == "" {
		dst.InstitutionPage = src.InstitutionPage
	}
}
