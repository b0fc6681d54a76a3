// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package contact

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/reviewer-engine/internal/httputil"
)

// orcidBase is the public ORCID API root. Declared as a var so tests can
// substitute an httptest server.
var orcidBase = "https://pub.orcid.org/v3.0"

// orcidClient fetches public person records from the ORCID registry.
type orcidClient struct {
	Client    *http.Client
	UserAgent string
}

// orcidContact is the subset of the person record the resolver uses.
type orcidContact struct {
	Email         string
	Homepage      string
	GoogleScholar string
}

type orcidPerson struct {
	Emails struct {
		Email []struct {
			Email string `json:"email"`
		} `json:"email"`
	} `json:"emails"`
	ResearcherURLs struct {
		ResearcherURL []struct {
			URLName string `json:"url-name"`
			URL     struct {
				Value string `json:"value"`
			} `json:"url"`
		} `json:"researcher-url"`
	} `json:"researcher-urls"`
}

// Fetch queries the public person record for an ORCID identifier.
func (c *orcidClient) Fetch(ctx context.Context, orcidID string) (orcidContact, error) {
	reqURL := orcidBase + "/" + url.PathEscape(orcidID) + "/person"

	var person orcidPerson
	header := http.Header{
		"Accept":     {"application/json"},
		"User-Agent": {c.UserAgent},
	}
	if err := httputil.GetJSON(ctx, c.Client, reqURL, header, &person); err != nil {
		return orcidContact{}, err
	}

	var oc orcidContact
	for _, e := range person.Emails.Email {
		if e.Email != "" {
			oc.Email = e.Email
			break
		}
	}

	// Researcher URLs carry free-form labels. Classification is by label
	// first, then by host.
	for _, entry := range person.ResearcherURLs.ResearcherURL {
		name := strings.ToLower(entry.URLName)
		value := entry.URL.Value
		if value == "" {
			continue
		}
		switch {
		case strings.Contains(name, "google scholar") || strings.Contains(value, "scholar.google"):
			oc.GoogleScholar = value
		case strings.Contains(name, "homepage") || strings.Contains(name, "personal"):
			oc.Homepage = value
		case oc.Homepage == "":
			oc.Homepage = value
		}
	}
	return oc, nil
}
