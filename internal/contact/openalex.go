// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package contact

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/reviewer-engine/internal/httputil"
)

// openAlexAuthorsBase is the OpenAlex Authors endpoint. Declared as a var so
// tests can substitute an httptest server.
var openAlexAuthorsBase = "https://api.openalex.org/authors"

// openAlexClient fetches institutional links and registry references for an
// author.
type openAlexClient struct {
	Client *http.Client
	// Email is sent as mailto parameter for polite pool access.
	Email     string
	UserAgent string
}

// openAlexContact is the subset of the author record the resolver uses.
type openAlexContact struct {
	InstitutionPage string
	ORCID           string
	ORCIDURL        string
}

type openAlexAuthor struct {
	ID                    string `json:"id"`
	DisplayName           string `json:"display_name"`
	ORCID                 string `json:"orcid"`
	LastKnownInstitutions []struct {
		DisplayName string `json:"display_name"`
		ROR         string `json:"ror"`
	} `json:"last_known_institutions"`
}

// bareOpenAlexID strips the URL prefix from a corpus author identifier.
func bareOpenAlexID(authorID string) string {
	return strings.TrimPrefix(authorID, "https://openalex.org/")
}

// Fetch queries the author record. The select parameter keeps the payload
// small; OpenAlex returns the full record otherwise.
func (c *openAlexClient) Fetch(ctx context.Context, authorID string) (openAlexContact, error) {
	params := url.Values{
		"select": {"id,display_name,last_known_institutions,orcid"},
	}
	if c.Email != "" {
		params.Set("mailto", c.Email)
	}
	reqURL := openAlexAuthorsBase + "/" + url.PathEscape(bareOpenAlexID(authorID)) + "?" + params.Encode()

	var author openAlexAuthor
	header := http.Header{"User-Agent": {c.UserAgent}}
	if err := httputil.GetJSON(ctx, c.Client, reqURL, header, &author); err != nil {
		return openAlexContact{}, err
	}

	var oc openAlexContact
	for _, inst := range author.LastKnownInstitutions {
		// ROR pages often link to institutional directories.
		if inst.ROR != "" && oc.InstitutionPage == "" {
			oc.InstitutionPage = inst.ROR
		}
	}
	if author.ORCID != "" {
		id := strings.TrimPrefix(author.ORCID, "https://orcid.org/")
		oc.ORCID = id
		oc.ORCIDURL = "https://orcid.org/" + id
	}
	return oc, nil
}
