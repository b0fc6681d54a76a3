// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Affiliation is one institutional association on a candidate's corpus record.
type Affiliation struct {
	Institution string `json:"institution" yaml:"institution"`
	Country     string `json:"country,omitempty" yaml:"country,omitempty"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	ROR         string `json:"ror,omitempty" yaml:"ror,omitempty"`
}

// CandidateProfile is an author profile returned by the retrieval layer.
// The external corpus owns these records; the pipeline reads a working copy
// and annotates it into a ScoredCandidate.
type CandidateProfile struct {
	// AuthorID is the stable corpus identifier (an OpenAlex author URL).
	AuthorID string `json:"author_id" yaml:"author_id"`

	// Name is the author's display name.
	Name string `json:"name" yaml:"name"`

	// Topics lists the author's research topic labels.
	Topics []string `json:"topics" yaml:"topics"`

	// Institution is the author's last known institution.
	Institution string `json:"institution" yaml:"institution"`

	// Country is the institution's country code.
	Country string `json:"country,omitempty" yaml:"country,omitempty"`

	// Affiliations holds the full affiliation records when available.
	Affiliations []Affiliation `json:"affiliations,omitempty" yaml:"affiliations,omitempty"`

	// ORCID is the bare ORCID identifier, if known (e.g. "0000-0002-1825-0097").
	ORCID string `json:"orcid,omitempty" yaml:"orcid,omitempty"`

	HIndex        int `json:"h_index" yaml:"h_index"`
	CitationCount int `json:"citation_count" yaml:"citation_count"`
	WorksCount    int `json:"works_count" yaml:"works_count"`

	// LastPublicationDate is ISO formatted, year granularity at minimum
	// ("2024" or "2024-03-15"). Empty when unknown.
	LastPublicationDate string `json:"last_publication_date,omitempty" yaml:"last_publication_date,omitempty"`

	// CoAuthorIDs are corpus identifiers of recent co-authors, used for
	// conflict detection.
	CoAuthorIDs []string `json:"co_author_ids,omitempty" yaml:"co_author_ids,omitempty"`

	// ResearchSummary is concatenated recent-abstract text from the corpus.
	ResearchSummary string `json:"research_summary,omitempty" yaml:"research_summary,omitempty"`

	// Email is the authoritative contact address stored in the corpus,
	// when one exists.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`

	// Similarity is the raw cosine similarity in [0,1] assigned by the
	// retrieval layer.
	Similarity float64 `json:"similarity" yaml:"similarity"`
}

// ScoredCandidate is a candidate annotated with sub-scores, reasoning,
// contact information, and conflict flags. Rank is 1-based and assigned only
// after the final truncation.
type ScoredCandidate struct {
	CandidateProfile `yaml:",inline"`

	// Sub-scores and the overall score are clamped to [0,10].
	TopicScore       float64 `json:"topic_score" yaml:"topic_score"`
	MethodologyScore float64 `json:"methodology_score" yaml:"methodology_score"`
	SeniorityScore   float64 `json:"seniority_score" yaml:"seniority_score"`
	RecencyScore     float64 `json:"recency_score" yaml:"recency_score"`
	OverallScore     float64 `json:"overall_score" yaml:"overall_score"`

	// Reasoning is a short human-readable justification for the scores.
	Reasoning string `json:"reasoning" yaml:"reasoning"`

	// Rank matches the candidate's position in the final reviewer list.
	Rank int `json:"rank" yaml:"rank"`

	Contact  ContactInfo `json:"contact" yaml:"contact"`
	COIFlags []COIFlag   `json:"coi_flags" yaml:"coi_flags"`
}

// ContactInfo holds resolved or inferred reviewer contact data.
// Invariant: if Email was not obtained from an authoritative source,
// EmailIsInferred reports how it is presented to the caller (see the
// resolver's flagging rule).
type ContactInfo struct {
	Email string `json:"email,omitempty" yaml:"email,omitempty"`

	// EmailIsInferred marks addresses produced by pattern inference or
	// fabrication rather than an authoritative record.
	EmailIsInferred bool `json:"email_is_inferred" yaml:"email_is_inferred"`

	// OpenAlexURL is always derivable from the author identifier.
	OpenAlexURL string `json:"openalex_url,omitempty" yaml:"openalex_url,omitempty"`

	ORCIDURL      string `json:"orcid_url,omitempty" yaml:"orcid_url,omitempty"`
	Homepage      string `json:"homepage,omitempty" yaml:"homepage,omitempty"`
	GoogleScholar string `json:"google_scholar,omitempty" yaml:"google_scholar,omitempty"`

	// InstitutionPage is an institutional registry page (ROR URL).
	InstitutionPage string `json:"institution_page,omitempty" yaml:"institution_page,omitempty"`
}

// COIFlagType classifies a conflict-of-interest finding.
type COIFlagType string

const (
	COICoAuthor         COIFlagType = "co_author"
	COISameInstitution  COIFlagType = "same_institution"
	COISamePerson       COIFlagType = "same_person"
	COIPossibleRelation COIFlagType = "possible_relation"
)

// COISeverity grades a conflict flag.
type COISeverity string

const (
	SeverityLow      COISeverity = "low"
	SeverityMedium   COISeverity = "medium"
	SeverityHigh     COISeverity = "high"
	SeverityCritical COISeverity = "critical"
)

// COIFlag annotates a candidate with one detected conflict. Flags never
// remove a candidate from the result set.
type COIFlag struct {
	Type     COIFlagType `json:"type" yaml:"type"`
	Severity COISeverity `json:"severity" yaml:"severity"`
	Detail   string      `json:"detail" yaml:"detail"`
}

// ResultMetadata carries pipeline counters for the caller.
type ResultMetadata struct {
	CandidatesRetrieved int `json:"candidates_retrieved" yaml:"candidates_retrieved"`
	CandidatesScored    int `json:"candidates_scored" yaml:"candidates_scored"`
	ReviewersReturned   int `json:"reviewers_returned" yaml:"reviewers_returned"`
}

// ResultSet is the pipeline's response: the topic profile, the ranked
// reviewer list, a status trail of the stages that ran, and counters.
type ResultSet struct {
	Topics    TopicProfile      `json:"topics" yaml:"topics"`
	Reviewers []ScoredCandidate `json:"reviewers" yaml:"reviewers"`
	Steps     []string          `json:"steps" yaml:"steps"`
	Metadata  ResultMetadata    `json:"metadata" yaml:"metadata"`
}
