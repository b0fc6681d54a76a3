// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scoring

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/reviewer-engine/internal/topics"
	"github.com/pdiddy/reviewer-engine/pkg/types"
)

// HeuristicStrategy scores candidates from term overlap, vector similarity,
// h-index, and publication recency. Given identical inputs and a fixed
// clock the output is bit-reproducible.
type HeuristicStrategy struct {
	// now supplies the current time for recency scoring. Tests pin it.
	now func() time.Time
}

// NewHeuristicStrategy returns a strategy on the real clock.
func NewHeuristicStrategy() *HeuristicStrategy {
	return &HeuristicStrategy{now: time.Now}
}

// Name returns the strategy identifier.
func (s *HeuristicStrategy) Name() string { return "heuristic" }

// Score computes the four sub-scores, the weighted overall score, and the
// reasoning text for every candidate, then sorts descending by overall
// score with input order preserved on ties. The error is always nil.
func (s *HeuristicStrategy) Score(_ context.Context, title, abstract string, keywords []string, candidates []types.CandidateProfile) ([]types.ScoredCandidate, error) {
	queryTerms := termSet(title, abstract, strings.Join(keywords, " "))

	queryText := title + " " + abstract + " " + strings.Join(keywords, " ")
	queryBigrams := bigramSet(queryText)

	kwTerms := termSet(strings.Join(keywords, " "))

	currentYear := s.now().Year()

	scored := make([]types.ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		candidateTerms := termSet(append([]string{c.ResearchSummary}, c.Topics...)...)

		overlap := intersectionSize(queryTerms, candidateTerms)

		// Coverage against the candidate's own vocabulary: what share of
		// their expertise the manuscript touches.
		candCoverage := float64(overlap) / float64(max(len(candidateTerms), 1))

		kwOverlap := 0.0
		if len(kwTerms) > 0 {
			kwOverlap = float64(intersectionSize(kwTerms, candidateTerms)) / float64(len(kwTerms))
		}

		candText := strings.Join(c.Topics, " ") + " " + c.ResearchSummary
		candBigrams := bigramSet(candText)
		bigramOverlap := 0.0
		if len(candBigrams) > 0 {
			bigramOverlap = float64(intersectionSize(queryBigrams, candBigrams)) / float64(len(candBigrams))
		}

		phraseMatch := phraseMatchRatio(keywords, c.Topics)

		rawTopic := (candCoverage*0.20 + kwOverlap*0.25 + bigramOverlap*0.20 + phraseMatch*0.35) * 10

		// Similarity acts both as a 50/50 blend partner and as a floor:
		// a strong semantic match keeps the topic score from collapsing
		// when vocabularies differ.
		floor := clamp01((c.Similarity-0.25)/0.45) * 10
		topicScore := clamp10(math.Max(rawTopic*0.50+c.Similarity*10*0.50, floor))

		methodologyScore := clamp01((c.Similarity-0.2)/0.5) * 10

		seniorityScore := seniorityFromHIndex(c.HIndex)
		recencyScore := recencyFromLastPublication(c.LastPublicationDate, currentYear)

		overall := clamp10(topicScore*weightTopic +
			methodologyScore*weightMethodology +
			seniorityScore*weightSeniority +
			recencyScore*weightRecency)

		sc := types.ScoredCandidate{
			CandidateProfile: c,
			TopicScore:       round1(topicScore),
			MethodologyScore: round1(methodologyScore),
			SeniorityScore:   round1(seniorityScore),
			RecencyScore:     round1(recencyScore),
			OverallScore:     round1(overall),
		}
		sc.Reasoning = buildReasoning(sc, overlap, c.HIndex)
		scored = append(scored, sc)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].OverallScore > scored[j].OverallScore
	})
	return scored, nil
}

// termSet tokenizes the texts and returns the union of non-stop-word tokens.
func termSet(texts ...string) map[string]bool {
	set := make(map[string]bool)
	for _, text := range texts {
		for _, tok := range topics.Tokenize(text) {
			if !topics.IsStopword(tok) {
				set[tok] = true
			}
		}
	}
	return set
}

func bigramSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, bg := range topics.Bigrams(topics.Tokenize(text)) {
		set[bg] = true
	}
	return set
}

func intersectionSize(a, b map[string]bool) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for k := range a {
		if b[k] {
			n++
		}
	}
	return n
}

// phraseMatchRatio counts a keyword as hit when at least half of its
// significant words appear together in any single candidate topic label.
// Catches keyword "seismic inversion" against the label "Seismic Imaging
// and Inversion Techniques".
func phraseMatchRatio(keywords []string, topicLabels []string) float64 {
	if len(keywords) == 0 {
		return 0
	}
	hits := 0
	for _, kw := range keywords {
		kwWords := termSet(kw)
		if len(kwWords) == 0 {
			continue
		}
		needed := max(int(math.Ceil(float64(len(kwWords))*0.5)), 1)
		for _, label := range topicLabels {
			if intersectionSize(kwWords, termSet(label)) >= needed {
				hits++
				break
			}
		}
	}
	return float64(hits) / float64(len(keywords))
}

// seniorityFromHIndex is a fixed monotonic step function expressing
// diminishing-returns confidence in reviewer seniority.
func seniorityFromHIndex(h int) float64 {
	switch {
	case h >= 50:
		return 9.8
	case h >= 40:
		return 9.5
	case h >= 30:
		return 9.0
	case h >= 25:
		return 8.5
	case h >= 18:
		return 8.0
	case h >= 12:
		return 7.5
	case h >= 8:
		return 7.0
	case h >= 5:
		return 6.0
	case h >= 3:
		return 5.0
	default:
		return 3.5
	}
}

// recencyFromLastPublication steps down with years since the last known
// publication. Unknown or unparseable dates score the neutral 5.0.
func recencyFromLastPublication(lastPub string, currentYear int) float64 {
	if len(lastPub) < 4 {
		return 5.0
	}
	year, err := strconv.Atoi(lastPub[:4])
	if err != nil {
		return 5.0
	}
	yearsAgo := currentYear - year
	switch {
	case yearsAgo <= 0:
		return 9.8
	case yearsAgo <= 1:
		return 9.5
	case yearsAgo <= 2:
		return 8.5
	case yearsAgo <= 3:
		return 7.5
	case yearsAgo <= 5:
		return 5.5
	default:
		return 3.0
	}
}

// buildReasoning assembles the templated justification. Threshold
// boundaries match the scoring bands above; concatenation order is fixed.
func buildReasoning(sc types.ScoredCandidate, overlap, hIndex int) string {
	var parts []string

	switch {
	case sc.TopicScore >= 7:
		parts = append(parts, fmt.Sprintf("Strong topic alignment (%d matching terms)", overlap))
	case sc.TopicScore >= 4:
		parts = append(parts, fmt.Sprintf("Good topic relevance (%d matching terms)", overlap))
	case overlap > 0:
		parts = append(parts, fmt.Sprintf("Some topic overlap (%d matching terms)", overlap))
	default:
		parts = append(parts, "Related domain expertise")
	}

	switch {
	case sc.MethodologyScore >= 7:
		parts = append(parts, "Strong methodological match")
	case sc.MethodologyScore >= 4:
		parts = append(parts, "Relevant methodological expertise")
	}

	switch {
	case hIndex >= 25:
		parts = append(parts, fmt.Sprintf("Senior researcher (h-index: %d)", hIndex))
	case hIndex >= 12:
		parts = append(parts, fmt.Sprintf("Established researcher (h-index: %d)", hIndex))
	case hIndex >= 5:
		parts = append(parts, fmt.Sprintf("Active researcher (h-index: %d)", hIndex))
	}

	if sc.RecencyScore >= 8.5 {
		parts = append(parts, "Actively publishing")
	}

	return strings.Join(parts, ". ") + "."
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
