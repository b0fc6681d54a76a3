// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package topics

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/reviewer-engine/pkg/types"
)

// tokenPattern matches lowercase alphabetic tokens of three or more
// characters. Shorter tokens and anything with digits or punctuation carry
// no topical signal.
var tokenPattern = regexp.MustCompile(`\b[a-z]{3,}\b`)

// Tokenize lowercases text and returns its alphabetic tokens (length >= 3),
// stop-words included. Exported for the scoring engine.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// Bigrams returns "a b" pairs of adjacent non-stop-word tokens. Exported for
// the scoring engine.
func Bigrams(tokens []string) []string {
	var out []string
	for i := 0; i+1 < len(tokens); i++ {
		if stopwords[tokens[i]] || stopwords[tokens[i+1]] {
			continue
		}
		out = append(out, tokens[i]+" "+tokens[i+1])
	}
	return out
}

// HeuristicStrategy extracts topics by tokenizing the manuscript text and
// matching it against the fixed domain and methodology tables. It is fully
// deterministic and needs no external service.
type HeuristicStrategy struct{}

// Name returns the strategy identifier.
func (s *HeuristicStrategy) Name() string { return "heuristic" }

// Extract builds the profile from frequency tables and pattern matches.
// The returned error is always nil; the signature satisfies Strategy.
func (s *HeuristicStrategy) Extract(_ context.Context, title, abstract string, keywords []string) (types.TopicProfile, error) {
	text := strings.ToLower(title + " " + abstract)
	tokens := Tokenize(text)

	wordFreq := frequencies(filterStopwords(tokens))
	bigramFreq := frequencies(Bigrams(tokens))

	domains := matchTable(text, domainTable)
	methodologies := matchTable(text, methodologyTable)

	topBigrams := topByFrequency(bigramFreq, 10)

	// Sub-topics: user keywords lead, top bigrams fill the rest.
	subTopics := make([]string, 0, 5)
	for _, k := range keywords {
		subTopics = append(subTopics, strings.ToLower(strings.TrimSpace(k)))
	}
	subTopics = append(subTopics, topBigrams...)
	subTopics = capList(dedupe(subTopics), 5)

	// Expanded terms: frequent single words, minus the domain head words.
	domainHeads := make(map[string]bool, len(domains))
	for _, d := range domains {
		parts := strings.Fields(d)
		domainHeads[parts[len(parts)-1]] = true
	}
	var expanded []string
	for _, w := range topByFrequency(wordFreq, 20) {
		if domainHeads[w] {
			continue
		}
		expanded = append(expanded, w)
		if len(expanded) == 8 {
			break
		}
	}

	if len(domains) == 0 {
		domains = []string{"general science"}
	}
	if len(methodologies) == 0 {
		methodologies = []string{"empirical study"}
	}

	return types.TopicProfile{
		PrimaryDomains:           capList(domains, 4),
		Methodologies:            capList(methodologies, 3),
		SubTopics:                subTopics,
		ExpandedTerms:            expanded,
		InterdisciplinaryBridges: detectBridges(domains),
	}, nil
}

func filterStopwords(tokens []string) []string {
	var out []string
	for _, t := range tokens {
		if !stopwords[t] {
			out = append(out, t)
		}
	}
	return out
}

// frequencies counts items, remembering first-occurrence order for stable
// tie-breaking.
type freqTable struct {
	counts map[string]int
	order  map[string]int
	keys   []string
}

func frequencies(items []string) freqTable {
	ft := freqTable{counts: make(map[string]int), order: make(map[string]int)}
	for _, it := range items {
		if _, ok := ft.counts[it]; !ok {
			ft.order[it] = len(ft.keys)
			ft.keys = append(ft.keys, it)
		}
		ft.counts[it]++
	}
	return ft
}

// topByFrequency returns up to n keys ordered by descending count, ties
// broken by first occurrence.
func topByFrequency(ft freqTable, n int) []string {
	keys := append([]string(nil), ft.keys...)
	sort.SliceStable(keys, func(i, j int) bool {
		ci, cj := ft.counts[keys[i]], ft.counts[keys[j]]
		if ci != cj {
			return ci > cj
		}
		return ft.order[keys[i]] < ft.order[keys[j]]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

// matchTable scores each entry by pattern-hit count and returns labels with
// at least one hit, ordered by hit count then table order.
func matchTable(text string, table []patternEntry) []string {
	type scored struct {
		label string
		hits  int
		pos   int
	}
	var matched []scored
	for i, entry := range table {
		hits := 0
		for _, p := range entry.patterns {
			if strings.Contains(text, p) {
				hits++
			}
		}
		if hits > 0 {
			matched = append(matched, scored{entry.label, hits, i})
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].hits != matched[j].hits {
			return matched[i].hits > matched[j].hits
		}
		return matched[i].pos < matched[j].pos
	})
	out := make([]string, len(matched))
	for i, m := range matched {
		out[i] = m.label
	}
	return out
}

// detectBridges looks up interdisciplinary fields implied by the detected
// domain combinations.
func detectBridges(domains []string) []string {
	domainSet := make(map[string]bool, len(domains))
	for _, d := range domains {
		domainSet[d] = true
	}
	var bridges []string
	for _, b := range bridgeTable {
		if domainSet[b.a] && domainSet[b.b] {
			bridges = append(bridges, b.bridge)
			if len(bridges) == 2 {
				break
			}
		}
	}
	return bridges
}
