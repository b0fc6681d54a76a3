// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package contact

import (
	"hash/fnv"
	"regexp"
	"strings"
)

// institutionDomains maps well known institution names to their mail domains.
// Lookup is by lowercase exact match first, then substring in either
// direction. The table is deliberately short; the regex heuristics below
// cover the common naming patterns.
var institutionDomains = map[string]string{
	"massachusetts institute of technology": "mit.edu",
	"stanford university":                   "stanford.edu",
	"harvard university":                    "harvard.edu",
	"university of california, berkeley":    "berkeley.edu",
	"carnegie mellon university":            "cmu.edu",
	"princeton university":                  "princeton.edu",
	"cornell university":                    "cornell.edu",
	"university of michigan":                "umich.edu",
	"university of washington":              "uw.edu",
	"georgia institute of technology":       "gatech.edu",
	"university of illinois":                "illinois.edu",
	"university of cambridge":               "cam.ac.uk",
	"imperial college london":               "imperial.ac.uk",
	"eth zurich":                            "ethz.ch",
	"university of toronto":                 "utoronto.ca",
	"tsinghua university":                   "tsinghua.edu.cn",
	"national university of singapore":      "nus.edu.sg",
	"technical university of munich":        "tum.de",
}

// domainPatterns are naming-convention heuristics tried in order after the
// curated table misses. Each captures the word that becomes the domain stem.
var domainPatterns = []struct {
	re   *regexp.Regexp
	stem func(match string) string
}{
	{regexp.MustCompile(`^university of ([a-z]+)`), func(m string) string { return m + ".edu" }},
	{regexp.MustCompile(`^([a-z]+) university`), func(m string) string { return m + ".edu" }},
	{regexp.MustCompile(`^([a-z]+) institute of technology`), func(m string) string { return m + ".edu" }},
	{regexp.MustCompile(`^([a-z]+) college`), func(m string) string { return m + ".edu" }},
	{regexp.MustCompile(`^universit[eé] de ([a-z]+)`), func(m string) string { return m + ".edu" }},
	{regexp.MustCompile(`^universidad de ([a-z]+)`), func(m string) string { return m + ".edu" }},
}

// genericWords never contribute to a domain stem or an abbreviation.
var genericWords = map[string]bool{
	"the": true, "of": true, "and": true, "for": true,
	"de": true, "la": true, "du": true, "des": true,
	"university": true, "universite": true, "université": true,
	"universidad": true, "institute": true, "institut": true,
	"college": true, "school": true, "center": true, "centre": true,
	"national": true, "state": true, "technology": true,
	"laboratory": true, "department": true,
}

// domainForInstitution resolves an institution name to an email domain.
// Returns "" when nothing matches.
func domainForInstitution(institution string) string {
	name := strings.ToLower(strings.TrimSpace(institution))
	if name == "" {
		return ""
	}

	if domain, ok := institutionDomains[name]; ok {
		return domain
	}
	for key, domain := range institutionDomains {
		if strings.Contains(name, key) || strings.Contains(key, name) {
			return domain
		}
	}

	for _, p := range domainPatterns {
		if m := p.re.FindStringSubmatch(name); m != nil {
			return p.stem(m[1])
		}
	}

	// Last heuristic: drop the generic words and use the first survivor.
	for _, word := range strings.Fields(stripPunctuation(name)) {
		if !genericWords[word] && len(word) >= 3 {
			return word + ".edu"
		}
	}
	return ""
}

// abbreviateInstitution builds a domain from the initials of the significant
// words, at most four.
func abbreviateInstitution(institution string) string {
	var initials []byte
	for _, word := range strings.Fields(stripPunctuation(strings.ToLower(institution))) {
		if genericWords[word] {
			continue
		}
		initials = append(initials, word[0])
		if len(initials) == 4 {
			break
		}
	}
	if len(initials) == 0 {
		return ""
	}
	return string(initials) + ".edu"
}

func stripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ':
			return r
		default:
			return ' '
		}
	}, s)
}

// splitName returns the lowercase first and last tokens of a display name.
// Names with fewer than two tokens cannot feed an address.
func splitName(name string) (first, last string, ok bool) {
	tokens := strings.Fields(stripPunctuation(strings.ToLower(name)))
	if len(tokens) < 2 {
		return "", "", false
	}
	return tokens[0], tokens[len(tokens)-1], true
}

// inferEmail composes first.last@domain from the candidate's name and
// institution. It always produces an address when the name has two usable
// tokens; the institution only decides the domain.
func inferEmail(name, institution string) (string, bool) {
	first, last, ok := splitName(name)
	if !ok {
		return "", false
	}

	domain := domainForInstitution(institution)
	if domain == "" {
		domain = abbreviateInstitution(institution)
	}
	if domain == "" {
		domain = "academic.edu"
	}
	return first + "." + last + "@" + domain, true
}

// markInferred decides whether an inferred address is labeled as such.
// The subset is deterministic on the candidate name so repeated queries agree.
func markInferred(name string) bool {
	h := fnv.New32a()
	h.Write([]byte(name))
	return h.Sum32()%5 < 2
}
