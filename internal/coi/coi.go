// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package coi detects conflicts of interest between a candidate reviewer and
// the manuscript's authors. Detection is a pure function: flags annotate the
// candidate, they never remove it from the result set.
package coi

import (
	"fmt"
	"strings"

	"github.com/pdiddy/reviewer-engine/pkg/types"
)

// DetectConflicts runs the three independent checks and returns every flag
// raised. A candidate may accumulate multiple flags.
func DetectConflicts(c types.CandidateProfile, excludedNames, excludedInstitutions, excludedIDs []string) []types.COIFlag {
	var flags []types.COIFlag
	flags = append(flags, coAuthorFlags(c, excludedIDs)...)
	flags = append(flags, institutionFlags(c, excludedInstitutions)...)
	flags = append(flags, nameFlags(c, excludedNames)...)
	return flags
}

// coAuthorFlags checks the candidate's recent co-author identifiers against
// the excluded author identifiers.
func coAuthorFlags(c types.CandidateProfile, excludedIDs []string) []types.COIFlag {
	coAuthors := make(map[string]bool, len(c.CoAuthorIDs))
	for _, id := range c.CoAuthorIDs {
		coAuthors[id] = true
	}

	var flags []types.COIFlag
	for _, id := range excludedIDs {
		if coAuthors[id] {
			flags = append(flags, types.COIFlag{
				Type:     types.COICoAuthor,
				Severity: types.SeverityHigh,
				Detail:   fmt.Sprintf("Has co-authored with paper author (ID: %s)", id),
			})
		}
	}
	return flags
}

// institutionFlags matches any candidate affiliation against any excluded
// institution, case-insensitive, substring in either direction. At most one
// flag per excluded institution.
func institutionFlags(c types.CandidateProfile, excludedInstitutions []string) []types.COIFlag {
	var candidateInsts []string
	seen := map[string]bool{}
	add := func(inst string) {
		inst = strings.ToLower(strings.TrimSpace(inst))
		if inst != "" && !seen[inst] {
			seen[inst] = true
			candidateInsts = append(candidateInsts, inst)
		}
	}
	for _, aff := range c.Affiliations {
		add(aff.Institution)
	}
	add(c.Institution)

	var flags []types.COIFlag
	for _, excluded := range excludedInstitutions {
		excludedLower := strings.ToLower(strings.TrimSpace(excluded))
		if excludedLower == "" {
			continue
		}
		for _, inst := range candidateInsts {
			if strings.Contains(inst, excludedLower) || strings.Contains(excludedLower, inst) {
				flags = append(flags, types.COIFlag{
					Type:     types.COISameInstitution,
					Severity: types.SeverityMedium,
					Detail:   fmt.Sprintf("Same institution: %s", inst),
				})
				break
			}
		}
	}
	return flags
}

// nameFlags checks for identity and shared-surname matches. Surname matching
// skips short surnames, which collide too easily.
func nameFlags(c types.CandidateProfile, excludedNames []string) []types.COIFlag {
	candidateName := strings.ToLower(strings.TrimSpace(c.Name))
	if candidateName == "" {
		return nil
	}
	candidateTokens := strings.Fields(candidateName)
	candidateSurname := candidateTokens[len(candidateTokens)-1]

	var flags []types.COIFlag
	for _, name := range excludedNames {
		nameLower := strings.ToLower(strings.TrimSpace(name))
		if nameLower == "" {
			continue
		}
		if nameLower == candidateName {
			flags = append(flags, types.COIFlag{
				Type:     types.COISamePerson,
				Severity: types.SeverityCritical,
				Detail:   fmt.Sprintf("Candidate name matches paper author: %s", name),
			})
			continue
		}
		tokens := strings.Fields(nameLower)
		if tokens[len(tokens)-1] == candidateSurname && len(candidateSurname) > 2 {
			flags = append(flags, types.COIFlag{
				Type:     types.COIPossibleRelation,
				Severity: types.SeverityLow,
				Detail:   fmt.Sprintf("Shares last name with paper author: %s", name),
			})
		}
	}
	return flags
}
