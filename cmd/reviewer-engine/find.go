// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/reviewer-engine/internal/pipeline"
	"github.com/pdiddy/reviewer-engine/pkg/types"
)

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Find recommended peer reviewers for a manuscript",
	Long: `Find runs the full recommendation pipeline for a manuscript given inline
via --title/--abstract or as a YAML file via --manuscript. The manuscript file
uses the same field names as the JSON API (title, abstract, keywords,
excluded_author_names, excluded_institutions, excluded_author_ids,
result_count, candidate_pool_size).

Stage progress is reported on stderr; the ranked reviewer list goes to stdout
as a table, or as JSON/YAML with --json/--yaml.`,
	RunE: runFind,
}

func runFind(cmd *cobra.Command, args []string) error {
	query, err := queryFromFlags(cmd)
	if err != nil {
		return err
	}

	p := pipeline.New(pipelineConfig())
	set, err := p.FindReviewers(context.Background(), query)
	if err != nil {
		return err
	}

	for _, step := range set.Steps {
		fmt.Fprintln(os.Stderr, step)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	yamlOutput, _ := cmd.Flags().GetBool("yaml")
	switch {
	case jsonOutput:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(set)
	case yamlOutput:
		return yaml.NewEncoder(os.Stdout).Encode(set)
	default:
		formatResultTable(set)
		return nil
	}
}

func queryFromFlags(cmd *cobra.Command) (types.ManuscriptQuery, error) {
	var query types.ManuscriptQuery

	manuscriptPath, _ := cmd.Flags().GetString("manuscript")
	if manuscriptPath != "" {
		data, err := os.ReadFile(manuscriptPath)
		if err != nil {
			return query, fmt.Errorf("reading manuscript file: %w", err)
		}
		if err := yaml.Unmarshal(data, &query); err != nil {
			return query, fmt.Errorf("parsing manuscript file %s: %w", manuscriptPath, err)
		}
	}

	// Inline flags override manuscript file fields.
	if title, _ := cmd.Flags().GetString("title"); title != "" {
		query.Title = title
	}
	if abstract, _ := cmd.Flags().GetString("abstract"); abstract != "" {
		query.Abstract = abstract
	}
	if keywords, _ := cmd.Flags().GetString("keywords"); keywords != "" {
		query.Keywords = splitCommaList(keywords)
	}
	if names, _ := cmd.Flags().GetStringSlice("exclude-author"); len(names) > 0 {
		query.ExcludedAuthorNames = names
	}
	if insts, _ := cmd.Flags().GetStringSlice("exclude-institution"); len(insts) > 0 {
		query.ExcludedInstitutions = insts
	}
	if ids, _ := cmd.Flags().GetStringSlice("exclude-id"); len(ids) > 0 {
		query.ExcludedAuthorIDs = ids
	}
	if count, _ := cmd.Flags().GetInt("count"); count > 0 {
		query.ResultCount = count
	}
	if pool, _ := cmd.Flags().GetInt("pool"); pool > 0 {
		query.CandidatePoolSize = pool
	}

	if err := query.Validate(); err != nil {
		return query, err
	}
	return query, nil
}

func splitCommaList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func formatResultTable(set *types.ResultSet) {
	if len(set.Reviewers) == 0 {
		fmt.Println("No reviewers found.")
		return
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-28s  %-30s  %-7s  %-30s  %s\n",
		"Rank", "Name", "Institution", "Score", "Email", "COI")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 120))

	for _, r := range set.Reviewers {
		name := truncate(r.Name, 28)
		inst := truncate(r.Institution, 30)
		email := r.Contact.Email
		if email != "" && r.Contact.EmailIsInferred {
			email += " (inferred)"
		}
		email = truncate(email, 30)

		coi := "-"
		if len(r.COIFlags) > 0 {
			kinds := make([]string, 0, len(r.COIFlags))
			for _, f := range r.COIFlags {
				kinds = append(kinds, string(f.Type))
			}
			coi = strings.Join(kinds, ",")
		}

		fmt.Fprintf(os.Stdout, "%-4d  %-28s  %-30s  %-7.1f  %-30s  %s\n",
			r.Rank, name, inst, r.OverallScore, email, coi)
	}

	fmt.Fprintf(os.Stdout, "\n%d reviewers (%d candidates retrieved, %d scored)\n",
		set.Metadata.ReviewersReturned, set.Metadata.CandidatesRetrieved, set.Metadata.CandidatesScored)
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max-3] + "..."
	}
	return s
}

func init() {
	findCmd.Flags().String("manuscript", "", "path to a manuscript YAML file")
	findCmd.Flags().String("title", "", "manuscript title")
	findCmd.Flags().String("abstract", "", "manuscript abstract")
	findCmd.Flags().String("keywords", "", "manuscript keywords (comma-separated)")
	findCmd.Flags().StringSlice("exclude-author", nil, "submitting author name to exclude (repeatable)")
	findCmd.Flags().StringSlice("exclude-institution", nil, "institution to exclude (repeatable)")
	findCmd.Flags().StringSlice("exclude-id", nil, "corpus author ID to exclude (repeatable)")
	findCmd.Flags().Int("count", 0, "number of reviewers to return (default 10)")
	findCmd.Flags().Int("pool", 0, "vector candidate pool size (default 50)")
	findCmd.Flags().Bool("json", false, "output the result set as JSON")
	findCmd.Flags().Bool("yaml", false, "output the result set as YAML")

	rootCmd.AddCommand(findCmd)
}
