// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/reviewer-engine/internal/corpus"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Inspect the local author corpus",
	Long: `Corpus inspects the read-only SQLite author store used for contact
enrichment. The store is built offline; this command only reads it.`,
}

var corpusStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print author count and snapshot timestamp",
	RunE:  runCorpusStats,
}

func runCorpusStats(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig().Defaults()

	store := corpus.NewStore(cfg.Contact)
	count, loaded, err := store.Stats(context.Background())
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"path":    cfg.Contact.CorpusPath,
			"authors": count,
			"loaded":  loaded,
		})
	}

	fmt.Printf("Corpus:  %s\n", cfg.Contact.CorpusPath)
	fmt.Printf("Authors: %d\n", count)
	if loaded.IsZero() {
		fmt.Println("Loaded:  never (corpus file missing or empty)")
	} else {
		fmt.Printf("Loaded:  %s\n", loaded.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func init() {
	corpusStatsCmd.Flags().Bool("json", false, "output stats as JSON")

	corpusCmd.AddCommand(corpusStatsCmd)
	rootCmd.AddCommand(corpusCmd)
}
