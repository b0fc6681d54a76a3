// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the reviewer-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/reviewer-engine/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback if set, otherwise the secret value for key.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the reviewer-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "reviewer-engine",
	Short: "Peer-reviewer recommendation for manuscript submissions",
	Long: `reviewer-engine recommends qualified peer reviewers for a manuscript.
It extracts the manuscript's research topics, retrieves similar authors from a
vector index of the academic corpus, scores them on topic fit, methodology,
seniority, and recency, enriches contact details, and flags conflicts of
interest against the submitting authors.

Run the pipeline directly with "find", expose it over HTTP with "serve", or
inspect the local author corpus with "corpus stats".`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./reviewer-engine.yaml or ~/.config/reviewer-engine/config.yaml)")
}

func initConfig() {
	// A local .env supplies environment overrides during development.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("reviewer-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "reviewer-engine"))
		}
	}

	viper.SetEnvPrefix("REVIEWER_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
