// Package main provides the elsago CLI entry point.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "elsago",
	Short: "Scopus retrieval client for api.elsevier.com",
	Long: `elsago fetches author, affiliation, and document records from the
Elsevier (Scopus) retrieval API.

Requests are authenticated with an API key (config file, .env, or
ELSAGO_API_KEY) and throttled to one request per second. Every fetched
record is kept in a local SQLite database for offline inspection. All
commands output JSON by default.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
