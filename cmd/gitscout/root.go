package main

import (
	"gitscout/internal/version"

	"github.com/spf13/cobra"
)

var (
	// sessionFlag selects a registered session by name; empty means the
	// registry default
	sessionFlag string
)

var rootCmd = &cobra.Command{
	Use:   "gitscout",
	Short: "gitscout - read-only repository exploration for LLM agents",
	Long: `gitscout clones a repository into a scratch directory and exposes bounded,
deterministic views of it: a structure overview, directory listings, ranged
file reads, and budgeted content search. Every output is sized for an LLM
tool-calling loop; no command mutates the repository.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("gitscout version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&sessionFlag, "session", "",
		"Registered session to operate on (default: the registry default)")
}
